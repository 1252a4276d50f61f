package commands

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"alfredoptarigan/resume-tailor/internal/models"
)

var statusCmd = &cobra.Command{
	Use:   "status <job-id>",
	Short: "Show the outcome of a submitted job",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		url := strings.TrimRight(serverURL, "/") + "/api/v1/jobs/" + args[0]

		req, err := http.NewRequestWithContext(cmd.Context(), http.MethodGet, url, nil)
		if err != nil {
			return err
		}

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return fmt.Errorf("failed to reach orchestrator: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("orchestrator returned %s", resp.Status)
		}

		var job models.JobResponse
		if err := json.NewDecoder(resp.Body).Decode(&job); err != nil {
			return fmt.Errorf("failed to decode job: %w", err)
		}

		out := cmd.OutOrStdout()
		switch models.JobStatus(job.Status) {
		case models.StatusCompleted:
			color.New(color.FgGreen).Fprintf(out, "%s %s\n", job.ID, job.Status)
			for _, f := range job.Files {
				fmt.Fprintf(out, "  %s\n", f)
			}
		case models.StatusFailed:
			color.New(color.FgRed).Fprintf(out, "%s %s\n", job.ID, job.Status)
			if job.ErrorMessage != nil {
				fmt.Fprintf(out, "  %s\n", *job.ErrorMessage)
			}
		default:
			color.New(color.FgYellow).Fprintf(out, "%s %s\n", job.ID, job.Status)
		}
		return nil
	},
}
