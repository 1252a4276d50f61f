package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"alfredoptarigan/resume-tailor/internal/controller"
	"alfredoptarigan/resume-tailor/internal/messaging"
)

var (
	jobText     string
	coverLetter bool
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit job text to the orchestrator",
	Long: `submit sends the job text to the orchestrator and returns as soon as the
job is acknowledged. Use --text to pass it directly, otherwise it is extracted
from --file or --url first. Progress of the job itself is available through
the status command.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		doc, err := openDocument(ctx, cmd.InOrStdin())
		if err != nil {
			return err
		}

		c := controller.New(newTab(doc), messaging.NewClient(serverURL, nil))

		text := jobText
		if text == "" && doc != nil {
			text, err = c.RequestExtraction(ctx)
			printStatus(cmd.ErrOrStderr(), c)
			if err != nil {
				return err
			}
		}

		reply, err := c.SubmitJob(ctx, text, coverLetter)
		printStatus(cmd.ErrOrStderr(), c)
		if err != nil {
			return err
		}

		if reply.JobID != "" {
			fmt.Fprintln(cmd.OutOrStdout(), reply.JobID)
		}
		return nil
	},
}

func init() {
	submitCmd.Flags().StringVarP(&jobText, "text", "t", "", "job text to submit as is")
	submitCmd.Flags().BoolVarP(&coverLetter, "cover-letter", "c", false, "also generate a cover letter")
}
