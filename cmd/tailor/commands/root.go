package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	serverURL string
	filePath  string
	pageURL   string
	selection string
	noColor   bool
)

var rootCmd = &cobra.Command{
	Use:   "tailor",
	Short: "Send a job posting to the resume tailoring service",
	Long: `tailor captures the text of a job posting (from an HTML or PDF file, stdin,
or a live page rendered in headless Chrome) and submits it to the orchestrator,
which saves a tailored resume and optional cover letter to the downloads
directory.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor {
			color.NoColor = true
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&serverURL, "server", "s", "http://localhost:3000", "orchestrator base URL")
	rootCmd.PersistentFlags().StringVarP(&filePath, "file", "f", "", "job posting file (.html, .pdf, or - for stdin)")
	rootCmd.PersistentFlags().StringVarP(&pageURL, "url", "u", "", "job posting URL rendered in headless Chrome")
	rootCmd.PersistentFlags().StringVar(&selection, "selection", "", "selected text; takes precedence over the page body")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(extractCmd, submitCmd, statusCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
