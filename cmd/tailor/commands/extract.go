package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"alfredoptarigan/resume-tailor/internal/controller"
)

var errNothingExtracted = errors.New("no job text found in the document")

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Print the job text extracted from the page",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		doc, err := openDocument(ctx, cmd.InOrStdin())
		if err != nil {
			return err
		}

		c := controller.New(newTab(doc), nil)
		text, err := c.RequestExtraction(ctx)
		printStatus(cmd.ErrOrStderr(), c)
		if err != nil {
			return err
		}
		if text == "" {
			return errNothingExtracted
		}

		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	},
}
