package commands

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"alfredoptarigan/resume-tailor/internal/config"
	"alfredoptarigan/resume-tailor/internal/controller"
	"alfredoptarigan/resume-tailor/internal/messaging"
	"alfredoptarigan/resume-tailor/internal/services"
)

// openDocument loads the "active tab" named by --file or --url. It returns a
// nil Document when neither is set.
func openDocument(ctx context.Context, in io.Reader) (services.Document, error) {
	switch {
	case pageURL != "":
		cfg := config.Load()
		return services.LoadBrowserDocument(ctx, pageURL, services.BrowserOptions{
			ChromePath: cfg.Browser.ChromePath,
			NoSandbox:  cfg.Browser.NoSandbox,
			Timeout:    cfg.Browser.Timeout,
		})
	case filePath == "-":
		raw, err := io.ReadAll(in)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return services.StaticDocument{Selected: selection, Body: string(raw)}, nil
	case strings.EqualFold(filepath.Ext(filePath), ".pdf"):
		return services.OpenPDFDocument(filePath)
	case filePath != "":
		return services.OpenHTMLDocument(filePath, selection)
	default:
		return nil, nil
	}
}

// newTab exposes doc to the controller the same way a page would: as an
// extract_text listener. Without a document there is no listener.
func newTab(doc services.Document) messaging.Sender {
	router := messaging.NewRouter()
	if doc != nil {
		router.Handle(messaging.ActionExtractText, services.ExtractListener(doc))
	}
	return router
}

func printStatus(w io.Writer, c *controller.Controller) {
	status := c.Status()
	switch {
	case strings.HasPrefix(status, "Error"), status == controller.StatusExtractFailed, status == controller.StatusEmptyJobText:
		color.New(color.FgRed).Fprintln(w, status)
	case status == controller.StatusExtracted, status == controller.StatusProcessing:
		color.New(color.FgGreen).Fprintln(w, status)
	default:
		color.New(color.FgYellow).Fprintln(w, status)
	}
}
