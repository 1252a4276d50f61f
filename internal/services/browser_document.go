package services

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/go-rod/rod/lib/launcher"
)

type BrowserOptions struct {
	// ChromePath overrides browser discovery. When empty a compatible
	// Chromium is downloaded into the rod cache if none is present.
	ChromePath string
	NoSandbox  bool
	Timeout    time.Duration
}

// BrowserDocument is a snapshot of a live page rendered in headless Chrome.
type BrowserDocument struct {
	URL      string
	selected string
	body     string
}

// LoadBrowserDocument navigates to rawURL and captures the page selection and
// its rendered body text.
func LoadBrowserDocument(ctx context.Context, rawURL string, opts BrowserOptions) (*BrowserDocument, error) {
	if _, err := url.ParseRequestURI(rawURL); err != nil {
		return nil, fmt.Errorf("invalid URL %q: %w", rawURL, err)
	}

	chromePath := opts.ChromePath
	if chromePath == "" {
		path, err := launcher.NewBrowser().Get()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve browser: %w", err)
		}
		chromePath = path
	}

	allocOpts := append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.ExecPath(chromePath),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("no-first-run", true),
	)
	if opts.NoSandbox {
		allocOpts = append(allocOpts, chromedp.Flag("no-sandbox", true))
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer allocCancel()

	tabCtx, tabCancel := chromedp.NewContext(allocCtx)
	defer tabCancel()

	doc := &BrowserDocument{URL: rawURL}
	if err := chromedp.Run(tabCtx,
		chromedp.Navigate(rawURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Evaluate(`window.getSelection().toString()`, &doc.selected),
		chromedp.Evaluate(`document.body.innerText`, &doc.body),
	); err != nil {
		return nil, fmt.Errorf("failed to load page: %w", err)
	}

	return doc, nil
}

func (d *BrowserDocument) Selection() string { return d.selected }
func (d *BrowserDocument) BodyText() string  { return d.body }
