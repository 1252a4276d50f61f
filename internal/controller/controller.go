// Package controller holds the user-facing side of the pipeline: it asks the
// active tab for job text and submits jobs to the orchestrator.
package controller

import (
	"context"
	"sync"

	"alfredoptarigan/resume-tailor/internal/messaging"
)

const (
	StatusExtracting    = "Extracting..."
	StatusExtracted     = "Extracted!"
	StatusExtractFailed = "Failed to extract text."
	StatusEmptyJobText  = "Please enter job text first."
	StatusSending       = "Sending to backend..."
	StatusProcessing    = "Processing... Check downloads."
	StatusRequestSent   = "Request sent."
	statusErrorPrefix   = "Error: "
)

type Controller struct {
	tab     messaging.Sender
	runtime messaging.Sender

	mu     sync.Mutex
	status string
}

// New returns a Controller that extracts through tab and submits through
// runtime.
func New(tab, runtime messaging.Sender) *Controller {
	return &Controller{
		tab:     tab,
		runtime: runtime,
	}
}

func (c *Controller) Status() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

func (c *Controller) setStatus(status string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = status
}

// RequestExtraction asks the tab's extractor for text. Communication faults
// are reported through Status as well as returned.
func (c *Controller) RequestExtraction(ctx context.Context) (string, error) {
	c.setStatus(StatusExtracting)

	if c.tab == nil {
		c.setStatus(statusErrorPrefix + messaging.ErrNoReceiver.Error())
		return "", messaging.ErrNoReceiver
	}

	reply, err := c.tab.Send(ctx, messaging.Message{Action: messaging.ActionExtractText})
	if err != nil {
		c.setStatus(statusErrorPrefix + err.Error())
		return "", err
	}

	if reply.Text == "" {
		c.setStatus(StatusExtractFailed)
		return "", nil
	}

	c.setStatus(StatusExtracted)
	return reply.Text, nil
}

// SubmitJob sends a generate_pdf message. Empty job text is rejected
// locally and nothing is sent.
func (c *Controller) SubmitJob(ctx context.Context, jobText string, includeCoverLetter bool) (messaging.Reply, error) {
	if jobText == "" {
		c.setStatus(StatusEmptyJobText)
		return messaging.Reply{}, messaging.ErrEmptyJobText
	}

	c.setStatus(StatusSending)

	reply, err := c.runtime.Send(ctx, messaging.Message{
		Action:             messaging.ActionGeneratePDF,
		JobText:            jobText,
		IncludeCoverLetter: includeCoverLetter,
	})
	if err != nil {
		c.setStatus(statusErrorPrefix + err.Error())
		return reply, err
	}

	if reply.Status == messaging.StatusStarted {
		c.setStatus(StatusProcessing)
	} else {
		c.setStatus(StatusRequestSent)
	}

	return reply, nil
}
