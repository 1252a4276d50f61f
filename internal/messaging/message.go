// Package messaging implements the asynchronous request/reply channel used
// between the controller, the extractor and the orchestrator.
package messaging

import (
	"context"
	"errors"
)

const (
	ActionExtractText = "extract_text"
	ActionGeneratePDF = "generate_pdf"

	StatusStarted = "started"
)

var (
	ErrNoReceiver    = errors.New("could not establish connection: receiving end does not exist")
	ErrUnknownAction = errors.New("unknown action")
	ErrEmptyJobText  = errors.New("job text is required")
)

// Message is the structured record exchanged over the channel.
type Message struct {
	Action             string `json:"action"`
	JobText            string `json:"jobText,omitempty"`
	IncludeCoverLetter bool   `json:"includeCoverLetter,omitempty"`
}

// Reply is the synchronous answer to a Message.
type Reply struct {
	Status string `json:"status,omitempty"`
	Text   string `json:"text,omitempty"`
	JobID  string `json:"jobId,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Sender delivers a message and waits for the receiver's reply.
type Sender interface {
	Send(ctx context.Context, msg Message) (Reply, error)
}

type HandlerFunc func(ctx context.Context, msg Message) (Reply, error)
