package controller

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-tailor/internal/messaging"
)

type fakeSender struct {
	reply messaging.Reply
	err   error
	sent  []messaging.Message
}

func (f *fakeSender) Send(ctx context.Context, msg messaging.Message) (messaging.Reply, error) {
	f.sent = append(f.sent, msg)
	return f.reply, f.err
}

func TestRequestExtraction(t *testing.T) {
	tests := []struct {
		name       string
		tab        *fakeSender
		wantText   string
		wantStatus string
		wantErr    bool
	}{
		{
			name:       "text extracted",
			tab:        &fakeSender{reply: messaging.Reply{Text: "Go engineer"}},
			wantText:   "Go engineer",
			wantStatus: StatusExtracted,
		},
		{
			name:       "empty page",
			tab:        &fakeSender{},
			wantStatus: StatusExtractFailed,
		},
		{
			name:       "tab unreachable",
			tab:        &fakeSender{err: messaging.ErrNoReceiver},
			wantStatus: "Error: " + messaging.ErrNoReceiver.Error(),
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.tab, &fakeSender{})

			text, err := c.RequestExtraction(context.Background())

			assert.Equal(t, tt.wantErr, err != nil)
			assert.Equal(t, tt.wantText, text)
			assert.Equal(t, tt.wantStatus, c.Status())
			require.Len(t, tt.tab.sent, 1)
			assert.Equal(t, messaging.ActionExtractText, tt.tab.sent[0].Action)
		})
	}
}

func TestRequestExtraction_NoTab(t *testing.T) {
	c := New(nil, &fakeSender{})

	_, err := c.RequestExtraction(context.Background())
	assert.ErrorIs(t, err, messaging.ErrNoReceiver)
	assert.Contains(t, c.Status(), "Error: ")
}

func TestSubmitJob_EmptyTextNeverDispatches(t *testing.T) {
	runtime := &fakeSender{reply: messaging.Reply{Status: messaging.StatusStarted}}
	c := New(nil, runtime)

	_, err := c.SubmitJob(context.Background(), "", true)

	assert.ErrorIs(t, err, messaging.ErrEmptyJobText)
	assert.Empty(t, runtime.sent)
	assert.Equal(t, StatusEmptyJobText, c.Status())
}

func TestSubmitJob_Started(t *testing.T) {
	runtime := &fakeSender{reply: messaging.Reply{Status: messaging.StatusStarted, JobID: "abc"}}
	c := New(nil, runtime)

	reply, err := c.SubmitJob(context.Background(), "Senior Go Engineer", true)

	require.NoError(t, err)
	assert.Equal(t, "abc", reply.JobID)
	assert.Equal(t, StatusProcessing, c.Status())
	require.Len(t, runtime.sent, 1)
	assert.Equal(t, messaging.Message{
		Action:             messaging.ActionGeneratePDF,
		JobText:            "Senior Go Engineer",
		IncludeCoverLetter: true,
	}, runtime.sent[0])
}

func TestSubmitJob_UnexpectedReply(t *testing.T) {
	c := New(nil, &fakeSender{reply: messaging.Reply{}})

	_, err := c.SubmitJob(context.Background(), "Go", false)
	require.NoError(t, err)
	assert.Equal(t, StatusRequestSent, c.Status())
}

func TestSubmitJob_ChannelFault(t *testing.T) {
	c := New(nil, &fakeSender{err: errors.New("connection refused")})

	_, err := c.SubmitJob(context.Background(), "Go", false)
	assert.Error(t, err)
	assert.Equal(t, "Error: connection refused", c.Status())
}
