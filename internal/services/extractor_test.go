package services

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-tailor/internal/messaging"
)

func TestExtract_PrefersSelection(t *testing.T) {
	doc := StaticDocument{Selected: "  Senior\n\tGo   Engineer ", Body: "whole page"}
	assert.Equal(t, "Senior Go Engineer", Extract(doc))
}

func TestExtract_FallsBackToBody(t *testing.T) {
	doc := StaticDocument{Body: "Job\n\nDescription here"}
	assert.Equal(t, "Job Description here", Extract(doc))
}

func TestExtract_Empty(t *testing.T) {
	assert.Equal(t, "", Extract(StaticDocument{}))
	assert.Equal(t, "", Extract(StaticDocument{Body: " \n\t "}))
	assert.Equal(t, "", Extract(nil))
}

func TestExtract_Truncation(t *testing.T) {
	tests := []struct {
		name      string
		length    int
		truncated bool
	}{
		{name: "short", length: 10},
		{name: "exactly at limit", length: MaxJobTextLength},
		{name: "one over limit", length: MaxJobTextLength + 1, truncated: true},
		{name: "far over limit", length: 3 * MaxJobTextLength, truncated: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := strings.Repeat("é", tt.length)
			got := Extract(StaticDocument{Body: body})

			if !tt.truncated {
				assert.Equal(t, body, got)
				return
			}
			assert.True(t, strings.HasSuffix(got, TruncationMarker))
			assert.Equal(t, MaxJobTextLength, utf8.RuneCountInString(strings.TrimSuffix(got, TruncationMarker)))
		})
	}
}

func TestHTMLDocument_BodyTextSkipsHiddenElements(t *testing.T) {
	page := `<html><head><title>Careers</title><style>p{}</style></head>
<body><h1>Backend Engineer</h1><script>var x = 1;</script>
<p>Build   services in <b>Go</b>.</p><noscript>enable js</noscript></body></html>`

	doc, err := ParseHTMLDocument(strings.NewReader(page), "")
	require.NoError(t, err)

	assert.Equal(t, "Backend Engineer Build services in Go .", Extract(doc))
}

func TestHTMLDocument_Selection(t *testing.T) {
	doc, err := ParseHTMLDocument(strings.NewReader("<p>ignored</p>"), "picked text")
	require.NoError(t, err)
	assert.Equal(t, "picked text", Extract(doc))
}

func TestOpenPDFDocument_MissingFile(t *testing.T) {
	_, err := OpenPDFDocument("does-not-exist.pdf")
	assert.Error(t, err)
}

func TestExtractListener(t *testing.T) {
	router := messaging.NewRouter()
	router.Handle(messaging.ActionExtractText, ExtractListener(StaticDocument{Body: "Go  role"}))

	reply, err := router.Send(context.Background(), messaging.Message{Action: messaging.ActionExtractText})
	require.NoError(t, err)
	assert.Equal(t, "Go role", reply.Text)
}
