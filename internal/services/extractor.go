package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"

	"alfredoptarigan/resume-tailor/internal/messaging"
)

const (
	MaxJobTextLength = 20000
	TruncationMarker = "..."
)

// Document is the page the extractor reads from.
type Document interface {
	// Selection returns the currently selected text, or "" if none.
	Selection() string
	// BodyText returns the visible text content of the whole page.
	BodyText() string
}

// Extract returns the selection, or the body text when nothing is selected,
// with whitespace collapsed and trimmed. Text longer than MaxJobTextLength
// characters is cut to exactly that many followed by TruncationMarker.
func Extract(doc Document) string {
	if doc == nil {
		return ""
	}

	text := doc.Selection()
	if text == "" {
		text = doc.BodyText()
	}

	text = strings.Join(strings.Fields(text), " ")

	if utf8.RuneCountInString(text) > MaxJobTextLength {
		text = string([]rune(text)[:MaxJobTextLength]) + TruncationMarker
	}

	return text
}

// ExtractListener answers extract_text messages for doc.
func ExtractListener(doc Document) messaging.HandlerFunc {
	return func(ctx context.Context, msg messaging.Message) (messaging.Reply, error) {
		return messaging.Reply{Text: Extract(doc)}, nil
	}
}

// StaticDocument is a Document with fixed content.
type StaticDocument struct {
	Selected string
	Body     string
}

func (d StaticDocument) Selection() string { return d.Selected }
func (d StaticDocument) BodyText() string  { return d.Body }

// HTMLDocument is a parsed HTML page.
type HTMLDocument struct {
	root     *html.Node
	selected string
}

var hiddenElements = map[string]bool{
	"head":     true,
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
}

func ParseHTMLDocument(r io.Reader, selection string) (*HTMLDocument, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return &HTMLDocument{root: root, selected: selection}, nil
}

func OpenHTMLDocument(path, selection string) (*HTMLDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open HTML file: %w", err)
	}
	defer f.Close()

	return ParseHTMLDocument(f, selection)
}

func (d *HTMLDocument) Selection() string { return d.selected }

func (d *HTMLDocument) BodyText() string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && hiddenElements[n.Data] {
			return
		}
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(d.root)
	return sb.String()
}
