package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const MessagesPath = "/api/v1/messages"

// Client is a Sender that reaches a remote Router over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Send implements Sender.
func (c *Client) Send(ctx context.Context, msg Message) (Reply, error) {
	body, err := json.Marshal(msg)
	if err != nil {
		return Reply{}, fmt.Errorf("failed to encode message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+MessagesPath, bytes.NewReader(body))
	if err != nil {
		return Reply{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Reply{}, fmt.Errorf("%w: %v", ErrNoReceiver, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Reply{}, fmt.Errorf("failed to read reply: %w", err)
	}

	var reply Reply
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &reply); err != nil {
			return Reply{}, fmt.Errorf("failed to decode reply: %w", err)
		}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		if reply.Error == "" {
			reply.Error = http.StatusText(resp.StatusCode)
		}
		if resp.StatusCode == http.StatusNotFound {
			return reply, fmt.Errorf("%w: %s", ErrNoReceiver, reply.Error)
		}
		return reply, fmt.Errorf("message rejected (%d): %s", resp.StatusCode, reply.Error)
	}

	return reply, nil
}
