package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"alfredoptarigan/resume-tailor/internal/models"
)

const tailorPath = "/tailor"

var ErrMissingResume = errors.New("response has no resume")

// RemoteError is returned for non-2xx answers from the tailoring service.
type RemoteError struct {
	StatusCode int
	Body       string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("tailoring service returned %d: %s", e.StatusCode, e.Body)
}

type TailorClient interface {
	Tailor(ctx context.Context, req models.TailorRequest) (*models.TailorResponse, error)
}

type tailorClient struct {
	endpoint   string
	httpClient *http.Client
}

// NewTailorClient builds a client for <endpointURL>/tailor. No request
// timeout is set; the transport default applies.
func NewTailorClient(endpointURL string, httpClient *http.Client) TailorClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &tailorClient{
		endpoint:   strings.TrimRight(endpointURL, "/") + tailorPath,
		httpClient: httpClient,
	}
}

// Tailor implements TailorClient.
func (c *tailorClient) Tailor(ctx context.Context, tr models.TailorRequest) (*models.TailorResponse, error) {
	body, err := json.Marshal(tr)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach tailoring service: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &RemoteError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	// Older deployments stream the resume PDF directly.
	if mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type")); mediaType == PDFMimeType {
		return &models.TailorResponse{Resume: EncodeBlob(raw)}, nil
	}

	var out models.TailorResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to decode response body: %w", err)
	}
	if out.Resume == "" {
		return nil, ErrMissingResume
	}

	return &out, nil
}
