package services

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

const PDFMimeType = "application/pdf"

var ErrInvalidDataURI = errors.New("invalid data URI")

// DecodeBlob decodes a standard base64 payload exactly as sent by the
// tailoring service.
func DecodeBlob(encoded string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64 payload: %w", err)
	}
	return data, nil
}

func EncodeBlob(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// DataURI renders data as a base64 data URI, e.g. data:application/pdf;base64,QQ==
func DataURI(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + EncodeBlob(data)
}

// ParseDataURI accepts only base64 data URIs.
func ParseDataURI(uri string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, fmt.Errorf("%w: missing data: scheme", ErrInvalidDataURI)
	}

	header, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("%w: missing payload separator", ErrInvalidDataURI)
	}

	mimeType, ok := strings.CutSuffix(header, ";base64")
	if !ok {
		return "", nil, fmt.Errorf("%w: only base64 encoding is supported", ErrInvalidDataURI)
	}

	data, err := DecodeBlob(payload)
	if err != nil {
		return "", nil, err
	}

	return mimeType, data, nil
}
