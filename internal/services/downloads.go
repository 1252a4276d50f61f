package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
)

const (
	ConflictOverwrite = "overwrite"
	ConflictUniquify  = "uniquify"
	ConflictPrompt    = "prompt"

	maxUniquifyAttempts = 5
)

var (
	ErrInteractiveSave = errors.New("interactive save dialogs are not supported")
	ErrInvalidFilename = errors.New("invalid download filename")
)

type DownloadOptions struct {
	URL            string
	Filename       string
	SaveAs         bool
	ConflictAction string
}

// DownloadResult reports how a download finished.
type DownloadResult struct {
	ID   int
	Path string
	Err  error
}

// DownloadManager starts downloads. Download returns as soon as the
// download is initiated; completion is delivered once on the channel.
type DownloadManager interface {
	Download(ctx context.Context, opts DownloadOptions) (int, <-chan DownloadResult)
	EnsureDir() error
}

type fileDownloadManager struct {
	dir    string
	nextID atomic.Int64
}

func NewDownloadManager(dir string) DownloadManager {
	return &fileDownloadManager{dir: dir}
}

func (m *fileDownloadManager) EnsureDir() error {
	if err := os.MkdirAll(m.dir, 0755); err != nil {
		return fmt.Errorf("failed to create download directory: %w", err)
	}
	return nil
}

// Download implements DownloadManager.
func (m *fileDownloadManager) Download(ctx context.Context, opts DownloadOptions) (int, <-chan DownloadResult) {
	id := int(m.nextID.Add(1))
	done := make(chan DownloadResult, 1)

	go func() {
		path, err := m.save(ctx, opts)
		done <- DownloadResult{ID: id, Path: path, Err: err}
	}()

	return id, done
}

func (m *fileDownloadManager) save(ctx context.Context, opts DownloadOptions) (string, error) {
	if opts.SaveAs {
		return "", ErrInteractiveSave
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := opts.Filename
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidFilename, opts.Filename)
	}

	_, data, err := ParseDataURI(opts.URL)
	if err != nil {
		return "", err
	}

	switch opts.ConflictAction {
	case "", ConflictOverwrite:
		return m.replaceFile(name, data)
	case ConflictUniquify:
		return m.createUnique(name, data)
	case ConflictPrompt:
		return "", ErrInteractiveSave
	default:
		return "", fmt.Errorf("unknown conflict action: %s", opts.ConflictAction)
	}
}

// replaceFile writes data to a temp file in the download directory and
// renames it over the target, so readers never see a mix of two payloads.
func (m *fileDownloadManager) replaceFile(name string, data []byte) (string, error) {
	filePath := filepath.Join(m.dir, name)

	tmp, err := os.CreateTemp(m.dir, "."+name+".*.part")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if err := writeAndClose(tmp, data); err != nil {
		os.Remove(tmpPath)
		return "", err
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to set file mode: %w", err)
	}
	if err := os.Rename(tmpPath, filePath); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to move file into place: %w", err)
	}

	return filePath, nil
}

// createUnique claims name, or a uuid-suffixed variant when it is taken.
func (m *fileDownloadManager) createUnique(name string, data []byte) (string, error) {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)

	candidate := name
	for attempt := 0; attempt < maxUniquifyAttempts; attempt++ {
		filePath := filepath.Join(m.dir, candidate)

		dst, err := os.OpenFile(filePath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if errors.Is(err, fs.ErrExist) {
			candidate = fmt.Sprintf("%s_%s%s", base, uuid.New().String(), ext)
			continue
		}
		if err != nil {
			return "", fmt.Errorf("failed to create destination file: %w", err)
		}

		if err := writeAndClose(dst, data); err != nil {
			os.Remove(filePath)
			return "", err
		}
		return filePath, nil
	}

	return "", fmt.Errorf("failed to find a free name for %q", name)
}

func writeAndClose(f *os.File, data []byte) error {
	if _, err := io.Copy(f, bytes.NewReader(data)); err != nil {
		f.Close()
		return fmt.Errorf("failed to save file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}
	return nil
}
