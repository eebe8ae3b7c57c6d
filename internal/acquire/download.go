// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package acquire

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/pdiddy/ndss-spider/internal/httputil"
)

// chunkSize is the copy buffer used when streaming a download to disk.
const chunkSize = 8192

// Outcome is the result of one download attempt.
type Outcome int

const (
	OutcomeFailed Outcome = iota
	OutcomeDownloaded
	OutcomeSkipped
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDownloaded:
		return "downloaded"
	case OutcomeSkipped:
		return "skipped"
	default:
		return "failed"
	}
}

// Downloader saves artifacts to disk, skipping destinations that exist.
type Downloader struct {
	Client    *http.Client
	UserAgent string

	// Out receives operator progress lines.
	Out io.Writer

	// Log receives failure diagnostics.
	Log *zap.Logger
}

// Download saves url to dest and reports whether dest now holds the file.
// An existing dest counts as success without any request being made.
// Failures are logged, never returned.
func (d *Downloader) Download(ctx context.Context, url, dest string) bool {
	return d.Fetch(ctx, url, dest) != OutcomeFailed
}

// Fetch is Download with the outcome distinguished.
func (d *Downloader) Fetch(ctx context.Context, url, dest string) Outcome {
	if _, err := os.Stat(dest); err == nil {
		fmt.Fprintln(d.Out, "File already exists")
		return OutcomeSkipped
	}

	if err := d.save(ctx, url, dest); err != nil {
		d.Log.Warn("download failed", zap.String("url", url), zap.String("dest", dest), zap.Error(err))
		return OutcomeFailed
	}
	fmt.Fprintln(d.Out, "Successfully downloaded")
	return OutcomeDownloaded
}

// save streams url into a temporary file next to dest and renames it into
// place, so an interrupted transfer never leaves a file at dest.
func (d *Downloader) save(ctx context.Context, url, dest string) error {
	resp, err := httputil.Open(ctx, d.Client, url, d.UserAgent)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", filepath.Dir(dest), err)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(dest), ".download-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, copyErr := io.CopyBuffer(tmpFile, resp.Body, make([]byte, chunkSize))
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, dest); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
