// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides the HTTP helpers shared by the listing, detail
// and download stages. Every request carries the same User-Agent.
package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/pdiddy/ndss-spider/pkg/types"
)

// NewClient returns an HTTP client for cfg. A zero Timeout leaves requests
// unbounded; redirects follow the net/http defaults.
func NewClient(cfg types.HTTPConfig) *http.Client {
	return &http.Client{Timeout: cfg.Timeout}
}

// Open issues a GET for url with the given User-Agent and returns the
// response unread. The caller closes the body. Non-200 responses are
// returned as-is so the caller can decide what a bad status means.
func Open(ctx context.Context, client *http.Client, url, userAgent string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request: %w", err)
	}
	return resp, nil
}

// Get fetches url and returns the status code and the full body.
// A non-200 status is not an error; the body is returned regardless.
func Get(ctx context.Context, client *http.Client, url, userAgent string) (int, []byte, error) {
	resp, err := Open(ctx, client, url, userAgent)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("reading body of %s: %w", url, err)
	}
	return resp.StatusCode, body, nil
}
