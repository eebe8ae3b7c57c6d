// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/ndss-spider/pkg/types"
)

func TestGet_SendsUserAgent(t *testing.T) {
	var gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		fmt.Fprint(w, "<html>ok</html>")
	}))
	defer ts.Close()

	status, body, err := Get(context.Background(), ts.Client(), ts.URL, types.DefaultUserAgent)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "<html>ok</html>", string(body))
	assert.Equal(t, types.DefaultUserAgent, gotUA)
}

func TestGet_Non200IsNotAnError(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, "missing")
	}))
	defer ts.Close()

	status, body, err := Get(context.Background(), ts.Client(), ts.URL, "test-agent")
	require.NoError(t, err)

	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "missing", string(body))
	// No retry on failure statuses.
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGet_TransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := ts.URL
	ts.Close()

	_, _, err := Get(context.Background(), http.DefaultClient, url, "test-agent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP request")
}

func TestGet_ContextCancelled(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, _, err := Get(ctx, ts.Client(), ts.URL, "test-agent")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestOpen_BadURL(t *testing.T) {
	_, err := Open(context.Background(), http.DefaultClient, "://bad", "test-agent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating request")
}

func TestNewClient_Timeout(t *testing.T) {
	c := NewClient(types.HTTPConfig{Timeout: 5 * time.Second})
	assert.Equal(t, 5*time.Second, c.Timeout)

	c = NewClient(types.HTTPConfig{})
	assert.Zero(t, c.Timeout)
}
