// SPDX-License-Identifier: MIT

package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPFetcherOK(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("#EXTM3U\n"))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(Options{UserAgent: "flixify-test"})
	body, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, []byte("#EXTM3U\n"), body)
	assert.Equal(t, "flixify-test", gotUA)
}

func TestHTTPFetcherNonSuccessStatus(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{"not found", http.StatusNotFound},
		{"server error", http.StatusInternalServerError},
		{"forbidden", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			f := NewHTTPFetcher(Options{})
			_, err := f.Fetch(context.Background(), srv.URL)
			assert.ErrorIs(t, err, ErrUnavailable)
		})
	}
}

func TestHTTPFetcherConnectionRefused(t *testing.T) {
	f := NewHTTPFetcher(Options{Timeout: time.Second})
	_, err := f.Fetch(context.Background(), "http://127.0.0.1:1/playlist.m3u")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestHTTPFetcherTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(5 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	f := NewHTTPFetcher(Options{Timeout: 50 * time.Millisecond})
	_, err := f.Fetch(context.Background(), srv.URL)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestHTTPFetcherContextCancel(t *testing.T) {
	f := NewHTTPFetcher(Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := f.Fetch(ctx, "http://example.invalid/playlist.m3u")
	assert.Error(t, err)
}

func TestMockFetcher(t *testing.T) {
	m := NewMock()
	m.Respond("http://p/list", []byte("#EXTM3U\n"))

	body, err := m.Fetch(context.Background(), "http://p/list")
	require.NoError(t, err)
	assert.Equal(t, []byte("#EXTM3U\n"), body)
	assert.Equal(t, 1, m.Calls("http://p/list"))

	_, err = m.Fetch(context.Background(), "http://p/other")
	assert.ErrorIs(t, err, ErrUnavailable)

	boom := errors.New("boom")
	m.Fail("http://p/list", boom)
	_, err = m.Fetch(context.Background(), "http://p/list")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, m.Calls("http://p/list"))
}
