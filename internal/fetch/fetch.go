// SPDX-License-Identifier: MIT

// Package fetch retrieves raw playlist text from upstream providers.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/ercanturk19/flixify-sub000/internal/log"
)

// ErrUnavailable marks a source that could not be reached or answered with
// a non-success status. Callers fall back to cached content when they see it.
var ErrUnavailable = errors.New("source unavailable")

// maxBody caps how much playlist text a single source may return (64 MiB).
// Provider playlists with hundreds of thousands of entries stay well below
// this; anything larger is a misbehaving upstream.
const maxBody = 64 << 20

// Fetcher retrieves the raw playlist text for a source URL.
type Fetcher interface {
	Fetch(ctx context.Context, source string) ([]byte, error)
}

// Options configures an HTTPFetcher.
type Options struct {
	Timeout   time.Duration
	UserAgent string

	// RateLimit bounds requests per second against upstream providers;
	// zero applies the default. Providers ban aggressive clients.
	RateLimit      rate.Limit
	RateLimitBurst int
}

const (
	defaultTimeout        = 30 * time.Second
	defaultUserAgent      = "flixify/1.0"
	defaultRateLimit      = 2
	defaultRateLimitBurst = 4
)

// HTTPFetcher fetches playlists over HTTP with a bounded timeout and a
// client-side rate limit.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
	limiter   *rate.Limiter
}

// NewHTTPFetcher creates a fetcher with the given options; zero values take
// defaults.
func NewHTTPFetcher(opts Options) *HTTPFetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = defaultRateLimit
	}
	if opts.RateLimitBurst <= 0 {
		opts.RateLimitBurst = defaultRateLimitBurst
	}

	transport := &http.Transport{
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 4,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}

	return &HTTPFetcher{
		client: &http.Client{
			Timeout:   opts.Timeout,
			Transport: transport,
		},
		userAgent: opts.UserAgent,
		limiter:   rate.NewLimiter(opts.RateLimit, opts.RateLimitBurst),
	}
}

// Fetch performs a single GET against source. Network errors and non-2xx
// statuses are reported as ErrUnavailable so callers can distinguish
// "provider down" from parse failures.
func (f *HTTPFetcher) Fetch(ctx context.Context, source string) ([]byte, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", source, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}

	logger := log.WithComponentFromContext(ctx, "fetch")
	logger.Debug().
		Int(log.FieldBytes, len(body)).
		Dur(log.FieldDuration, time.Since(start)).
		Str(log.FieldEvent, "fetch.done").
		Msg("playlist fetched")
	return body, nil
}
