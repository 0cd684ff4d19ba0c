// SPDX-License-Identifier: MIT

// Package api serves the catalog over HTTP.
package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ercanturk19/flixify-sub000/internal/catalog"
	"github.com/ercanturk19/flixify-sub000/internal/jobs"
	"github.com/ercanturk19/flixify-sub000/internal/search"
)

// Server exposes the orchestrator and search over HTTP.
type Server struct {
	manager       *jobs.Manager
	defaultSource string
	searchOpts    search.Options

	mu      sync.Mutex
	indexed *catalog.Catalog // catalog the index was built from
	index   *search.Index
}

// Options configures the HTTP server.
type Options struct {
	// DefaultSource is used by refresh requests that name no source.
	DefaultSource string
	Search        search.Options
}

// NewServer wires the HTTP layer over the given orchestrator.
func NewServer(manager *jobs.Manager, opts Options) *Server {
	return &Server{
		manager:       manager,
		defaultSource: opts.DefaultSource,
		searchOpts:    opts.Search,
		index:         search.NewIndex(nil, opts.Search),
	}
}

// Router builds the chi router with the canonical middleware stack.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(chimw.RequestID)
	r.Use(requestLogger)
	r.Use(apiRateLimit())

	r.Get("/healthz", s.handleHealth)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	r.Route("/api", func(r chi.Router) {
		r.Get("/catalog", s.handleCatalog)
		r.Get("/search", s.handleSearch)
		r.Get("/status", s.handleStatus)
		r.With(refreshRateLimit()).Post("/refresh", s.handleRefresh)
		r.Delete("/cache", s.handleClearCache)
	})
	return r
}

// currentIndex returns the search index for the published catalog, rebuilding
// it when a new catalog has been published since the last query.
func (s *Server) currentIndex() *search.Index {
	cat := s.manager.Catalog()

	s.mu.Lock()
	defer s.mu.Unlock()
	if cat != s.indexed {
		var items []catalog.Item
		if cat != nil {
			items = cat.Items
		}
		s.index = search.NewIndex(items, s.searchOpts)
		s.indexed = cat
	}
	return s.index
}

// uptimeStart anchors the health report.
var uptimeStart = time.Now()
