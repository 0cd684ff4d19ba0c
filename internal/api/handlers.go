// SPDX-License-Identifier: MIT

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/ercanturk19/flixify-sub000/internal/catalog"
	"github.com/ercanturk19/flixify-sub000/internal/jobs"
	"github.com/ercanturk19/flixify-sub000/internal/metrics"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":         "ok",
		"uptime_seconds": int(time.Since(uptimeStart).Seconds()),
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.manager.Status())
}

func (s *Server) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	cat := s.manager.Catalog()
	if cat == nil {
		writeNotFound(w, "no catalog published")
		return
	}
	writeJSON(w, http.StatusOK, cat)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if s.manager.Catalog() == nil {
		writeNotFound(w, "no catalog published")
		return
	}

	q := r.URL.Query().Get("q")
	start := time.Now()
	items := s.currentIndex().Query(q)
	metrics.RecordSearch(time.Since(start).Seconds())

	if items == nil {
		items = []catalog.Item{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"query": q,
		"items": items,
	})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	source := r.URL.Query().Get("source")
	if source == "" {
		source = s.defaultSource
	}
	if source == "" {
		writeError(w, http.StatusBadRequest, "no source given and no default configured")
		return
	}

	err := s.manager.Load(r.Context(), source)
	switch {
	case errors.Is(err, jobs.ErrLoadInFlight):
		// Overlapping request for the same source is a no-op, not a failure.
		writeJSON(w, http.StatusAccepted, map[string]string{
			"status": "already loading",
			"source": source,
		})
	case err != nil:
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeJSON(w, http.StatusAccepted, map[string]string{
			"status": "loading",
			"source": source,
		})
	}
}

func (s *Server) handleClearCache(w http.ResponseWriter, r *http.Request) {
	source := r.URL.Query().Get("source")
	if source == "" {
		source = s.defaultSource
	}
	if source == "" {
		writeError(w, http.StatusBadRequest, "no source given and no default configured")
		return
	}
	s.manager.ClearCache(r.Context(), source)
	w.WriteHeader(http.StatusNoContent)
}
