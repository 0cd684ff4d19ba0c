// SPDX-License-Identifier: MIT

package api

import (
	"fmt"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/ercanturk19/flixify-sub000/internal/log"
)

// requestLogger logs one structured line per request.
func requestLogger(next http.Handler) http.Handler {
	logger := log.WithComponent("api")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur(log.FieldDuration, time.Since(start)).
			Str("request_id", chimw.GetReqID(r.Context())).
			Str(log.FieldEvent, "http.request").
			Msg("request handled")
	})
}

// apiRateLimit bounds general API traffic per client IP.
func apiRateLimit() func(http.Handler) http.Handler {
	return rateLimit(600, time.Minute)
}

// refreshRateLimit bounds the expensive refresh endpoint per client IP.
func refreshRateLimit() func(http.Handler) http.Handler {
	return rateLimit(10, time.Minute)
}

func rateLimit(limit int, window time.Duration) func(http.Handler) http.Handler {
	return httprate.Limit(
		limit,
		window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", fmt.Sprintf("%d", int(window.Seconds())))
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":"rate limit exceeded"}`))
		}),
	)
}
