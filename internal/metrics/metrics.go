// SPDX-License-Identifier: MIT

// Package metrics exposes Prometheus instrumentation for the catalog
// pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Catalog metrics
	catalogItems = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "flixify_catalog_items",
		Help: "Items in the published catalog by content type (last load)",
	}, []string{"type"}) // type=live|movie|series

	catalogCategories = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "flixify_catalog_categories",
		Help: "Categories in the published catalog (last load)",
	})

	parseDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "flixify_parse_duration_seconds",
		Help:    "Time spent parsing and classifying one playlist",
		Buckets: prometheus.DefBuckets,
	})

	entriesDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "flixify_parse_entries_dropped_total",
		Help: "Total number of malformed playlist entries dropped",
	})

	// Load metrics
	loadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flixify_loads_total",
		Help: "Catalog load attempts by outcome",
	}, []string{"outcome"}) // outcome=ready|error|superseded

	loadFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flixify_load_failures_total",
		Help: "Total number of load failures by stage",
	}, []string{"stage"}) // stage=fetch|parse|pipeline

	// Cache metrics
	cacheOpsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flixify_cache_ops_total",
		Help: "Cache lookups per store by result",
	}, []string{"store", "result"}) // store=raw|catalog result=hit|miss|expired

	// Search metrics
	searchQueriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "flixify_search_queries_total",
		Help: "Total number of evaluated search queries",
	})

	searchDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "flixify_search_duration_seconds",
		Help:    "Time spent evaluating one search query",
		Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5},
	})
)

func RecordCatalog(live, movie, series, categories int) {
	catalogItems.WithLabelValues("live").Set(float64(live))
	catalogItems.WithLabelValues("movie").Set(float64(movie))
	catalogItems.WithLabelValues("series").Set(float64(series))
	catalogCategories.Set(float64(categories))
}

func ObserveParseDuration(seconds float64) { parseDurationSeconds.Observe(seconds) }
func AddEntriesDropped(n int)              { entriesDropped.Add(float64(n)) }

func IncLoad(outcome string)      { loadsTotal.WithLabelValues(outcome).Inc() }
func IncLoadFailure(stage string) { loadFailuresTotal.WithLabelValues(stage).Inc() }

func IncCacheOp(store, result string) { cacheOpsTotal.WithLabelValues(store, result).Inc() }

func RecordSearch(seconds float64) {
	searchQueriesTotal.Inc()
	searchDurationSeconds.Observe(seconds)
}
