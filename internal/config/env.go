// SPDX-License-Identifier: MIT

package config

import (
	"os"
	"strconv"
	"time"

	"github.com/ercanturk19/flixify-sub000/internal/log"
)

// ParseString reads a string from an environment variable or returns the default.
func ParseString(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return defaultValue
}

// ParseInt reads an integer from an environment variable or returns the default.
// Invalid values fall back to the default and are logged.
func ParseInt(key string, defaultValue int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		logger := log.WithComponent("config")
		logger.Warn().
			Str("key", key).
			Str("value", v).
			Int("default", defaultValue).
			Msg("invalid integer in environment, using default")
		return defaultValue
	}
	return i
}

// ParseDuration reads a duration from an environment variable or returns the
// default. Invalid values fall back to the default and are logged.
func ParseDuration(key string, defaultValue time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		logger := log.WithComponent("config")
		logger.Warn().
			Str("key", key).
			Str("value", v).
			Dur("default", defaultValue).
			Msg("invalid duration in environment, using default")
		return defaultValue
	}
	return d
}

// applyEnv overlays FLIXIFY_* environment variables onto cfg.
func applyEnv(cfg *Config) {
	cfg.Listen = ParseString("FLIXIFY_LISTEN", cfg.Listen)
	cfg.DataDir = ParseString("FLIXIFY_DATA", cfg.DataDir)
	cfg.LogLevel = ParseString("FLIXIFY_LOG_LEVEL", cfg.LogLevel)
	cfg.Source = ParseString("FLIXIFY_SOURCE", cfg.Source)
	cfg.WatchQuery = ParseString("FLIXIFY_WATCH_QUERY", cfg.WatchQuery)
	cfg.CacheBackend = ParseString("FLIXIFY_CACHE_BACKEND", cfg.CacheBackend)
	cfg.RedisAddr = ParseString("FLIXIFY_REDIS_ADDR", cfg.RedisAddr)
	cfg.RedisPassword = ParseString("FLIXIFY_REDIS_PASSWORD", cfg.RedisPassword)
	cfg.RedisDB = ParseInt("FLIXIFY_REDIS_DB", cfg.RedisDB)
	cfg.RawTTL = ParseDuration("FLIXIFY_RAW_TTL", cfg.RawTTL)
	cfg.CatalogTTL = ParseDuration("FLIXIFY_CATALOG_TTL", cfg.CatalogTTL)
	cfg.BatchSize = ParseInt("FLIXIFY_BATCH_SIZE", cfg.BatchSize)
	cfg.FetchTimeout = ParseDuration("FLIXIFY_FETCH_TIMEOUT", cfg.FetchTimeout)
	cfg.SearchLimit = ParseInt("FLIXIFY_SEARCH_LIMIT", cfg.SearchLimit)
	cfg.SearchScanLimit = ParseInt("FLIXIFY_SEARCH_SCAN_LIMIT", cfg.SearchScanLimit)
	cfg.CategoryCap = ParseInt("FLIXIFY_CATEGORY_CAP", cfg.CategoryCap)
	cfg.MinMovieGroup = ParseInt("FLIXIFY_MIN_MOVIE_GROUP", cfg.MinMovieGroup)
	cfg.MinLiveGroup = ParseInt("FLIXIFY_MIN_LIVE_GROUP", cfg.MinLiveGroup)
	cfg.ExportPath = ParseString("FLIXIFY_EXPORT_PATH", cfg.ExportPath)
}
