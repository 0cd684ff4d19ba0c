// SPDX-License-Identifier: MIT

// Package config loads service configuration with precedence ENV > file > defaults.
package config

import (
	"fmt"
	"time"
)

// Cache backend selectors.
const (
	BackendMemory = "memory"
	BackendBadger = "badger"
	BackendRedis  = "redis"
)

// Config holds the full service configuration.
type Config struct {
	Listen   string `yaml:"listen"`
	DataDir  string `yaml:"data_dir"`
	LogLevel string `yaml:"log_level"`

	// Source is an optional playlist source loaded at startup.
	Source string `yaml:"source"`

	// WatchQuery is an optional standing search query re-evaluated after
	// every catalog publish, with matches mirrored into the log.
	WatchQuery string `yaml:"watch_query"`

	CacheBackend  string        `yaml:"cache_backend"`
	RedisAddr     string        `yaml:"redis_addr"`
	RedisPassword string        `yaml:"redis_password"`
	RedisDB       int           `yaml:"redis_db"`
	RawTTL        time.Duration `yaml:"raw_ttl"`
	CatalogTTL    time.Duration `yaml:"catalog_ttl"`

	BatchSize    int           `yaml:"batch_size"`
	FetchTimeout time.Duration `yaml:"fetch_timeout"`

	SearchLimit     int `yaml:"search_limit"`
	SearchScanLimit int `yaml:"search_scan_limit"`

	CategoryCap   int `yaml:"category_cap"`
	MinMovieGroup int `yaml:"min_movie_group"`
	MinLiveGroup  int `yaml:"min_live_group"`

	// ExportPath, when set, writes the published catalog back out as an M3U
	// file after every successful load.
	ExportPath string `yaml:"export_path"`
}

// Defaults returns the built-in configuration defaults.
func Defaults() Config {
	return Config{
		Listen:          ":8080",
		DataDir:         "./data",
		LogLevel:        "info",
		CacheBackend:    BackendMemory,
		RedisAddr:       "localhost:6379",
		RawTTL:          24 * time.Hour,
		CatalogTTL:      6 * time.Hour,
		BatchSize:       750,
		FetchTimeout:    30 * time.Second,
		SearchLimit:     50,
		SearchScanLimit: 20000,
		CategoryCap:     25,
		MinMovieGroup:   3,
		MinLiveGroup:    5,
	}
}

// Validate checks the configuration for values the service cannot run with.
func (c *Config) Validate() error {
	if c.Listen == "" {
		return fmt.Errorf("listen address is empty")
	}
	switch c.CacheBackend {
	case BackendMemory, BackendBadger, BackendRedis:
	default:
		return fmt.Errorf("unknown cache backend %q", c.CacheBackend)
	}
	if c.CacheBackend == BackendBadger && c.DataDir == "" {
		return fmt.Errorf("data dir required for badger cache backend")
	}
	if c.RawTTL <= 0 || c.CatalogTTL <= 0 {
		return fmt.Errorf("cache TTLs must be positive (raw=%s catalog=%s)", c.RawTTL, c.CatalogTTL)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch size must be positive, got %d", c.BatchSize)
	}
	if c.SearchLimit <= 0 || c.SearchScanLimit <= 0 {
		return fmt.Errorf("search limits must be positive (limit=%d scan=%d)", c.SearchLimit, c.SearchScanLimit)
	}
	if c.CategoryCap <= 0 {
		return fmt.Errorf("category cap must be positive, got %d", c.CategoryCap)
	}
	if c.MinMovieGroup < 1 || c.MinLiveGroup < 1 {
		return fmt.Errorf("group minimums must be at least 1 (movie=%d live=%d)", c.MinMovieGroup, c.MinLiveGroup)
	}
	return nil
}
