// SPDX-License-Identifier: MIT

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Listen)
	assert.Equal(t, BackendMemory, cfg.CacheBackend)
	assert.Equal(t, 24*time.Hour, cfg.RawTTL)
	assert.Equal(t, 6*time.Hour, cfg.CatalogTTL)
	assert.Equal(t, 750, cfg.BatchSize)
	assert.Equal(t, 25, cfg.CategoryCap)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("listen: \":9090\"\ncache_backend: badger\ndata_dir: /tmp/flixify\nbatch_size: 100\ncatalog_ttl: 1h\n")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Listen)
	assert.Equal(t, BackendBadger, cfg.CacheBackend)
	assert.Equal(t, "/tmp/flixify", cfg.DataDir)
	assert.Equal(t, 100, cfg.BatchSize)
	assert.Equal(t, time.Hour, cfg.CatalogTTL)
	// Untouched keys keep defaults.
	assert.Equal(t, 24*time.Hour, cfg.RawTTL)
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen: \":9090\"\n"), 0o644))

	t.Setenv("FLIXIFY_LISTEN", ":7070")
	t.Setenv("FLIXIFY_BATCH_SIZE", "500")
	t.Setenv("FLIXIFY_WATCH_QUERY", "cnn")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Listen)
	assert.Equal(t, 500, cfg.BatchSize)
	assert.Equal(t, "cnn", cfg.WatchQuery)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		wantOK bool
	}{
		{"defaults valid", func(c *Config) {}, true},
		{"empty listen", func(c *Config) { c.Listen = "" }, false},
		{"bad backend", func(c *Config) { c.CacheBackend = "sqlite" }, false},
		{"badger without data dir", func(c *Config) { c.CacheBackend = BackendBadger; c.DataDir = "" }, false},
		{"zero ttl", func(c *Config) { c.CatalogTTL = 0 }, false},
		{"zero batch", func(c *Config) { c.BatchSize = 0 }, false},
		{"zero category cap", func(c *Config) { c.CategoryCap = 0 }, false},
		{"zero group minimum", func(c *Config) { c.MinLiveGroup = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantOK {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestParseHelpers(t *testing.T) {
	t.Setenv("FLIXIFY_TEST_INT", "notanint")
	assert.Equal(t, 7, ParseInt("FLIXIFY_TEST_INT", 7))

	t.Setenv("FLIXIFY_TEST_DUR", "90s")
	assert.Equal(t, 90*time.Second, ParseDuration("FLIXIFY_TEST_DUR", time.Minute))

	t.Setenv("FLIXIFY_TEST_DUR", "junk")
	assert.Equal(t, time.Minute, ParseDuration("FLIXIFY_TEST_DUR", time.Minute))

	assert.Equal(t, "fallback", ParseString("FLIXIFY_TEST_UNSET", "fallback"))
}
