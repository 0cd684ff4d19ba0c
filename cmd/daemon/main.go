// SPDX-License-Identifier: MIT
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ercanturk19/flixify-sub000/internal/api"
	"github.com/ercanturk19/flixify-sub000/internal/cache"
	"github.com/ercanturk19/flixify-sub000/internal/catalog"
	"github.com/ercanturk19/flixify-sub000/internal/classify"
	"github.com/ercanturk19/flixify-sub000/internal/config"
	"github.com/ercanturk19/flixify-sub000/internal/fetch"
	"github.com/ercanturk19/flixify-sub000/internal/jobs"
	"github.com/ercanturk19/flixify-sub000/internal/log"
	"github.com/ercanturk19/flixify-sub000/internal/search"
)

var (
	version   = "v1.0.0"
	commit    = "none"
	buildDate = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	configPath := flag.String("config", "", "path to config file (YAML)")
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s (commit: %s, built: %s)\n", version, commit, buildDate)
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "flixify: %v\n", err)
		os.Exit(1)
	}

	log.Configure(log.Config{
		Level:   cfg.LogLevel,
		Service: "flixify",
	})
	logger := log.WithComponent("daemon")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backend, err := openBackend(cfg)
	if err != nil {
		logger.Error().Err(err).Msg("cache backend unavailable")
		os.Exit(1)
	}
	defer func() {
		if cerr := backend.Close(); cerr != nil {
			logger.Warn().Err(cerr).Msg("cache backend close failed")
		}
	}()

	fetcher := fetch.NewHTTPFetcher(fetch.Options{
		Timeout:   cfg.FetchTimeout,
		UserAgent: "flixify/" + version,
	})

	manager := jobs.NewManager(
		fetcher,
		cache.NewStore(backend, "raw", cfg.RawTTL),
		cache.NewStore(backend, "catalog", cfg.CatalogTTL),
		classify.New(classify.DefaultRules()),
		jobs.Options{
			BatchSize: cfg.BatchSize,
			Catalog: catalog.Options{
				MinMovieGroup:  cfg.MinMovieGroup,
				MinLiveGroup:   cfg.MinLiveGroup,
				Cap:            cfg.CategoryCap,
				PriorityGroups: catalog.DefaultOptions().PriorityGroups,
			},
			ExportPath: cfg.ExportPath,
		},
	)

	srv := api.NewServer(manager, api.Options{
		DefaultSource: cfg.Source,
		Search: search.Options{
			Limit:     cfg.SearchLimit,
			ScanLimit: cfg.SearchScanLimit,
		},
	})

	var watcher *search.Watcher
	if cfg.WatchQuery != "" {
		watchLog := log.WithComponent("watch")
		watcher = search.NewWatcher(cfg.WatchQuery, search.DefaultQuiet, search.Options{
			Limit:     cfg.SearchLimit,
			ScanLimit: cfg.SearchScanLimit,
		}, func(r search.Result) {
			watchLog.Info().
				Str("query", r.Query).
				Int(log.FieldItems, len(r.Items)).
				Str(log.FieldEvent, "watch.result").
				Msg("standing query evaluated")
		})
		defer watcher.Close()
	}

	httpServer := &http.Server{
		Addr:              cfg.Listen,
		Handler:           srv.Router(),
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	if cfg.Source != "" {
		if err := manager.Load(ctx, cfg.Source); err != nil {
			logger.Warn().Err(err).Msg("initial catalog load not started")
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info().Str("addr", cfg.Listen).Str("version", version).Msg("server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("shutdown signal received")
		// Detached but bounded, so shutdown completes even though the
		// parent context is already cancelled.
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), 15*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		drainEvents(gctx, manager, watcher, logger)
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Msg("daemon exited with error")
		os.Exit(1)
	}
	logger.Info().Msg("daemon stopped")
}

// openBackend selects the configured cache backend.
func openBackend(cfg config.Config) (cache.Backend, error) {
	switch cfg.CacheBackend {
	case config.BackendBadger:
		return cache.OpenBadger(filepath.Join(cfg.DataDir, "cache"))
	case config.BackendRedis:
		return cache.NewRedisBackend(cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			// Let Redis drop records somewhat past the longer read-time TTL.
			Retention: 2 * max(cfg.RawTTL, cfg.CatalogTTL),
		})
	default:
		return cache.NewMemoryBackend(), nil
	}
}

// drainEvents mirrors orchestrator notifications into the log until shutdown
// and re-arms the standing watch query on every publish.
func drainEvents(ctx context.Context, manager *jobs.Manager, watcher *search.Watcher, logger zerolog.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-manager.Events():
			switch ev.Kind {
			case jobs.EventProgress:
				logger.Debug().
					Str(log.FieldSource, ev.Source).
					Str(log.FieldRunID, ev.RunID).
					Int("processed", ev.Processed).
					Int("total", ev.Total).
					Str(log.FieldEvent, "load.progress").
					Msg("load progress")
			case jobs.EventReady:
				logger.Info().
					Str(log.FieldSource, ev.Source).
					Str(log.FieldRunID, ev.RunID).
					Int(log.FieldItems, ev.Processed).
					Str(log.FieldEvent, "load.ready").
					Msg("catalog ready")
				if watcher != nil {
					watcher.OnCatalog(manager.Catalog())
				}
			case jobs.EventError:
				logger.Warn().
					Str(log.FieldSource, ev.Source).
					Str(log.FieldRunID, ev.RunID).
					Err(ev.Err).
					Str(log.FieldEvent, "load.error").
					Msg("catalog load failed")
			}
		}
	}
}
