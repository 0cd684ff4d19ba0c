// SPDX-License-Identifier: MIT

package jobs

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ercanturk19/flixify-sub000/internal/cache"
	"github.com/ercanturk19/flixify-sub000/internal/catalog"
	"github.com/ercanturk19/flixify-sub000/internal/classify"
	"github.com/ercanturk19/flixify-sub000/internal/fetch"
	"github.com/ercanturk19/flixify-sub000/internal/log"
	"github.com/ercanturk19/flixify-sub000/internal/metrics"
	"github.com/ercanturk19/flixify-sub000/internal/playlist"
)

// DefaultBatchSize is how many entries one classify batch covers before the
// pipeline yields.
const DefaultBatchSize = 750

// Options configures a Manager. Zero values take defaults.
type Options struct {
	BatchSize int
	Catalog   catalog.Options

	// ExportPath, when set, receives an M3U export of every published
	// catalog.
	ExportPath string
}

// Manager owns the load state machine. All catalog mutation funnels through
// it; readers get immutable snapshots.
type Manager struct {
	fetcher     fetch.Fetcher
	raw         *cache.Store
	parsed      *cache.Store
	classifier  *classify.Classifier
	batchSize   int
	catalogOpts catalog.Options
	exportPath  string

	events chan Event

	mu         sync.Mutex
	generation uint64
	state      State
	source     string
	runID      string
	processed  int
	total      int
	lastError  string
	lastLoaded time.Time
	current    *catalog.Catalog
}

// NewManager wires the orchestrator. raw holds fetched playlist text, parsed
// holds built catalogs; both degrade to misses on failure.
func NewManager(fetcher fetch.Fetcher, raw, parsed *cache.Store, classifier *classify.Classifier, opts Options) *Manager {
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}
	if opts.Catalog.MinMovieGroup == 0 && opts.Catalog.MinLiveGroup == 0 &&
		opts.Catalog.Cap == 0 && opts.Catalog.PriorityGroups == nil {
		opts.Catalog = catalog.DefaultOptions()
	}
	return &Manager{
		fetcher:     fetcher,
		raw:         raw,
		parsed:      parsed,
		classifier:  classifier,
		batchSize:   opts.BatchSize,
		catalogOpts: opts.Catalog,
		exportPath:  opts.ExportPath,
		events:      make(chan Event, 32),
		state:       StateIdle,
	}
}

// Load starts a background load for source. A load already running for the
// same source is not restarted; Load reports ErrLoadInFlight instead. A load
// for a different source supersedes the running one: the stale run's output
// is discarded when it completes.
func (m *Manager) Load(ctx context.Context, source string) error {
	if source == "" {
		return fmt.Errorf("load: empty source")
	}

	m.mu.Lock()
	if m.state == StateLoading && m.source == source {
		m.mu.Unlock()
		return ErrLoadInFlight
	}
	m.generation++
	gen := m.generation
	runID := uuid.NewString()
	prev := m.state
	m.state = StateLoading
	m.source = source
	m.runID = runID
	m.processed = 0
	m.total = 0
	m.mu.Unlock()

	loadLog := log.WithComponent("jobs")
	loadLog.Debug().
		Str(log.FieldOldState, string(prev)).
		Str(log.FieldNewState, string(StateLoading)).
		Str(log.FieldSource, source).
		Str(log.FieldRunID, runID).
		Str(log.FieldEvent, "state.change").
		Msg("state transition")

	// The run outlives the request that triggered it.
	runCtx := context.WithoutCancel(ctx)
	runCtx = log.ContextWithSource(runCtx, source)
	runCtx = log.ContextWithRunID(runCtx, runID)
	go m.run(runCtx, gen, runID, source)
	return nil
}

// Catalog returns the most recently published catalog, or nil before the
// first successful load. The returned value is never mutated.
func (m *Manager) Catalog() *catalog.Catalog {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Status returns a snapshot of the orchestrator state.
func (m *Manager) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := Status{
		State:      m.state,
		Source:     m.source,
		RunID:      m.runID,
		Processed:  m.processed,
		Total:      m.total,
		LastLoaded: m.lastLoaded,
		LastError:  m.lastError,
	}
	if m.current != nil {
		st.Items = len(m.current.Items)
		st.Categories = len(m.current.Categories)
	}
	return st
}

// Events delivers progress, ready, and error notifications. The channel is
// bounded; when the consumer lags, the oldest notification is dropped.
func (m *Manager) Events() <-chan Event { return m.events }

// ClearCache removes both cached records for source. The published catalog
// is unaffected.
func (m *Manager) ClearCache(ctx context.Context, source string) {
	m.raw.Delete(ctx, source)
	m.parsed.Delete(ctx, source)
}

func (m *Manager) run(ctx context.Context, gen uint64, runID, source string) {
	logger := log.WithComponentFromContext(ctx, "jobs")
	defer func() {
		if r := recover(); r != nil {
			metrics.IncLoadFailure("pipeline")
			m.fail(gen, runID, source, fmt.Errorf("pipeline failure: %v", r))
		}
	}()
	logger.Info().Str(log.FieldEvent, "load.start").Msg("starting catalog load")

	// A parsed-cache hit publishes immediately; nothing is re-fetched or
	// re-parsed.
	if payload, ok := m.parsed.Get(ctx, source); ok {
		var cat catalog.Catalog
		if err := json.Unmarshal(payload, &cat); err != nil {
			logger.Warn().Err(err).
				Str(log.FieldEvent, "load.cache_unreadable").
				Msg("dropping unreadable catalog record")
			m.parsed.Delete(ctx, source)
		} else {
			if m.publish(gen, runID, source, &cat) {
				metrics.IncLoad("ready")
				logger.Info().Str(log.FieldEvent, "load.cached").
					Int(log.FieldItems, len(cat.Items)).
					Msg("published catalog from cache")
			}
			return
		}
	}

	text, ok := m.raw.Get(ctx, source)
	if !ok {
		var err error
		text, err = m.fetcher.Fetch(ctx, source)
		if err != nil {
			metrics.IncLoadFailure("fetch")
			m.fail(gen, runID, source, fmt.Errorf("fetch source: %w", err))
			return
		}
		m.raw.Put(ctx, source, text)
	}

	start := time.Now()
	entries, err := playlist.Parse(bytes.NewReader(text))
	if err != nil {
		metrics.IncLoadFailure("parse")
		m.fail(gen, runID, source, fmt.Errorf("parse playlist: %w", err))
		return
	}

	items := make([]catalog.Item, 0, len(entries))
	for off := 0; off < len(entries); off += m.batchSize {
		if m.staleRun(gen) {
			metrics.IncLoad("superseded")
			logger.Info().Str(log.FieldEvent, "load.superseded").
				Int(log.FieldItems, len(items)).
				Msg("discarding superseded run")
			return
		}
		end := min(off+m.batchSize, len(entries))
		for i, e := range entries[off:end] {
			items = append(items, m.classifier.Classify(e, makeItemID(e, off+i)))
		}
		logger.Debug().
			Int(log.FieldBatch, off/m.batchSize+1).
			Int("processed", len(items)).
			Int("total", len(entries)).
			Str(log.FieldEvent, "load.batch").
			Msg("batch classified")
		m.progress(gen, runID, source, len(items), len(entries))
		runtime.Gosched()
	}

	cat := catalog.Build(source, items, m.catalogOpts)
	metrics.ObserveParseDuration(time.Since(start).Seconds())

	if !m.publish(gen, runID, source, cat) {
		metrics.IncLoad("superseded")
		logger.Info().Str(log.FieldEvent, "load.superseded").Msg("discarding superseded run")
		return
	}
	metrics.IncLoad("ready")
	logger.Info().Str(log.FieldEvent, "load.ready").
		Int(log.FieldItems, len(cat.Items)).
		Int(log.FieldCategories, len(cat.Categories)).
		Dur(log.FieldDuration, time.Since(start)).
		Msg("catalog published")

	if buf, err := json.Marshal(cat); err != nil {
		logger.Warn().Err(err).Str(log.FieldEvent, "load.persist_failed").Msg("catalog not persisted")
	} else {
		m.parsed.Put(ctx, source, buf)
	}

	if m.exportPath != "" {
		if err := playlist.WriteM3UFile(ctx, m.exportPath, cat.Items); err != nil {
			logger.Warn().Err(err).
				Str(log.FieldEvent, "export.failed").
				Str("path", m.exportPath).
				Msg("M3U export failed")
		}
	}
}

// publish installs cat as the current catalog if gen is still the newest
// run. Returns false when the run was superseded.
func (m *Manager) publish(gen uint64, runID, source string, cat *catalog.Catalog) bool {
	m.mu.Lock()
	if gen != m.generation {
		m.mu.Unlock()
		return false
	}
	prev := m.state
	m.current = cat
	m.state = StateReady
	m.lastLoaded = time.Now()
	m.lastError = ""
	m.processed = len(cat.Items)
	m.total = len(cat.Items)
	m.mu.Unlock()

	readyLog := log.WithComponent("jobs")
	readyLog.Debug().
		Str(log.FieldOldState, string(prev)).
		Str(log.FieldNewState, string(StateReady)).
		Str(log.FieldRunID, runID).
		Str(log.FieldEvent, "state.change").
		Msg("state transition")

	var live, movie, series int
	for _, it := range cat.Items {
		switch it.Type {
		case catalog.TypeLive:
			live++
		case catalog.TypeMovie:
			movie++
		case catalog.TypeSeries:
			series++
		}
	}
	metrics.RecordCatalog(live, movie, series, len(cat.Categories))

	m.emit(Event{Kind: EventReady, Source: source, RunID: runID, Processed: len(cat.Items), Total: len(cat.Items)})
	return true
}

// fail records a terminal load error. The previously published catalog, if
// any, stays in place. Failures of superseded runs are discarded.
func (m *Manager) fail(gen uint64, runID, source string, err error) {
	m.mu.Lock()
	if gen != m.generation {
		m.mu.Unlock()
		return
	}
	prev := m.state
	m.state = StateError
	m.lastError = err.Error()
	m.mu.Unlock()

	failLog := log.WithComponent("jobs")
	failLog.Error().Err(err).
		Str(log.FieldSource, source).
		Str(log.FieldRunID, runID).
		Str(log.FieldOldState, string(prev)).
		Str(log.FieldNewState, string(StateError)).
		Str(log.FieldEvent, "load.failed").
		Msg("catalog load failed")
	m.emit(Event{Kind: EventError, Source: source, RunID: runID, Err: err})
}

func (m *Manager) progress(gen uint64, runID, source string, processed, total int) {
	m.mu.Lock()
	if gen != m.generation {
		m.mu.Unlock()
		return
	}
	m.processed = processed
	m.total = total
	m.mu.Unlock()
	m.emit(Event{Kind: EventProgress, Source: source, RunID: runID, Processed: processed, Total: total})
}

func (m *Manager) staleRun(gen uint64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return gen != m.generation
}

// emit never blocks: when the buffer is full the oldest event is dropped.
func (m *Manager) emit(ev Event) {
	select {
	case m.events <- ev:
	default:
		select {
		case <-m.events:
		default:
		}
		select {
		case m.events <- ev:
		default:
		}
	}
}

// makeItemID derives a deterministic item ID from the entry's address, name,
// and position. The position disambiguates exact duplicates within one
// playlist.
func makeItemID(e playlist.Entry, idx int) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s\x00%s\x00%d", e.Address, e.Name, idx)))
	return "itm-" + hex.EncodeToString(sum[:8])
}
