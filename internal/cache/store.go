// SPDX-License-Identifier: MIT

package cache

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/ercanturk19/flixify-sub000/internal/log"
	"github.com/ercanturk19/flixify-sub000/internal/metrics"
)

// Store layers a fixed key prefix and TTL over a Backend. A record older
// than the TTL is treated as absent, never as an error; expired records are
// deleted lazily on read. Backend failures degrade to cache misses and
// no-op writes — they are logged but never surfaced.
type Store struct {
	backend Backend
	prefix  string
	ttl     time.Duration
	logger  zerolog.Logger
	now     func() time.Time

	hits    atomic.Int64
	misses  atomic.Int64
	expired atomic.Int64
	sets    atomic.Int64
}

// NewStore creates a Store over backend. prefix namespaces its keys so
// several stores can share one backend.
func NewStore(backend Backend, prefix string, ttl time.Duration) *Store {
	return &Store{
		backend: backend,
		prefix:  prefix,
		ttl:     ttl,
		logger:  log.WithComponent("cache").With().Str(log.FieldCacheStore, prefix).Logger(),
		now:     time.Now,
	}
}

// TTL returns the store's time-to-live.
func (s *Store) TTL() time.Duration { return s.ttl }

func (s *Store) key(k string) string { return s.prefix + ":" + k }

// Get returns the payload for key, or false on absence, expiry, or backend
// failure.
func (s *Store) Get(ctx context.Context, k string) ([]byte, bool) {
	entry, err := s.backend.Get(ctx, s.key(k))
	if err != nil {
		s.logger.Warn().Err(err).Str(log.FieldCacheKey, k).Msg("cache read failed, treating as miss")
		s.misses.Add(1)
		metrics.IncCacheOp(s.prefix, "miss")
		return nil, false
	}
	if entry == nil {
		s.misses.Add(1)
		metrics.IncCacheOp(s.prefix, "miss")
		return nil, false
	}

	age := s.now().UnixMilli() - entry.Timestamp
	if age > s.ttl.Milliseconds() {
		s.expired.Add(1)
		s.misses.Add(1)
		metrics.IncCacheOp(s.prefix, "expired")
		if err := s.backend.Delete(ctx, s.key(k)); err != nil {
			s.logger.Debug().Err(err).Str(log.FieldCacheKey, k).Msg("expired entry cleanup failed")
		}
		return nil, false
	}

	s.hits.Add(1)
	metrics.IncCacheOp(s.prefix, "hit")
	return entry.Payload, true
}

// Put stores payload under key, overwriting unconditionally. Failures are
// logged and swallowed.
func (s *Store) Put(ctx context.Context, k string, payload []byte) {
	entry := Entry{Payload: payload, Timestamp: s.now().UnixMilli()}
	if err := s.backend.Set(ctx, s.key(k), entry); err != nil {
		s.logger.Warn().Err(err).Str(log.FieldCacheKey, k).Msg("cache write failed, skipping persist")
		return
	}
	s.sets.Add(1)
}

// Delete removes the record for key, if any.
func (s *Store) Delete(ctx context.Context, k string) {
	if err := s.backend.Delete(ctx, s.key(k)); err != nil {
		s.logger.Warn().Err(err).Str(log.FieldCacheKey, k).Msg("cache delete failed")
	}
}

// Stats returns the store's hit/miss counters.
func (s *Store) Stats() Stats {
	return Stats{
		Hits:    s.hits.Load(),
		Misses:  s.misses.Load(),
		Expired: s.expired.Load(),
		Sets:    s.sets.Load(),
	}
}
