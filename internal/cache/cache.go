// SPDX-License-Identifier: MIT

// Package cache persists raw playlist text and parsed catalogs keyed by
// source identifier, with TTL evaluated at read time.
package cache

import (
	"context"
)

// Entry is one cached record. Timestamp is the write time in epoch
// milliseconds; age is evaluated against a Store's TTL at read time.
type Entry struct {
	Payload   []byte `json:"payload"`
	Timestamp int64  `json:"timestamp"`
}

// Backend is a raw key-value store for cache entries. Get returns (nil, nil)
// when the key is absent. Backends do not interpret TTLs; expiry lives in
// Store.
type Backend interface {
	Get(ctx context.Context, key string) (*Entry, error)
	Set(ctx context.Context, key string, e Entry) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Stats holds semantic hit/miss counters for one Store.
type Stats struct {
	Hits    int64
	Misses  int64
	Expired int64
	Sets    int64
}
