// SPDX-License-Identifier: MIT

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisBackend stores cache entries in Redis, letting several instances
// share one cache. Entries carry their own timestamp, so the TTL policy
// stays identical across backends; Redis-side expiry is set to the
// configured retention as a safety net against unbounded growth.
type RedisBackend struct {
	client    *redis.Client
	retention time.Duration
	opTimeout time.Duration
}

// RedisConfig holds Redis connection configuration.
type RedisConfig struct {
	Addr     string // Redis server address (host:port)
	Password string // optional
	DB       int

	// Retention bounds how long Redis itself keeps a record regardless of
	// read-time TTL checks. Zero means keep forever.
	Retention time.Duration
}

// NewRedisBackend connects to Redis and verifies the connection.
func NewRedisBackend(cfg RedisConfig) (*RedisBackend, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return &RedisBackend{
		client:    client,
		retention: cfg.Retention,
		opTimeout: 2 * time.Second,
	}, nil
}

// Get retrieves a stored entry. Absence is (nil, nil).
func (r *RedisBackend) Get(ctx context.Context, key string) (*Entry, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %q: %w", key, err)
	}

	var out Entry
	if err := json.Unmarshal(val, &out); err != nil {
		return nil, fmt.Errorf("unmarshal cache entry %q: %w", key, err)
	}
	return &out, nil
}

// Set stores an entry, overwriting unconditionally.
func (r *RedisBackend) Set(ctx context.Context, key string, e Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal cache entry: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()
	if err := r.client.Set(ctx, key, data, r.retention).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

// Delete removes an entry.
func (r *RedisBackend) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis delete %q: %w", key, err)
	}
	return nil
}

// Close closes the Redis client.
func (r *RedisBackend) Close() error { return r.client.Close() }
