// SPDX-License-Identifier: MIT

package cache

import (
	"context"
	"sync"
)

// MemoryBackend is a process-local Backend. Suitable for single-instance
// deployments and tests; records do not survive a restart.
type MemoryBackend struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{entries: make(map[string]Entry)}
}

// Get retrieves a stored entry. Absence is (nil, nil).
func (m *MemoryBackend) Get(_ context.Context, key string) (*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[key]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

// Set stores an entry, overwriting unconditionally.
func (m *MemoryBackend) Set(_ context.Context, key string, e Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = e
	return nil
}

// Delete removes an entry.
func (m *MemoryBackend) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

// Close is a no-op.
func (m *MemoryBackend) Close() error { return nil }
