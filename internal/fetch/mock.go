// SPDX-License-Identifier: MIT

package fetch

import (
	"context"
	"sync"
)

// Mock is a Fetcher for tests: it returns canned payloads per source and
// counts calls.
type Mock struct {
	mu       sync.Mutex
	payloads map[string][]byte
	errs     map[string]error
	calls    map[string]int
}

// NewMock creates an empty mock fetcher.
func NewMock() *Mock {
	return &Mock{
		payloads: make(map[string][]byte),
		errs:     make(map[string]error),
		calls:    make(map[string]int),
	}
}

// Respond registers a payload for source.
func (m *Mock) Respond(source string, payload []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payloads[source] = payload
	delete(m.errs, source)
}

// Fail registers an error for source.
func (m *Mock) Fail(source string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs[source] = err
	delete(m.payloads, source)
}

// Calls reports how often source was fetched.
func (m *Mock) Calls(source string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[source]
}

// Fetch returns the canned response for source, or ErrUnavailable when none
// is registered.
func (m *Mock) Fetch(_ context.Context, source string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[source]++
	if err, ok := m.errs[source]; ok {
		return nil, err
	}
	if payload, ok := m.payloads[source]; ok {
		return payload, nil
	}
	return nil, ErrUnavailable
}
