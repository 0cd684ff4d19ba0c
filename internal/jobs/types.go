// SPDX-License-Identifier: MIT

// Package jobs coordinates catalog loads: cache lookup, fetch, parse,
// classify, categorize, publish. One load per source runs at a time; a load
// for a different source supersedes whatever is in flight.
package jobs

import (
	"errors"
	"time"
)

// State is the orchestrator's lifecycle state.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateError   State = "error"
)

// ErrLoadInFlight is returned when a load for the same source is already
// running. The caller waits for that run instead of starting another.
var ErrLoadInFlight = errors.New("load already in flight for this source")

// EventKind distinguishes the orchestrator's event stream.
type EventKind string

const (
	// EventProgress reports batch completion during a load.
	EventProgress EventKind = "progress"
	// EventReady reports a successfully published catalog.
	EventReady EventKind = "ready"
	// EventError reports a terminal load failure.
	EventError EventKind = "error"
)

// Event is one orchestrator notification. Processed/Total carry batch
// progress; Err is set only on EventError.
type Event struct {
	Kind      EventKind
	Source    string
	RunID     string
	Processed int
	Total     int
	Err       error
}

// Status is a point-in-time snapshot of the orchestrator.
type Status struct {
	State      State     `json:"state"`
	Source     string    `json:"source,omitempty"`
	RunID      string    `json:"run_id,omitempty"`
	Processed  int       `json:"processed"`
	Total      int       `json:"total"`
	Items      int       `json:"items"`
	Categories int       `json:"categories"`
	LastLoaded time.Time `json:"last_loaded,omitzero"`
	LastError  string    `json:"last_error,omitempty"`
}
