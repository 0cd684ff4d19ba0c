// SPDX-License-Identifier: MIT

package search

import (
	"sync"
	"time"

	"github.com/ercanturk19/flixify-sub000/internal/catalog"
)

// DefaultQuiet is the pause after the last keystroke before a query runs.
const DefaultQuiet = 200 * time.Millisecond

// Result is one evaluated query.
type Result struct {
	Query string
	Items []catalog.Item
}

// Debouncer serializes query evaluation behind a quiet period: each Search
// call cancels the pending one, and only the most recent query is ever
// evaluated. There is no queue.
type Debouncer struct {
	quiet   time.Duration
	results chan Result

	mu     sync.Mutex
	index  *Index
	timer  *time.Timer
	seq    uint64
	closed bool
}

// NewDebouncer creates a Debouncer with the given quiet period; zero or
// negative takes DefaultQuiet. It starts with an empty index.
func NewDebouncer(quiet time.Duration) *Debouncer {
	if quiet <= 0 {
		quiet = DefaultQuiet
	}
	return &Debouncer{
		quiet:   quiet,
		results: make(chan Result, 1),
		index:   NewIndex(nil, Options{}),
	}
}

// Update swaps in a new catalog snapshot. In-flight queries keep the index
// they started with.
func (d *Debouncer) Update(ix *Index) {
	if ix == nil {
		return
	}
	d.mu.Lock()
	d.index = ix
	d.mu.Unlock()
}

// Search schedules q for evaluation after the quiet period, cancelling any
// pending query.
func (d *Debouncer) Search(q string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}

	d.seq++
	seq := d.seq
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.quiet, func() { d.evaluate(seq, q) })
}

func (d *Debouncer) evaluate(seq uint64, q string) {
	d.mu.Lock()
	if d.closed || seq != d.seq {
		d.mu.Unlock()
		return
	}
	ix := d.index
	d.mu.Unlock()

	r := Result{Query: q, Items: ix.Query(q)}

	// Drop-oldest delivery: a slow consumer sees only the latest result.
	select {
	case d.results <- r:
	default:
		select {
		case <-d.results:
		default:
		}
		select {
		case d.results <- r:
		default:
		}
	}
}

// Results delivers evaluated queries. Only the most recent result is
// retained when the consumer lags.
func (d *Debouncer) Results() <-chan Result { return d.results }

// Close cancels any pending query. Further Search calls are no-ops. The
// results channel stays open; at most one already-evaluating query may
// still deliver after Close.
func (d *Debouncer) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.closed = true
	if d.timer != nil {
		d.timer.Stop()
	}
}
