// SPDX-License-Identifier: MIT

package search

import (
	"sync"
	"time"

	"github.com/ercanturk19/flixify-sub000/internal/catalog"
)

// Watcher keeps a standing query armed against the latest published catalog
// and reports its matches. Catalog publishes landing inside one quiet period
// collapse into a single evaluation over the newest snapshot.
type Watcher struct {
	query  string
	opts   Options
	deb    *Debouncer
	notify func(Result)
	done   chan struct{}
	wg     sync.WaitGroup
}

// NewWatcher starts a watcher for query. notify is called from the watcher's
// own goroutine for every evaluation, including ones with no matches.
func NewWatcher(query string, quiet time.Duration, opts Options, notify func(Result)) *Watcher {
	w := &Watcher{
		query:  query,
		opts:   opts,
		deb:    NewDebouncer(quiet),
		notify: notify,
		done:   make(chan struct{}),
	}
	w.wg.Add(1)
	go w.loop()
	return w
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case r := <-w.deb.Results():
			w.notify(r)
		}
	}
}

// OnCatalog re-arms the standing query against cat. A nil catalog is ignored.
func (w *Watcher) OnCatalog(cat *catalog.Catalog) {
	if cat == nil {
		return
	}
	w.deb.Update(NewIndex(cat.Items, w.opts))
	w.deb.Search(w.query)
}

// Close stops the watcher. notify is not called after Close returns.
func (w *Watcher) Close() {
	w.deb.Close()
	close(w.done)
	w.wg.Wait()
}
