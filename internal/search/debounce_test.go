// SPDX-License-Identifier: MIT

package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func waitResult(t *testing.T, d *Debouncer) Result {
	t.Helper()
	select {
	case r := <-d.Results():
		return r
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for search result")
		return Result{}
	}
}

func TestDebouncerEvaluatesAfterQuietPeriod(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	defer d.Close()
	d.Update(NewIndex(sampleItems(), Options{}))

	d.Search("matrix")
	r := waitResult(t, d)
	assert.Equal(t, "matrix", r.Query)
	require.Len(t, r.Items, 1)
	assert.Equal(t, "3", r.Items[0].ID)
}

func TestDebouncerLatestQueryWins(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)
	defer d.Close()
	d.Update(NewIndex(sampleItems(), Options{}))

	// Rapid keystrokes within the quiet period: only the final query runs.
	d.Search("m")
	d.Search("ma")
	d.Search("mat")
	d.Search("matrix")

	r := waitResult(t, d)
	assert.Equal(t, "matrix", r.Query)

	// No second result arrives for the superseded queries.
	select {
	case r := <-d.Results():
		t.Fatalf("unexpected extra result for query %q", r.Query)
	case <-time.After(150 * time.Millisecond):
	}
}

func TestDebouncerCloseCancelsPending(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)
	d.Update(NewIndex(sampleItems(), Options{}))

	d.Search("matrix")
	d.Close()

	select {
	case r := <-d.Results():
		t.Fatalf("result delivered after close: %q", r.Query)
	case <-time.After(150 * time.Millisecond):
	}

	// Searching after close is a no-op.
	d.Search("matrix")
	select {
	case <-d.Results():
		t.Fatal("result delivered after close")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestDebouncerUpdateSwapsIndex(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)
	defer d.Close()

	d.Search("matrix")
	r := waitResult(t, d)
	assert.Empty(t, r.Items, "empty index matches nothing")

	d.Update(NewIndex(sampleItems(), Options{}))
	d.Search("matrix")
	r = waitResult(t, d)
	assert.Len(t, r.Items, 1)
}

func TestDebouncerDropsOldestOnSlowConsumer(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)
	defer d.Close()
	d.Update(NewIndex(sampleItems(), Options{}))

	d.Search("matrix")
	time.Sleep(100 * time.Millisecond)
	d.Search("inception")
	time.Sleep(100 * time.Millisecond)

	// Both queries ran, but the unread first result was replaced.
	r := waitResult(t, d)
	assert.Equal(t, "inception", r.Query)
}
