// SPDX-License-Identifier: MIT

package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseBackend runs the shared Backend contract against b.
func exerciseBackend(t *testing.T, b Backend) {
	t.Helper()
	ctx := context.Background()

	got, err := b.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, got, "absent key must yield (nil, nil)")

	entry := Entry{Payload: []byte("#EXTM3U"), Timestamp: 1700000000000}
	require.NoError(t, b.Set(ctx, "raw:src", entry))

	got, err = b.Get(ctx, "raw:src")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, entry, *got)

	// Overwrite replaces both payload and timestamp.
	updated := Entry{Payload: []byte("#EXTM3U\n#EXTINF"), Timestamp: 1700000060000}
	require.NoError(t, b.Set(ctx, "raw:src", updated))
	got, err = b.Get(ctx, "raw:src")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, updated, *got)

	require.NoError(t, b.Delete(ctx, "raw:src"))
	got, err = b.Get(ctx, "raw:src")
	require.NoError(t, err)
	assert.Nil(t, got)

	// Deleting an absent key is not an error.
	require.NoError(t, b.Delete(ctx, "raw:src"))
}

func TestMemoryBackend(t *testing.T) {
	b := NewMemoryBackend()
	defer b.Close()
	exerciseBackend(t, b)
}

func TestBadgerBackend(t *testing.T) {
	b, err := OpenBadger(t.TempDir())
	require.NoError(t, err)
	defer b.Close()
	exerciseBackend(t, b)
}

func TestBadgerBackendPersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	b, err := OpenBadger(dir)
	require.NoError(t, err)
	entry := Entry{Payload: []byte("catalog"), Timestamp: 1700000000000}
	require.NoError(t, b.Set(ctx, "catalog:src", entry))
	require.NoError(t, b.Close())

	reopened, err := OpenBadger(dir)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(ctx, "catalog:src")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, entry, *got)
}
