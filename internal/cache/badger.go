// SPDX-License-Identifier: MIT

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// BadgerBackend persists cache entries in an embedded Badger database so
// cached playlists survive restarts.
type BadgerBackend struct {
	db *badger.DB
}

// OpenBadger opens (or creates) a Badger-backed cache at path.
func OpenBadger(path string) (*BadgerBackend, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger cache at %s: %w", path, err)
	}
	return &BadgerBackend{db: db}, nil
}

// Get retrieves a stored entry. Absence is (nil, nil).
func (b *BadgerBackend) Get(_ context.Context, key string) (*Entry, error) {
	var out Entry
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &out)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("badger get %q: %w", key, err)
	}
	return &out, nil
}

// Set stores an entry, overwriting unconditionally.
func (b *BadgerBackend) Set(_ context.Context, key string, e Entry) error {
	buf, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal cache entry: %w", err)
	}
	err = b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), buf)
	})
	if err != nil {
		return fmt.Errorf("badger set %q: %w", key, err)
	}
	return nil
}

// Delete removes an entry.
func (b *BadgerBackend) Delete(_ context.Context, key string) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("badger delete %q: %w", key, err)
	}
	return nil
}

// Close closes the underlying database.
func (b *BadgerBackend) Close() error { return b.db.Close() }
