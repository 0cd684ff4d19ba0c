// SPDX-License-Identifier: MIT

// Package search answers substring queries over a published catalog, with
// debounced evaluation so rapid keystrokes cost one scan, not one each.
package search

import (
	"strings"

	"github.com/ercanturk19/flixify-sub000/internal/catalog"
)

const (
	// DefaultLimit caps how many items one query returns.
	DefaultLimit = 50

	// DefaultScanLimit bounds how many items of each content type are
	// indexed. Catalogs beyond the bound trade recall for query latency;
	// items past the per-type bound are never matched.
	DefaultScanLimit = 20000
)

// Options configures an Index. Zero values take defaults.
type Options struct {
	Limit     int
	ScanLimit int
}

type doc struct {
	item       catalog.Item
	nameLower  string
	groupLower string
}

// Index holds a point-in-time snapshot of the catalog, pre-lowered for
// case-insensitive matching. An Index is immutable; a new catalog gets a
// new Index.
type Index struct {
	docs  []doc
	limit int
}

// NewIndex builds an index over items. Items are kept in catalog order,
// truncated per content type at the scan bound.
func NewIndex(items []catalog.Item, opts Options) *Index {
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}
	if opts.ScanLimit <= 0 {
		opts.ScanLimit = DefaultScanLimit
	}

	seen := make(map[catalog.ContentType]int, 3)
	docs := make([]doc, 0, len(items))
	for _, it := range items {
		if seen[it.Type] >= opts.ScanLimit {
			continue
		}
		seen[it.Type]++
		docs = append(docs, doc{
			item:       it,
			nameLower:  strings.ToLower(it.Name),
			groupLower: strings.ToLower(it.Group),
		})
	}
	return &Index{docs: docs, limit: opts.Limit}
}

// Len reports how many items the index covers.
func (ix *Index) Len() int { return len(ix.docs) }

// Query returns up to the result cap of items whose display name or group
// contains q, case-insensitively. A blank query yields no results.
func (ix *Index) Query(q string) []catalog.Item {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return nil
	}

	var out []catalog.Item
	for _, d := range ix.docs {
		if strings.Contains(d.nameLower, q) || strings.Contains(d.groupLower, q) {
			out = append(out, d.item)
			if len(out) >= ix.limit {
				break
			}
		}
	}
	return out
}
