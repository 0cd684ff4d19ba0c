// SPDX-License-Identifier: MIT

// Package catalog defines the catalog data model and category derivation.
package catalog

import "time"

// ContentType says what kind of content a catalog item is. Every item has
// exactly one.
type ContentType string

// Content type variants.
const (
	TypeLive   ContentType = "live"
	TypeMovie  ContentType = "movie"
	TypeSeries ContentType = "series"
)

// Valid reports whether t is one of the three known content types.
func (t ContentType) Valid() bool {
	switch t {
	case TypeLive, TypeMovie, TypeSeries:
		return true
	}
	return false
}

// Item is the catalog's unit of record: one classified playlist entry.
// Items are immutable after creation.
type Item struct {
	ID      string      `json:"id"`
	Name    string      `json:"name"`
	Logo    string      `json:"logo,omitempty"`
	Group   string      `json:"group,omitempty"`
	Address string      `json:"address"`
	Type    ContentType `json:"type"`
	Year    int         `json:"year,omitempty"`
	Rating  float64     `json:"rating,omitempty"`
	Country string      `json:"country,omitempty"`
}

// Category is a named, ordered subset of items of one content type.
// Categories are derived wholesale from the classified set and never mutated
// in place.
type Category struct {
	ID    string      `json:"id"`
	Title string      `json:"title"`
	Type  ContentType `json:"type"`
	Items []Item      `json:"items"`
}

// Catalog is the published result of one load run. It is replaced atomically
// on each successful run; readers never observe a half-built catalog.
type Catalog struct {
	Source     string     `json:"source"`
	Items      []Item     `json:"items"`
	Categories []Category `json:"categories"`
	Featured   *Item      `json:"featured,omitempty"`
	BuiltAt    time.Time  `json:"built_at"`
}
