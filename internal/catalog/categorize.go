// SPDX-License-Identifier: MIT

package catalog

import (
	"sort"
	"strings"
	"time"
	"unicode"
)

// Options controls category derivation.
type Options struct {
	// MinMovieGroup is the minimum item count for a movie group to become a
	// category.
	MinMovieGroup int
	// MinLiveGroup is the minimum item count for a non-priority live group to
	// become a category.
	MinLiveGroup int
	// Cap bounds the number of items listed per category. Overflow items stay
	// in the flat catalog but are excluded from the category listing.
	Cap int
	// PriorityGroups are live group titles emitted first, in this order, when
	// present. Priority groups bypass the size threshold.
	PriorityGroups []string
}

// DefaultOptions returns the built-in categorization parameters.
func DefaultOptions() Options {
	return Options{
		MinMovieGroup:  3,
		MinLiveGroup:   5,
		Cap:            25,
		PriorityGroups: []string{"National", "Sports", "Documentary", "News", "Kids"},
	}
}

type bucket struct {
	title string
	items []Item
	first int // discovery order
}

// Categorize derives the ordered category list from a classified item slice.
// The derivation is deterministic: the same input always yields the same
// categories in the same order.
func Categorize(items []Item, opts Options) []Category {
	var movies, live, series []Item
	for _, it := range items {
		switch it.Type {
		case TypeMovie:
			movies = append(movies, it)
		case TypeSeries:
			series = append(series, it)
		default:
			live = append(live, it)
		}
	}

	out := make([]Category, 0, 8)
	out = append(out, liveCategories(live, opts)...)
	out = append(out, movieCategories(movies, opts)...)
	if len(series) > 0 {
		out = append(out, Category{
			ID:    "series",
			Title: "Series",
			Type:  TypeSeries,
			Items: capItems(series, opts.Cap),
		})
	}
	return out
}

// Build assembles the full published catalog for one load run.
func Build(source string, items []Item, opts Options) *Catalog {
	cats := Categorize(items, opts)
	return &Catalog{
		Source:     source,
		Items:      items,
		Categories: cats,
		Featured:   pickFeatured(items, cats),
		BuiltAt:    time.Now().UTC(),
	}
}

// pickFeatured returns the first item of the first movie category, or the
// first item overall when no movie category exists.
func pickFeatured(items []Item, cats []Category) *Item {
	for _, c := range cats {
		if c.Type == TypeMovie && len(c.Items) > 0 {
			it := c.Items[0]
			return &it
		}
	}
	if len(items) > 0 {
		it := items[0]
		return &it
	}
	return nil
}

func movieCategories(movies []Item, opts Options) []Category {
	buckets := groupItems(movies)
	eligible := make([]*bucket, 0, len(buckets))
	for _, b := range buckets {
		if len(b.items) >= opts.MinMovieGroup {
			eligible = append(eligible, b)
		}
	}
	// Largest groups first; ties keep discovery order.
	sort.SliceStable(eligible, func(i, j int) bool {
		if len(eligible[i].items) != len(eligible[j].items) {
			return len(eligible[i].items) > len(eligible[j].items)
		}
		return eligible[i].first < eligible[j].first
	})

	out := make([]Category, 0, len(eligible))
	for _, b := range eligible {
		out = append(out, Category{
			ID:    "movies-" + slugify(b.title),
			Title: b.title,
			Type:  TypeMovie,
			Items: capItems(b.items, opts.Cap),
		})
	}
	return out
}

func liveCategories(live []Item, opts Options) []Category {
	buckets := groupItems(live)
	byKey := make(map[string]*bucket, len(buckets))
	for _, b := range buckets {
		byKey[strings.ToLower(b.title)] = b
	}

	out := make([]Category, 0, len(buckets))
	emitted := make(map[string]bool, len(opts.PriorityGroups))
	for _, title := range opts.PriorityGroups {
		key := strings.ToLower(title)
		b, ok := byKey[key]
		if !ok {
			continue
		}
		emitted[key] = true
		out = append(out, Category{
			ID:    "live-" + slugify(b.title),
			Title: b.title,
			Type:  TypeLive,
			Items: capItems(b.items, opts.Cap),
		})
	}
	for _, b := range buckets {
		if emitted[strings.ToLower(b.title)] {
			continue
		}
		if len(b.items) < opts.MinLiveGroup {
			continue
		}
		out = append(out, Category{
			ID:    "live-" + slugify(b.title),
			Title: b.title,
			Type:  TypeLive,
			Items: capItems(b.items, opts.Cap),
		})
	}
	return out
}

// groupItems buckets items by normalized group label in discovery order.
func groupItems(items []Item) []*bucket {
	order := make([]*bucket, 0, 16)
	index := make(map[string]*bucket, 16)
	for i, it := range items {
		title := NormalizeGroup(it.Group)
		key := strings.ToLower(title)
		b, ok := index[key]
		if !ok {
			b = &bucket{title: title, first: i}
			index[key] = b
			order = append(order, b)
		}
		b.items = append(b.items, it)
	}
	return order
}

func capItems(items []Item, limit int) []Item {
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	out := make([]Item, len(items))
	copy(out, items)
	return out
}

// decorative runes providers pad group labels with.
const decorativeRunes = "|★▌▐►◄▶◀●■◆❖•·"

// NormalizeGroup strips decorative separators and surplus whitespace from a
// group label. An empty result maps to "Other".
func NormalizeGroup(group string) string {
	var sb strings.Builder
	for _, r := range group {
		if strings.ContainsRune(decorativeRunes, r) {
			sb.WriteByte(' ')
			continue
		}
		sb.WriteRune(r)
	}
	s := strings.TrimFunc(sb.String(), func(r rune) bool {
		return unicode.IsSpace(r) || r == '-' || r == '=' || r == '~' || r == '_' || r == '*'
	})
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return "Other"
	}
	return s
}

// slugify converts a category title into a URL-safe identifier.
// Example: "US Sports" → "us-sports".
func slugify(title string) string {
	var sb strings.Builder
	lastDash := false
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) && r < unicode.MaxASCII || unicode.IsDigit(r) {
			sb.WriteRune(r)
			lastDash = false
		} else if !lastDash {
			sb.WriteByte('-')
			lastDash = true
		}
	}
	slug := strings.Trim(sb.String(), "-")
	if slug == "" {
		return "other"
	}
	if len(slug) > 50 {
		slug = strings.TrimRight(slug[:50], "-")
	}
	return slug
}
