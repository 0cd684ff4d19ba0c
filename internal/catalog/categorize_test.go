// SPDX-License-Identifier: MIT

package catalog

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeItems(typ ContentType, group string, n int) []Item {
	items := make([]Item, n)
	for i := range items {
		items[i] = Item{
			ID:      fmt.Sprintf("%s-%s-%d", typ, group, i),
			Name:    fmt.Sprintf("%s item %d", group, i),
			Group:   group,
			Address: fmt.Sprintf("http://x/%s/%d", group, i),
			Type:    typ,
		}
	}
	return items
}

func titles(cats []Category) []string {
	out := make([]string, len(cats))
	for i, c := range cats {
		out[i] = c.Title
	}
	return out
}

func TestMovieGroupsOrderedByCount(t *testing.T) {
	var items []Item
	items = append(items, makeItems(TypeMovie, "Drama", 4)...)
	items = append(items, makeItems(TypeMovie, "Action", 7)...)
	items = append(items, makeItems(TypeMovie, "Horror", 3)...)

	cats := Categorize(items, DefaultOptions())
	require.Len(t, cats, 3)
	assert.Equal(t, []string{"Action", "Drama", "Horror"}, titles(cats))
	for _, c := range cats {
		assert.Equal(t, TypeMovie, c.Type)
	}
}

func TestMovieGroupBelowThresholdExcluded(t *testing.T) {
	var items []Item
	items = append(items, makeItems(TypeMovie, "Drama", 3)...)
	items = append(items, makeItems(TypeMovie, "Obscure", 2)...)

	cats := Categorize(items, DefaultOptions())
	require.Len(t, cats, 1)
	assert.Equal(t, "Drama", cats[0].Title)

	// Every categorized item satisfies its category's predicate.
	for _, it := range cats[0].Items {
		assert.Equal(t, "Drama", NormalizeGroup(it.Group))
	}
}

func TestLivePriorityGroupsFirst(t *testing.T) {
	var items []Item
	items = append(items, makeItems(TypeLive, "Music", 8)...)
	items = append(items, makeItems(TypeLive, "Kids", 2)...)
	items = append(items, makeItems(TypeLive, "Sports", 6)...)
	items = append(items, makeItems(TypeLive, "National", 1)...)

	cats := Categorize(items, DefaultOptions())
	// Priority order regardless of size or discovery order, then the rest.
	assert.Equal(t, []string{"National", "Sports", "Kids", "Music"}, titles(cats))
}

func TestLiveNonPriorityThreshold(t *testing.T) {
	var items []Item
	items = append(items, makeItems(TypeLive, "Regional", 4)...) // below 5
	items = append(items, makeItems(TypeLive, "Music", 5)...)

	cats := Categorize(items, DefaultOptions())
	assert.Equal(t, []string{"Music"}, titles(cats))
}

func TestSeriesSingleCategory(t *testing.T) {
	items := makeItems(TypeSeries, "Whatever", 2)

	cats := Categorize(items, DefaultOptions())
	require.Len(t, cats, 1)
	assert.Equal(t, "Series", cats[0].Title)
	assert.Equal(t, TypeSeries, cats[0].Type)

	assert.Empty(t, Categorize(nil, DefaultOptions()))
}

func TestCategoryCap(t *testing.T) {
	items := makeItems(TypeMovie, "Action", 40)

	opts := DefaultOptions()
	cats := Categorize(items, opts)
	require.Len(t, cats, 1)
	assert.Len(t, cats[0].Items, opts.Cap)

	// Overflow items remain in the flat catalog.
	cat := Build("src", items, opts)
	assert.Len(t, cat.Items, 40)
}

func TestGroupNormalizationMergesDecoratedLabels(t *testing.T) {
	var items []Item
	items = append(items, makeItems(TypeMovie, "★ Action ★", 2)...)
	items = append(items, makeItems(TypeMovie, "| Action |", 2)...)

	cats := Categorize(items, DefaultOptions())
	require.Len(t, cats, 1)
	assert.Equal(t, "Action", cats[0].Title)
	assert.Len(t, cats[0].Items, 4)
}

func TestNormalizeGroup(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Sports", "Sports"},
		{"★ Movies ★", "Movies"},
		{"| US | Sports |", "US Sports"},
		{"--- VOD ---", "VOD"},
		{"   ", "Other"},
		{"", "Other"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeGroup(tt.in), "input %q", tt.in)
	}
}

func TestCategorizeDeterministic(t *testing.T) {
	var items []Item
	items = append(items, makeItems(TypeMovie, "Drama", 5)...)
	items = append(items, makeItems(TypeLive, "Sports", 6)...)
	items = append(items, makeItems(TypeSeries, "Shows", 3)...)

	first := Categorize(items, DefaultOptions())
	second := Categorize(items, DefaultOptions())
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("categorize not deterministic (-first +second):\n%s", diff)
	}
}

func TestBuildFeatured(t *testing.T) {
	var items []Item
	items = append(items, makeItems(TypeLive, "Sports", 6)...)
	items = append(items, makeItems(TypeMovie, "Action", 4)...)

	cat := Build("src", items, DefaultOptions())
	require.NotNil(t, cat.Featured)
	assert.Equal(t, TypeMovie, cat.Featured.Type)

	liveOnly := Build("src", makeItems(TypeLive, "News", 6), DefaultOptions())
	require.NotNil(t, liveOnly.Featured)
	assert.Equal(t, TypeLive, liveOnly.Featured.Type)

	empty := Build("src", nil, DefaultOptions())
	assert.Nil(t, empty.Featured)
}

func TestBuildStampsBuildTime(t *testing.T) {
	before := time.Now().UTC()
	cat := Build("src", makeItems(TypeLive, "News", 2), DefaultOptions())
	after := time.Now().UTC()

	require.False(t, cat.BuiltAt.IsZero())
	assert.False(t, cat.BuiltAt.Before(before))
	assert.False(t, cat.BuiltAt.After(after))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "us-sports", slugify("US Sports"))
	assert.Equal(t, "other", slugify("★★★"))
	assert.Equal(t, "action", slugify("Action"))
}
