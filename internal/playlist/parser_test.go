// SPDX-License-Identifier: MIT

package playlist

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSingleEntry(t *testing.T) {
	input := "#EXTM3U\n#EXTINF:-1 group-title=\"Sports\",ESPN\nhttp://x/1\n"

	entries, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.Equal(t, "ESPN", entries[0].Name)
	assert.Equal(t, "Sports", entries[0].Group())
	assert.Equal(t, "http://x/1", entries[0].Address)
}

func TestParseAttributes(t *testing.T) {
	input := `#EXTINF:-1 tvg-id="espn.us" tvg-logo="http://img/espn.png" group-title="US | Sports, HD",ESPN HD
http://x/espn
`
	entries, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, "ESPN HD", e.Name)
	assert.Equal(t, "http://img/espn.png", e.Logo())
	// Attribute values may contain commas; name is after the LAST comma.
	assert.Equal(t, "US | Sports, HD", e.Group())
	assert.Equal(t, "espn.us", e.Attrs[AttrID])
}

func TestParseDanglingDirectiveDropped(t *testing.T) {
	input := `#EXTINF:-1 group-title="A",First
#EXTINF:-1 group-title="B",Second
http://x/2
#EXTINF:-1 group-title="C",Trailing
`
	entries, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Second", entries[0].Name)
}

func TestParseCRLFAndBlankLines(t *testing.T) {
	input := "#EXTM3U\r\n\r\n#EXTINF:-1 group-title=\"News\",CNN\r\n\r\nhttp://x/cnn\r\n"

	entries, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "CNN", entries[0].Name)
	assert.Equal(t, "http://x/cnn", entries[0].Address)
}

func TestParseCommentsIgnored(t *testing.T) {
	input := `#EXTM3U
#EXTINF:-1 group-title="X",Chan
#EXTGRP:ignored
http://x/chan
#EXTVLCOPT:network-caching=1000
`
	entries, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "http://x/chan", entries[0].Address)
}

func TestParseMalformedAttributes(t *testing.T) {
	// Unterminated quote: attribute parsing stops, the name still parses.
	input := "#EXTINF:-1 tvg-logo=\"broken group-title=\"Movies\",Name After Comma\nhttp://x/m\n"

	entries, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Name After Comma", entries[0].Name)
}

func TestParseNameFallsBackToTvgName(t *testing.T) {
	input := "#EXTINF:-1 tvg-name=\"Implicit\" group-title=\"G\",\nhttp://x/i\n"

	entries, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Implicit", entries[0].Name)
}

func TestParseNormalizesNames(t *testing.T) {
	// "é" written as e + combining acute must come out composed.
	input := "#EXTINF:-1 group-title=\"FR\",Cinéma\nhttp://x/fr\n"

	entries, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Cinéma", entries[0].Name)
}

func TestParseNoDirectives(t *testing.T) {
	_, err := Parse(strings.NewReader("hello\nworld\n"))
	assert.ErrorIs(t, err, ErrNoEntries)

	_, err = Parse(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrNoEntries)
}

func TestParseDeterministic(t *testing.T) {
	input := `#EXTINF:-1 group-title="A",One
http://x/1
#EXTINF:-1 group-title="B",Two
http://x/2
`
	first, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	second, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestParseLargeInput(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("#EXTM3U\n")
	for i := 0; i < 5000; i++ {
		sb.WriteString("#EXTINF:-1 group-title=\"Bulk\",Channel\n")
		sb.WriteString("http://x/bulk\n")
	}

	entries, err := Parse(strings.NewReader(sb.String()))
	require.NoError(t, err)
	assert.Len(t, entries, 5000)
}
