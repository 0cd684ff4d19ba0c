// SPDX-License-Identifier: MIT

// Package playlist parses extended M3U playlist text into raw entries and
// writes catalogs back out in the same format.
package playlist

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/ercanturk19/flixify-sub000/internal/metrics"
)

// ErrNoEntries is returned when the input contains no #EXTINF directive at
// all, which means the source is not in the expected format. It is distinct
// from a playlist that parses but yields zero complete entries.
var ErrNoEntries = errors.New("playlist: no EXTINF directives found")

// Well-known directive attributes.
const (
	AttrLogo  = "tvg-logo"
	AttrGroup = "group-title"
	AttrID    = "tvg-id"
	AttrName  = "tvg-name"
)

const maxLineSize = 1 << 20 // single lines beyond 1 MiB abort the scan

// Entry is one raw playlist entry: a directive line plus its address line.
// Name and Address are always non-empty; an entry without an address line is
// never materialized.
type Entry struct {
	Name    string
	Attrs   map[string]string
	Address string
}

// Group returns the entry's group label, or "" when absent.
func (e Entry) Group() string { return e.Attrs[AttrGroup] }

// Logo returns the entry's logo reference, or "" when absent.
func (e Entry) Logo() string { return e.Attrs[AttrLogo] }

// Parse scans playlist text line by line and returns the complete entries.
// A #EXTINF line opens a pending entry; the next non-blank, non-comment line
// is its address and emits it. A pending entry superseded by another #EXTINF
// line, or left open at end of input, is dropped silently. Arbitrary line
// endings and blank lines are tolerated.
func Parse(r io.Reader) ([]Entry, error) {
	var entries []Entry
	var pending *Entry
	sawDirective := false
	dropped := 0

	sc := bufio.NewScanner(r)
	sc.Buffer(nil, maxLineSize)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#EXTINF:") {
			sawDirective = true
			if pending != nil {
				dropped++
			}
			pending = parseDirective(line)
			if pending == nil {
				dropped++
			}
			continue
		}
		if strings.HasPrefix(line, "#") {
			// Comment or header, never an address.
			continue
		}
		if pending != nil {
			pending.Address = line
			entries = append(entries, *pending)
			pending = nil
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if !sawDirective {
		return nil, ErrNoEntries
	}
	if pending != nil {
		dropped++
	}
	if dropped > 0 {
		metrics.AddEntriesDropped(dropped)
	}
	return entries, nil
}

// parseDirective extracts the display name and key="value" attributes from an
// #EXTINF line. Returns nil when no usable display name is present.
func parseDirective(line string) *Entry {
	body := strings.TrimPrefix(line, "#EXTINF:")

	// The display name is the free text after the last comma; attribute
	// values may themselves contain commas.
	name := ""
	if idx := strings.LastIndex(body, ","); idx >= 0 {
		name = strings.TrimSpace(body[idx+1:])
		body = body[:idx]
	}

	attrs := parseAttrs(body)
	if name == "" {
		name = strings.TrimSpace(attrs[AttrName])
	}
	if name == "" {
		// Directive without any display name: unusable, drop it.
		return nil
	}
	// Provider playlists mix composed and decomposed UTF-8; normalize so that
	// classification and search see one spelling per name.
	return &Entry{Name: norm.NFC.String(name), Attrs: attrs}
}

// parseAttrs parses key="value" pairs, tolerating single quotes and stopping
// at the first malformed pair rather than failing the whole line.
func parseAttrs(s string) map[string]string {
	attrs := make(map[string]string)
	for {
		s = strings.TrimSpace(s)
		if s == "" {
			break
		}
		eq := strings.IndexByte(s, '=')
		if eq <= 0 {
			break
		}
		key := strings.TrimSpace(s[:eq])
		if idx := strings.LastIndexAny(key, " \t"); idx >= 0 {
			key = strings.TrimSpace(key[idx+1:])
		}
		s = strings.TrimSpace(s[eq+1:])
		if len(s) < 2 {
			break
		}
		quote := s[0]
		if quote != '"' && quote != '\'' {
			break
		}
		s = s[1:]
		end := strings.IndexByte(s, quote)
		if end < 0 {
			break
		}
		if key != "" {
			attrs[key] = s[:end]
		}
		s = s[end+1:]
	}
	return attrs
}
