// SPDX-License-Identifier: MIT

package classify

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ercanturk19/flixify-sub000/internal/catalog"
	"github.com/ercanturk19/flixify-sub000/internal/playlist"
)

var (
	// seasonEpisodeRe matches episode markers like "S01E02", "S1 E2",
	// "Season 3" or "Episode 12" in display names.
	seasonEpisodeRe = regexp.MustCompile(`(?i)\bs\d{1,2}\s*e\d{1,3}\b|\bseason\s*\d+|\bepisode\s*\d+`)

	yearRe    = regexp.MustCompile(`\(((?:19|20)\d{2})\)`)
	ratingRe  = regexp.MustCompile(`\[(\d{1,2}(?:\.\d)?)\]`)
	countryRe = regexp.MustCompile(`^([A-Z]{2}):\s*`)
	spacesRe  = regexp.MustCompile(`\s{2,}`)
)

// Classifier classifies raw entries into catalog items using an ordered rule
// list: series indicators are checked before movie indicators, and anything
// unmatched is a live channel.
type Classifier struct {
	rules Rules

	seriesTokens []string
	movieTokens  []string
	seriesPaths  []string
	moviePaths   []string
	movieExts    []string
	exclude      map[string]struct{}
}

// New builds a Classifier from the given rules. Token lists are lowercased
// once up front so per-entry matching stays cheap. Simple case mapping keeps
// the Turkish dotted İ matching its plain-i tokens.
func New(rules Rules) *Classifier {
	c := &Classifier{
		rules:   rules,
		exclude: make(map[string]struct{}, len(rules.CountryExclude)),
	}
	c.seriesTokens = lowerAll(rules.SeriesTokens)
	c.movieTokens = lowerAll(rules.MovieTokens)
	c.seriesPaths = lowerAll(rules.SeriesPaths)
	c.moviePaths = lowerAll(rules.MoviePaths)
	c.movieExts = lowerAll(rules.MovieExts)
	for _, code := range rules.CountryExclude {
		c.exclude[strings.ToUpper(code)] = struct{}{}
	}
	return c
}

func lowerAll(tokens []string) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = strings.ToLower(tok)
	}
	return out
}

// Classify converts one raw entry to a catalog item. It is total: every entry
// yields an item with exactly one content type, and metadata extraction never
// fails — absent markers simply leave the fields unset.
func (c *Classifier) Classify(e playlist.Entry, id string) catalog.Item {
	item := catalog.Item{
		ID:      id,
		Logo:    e.Logo(),
		Group:   e.Group(),
		Address: e.Address,
	}
	if item.Group == "" {
		item.Group = "Other"
	}

	name := e.Name
	name, item.Country = extractCountry(name, c.exclude)
	name, item.Year = extractYear(name)
	name, item.Rating = extractRating(name)
	item.Name = cleanName(name)
	if item.Name == "" {
		item.Name = e.Name
	}

	item.Type = c.contentType(e)
	return item
}

// contentType applies the rule list in fixed precedence order.
func (c *Classifier) contentType(e playlist.Entry) catalog.ContentType {
	text := strings.ToLower(e.Name + " " + e.Group())
	addr := strings.ToLower(e.Address)

	if containsAny(addr, c.seriesPaths) ||
		containsAny(text, c.seriesTokens) ||
		seasonEpisodeRe.MatchString(e.Name) {
		return catalog.TypeSeries
	}
	if containsAny(addr, c.moviePaths) ||
		hasSuffixAny(addr, c.movieExts) ||
		containsAny(text, c.movieTokens) {
		return catalog.TypeMovie
	}
	return catalog.TypeLive
}

func containsAny(s string, tokens []string) bool {
	for _, tok := range tokens {
		if strings.Contains(s, tok) {
			return true
		}
	}
	return false
}

func hasSuffixAny(s string, suffixes []string) bool {
	for _, suf := range suffixes {
		if strings.HasSuffix(s, suf) {
			return true
		}
	}
	return false
}

// extractCountry captures a leading two-letter uppercase country prefix
// ("TR: ...") and strips it from the name. Prefixes on the exclusion list are
// left in place.
func extractCountry(name string, exclude map[string]struct{}) (string, string) {
	m := countryRe.FindStringSubmatch(name)
	if m == nil {
		return name, ""
	}
	code := m[1]
	if _, skip := exclude[code]; skip {
		return name, ""
	}
	return strings.TrimSpace(name[len(m[0]):]), code
}

// extractYear captures a four-digit year in parentheses anywhere in the name
// and strips it.
func extractYear(name string) (string, int) {
	m := yearRe.FindStringSubmatchIndex(name)
	if m == nil {
		return name, 0
	}
	year, err := strconv.Atoi(name[m[2]:m[3]])
	if err != nil {
		return name, 0
	}
	return name[:m[0]] + name[m[1]:], year
}

// extractRating captures a decimal rating in brackets and strips it.
func extractRating(name string) (string, float64) {
	m := ratingRe.FindStringSubmatchIndex(name)
	if m == nil {
		return name, 0
	}
	rating, err := strconv.ParseFloat(name[m[2]:m[3]], 64)
	if err != nil {
		return name, 0
	}
	return name[:m[0]] + name[m[1]:], rating
}

func cleanName(name string) string {
	return strings.TrimSpace(spacesRe.ReplaceAllString(name, " "))
}
