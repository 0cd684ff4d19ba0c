// SPDX-License-Identifier: MIT

// Package classify assigns a content type to raw playlist entries and
// extracts auxiliary metadata from their display names.
package classify

// Rules holds the token lists driving heuristic classification. The lists are
// data, not logic: deployments tune them without code changes. Token matching
// is case-folded substring matching over the display name and group label;
// path tokens and extensions are matched against the address.
type Rules struct {
	SeriesTokens []string `yaml:"series_tokens"`
	SeriesPaths  []string `yaml:"series_paths"`
	MovieTokens  []string `yaml:"movie_tokens"`
	MoviePaths   []string `yaml:"movie_paths"`
	MovieExts    []string `yaml:"movie_exts"`

	// CountryExclude lists two-letter prefixes that look like country codes
	// but are quality or medium tags. The list is known-incomplete.
	CountryExclude []string `yaml:"country_exclude"`
}

// DefaultRules returns the built-in token lists. Tuned empirically against
// real provider playlists; series tokens take precedence over movie tokens.
func DefaultRules() Rules {
	return Rules{
		SeriesTokens: []string{"series", "serie", "dizi", "tv show", "show"},
		SeriesPaths:  []string{"/series/", "/serije/"},
		MovieTokens:  []string{"movie", "film", "cinema", "sinema", "vod"},
		MoviePaths:   []string{"/movie/", "/movies/", "/vod/"},
		MovieExts:    []string{".mp4", ".mkv", ".avi"},
		CountryExclude: []string{
			"HD", "SD", "TV", "FM",
		},
	}
}
