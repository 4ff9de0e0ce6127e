// Lantern: one contract for scraping many manga sites.
// Copyright (C) 2025 The Lantern Authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

// Package search holds the site-independent half of searching: deciding
// whether a candidate satisfies a request and walking paged listings.
package search

import (
	"strings"

	"Lantern/pkg/core"
	"Lantern/pkg/engine/parser/html"
)

// Match reports whether a result satisfies both the title and the tag
// constraints of req.
func Match(req core.SearchRequest, result core.SearchResult) bool {
	return MatchTitle(req.Title, result.Title) && MatchTags(req, result.Tags)
}

// MatchTags applies the per-axis include and exclude sets. On each axis a
// candidate needs at least one include tag and none of the exclude tags;
// axes are combined with AND. A tag listed in both sets excludes.
func MatchTags(req core.SearchRequest, tags core.Tags) bool {
	for _, axis := range req.Axes() {
		if exclude := req.Exclude[axis]; len(exclude) > 0 && tags.Any(axis, exclude) {
			return false
		}
		if include := req.Include[axis]; len(include) > 0 && !tags.Any(axis, include) {
			return false
		}
	}
	return true
}

// MatchTitle is a case-insensitive substring test. An empty query matches
// everything.
func MatchTitle(query, title string) bool {
	query = normalizeTitle(query)
	if query == "" {
		return true
	}
	return strings.Contains(normalizeTitle(title), query)
}

// Filter keeps the results matching req, preserving order
func Filter(req core.SearchRequest, results []core.SearchResult) []core.SearchResult {
	return filter(results, func(r core.SearchResult) bool { return Match(req, r) })
}

// FilterTags is Filter without the title test
func FilterTags(req core.SearchRequest, results []core.SearchResult) []core.SearchResult {
	return filter(results, func(r core.SearchResult) bool { return MatchTags(req, r.Tags) })
}

// Conflicts returns, per axis, the tags that appear in both the include and
// the exclude set of req.
func Conflicts(req core.SearchRequest) map[core.TagAxis][]string {
	conflicts := make(map[core.TagAxis][]string)
	for axis, include := range req.Include {
		excluded := core.Tags{axis: req.Exclude[axis]}
		for _, tag := range include {
			if excluded.Has(axis, tag) {
				conflicts[axis] = append(conflicts[axis], tag)
			}
		}
	}
	return conflicts
}

func filter(results []core.SearchResult, keep func(core.SearchResult) bool) []core.SearchResult {
	kept := make([]core.SearchResult, 0, len(results))
	for _, r := range results {
		if keep(r) {
			kept = append(kept, r)
		}
	}
	return kept
}

func normalizeTitle(s string) string {
	return strings.ToLower(html.CleanText(s))
}
