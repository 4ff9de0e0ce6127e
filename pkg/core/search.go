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

package core

import "strings"

// SearchRequest filters search results by title and by per-axis tag sets
type SearchRequest struct {
	Title   string               `json:"title,omitempty"`
	Include map[TagAxis][]string `json:"include,omitempty"`
	Exclude map[TagAxis][]string `json:"exclude,omitempty"`
}

// NewSearchRequest starts a request for title, which may be empty
func NewSearchRequest(title string) SearchRequest {
	return SearchRequest{
		Title:   strings.TrimSpace(title),
		Include: make(map[TagAxis][]string),
		Exclude: make(map[TagAxis][]string),
	}
}

// WithInclude requires at least one of tags on axis
func (r SearchRequest) WithInclude(axis TagAxis, tags ...string) SearchRequest {
	r.Include = appendAxis(r.Include, axis, tags)
	return r
}

// WithExclude rejects any result carrying one of tags on axis
func (r SearchRequest) WithExclude(axis TagAxis, tags ...string) SearchRequest {
	r.Exclude = appendAxis(r.Exclude, axis, tags)
	return r
}

// IncludeDemographic is WithInclude on the demographic axis
func (r SearchRequest) IncludeDemographic(tags ...string) SearchRequest {
	return r.WithInclude(AxisDemographic, tags...)
}

// ExcludeDemographic is WithExclude on the demographic axis
func (r SearchRequest) ExcludeDemographic(tags ...string) SearchRequest {
	return r.WithExclude(AxisDemographic, tags...)
}

// Axes lists every axis constrained by the request
func (r SearchRequest) Axes() []TagAxis {
	seen := make(map[TagAxis]bool)
	var axes []TagAxis
	for _, set := range []map[TagAxis][]string{r.Include, r.Exclude} {
		for axis, tags := range set {
			if len(tags) > 0 && !seen[axis] {
				seen[axis] = true
				axes = append(axes, axis)
			}
		}
	}
	SortAxes(axes)
	return axes
}

// HasTagConstraints reports whether any include or exclude set is non-empty
func (r SearchRequest) HasTagConstraints() bool {
	return len(r.Axes()) > 0
}

// Normalize returns a copy with the title trimmed and both tag sets
// normalized like Tags.Normalize
func (r SearchRequest) Normalize() SearchRequest {
	return SearchRequest{
		Title:   strings.Join(strings.Fields(r.Title), " "),
		Include: Tags(r.Include).Normalize(),
		Exclude: Tags(r.Exclude).Normalize(),
	}
}

// appendAxis copies set so requests built from a shared base stay independent
func appendAxis(set map[TagAxis][]string, axis TagAxis, tags []string) map[TagAxis][]string {
	axis = ParseAxis(string(axis))
	out := make(map[TagAxis][]string, len(set)+1)
	for k, v := range set {
		out[k] = append([]string(nil), v...)
	}
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			out[axis] = append(out[axis], tag)
		}
	}
	return out
}
