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

import (
	"sort"
	"strings"
)

// TagAxis is a named classification dimension such as target audience
type TagAxis string

const (
	AxisDemographic TagAxis = "demographic"
	AxisGenre       TagAxis = "genre"
	AxisFormat      TagAxis = "format"
	AxisContent     TagAxis = "content"
)

// axisOrder fixes the iteration order of the predefined axes
var axisOrder = map[TagAxis]int{
	AxisDemographic: 0,
	AxisGenre:       1,
	AxisFormat:      2,
	AxisContent:     3,
}

// ParseAxis accepts an axis name in any case
func ParseAxis(raw string) TagAxis {
	return TagAxis(strings.ToLower(strings.TrimSpace(raw)))
}

// Tags groups classification strings by axis
type Tags map[TagAxis][]string

// Add appends tags to axis
func (t Tags) Add(axis TagAxis, tags ...string) {
	t[axis] = append(t[axis], tags...)
}

// Has reports whether axis carries tag, ignoring case
func (t Tags) Has(axis TagAxis, tag string) bool {
	tag = strings.TrimSpace(tag)
	for _, candidate := range t[axis] {
		if strings.EqualFold(strings.TrimSpace(candidate), tag) {
			return true
		}
	}
	return false
}

// Any reports whether axis carries at least one of tags
func (t Tags) Any(axis TagAxis, tags []string) bool {
	for _, tag := range tags {
		if t.Has(axis, tag) {
			return true
		}
	}
	return false
}

// HasAnywhere reports whether tag appears on any axis
func (t Tags) HasAnywhere(tag string) bool {
	for axis := range t {
		if t.Has(axis, tag) {
			return true
		}
	}
	return false
}

// Axes returns the axes present, predefined ones first
func (t Tags) Axes() []TagAxis {
	axes := make([]TagAxis, 0, len(t))
	for axis := range t {
		axes = append(axes, axis)
	}
	SortAxes(axes)
	return axes
}

// All flattens every tag in axis order
func (t Tags) All() []string {
	var all []string
	for _, axis := range t.Axes() {
		all = append(all, t[axis]...)
	}
	return all
}

// Len counts tags across all axes
func (t Tags) Len() int {
	n := 0
	for _, tags := range t {
		n += len(tags)
	}
	return n
}

// Normalize returns a copy with tags trimmed, empties dropped and case-
// insensitive duplicates removed, keeping the first spelling
func (t Tags) Normalize() Tags {
	if t == nil {
		return Tags{}
	}

	out := make(Tags, len(t))
	for axis, tags := range t {
		axis = ParseAxis(string(axis))
		seen := make(map[string]bool, len(tags))
		for _, tag := range out[axis] {
			seen[strings.ToLower(tag)] = true
		}
		for _, tag := range tags {
			tag = strings.Join(strings.Fields(tag), " ")
			key := strings.ToLower(tag)
			if tag == "" || seen[key] {
				continue
			}
			seen[key] = true
			out[axis] = append(out[axis], tag)
		}
		if len(out[axis]) == 0 {
			delete(out, axis)
		}
	}
	return out
}

// SortAxes orders axes with the predefined ones first, then by name
func SortAxes(axes []TagAxis) {
	sort.Slice(axes, func(i, j int) bool {
		oi, iKnown := axisOrder[axes[i]]
		oj, jKnown := axisOrder[axes[j]]
		switch {
		case iKnown && jKnown:
			return oi < oj
		case iKnown != jKnown:
			return iKnown
		default:
			return axes[i] < axes[j]
		}
	})
}
