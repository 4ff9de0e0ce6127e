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

package wrapper

import (
	"strings"

	"Lantern/pkg/core"
	"Lantern/pkg/engine/parser/html"
	"Lantern/pkg/errors"
)

// requiredErr tracks a missing required field
type requiredErr struct {
	fields []string
}

func (r *requiredErr) need(ok bool, field string) {
	if !ok {
		r.fields = append(r.fields, field)
	}
}

func (r *requiredErr) err(kind, id string) error {
	if len(r.fields) == 0 {
		return nil
	}
	return errors.Newf("%s %q is missing %s", kind, id, strings.Join(r.fields, ", ")).
		WithContext("missing", r.fields).
		AsValidation().
		Error()
}

func validateDetails(d core.MangaDetails) error {
	var r requiredErr
	r.need(d.ID != "", "id")
	r.need(len(d.Titles) > 0, "titles")
	r.need(d.Image != "", "image")
	r.need(d.Status != "", "status")
	r.need(d.Author != "", "author")
	r.need(d.Desc != "", "desc")
	return r.err("manga", d.ID)
}

func normalizeDetails(d core.MangaDetails) core.MangaDetails {
	d.ID = strings.TrimSpace(d.ID)
	d.Titles = cleanIDs(mapStrings(d.Titles, html.CleanText))
	d.Image = strings.TrimSpace(d.Image)
	d.Status = core.MangaStatus(strings.TrimSpace(string(d.Status)))
	d.Author = html.CleanText(d.Author)
	d.Artist = html.CleanText(d.Artist)
	d.Desc = strings.TrimSpace(d.Desc)
	d.Tags = d.Tags.Normalize()
	return d
}

func normalizeResult(r core.SearchResult) core.SearchResult {
	r.ID = strings.TrimSpace(r.ID)
	r.Title = html.CleanText(r.Title)
	r.Image = strings.TrimSpace(r.Image)
	r.SubtitleText = html.CleanText(r.SubtitleText)
	r.PrimaryText = html.CleanText(r.PrimaryText)
	r.SecondaryText = html.CleanText(r.SecondaryText)
	r.Tags = r.Tags.Normalize()
	return r
}

// cleanIDs trims, drops blanks and removes duplicates keeping first position
func cleanIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func mapStrings(in []string, fn func(string) string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = fn(s)
	}
	return out
}

func indexOf(ids []string) map[string]int {
	index := make(map[string]int, len(ids))
	for i, id := range ids {
		index[id] = i
	}
	return index
}

func badInput(op, sourceID, message string) error {
	return errors.New(message).
		WithOperation(op).
		WithSource(sourceID).
		AsValidation().
		Error()
}

// wrapErr adds call context to a source error without changing its kind
func wrapErr(err error, op, sourceID string, ids ...string) *errors.ErrorBuilder {
	b := errors.Track(err).WithOperation(op).WithSource(sourceID)
	if len(ids) > 0 {
		b = b.WithIDs(ids...)
	}
	return b
}
