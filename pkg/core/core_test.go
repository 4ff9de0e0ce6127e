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
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	cases := map[string]MangaStatus{
		"Ongoing":      StatusOngoing,
		" publishing ": StatusOngoing,
		"Complete":     StatusCompleted,
		"Finished":     StatusCompleted,
		"hiatus":       StatusHiatus,
		"Discontinued": StatusCancelled,
		"":             StatusUnknown,
		"licensed":     MangaStatus("LICENSED"),
	}
	for raw, want := range cases {
		assert.Equal(t, want, ParseStatus(raw), raw)
	}
}

func TestTagsHasIgnoresCase(t *testing.T) {
	tags := Tags{AxisDemographic: {"Seinen"}, AxisGenre: {"Drama", "Medical"}}

	assert.True(t, tags.Has(AxisDemographic, "seinen"))
	assert.True(t, tags.Has(AxisDemographic, " SEINEN "))
	assert.False(t, tags.Has(AxisGenre, "Seinen"))
	assert.True(t, tags.Any(AxisGenre, []string{"Action", "medical"}))
	assert.True(t, tags.HasAnywhere("drama"))
	assert.Equal(t, []string{"Seinen", "Drama", "Medical"}, tags.All())
	assert.Equal(t, 3, tags.Len())
}

func TestTagsNormalize(t *testing.T) {
	tags := Tags{
		AxisGenre:   {" Drama ", "drama", "", "Slice  of Life"},
		AxisFormat:  {"  "},
		"Publisher": {"Shueisha"},
	}

	got := tags.Normalize()
	assert.Equal(t, []string{"Drama", "Slice of Life"}, got[AxisGenre])
	assert.NotContains(t, got, AxisFormat)
	assert.Equal(t, []string{"Shueisha"}, got["publisher"])
	assert.Equal(t, []TagAxis{AxisGenre, "publisher"}, got.Axes())

	assert.NotNil(t, Tags(nil).Normalize())
}

func TestSearchRequestBuilderDoesNotShareState(t *testing.T) {
	base := NewSearchRequest("  Radiation House ")
	include := base.IncludeDemographic("Seinen")
	exclude := base.ExcludeDemographic("Seinen", " ")

	assert.Equal(t, "Radiation House", base.Title)
	assert.Empty(t, base.Include)
	assert.Equal(t, []string{"Seinen"}, include.Include[AxisDemographic])
	assert.Empty(t, include.Exclude)
	assert.Equal(t, []string{"Seinen"}, exclude.Exclude[AxisDemographic])
	assert.False(t, base.HasTagConstraints())
	assert.True(t, exclude.HasTagConstraints())
}

func TestSearchRequestAxes(t *testing.T) {
	req := NewSearchRequest("").
		WithExclude(AxisGenre, "Horror").
		IncludeDemographic("Seinen").
		WithInclude(AxisDemographic, "Josei")

	assert.Equal(t, []TagAxis{AxisDemographic, AxisGenre}, req.Axes())
	assert.Equal(t, []string{"Seinen", "Josei"}, req.Include[AxisDemographic])
}

func TestSearchRequestNormalize(t *testing.T) {
	req := SearchRequest{
		Title:   "  Radiation   House ",
		Include: map[TagAxis][]string{"Demographic": {" Seinen ", "seinen"}},
		Exclude: map[TagAxis][]string{AxisGenre: {""}},
	}.Normalize()

	assert.Equal(t, "Radiation House", req.Title)
	assert.Equal(t, []string{"Seinen"}, req.Include[AxisDemographic])
	assert.Empty(t, req.Exclude)

	assert.Equal(t, []string{"Shounen"}, NewSearchRequest("").WithInclude("GENRE", "Shounen").Include[AxisGenre])
}

func TestParseMangaID(t *testing.T) {
	src, id, err := ParseMangaID("mangasee:one-piece")
	require.NoError(t, err)
	assert.Equal(t, "mangasee", src)
	assert.Equal(t, "one-piece", id)
	assert.Equal(t, "mangasee:one-piece", FormatMangaID(src, id))

	for _, bad := range []string{"one-piece", ":x", "x:"} {
		_, _, err := ParseMangaID(bad)
		assert.Error(t, err, bad)
	}
}

func TestConcurrencyContext(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, 3, GetConcurrency(ctx, 3))
	assert.Equal(t, 8, GetConcurrency(WithConcurrency(ctx, 8), 3))
	assert.Equal(t, 3, GetConcurrency(WithConcurrency(ctx, 0), 3))
}
