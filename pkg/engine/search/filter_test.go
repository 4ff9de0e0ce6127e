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

package search

import (
	"testing"

	"Lantern/pkg/core"

	"github.com/stretchr/testify/assert"
)

func result(id, title string, tags core.Tags) core.SearchResult {
	return core.SearchResult{ID: id, Title: title, Tags: tags}
}

var catalog = []core.SearchResult{
	result("radiation-house", "Radiation House", core.Tags{
		core.AxisDemographic: {"Seinen"},
		core.AxisGenre:       {"Drama", "Medical"},
	}),
	result("radiation-house-side", "Radiation House: Side Stories", core.Tags{
		core.AxisDemographic: {"seinen"},
		core.AxisGenre:       {"Comedy"},
	}),
	result("blue-lock", "Blue Lock", core.Tags{
		core.AxisDemographic: {"Shounen"},
		core.AxisGenre:       {"Sports"},
	}),
	result("untagged", "Radiation Notes", nil),
}

func ids(results []core.SearchResult) []string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		out = append(out, r.ID)
	}
	return out
}

func TestIncludeRequiresATagOnTheAxis(t *testing.T) {
	req := core.NewSearchRequest("Radiation House").IncludeDemographic("Seinen")
	assert.Equal(t, []string{"radiation-house", "radiation-house-side"}, ids(Filter(req, catalog)))
}

func TestExcludeNeverLeaks(t *testing.T) {
	req := core.NewSearchRequest("Radiation House").ExcludeDemographic("Seinen")
	assert.Empty(t, Filter(req, catalog))

	req = core.NewSearchRequest("").ExcludeDemographic("SEINEN")
	for _, r := range Filter(req, catalog) {
		assert.False(t, r.Tags.Has(core.AxisDemographic, "Seinen"), r.ID)
	}
}

func TestAxesAreCombinedWithAnd(t *testing.T) {
	req := core.NewSearchRequest("").
		IncludeDemographic("Seinen", "Shounen").
		WithInclude(core.AxisGenre, "Drama", "Sports")
	assert.Equal(t, []string{"radiation-house", "blue-lock"}, ids(Filter(req, catalog)))

	req = req.WithExclude(core.AxisGenre, "sports")
	assert.Equal(t, []string{"radiation-house"}, ids(Filter(req, catalog)))
}

func TestExcludeWinsOverInclude(t *testing.T) {
	req := core.NewSearchRequest("").IncludeDemographic("Seinen").ExcludeDemographic("Seinen")
	assert.Empty(t, FilterTags(req, catalog))
	assert.Equal(t, map[core.TagAxis][]string{core.AxisDemographic: {"Seinen"}}, Conflicts(req))
}

func TestEmptyRequestKeepsEverything(t *testing.T) {
	assert.Len(t, Filter(core.NewSearchRequest(""), catalog), len(catalog))
}

func TestMatchTitle(t *testing.T) {
	assert.True(t, MatchTitle("radiation  house", "Radiation House: Side Stories"))
	assert.True(t, MatchTitle("", "anything"))
	assert.False(t, MatchTitle("Blue Period", "Blue Lock"))
}

func TestFilterTagsIgnoresTitle(t *testing.T) {
	req := core.NewSearchRequest("no such title").IncludeDemographic("Shounen")
	assert.Equal(t, []string{"blue-lock"}, ids(FilterTags(req, catalog)))
	assert.Empty(t, Filter(req, catalog))
}
