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
	"context"
	"fmt"
	"testing"
	"time"

	"Lantern/pkg/core"
	"Lantern/pkg/engine/logger"
	"Lantern/pkg/errors"
	"Lantern/pkg/source"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource serves canned data and records search pages it was asked for
type fakeSource struct {
	details     map[string]core.MangaDetails
	failures    map[string]error
	chapters    []core.Chapter
	chapter     *core.ChapterDetails
	pages       map[int][]core.SearchResult
	updated     []string
	err         error
	searchCalls []int
}

func (f *fakeSource) Info() source.Info {
	return source.Info{ID: "fake", Name: "Fake"}
}

func (f *fakeSource) GetMangaDetails(_ context.Context, ids []string) ([]core.MangaDetails, error) {
	if f.err != nil {
		return nil, f.err
	}
	batch := errors.NewBatchError("get_manga_details")
	var out []core.MangaDetails
	for _, id := range ids {
		if err, ok := f.failures[id]; ok {
			batch.Add(id, err)
			continue
		}
		if d, ok := f.details[id]; ok {
			out = append(out, d)
		}
	}
	return out, batch.ErrOrNil()
}

func (f *fakeSource) GetChapters(context.Context, string) ([]core.Chapter, error) {
	return f.chapters, f.err
}

func (f *fakeSource) GetChapterDetails(context.Context, string, string) (*core.ChapterDetails, error) {
	return f.chapter, f.err
}

func (f *fakeSource) Search(_ context.Context, _ core.SearchRequest, page int) ([]core.SearchResult, error) {
	f.searchCalls = append(f.searchCalls, page)
	return f.pages[page], f.err
}

func (f *fakeSource) FilterUpdatedManga(context.Context, []string, time.Time) ([]string, error) {
	return f.updated, f.err
}

func manga(id string) core.MangaDetails {
	return core.MangaDetails{
		ID:     id,
		Titles: []string{"Title of " + id},
		Image:  "https://img.example/" + id + ".jpg",
		Rating: 8,
		Status: core.StatusOngoing,
		Author: "Someone",
		Desc:   "About " + id,
		Tags:   core.Tags{core.AxisDemographic: {"Seinen"}},
	}
}

func newWrapper(opts Options) *Wrapper {
	return New(logger.NewNop(), opts)
}

func notFound(id string) error {
	return errors.Newf("no manga %s", id).AsNotFound().Error()
}

func TestGetMangaDetailsRejectsEmptyInput(t *testing.T) {
	src := &fakeSource{}
	for _, ids := range [][]string{nil, {}, {" ", ""}} {
		_, err := newWrapper(Options{}).GetMangaDetails(context.Background(), src, ids)
		assert.True(t, errors.IsValidation(err), "%v", ids)
	}
}

func TestGetMangaDetailsKeepsRequestOrder(t *testing.T) {
	src := &fakeSource{details: map[string]core.MangaDetails{"a": manga("a"), "b": manga("b")}}

	got, err := newWrapper(Options{}).GetMangaDetails(context.Background(), src, []string{"b", "a", "b"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "a", got[1].ID)
}

func TestGetMangaDetailsRejectsMalformedObjects(t *testing.T) {
	broken := manga("a")
	broken.Author = "  "
	src := &fakeSource{details: map[string]core.MangaDetails{"a": broken, "b": manga("b")}}

	_, err := newWrapper(Options{}).GetMangaDetails(context.Background(), src, []string{"a", "b"})
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
	assert.Contains(t, err.Error(), "author")
}

func TestGetMangaDetailsRejectsUnrequestedIDs(t *testing.T) {
	src := &fakeSource{details: map[string]core.MangaDetails{"a": manga("other")}}

	_, err := newWrapper(Options{}).GetMangaDetails(context.Background(), src, []string{"a"})
	assert.True(t, errors.IsValidation(err))
}

func TestGetMangaDetailsLenientBatch(t *testing.T) {
	src := &fakeSource{
		details:  map[string]core.MangaDetails{"a": manga("a")},
		failures: map[string]error{"gone": notFound("gone")},
	}

	got, err := newWrapper(Options{}).GetMangaDetails(context.Background(), src, []string{"a", "gone", "silent"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)
}

func TestGetMangaDetailsStrictBatch(t *testing.T) {
	src := &fakeSource{
		details:  map[string]core.MangaDetails{"a": manga("a")},
		failures: map[string]error{"gone": notFound("gone")},
	}

	_, err := newWrapper(Options{StrictBatch: true}).GetMangaDetails(context.Background(), src, []string{"a", "gone"})
	var batch *errors.BatchError
	require.ErrorAs(t, err, &batch)
	assert.Equal(t, []string{"gone"}, batch.IDs())
	assert.True(t, errors.IsNotFound(err))
}

func TestGetMangaDetailsFailsWhenNothingResolves(t *testing.T) {
	src := &fakeSource{failures: map[string]error{"x": notFound("x")}}

	_, err := newWrapper(Options{}).GetMangaDetails(context.Background(), src, []string{"x", "y"})
	var batch *errors.BatchError
	require.ErrorAs(t, err, &batch)
	assert.Equal(t, []string{"x", "y"}, batch.IDs())
}

func TestGetMangaDetailsPropagatesTransportErrors(t *testing.T) {
	src := &fakeSource{err: errors.New("connection refused").AsTransport().Error()}

	_, err := newWrapper(Options{}).GetMangaDetails(context.Background(), src, []string{"a"})
	require.Error(t, err)
	assert.True(t, errors.IsTransport(err))
	ctx := errors.GetContext(err)
	assert.Equal(t, "fake", ctx["source"])
	assert.Equal(t, "a", ctx["ids"])
}

func TestGetMangaDetailsNormalizes(t *testing.T) {
	d := manga("a")
	d.Titles = []string{"  Radiation  House ", "", "Radiation House"}
	d.Tags = core.Tags{"Demographic": {" Seinen", "seinen"}}
	src := &fakeSource{details: map[string]core.MangaDetails{"a": d}}

	got, err := newWrapper(Options{}).GetMangaDetails(context.Background(), src, []string{"a"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Radiation House"}, got[0].Titles)
	assert.Equal(t, []string{"Seinen"}, got[0].Tags[core.AxisDemographic])
}

func TestGetChapters(t *testing.T) {
	src := &fakeSource{chapters: []core.Chapter{
		{ID: "c2", MangaID: "a", Number: 2},
		{ID: "c1", Number: 1},
	}}

	got, err := newWrapper(Options{}).GetChapters(context.Background(), src, "a")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "c2", got[0].ID, "site order is kept")
	assert.Equal(t, "a", got[1].MangaID)
}

func TestGetChaptersConsistency(t *testing.T) {
	src := &fakeSource{chapters: []core.Chapter{{ID: "c1", MangaID: "b"}}}
	_, err := newWrapper(Options{}).GetChapters(context.Background(), src, "a")
	assert.True(t, errors.IsConsistency(err))

	src = &fakeSource{chapters: []core.Chapter{{ID: ""}}}
	_, err = newWrapper(Options{}).GetChapters(context.Background(), src, "a")
	assert.True(t, errors.IsValidation(err))
}

func TestGetChapterDetails(t *testing.T) {
	tests := []struct {
		name    string
		chapter *core.ChapterDetails
		check   func(error) bool
	}{
		{"other manga", &core.ChapterDetails{ID: "c1", MangaID: "b", Pages: []string{"p1"}}, errors.IsConsistency},
		{"other chapter", &core.ChapterDetails{ID: "c9", MangaID: "a", Pages: []string{"p1"}}, errors.IsConsistency},
		{"no pages", &core.ChapterDetails{ID: "c1", MangaID: "a"}, errors.IsValidation},
		{"blank page", &core.ChapterDetails{ID: "c1", MangaID: "a", Pages: []string{"p1", " "}}, errors.IsValidation},
		{"nil", nil, errors.IsValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newWrapper(Options{}).GetChapterDetails(context.Background(), &fakeSource{chapter: tt.chapter}, "a", "c1")
			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected error: %v", err)
		})
	}

	src := &fakeSource{chapter: &core.ChapterDetails{ID: "c1", MangaID: "a", Pages: []string{"p1", "p2"}}}
	got, err := newWrapper(Options{}).GetChapterDetails(context.Background(), src, "a", "c1")
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2"}, got.Pages)
}

func searchResult(id, title, demographic string) core.SearchResult {
	return core.SearchResult{
		ID:    id,
		Title: title,
		Tags:  core.Tags{core.AxisDemographic: {demographic}},
	}
}

func TestSearchExcludeNeverLeaks(t *testing.T) {
	// the site ignores exclusions and returns everything
	src := &fakeSource{pages: map[int][]core.SearchResult{1: {
		searchResult("rh", "Radiation House", "Seinen"),
		searchResult("rh-kids", "Radiation House Kids", "Kodomo"),
	}}}
	req := core.NewSearchRequest("Radiation House").ExcludeDemographic("seinen")

	got, err := newWrapper(Options{}).Search(context.Background(), src, req, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "rh-kids", got[0].ID)
}

func TestSearchIncludeAndDedupe(t *testing.T) {
	src := &fakeSource{pages: map[int][]core.SearchResult{1: {
		searchResult("rh", "Radiation House", "Seinen"),
		searchResult("rh", "Radiation House", "Seinen"),
		searchResult("bl", "Blue Lock", "Shounen"),
	}}}
	req := core.NewSearchRequest("").IncludeDemographic("Seinen")

	got, err := newWrapper(Options{}).Search(context.Background(), src, req, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "rh", got[0].ID)
}

func TestSearchTitleOnlyWhenStrict(t *testing.T) {
	src := &fakeSource{pages: map[int][]core.SearchResult{1: {
		searchResult("rh", "Radiation House", "Seinen"),
		searchResult("rhs", "Radiology House", "Seinen"),
	}}}
	req := core.NewSearchRequest("radiation house")

	got, err := newWrapper(Options{}).Search(context.Background(), src, req, 1)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = newWrapper(Options{StrictTitle: true}).Search(context.Background(), src, req, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "rh", got[0].ID)
}

func TestSearchValidation(t *testing.T) {
	_, err := newWrapper(Options{}).Search(context.Background(), &fakeSource{}, core.NewSearchRequest("x"), 0)
	assert.True(t, errors.IsValidation(err))

	src := &fakeSource{pages: map[int][]core.SearchResult{1: {{ID: "no-title"}}}}
	_, err = newWrapper(Options{}).Search(context.Background(), src, core.NewSearchRequest(""), 1)
	assert.True(t, errors.IsValidation(err))
}

func TestSearchExhaustedIsEmpty(t *testing.T) {
	got, err := newWrapper(Options{}).Search(context.Background(), &fakeSource{}, core.NewSearchRequest("x"), 7)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSearchAllWalksUntilEmptyPage(t *testing.T) {
	src := &fakeSource{pages: map[int][]core.SearchResult{
		1: {searchResult("a", "A", "Seinen"), searchResult("b", "B", "Shounen")},
		2: {searchResult("c", "C", "Shounen")},
		3: {searchResult("a", "A", "Seinen"), searchResult("d", "D", "Seinen")},
	}}
	req := core.NewSearchRequest("").IncludeDemographic("Seinen")

	got, err := newWrapper(Options{}).SearchAll(context.Background(), src, req)
	require.NoError(t, err)
	var ids []string
	for _, r := range got {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"a", "d"}, ids)
	assert.Equal(t, []int{1, 2, 3, 4}, src.searchCalls, "a page emptied by filtering does not end the walk")
}

func TestSearchAllStopsAtMaxPages(t *testing.T) {
	src := &fakeSource{pages: map[int][]core.SearchResult{
		1: {searchResult("a", "A", "Seinen")},
		2: {searchResult("b", "B", "Seinen")},
		3: {searchResult("c", "C", "Seinen")},
	}}

	got, err := newWrapper(Options{MaxSearchPages: 2}).SearchAll(context.Background(), src, core.NewSearchRequest(""))
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, []int{1, 2}, src.searchCalls)
}

func TestSearchAllPropagatesErrors(t *testing.T) {
	src := &fakeSource{err: fmt.Errorf("dial tcp: connection refused")}
	_, err := newWrapper(Options{}).SearchAll(context.Background(), src, core.NewSearchRequest(""))
	require.Error(t, err)
	assert.True(t, errors.IsTransport(err))
}

func TestFilterUpdatedManga(t *testing.T) {
	src := &fakeSource{updated: []string{"b", "a", "b"}}
	got, err := newWrapper(Options{}).FilterUpdatedManga(context.Background(), src, []string{"a", "b", "c"}, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, got)

	src = &fakeSource{updated: []string{"z"}}
	_, err = newWrapper(Options{}).FilterUpdatedManga(context.Background(), src, []string{"a"}, time.Now())
	assert.True(t, errors.IsValidation(err))

	_, err = newWrapper(Options{}).FilterUpdatedManga(context.Background(), src, nil, time.Now())
	assert.True(t, errors.IsValidation(err))
}
