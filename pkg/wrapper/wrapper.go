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

// Package wrapper is the single entry point callers use to talk to any
// source. It validates input, checks what sources return against the data
// model and is the authority on search filtering.
package wrapper

import (
	"context"
	"strings"
	"time"

	"Lantern/pkg/core"
	"Lantern/pkg/engine/logger"
	"Lantern/pkg/engine/search"
	"Lantern/pkg/errors"
	"Lantern/pkg/source"
)

const DefaultMaxSearchPages = 10

// Options controls how strict the wrapper is
type Options struct {
	// StrictBatch fails GetMangaDetails when any id fails. By default the
	// resolved ids are returned as long as there is at least one.
	StrictBatch bool
	// StrictTitle re-checks search titles as a substring match. Sources
	// may match titles fuzzily, so this is off by default.
	StrictTitle bool
	// MaxSearchPages bounds SearchAll
	MaxSearchPages int
}

// Wrapper orchestrates calls to sources. It holds no per-call state and is
// safe for concurrent use.
type Wrapper struct {
	logger logger.Logger
	opts   Options
}

// New creates a wrapper
func New(log logger.Logger, opts Options) *Wrapper {
	if log == nil {
		log = logger.NewNop()
	}
	if opts.MaxSearchPages <= 0 {
		opts.MaxSearchPages = DefaultMaxSearchPages
	}
	return &Wrapper{logger: log, opts: opts}
}

// Options returns the effective options
func (w *Wrapper) Options() Options {
	return w.opts
}

// GetMangaDetails resolves ids through src. Results follow request order.
func (w *Wrapper) GetMangaDetails(ctx context.Context, src source.Source, ids []string) ([]core.MangaDetails, error) {
	const op = "get_manga_details"
	sourceID := src.Info().ID

	ids = cleanIDs(ids)
	if len(ids) == 0 {
		return nil, badInput(op, sourceID, "no manga ids given")
	}

	details, err := src.GetMangaDetails(ctx, ids)
	var batch *errors.BatchError
	if err != nil && !errors.As(err, &batch) {
		return nil, wrapErr(err, op, sourceID, ids...).Error()
	}
	if batch == nil {
		batch = errors.NewBatchError(op)
	}

	requested := indexOf(ids)
	byID := make(map[string]core.MangaDetails, len(details))
	for _, d := range details {
		d = normalizeDetails(d)
		if err := validateDetails(d); err != nil {
			return nil, errors.Track(err).
				WithOperation(op).
				WithSource(sourceID).
				WithIDs(d.ID).
				Error()
		}
		if _, ok := requested[d.ID]; !ok {
			return nil, errors.Newf("source returned manga %q which was not requested", d.ID).
				WithOperation(op).
				WithSource(sourceID).
				WithIDs(ids...).
				AsValidation().
				Error()
		}
		if _, dup := byID[d.ID]; !dup {
			byID[d.ID] = d
		}
	}

	result := make([]core.MangaDetails, 0, len(byID))
	for _, id := range ids {
		if d, ok := byID[id]; ok {
			result = append(result, d)
			continue
		}
		if _, failed := batch.Failures[id]; !failed {
			batch.Add(id, errors.Newf("source returned nothing for %q", id).AsNotFound().Error())
		}
	}

	if batch.ErrOrNil() == nil {
		return result, nil
	}
	if w.opts.StrictBatch || len(result) == 0 {
		return nil, batch
	}
	for _, id := range batch.IDs() {
		w.logger.Warn("[%s] skipping manga %s: %v", sourceID, id, batch.Failures[id])
	}
	return result, nil
}

// GetChapters lists the chapters of mangaID in site order
func (w *Wrapper) GetChapters(ctx context.Context, src source.Source, mangaID string) ([]core.Chapter, error) {
	const op = "get_chapters"
	sourceID := src.Info().ID

	mangaID = strings.TrimSpace(mangaID)
	if mangaID == "" {
		return nil, badInput(op, sourceID, "no manga id given")
	}

	chapters, err := src.GetChapters(ctx, mangaID)
	if err != nil {
		return nil, wrapErr(err, op, sourceID, mangaID).Error()
	}

	out := make([]core.Chapter, 0, len(chapters))
	for i, ch := range chapters {
		ch.ID = strings.TrimSpace(ch.ID)
		if ch.ID == "" {
			return nil, errors.Newf("chapter %d of %q has no id", i, mangaID).
				WithOperation(op).
				WithSource(sourceID).
				WithIDs(mangaID).
				AsValidation().
				Error()
		}
		if ch.MangaID == "" {
			ch.MangaID = mangaID
		}
		if ch.MangaID != mangaID {
			return nil, errors.Newf("chapter %q belongs to %q, not %q", ch.ID, ch.MangaID, mangaID).
				WithOperation(op).
				WithSource(sourceID).
				WithIDs(mangaID, ch.ID).
				AsConsistency().
				Error()
		}
		out = append(out, ch)
	}
	return out, nil
}

// GetChapterDetails returns the pages of one chapter of mangaID
func (w *Wrapper) GetChapterDetails(ctx context.Context, src source.Source, mangaID, chapterID string) (*core.ChapterDetails, error) {
	const op = "get_chapter_details"
	sourceID := src.Info().ID

	mangaID = strings.TrimSpace(mangaID)
	chapterID = strings.TrimSpace(chapterID)
	if mangaID == "" || chapterID == "" {
		return nil, badInput(op, sourceID, "manga id and chapter id are required")
	}

	details, err := src.GetChapterDetails(ctx, mangaID, chapterID)
	if err != nil {
		return nil, wrapErr(err, op, sourceID, mangaID, chapterID).Error()
	}
	if details == nil {
		return nil, errors.New("source returned no chapter").
			WithOperation(op).
			WithSource(sourceID).
			WithIDs(mangaID, chapterID).
			AsValidation().
			Error()
	}

	if details.MangaID != mangaID || details.ID != chapterID {
		return nil, errors.Newf("asked for %s/%s, source returned %s/%s", mangaID, chapterID, details.MangaID, details.ID).
			WithMessage("chapter belongs to another manga").
			WithOperation(op).
			WithSource(sourceID).
			WithIDs(mangaID, chapterID).
			AsConsistency().
			Error()
	}

	if len(details.Pages) == 0 {
		return nil, errors.New("chapter has no pages").
			WithOperation(op).
			WithSource(sourceID).
			WithIDs(mangaID, chapterID).
			AsValidation().
			Error()
	}
	for i, page := range details.Pages {
		if strings.TrimSpace(page) == "" {
			return nil, errors.Newf("page %d has no uri", i+1).
				WithOperation(op).
				WithSource(sourceID).
				WithIDs(mangaID, chapterID).
				AsValidation().
				Error()
		}
	}

	return &core.ChapterDetails{
		ID:      details.ID,
		MangaID: details.MangaID,
		Pages:   append([]string(nil), details.Pages...),
	}, nil
}

// Search returns one page of results matching req. An empty slice means the
// listing is exhausted or nothing matched.
func (w *Wrapper) Search(ctx context.Context, src source.Source, req core.SearchRequest, page int) ([]core.SearchResult, error) {
	results, _, err := w.searchPage(ctx, src, req.Normalize(), page)
	return results, err
}

// SearchAll walks pages until the source runs out or MaxSearchPages is
// reached, dropping results already seen on earlier pages.
func (w *Wrapper) SearchAll(ctx context.Context, src source.Source, req core.SearchRequest) ([]core.SearchResult, error) {
	req = req.Normalize()
	seen := make(map[string]bool)
	var all []core.SearchResult

	pages, err := search.Paginate(ctx, w.opts.MaxSearchPages, func(ctx context.Context, page int) (bool, error) {
		results, raw, err := w.searchPage(ctx, src, req, page)
		if err != nil {
			return false, err
		}
		for _, r := range results {
			if !seen[r.ID] {
				seen[r.ID] = true
				all = append(all, r)
			}
		}
		return raw > 0, nil
	})
	if err != nil {
		return nil, wrapErr(err, "search_all", src.Info().ID).Error()
	}

	w.logger.Debug("[%s] search walked %d page(s), %d result(s)", src.Info().ID, pages, len(all))
	if all == nil {
		all = []core.SearchResult{}
	}
	return all, nil
}

// searchPage returns the accepted results of one page and how many the
// source returned before filtering.
func (w *Wrapper) searchPage(ctx context.Context, src source.Source, req core.SearchRequest, page int) ([]core.SearchResult, int, error) {
	const op = "search"
	sourceID := src.Info().ID

	if page < 1 {
		return nil, 0, errors.Newf("page must be 1 or greater, got %d", page).
			WithOperation(op).
			WithSource(sourceID).
			AsValidation().
			Error()
	}
	if conflicts := search.Conflicts(req); len(conflicts) > 0 {
		w.logger.Debug("[%s] tags both included and excluded, exclusion wins: %v", sourceID, conflicts)
	}

	results, err := src.Search(ctx, req, page)
	if err != nil {
		return nil, 0, wrapErr(err, op, sourceID).WithContext("page", page).Error()
	}

	seen := make(map[string]bool, len(results))
	accepted := make([]core.SearchResult, 0, len(results))
	for _, r := range results {
		r = normalizeResult(r)
		if r.ID == "" || r.Title == "" {
			return nil, 0, errors.Newf("search result without id or title on page %d", page).
				WithOperation(op).
				WithSource(sourceID).
				WithIDs(r.ID).
				AsValidation().
				Error()
		}
		if seen[r.ID] {
			continue
		}
		seen[r.ID] = true
		accepted = append(accepted, r)
	}

	if w.opts.StrictTitle {
		accepted = search.Filter(req, accepted)
	} else {
		accepted = search.FilterTags(req, accepted)
	}
	if dropped := len(seen) - len(accepted); dropped > 0 {
		w.logger.Debug("[%s] dropped %d result(s) on page %d that did not match the request", sourceID, dropped, page)
	}
	return accepted, len(results), nil
}

// FilterUpdatedManga returns the ids updated after since, in the order the
// source reported them
func (w *Wrapper) FilterUpdatedManga(ctx context.Context, src source.Source, ids []string, since time.Time) ([]string, error) {
	const op = "filter_updated_manga"
	sourceID := src.Info().ID

	ids = cleanIDs(ids)
	if len(ids) == 0 {
		return nil, badInput(op, sourceID, "no manga ids given")
	}

	updated, err := src.FilterUpdatedManga(ctx, ids, since)
	if err != nil {
		return nil, wrapErr(err, op, sourceID, ids...).Error()
	}

	requested := indexOf(ids)
	seen := make(map[string]bool, len(updated))
	out := make([]string, 0, len(updated))
	for _, id := range updated {
		if _, ok := requested[id]; !ok {
			return nil, errors.Newf("source reported %q as updated but it was not requested", id).
				WithOperation(op).
				WithSource(sourceID).
				WithIDs(ids...).
				AsValidation().
				Error()
		}
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out, nil
}
