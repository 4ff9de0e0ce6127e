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

package mangasee

import (
	"context"
	"net/url"
	"path"
	"strconv"
	"strings"

	"Lantern/pkg/core"
	"Lantern/pkg/engine/parser/html"
	"Lantern/pkg/errors"
)

// Search queries one page of the site search. The site honours the title and
// the include sets; exclusions are left to the caller.
func (s *Source) Search(ctx context.Context, req core.SearchRequest, page int) ([]core.SearchResult, error) {
	doc, err := s.Document(ctx, "/search", searchQuery(req, page))
	if err != nil {
		return nil, errors.Track(err).WithContext("page", page).Error()
	}

	base := s.URL("/search", nil)
	rows := doc.Select(s.sel.Results).AllOrEmpty()
	results := make([]core.SearchResult, 0, len(rows))

	for i, row := range rows {
		link, err := row.Find(s.sel.ResultTitle).First()
		if err != nil {
			return nil, errors.Track(err).WithSource(ID).WithContext("result", i).WithContext("page", page).Error()
		}

		id := mangaIDFromHref(link.Extract().Href())
		if id == "" {
			return nil, errors.Newf("search result %d links nowhere", i).
				WithSource(ID).
				WithContext("selector", s.sel.ResultTitle).
				AsExtraction().
				Error()
		}

		r := core.SearchResult{
			ID:            id,
			Title:         link.Extract().CleanText(),
			SubtitleText:  textOf(row, s.sel.ResultSubline),
			PrimaryText:   textOf(row, s.sel.ResultPrimary),
			SecondaryText: textOf(row, s.sel.ResultSecond),
			Tags:          s.parseTags(row.Find(s.sel.ResultTags)),
		}
		if cover := row.Find(s.sel.ResultCover).FirstOrNil(); cover != nil {
			r.Image = cover.Extract().AbsSrc(base)
		}
		results = append(results, r)
	}
	return results, nil
}

func searchQuery(req core.SearchRequest, page int) url.Values {
	q := url.Values{}
	if req.Title != "" {
		q.Set("title", req.Title)
	}
	q.Set("page", strconv.Itoa(page))
	for _, axis := range req.Axes() {
		for _, tag := range req.Include[axis] {
			q.Add(string(axis), tag)
		}
	}
	return q
}

// mangaIDFromHref reads /manga/{id}
func mangaIDFromHref(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	parts := strings.Split(strings.Trim(path.Clean(u.Path), "/"), "/")
	if len(parts) < 2 || parts[len(parts)-2] != "manga" {
		return ""
	}
	return parts[len(parts)-1]
}

func textOf(root *html.Element, selector string) string {
	if elem := root.Find(selector).FirstOrNil(); elem != nil {
		return elem.Extract().CleanText()
	}
	return ""
}
