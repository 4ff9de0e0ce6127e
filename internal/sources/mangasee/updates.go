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
	"strconv"
	"time"

	"Lantern/pkg/engine/update"
	"Lantern/pkg/errors"
)

// FilterUpdatedManga walks the latest updates feed back to since
func (s *Source) FilterUpdatedManga(ctx context.Context, ids []string, since time.Time) ([]string, error) {
	return s.scanner.Scan(ctx, s.latest, ids, since)
}

// latest reads one page of the newest-first updates feed
func (s *Source) latest(ctx context.Context, page int) ([]update.Entry, error) {
	doc, err := s.Document(ctx, "/latest", url.Values{"page": {strconv.Itoa(page)}})
	if err != nil {
		// a missing page past the first ends the feed
		if page > 1 && errors.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	rows := doc.Select(s.sel.Latest).AllOrEmpty()
	entries := make([]update.Entry, 0, len(rows))
	for i, row := range rows {
		id := row.Extract().Data("manga-id")
		if id == "" {
			return nil, errors.Newf("update row %d has no manga id", i).
				WithSource(ID).
				WithContext("page", page).
				AsExtraction().
				Error()
		}

		stamp := row.Find(s.sel.LatestTime).FirstOrNil()
		if stamp == nil {
			return nil, errors.Newf("update row %d has no time", i).WithSource(ID).WithIDs(id).AsExtraction().Error()
		}
		updated := stamp.Extract().Date()
		if updated == nil {
			return nil, errors.Newf("update row %d has an unreadable time", i).WithSource(ID).WithIDs(id).AsExtraction().Error()
		}

		entries = append(entries, update.Entry{MangaID: id, Updated: *updated})
	}
	return entries, nil
}
