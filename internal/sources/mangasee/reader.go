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

	"Lantern/pkg/core"
	"Lantern/pkg/engine/parser/html"
	"Lantern/pkg/errors"
	"Lantern/pkg/util"
)

// GetChapterDetails reads the page images of a chapter. The reader page
// names the manga it belongs to; a mismatch means the chapter is not part
// of mangaID.
func (s *Source) GetChapterDetails(ctx context.Context, mangaID, chapterID string) (*core.ChapterDetails, error) {
	readerPath := "/read/" + url.PathEscape(mangaID) + "/" + url.PathEscape(chapterID)
	doc, err := s.Document(ctx, readerPath, nil)
	if err != nil {
		return nil, errors.Track(err).WithIDs(mangaID, chapterID).Error()
	}

	reader, err := doc.Select(s.sel.Reader).First()
	if err != nil {
		return nil, errors.Track(err).WithSource(ID).WithIDs(mangaID, chapterID).Error()
	}

	owner := reader.Extract().Data("manga-id")
	if owner != "" && owner != mangaID {
		return nil, errors.Newf("chapter %s belongs to %s", chapterID, owner).
			WithSource(ID).
			WithIDs(mangaID, chapterID).
			AsNotFound().
			Error()
	}

	id := reader.Extract().Data("chapter-id")
	if id == "" {
		id = chapterID
	}

	base := s.URL(readerPath, nil)
	pages := reader.Find(s.sel.Pages).MapString(func(img *html.Element) string {
		return util.CleanImageURL(img.Extract().AbsSrc(base))
	})

	return &core.ChapterDetails{ID: id, MangaID: mangaID, Pages: pages}, nil
}
