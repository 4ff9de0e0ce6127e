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
	"strings"

	"Lantern/pkg/core"
	"Lantern/pkg/engine/parser"
	"Lantern/pkg/engine/parser/html"
	"Lantern/pkg/errors"
	"Lantern/pkg/util"
)

// GetMangaDetails fetches every id's series page in parallel
func (s *Source) GetMangaDetails(ctx context.Context, ids []string) ([]core.MangaDetails, error) {
	details := make([]core.MangaDetails, len(ids))

	ok, err := s.ForEachID(ctx, "get_manga_details", ids, func(ctx context.Context, i int, id string) error {
		doc, err := s.seriesPage(ctx, id)
		if err != nil {
			return err
		}
		d, err := s.parseDetails(doc, id)
		if err != nil {
			return err
		}
		details[i] = *d
		return nil
	})

	out := make([]core.MangaDetails, 0, len(ids))
	for i := range ids {
		if ok[i] {
			out = append(out, details[i])
		}
	}
	return out, err
}

// GetChapters lists the chapters on the series page in site order
func (s *Source) GetChapters(ctx context.Context, mangaID string) ([]core.Chapter, error) {
	doc, err := s.seriesPage(ctx, mangaID)
	if err != nil {
		return nil, err
	}
	return s.parseChapters(doc, mangaID)
}

func (s *Source) seriesPage(ctx context.Context, id string) (*html.Parser, error) {
	doc, err := s.Document(ctx, "/manga/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, errors.Track(err).WithIDs(id).Error()
	}
	return doc, nil
}

func (s *Source) parseDetails(doc *html.Parser, id string) (*core.MangaDetails, error) {
	base := s.Info().SiteURL + "/manga/" + id
	d := &core.MangaDetails{ID: id, Tags: core.Tags{}}

	title, err := s.required(doc, s.sel.Title, id)
	if err != nil {
		return nil, err
	}
	d.Titles = append([]string{title.Extract().CleanText()}, doc.Select(s.sel.AltTitles).Texts()...)

	cover, err := s.required(doc, s.sel.Cover, id)
	if err != nil {
		return nil, err
	}
	if d.Image = cover.Extract().AbsSrc(base); d.Image == "" {
		return nil, s.missing("cover image", s.sel.Cover, id)
	}

	rating, err := s.required(doc, s.sel.Rating, id)
	if err != nil {
		return nil, err
	}
	if d.Rating, err = rating.Extract().DataNumber("rating"); err != nil {
		if d.Rating, err = rating.Extract().Number(); err != nil {
			return nil, errors.Track(err).WithSource(ID).WithIDs(id).WithContext("selector", s.sel.Rating).Error()
		}
	}

	status, err := s.required(doc, s.sel.Status, id)
	if err != nil {
		return nil, err
	}
	d.Status = core.ParseStatus(status.Extract().CleanText())

	if d.Author = strings.Join(doc.Select(s.sel.Author).Texts(), ", "); d.Author == "" {
		return nil, s.missing("author", s.sel.Author, id)
	}
	d.Artist = strings.Join(doc.Select(s.sel.Artist).Texts(), ", ")

	d.Tags = s.parseTags(doc.Select(s.sel.Tags))

	desc, err := s.required(doc, s.sel.Description, id)
	if err != nil {
		return nil, err
	}
	if d.Desc = desc.Text(); d.Desc == "" {
		return nil, s.missing("description", s.sel.Description, id)
	}

	if updated := doc.Select(s.sel.Updated).FirstOrNil(); updated != nil {
		d.LastUpdated = updated.Extract().Date()
	}

	adult := false
	if root := doc.Select(s.sel.SeriesRoot).FirstOrNil(); root != nil {
		adult = strings.EqualFold(root.Extract().Data("adult"), "true")
	}
	d.Hentai = adult || d.Tags.HasAnywhere("Hentai") || d.Tags.HasAnywhere("Adult")

	return d, nil
}

func (s *Source) parseChapters(doc *html.Parser, mangaID string) ([]core.Chapter, error) {
	rows := doc.Select(s.sel.Chapters).AllOrEmpty()
	chapters := make([]core.Chapter, 0, len(rows))

	for i, row := range rows {
		link, err := row.Find(s.sel.ChapterLink).First()
		if err != nil {
			return nil, errors.Track(err).WithSource(ID).WithIDs(mangaID).WithContext("row", i).Error()
		}

		owner, chapterID := splitReaderPath(link.Extract().Href())
		if chapterID == "" {
			return nil, s.missing("chapter id", s.sel.ChapterLink, mangaID)
		}

		ch := core.Chapter{
			ID:       chapterID,
			MangaID:  owner,
			Title:    link.Extract().CleanText(),
			Language: util.NormalizeLanguage(row.Extract().Data("lang")),
		}
		if n, err := row.Extract().DataNumber("chapter"); err == nil {
			ch.Number = n
		} else if n, err := parser.ChapterNumber(ch.Title); err == nil {
			ch.Number = n
		}
		if v, err := row.Extract().DataNumber("volume"); err == nil {
			ch.Volume = v
		} else if v, err := parser.VolumeNumber(ch.Title); err == nil {
			ch.Volume = v
		}
		if t := row.Find(s.sel.ChapterTime).FirstOrNil(); t != nil {
			ch.Published = t.Extract().Date()
		}
		chapters = append(chapters, ch)
	}
	return chapters, nil
}

// parseTags groups tag links by their data-axis, defaulting to genre
func (s *Source) parseTags(links *html.Selector) core.Tags {
	tags := core.Tags{}
	links.Each(func(_ int, tag *html.Element) {
		axis := core.ParseAxis(tag.Extract().Data("axis"))
		if axis == "" {
			axis = core.AxisGenre
		}
		tags.Add(axis, tag.Text())
	})
	return tags.Normalize()
}

// splitReaderPath reads /read/{manga}/{chapter}
func splitReaderPath(href string) (mangaID, chapterID string) {
	u, err := url.Parse(href)
	if err != nil {
		return "", ""
	}
	parts := strings.Split(strings.Trim(path.Clean(u.Path), "/"), "/")
	if len(parts) < 3 || parts[len(parts)-3] != "read" {
		return "", ""
	}
	return parts[len(parts)-2], parts[len(parts)-1]
}

func (s *Source) required(doc *html.Parser, selector, id string) (*html.Element, error) {
	elem, err := doc.Select(selector).First()
	if err != nil {
		return nil, errors.Track(err).WithSource(ID).WithIDs(id).Error()
	}
	return elem, nil
}

func (s *Source) missing(field, selector, id string) error {
	return errors.Newf("%s is empty", field).
		WithSource(ID).
		WithIDs(id).
		WithContext("selector", selector).
		AsExtraction().
		Error()
}
