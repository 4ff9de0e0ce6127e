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

// Package mangasee scrapes a Mangasee-style HTML manga site.
package mangasee

import (
	"Lantern/pkg/engine"
	"Lantern/pkg/engine/update"
	"Lantern/pkg/source"
	"Lantern/pkg/source/registry"
	"Lantern/pkg/source/web"
)

const (
	ID      = "mangasee"
	siteURL = "https://mangasee123.com"
)

func init() {
	registry.Register(func(e *engine.Engine) (source.Source, error) {
		return New(e, DefaultSelectors())
	})
}

// Selectors locate each field in the site's markup
type Selectors struct {
	SeriesRoot  string
	Title       string
	AltTitles   string
	Cover       string
	Rating      string
	Status      string
	Author      string
	Artist      string
	Tags        string
	Description string
	Updated     string

	Chapters    string
	ChapterLink string
	ChapterTime string

	Reader string
	Pages  string

	Results       string
	ResultTitle   string
	ResultCover   string
	ResultSubline string
	ResultPrimary string
	ResultSecond  string
	ResultTags    string

	Latest     string
	LatestTime string
}

// DefaultSelectors returns the selectors of the live site
func DefaultSelectors() Selectors {
	return Selectors{
		SeriesRoot:  ".series",
		Title:       "h1.series-title",
		AltTitles:   "ul.alt-titles li",
		Cover:       "img.series-cover",
		Rating:      ".series-rating",
		Status:      ".series-status",
		Author:      ".series-author a",
		Artist:      ".series-artist a",
		Tags:        ".series-tags a",
		Description: ".series-desc",
		Updated:     ".series-updated time",

		Chapters:    "ul.chapter-list li.chapter",
		ChapterLink: "a[href]",
		ChapterTime: "time",

		Reader: "div.reader",
		Pages:  "img.page",

		Results:       "div.search-result",
		ResultTitle:   "a.result-title",
		ResultCover:   "img.result-cover",
		ResultSubline: ".result-subtitle",
		ResultPrimary: ".result-primary",
		ResultSecond:  ".result-secondary",
		ResultTags:    ".result-tags a",

		Latest:     "li.latest-update",
		LatestTime: "time",
	}
}

// Source implements source.Source for the site
type Source struct {
	*web.Site
	sel     Selectors
	scanner *update.Scanner
}

var _ source.Source = (*Source)(nil)

// New creates the source bound to e
func New(e *engine.Engine, sel Selectors) (*Source, error) {
	site, err := web.NewSite(e, web.Config{
		ID:          ID,
		Name:        "MangaSee",
		Description: "Mangasee-style catalogue with tag search and a latest updates feed",
		SiteURL:     siteURL,
		Version:     "1.0.0",
		Headers: map[string]string{
			"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
			"Accept-Language": "en-US,en;q=0.9",
		},
	})
	if err != nil {
		return nil, err
	}

	return &Source{Site: site, sel: sel, scanner: e.UpdateScanner()}, nil
}
