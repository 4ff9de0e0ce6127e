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

package html

import (
	"bytes"
	"io"
	"strings"

	"Lantern/pkg/errors"

	"github.com/PuerkitoBio/goquery"
)

// Parser provides a clean interface for querying HTML documents
type Parser struct {
	doc *goquery.Document
}

// Parse creates a new parser from HTML content
func Parse(content []byte) (*Parser, error) {
	return ParseReader(bytes.NewReader(content))
}

// ParseReader creates a new parser from a reader
func ParseReader(r io.Reader) (*Parser, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, errors.Track(err).
			WithOperation("html_parse").
			AsExtraction().
			Error()
	}
	return &Parser{doc: doc}, nil
}

// ParseString creates a new parser from an HTML string
func ParseString(html string) (*Parser, error) {
	return Parse([]byte(html))
}

// Select starts a query against the whole document
func (p *Parser) Select(selector string) *Selector {
	return &Selector{root: p.doc.Selection, selector: selector}
}

// Text returns the trimmed text of the document
func (p *Parser) Text() string {
	return strings.TrimSpace(p.doc.Text())
}

// Title returns the document title
func (p *Parser) Title() string {
	return strings.TrimSpace(p.doc.Find("title").Text())
}

// Meta returns name/property to content pairs of all meta tags
func (p *Parser) Meta() map[string]string {
	meta := make(map[string]string)

	p.doc.Find("meta").Each(func(_ int, s *goquery.Selection) {
		content, ok := s.Attr("content")
		if !ok {
			return
		}
		if name, ok := s.Attr("name"); ok {
			meta[name] = content
		}
		// og: tags use property
		if property, ok := s.Attr("property"); ok {
			meta[property] = content
		}
	})

	return meta
}
