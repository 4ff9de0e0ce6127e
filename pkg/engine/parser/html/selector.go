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
	"Lantern/pkg/errors"

	"github.com/PuerkitoBio/goquery"
)

// Selector is a pending query rooted at a document or element
type Selector struct {
	root     *goquery.Selection
	selector string
}

func (s *Selector) find() *goquery.Selection {
	return s.root.Find(s.selector)
}

// First returns the first match or an extraction error
func (s *Selector) First() (*Element, error) {
	if elem := s.FirstOrNil(); elem != nil {
		return elem, nil
	}
	return nil, errors.New("no elements found").
		WithContext("selector", s.selector).
		AsExtraction().
		Error()
}

// FirstOrNil returns the first match or nil
func (s *Selector) FirstOrNil() *Element {
	selection := s.find().First()
	if selection.Length() == 0 {
		return nil
	}
	return &Element{selection: selection}
}

// All returns every match or an extraction error if there are none
func (s *Selector) All() ([]*Element, error) {
	elements := s.AllOrEmpty()
	if len(elements) == 0 {
		return nil, errors.New("no elements found").
			WithContext("selector", s.selector).
			AsExtraction().
			Error()
	}
	return elements, nil
}

// AllOrEmpty returns every match in document order
func (s *Selector) AllOrEmpty() []*Element {
	var elements []*Element
	s.Each(func(_ int, elem *Element) {
		elements = append(elements, elem)
	})
	return elements
}

// Count returns the number of matches
func (s *Selector) Count() int {
	return s.find().Length()
}

// Exists reports whether anything matches
func (s *Selector) Exists() bool {
	return s.Count() > 0
}

// Each calls fn for every match in document order
func (s *Selector) Each(fn func(int, *Element)) {
	s.find().Each(func(i int, sel *goquery.Selection) {
		fn(i, &Element{selection: sel})
	})
}

// MapString collects the non-empty results of fn
func (s *Selector) MapString(fn func(*Element) string) []string {
	var results []string

	s.Each(func(_ int, elem *Element) {
		if result := fn(elem); result != "" {
			results = append(results, result)
		}
	})

	return results
}

// Texts returns the trimmed, non-empty text of every match
func (s *Selector) Texts() []string {
	return s.MapString((*Element).Text)
}
