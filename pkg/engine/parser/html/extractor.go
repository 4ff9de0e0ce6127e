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
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"Lantern/pkg/errors"
	"Lantern/pkg/util"
)

var (
	numberPattern     = regexp.MustCompile(`\d[\d,]*\.?\d*`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Extractor provides typed access to an element's content
type Extractor struct {
	element *Element
}

func (e *Extractor) Href() string {
	return strings.TrimSpace(e.element.AttrOr("href", ""))
}

// AbsHref resolves href against baseURL
func (e *Extractor) AbsHref(baseURL string) string {
	return resolve(baseURL, e.Href())
}

// Src returns src, falling back to data-src for lazy-loaded images
func (e *Extractor) Src() string {
	if src := strings.TrimSpace(e.element.AttrOr("src", "")); src != "" {
		return src
	}
	return strings.TrimSpace(e.element.AttrOr("data-src", ""))
}

// AbsSrc resolves Src against baseURL
func (e *Extractor) AbsSrc(baseURL string) string {
	return resolve(baseURL, e.Src())
}

// Data returns a data-* attribute
func (e *Extractor) Data(key string) string {
	return strings.TrimSpace(e.element.AttrOr("data-"+key, ""))
}

// CleanText returns the text with whitespace collapsed
func (e *Extractor) CleanText() string {
	return CleanText(e.element.selection.Text())
}

// Number finds the first number in the text
func (e *Extractor) Number() (float64, error) {
	return ParseNumber(e.element.Text())
}

// NumberOr returns the first number in the text or the default
func (e *Extractor) NumberOr(defaultValue float64) float64 {
	n, err := e.Number()
	if err != nil {
		return defaultValue
	}
	return n
}

// DataNumber parses a numeric data-* attribute
func (e *Extractor) DataNumber(key string) (float64, error) {
	return ParseNumber(e.Data(key))
}

// Date parses the datetime attribute, falling back to the text
func (e *Extractor) Date() *time.Time {
	if raw := e.element.AttrOr("datetime", ""); raw != "" {
		if t := util.ParseNullableDate(raw); t != nil {
			return t
		}
	}
	return util.ParseNullableDate(e.element.Text())
}

// ParseNumber extracts the first decimal number from text
func ParseNumber(text string) (float64, error) {
	match := numberPattern.FindString(text)
	if match == "" {
		return 0, errors.Newf("no number in %q", text).AsExtraction().Error()
	}
	match = strings.TrimSuffix(strings.ReplaceAll(match, ",", ""), ".")

	n, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, errors.Track(err).WithContext("text", text).AsExtraction().Error()
	}
	return n, nil
}

// CleanText collapses runs of whitespace and trims
func CleanText(text string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))
}

func resolve(baseURL, ref string) string {
	if ref == "" {
		return ""
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return ref
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return base.ResolveReference(u).String()
}
