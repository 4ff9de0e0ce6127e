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

// Package parser pulls numbers out of the free text sites put in chapter
// labels. Markup itself is handled by the html subpackage.
package parser

import (
	"regexp"
	"strconv"

	"Lantern/pkg/errors"
)

var (
	chapterPattern = regexp.MustCompile(`(?i)(?:chapter|chap\.?|ch\.?|episode|ep\.?)[\s:#]*(\d+(?:\.\d+)?)`)
	volumePattern  = regexp.MustCompile(`(?i)(?:volume|vol\.?|v\.)[\s:#]*(\d+(?:\.\d+)?)`)
	numberPattern  = regexp.MustCompile(`\d+(?:\.\d+)?`)
)

// ChapterNumber reads the chapter number from a label such as
// "Vol.3 Chapter 12.5". Without a chapter keyword the first number that is
// not a volume number is used.
func ChapterNumber(text string) (float64, error) {
	if m := chapterPattern.FindStringSubmatch(text); len(m) > 1 {
		return parseFloat(m[1], text)
	}

	rest := volumePattern.ReplaceAllString(text, " ")
	if match := numberPattern.FindString(rest); match != "" {
		return parseFloat(match, text)
	}
	return 0, errors.New("no chapter number found").
		WithContext("text", text).
		AsExtraction().
		Error()
}

// VolumeNumber reads the volume number from a label
func VolumeNumber(text string) (float64, error) {
	if m := volumePattern.FindStringSubmatch(text); len(m) > 1 {
		return parseFloat(m[1], text)
	}
	return 0, errors.New("no volume number found").
		WithContext("text", text).
		AsExtraction().
		Error()
}

func parseFloat(raw, text string) (float64, error) {
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, errors.Track(err).WithContext("text", text).AsExtraction().Error()
	}
	return n, nil
}
