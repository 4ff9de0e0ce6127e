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

package util

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// dateFormats lists layouts commonly used on manga sites, most precise first
var dateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"January 2, 2006",
	"Jan 2, 2006",
	"01/02/2006",
	"2006/01/02",
	"2 January 2006",
	"2 Jan 2006",
	"January 2006",
	"Jan 2006",
}

// ParseNullableDate safely parses a date string, returning nil if empty or invalid
func ParseNullableDate(dateStr string) *time.Time {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return nil
	}

	for _, format := range dateFormats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return &t
		}
	}

	return nil
}

// ParseSince reads a point in time given either as a date or as a duration
// back from now ("72h", "30d", "2w").
func ParseSince(raw string, now time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("empty time value")
	}
	if raw == "now" {
		return now, nil
	}

	if t := ParseNullableDate(raw); t != nil {
		return *t, nil
	}

	if d, err := ParseDuration(raw); err == nil {
		return now.Add(-d), nil
	}

	return time.Time{}, fmt.Errorf("cannot parse %q as a date or duration", raw)
}

// ParseDuration extends time.ParseDuration with day (d) and week (w) units
func ParseDuration(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	for suffix, unit := range map[string]time.Duration{"d": 24 * time.Hour, "w": 7 * 24 * time.Hour} {
		if n, ok := strings.CutSuffix(raw, suffix); ok {
			count, err := strconv.ParseFloat(n, 64)
			if err != nil {
				return 0, fmt.Errorf("invalid duration %q", raw)
			}
			return time.Duration(count * float64(unit)), nil
		}
	}
	return time.ParseDuration(raw)
}

// FormatDate formats a time value for display
func FormatDate(date *time.Time) string {
	if date == nil || date.IsZero() {
		return "Unknown"
	}
	return date.Format("2006-01-02")
}
