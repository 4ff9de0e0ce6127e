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

// Package update answers "which of these manga changed since T" by walking a
// site's newest-first listing of recent updates.
package update

import (
	"context"
	"time"

	"Lantern/pkg/engine/logger"
	"Lantern/pkg/engine/search"
	"Lantern/pkg/errors"
)

const (
	DefaultLookback = 30 * 24 * time.Hour
	DefaultMaxPages = 50
)

// Entry is one line of an update listing
type Entry struct {
	MangaID string
	Updated time.Time
}

// Feed returns one 1-based page of an update listing, newest first. An empty
// page ends the listing.
type Feed func(ctx context.Context, page int) ([]Entry, error)

// Scanner walks update feeds within a bounded window. The zero value uses
// the defaults.
type Scanner struct {
	Lookback time.Duration
	MaxPages int
	Now      func() time.Time
	Logger   logger.Logger
}

// NewScanner creates a scanner with the given bounds
func NewScanner(lookback time.Duration, maxPages int, log logger.Logger) *Scanner {
	return &Scanner{Lookback: lookback, MaxPages: maxPages, Logger: log}
}

// Scan returns the ids updated strictly after since, in request order and
// without duplicates. Updates older than the lookback window are not seen.
func (s *Scanner) Scan(ctx context.Context, feed Feed, ids []string, since time.Time) ([]string, error) {
	now := s.now()
	if !since.Before(now) || len(ids) == 0 {
		return []string{}, nil
	}

	floor := since
	if oldest := now.Add(-s.lookback()); floor.Before(oldest) {
		s.log().Debug("[update] since %s is outside the %s window, scanning back to %s",
			since.Format(time.RFC3339), s.lookback(), oldest.Format(time.RFC3339))
		floor = oldest
	}

	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	found := make(map[string]bool)

	pages, err := search.Paginate(ctx, s.maxPages(), func(ctx context.Context, page int) (bool, error) {
		entries, err := feed(ctx, page)
		if err != nil {
			return false, errors.Track(err).
				WithOperation("scan_updates").
				WithContext("page", page).
				Error()
		}
		if len(entries) == 0 {
			return false, nil
		}

		for _, entry := range entries {
			if !entry.Updated.After(floor) {
				return false, nil
			}
			if wanted[entry.MangaID] {
				found[entry.MangaID] = true
			}
		}
		return len(found) < len(wanted), nil
	})
	if err != nil {
		return nil, err
	}
	s.log().Debug("[update] scanned %d page(s), %d of %d id(s) updated", pages, len(found), len(wanted))

	result := make([]string, 0, len(found))
	for _, id := range ids {
		if found[id] {
			result = append(result, id)
			delete(found, id)
		}
	}
	return result, nil
}

func (s *Scanner) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Scanner) lookback() time.Duration {
	if s.Lookback > 0 {
		return s.Lookback
	}
	return DefaultLookback
}

func (s *Scanner) maxPages() int {
	if s.MaxPages > 0 {
		return s.MaxPages
	}
	return DefaultMaxPages
}

func (s *Scanner) log() logger.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return logger.NewNop()
}
