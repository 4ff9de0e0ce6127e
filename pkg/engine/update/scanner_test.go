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

package update

import (
	"context"
	"fmt"
	"testing"
	"time"

	"Lantern/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)

// pagedFeed serves entries newest first, size per page, and counts requests
type pagedFeed struct {
	entries []Entry
	size    int
	calls   int
}

func (f *pagedFeed) fetch(_ context.Context, page int) ([]Entry, error) {
	f.calls++
	start := (page - 1) * f.size
	if start >= len(f.entries) {
		return nil, nil
	}
	end := start + f.size
	if end > len(f.entries) {
		end = len(f.entries)
	}
	return f.entries[start:end], nil
}

func ago(d time.Duration) time.Time { return now.Add(-d) }

func newFeed() *pagedFeed {
	return &pagedFeed{size: 2, entries: []Entry{
		{"one-piece", ago(2 * time.Hour)},
		{"blue-lock", ago(26 * time.Hour)},
		{"one-piece", ago(3 * 24 * time.Hour)},
		{"radiation-house", ago(10 * 24 * time.Hour)},
		{"dungeon-meshi", ago(45 * 24 * time.Hour)},
	}}
}

func scanner() *Scanner {
	return &Scanner{Now: func() time.Time { return now }}
}

func TestSinceNowIsEmptyWithoutFetching(t *testing.T) {
	feed := newFeed()
	got, err := scanner().Scan(context.Background(), feed.fetch, []string{"one-piece"}, now)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
	assert.Zero(t, feed.calls)
}

func TestThirtyDaysBackFindsActiveManga(t *testing.T) {
	feed := newFeed()
	ids := []string{"radiation-house", "dungeon-meshi", "one-piece", "one-piece", "unknown"}

	got, err := scanner().Scan(context.Background(), feed.fetch, ids, ago(30*24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, []string{"radiation-house", "one-piece"}, got)
}

func TestScanStopsAtSince(t *testing.T) {
	feed := newFeed()
	got, err := scanner().Scan(context.Background(), feed.fetch, []string{"blue-lock", "radiation-house"}, ago(2*24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, []string{"blue-lock"}, got)
	assert.Equal(t, 2, feed.calls)
}

func TestScanStopsWhenEverythingFound(t *testing.T) {
	feed := newFeed()
	got, err := scanner().Scan(context.Background(), feed.fetch, []string{"one-piece"}, ago(20*24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, []string{"one-piece"}, got)
	assert.Equal(t, 1, feed.calls)
}

func TestLookbackBoundsOldRequests(t *testing.T) {
	feed := newFeed()
	s := scanner()
	s.Lookback = 5 * 24 * time.Hour

	got, err := s.Scan(context.Background(), feed.fetch, []string{"radiation-house", "blue-lock"}, ago(90*24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, []string{"blue-lock"}, got)
}

func TestMaxPagesBoundsTheWalk(t *testing.T) {
	feed := newFeed()
	s := scanner()
	s.MaxPages = 1

	got, err := s.Scan(context.Background(), feed.fetch, []string{"radiation-house"}, ago(30*24*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, 1, feed.calls)
}

func TestFeedErrorIsReturned(t *testing.T) {
	failing := func(context.Context, int) ([]Entry, error) {
		return nil, errors.Track(fmt.Errorf("connection refused")).AsTransport().Error()
	}
	_, err := scanner().Scan(context.Background(), failing, []string{"x"}, ago(time.Hour))
	require.Error(t, err)
	assert.True(t, errors.IsTransport(err))
}
