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

package engine

import (
	"bytes"
	"context"
	"testing"
	"time"

	"Lantern/pkg/core"
	"Lantern/pkg/engine/logger"
	"Lantern/pkg/errors"
	"Lantern/pkg/source"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type namedSource struct{ id string }

func (n namedSource) Info() source.Info { return source.Info{ID: n.id, Name: "Named " + n.id} }
func (namedSource) GetMangaDetails(context.Context, []string) ([]core.MangaDetails, error) {
	return nil, nil
}
func (namedSource) GetChapters(context.Context, string) ([]core.Chapter, error) { return nil, nil }
func (namedSource) GetChapterDetails(context.Context, string, string) (*core.ChapterDetails, error) {
	return nil, nil
}
func (namedSource) Search(context.Context, core.SearchRequest, int) ([]core.SearchResult, error) {
	return nil, nil
}
func (namedSource) FilterUpdatedManga(context.Context, []string, time.Time) ([]string, error) {
	return nil, nil
}

func TestRegisterSource(t *testing.T) {
	e := New(logger.NewNop(), nil, nil, Settings{})

	require.NoError(t, e.RegisterSource(namedSource{"mangasee"}))
	assert.True(t, errors.IsValidation(e.RegisterSource(namedSource{"mangasee"})))
	assert.True(t, errors.IsValidation(e.RegisterSource(namedSource{""})))
	assert.True(t, errors.IsValidation(e.RegisterSource(nil)))

	src, err := e.GetSource("mangasee")
	require.NoError(t, err)
	assert.Equal(t, "Named mangasee", src.Info().Name)

	_, err = e.GetSource("nope")
	assert.True(t, errors.IsNotFound(err))
	assert.Equal(t, []string{"mangasee"}, errors.GetContext(err)["available_sources"])
}

func TestSettingsDefaults(t *testing.T) {
	e := New(nil, nil, nil, Settings{
		UpdateLookback: 48 * time.Hour,
		SourceURLs:     map[string]string{"mangasee": "http://localhost:9000"},
		SourceRates:    map[string]RateLimit{"mangasee": {PerSecond: 1, Burst: 1}, "idle": {}},
	})

	assert.Equal(t, 4, e.Settings.Concurrency)
	assert.NotNil(t, e.Wrapper)
	assert.Equal(t, "http://localhost:9000", e.SourceURL("mangasee", "https://fallback"))
	assert.Equal(t, "https://fallback", e.SourceURL("other", "https://fallback"))
	assert.Equal(t, 48*time.Hour, e.UpdateScanner().Lookback)

	rl, ok := e.SourceRate("mangasee")
	assert.True(t, ok)
	assert.Equal(t, RateLimit{PerSecond: 1, Burst: 1}, rl)
	_, ok = e.SourceRate("idle")
	assert.False(t, ok)
}

func TestFormatErrorFollowsDebugMode(t *testing.T) {
	var buf bytes.Buffer
	log, err := logger.NewService(logger.Options{Console: &buf})
	require.NoError(t, err)
	e := New(log, nil, nil, Settings{})

	failure := errors.New("markup changed").WithSource("mangasee").AsExtraction().Error()
	assert.Equal(t, "[extraction] markup changed (source=mangasee)", e.FormatError(failure))

	e.SetDebugMode(true)
	assert.Contains(t, buf.String(), "Debug mode enabled")
	assert.NotEqual(t, e.FormatError(failure), "[extraction] markup changed (source=mangasee)")
	assert.Empty(t, e.FormatError(nil))
}
