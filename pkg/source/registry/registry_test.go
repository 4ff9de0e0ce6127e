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

package registry

import (
	"context"
	"fmt"
	"testing"
	"time"

	"Lantern/pkg/core"
	"Lantern/pkg/engine"
	"Lantern/pkg/source"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct{ id string }

func (s stubSource) Info() source.Info { return source.Info{ID: s.id, Name: s.id} }
func (stubSource) GetMangaDetails(context.Context, []string) ([]core.MangaDetails, error) {
	return nil, nil
}
func (stubSource) GetChapters(context.Context, string) ([]core.Chapter, error) { return nil, nil }
func (stubSource) GetChapterDetails(context.Context, string, string) (*core.ChapterDetails, error) {
	return nil, nil
}
func (stubSource) Search(context.Context, core.SearchRequest, int) ([]core.SearchResult, error) {
	return nil, nil
}
func (stubSource) FilterUpdatedManga(context.Context, []string, time.Time) ([]string, error) {
	return nil, nil
}

func TestLoadAllRegistersSources(t *testing.T) {
	Clear()
	t.Cleanup(Clear)

	Register(func(*engine.Engine) (source.Source, error) { return stubSource{"b"}, nil })
	Register(func(*engine.Engine) (source.Source, error) { return stubSource{"a"}, nil })
	Register(func(*engine.Engine) (source.Source, error) { return nil, fmt.Errorf("broken") })
	Register(func(*engine.Engine) (source.Source, error) { return stubSource{"a"}, nil })
	assert.Equal(t, 4, Count())

	e := engine.New(nil, nil, nil, engine.Settings{})
	require.NoError(t, LoadAll(e))

	assert.Equal(t, 2, e.SourceCount())
	all := e.AllSources()
	assert.Equal(t, "a", all[0].Info().ID)
	assert.Equal(t, "b", all[1].Info().ID)

	_, err := e.GetSource("missing")
	assert.Error(t, err)
}
