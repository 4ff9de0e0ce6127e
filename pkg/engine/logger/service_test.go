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

package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceWritesAtOrAboveLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewService(Options{Console: &buf, Level: LevelInfo})
	require.NoError(t, err)

	log.Debug("hidden %d", 1)
	log.Info("fetched %s", "one-piece")
	log.Warn("slow page %d", 2)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "INFO")
	assert.Contains(t, out, "fetched one-piece")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "service_test.go")
}

func TestServiceSetLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewService(Options{Console: &buf, Level: LevelError})
	require.NoError(t, err)

	log.Info("before")
	log.SetLevel(LevelDebug)
	log.Debug("after")

	assert.NotContains(t, buf.String(), "before")
	assert.Contains(t, buf.String(), "after")
	assert.True(t, log.Enabled(LevelDebug))
}

func TestServiceWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "lantern.log")
	log, err := NewService(Options{File: path})
	require.NoError(t, err)

	log.Error("site unreachable")
	require.NoError(t, log.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "site unreachable")
}

func TestNopDiscards(t *testing.T) {
	log := NewNop()
	log.Info("nothing")
	assert.NoError(t, log.Close())
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("WARNING")
	require.NoError(t, err)
	assert.Equal(t, LevelWarn, level)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}
