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

package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Lantern/pkg/errors"
)

func TestChapterNumber(t *testing.T) {
	tests := []struct {
		text string
		want float64
	}{
		{"Chapter 1100", 1100},
		{"Vol.3 Chapter 12.5", 12.5},
		{"Vol. 3 Ch. 7", 7},
		{"ep #42 - The End", 42},
		{"Volume 2 - 15", 15},
		{"1098.5", 1098.5},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := ChapterNumber(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestChapterNumberMissing(t *testing.T) {
	_, err := ChapterNumber("Oneshot")
	require.Error(t, err)
	assert.True(t, errors.IsExtraction(err))
}

func TestVolumeNumber(t *testing.T) {
	got, err := VolumeNumber("Vol.3 Chapter 12.5")
	require.NoError(t, err)
	assert.Equal(t, 3.0, got)

	_, err = VolumeNumber("Chapter 12")
	assert.True(t, errors.IsExtraction(err))
}
