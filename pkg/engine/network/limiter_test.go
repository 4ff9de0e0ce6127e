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

package network

import (
	"context"
	"testing"
	"time"

	"Lantern/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterSpacesRequestsPerDomain(t *testing.T) {
	limiter := NewRateLimiter(20, 1)
	ctx := context.Background()

	start := time.Now()
	require.NoError(t, limiter.Wait(ctx, "https://a.example/1"))
	require.NoError(t, limiter.Wait(ctx, "https://a.example/2"))
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)

	// other domains have their own budget
	start = time.Now()
	require.NoError(t, limiter.Wait(ctx, "https://b.example/1"))
	assert.Less(t, time.Since(start), 40*time.Millisecond)
}

func TestRateLimiterCancelled(t *testing.T) {
	limiter := NewRateLimiter(0.01, 1)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	require.NoError(t, limiter.Wait(ctx, "https://slow.example/"))
	err := limiter.Wait(ctx, "https://slow.example/")
	require.Error(t, err)
	assert.True(t, errors.IsTransport(err))
}

func TestExtractDomain(t *testing.T) {
	assert.Equal(t, "mangasee.example:8080", ExtractDomain("http://mangasee.example:8080/manga/x"))
}
