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
	"sync"

	"Lantern/pkg/errors"

	"golang.org/x/time/rate"
)

// RateLimiter provides per-domain rate limiting
type RateLimiter struct {
	domains map[string]*rate.Limiter
	limit   rate.Limit
	burst   int
	mu      sync.RWMutex
}

// NewRateLimiter creates a limiter allowing perSecond requests per domain
func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		domains: make(map[string]*rate.Limiter),
		limit:   rate.Limit(perSecond),
		burst:   burst,
	}
}

// Wait blocks until the domain of rawURL may be hit again
func (r *RateLimiter) Wait(ctx context.Context, rawURL string) error {
	if err := r.getLimiter(ExtractDomain(rawURL)).Wait(ctx); err != nil {
		if ctx.Err() != nil {
			return errors.FromContext(ctx).WithContext("url", rawURL).Error()
		}
		return errors.Track(err).WithContext("url", rawURL).AsTransport().Error()
	}
	return nil
}

// SetLimit overrides the rate of one domain
func (r *RateLimiter) SetLimit(domain string, perSecond float64, burst int) {
	if burst < 1 {
		burst = 1
	}
	r.mu.Lock()
	r.domains[domain] = rate.NewLimiter(rate.Limit(perSecond), burst)
	r.mu.Unlock()
}

// Limit reports the rate and burst applied to domain
func (r *RateLimiter) Limit(domain string) (float64, int) {
	limiter := r.getLimiter(domain)
	return float64(limiter.Limit()), limiter.Burst()
}

// Reset clears rate limiting state for a domain
func (r *RateLimiter) Reset(domain string) {
	r.mu.Lock()
	delete(r.domains, domain)
	r.mu.Unlock()
}

func (r *RateLimiter) getLimiter(domain string) *rate.Limiter {
	r.mu.RLock()
	limiter, exists := r.domains[domain]
	r.mu.RUnlock()
	if exists {
		return limiter
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Double-check after acquiring write lock
	if limiter, exists := r.domains[domain]; exists {
		return limiter
	}
	limiter = rate.NewLimiter(r.limit, r.burst)
	r.domains[domain] = limiter
	return limiter
}
