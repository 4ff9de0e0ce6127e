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
	"net/http"
	"net/url"
	"time"
)

// Fetcher retrieves the raw body behind a URL. Implementations must be safe
// for concurrent use.
type Fetcher interface {
	Fetch(ctx context.Context, url string, opts *RequestOptions) ([]byte, error)
}

// RequestOptions tweaks a single request
type RequestOptions struct {
	Method  string
	Headers http.Header
	Referer string
	Cookies []*http.Cookie
	Query   url.Values
}

// Config holds client settings
type Config struct {
	Timeout     time.Duration
	Retries     int
	RatePerSec  float64
	Burst       int
	UserAgent   string
	BackoffBase time.Duration
	BackoffMax  time.Duration
}

// DefaultConfig returns the settings used when nothing is configured
func DefaultConfig() Config {
	return Config{
		Timeout:     30 * time.Second,
		Retries:     2,
		RatePerSec:  2,
		Burst:       2,
		UserAgent:   "Lantern/1.0 (+https://github.com/lantern-manga/lantern)",
		BackoffBase: time.Second,
		BackoffMax:  30 * time.Second,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Timeout <= 0 {
		c.Timeout = def.Timeout
	}
	if c.Retries < 0 {
		c.Retries = 0
	}
	if c.RatePerSec <= 0 {
		c.RatePerSec = def.RatePerSec
	}
	if c.Burst <= 0 {
		c.Burst = def.Burst
	}
	if c.UserAgent == "" {
		c.UserAgent = def.UserAgent
	}
	if c.BackoffBase <= 0 {
		c.BackoffBase = def.BackoffBase
	}
	if c.BackoffMax <= 0 {
		c.BackoffMax = def.BackoffMax
	}
	return c
}

// ExtractDomain extracts the host from a URL
func ExtractDomain(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return parsed.Host
}
