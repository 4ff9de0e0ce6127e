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
	"io"
	"net/http"
	"net/http/cookiejar"
	"time"

	"Lantern/pkg/engine/logger"
	"Lantern/pkg/errors"

	"golang.org/x/net/publicsuffix"
)

// maxErrorBody bounds how much of a failed response is logged
const maxErrorBody = 512

// Client is the production Fetcher: retries, per-domain rate limits and a
// shared cookie jar.
type Client struct {
	http    *http.Client
	limiter *RateLimiter
	config  Config
	logger  logger.Logger
}

var _ Fetcher = (*Client)(nil)

// NewClient creates a client from config
func NewClient(config Config, log logger.Logger) (*Client, error) {
	config = config.withDefaults()
	if log == nil {
		log = logger.NewNop()
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, errors.Track(err).WithOperation("create_cookie_jar").Error()
	}

	return &Client{
		http: &http.Client{
			Timeout: config.Timeout,
			Jar:     jar,
		},
		limiter: NewRateLimiter(config.RatePerSec, config.Burst),
		config:  config,
		logger:  log,
	}, nil
}

// Limiter exposes the per-domain limiter for overrides
func (c *Client) Limiter() *RateLimiter {
	return c.limiter
}

// Fetch performs the request with retry logic and returns the body
func (c *Client) Fetch(ctx context.Context, url string, opts *RequestOptions) ([]byte, error) {
	if opts == nil {
		opts = &RequestOptions{}
	}
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	var lastErr error
	for attempt := 0; attempt <= c.config.Retries; attempt++ {
		if attempt > 0 {
			if err := c.backoff(ctx, attempt-1); err != nil {
				return nil, err
			}
		}
		if err := c.limiter.Wait(ctx, url); err != nil {
			return nil, err
		}

		body, retry, err := c.do(ctx, method, url, opts)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !retry {
			return nil, err
		}
		c.logger.Debug("[HTTP] %s %s failed (attempt %d/%d): %v", method, url, attempt+1, c.config.Retries+1, err)
	}

	return nil, errors.Track(lastErr).
		WithOperation("fetch").
		WithContext("url", url).
		WithContext("attempts", c.config.Retries+1).
		KeepCategory(errors.CategoryTransport).
		Error()
}

// do runs one attempt. retry reports whether another attempt may succeed.
func (c *Client) do(ctx context.Context, method, url string, opts *RequestOptions) ([]byte, bool, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, false, errors.Track(err).WithContext("url", url).AsValidation().Error()
	}
	if len(opts.Query) > 0 {
		q := req.URL.Query()
		for k, vs := range opts.Query {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		req.URL.RawQuery = q.Encode()
	}

	req.Header.Set("User-Agent", c.config.UserAgent)
	for k, v := range opts.Headers {
		req.Header[k] = v
	}
	if opts.Referer != "" {
		req.Header.Set("Referer", opts.Referer)
	}
	for _, cookie := range opts.Cookies {
		req.AddCookie(cookie)
	}

	c.logger.Debug("[HTTP] %s request to %s", req.Method, req.URL.String())

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, false, errors.FromContext(ctx).WithContext("url", url).Error()
		}
		return nil, true, errors.Track(err).WithHTTPContext(method, url, 0).AsTransport().Error()
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Warn("failed to close response body: %v", cerr)
		}
	}()

	if resp.StatusCode >= 400 {
		sample, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if len(sample) > 0 {
			c.logger.Debug("[HTTP] Error response body: %s", string(sample))
		}
		return nil, resp.StatusCode >= 500, statusError(method, url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, errors.Track(err).WithHTTPContext(method, url, resp.StatusCode).AsTransport().Error()
	}
	return body, false, nil
}

func statusError(method, url string, status int) error {
	var b *errors.ErrorBuilder
	switch status {
	case http.StatusNotFound:
		b = errors.Track(errors.ErrNotFound)
	case http.StatusTooManyRequests:
		b = errors.Track(errors.ErrRateLimit)
	default:
		b = errors.Newf("unexpected status %d", status).AsTransport()
	}
	return b.WithHTTPContext(method, url, status).Error()
}

func (c *Client) backoff(ctx context.Context, attempt int) error {
	wait := c.config.BackoffBase << uint(attempt)
	if wait > c.config.BackoffMax || wait <= 0 {
		wait = c.config.BackoffMax
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return errors.FromContext(ctx).WithOperation("fetch_backoff").Error()
	case <-timer.C:
		return nil
	}
}
