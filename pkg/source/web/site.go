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

// Package web is the shared plumbing of HTML-scraping sources: building
// URLs, fetching and parsing pages, and resolving id batches in parallel.
package web

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"Lantern/pkg/core"
	"Lantern/pkg/engine"
	"Lantern/pkg/engine/logger"
	"Lantern/pkg/engine/network"
	"Lantern/pkg/engine/parser/html"
	"Lantern/pkg/errors"
	"Lantern/pkg/source"

	"golang.org/x/sync/errgroup"
)

// Config describes an HTML site
type Config struct {
	ID          string
	Name        string
	Description string
	SiteURL     string
	Version     string
	Headers     map[string]string
}

// Site provides fetching and parsing for an HTML-based source
type Site struct {
	config      Config
	fetcher     network.Fetcher
	logger      logger.Logger
	concurrency int
}

// NewSite binds config to the engine's network client. The engine's
// configured URL for config.ID overrides config.SiteURL.
func NewSite(e *engine.Engine, config Config) (*Site, error) {
	if e.Network == nil {
		return nil, errors.Newf("source %s needs a network client", config.ID).AsValidation().Error()
	}

	config.SiteURL = strings.TrimRight(e.SourceURL(config.ID, config.SiteURL), "/")
	if _, err := url.ParseRequestURI(config.SiteURL); err != nil {
		return nil, errors.Track(err).
			WithSource(config.ID).
			WithContext("site_url", config.SiteURL).
			AsValidation().
			Error()
	}

	if rl, ok := e.SourceRate(config.ID); ok {
		if limited, ok := e.Network.(interface{ Limiter() *network.RateLimiter }); ok {
			domain := network.ExtractDomain(config.SiteURL)
			limited.Limiter().SetLimit(domain, rl.PerSecond, rl.Burst)
			e.Logger.Debug("[%s] rate limit for %s set to %.2f/s", config.ID, domain, rl.PerSecond)
		}
	}

	return &Site{
		config:      config,
		fetcher:     e.Network,
		logger:      e.Logger,
		concurrency: e.Settings.Concurrency,
	}, nil
}

// Info describes the site
func (s *Site) Info() source.Info {
	return source.Info{
		ID:          s.config.ID,
		Name:        s.config.Name,
		Description: s.config.Description,
		SiteURL:     s.config.SiteURL,
		Version:     s.config.Version,
	}
}

// Logger returns the engine logger
func (s *Site) Logger() logger.Logger {
	return s.logger
}

// URL joins path and query onto the site URL
func (s *Site) URL(path string, query url.Values) string {
	u := s.config.SiteURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// Document fetches and parses a page of the site
func (s *Site) Document(ctx context.Context, path string, query url.Values) (*html.Parser, error) {
	pageURL := s.URL(path, query)

	headers := make(http.Header, len(s.config.Headers))
	for k, v := range s.config.Headers {
		headers.Set(k, v)
	}

	body, err := s.fetcher.Fetch(ctx, pageURL, &network.RequestOptions{
		Headers: headers,
		Referer: s.config.SiteURL + "/",
	})
	if err != nil {
		return nil, errors.Track(err).
			WithSource(s.config.ID).
			WithContext("url", pageURL).
			Error()
	}

	doc, err := html.Parse(body)
	if err != nil {
		return nil, errors.Track(err).
			WithSource(s.config.ID).
			WithContext("url", pageURL).
			Error()
	}
	return doc, nil
}

// ForEachID runs fn for every id with bounded parallelism taken from the
// context (see core.WithConcurrency). Per-id failures are collected in a
// BatchError instead of stopping the batch, and ok reports per index whether
// fn succeeded. Only context cancellation aborts early.
func (s *Site) ForEachID(ctx context.Context, operation string, ids []string, fn func(ctx context.Context, i int, id string) error) (ok []bool, err error) {
	batch := errors.NewBatchError(operation)
	ok = make([]bool, len(ids))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	limit := core.GetConcurrency(ctx, s.concurrency)
	if limit < 1 {
		limit = 1
	}
	g.SetLimit(limit)

	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			if gctx.Err() != nil {
				return errors.FromContext(gctx).WithIDs(id).Error()
			}
			if err := fn(gctx, i, id); err != nil {
				if ctx.Err() != nil {
					return err
				}
				mu.Lock()
				batch.Add(id, err)
				mu.Unlock()
				return nil
			}
			ok[i] = true
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return ok, err
	}
	return ok, batch.ErrOrNil()
}
