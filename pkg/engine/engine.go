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
	"sort"
	"sync"
	"time"

	"Lantern/pkg/engine/logger"
	"Lantern/pkg/engine/network"
	"Lantern/pkg/engine/update"
	"Lantern/pkg/errors"
	"Lantern/pkg/source"
	"Lantern/pkg/wrapper"
)

// Settings are the knobs sources read when they are constructed
type Settings struct {
	Concurrency    int
	UpdateLookback time.Duration
	UpdateMaxPages int
	SourceURLs     map[string]string
	SourceRates    map[string]RateLimit
}

// RateLimit overrides the request rate of one source's domain
type RateLimit struct {
	PerSecond float64
	Burst     int
}

// Engine is the central component providing services to sources
type Engine struct {
	Network  network.Fetcher
	Logger   logger.Logger
	Wrapper  *wrapper.Wrapper
	Settings Settings

	sources     map[string]source.Source
	sourceMutex sync.RWMutex

	debugMode bool
}

// New creates an engine from already built services
func New(log logger.Logger, fetcher network.Fetcher, w *wrapper.Wrapper, settings Settings) *Engine {
	if log == nil {
		log = logger.NewNop()
	}
	if w == nil {
		w = wrapper.New(log, wrapper.Options{})
	}
	if settings.Concurrency <= 0 {
		settings.Concurrency = 4
	}

	e := &Engine{
		Network:  fetcher,
		Logger:   log,
		Wrapper:  w,
		Settings: settings,
		sources:  make(map[string]source.Source),
	}
	log.Debug("Engine initialized")
	return e
}

// SourceURL returns the configured base URL of a source, or fallback
func (e *Engine) SourceURL(id, fallback string) string {
	if url, ok := e.Settings.SourceURLs[id]; ok && url != "" {
		return url
	}
	return fallback
}

// SourceRate returns the rate override configured for a source
func (e *Engine) SourceRate(id string) (RateLimit, bool) {
	rl, ok := e.Settings.SourceRates[id]
	return rl, ok && rl.PerSecond > 0
}

// UpdateScanner builds a scanner bounded by the engine settings
func (e *Engine) UpdateScanner() *update.Scanner {
	return update.NewScanner(e.Settings.UpdateLookback, e.Settings.UpdateMaxPages, e.Logger)
}

// RegisterSource adds a source to the registry
func (e *Engine) RegisterSource(src source.Source) error {
	if src == nil {
		return errors.New("source is nil").AsValidation().Error()
	}

	id := src.Info().ID
	if id == "" {
		return errors.New("source has empty ID").AsValidation().Error()
	}

	e.sourceMutex.Lock()
	defer e.sourceMutex.Unlock()

	if _, exists := e.sources[id]; exists {
		return errors.Newf("source with ID '%s' already registered", id).AsValidation().Error()
	}

	e.sources[id] = src
	e.Logger.Debug("Registered source: %s (%s)", src.Info().Name, id)
	return nil
}

// GetSource retrieves a registered source by ID
func (e *Engine) GetSource(id string) (source.Source, error) {
	e.sourceMutex.RLock()
	defer e.sourceMutex.RUnlock()

	src, exists := e.sources[id]
	if !exists {
		return nil, errors.Newf("source '%s' not found", id).
			WithContext("available_sources", e.sourceIDs()).
			AsNotFound().
			Error()
	}
	return src, nil
}

// AllSources returns all registered sources ordered by ID
func (e *Engine) AllSources() []source.Source {
	e.sourceMutex.RLock()
	defer e.sourceMutex.RUnlock()

	sources := make([]source.Source, 0, len(e.sources))
	for _, id := range e.sourceIDs() {
		sources = append(sources, e.sources[id])
	}
	return sources
}

// SourceCount returns the number of registered sources
func (e *Engine) SourceCount() int {
	e.sourceMutex.RLock()
	defer e.sourceMutex.RUnlock()
	return len(e.sources)
}

// Shutdown releases the logger
func (e *Engine) Shutdown() error {
	e.Logger.Debug("Shutting down engine")
	if closer, ok := e.Logger.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}

// SetDebugMode switches between terse and detailed error output
func (e *Engine) SetDebugMode(enabled bool) {
	e.debugMode = enabled
	if enabled {
		e.Logger.SetLevel(logger.LevelDebug)
		e.Logger.Debug("Debug mode enabled")
	}
}

// FormatError formats an error based on the debug setting
func (e *Engine) FormatError(err error) string {
	if err == nil {
		return ""
	}
	if e.debugMode {
		return errors.FormatChain(err)
	}
	return errors.FormatSimple(err)
}

// sourceIDs must be called with the lock held
func (e *Engine) sourceIDs() []string {
	ids := make([]string, 0, len(e.sources))
	for id := range e.sources {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
