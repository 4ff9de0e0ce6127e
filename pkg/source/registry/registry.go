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

// Package registry collects source constructors at init time so the binary
// only needs a blank import per source package.
package registry

import (
	"sync"

	"Lantern/pkg/engine"
	"Lantern/pkg/source"
)

// Constructor creates a source instance bound to an engine
type Constructor func(*engine.Engine) (source.Source, error)

// Registry holds source constructors
type Registry struct {
	constructors []Constructor
	mu           sync.RWMutex
}

var global = &Registry{}

// Register adds a source constructor to the global registry
func Register(constructor Constructor) {
	global.mu.Lock()
	defer global.mu.Unlock()

	global.constructors = append(global.constructors, constructor)
}

// LoadAll creates and registers all sources with the engine. A source that
// fails to build is logged and skipped.
func LoadAll(e *engine.Engine) error {
	global.mu.RLock()
	constructors := make([]Constructor, len(global.constructors))
	copy(constructors, global.constructors)
	global.mu.RUnlock()

	for _, constructor := range constructors {
		src, err := constructor(e)
		if err != nil {
			e.Logger.Error("Failed to create source: %v", err)
			continue
		}
		if src == nil {
			continue
		}
		if err := e.RegisterSource(src); err != nil {
			e.Logger.Error("Failed to register source: %v", err)
		}
	}

	e.Logger.Debug("Loaded %d sources", e.SourceCount())
	return nil
}

// Clear removes all registered constructors
func Clear() {
	global.mu.Lock()
	defer global.mu.Unlock()

	global.constructors = nil
}

// Count returns the number of registered constructors
func Count() int {
	global.mu.RLock()
	defer global.mu.RUnlock()

	return len(global.constructors)
}
