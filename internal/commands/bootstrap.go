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

package commands

import (
	"io"

	"Lantern/internal/config"
	"Lantern/pkg/engine"
	"Lantern/pkg/engine/logger"
	"Lantern/pkg/engine/network"
	"Lantern/pkg/source/registry"
	"Lantern/pkg/wrapper"
)

// Bootstrap wires the services described by cfg into an engine and loads
// every registered source. Log lines also go to console when it is set.
func Bootstrap(cfg *config.Config, console io.Writer) (*engine.Engine, error) {
	log, err := logger.NewService(logger.Options{
		File:    cfg.Log.File,
		Console: console,
		Level:   cfg.LogLevel(),
	})
	if err != nil {
		return nil, err
	}

	client, err := network.NewClient(cfg.NetworkConfig(), log)
	if err != nil {
		_ = log.Close()
		return nil, err
	}

	w := wrapper.New(log, cfg.WrapperOptions())
	eng := engine.New(log, client, w, cfg.EngineSettings())

	if err := registry.LoadAll(eng); err != nil {
		_ = eng.Shutdown()
		return nil, err
	}
	return eng, nil
}
