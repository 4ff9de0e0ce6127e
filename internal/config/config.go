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

// Package config loads Lantern settings. Environment variables override
// lantern.yaml, which overrides the defaults.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"Lantern/pkg/engine"
	"Lantern/pkg/engine/logger"
	"Lantern/pkg/engine/network"
	"Lantern/pkg/errors"
	"Lantern/pkg/wrapper"
)

// EnvPrefix is prepended to every environment override, e.g.
// LANTERN_NETWORK_RETRIES.
const EnvPrefix = "LANTERN"

// Config is the top-level configuration.
type Config struct {
	Log         LogConfig               `yaml:"log" mapstructure:"log"`
	Network     NetworkConfig           `yaml:"network" mapstructure:"network"`
	Concurrency int                     `yaml:"concurrency" mapstructure:"concurrency"`
	Update      UpdateConfig            `yaml:"update" mapstructure:"update"`
	Search      SearchConfig            `yaml:"search" mapstructure:"search"`
	StrictBatch bool                    `yaml:"strict_batch" mapstructure:"strict_batch"`
	StrictTitle bool                    `yaml:"strict_title" mapstructure:"strict_title"`
	Sources     map[string]SourceConfig `yaml:"sources" mapstructure:"sources"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"`
	File  string `yaml:"file" mapstructure:"file"`
}

// NetworkConfig configures the HTTP client.
type NetworkConfig struct {
	Timeout   time.Duration `yaml:"timeout" mapstructure:"timeout"`
	Retries   int           `yaml:"retries" mapstructure:"retries"`
	Rate      float64       `yaml:"rate" mapstructure:"rate"`
	Burst     int           `yaml:"burst" mapstructure:"burst"`
	UserAgent string        `yaml:"user_agent" mapstructure:"user_agent"`
}

// UpdateConfig bounds the update scan.
type UpdateConfig struct {
	Lookback time.Duration `yaml:"lookback" mapstructure:"lookback"`
	MaxPages int           `yaml:"max_pages" mapstructure:"max_pages"`
}

// SearchConfig bounds multi-page search.
type SearchConfig struct {
	MaxPages int `yaml:"max_pages" mapstructure:"max_pages"`
}

// SourceConfig overrides per-source settings. A zero Rate keeps the
// network-wide rate.
type SourceConfig struct {
	URL   string  `yaml:"url" mapstructure:"url"`
	Rate  float64 `yaml:"rate" mapstructure:"rate"`
	Burst int     `yaml:"burst" mapstructure:"burst"`
}

// Load reads configuration. When path is empty, lantern.yaml is looked up in
// the working directory and a missing file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("lantern")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	def := network.DefaultConfig()
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("network.timeout", def.Timeout)
	v.SetDefault("network.retries", def.Retries)
	v.SetDefault("network.rate", def.RatePerSec)
	v.SetDefault("network.burst", def.Burst)
	v.SetDefault("network.user_agent", def.UserAgent)
	v.SetDefault("concurrency", 4)
	v.SetDefault("update.lookback", 30*24*time.Hour)
	v.SetDefault("update.max_pages", 50)
	v.SetDefault("search.max_pages", wrapper.DefaultMaxSearchPages)
	v.SetDefault("strict_batch", false)
	v.SetDefault("strict_title", false)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, errors.Track(err).
				WithOperation("config_load").
				WithContext("path", path).
				AsValidation().
				Wrap("config: read file").
				Error()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Track(err).AsValidation().Wrap("config: unmarshal").Error()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the services cannot run with.
func (c *Config) Validate() error {
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return invalid("log.level", c.Log.Level)
	}
	if c.Network.Timeout <= 0 {
		return invalid("network.timeout", c.Network.Timeout)
	}
	if c.Network.Retries < 0 {
		return invalid("network.retries", c.Network.Retries)
	}
	if c.Network.Rate <= 0 {
		return invalid("network.rate", c.Network.Rate)
	}
	if c.Network.Burst <= 0 {
		return invalid("network.burst", c.Network.Burst)
	}
	if c.Concurrency <= 0 {
		return invalid("concurrency", c.Concurrency)
	}
	if c.Update.Lookback <= 0 {
		return invalid("update.lookback", c.Update.Lookback)
	}
	if c.Update.MaxPages <= 0 {
		return invalid("update.max_pages", c.Update.MaxPages)
	}
	if c.Search.MaxPages <= 0 {
		return invalid("search.max_pages", c.Search.MaxPages)
	}
	for id, src := range c.Sources {
		if src.Rate < 0 {
			return invalid("sources."+id+".rate", src.Rate)
		}
	}
	return nil
}

func invalid(key string, value interface{}) error {
	return errors.Newf("config: invalid %s: %v", key, value).
		WithContext("key", key).
		AsValidation().
		Error()
}

// LogLevel returns the parsed log level. Validate has already checked it.
func (c *Config) LogLevel() logger.Level {
	level, err := logger.ParseLevel(c.Log.Level)
	if err != nil {
		return logger.LevelInfo
	}
	return level
}

// NetworkConfig converts the network section for network.NewClient.
func (c *Config) NetworkConfig() network.Config {
	cfg := network.DefaultConfig()
	cfg.Timeout = c.Network.Timeout
	cfg.Retries = c.Network.Retries
	cfg.RatePerSec = c.Network.Rate
	cfg.Burst = c.Network.Burst
	if c.Network.UserAgent != "" {
		cfg.UserAgent = c.Network.UserAgent
	}
	return cfg
}

// EngineSettings converts the engine-facing knobs.
func (c *Config) EngineSettings() engine.Settings {
	urls := make(map[string]string, len(c.Sources))
	rates := make(map[string]engine.RateLimit)
	for id, src := range c.Sources {
		id = strings.ToLower(id)
		if src.URL != "" {
			urls[id] = src.URL
		}
		if src.Rate > 0 {
			burst := src.Burst
			if burst <= 0 {
				burst = c.Network.Burst
			}
			rates[id] = engine.RateLimit{PerSecond: src.Rate, Burst: burst}
		}
	}
	return engine.Settings{
		Concurrency:    c.Concurrency,
		UpdateLookback: c.Update.Lookback,
		UpdateMaxPages: c.Update.MaxPages,
		SourceURLs:     urls,
		SourceRates:    rates,
	}
}

// WrapperOptions converts the strictness switches.
func (c *Config) WrapperOptions() wrapper.Options {
	return wrapper.Options{
		StrictBatch:    c.StrictBatch,
		StrictTitle:    c.StrictTitle,
		MaxSearchPages: c.Search.MaxPages,
	}
}
