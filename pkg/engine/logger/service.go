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

package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level represents log severity
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLevel converts a level name from configuration
func ParseLevel(name string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
}

func (l Level) zapLevel() zapcore.Level {
	switch l {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Logger interface for logging operations
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
	SetLevel(level Level)
}

// Options selects where log lines go. With neither File nor Console set
// every line is discarded.
type Options struct {
	File    string
	Console io.Writer
	Level   Level
}

// Service implements Logger on top of a zap sugared logger
type Service struct {
	level zap.AtomicLevel
	sugar *zap.SugaredLogger
	file  *os.File
	mu    sync.Mutex
}

var _ Logger = (*Service)(nil)

// NewService creates a logger writing to the configured outputs
func NewService(opts Options) (*Service, error) {
	s := &Service{level: zap.NewAtomicLevelAt(opts.Level.zapLevel())}

	var writers []zapcore.WriteSyncer
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		file, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		s.file = file
		writers = append(writers, zapcore.AddSync(file))
	}
	if opts.Console != nil {
		writers = append(writers, zapcore.AddSync(opts.Console))
	}

	var core zapcore.Core
	if len(writers) == 0 {
		core = zapcore.NewNopCore()
	} else {
		core = zapcore.NewCore(newEncoder(), zapcore.NewMultiWriteSyncer(writers...), s.level)
	}

	s.sugar = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)).Sugar()
	return s, nil
}

// NewNop returns a logger that drops everything
func NewNop() *Service {
	s, _ := NewService(Options{})
	return s
}

// newEncoder formats lines as: timestamp LEVEL file:line message
func newEncoder() zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "time"
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05,000")
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.EncodeCaller = zapcore.ShortCallerEncoder
	cfg.ConsoleSeparator = " "
	return zapcore.NewConsoleEncoder(cfg)
}

// SetLevel sets the minimum log level
func (s *Service) SetLevel(level Level) {
	s.level.SetLevel(level.zapLevel())
}

// Enabled reports whether level would be written
func (s *Service) Enabled(level Level) bool {
	return s.level.Enabled(level.zapLevel())
}

// Close flushes and closes the log file if open
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_ = s.sugar.Sync()
	if s.file != nil {
		err := s.file.Close()
		s.file = nil
		return err
	}
	return nil
}

// Debug logs a debug message
func (s *Service) Debug(format string, args ...interface{}) {
	s.sugar.Debugf(format, args...)
}

// Info logs an info message
func (s *Service) Info(format string, args ...interface{}) {
	s.sugar.Infof(format, args...)
}

// Warn logs a warning message
func (s *Service) Warn(format string, args ...interface{}) {
	s.sugar.Warnf(format, args...)
}

// Error logs an error message
func (s *Service) Error(format string, args ...interface{}) {
	s.sugar.Errorf(format, args...)
}
