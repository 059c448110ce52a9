// Package logging builds the zerolog logger for each run mode
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

const (
	// LogFileName is the active log file inside the log directory
	LogFileName = "tiwe.log"
	// MaxLogSize triggers rotation of an existing log file at startup
	MaxLogSize = 10 * 1024 * 1024
)

// Config selects the log destination and level
type Config struct {
	Level string
	Dir   string
	// Enabled writes to Dir; otherwise file mode discards everything
	Enabled bool
	// Console sends human-readable output to Stderr instead of a file
	Console bool
	// Stderr overrides os.Stderr for console output
	Stderr io.Writer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Setup returns the logger and a closer for its destination.
// The terminal owns stdout in run mode, so file output is the only option there.
func Setup(cfg Config) (zerolog.Logger, io.Closer, error) {
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		lvl, err := zerolog.ParseLevel(cfg.Level)
		if err != nil {
			return zerolog.Nop(), nopCloser{}, fmt.Errorf("parse log level: %w", err)
		}
		level = lvl
	}

	if cfg.Console {
		out := cfg.Stderr
		if out == nil {
			out = os.Stderr
		}
		w := zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly}
		return zerolog.New(w).Level(level).With().Timestamp().Logger(), nopCloser{}, nil
	}

	if !cfg.Enabled {
		return zerolog.Nop(), nopCloser{}, nil
	}

	f, err := openLogFile(cfg.Dir)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, err
	}
	return zerolog.New(f).Level(level).With().Timestamp().Logger(), f, nil
}

// openLogFile rotates an oversized log aside and opens the active file for append
func openLogFile(dir string) (*os.File, error) {
	if dir == "" {
		dir = "logs"
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	path := filepath.Join(dir, LogFileName)
	if info, err := os.Stat(path); err == nil && info.Size() > MaxLogSize {
		rotated := filepath.Join(dir, fmt.Sprintf("tiwe-%s.log", time.Now().Format("20060102-150405")))
		if err := os.Rename(path, rotated); err != nil {
			return nil, fmt.Errorf("rotate log: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}
