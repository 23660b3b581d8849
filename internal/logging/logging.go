// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package logging builds the slog logger used by popmax.
package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// ErrInvalid is returned for an unknown level or format.
var ErrInvalid = errors.New("invalid logging option")

// Logger wraps slog.Logger with popmax field helpers so run logs use
// consistent keys.
type Logger struct {
	*slog.Logger
}

// ParseLevel maps debug, info, warn or error to a slog.Level. The empty
// string is info.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: level %q", ErrInvalid, name)
	}
}

// New creates a Logger writing to stderr. format is "text" (default) or
// "json".
func New(level, format string) (*Logger, error) {
	return NewWriter(os.Stderr, level, format)
}

// NewWriter is New with an explicit destination.
func NewWriter(w io.Writer, level, format string) (*Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: lvl}

	var h slog.Handler
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "text":
		h = slog.NewTextHandler(w, opts)
	case "json":
		h = slog.NewJSONHandler(w, opts)
	default:
		return nil, fmt.Errorf("%w: format %q", ErrInvalid, format)
	}
	return &Logger{Logger: slog.New(h)}, nil
}

// Noop returns a Logger that discards everything.
func Noop() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	}))}
}

// WithAlgorithm tags the logger with an algorithm selector.
func (l *Logger) WithAlgorithm(name string) *Logger {
	return &Logger{Logger: l.Logger.With("algorithm", name)}
}

// LogRun logs the outcome of one algorithm run.
func (l *Logger) LogRun(iterations uint64, best uint32, elapsedMicros int64, err error) {
	if err != nil {
		l.Error("run failed",
			"iterations", iterations,
			"error", err,
		)
		return
	}
	l.Debug("run completed",
		"iterations", iterations,
		"max", best,
		"elapsed_us", elapsedMicros,
	)
}

// LogTruncation records trials dropped by a batched layout.
func (l *Logger) LogTruncation(requested, dropped uint64) {
	if dropped == 0 {
		return
	}
	l.Debug("iteration count truncated to batch multiple",
		"requested", requested,
		"dropped", dropped,
	)
}
