// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"":        slog.LevelInfo,
		"DEBUG":   slog.LevelDebug,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	_, err := ParseLevel("trace")
	require.ErrorIs(t, err, ErrInvalid)
}

func TestNewWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewWriter(&buf, "debug", "json")
	require.NoError(t, err)

	l.WithAlgorithm("wy-rand").LogRun(100, 91, 12, nil)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	require.Equal(t, "run completed", rec["msg"])
	require.Equal(t, "wy-rand", rec["algorithm"])
	require.EqualValues(t, 91, rec["max"])
}

func TestLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewWriter(&buf, "info", "text")
	require.NoError(t, err)

	l.LogRun(1, 1, 1, nil)
	l.LogTruncation(10, 2)
	require.Empty(t, buf.String())

	l.LogRun(1, 0, 0, errors.New("boom"))
	require.Contains(t, buf.String(), "run failed")
	require.Contains(t, buf.String(), "boom")
}

func TestTruncationSkipsZero(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewWriter(&buf, "debug", "text")
	require.NoError(t, err)

	l.LogTruncation(8, 0)
	require.Empty(t, buf.String())
	l.LogTruncation(10, 2)
	require.Contains(t, buf.String(), "dropped=2")
}

func TestNew(t *testing.T) {
	l, err := New("warn", "json")
	require.NoError(t, err)
	require.True(t, l.Enabled(t.Context(), slog.LevelWarn))
	require.False(t, l.Enabled(t.Context(), slog.LevelInfo))
}

func TestBadFormat(t *testing.T) {
	_, err := New("info", "xml")
	require.ErrorIs(t, err, ErrInvalid)
}

func TestNoop(t *testing.T) {
	require.False(t, Noop().Enabled(t.Context(), slog.LevelError))
}
