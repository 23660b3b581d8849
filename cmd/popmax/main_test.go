// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ajroetker/popmax/hwy/contrib/rng"
	"github.com/ajroetker/popmax/hwy/contrib/trial"
	"github.com/ajroetker/popmax/internal/logging"
)

func runCLI(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestRunSelected(t *testing.T) {
	code, out, errOut := runCLI(t, "1_000", "wy-rand", "fastrand")
	require.Equal(t, 0, code, errOut)
	require.Contains(t, out, "number of iterations: 1,000\n")
	require.Contains(t, out, "wyrand")
	require.Contains(t, out, "fastrand")
	require.NotContains(t, out, "xoshiro")
}

func TestRunAllAvailable(t *testing.T) {
	code, out, errOut := runCLI(t, "--workers", "2", "--schedule", "dynamic", "--batch-size", "64", "4,000")
	require.Equal(t, 0, code, errOut)
	for _, a := range trial.Available() {
		require.Contains(t, out, a.Display)
	}
}

func TestUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no args", nil},
		{"bad count", []string{"lots"}},
		{"negative count", []string{"-5"}},
		{"unknown algorithm", []string{"10", "wy-rand", "mersenne"}},
		{"bad schedule", []string{"--schedule", "guided", "10"}},
		{"unknown flag", []string{"--threads", "3", "10"}},
		{"bad log level", []string{"--log-level", "trace", "10"}},
		{"list with args", []string{"list", "extra"}},
		{"missing config", []string{"--config", "/nonexistent/popmax.toml", "10"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out, errOut := runCLI(t, tt.args...)
			if tt.name == "missing config" {
				require.Equal(t, 1, code)
			} else {
				require.Equal(t, 2, code, errOut)
			}
			require.NotContains(t, out, "number of iterations")
			require.Contains(t, errOut, "popmax:")
		})
	}
}

func TestListAndInfo(t *testing.T) {
	code, out, _ := runCLI(t, "list")
	require.Equal(t, 0, code)
	for _, a := range trial.All() {
		require.Contains(t, out, a.Name)
	}

	code, out, _ = runCLI(t, "info")
	require.Equal(t, 0, code)
	require.Contains(t, out, "scalar")
}

func TestConfigFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "popmax.toml")
	require.NoError(t, os.WriteFile(p, []byte(`
iterations = "2_000"
algorithms = ["xoshiro"]
log_level = "debug"
`), 0o600))

	code, out, errOut := runCLI(t, "--config", p)
	require.Equal(t, 0, code, errOut)
	require.Contains(t, out, "number of iterations: 2,000")
	require.Contains(t, out, "xoshiro256**")
	require.Contains(t, errOut, "run completed")

	// Flags and positional arguments win over the file.
	code, out, errOut = runCLI(t, "--config", p, "--log-level", "error", "500", "wy-rand")
	require.Equal(t, 0, code, errOut)
	require.Contains(t, out, "number of iterations: 500")
	require.Contains(t, out, "wyrand")
	require.NotContains(t, out, "xoshiro256**")
	require.Empty(t, errOut)
}

func TestInvalidConfigIsUsage(t *testing.T) {
	p := filepath.Join(t.TempDir(), "popmax.toml")
	require.NoError(t, os.WriteFile(p, []byte(`schedule = "guided"`), 0o600))
	code, _, _ := runCLI(t, "--config", p, "10")
	require.Equal(t, 2, code)
}

func TestExitCode(t *testing.T) {
	require.Equal(t, 0, exitCode(nil))
	require.Equal(t, 2, exitCode(ErrUsage))
	require.Equal(t, 1, exitCode(errors.New("boom")))
}

func TestRunnerDeterministicWithFixedSeeds(t *testing.T) {
	a, err := trial.Lookup("wy-rand")
	require.NoError(t, err)

	var got []uint32
	for range 2 {
		r := newRunner(1, rng.NewFixedEntropy(2024), logging.Noop())
		res, err := r.Run(a, 5_000, trial.Options{})
		r.Close()
		require.NoError(t, err)
		got = append(got, res.Max)
	}
	require.Equal(t, got[0], got[1])
}

func TestRunnerTiming(t *testing.T) {
	r := newRunner(1, rng.NewFixedEntropy(1), nil)
	defer r.Close()

	base := time.Unix(0, 0)
	ticks := 0
	r.now = func() time.Time {
		ticks++
		return base.Add(time.Duration(ticks) * time.Second)
	}

	a, err := trial.Lookup("wy-rand-multi")
	require.NoError(t, err)
	res, err := r.Run(a, 10, trial.Options{})
	require.NoError(t, err)
	require.Equal(t, time.Second, res.Elapsed)
	require.Equal(t, a.Display, res.Name)
	require.EqualValues(t, 10, res.Iterations)
	require.LessOrEqual(t, int(res.Max), a.Width)
}

func TestRunnerDynamicHugeBatch(t *testing.T) {
	code, _, errOut := runCLI(t, "--workers", "4", "--schedule", "dynamic",
		"--batch-size", "18446744073709551615", "1000", "wy-rand")
	require.Equal(t, 0, code, errOut)

	r := newRunner(4, rng.NewSequenceEntropy(5), nil)
	defer r.Close()

	a, err := trial.Lookup("wy-rand")
	require.NoError(t, err)
	res, err := r.Run(a, 1000, trial.Options{Schedule: trial.Dynamic, BatchSize: math.MaxUint64})
	require.NoError(t, err)
	// 1000 draws of Binomial(256, 1/4) never all stay this low.
	require.Greater(t, res.Max, uint32(40))
}

func TestRunAllZeroIterations(t *testing.T) {
	e := rng.NewFixedEntropy(1)
	r := newRunner(2, e, nil)
	defer r.Close()

	results, err := r.RunAll(trial.Available(), 0, trial.Options{})
	require.NoError(t, err)
	require.Len(t, results, len(trial.Available()))
	for _, res := range results {
		require.Zero(t, res.Max)
	}
	require.Zero(t, e.Calls())
}
