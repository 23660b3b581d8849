// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Command popmax measures how fast different engines and counters can find
// the largest popcount of the AND of two random 256-bit values.
//
// Usage:
//
//	popmax [flags] <num_iter> [algorithm...]
//	popmax list
//	popmax info
//
// With no algorithm names every algorithm available on this CPU runs.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrUsage marks errors caused by bad input rather than a failed run.
var ErrUsage = errors.New("usage")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr, nil)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "popmax: %v\n", err)
		return exitCode(err)
	}
	return 0
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrUsage):
		return 2
	default:
		return 1
	}
}
