// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package trial provides the trial strategies benchmarked by popmax.
//
// A trial draws two independent fixed-width random values, ANDs them and
// counts the surviving bits. Each strategy fixes the engine, the width and the
// layout the work is done in:
//
//   - Scalar: one engine, per-word AND and count.
//   - Vector: one engine, AND and count on 256-bit values through a
//     hwy.Counter.
//   - MultiStream: sixteen engines feeding four trials per call.
//   - Wide512: eight engines feeding one 512-bit value whose halves are ANDed.
//
// Algorithm bundles a strategy configuration with a selector name; All,
// Available, Lookup and Select expose the built-in set.
//
// # Example Usage
//
//	pool := workerpool.New(0)
//	defer pool.Close()
//
//	a, _ := trial.Lookup("wy-rand-simd")
//	best, err := a.Run(pool, rng.Default, 100_000_000, trial.Options{})
package trial
