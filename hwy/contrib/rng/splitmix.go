// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package rng

const splitMixGamma = 0x9E3779B97F4A7C15

// SplitMix64 expands one 64-bit seed into a stream of well-mixed words. The
// engines use it to turn a single entropy draw into their full state.
type SplitMix64 struct {
	state uint64
}

// NewSplitMix64 returns a SplitMix64 starting at seed.
func NewSplitMix64(seed uint64) *SplitMix64 {
	return &SplitMix64{state: seed}
}

// Uint64 returns the next word.
func (s *SplitMix64) Uint64() uint64 {
	s.state += splitMixGamma
	return mix64(s.state)
}

func mix64(z uint64) uint64 {
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}
