// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package rng

import (
	"crypto/rand"
	"encoding/binary"
	"sync/atomic"
)

// Entropy hands out seed material. Implementations must be safe for
// concurrent NextSeed calls: workers seed their engines in parallel.
type Entropy interface {
	NextSeed() uint64
}

// SystemEntropy reads seeds from the operating system's CSPRNG.
type SystemEntropy struct{}

// NextSeed returns 64 bits from crypto/rand.
func (SystemEntropy) NextSeed() uint64 {
	var b [8]byte
	// crypto/rand.Read never returns an error; it crashes the program
	// if the OS source is unavailable.
	_, _ = rand.Read(b[:])
	return binary.LittleEndian.Uint64(b[:])
}

// Default is the process-wide entropy source.
var Default Entropy = SystemEntropy{}

// FixedEntropy returns a fixed list of seeds in order, wrapping around when it
// runs out. It stands in for the system source when tests need known seeds.
type FixedEntropy struct {
	seeds []uint64
	calls atomic.Uint64
}

// NewFixedEntropy returns a FixedEntropy over seeds. It panics if seeds is
// empty.
func NewFixedEntropy(seeds ...uint64) *FixedEntropy {
	if len(seeds) == 0 {
		panic("rng: NewFixedEntropy needs at least one seed")
	}
	return &FixedEntropy{seeds: append([]uint64(nil), seeds...)}
}

// NextSeed returns the next seed in the list.
func (f *FixedEntropy) NextSeed() uint64 {
	i := f.calls.Add(1) - 1
	return f.seeds[i%uint64(len(f.seeds))]
}

// Calls returns how many seeds have been handed out.
func (f *FixedEntropy) Calls() uint64 {
	return f.calls.Load()
}

// SequenceEntropy derives a distinct seed per call from a base value by
// running the call index through the SplitMix64 finalizer. Two sources with
// the same base produce the same seed sequence.
type SequenceEntropy struct {
	base  uint64
	calls atomic.Uint64
}

// NewSequenceEntropy returns a SequenceEntropy starting at base.
func NewSequenceEntropy(base uint64) *SequenceEntropy {
	return &SequenceEntropy{base: base}
}

// NextSeed returns the seed for the next call index.
func (s *SequenceEntropy) NextSeed() uint64 {
	i := s.calls.Add(1)
	return mix64(s.base + i*splitMixGamma)
}

// Calls returns how many seeds have been handed out.
func (s *SequenceEntropy) Calls() uint64 {
	return s.calls.Load()
}
