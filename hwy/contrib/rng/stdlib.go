// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package rng

import (
	"encoding/binary"
	"math/rand/v2"

	"github.com/valyala/fastrand"
)

// NewChaCha8 returns a ChaCha8 generator keyed from SplitMix64(seed).
func NewChaCha8(seed uint64) *rand.ChaCha8 {
	sm := SplitMix64{state: seed}
	var key [32]byte
	for i := 0; i < 32; i += 8 {
		binary.LittleEndian.PutUint64(key[i:], sm.Uint64())
	}
	return rand.NewChaCha8(key)
}

// NewPCG returns a PCG generator whose two state words come from
// SplitMix64(seed).
func NewPCG(seed uint64) *rand.PCG {
	sm := SplitMix64{state: seed}
	return rand.NewPCG(sm.Uint64(), sm.Uint64())
}

// FastRand widens valyala/fastrand's 32-bit RNG to 64 bits per draw.
type FastRand struct {
	r fastrand.RNG
}

// NewFastRand returns a FastRand seeded from the low half of
// SplitMix64(seed).
func NewFastRand(seed uint64) *FastRand {
	s := uint32(mix64(seed))
	if s == 0 {
		// fastrand.RNG treats a zero state as unseeded and pulls its own
		// seed, which would bypass the entropy source.
		s = 1
	}
	f := &FastRand{}
	f.r.Seed(s)
	return f
}

// Uint64 returns two consecutive 32-bit draws, high word first.
func (f *FastRand) Uint64() uint64 {
	hi := uint64(f.r.Uint32())
	return hi<<32 | uint64(f.r.Uint32())
}
