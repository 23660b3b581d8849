// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package rng

import "math/bits"

// Xoshiro256StarStar is the xoshiro256** generator.
type Xoshiro256StarStar struct {
	s [4]uint64
}

// NewXoshiro256StarStar fills the 256-bit state from SplitMix64(seed). The
// state can never be all zero this way.
func NewXoshiro256StarStar(seed uint64) *Xoshiro256StarStar {
	sm := SplitMix64{state: seed}
	return &Xoshiro256StarStar{s: [4]uint64{sm.Uint64(), sm.Uint64(), sm.Uint64(), sm.Uint64()}}
}

// Uint64 returns the next word.
func (x *Xoshiro256StarStar) Uint64() uint64 {
	s := &x.s
	result := bits.RotateLeft64(s[1]*5, 7) * 9
	t := s[1] << 17

	s[2] ^= s[0]
	s[3] ^= s[1]
	s[1] ^= s[2]
	s[0] ^= s[3]
	s[2] ^= t
	s[3] = bits.RotateLeft64(s[3], 45)

	return result
}
