// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package rng

import "math/bits"

const (
	wyP0 = 0xa0761d6478bd642f
	wyP1 = 0xe7037ed1a0b428db
)

// WyRand is the wyrand generator: a Weyl sequence finalized by folding a
// 128-bit product. It is fast and not cryptographic.
type WyRand struct {
	state uint64
}

// NewWyRand returns a WyRand whose state is seed. Every 64-bit state is
// valid, including zero.
func NewWyRand(seed uint64) *WyRand {
	return &WyRand{state: seed}
}

// Uint64 returns the next word.
func (r *WyRand) Uint64() uint64 {
	r.state += wyP0
	hi, lo := bits.Mul64(r.state, r.state^wyP1)
	return hi ^ lo
}
