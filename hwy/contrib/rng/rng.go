// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package rng provides the pseudorandom engines used by the trial strategies
// and the entropy source that seeds them.
//
// One engine instance belongs to one worker for the whole run. Engines are
// seeded exactly once, from a single Entropy.NextSeed call, and never
// reseeded. None of them is safe for concurrent use.
package rng

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ajroetker/popmax/hwy"
)

// Source is a 64-bit pseudorandom generator.
type Source interface {
	Uint64() uint64
}

// Kind names an engine algorithm.
type Kind int

const (
	// WyRandKind is wyrand: one add and one 64x64->128 multiply per draw.
	WyRandKind Kind = iota

	// Xoshiro256Kind is xoshiro256**, a scrambled linear generator with a
	// 2^256-1 period.
	Xoshiro256Kind

	// ChaCha8Kind is the ChaCha8 stream cipher generator from math/rand/v2.
	ChaCha8Kind

	// PCGKind is PCG-DXSM from math/rand/v2.
	PCGKind

	// FastRandKind is valyala/fastrand's 32-bit xorshift, two draws per word.
	// Its 32-bit state has period 2^32-1, so streams of different workers overlap
	// at benchmark scale; use it for throughput numbers only.
	FastRandKind
)

// ErrUnknownKind is returned by ParseKind for an unrecognized name.
var ErrUnknownKind = errors.New("unknown rng kind")

var kindNames = [...]string{
	WyRandKind:     "wyrand",
	Xoshiro256Kind: "xoshiro256**",
	ChaCha8Kind:    "chacha8",
	PCGKind:        "pcg",
	FastRandKind:   "fastrand",
}

// Kinds returns every engine kind.
func Kinds() []Kind {
	return []Kind{WyRandKind, Xoshiro256Kind, ChaCha8Kind, PCGKind, FastRandKind}
}

// String returns the engine name.
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps a name from String back to its Kind. "xoshiro" is accepted
// as an alias for "xoshiro256**".
func ParseKind(name string) (Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "xoshiro" {
		return Xoshiro256Kind, nil
	}
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// New returns a fresh engine of the given kind seeded from e. It calls
// e.NextSeed exactly once.
func New(kind Kind, e Entropy) Source {
	seed := e.NextSeed()
	switch kind {
	case WyRandKind:
		return NewWyRand(seed)
	case Xoshiro256Kind:
		return NewXoshiro256StarStar(seed)
	case ChaCha8Kind:
		return NewChaCha8(seed)
	case PCGKind:
		return NewPCG(seed)
	case FastRandKind:
		return NewFastRand(seed)
	default:
		panic(fmt.Sprintf("rng: New called with %v", kind))
	}
}

// Fill256 draws four words from src into dst, word 0 first.
func Fill256(src Source, dst *hwy.Bits256) {
	dst[0] = src.Uint64()
	dst[1] = src.Uint64()
	dst[2] = src.Uint64()
	dst[3] = src.Uint64()
}

// Fill512 draws eight words from src into dst, word 0 first.
func Fill512(src Source, dst *hwy.Bits512) {
	for i := range dst {
		dst[i] = src.Uint64()
	}
}
