// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

//go:build amd64 && goexperiment.simd

package hwy

import (
	"math/bits"
	"simd/archsimd"
)

// This file provides AVX-512 population counts over 512-bit registers.
// AVX-512 VPOPCNTDQ provides native popcount for 64-bit elements, but we use
// store/scalar/load pattern for consistency and portability across all AVX-512 variants.

// PopCount_AVX512_U64x8 counts the set bits across all eight lanes.
func PopCount_AVX512_U64x8(v archsimd.Uint64x8) uint32 {
	var data [8]uint64
	v.StoreSlice(data[:])
	var n int
	for i := 0; i < 8; i++ {
		n += bits.OnesCount64(data[i])
	}
	return uint32(n)
}

// Load_AVX512_Bits512 loads v into a 512-bit register.
func Load_AVX512_Bits512(v *Bits512) archsimd.Uint64x8 {
	return archsimd.LoadUint64x8Slice(v[:])
}

func popCount512AVX512(v *Bits512) uint32 {
	return PopCount_AVX512_U64x8(Load_AVX512_Bits512(v))
}

func andPopCount512AVX512(a, b *Bits512) uint32 {
	va := Load_AVX512_Bits512(a)
	vb := Load_AVX512_Bits512(b)
	return PopCount_AVX512_U64x8(va.And(vb))
}

// foldPopCount512AVX512 loads the full 512-bit draw once and ANDs its two
// 256-bit halves in registers.
func foldPopCount512AVX512(v *Bits512) uint32 {
	r := Load_AVX512_Bits512(v)
	return PopCount_AVX2_U64x4(r.GetLo().And(r.GetHi()))
}
