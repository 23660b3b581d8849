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

// This file provides AVX2 population counts over 256-bit registers.
// AVX2 doesn't have native SIMD popcount instructions, so the AND runs in a
// single VPAND and the count uses the store/scalar pattern.

// PopCount_AVX2_U64x4 counts the set bits across all four lanes.
func PopCount_AVX2_U64x4(v archsimd.Uint64x4) uint32 {
	var data [4]uint64
	v.StoreSlice(data[:])
	return uint32(bits.OnesCount64(data[0]) +
		bits.OnesCount64(data[1]) +
		bits.OnesCount64(data[2]) +
		bits.OnesCount64(data[3]))
}

// Load_AVX2_Bits256 loads v into a 256-bit register.
func Load_AVX2_Bits256(v *Bits256) archsimd.Uint64x4 {
	return archsimd.LoadUint64x4Slice(v[:])
}

func popCount256AVX2(v *Bits256) uint32 {
	return PopCount_AVX2_U64x4(Load_AVX2_Bits256(v))
}

func andPopCount256AVX2(a, b *Bits256) uint32 {
	va := Load_AVX2_Bits256(a)
	vb := Load_AVX2_Bits256(b)
	return PopCount_AVX2_U64x4(va.And(vb))
}

// The 512-bit entry points split into two 256-bit registers.

func popCount512AVX2(v *Bits512) uint32 {
	lo := archsimd.LoadUint64x4Slice(v[:4])
	hi := archsimd.LoadUint64x4Slice(v[4:])
	return PopCount_AVX2_U64x4(lo) + PopCount_AVX2_U64x4(hi)
}

func andPopCount512AVX2(a, b *Bits512) uint32 {
	lo := archsimd.LoadUint64x4Slice(a[:4]).And(archsimd.LoadUint64x4Slice(b[:4]))
	hi := archsimd.LoadUint64x4Slice(a[4:]).And(archsimd.LoadUint64x4Slice(b[4:]))
	return PopCount_AVX2_U64x4(lo) + PopCount_AVX2_U64x4(hi)
}

func foldPopCount512AVX2(v *Bits512) uint32 {
	lo := archsimd.LoadUint64x4Slice(v[:4])
	hi := archsimd.LoadUint64x4Slice(v[4:])
	return PopCount_AVX2_U64x4(lo.And(hi))
}
