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

package hwy

import "math/bits"

// This file provides the scalar population counts. They work one 64-bit word
// at a time and are the reference every vector counter must agree with.

// PopCount256 counts the set bits of v.
func PopCount256(v *Bits256) uint32 {
	return uint32(bits.OnesCount64(v[0]) +
		bits.OnesCount64(v[1]) +
		bits.OnesCount64(v[2]) +
		bits.OnesCount64(v[3]))
}

// PopCount512 counts the set bits of v.
func PopCount512(v *Bits512) uint32 {
	var n int
	for _, w := range v {
		n += bits.OnesCount64(w)
	}
	return uint32(n)
}

// AndPopCount256 counts the set bits of a & b, word by word.
func AndPopCount256(a, b *Bits256) uint32 {
	return uint32(bits.OnesCount64(a[0]&b[0]) +
		bits.OnesCount64(a[1]&b[1]) +
		bits.OnesCount64(a[2]&b[2]) +
		bits.OnesCount64(a[3]&b[3]))
}

// AndPopCount512 counts the set bits of a & b, word by word.
func AndPopCount512(a, b *Bits512) uint32 {
	var n int
	for i := range a {
		n += bits.OnesCount64(a[i] & b[i])
	}
	return uint32(n)
}

// FoldPopCount512 counts the set bits of the low half of v ANDed with its
// high half. The result is in [0, 256].
func FoldPopCount512(v *Bits512) uint32 {
	return uint32(bits.OnesCount64(v[0]&v[4]) +
		bits.OnesCount64(v[1]&v[5]) +
		bits.OnesCount64(v[2]&v[6]) +
		bits.OnesCount64(v[3]&v[7]))
}
