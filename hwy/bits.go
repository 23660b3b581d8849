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

// Bits256 is a 256-bit value stored as four 64-bit words.
// Word 0 holds the least significant bits.
type Bits256 [4]uint64

// Bits512 is a 512-bit value stored as eight 64-bit words.
// Words 0-3 form the low half, words 4-7 the high half.
type Bits512 [8]uint64

// Mask231 is the word-0 mask that leaves 231 live bits in a Bits256:
// 39 bits of word 0 plus the three full upper words.
const Mask231 = 0x0000_007f_ffff_ffff

// Ones256 returns a Bits256 with every bit set.
func Ones256() Bits256 {
	return Bits256{^uint64(0), ^uint64(0), ^uint64(0), ^uint64(0)}
}

// Ones512 returns a Bits512 with every bit set.
func Ones512() Bits512 {
	var v Bits512
	for i := range v {
		v[i] = ^uint64(0)
	}
	return v
}

// Mask256 returns a mask keeping width bits of a Bits256.
//
// Bits are dropped from the top of word 0 first, then from word 1 and so on,
// so Mask256(231) clears the top 25 bits of word 0 and equals
// {Mask231, ^0, ^0, ^0}. width is clamped to [0, 256].
func Mask256(width int) Bits256 {
	m := Ones256()
	drop := 256 - min(max(width, 0), 256)
	for i := 0; drop > 0; i++ {
		if drop >= 64 {
			m[i] = 0
			drop -= 64
			continue
		}
		m[i] = ^uint64(0) >> drop
		drop = 0
	}
	return m
}

// And returns v & o.
func (v Bits256) And(o Bits256) Bits256 {
	return Bits256{v[0] & o[0], v[1] & o[1], v[2] & o[2], v[3] & o[3]}
}

// And returns v & o.
func (v Bits512) And(o Bits512) Bits512 {
	var r Bits512
	for i := range r {
		r[i] = v[i] & o[i]
	}
	return r
}

// Lo returns the low 256 bits.
func (v *Bits512) Lo() Bits256 {
	return Bits256{v[0], v[1], v[2], v[3]}
}

// Hi returns the high 256 bits.
func (v *Bits512) Hi() Bits256 {
	return Bits256{v[4], v[5], v[6], v[7]}
}

// Concat512 joins two 256-bit halves, lo in words 0-3.
func Concat512(lo, hi Bits256) Bits512 {
	return Bits512{lo[0], lo[1], lo[2], lo[3], hi[0], hi[1], hi[2], hi[3]}
}
