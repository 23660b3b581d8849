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

// Counter is one bit-population counting implementation. Every Counter
// returned by Counters gives bit-identical results to ScalarCounter on the
// same input; they differ only in the data layout used for the AND and count.
type Counter struct {
	// Name identifies the counter ("scalar", "avx2", "avx512").
	Name string

	// Level is the dispatch level the counter needs.
	Level DispatchLevel

	Count256 func(v *Bits256) uint32
	Count512 func(v *Bits512) uint32

	// AndCount256 returns popcount(a & b).
	AndCount256 func(a, b *Bits256) uint32

	// AndCount512 returns popcount(a & b).
	AndCount512 func(a, b *Bits512) uint32

	// FoldCount512 returns popcount(lo(v) & hi(v)) for the two 256-bit halves.
	FoldCount512 func(v *Bits512) uint32
}

var scalarCounter = Counter{
	Name:         "scalar",
	Level:        DispatchScalar,
	Count256:     PopCount256,
	Count512:     PopCount512,
	AndCount256:  AndPopCount256,
	AndCount512:  AndPopCount512,
	FoldCount512: FoldPopCount512,
}

// ScalarCounter returns the portable word-at-a-time counter. It is always
// available.
func ScalarCounter() Counter {
	return scalarCounter
}

// Counters returns every counter usable in this build on this CPU, scalar
// first and widest last.
func Counters() []Counter {
	return append([]Counter{scalarCounter}, vectorCounters()...)
}

// LookupCounter finds an available counter by name.
func LookupCounter(name string) (Counter, bool) {
	for _, c := range Counters() {
		if c.Name == name {
			return c, true
		}
	}
	return Counter{}, false
}

// BestCounter returns the widest available counter.
func BestCounter() Counter {
	cs := Counters()
	return cs[len(cs)-1]
}
