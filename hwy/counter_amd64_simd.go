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

var avx2Counter = Counter{
	Name:         "avx2",
	Level:        DispatchAVX2,
	Count256:     popCount256AVX2,
	Count512:     popCount512AVX2,
	AndCount256:  andPopCount256AVX2,
	AndCount512:  andPopCount512AVX2,
	FoldCount512: foldPopCount512AVX2,
}

// AVX-512 implies AVX2, so the 256-bit entry points reuse the AVX2 kernels.
var avx512Counter = Counter{
	Name:         "avx512",
	Level:        DispatchAVX512,
	Count256:     popCount256AVX2,
	Count512:     popCount512AVX512,
	AndCount256:  andPopCount256AVX2,
	AndCount512:  andPopCount512AVX512,
	FoldCount512: foldPopCount512AVX512,
}

func vectorCounters() []Counter {
	switch currentLevel {
	case DispatchAVX512:
		return []Counter{avx2Counter, avx512Counter}
	case DispatchAVX2:
		return []Counter{avx2Counter}
	default:
		return nil
	}
}
