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

// Package hwy provides fixed-width bit vectors and bit-population counters
// with runtime CPU dispatch.
//
// The scalar counter is always present. Builds with GOEXPERIMENT=simd on
// amd64 add AVX2 and AVX-512 counters when the CPU supports them; setting
// HWY_NO_SIMD forces the scalar path. All counters agree bit for bit.
//
// Basic usage:
//
//	import "github.com/ajroetker/popmax/hwy"
//
//	c := hwy.BestCounter()
//	a, b := hwy.Ones256(), hwy.Mask256(231)
//	n := c.AndCount256(&a, &b) // 231
package hwy
