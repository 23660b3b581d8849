// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package reduce runs a trial function over a large iteration space on a
// worker pool and folds every outcome into a single maximum.
//
// Each partition of the iteration space gets its own worker state from
// Strategy.InitWorker, created once and reused for every trial in that
// partition. Partial maxima are merged with Combine, which is associative and
// commutative, so the result does not depend on how [0, n) was split or in
// which order partitions finished. The zero value of the outcome type is the
// identity of the fold, so outcomes are expected to be non-negative counts.
package reduce

import (
	"cmp"
	"math"

	"github.com/ajroetker/popmax/hwy/contrib/workerpool"
)

// Strategy produces one outcome per RunTrial call from private worker state.
//
// InitWorker must be safe to call from several goroutines at once and each
// call must return independent state. RunTrial may only mutate the state it
// is given. S is normally a pointer type.
type Strategy[S any, R cmp.Ordered] interface {
	InitWorker() S
	RunTrial(state S) R
}

// Funcs adapts a pair of closures to Strategy.
type Funcs[S any, R cmp.Ordered] struct {
	Init  func() S
	Trial func(S) R
}

// InitWorker calls f.Init.
func (f Funcs[S, R]) InitWorker() S { return f.Init() }

// RunTrial calls f.Trial.
func (f Funcs[S, R]) RunTrial(state S) R { return f.Trial(state) }

// Combine merges two partial results.
func Combine[R cmp.Ordered](a, b R) R {
	return max(a, b)
}

// Max runs s.RunTrial n times and returns the largest outcome.
//
// [0, n) is split into at most pool.NumWorkers() contiguous partitions and
// s.InitWorker is called once per partition. For n == 0 the zero value of R
// is returned without calling s. A nil pool runs sequentially.
func Max[S any, R cmp.Ordered](pool *workerpool.Pool, n uint64, s Strategy[S, R]) R {
	var zero R
	if n == 0 {
		return zero
	}
	if pool == nil {
		return MaxSequential(n, s)
	}

	partial := make([]R, pool.NumWorkers())
	chunks := pool.ParallelForChunks(clampInt(n), func(chunk, start, end int) {
		partial[chunk] = runRange(s, s.InitWorker(), uint64(end-start), zero)
	})

	return fold(partial[:chunks])
}

// MaxDynamic is Max with work stealing: workers pull batches of batchSize
// iterations from a shared cursor until the space is exhausted. Each worker
// that takes part calls s.InitWorker once. It suits machines where some cores
// run slower than others; the result equals Max's in value.
func MaxDynamic[S any, R cmp.Ordered](pool *workerpool.Pool, n, batchSize uint64, s Strategy[S, R]) R {
	var zero R
	if n == 0 {
		return zero
	}
	if pool == nil {
		return MaxSequential(n, s)
	}

	batchSize = min(max(batchSize, 1), n)

	workers := pool.NumWorkers()
	partial := make([]R, workers)
	states := make([]S, workers)
	ready := make([]bool, workers)

	used := pool.ParallelForAtomicBatched(clampInt(n), clampInt(batchSize), func(w, start, end int) {
		if !ready[w] {
			states[w] = s.InitWorker()
			ready[w] = true
		}
		partial[w] = runRange(s, states[w], uint64(end-start), partial[w])
	})

	return fold(partial[:used])
}

// MaxSequential runs all n trials on the calling goroutine with one worker
// state.
func MaxSequential[S any, R cmp.Ordered](n uint64, s Strategy[S, R]) R {
	var zero R
	if n == 0 {
		return zero
	}
	return runRange(s, s.InitWorker(), n, zero)
}

func runRange[S any, R cmp.Ordered](s Strategy[S, R], state S, count uint64, acc R) R {
	for range count {
		acc = Combine(acc, s.RunTrial(state))
	}
	return acc
}

func fold[R cmp.Ordered](partial []R) R {
	var acc R
	for _, r := range partial {
		acc = Combine(acc, r)
	}
	return acc
}

func clampInt(n uint64) int {
	if n > math.MaxInt {
		return math.MaxInt
	}
	return int(n)
}
