// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool provides a persistent, reusable worker pool for parallel
// computation. Unlike per-call goroutine spawning, a Pool is created once and
// reused across many operations, eliminating allocation and spawn overhead.
//
// A benchmark run executes every selected algorithm back to back on the same
// Pool, so the workers are spawned once per process rather than once per
// algorithm.
//
// Usage:
//
//	pool := workerpool.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	partial := make([]uint32, pool.NumWorkers())
//	pool.ParallelForChunks(n, func(chunk, start, end int) {
//	    partial[chunk] = runTrials(start, end)
//	})
package workerpool

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a persistent worker pool that can be reused across many parallel
// operations. Workers are spawned once at creation and reused.
type Pool struct {
	numWorkers int
	workC      chan workItem
	closeOnce  sync.Once
	closed     atomic.Bool
}

// workItem represents a single parallel operation to execute.
type workItem struct {
	fn      func()
	barrier *sync.WaitGroup
}

// New creates a new worker pool with the specified number of workers.
// Workers are spawned immediately and persist until Close is called.
// If numWorkers <= 0, uses GOMAXPROCS.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		numWorkers: numWorkers,
		// Buffer enough for all workers to have pending work
		workC: make(chan workItem, numWorkers*2),
	}

	// Spawn persistent workers
	for range numWorkers {
		go p.worker()
	}

	return p
}

// worker is the main loop for each persistent worker goroutine.
func (p *Pool) worker() {
	for item := range p.workC {
		item.fn()
		item.barrier.Done()
	}
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Close shuts down the worker pool. All pending work will complete.
// Calling Close multiple times is safe.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.workC)
	})
}

// Chunks returns the contiguous chunk size and chunk count used to split
// [0, n) across at most workers chunks. Chunk i covers
// [i*size, min((i+1)*size, n)); the chunks are disjoint and cover [0, n).
func Chunks(n, workers int) (size, count int) {
	if n <= 0 {
		return 0, 0
	}
	workers = max(min(workers, n), 1)
	size = (n + workers - 1) / workers
	count = (n + size - 1) / size
	return size, count
}

// ParallelFor executes fn for each index in [0, n) using the worker pool.
// Each worker processes a contiguous range of indices.
// Blocks until all work completes.
//
// fn receives (start, end) indices where work should process [start, end).
func (p *Pool) ParallelFor(n int, fn func(start, end int)) {
	p.ParallelForChunks(n, func(_, start, end int) {
		fn(start, end)
	})
}

// ParallelForChunks is ParallelFor with the chunk index passed to fn.
// Chunk indices are dense in [0, count) and count <= NumWorkers(), so
// callers can keep one result slot per chunk without synchronization.
// Returns the number of chunks.
func (p *Pool) ParallelForChunks(n int, fn func(chunk, start, end int)) int {
	if n <= 0 {
		return 0
	}

	if p.closed.Load() {
		// Fallback to sequential if pool is closed
		fn(0, 0, n)
		return 1
	}

	chunkSize, chunks := Chunks(n, p.numWorkers)

	// For very small n, just run sequentially
	if chunks == 1 {
		fn(0, 0, n)
		return 1
	}

	var wg sync.WaitGroup
	wg.Add(chunks)

	for i := range chunks {
		start := i * chunkSize
		end := min(start+chunkSize, n)

		p.workC <- workItem{
			fn: func() {
				fn(i, start, end)
			},
			barrier: &wg,
		}
	}

	wg.Wait()
	return chunks
}

// ParallelForAtomicBatched executes fn for batches of indices using atomic
// work stealing. Combines the load balancing of atomic distribution with
// reduced atomic operation overhead by processing multiple items per grab.
//
// fn receives the worker slot in [0, NumWorkers()) and the (start, end)
// indices of one batch. All batches passed with the same slot run on the same
// goroutine, one after another. batchSize controls how many items are grabbed
// per atomic operation. Returns the number of slots used.
func (p *Pool) ParallelForAtomicBatched(n int, batchSize int, fn func(worker, start, end int)) int {
	if n <= 0 {
		return 0
	}

	if batchSize <= 0 {
		batchSize = 1
	}

	if p.closed.Load() {
		fn(0, 0, n)
		return 1
	}

	batchSize = min(batchSize, n)
	numBatches := n / batchSize
	if n%batchSize != 0 {
		numBatches++
	}
	workers := min(p.numWorkers, numBatches)

	if workers == 1 {
		fn(0, 0, n)
		return 1
	}

	// Int64 cursor: trial counts routinely exceed 2^31.
	var nextBatch atomic.Int64
	var wg sync.WaitGroup
	wg.Add(workers)

	for w := range workers {
		p.workC <- workItem{
			fn: func() {
				for {
					batch := int(nextBatch.Add(1)) - 1
					if batch >= numBatches {
						return
					}
					start := batch * batchSize
					end := start + min(batchSize, n-start)
					fn(w, start, end)
				}
			},
			barrier: &wg,
		}
	}

	wg.Wait()
	return workers
}
