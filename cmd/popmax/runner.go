// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"time"

	"github.com/ajroetker/popmax/hwy"
	"github.com/ajroetker/popmax/hwy/contrib/rng"
	"github.com/ajroetker/popmax/hwy/contrib/trial"
	"github.com/ajroetker/popmax/hwy/contrib/workerpool"
	"github.com/ajroetker/popmax/internal/logging"
	"github.com/ajroetker/popmax/internal/report"
)

// runner executes algorithms back to back on one worker pool.
type runner struct {
	pool    *workerpool.Pool
	entropy rng.Entropy
	log     *logging.Logger
	now     func() time.Time
}

func newRunner(workers int, entropy rng.Entropy, log *logging.Logger) *runner {
	if entropy == nil {
		entropy = rng.Default
	}
	if log == nil {
		log = logging.Noop()
	}
	r := &runner{
		pool:    workerpool.New(workers),
		entropy: entropy,
		log:     log,
		now:     time.Now,
	}
	log.Debug("worker pool started",
		"workers", r.pool.NumWorkers(),
		"dispatch", hwy.CurrentName(),
		"counter", hwy.BestCounter().Name,
	)
	return r
}

// Close stops the pool's workers.
func (r *runner) Close() {
	r.pool.Close()
}

// Run executes n trials of a and times the whole run, including engine
// seeding.
func (r *runner) Run(a trial.Algorithm, n uint64, opts trial.Options) (report.Result, error) {
	log := r.log.WithAlgorithm(a.Name)
	log.LogTruncation(n, a.Dropped(n))

	start := r.now()
	best, err := a.Run(r.pool, r.entropy, n, opts)
	elapsed := r.now().Sub(start)

	log.LogRun(n, best, elapsed.Microseconds(), err)
	if err != nil {
		return report.Result{}, err
	}
	return report.Result{
		Name:       a.Display,
		Iterations: n,
		Elapsed:    elapsed,
		Max:        best,
	}, nil
}

// RunAll runs each algorithm in order and stops at the first failure.
func (r *runner) RunAll(algs []trial.Algorithm, n uint64, opts trial.Options) ([]report.Result, error) {
	results := make([]report.Result, 0, len(algs))
	for _, a := range algs {
		res, err := r.Run(a, n, opts)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}
