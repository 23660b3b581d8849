// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package trial

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ajroetker/popmax/hwy"
	"github.com/ajroetker/popmax/hwy/contrib/reduce"
	"github.com/ajroetker/popmax/hwy/contrib/rng"
	"github.com/ajroetker/popmax/hwy/contrib/workerpool"
)

var (
	// ErrUnknownAlgorithm is returned when a selector names no algorithm.
	ErrUnknownAlgorithm = errors.New("unknown algorithm")

	// ErrUnavailable is returned when an algorithm needs a counter this
	// build or CPU does not have.
	ErrUnavailable = errors.New("algorithm not available on this target")

	// ErrUnknownSchedule is returned by ParseSchedule.
	ErrUnknownSchedule = errors.New("unknown schedule")
)

// Layout is the data layout a strategy draws and counts in.
type Layout int

const (
	// LayoutScalar counts word by word.
	LayoutScalar Layout = iota

	// LayoutVector ANDs and counts whole 256-bit values with a Counter.
	LayoutVector

	// LayoutMultiStream runs MultiStreamBatch trials per call over sixteen
	// engines.
	LayoutMultiStream

	// LayoutWide512 folds one 512-bit draw from eight engines.
	LayoutWide512
)

// String returns the layout name.
func (l Layout) String() string {
	switch l {
	case LayoutScalar:
		return "scalar"
	case LayoutVector:
		return "vector"
	case LayoutMultiStream:
		return "multi-stream"
	case LayoutWide512:
		return "wide512"
	default:
		return fmt.Sprintf("Layout(%d)", int(l))
	}
}

// Algorithm is one selectable benchmark variant: an engine kind, a layout, a
// trial width and the counter it needs.
type Algorithm struct {
	// Name is the selector used on the command line.
	Name string

	// Display is the name printed in reports.
	Display string

	Kind   rng.Kind
	Layout Layout

	// Width is the number of live bits per trial. The 231-bit algorithms
	// clear the top 25 bits of word 0 of the first draw.
	Width int

	// Counter names the hwy.Counter required; empty means the best one
	// available.
	Counter string
}

// BatchFactor is the number of trials one strategy call performs.
func (a Algorithm) BatchFactor() uint64 {
	if a.Layout == LayoutMultiStream {
		return MultiStreamBatch
	}
	return 1
}

// Invocations returns how many strategy calls cover n trials. For batched
// layouts the remainder n % BatchFactor is dropped.
func (a Algorithm) Invocations(n uint64) uint64 {
	return n / a.BatchFactor()
}

// Dropped returns how many of n requested trials Invocations leaves out.
func (a Algorithm) Dropped(n uint64) uint64 {
	return n % a.BatchFactor()
}

// Available reports whether the algorithm's counter exists here.
func (a Algorithm) Available() bool {
	if a.Counter == "" {
		return true
	}
	_, ok := hwy.LookupCounter(a.Counter)
	return ok
}

func (a Algorithm) counter() (hwy.Counter, error) {
	if a.Counter == "" {
		return hwy.BestCounter(), nil
	}
	c, ok := hwy.LookupCounter(a.Counter)
	if !ok {
		return hwy.Counter{}, fmt.Errorf("%w: %s needs the %s counter, have %s",
			ErrUnavailable, a.Name, a.Counter, hwy.CurrentName())
	}
	return c, nil
}

// Strategy builds the algorithm's trial strategy with engines seeded from e.
// A nil e means rng.Default.
func (a Algorithm) Strategy(e rng.Entropy) (Strategy, error) {
	return a.StrategyWith(KindFactory(a.Kind), e)
}

// StrategyWith is Strategy with a custom engine factory in place of Kind.
func (a Algorithm) StrategyWith(f Factory, e rng.Entropy) (Strategy, error) {
	c, err := a.counter()
	if err != nil {
		return nil, err
	}
	switch a.Layout {
	case LayoutScalar:
		return NewScalar(f, e, a.Width), nil
	case LayoutVector:
		return NewVector(f, e, a.Width, c), nil
	case LayoutMultiStream:
		return NewMultiStream(f, e, a.Width, c), nil
	case LayoutWide512:
		return NewWide512(f, e, a.Width, c), nil
	default:
		return nil, fmt.Errorf("trial: %s has unsupported layout %v", a.Name, a.Layout)
	}
}

// Run executes n trials of the algorithm on pool and returns the largest
// outcome. See Invocations for how batched layouts round n.
func (a Algorithm) Run(pool *workerpool.Pool, e rng.Entropy, n uint64, opts Options) (uint32, error) {
	s, err := a.Strategy(e)
	if err != nil {
		return 0, err
	}
	return Run(pool, s, a.Invocations(n), opts), nil
}

// Schedule selects how the reduction splits the iteration space.
type Schedule int

const (
	// Static splits the space into one contiguous range per worker.
	Static Schedule = iota

	// Dynamic hands out fixed-size batches from a shared cursor.
	Dynamic
)

// String returns the schedule name.
func (s Schedule) String() string {
	switch s {
	case Static:
		return "static"
	case Dynamic:
		return "dynamic"
	default:
		return fmt.Sprintf("Schedule(%d)", int(s))
	}
}

// ParseSchedule maps "static" or "dynamic" to a Schedule. The empty string
// is Static.
func ParseSchedule(name string) (Schedule, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "static":
		return Static, nil
	case "dynamic":
		return Dynamic, nil
	default:
		return Static, fmt.Errorf("%w: %q", ErrUnknownSchedule, name)
	}
}

// DefaultBatchSize is the Dynamic batch size used when Options.BatchSize is 0.
const DefaultBatchSize = 1 << 16

// Options tunes how a strategy is reduced.
type Options struct {
	Schedule  Schedule
	BatchSize uint64
}

// Run reduces invocations calls of s on pool.
func Run(pool *workerpool.Pool, s Strategy, invocations uint64, opts Options) uint32 {
	if opts.Schedule == Dynamic {
		batch := opts.BatchSize
		if batch == 0 {
			batch = DefaultBatchSize
		}
		return reduce.MaxDynamic(pool, invocations, batch, s)
	}
	return reduce.Max(pool, invocations, s)
}

var builtin = []Algorithm{
	{Name: "rand-simd", Display: "rand, simd", Kind: rng.ChaCha8Kind, Layout: LayoutVector, Width: 231, Counter: "avx2"},
	{Name: "wy-rand", Display: "wyrand", Kind: rng.WyRandKind, Layout: LayoutScalar, Width: 256},
	{Name: "wy-rand-simd", Display: "wyrand, simd", Kind: rng.WyRandKind, Layout: LayoutVector, Width: 231},
	{Name: "wy-rand-multi", Display: "wyrand, simd, multiple rng", Kind: rng.WyRandKind, Layout: LayoutMultiStream, Width: 231},
	{Name: "wy-rand-avx512", Display: "wyrand, avx512", Kind: rng.WyRandKind, Layout: LayoutWide512, Width: 256, Counter: "avx512"},
	{Name: "xoshiro", Display: "xoshiro256**, simd", Kind: rng.Xoshiro256Kind, Layout: LayoutVector, Width: 231},
	{Name: "pcg", Display: "pcg, simd", Kind: rng.PCGKind, Layout: LayoutVector, Width: 256},
	// fastrand's 2^32-1 period makes worker streams overlap; throughput only.
	{Name: "fastrand", Display: "fastrand", Kind: rng.FastRandKind, Layout: LayoutScalar, Width: 256},
}

// All returns every built-in algorithm, available here or not.
func All() []Algorithm {
	return append([]Algorithm(nil), builtin...)
}

// Available returns the built-in algorithms this build and CPU can run.
func Available() []Algorithm {
	var out []Algorithm
	for _, a := range builtin {
		if a.Available() {
			out = append(out, a)
		}
	}
	return out
}

// Lookup finds a built-in algorithm by selector, ignoring case.
func Lookup(name string) (Algorithm, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, a := range builtin {
		if a.Name == name {
			return a, nil
		}
	}
	return Algorithm{}, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}

// Select resolves selectors to algorithms in the given order. No selectors
// means every available algorithm. Unknown names and algorithms that cannot
// run here are errors, reported before anything runs.
func Select(names []string) ([]Algorithm, error) {
	if len(names) == 0 {
		return Available(), nil
	}
	out := make([]Algorithm, 0, len(names))
	for _, n := range names {
		a, err := Lookup(n)
		if err != nil {
			return nil, err
		}
		if !a.Available() {
			return nil, fmt.Errorf("%w: %s needs %s, have %s", ErrUnavailable, a.Name, a.Counter, hwy.CurrentName())
		}
		out = append(out, a)
	}
	return out, nil
}
