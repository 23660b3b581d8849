// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package trial

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ajroetker/popmax/hwy"
	"github.com/ajroetker/popmax/hwy/contrib/reduce"
	"github.com/ajroetker/popmax/hwy/contrib/rng"
	"github.com/ajroetker/popmax/hwy/contrib/workerpool"
)

type constSource uint64

func (c constSource) Uint64() uint64 { return uint64(c) }

// alternating yields four all-ones words followed by four zero words, so two
// consecutive 256-bit draws never share a bit.
type alternating struct{ n int }

func (a *alternating) Uint64() uint64 {
	v := uint64(0)
	if (a.n/4)%2 == 0 {
		v = ^uint64(0)
	}
	a.n++
	return v
}

func constFactory(v uint64) Factory {
	return func(e rng.Entropy) rng.Source {
		e.NextSeed()
		return constSource(v)
	}
}

func alternatingFactory(e rng.Entropy) rng.Source {
	e.NextSeed()
	return &alternating{}
}

func strategies(f Factory, e rng.Entropy, width int) map[string]Strategy {
	c := hwy.ScalarCounter()
	return map[string]Strategy{
		"scalar":       NewScalar(f, e, width),
		"vector":       NewVector(f, e, width, c),
		"vector_best":  NewVector(f, e, width, hwy.BestCounter()),
		"multi_stream": NewMultiStream(f, e, width, c),
		"wide512":      NewWide512(f, e, width, c),
	}
}

func TestAllOnesReachesWidth(t *testing.T) {
	for _, width := range []int{0, 1, 64, 231, 256} {
		for name, s := range strategies(constFactory(^uint64(0)), rng.NewFixedEntropy(1), width) {
			got := reduce.MaxSequential(8, s)
			require.EqualValues(t, width, got, "%s width=%d", name, width)
		}
	}
}

func TestAllZerosIsZero(t *testing.T) {
	for name, s := range strategies(constFactory(0), rng.NewFixedEntropy(1), 256) {
		require.Zero(t, reduce.MaxSequential(8, s), name)
	}
}

// lanesFactory hands engine i of each worker all-ones when (i/4) is even and
// all-zeros otherwise, so a comes out all-ones and b all-zeros for the
// multi-engine layouts. Worker init must be serialized for the indices to line
// up; see serialInit.
func lanesFactory(engines uint64) Factory {
	var next atomic.Uint64
	return func(e rng.Entropy) rng.Source {
		e.NextSeed()
		pos := (next.Add(1) - 1) % engines
		if (pos/4)%2 == 0 {
			return constSource(^uint64(0))
		}
		return constSource(0)
	}
}

func serialInit(s Strategy) Strategy {
	var mu sync.Mutex
	return reduce.Funcs[*Worker, uint32]{
		Init: func() *Worker {
			mu.Lock()
			defer mu.Unlock()
			return s.InitWorker()
		},
		Trial: s.RunTrial,
	}
}

func TestDisjointDrawsAreZero(t *testing.T) {
	pool := workerpool.New(4)
	defer pool.Close()

	e := rng.NewFixedEntropy(1)
	c := hwy.BestCounter()
	build := map[string]func() Strategy{
		"scalar":       func() Strategy { return NewScalar(alternatingFactory, e, 256) },
		"vector":       func() Strategy { return NewVector(alternatingFactory, e, 256, c) },
		"multi_stream": func() Strategy { return NewMultiStream(lanesFactory(MultiStreamEngines), e, 256, c) },
		"wide512":      func() Strategy { return NewWide512(lanesFactory(Wide512Engines), e, 256, c) },
	}
	for name, newStrategy := range build {
		t.Run(name, func(t *testing.T) {
			require.Zero(t, reduce.MaxSequential(100, newStrategy()))
			require.Zero(t, reduce.Max(pool, 1000, serialInit(newStrategy())))
			require.Zero(t, reduce.MaxDynamic(pool, 1000, 16, serialInit(newStrategy())))
		})
	}
}

// The engine layout lanesFactory builds puts all-ones in the low half of a
// Wide512 draw and zeros in the high half, so the zero above comes from the AND
// and not from a dead strategy.
func TestLanesFactoryOrder(t *testing.T) {
	s := NewWide512(lanesFactory(Wide512Engines), rng.NewFixedEntropy(1), 256, hwy.ScalarCounter())
	w := s.InitWorker()
	require.Len(t, w.Sources(), Wide512Engines)
	for i, src := range w.Sources() {
		want := uint64(0)
		if i < 4 {
			want = ^uint64(0)
		}
		require.Equal(t, want, src.Uint64(), "engine %d", i)
	}

	require.Zero(t, s.RunTrial(w))
	lo, hi := w.w.Lo(), w.w.Hi()
	require.Equal(t, hwy.Ones256(), lo)
	require.Equal(t, hwy.Bits256{}, hi)
}

func TestZeroIterationsDrawNothing(t *testing.T) {
	pool := workerpool.New(4)
	defer pool.Close()

	for _, a := range Available() {
		t.Run(a.Name, func(t *testing.T) {
			e := rng.NewFixedEntropy(3)
			got, err := a.Run(pool, e, 0, Options{})
			require.NoError(t, err)
			require.Zero(t, got)
			require.Zero(t, e.Calls())
		})
	}
}

func TestOutcomeWithinWidth(t *testing.T) {
	pool := workerpool.New(4)
	defer pool.Close()

	for _, a := range Available() {
		for _, sched := range []Schedule{Static, Dynamic} {
			t.Run(a.Name+"/"+sched.String(), func(t *testing.T) {
				got, err := a.Run(pool, rng.NewSequenceEntropy(11), 20_000, Options{Schedule: sched, BatchSize: 512})
				require.NoError(t, err)
				require.LessOrEqual(t, int(got), a.Width)
				// 20k trials of a binomial with mean >= 57 never all stay this low.
				require.Greater(t, got, uint32(40))
			})
		}
	}
}

func TestEngineSeedsPerWorker(t *testing.T) {
	pool := workerpool.New(4)
	defer pool.Close()

	e := rng.NewFixedEntropy(1, 2, 3, 4)
	a, err := Lookup("wy-rand-multi")
	require.NoError(t, err)
	_, err = a.Run(pool, e, 1_000, Options{})
	require.NoError(t, err)

	// One seed per engine, sixteen engines per partition.
	require.Zero(t, e.Calls()%MultiStreamEngines)
	require.LessOrEqual(t, e.Calls(), uint64(4*MultiStreamEngines))
}

func TestScalarAndVectorAgree(t *testing.T) {
	for _, width := range []int{231, 256} {
		for _, c := range hwy.Counters() {
			s := NewScalar(KindFactory(rng.WyRandKind), rng.NewFixedEntropy(77), width)
			v := NewVector(KindFactory(rng.WyRandKind), rng.NewFixedEntropy(77), width, c)
			ws, wv := s.InitWorker(), v.InitWorker()
			for i := range 2000 {
				require.Equal(t, s.RunTrial(ws), v.RunTrial(wv), "%s width=%d trial %d", c.Name, width, i)
			}
		}
	}
}

func TestMultiStreamEngineOrder(t *testing.T) {
	// Engine i returns i+1; the lane pattern decides which engines meet.
	f := func() Factory {
		var next uint64
		return func(e rng.Entropy) rng.Source {
			e.NextSeed()
			next++
			return constSource(next)
		}
	}()
	m := NewMultiStream(f, rng.NewFixedEntropy(0), 256, hwy.ScalarCounter())
	w := m.InitWorker()

	var even, odd uint32
	for i := range 4 {
		even += uint32(popAnd(uint64(i+1), uint64(i+5)))
		odd += uint32(popAnd(uint64(i+9), uint64(i+13)))
	}
	require.Equal(t, max(even, odd), m.RunTrial(w))
}

func popAnd(a, b uint64) int {
	var n int
	for v := a & b; v != 0; v &= v - 1 {
		n++
	}
	return n
}

func TestBatchTruncation(t *testing.T) {
	a, err := Lookup("wy-rand-multi")
	require.NoError(t, err)
	require.EqualValues(t, MultiStreamBatch, a.BatchFactor())
	require.EqualValues(t, 2, a.Invocations(10))
	require.EqualValues(t, 2, a.Dropped(10))
	require.EqualValues(t, 0, a.Invocations(3))

	s, err := Lookup("wy-rand")
	require.NoError(t, err)
	require.EqualValues(t, 10, s.Invocations(10))
	require.Zero(t, s.Dropped(10))
}

func TestWidthClamped(t *testing.T) {
	require.Equal(t, 256, NewScalar(constFactory(0), nil, 300).Width())
	require.Equal(t, 0, NewScalar(constFactory(0), nil, -5).Width())
}

func TestLookupAndSelect(t *testing.T) {
	for _, a := range All() {
		got, err := Lookup(a.Name)
		require.NoError(t, err)
		require.Equal(t, a, got)
		require.NotEmpty(t, a.Display)
	}

	_, err := Lookup("mersenne")
	require.ErrorIs(t, err, ErrUnknownAlgorithm)

	all, err := Select(nil)
	require.NoError(t, err)
	require.Equal(t, Available(), all)

	got, err := Select([]string{"WY-RAND", "fastrand", "wy-rand"})
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, "wy-rand", got[0].Name)
	require.Equal(t, "fastrand", got[1].Name)

	_, err = Select([]string{"wy-rand", "bogus"})
	require.ErrorIs(t, err, ErrUnknownAlgorithm)

	for _, a := range All() {
		if a.Available() {
			continue
		}
		_, err := Select([]string{a.Name})
		require.ErrorIs(t, err, ErrUnavailable, a.Name)
		_, err = a.Strategy(nil)
		require.ErrorIs(t, err, ErrUnavailable, a.Name)
	}
}

func TestParseSchedule(t *testing.T) {
	for in, want := range map[string]Schedule{"": Static, "static": Static, " Dynamic ": Dynamic} {
		got, err := ParseSchedule(in)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	_, err := ParseSchedule("guided")
	require.ErrorIs(t, err, ErrUnknownSchedule)
	require.Equal(t, "Schedule(9)", Schedule(9).String())
	require.Equal(t, "wide512", LayoutWide512.String())
}

// The maximum of many Binomial(W, 1/4) draws sits a few deviations above W/4.
func TestMaxDistribution(t *testing.T) {
	if testing.Short() {
		t.Skip("long run")
	}
	pool := workerpool.New(0)
	defer pool.Close()

	bounds := map[int][2]uint32{256: {80, 125}, 231: {70, 115}}
	for _, a := range Available() {
		t.Run(a.Name, func(t *testing.T) {
			got, err := a.Run(pool, rng.Default, 1_000_000, Options{})
			require.NoError(t, err)
			b := bounds[a.Width]
			require.GreaterOrEqual(t, got, b[0])
			require.LessOrEqual(t, got, b[1])
		})
	}
}

func BenchmarkAlgorithms(b *testing.B) {
	pool := workerpool.New(0)
	defer pool.Close()

	for _, a := range Available() {
		b.Run(a.Name, func(b *testing.B) {
			s, err := a.Strategy(rng.Default)
			if err != nil {
				b.Fatal(err)
			}
			b.ResetTimer()
			Run(pool, s, uint64(b.N), Options{})
		})
	}
}
