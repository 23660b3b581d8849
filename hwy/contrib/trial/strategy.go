// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package trial

import (
	"math/bits"

	"github.com/ajroetker/popmax/hwy"
	"github.com/ajroetker/popmax/hwy/contrib/reduce"
	"github.com/ajroetker/popmax/hwy/contrib/rng"
)

// Strategy is a trial strategy as the reduction engine sees it.
type Strategy = reduce.Strategy[*Worker, uint32]

// Factory builds one engine from the entropy source. It must call
// e.NextSeed at most once.
type Factory func(e rng.Entropy) rng.Source

// KindFactory returns a Factory for a built-in engine kind.
func KindFactory(k rng.Kind) Factory {
	return func(e rng.Entropy) rng.Source {
		return rng.New(k, e)
	}
}

// Worker is the private state of one partition: its engines plus scratch
// space for the draws, so a trial never allocates.
type Worker struct {
	src  []rng.Source
	a, b hwy.Bits256
	w    hwy.Bits512
}

// Sources returns the worker's engines.
func (w *Worker) Sources() []rng.Source {
	return w.src
}

type base struct {
	newSource Factory
	entropy   rng.Entropy
	mask      hwy.Bits256
	masked    bool
	width     int
}

func newBase(f Factory, e rng.Entropy, width int) base {
	if e == nil {
		e = rng.Default
	}
	width = min(max(width, 0), 256)
	return base{
		newSource: f,
		entropy:   e,
		mask:      hwy.Mask256(width),
		masked:    width < 256,
		width:     width,
	}
}

func (b *base) worker(streams int) *Worker {
	w := &Worker{src: make([]rng.Source, streams)}
	for i := range w.src {
		w.src[i] = b.newSource(b.entropy)
	}
	return w
}

// Width returns the number of live bits per trial, the largest possible
// outcome.
func (b *base) Width() int {
	return b.width
}

func (b *base) applyMask(v *hwy.Bits256) {
	if b.masked {
		*v = v.And(b.mask)
	}
}

// Scalar draws two 256-bit values from one engine and counts the surviving
// bits of their AND one 64-bit word at a time.
type Scalar struct {
	base
}

// NewScalar returns a Scalar strategy with width live bits per trial.
func NewScalar(f Factory, e rng.Entropy, width int) *Scalar {
	return &Scalar{base: newBase(f, e, width)}
}

// InitWorker seeds one engine.
func (s *Scalar) InitWorker() *Worker {
	return s.worker(1)
}

// RunTrial performs one draw-AND-count.
func (s *Scalar) RunTrial(w *Worker) uint32 {
	src := w.src[0]
	rng.Fill256(src, &w.a)
	rng.Fill256(src, &w.b)
	m := &s.mask
	return uint32(bits.OnesCount64(w.a[0]&w.b[0]&m[0]) +
		bits.OnesCount64(w.a[1]&w.b[1]&m[1]) +
		bits.OnesCount64(w.a[2]&w.b[2]&m[2]) +
		bits.OnesCount64(w.a[3]&w.b[3]&m[3]))
}

// Vector is Scalar with the AND and count done by a Counter on whole 256-bit
// registers.
type Vector struct {
	base
	counter hwy.Counter
}

// NewVector returns a Vector strategy using counter c.
func NewVector(f Factory, e rng.Entropy, width int, c hwy.Counter) *Vector {
	return &Vector{base: newBase(f, e, width), counter: c}
}

// InitWorker seeds one engine.
func (v *Vector) InitWorker() *Worker {
	return v.worker(1)
}

// RunTrial performs one draw-AND-count.
func (v *Vector) RunTrial(w *Worker) uint32 {
	src := w.src[0]
	rng.Fill256(src, &w.a)
	rng.Fill256(src, &w.b)
	v.applyMask(&w.a)
	return v.counter.AndCount256(&w.a, &w.b)
}

// MultiStreamEngines is the number of engines a MultiStream worker owns.
const MultiStreamEngines = 16

// MultiStreamBatch is the number of trials one MultiStream call performs.
const MultiStreamBatch = 4

// MultiStream keeps sixteen engines per worker and fills each 256-bit lane
// from four different engines, so consecutive draws do not depend on each
// other. One call performs MultiStreamBatch trials and returns their maximum;
// run it n/MultiStreamBatch times for n trials.
type MultiStream struct {
	base
	counter hwy.Counter
}

// NewMultiStream returns a MultiStream strategy using counter c.
func NewMultiStream(f Factory, e rng.Entropy, width int, c hwy.Counter) *MultiStream {
	return &MultiStream{base: newBase(f, e, width), counter: c}
}

// InitWorker seeds MultiStreamEngines engines.
func (m *MultiStream) InitWorker() *Worker {
	return m.worker(MultiStreamEngines)
}

// RunTrial performs MultiStreamBatch trials and returns the largest outcome.
// Engines 0-3 feed a, 4-7 feed b for the even trials; 8-11 and 12-15 for the
// odd ones.
func (m *MultiStream) RunTrial(w *Worker) uint32 {
	var best uint32
	for t := range MultiStreamBatch {
		off := (t & 1) * 8
		s := w.src[off : off+8 : off+8]
		w.a = hwy.Bits256{s[0].Uint64(), s[1].Uint64(), s[2].Uint64(), s[3].Uint64()}
		w.b = hwy.Bits256{s[4].Uint64(), s[5].Uint64(), s[6].Uint64(), s[7].Uint64()}
		m.applyMask(&w.a)
		best = max(best, m.counter.AndCount256(&w.a, &w.b))
	}
	return best
}

// Wide512Engines is the number of engines a Wide512 worker owns.
const Wide512Engines = 8

// Wide512 fills one 512-bit register with one word from each of eight engines
// and ANDs its low half with its high half.
type Wide512 struct {
	base
	counter hwy.Counter
}

// NewWide512 returns a Wide512 strategy using counter c.
func NewWide512(f Factory, e rng.Entropy, width int, c hwy.Counter) *Wide512 {
	return &Wide512{base: newBase(f, e, width), counter: c}
}

// InitWorker seeds Wide512Engines engines.
func (x *Wide512) InitWorker() *Worker {
	return x.worker(Wide512Engines)
}

// RunTrial performs one draw-AND-count.
func (x *Wide512) RunTrial(w *Worker) uint32 {
	for i, s := range w.src {
		w.w[i] = s.Uint64()
	}
	if x.masked {
		for i := range 4 {
			w.w[i] &= x.mask[i]
		}
	}
	return x.counter.FoldCount512(&w.w)
}
