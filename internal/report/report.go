// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package report renders popmax results as tables.
package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/ajroetker/popmax/hwy"
	"github.com/ajroetker/popmax/hwy/contrib/trial"
)

// Result is the outcome of one algorithm run.
type Result struct {
	Name       string
	Iterations uint64
	Elapsed    time.Duration
	Max        uint32
}

// Rate returns trials per second, or 0 when no time was measured.
func (r Result) Rate() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Iterations) / r.Elapsed.Seconds()
}

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	return tablewriter.NewWriter(w).Options(tablewriter.WithRendition(tw.Rendition{
		Borders: tw.Border{
			Left:   tw.On,
			Top:    tw.Off,
			Right:  tw.On,
			Bottom: tw.Off,
		},
	}), tablewriter.WithHeaderAutoFormat(tw.Off), tablewriter.WithHeader(header))
}

// Header writes the line printed before any result.
func Header(w io.Writer, iterations uint64) error {
	_, err := fmt.Fprintf(w, "number of iterations: %s\n", humanize.Comma(clampInt64(iterations)))
	return err
}

// Results writes one row per result.
func Results(w io.Writer, results []Result) error {
	t := newTable(w, "name", "time (us)", "time", "it/s", "number")
	for _, r := range results {
		err := t.Append(
			r.Name,
			humanize.Comma(r.Elapsed.Microseconds()),
			r.Elapsed.Round(time.Microsecond).String(),
			humanize.Comma(int64(r.Rate())),
			strconv.FormatUint(uint64(r.Max), 10),
		)
		if err != nil {
			return err
		}
	}
	return t.Render()
}

// Algorithms writes the algorithm catalogue with availability on this target.
func Algorithms(w io.Writer, algs []trial.Algorithm) error {
	t := newTable(w, "name", "description", "engine", "layout", "width", "batch", "counter", "available")
	for _, a := range algs {
		counter := a.Counter
		if counter == "" {
			counter = "best"
		}
		err := t.Append(
			a.Name,
			a.Display,
			a.Kind.String(),
			a.Layout.String(),
			strconv.Itoa(a.Width),
			strconv.FormatUint(a.BatchFactor(), 10),
			counter,
			strconv.FormatBool(a.Available()),
		)
		if err != nil {
			return err
		}
	}
	return t.Render()
}

// Target writes the dispatch level and the counters compiled in.
func Target(w io.Writer) error {
	t := newTable(w, "property", "value")
	rows := [][2]string{
		{"dispatch", hwy.CurrentName()},
		{"simd width (bytes)", strconv.Itoa(hwy.CurrentWidth())},
		{"popcnt", strconv.FormatBool(hwy.HasPOPCNT())},
		{"vpopcntdq", strconv.FormatBool(hwy.HasVPOPCNTDQ())},
		{"no simd", strconv.FormatBool(hwy.NoSimdEnv())},
		{"best counter", hwy.BestCounter().Name},
	}
	for _, c := range hwy.Counters() {
		rows = append(rows, [2]string{"counter", c.Name + " (" + c.Level.String() + ")"})
	}
	for _, r := range rows {
		if err := t.Append(r[0], r[1]); err != nil {
			return err
		}
	}
	return t.Render()
}

func clampInt64(n uint64) int64 {
	if n > 1<<63-1 {
		return 1<<63 - 1
	}
	return int64(n)
}
