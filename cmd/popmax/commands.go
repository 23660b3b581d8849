// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ajroetker/popmax/hwy/contrib/rng"
	"github.com/ajroetker/popmax/hwy/contrib/trial"
	"github.com/ajroetker/popmax/internal/config"
	"github.com/ajroetker/popmax/internal/logging"
	"github.com/ajroetker/popmax/internal/report"
)

type rootFlags struct {
	configPath string
	workers    int
	schedule   string
	batchSize  uint64
	logLevel   string
	logFormat  string
}

// newRootCmd builds the popmax command tree. A nil entropy seeds engines from
// the operating system.
func newRootCmd(stdout, stderr io.Writer, entropy rng.Entropy) *cobra.Command {
	var f rootFlags

	root := &cobra.Command{
		Use:           "popmax [flags] <num_iter> [algorithm...]",
		Short:         "Find the largest popcount(a & b) over random 256-bit draws",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := resolveConfig(cmd, &f, args)
			if err != nil {
				return err
			}
			log, err := logging.NewWriter(stderr, c.LogLevel, c.LogFormat)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrUsage, err)
			}
			algs, err := trial.Select(c.Algorithms)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrUsage, err)
			}
			if c.Iterations == 0 && len(args) == 0 {
				return fmt.Errorf("%w: missing <num_iter>", ErrUsage)
			}

			r := newRunner(c.Workers, entropy, log)
			defer r.Close()

			n := uint64(c.Iterations)
			if err := report.Header(stdout, n); err != nil {
				return err
			}
			results, err := r.RunAll(algs, n, c.Options())
			if err != nil {
				return err
			}
			return report.Results(stdout, results)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	})

	fl := root.Flags()
	fl.StringVar(&f.configPath, "config", "", "TOML file with run settings; flags override it")
	fl.IntVar(&f.workers, "workers", 0, "worker count (0 = GOMAXPROCS)")
	fl.StringVar(&f.schedule, "schedule", "static", "partitioning: static or dynamic")
	fl.Uint64Var(&f.batchSize, "batch-size", trial.DefaultBatchSize, "iterations per batch for the dynamic schedule")
	fl.StringVar(&f.logLevel, "log-level", "info", "debug, info, warn or error")
	fl.StringVar(&f.logFormat, "log-format", "text", "text or json")

	root.AddCommand(newListCmd(stdout), newInfoCmd(stdout))
	return root
}

// resolveConfig merges defaults, the optional TOML file, flags and positional
// arguments, in increasing precedence.
func resolveConfig(cmd *cobra.Command, f *rootFlags, args []string) (config.Config, error) {
	c := config.Config{
		Schedule:  f.schedule,
		BatchSize: f.batchSize,
		LogLevel:  f.logLevel,
		LogFormat: f.logFormat,
	}
	if f.configPath != "" {
		loaded, err := config.Load(f.configPath)
		if err != nil {
			if errors.Is(err, config.ErrInvalid) {
				return c, fmt.Errorf("%w: %w", ErrUsage, err)
			}
			return c, err
		}
		c = merge(loaded, c)
	}

	changed := cmd.Flags().Changed
	if changed("workers") {
		c.Workers = f.workers
	}
	if changed("schedule") {
		c.Schedule = f.schedule
	}
	if changed("batch-size") {
		c.BatchSize = f.batchSize
	}
	if changed("log-level") {
		c.LogLevel = f.logLevel
	}
	if changed("log-format") {
		c.LogFormat = f.logFormat
	}

	if len(args) > 0 {
		n, err := config.ParseCount(args[0])
		if err != nil {
			return c, fmt.Errorf("%w: %w", ErrUsage, err)
		}
		c.Iterations = config.Count(n)
		if len(args) > 1 {
			c.Algorithms = args[1:]
		}
	}

	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("%w: %w", ErrUsage, err)
	}
	return c, nil
}

// merge returns file with its empty fields filled from defaults.
func merge(file, defaults config.Config) config.Config {
	if file.Schedule == "" {
		file.Schedule = defaults.Schedule
	}
	if file.BatchSize == 0 {
		file.BatchSize = defaults.BatchSize
	}
	if file.LogLevel == "" {
		file.LogLevel = defaults.LogLevel
	}
	if file.LogFormat == "" {
		file.LogFormat = defaults.LogFormat
	}
	return file
}

func newListCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the built-in algorithms and whether this CPU can run them",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(*cobra.Command, []string) error {
			return report.Algorithms(stdout, trial.All())
		},
	}
}

func newInfoCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the detected SIMD level and popcount counters",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(*cobra.Command, []string) error {
			return report.Target(stdout)
		},
	}
}

// usageArgs marks argument validation failures as usage errors.
func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return fmt.Errorf("%w: %w", ErrUsage, err)
		}
		return nil
	}
}
