// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package config loads popmax run settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/ajroetker/popmax/hwy/contrib/trial"
	"github.com/ajroetker/popmax/internal/logging"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds one benchmark run. Zero fields take their defaults.
type Config struct {
	// Iterations may be an integer or a string with _ or , separators.
	Iterations Count    `toml:"iterations"`
	Algorithms []string `toml:"algorithms"`
	Workers    int      `toml:"workers"`
	Schedule   string   `toml:"schedule"`
	BatchSize  uint64   `toml:"batch_size"`
	LogLevel   string   `toml:"log_level"`
	LogFormat  string   `toml:"log_format"`
}

// Count is an iteration count decoded from a TOML integer or string.
type Count uint64

// UnmarshalTOML implements toml.Unmarshaler.
func (c *Count) UnmarshalTOML(v any) error {
	switch x := v.(type) {
	case int64:
		if x < 0 {
			return fmt.Errorf("negative iteration count %d", x)
		}
		*c = Count(x)
		return nil
	case string:
		n, err := ParseCount(x)
		if err != nil {
			return err
		}
		*c = Count(n)
		return nil
	default:
		return fmt.Errorf("iteration count must be an integer or string, got %T", v)
	}
}

// ParseCount parses an unsigned decimal count. Underscores and commas are
// accepted as digit separators.
func ParseCount(s string) (uint64, error) {
	clean := strings.NewReplacer("_", "", ",", "").Replace(strings.TrimSpace(s))
	if clean == "" {
		return 0, fmt.Errorf("empty iteration count %q", s)
	}
	n, err := strconv.ParseUint(clean, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("iteration count %q: %w", s, err)
	}
	return n, nil
}

func (c *Config) validate() error {
	if c.Workers < 0 {
		return errors.New("workers is negative")
	}

	if _, err := trial.ParseSchedule(c.Schedule); err != nil {
		return err
	}

	for _, name := range c.Algorithms {
		if _, err := trial.Lookup(name); err != nil {
			return err
		}
	}

	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}

	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}

	return nil
}

// Validate reports whether c is usable. Errors wrap ErrInvalid.
func (c *Config) Validate() error {
	if err := c.validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// Options returns the reduction options c describes. c must be valid.
func (c *Config) Options() trial.Options {
	s, _ := trial.ParseSchedule(c.Schedule)
	return trial.Options{Schedule: s, BatchSize: c.BatchSize}
}

// Load reads and validates a TOML config file.
func Load(configPath string) (Config, error) {
	content, err := os.ReadFile(configPath)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var c Config
	md, err := toml.Decode(string(content), &c)
	if err != nil {
		return Config{}, fmt.Errorf("%w: unmarshal config: %w", ErrInvalid, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%w: unknown key %q", ErrInvalid, undecoded[0].String())
	}

	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}

	return c, nil
}
