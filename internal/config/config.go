// SPDX-License-Identifier: MIT

// Package config loads process-start settings for the densemat command from
// the environment.
//
// Worker precedence: DENSEMAT_WORKERS, then OMP_NUM_THREADS, then the CPU
// count. Everything else has a documented default.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/google/uuid"

	"github.com/katalvlaran/densemat/bufpool"
	"github.com/katalvlaran/densemat/matrix"
)

// ErrInvalid marks a setting outside its allowed range.
var ErrInvalid = errors.New("config: invalid setting")

// Log output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config is the environment-derived configuration.
type Config struct {
	Workers           int    `env:"DENSEMAT_WORKERS"`
	OMPThreads        int    `env:"OMP_NUM_THREADS"`
	ParallelThreshold int    `env:"DENSEMAT_PARALLEL_THRESHOLD" envDefault:"1000000"`
	PoolCapacity      int    `env:"DENSEMAT_POOL_CAPACITY"      envDefault:"1000"`
	LogLevel          string `env:"DENSEMAT_LOG_LEVEL"          envDefault:"info"`
	LogFormat         string `env:"DENSEMAT_LOG_FORMAT"         envDefault:"text"`
	InstanceID        string `env:"DENSEMAT_INSTANCE_ID"`
}

// Load reads the process environment.
func Load() (Config, error) {
	return parse(env.Options{})
}

// LoadFrom reads vars instead of the process environment. Tests use it to
// stay hermetic.
func LoadFrom(vars map[string]string) (Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (Config, error) {
	cfg := Config{}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("config: parse environment: %w", err)
	}
	if cfg.InstanceID == "" {
		cfg.InstanceID = uuid.NewString()
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks ranges and enumerations.
func (c Config) Validate() error {
	switch {
	case c.Workers < 0:
		return fmt.Errorf("DENSEMAT_WORKERS=%d: %w", c.Workers, ErrInvalid)
	case c.OMPThreads < 0:
		return fmt.Errorf("OMP_NUM_THREADS=%d: %w", c.OMPThreads, ErrInvalid)
	case c.ParallelThreshold < 0:
		return fmt.Errorf("DENSEMAT_PARALLEL_THRESHOLD=%d: %w", c.ParallelThreshold, ErrInvalid)
	case c.PoolCapacity < 0:
		return fmt.Errorf("DENSEMAT_POOL_CAPACITY=%d: %w", c.PoolCapacity, ErrInvalid)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	switch strings.ToLower(c.LogFormat) {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("DENSEMAT_LOG_FORMAT=%q: %w", c.LogFormat, ErrInvalid)
	}

	return nil
}

// EffectiveWorkers resolves the worker count by precedence.
func (c Config) EffectiveWorkers() int {
	switch {
	case c.Workers > 0:
		return c.Workers
	case c.OMPThreads > 0:
		return c.OMPThreads
	default:
		return runtime.NumCPU()
	}
}

// Level parses LogLevel the way slog does ("debug", "info", "warn+2", ...).
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("DENSEMAT_LOG_LEVEL=%q: %w", c.LogLevel, ErrInvalid)
	}

	return level, nil
}

// NewLogger builds a text or JSON logger writing to w, tagged with the
// instance id as run_id.
func (c Config) NewLogger(w io.Writer) (*slog.Logger, error) {
	level, err := c.Level()
	if err != nil {
		return nil, err
	}
	hopts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	if strings.EqualFold(c.LogFormat, FormatJSON) {
		h = slog.NewJSONHandler(w, hopts)
	} else {
		h = slog.NewTextHandler(w, hopts)
	}

	return slog.New(h).With(slog.String("run_id", c.InstanceID)), nil
}

// PoolOptions returns the bufpool options this configuration implies.
func (c Config) PoolOptions(log *slog.Logger) []bufpool.Option {
	return []bufpool.Option{
		bufpool.WithCapacity(c.PoolCapacity),
		bufpool.WithLogger(log),
	}
}

// EngineOptions returns the matrix options this configuration implies.
func (c Config) EngineOptions(pool *bufpool.Pool, log *slog.Logger) []matrix.Option {
	return []matrix.Option{
		matrix.WithPool(pool),
		matrix.WithWorkers(c.EffectiveWorkers()),
		matrix.WithParallelThreshold(c.ParallelThreshold),
		matrix.WithLogger(log),
	}
}
