// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for Engine.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal) that fills defaults.
//
// Notes:
//   - Options are resolved once, when the Engine is built. Matrices keep a
//     pointer to their Engine and never re-read options.
//   - The pool is an explicit dependency. Without WithPool the process-wide
//     bufpool.Default() is used.
package matrix

import (
	"log/slog"

	"github.com/katalvlaran/densemat/bufpool"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultParallelThreshold is the multiply work size (a.Rows·a.Cols·b.Cols)
	// above which MatrixMultiply switches to the parallel strategy.
	DefaultParallelThreshold = 1_000_000

	// DefaultWorkers means "one worker per logical CPU".
	DefaultWorkers = 0
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicPoolNil          = "matrix: WithPool: pool must be non-nil"
	panicWorkersInvalid   = "matrix: WithWorkers: workers must be >= 0"
	panicThresholdInvalid = "matrix: WithParallelThreshold: threshold must be >= 0"
	panicLoggerNil        = "matrix: WithLogger: logger must be non-nil"
)

// ---------- Public option type (functional) ----------

// Option mutates internal options. Safe to apply repeatedly (last writer wins).
// Constructors MUST panic only on nonsensical values (programmer error).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; public entry points accept `...Option` and resolve
// them via gatherOptions.
type Options struct {
	pool      *bufpool.Pool // nil ⇒ bufpool.Default()
	workers   int           // DefaultWorkers
	threshold int           // DefaultParallelThreshold
	logger    *slog.Logger  // nil ⇒ discard
}

// WithPool sets the buffer pool the Engine draws storage from.
// Panics when p is nil.
func WithPool(p *bufpool.Pool) Option {
	if p == nil {
		panic(panicPoolNil)
	}

	return func(o *Options) { o.pool = p }
}

// WithWorkers bounds the goroutines used by a parallel multiply.
// Implementation:
//   - Stage 1: reject negative counts (panic).
//   - Stage 2: return a setter; 0 keeps the CPU-count default.
//
// Complexity:
//   - Time O(1), Space O(1).
//
// AI-Hints:
//   - Leave at 0 unless the process shares the machine with other CPU-bound work.
func WithWorkers(n int) Option {
	if n < 0 {
		panic(panicWorkersInvalid)
	}

	return func(o *Options) { o.workers = n }
}

// WithParallelThreshold sets the work size above which MatrixMultiply runs in
// parallel. 0 makes every multiply parallel.
func WithParallelThreshold(n int) Option {
	if n < 0 {
		panic(panicThresholdInvalid)
	}

	return func(o *Options) { o.threshold = n }
}

// WithLogger routes Engine diagnostics to l. Panics when l is nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic(panicLoggerNil)
	}

	return func(o *Options) { o.logger = l }
}

// gatherOptions applies opts over the documented defaults.
func gatherOptions(opts ...Option) Options {
	o := Options{
		workers:   DefaultWorkers,
		threshold: DefaultParallelThreshold,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.pool == nil {
		o.pool = bufpool.Default()
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}

	return o
}
