// SPDX-License-Identifier: MIT

package bufpool

import "log/slog"

// DefaultCapacity is the per-key shelf bound used when WithCapacity is not given.
const DefaultCapacity = 1000

const (
	panicCapacityNegative = "bufpool: WithCapacity: capacity must be >= 0"
	panicLoggerNil        = "bufpool: WithLogger: logger must be non-nil"
)

// Option configures a Pool at construction time.
type Option func(*options)

type options struct {
	capacity int
	logger   *slog.Logger
}

// WithCapacity bounds the number of free blocks kept per key.
// Zero disables recycling: every released block is dropped.
// Panics when n is negative.
func WithCapacity(n int) Option {
	if n < 0 {
		panic(panicCapacityNegative)
	}

	return func(o *options) { o.capacity = n }
}

// WithLogger routes pool diagnostics to l. Panics when l is nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic(panicLoggerNil)
	}

	return func(o *options) { o.logger = l }
}

// gatherOptions applies opts over the defaults.
func gatherOptions(opts ...Option) options {
	o := options{
		capacity: DefaultCapacity,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
