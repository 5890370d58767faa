// SPDX-License-Identifier: MIT

package matrix

import (
	"log/slog"
	"sync"

	"github.com/katalvlaran/densemat/bufpool"
	"github.com/katalvlaran/densemat/matmul"
)

// Engine binds matrices to a buffer pool and a multiply policy.
// Every *Dense remembers the Engine that built it; results of an operation
// belong to the receiver's Engine. An Engine is immutable and safe for
// concurrent use.
type Engine struct {
	pool      *bufpool.Pool
	workers   int
	threshold int
	log       *slog.Logger
}

var (
	defaultOnce   sync.Once
	defaultEngine *Engine
)

// Default returns the process-wide Engine backed by bufpool.Default(),
// creating it on first call.
func Default() *Engine {
	defaultOnce.Do(func() {
		defaultEngine = NewEngine()
	})

	return defaultEngine
}

// NewEngine builds an Engine from opts.
func NewEngine(opts ...Option) *Engine {
	o := gatherOptions(opts...)

	return &Engine{
		pool:      o.pool,
		workers:   matmul.Workers(o.workers),
		threshold: o.threshold,
		log:       o.logger,
	}
}

// Pool returns the pool the Engine draws storage from.
func (e *Engine) Pool() *bufpool.Pool { return e.pool }

// Workers returns the resolved worker count for parallel multiply.
func (e *Engine) Workers() int { return e.workers }

// ParallelThreshold returns the multiply work size above which the parallel
// strategy is used.
func (e *Engine) ParallelThreshold() int { return e.threshold }
