// SPDX-License-Identifier: MIT

package matrix

import (
	"log/slog"
	"sync/atomic"

	"github.com/katalvlaran/densemat/bufpool"
)

// lease is a matrix's claim on one pooled block. The block goes back to the
// pool exactly once, either from Release or from the runtime cleanup that
// fires when the matrix becomes unreachable.
//
// A lease never points back at its *Dense, so the cleanup does not keep the
// matrix alive.
type lease struct {
	pool  *bufpool.Pool
	block *bufpool.Block
	log   *slog.Logger
	done  atomic.Bool
}

// release returns the block. The first call wins; later calls report false.
// A pool error here means the block was returned behind the lease's back.
func (l *lease) release() (bool, error) {
	if !l.done.CompareAndSwap(false, true) {
		return false, nil
	}

	return true, l.pool.Release(l.block)
}

// released reports whether the block has been returned. A missing lease
// (zero-value Dense) counts as released.
func (l *lease) released() bool { return l == nil || l.done.Load() }

// reclaim is the cleanup path. It cannot panic usefully on a finalizer
// goroutine, so corruption is logged instead.
func reclaim(l *lease) {
	if _, err := l.release(); err != nil {
		l.log.Error("matrix storage reclaim failed",
			slog.String("key", l.block.Key().String()),
			slog.Any("error", err))
	}
}
