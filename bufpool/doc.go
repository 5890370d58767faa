// SPDX-License-Identifier: MIT

// Package bufpool recycles backing storage for dense matrices.
//
// A Pool keeps, per Key (rows, cols, element kind), a bounded shelf of
// blocks that no live matrix references. Acquire pops a shelved block or
// allocates a new one; Release puts it back unless the shelf is full, in
// which case the block is dropped and left to the garbage collector.
//
// Contents of an acquired block are stale: callers overwrite every cell
// before reading it.
//
// Every block carries a lease state. A block returned twice, a block from
// another pool, or a shelved block that is somehow still leased is reported
// as ErrPoolCorruption. These are programming errors, not user input errors.
//
// Usage:
//
//	p := bufpool.New(bufpool.WithCapacity(64))
//	b, err := p.Acquire(bufpool.Key{Rows: 3, Cols: 3, Kind: bufpool.Float64})
//	if err != nil {
//		return err
//	}
//	data := b.Float64s() // len == 9, stale contents
//	// ... fill data ...
//	if err := p.Release(b); err != nil {
//		panic(err)
//	}
//
// Default returns the process-wide pool, created on first use.
package bufpool
