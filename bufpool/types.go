// SPDX-License-Identifier: MIT

package bufpool

import (
	"fmt"
	"sync/atomic"
)

// Kind identifies the element type of a block.
type Kind uint8

const (
	// Float64 is the only supported element kind.
	Float64 Kind = iota + 1
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case Float64:
		return "float64"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Size returns the element size in bytes, or 0 for unknown kinds.
func (k Kind) Size() int {
	if k == Float64 {
		return 8
	}

	return 0
}

// Key groups interchangeable blocks: same shape, same element kind.
type Key struct {
	Rows int
	Cols int
	Kind Kind
}

// Len returns the number of elements a block of this key holds.
func (k Key) Len() int { return k.Rows * k.Cols }

// Bytes returns the storage size of a block of this key.
func (k Key) Bytes() int64 { return int64(k.Len()) * int64(k.Kind.Size()) }

// String implements fmt.Stringer.
func (k Key) String() string {
	return fmt.Sprintf("%dx%d/%s", k.Rows, k.Cols, k.Kind)
}

// lease states of a Block.
const (
	stateIdle    uint32 = iota // shelved, free to hand out
	stateLeased                // checked out by exactly one owner
	stateDropped               // evicted (shelf full or Clear); never reused
)

// Block is a contiguous buffer of Key.Len() elements owned by a Pool.
// A Block must not be used after it has been released.
type Block struct {
	key   Key
	f64   []float64
	state atomic.Uint32
	pool  *Pool
}

// Key returns the block key.
func (b *Block) Key() Key { return b.key }

// Float64s returns the backing slice. Contents are stale after Acquire.
func (b *Block) Float64s() []float64 { return b.f64 }

// Len returns the element count.
func (b *Block) Len() int { return len(b.f64) }

// Bytes returns the storage size in bytes.
func (b *Block) Bytes() int64 { return b.key.Bytes() }

// Leased reports whether the block is currently checked out.
func (b *Block) Leased() bool { return b.state.Load() == stateLeased }
