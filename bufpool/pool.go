// SPDX-License-Identifier: MIT

// Package bufpool - keyed, bounded block recycling.
//
// Purpose:
//   - Hand out row-major float64 storage for a given shape without paying for
//     a fresh allocation when an equal-shaped block was recently released.
//   - Bound retention per key so one-off shapes cannot grow the pool forever.
//
// Locking:
//   - mu guards the key→shelf map (read-mostly; shelves are created once).
//   - each shelf has its own mutex, so different shapes never contend.
//   - Clear holds mu for reading and every shelf lock in turn.
//
// Complexity quicksheet:
//   - Acquire: O(1) on hit, O(rows*cols) allocation on miss.
//   - Release: O(1) amortized. Clear: O(total shelved blocks) + a GC cycle.

package bufpool

import (
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

// operation tags used in error wrappers
const (
	opAcquire = "Acquire"
	opRelease = "Release"
)

// shelf holds the free blocks of one key. Padding keeps hot shelves of
// different keys off the same cache line.
type shelf struct {
	_    cpu.CacheLinePad
	mu   sync.Mutex
	free []*Block
	_    cpu.CacheLinePad
}

// Pool recycles matrix storage keyed by shape and element kind.
// The zero value is not usable; call New or Default.
type Pool struct {
	mu       sync.RWMutex
	shelves  map[Key]*shelf
	capacity int
	log      *slog.Logger

	hits        atomic.Uint64
	misses      atomic.Uint64
	releases    atomic.Uint64
	discards    atomic.Uint64
	corruptions atomic.Uint64
}

var (
	defaultOnce sync.Once
	defaultPool *Pool
)

// Default returns the process-wide pool, creating it on first call with
// DefaultCapacity. Safe for concurrent use.
func Default() *Pool {
	defaultOnce.Do(func() {
		defaultPool = New()
	})

	return defaultPool
}

// New creates an empty pool.
func New(opts ...Option) *Pool {
	o := gatherOptions(opts...)

	return &Pool{
		shelves:  make(map[Key]*shelf),
		capacity: o.capacity,
		log:      o.logger,
	}
}

// Capacity returns the per-key shelf bound.
func (p *Pool) Capacity() int { return p.capacity }

// shelfFor returns the shelf for k, creating it when missing.
// Fast path under the read lock; double-checked under the write lock.
func (p *Pool) shelfFor(k Key) *shelf {
	p.mu.RLock()
	sh, ok := p.shelves[k]
	p.mu.RUnlock()
	if ok {
		return sh
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if sh, ok = p.shelves[k]; ok {
		return sh
	}
	sh = &shelf{}
	p.shelves[k] = sh

	return sh
}

// Acquire checks out a block for k.
// MAIN DESCRIPTION:
//   - Pop the most recently released block of the same key, or allocate one.
//
// Implementation:
//   - Stage 1: validate shape and kind.
//   - Stage 2: pop under the shelf lock; flip idle→leased.
//   - Stage 3: on an empty shelf allocate a fresh, already leased block.
//
// Errors:
//   - ErrBadShape, ErrUnsupportedKind for invalid keys.
//   - ErrPoolCorruption when a shelved block is not idle.
//
// Complexity:
//   - Time O(1) on hit, O(k.Len()) on miss.
func (p *Pool) Acquire(k Key) (*Block, error) {
	if k.Rows <= 0 || k.Cols <= 0 {
		return nil, poolErrorf(opAcquire, k, ErrBadShape)
	}
	if k.Kind != Float64 {
		return nil, poolErrorf(opAcquire, k, ErrUnsupportedKind)
	}

	sh := p.shelfFor(k)
	sh.mu.Lock()
	n := len(sh.free)
	if n > 0 {
		b := sh.free[n-1]
		sh.free[n-1] = nil // drop the shelf's reference
		sh.free = sh.free[:n-1]
		sh.mu.Unlock()

		if !b.state.CompareAndSwap(stateIdle, stateLeased) {
			p.corruptions.Add(1)
			p.log.Error("shelved block is not idle", slog.String("key", k.String()))

			return nil, poolErrorf(opAcquire, k, ErrPoolCorruption)
		}
		p.hits.Add(1)

		return b, nil
	}
	sh.mu.Unlock()

	p.misses.Add(1)
	b := &Block{key: k, f64: make([]float64, k.Len()), pool: p}
	b.state.Store(stateLeased)

	return b, nil
}

// Release returns b to its shelf, or drops it when the shelf is full.
// MAIN DESCRIPTION:
//   - End the caller's lease on b. After Release the caller must not touch b.
//
// Implementation:
//   - Stage 1: reject nil and foreign blocks.
//   - Stage 2: flip leased→idle; any other state means a second return.
//   - Stage 3: shelve under the shelf lock unless len(free) == capacity.
//
// Errors:
//   - ErrNilBlock; ErrPoolCorruption for double or foreign returns.
//
// Complexity:
//   - Time O(1) amortized.
func (p *Pool) Release(b *Block) error {
	if b == nil {
		return ErrNilBlock
	}
	if b.pool != p {
		p.corruptions.Add(1)

		return poolErrorf(opRelease, b.key, ErrPoolCorruption)
	}
	if !b.state.CompareAndSwap(stateLeased, stateIdle) {
		p.corruptions.Add(1)
		p.log.Error("block released while not leased", slog.String("key", b.key.String()))

		return poolErrorf(opRelease, b.key, ErrPoolCorruption)
	}
	p.releases.Add(1)

	sh := p.shelfFor(b.key)
	sh.mu.Lock()
	if len(sh.free) >= p.capacity {
		sh.mu.Unlock()
		b.state.Store(stateDropped)
		p.discards.Add(1)

		return nil
	}
	sh.free = append(sh.free, b)
	sh.mu.Unlock()

	return nil
}

// Len returns the number of free blocks currently shelved for k.
func (p *Pool) Len(k Key) int {
	p.mu.RLock()
	sh, ok := p.shelves[k]
	p.mu.RUnlock()
	if !ok {
		return 0
	}
	sh.mu.Lock()
	defer sh.mu.Unlock()

	return len(sh.free)
}

// Clear drops every shelved block under every key and runs a full garbage
// collection. Leased blocks are unaffected and may be released afterwards.
// Intended for explicit reset actions, not steady-state use.
func (p *Pool) Clear() {
	var dropped int

	p.mu.RLock()
	for _, sh := range p.shelves {
		sh.mu.Lock()
		for i, b := range sh.free {
			b.state.Store(stateDropped)
			sh.free[i] = nil
		}
		dropped += len(sh.free)
		sh.free = nil
		sh.mu.Unlock()
	}
	p.mu.RUnlock()

	runtime.GC()
	p.log.Debug("pool cleared", slog.Int("dropped", dropped))
}
