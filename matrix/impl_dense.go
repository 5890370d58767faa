// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the explicit index formula i*cols + j.
//   - Guarantee safety at the public surface: At returns errors instead of panicking.
//   - Draw storage from the Engine's bufpool.Pool and give it back exactly once.
//
// Lifecycle:
//   - Construction acquires a block and registers a runtime cleanup.
//   - Release returns the block (and the cached transpose's block) immediately.
//   - A matrix never released explicitly returns its block when it is collected.
//   - Code that passes m.data to a loop or kernel calls runtime.KeepAlive(m)
//     after it, or the cleanup may recycle the block while it is being read.
//
// Complexity quicksheet:
//   - New/FromSlice: O(r*c) copy; At: O(1); RowsData/Format: O(r*c).

package matrix

import (
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/katalvlaran/densemat/bufpool"
)

// ---------- error context tags ----------

const (
	ctxAt       = "At" // method tag used in error wrappers
	opNew       = "New"
	opFromSlice = "FromSlice"
	opIdentity  = "Identity"
	opRowsData  = "RowsData"
)

// ---------- Formatting literals ----------
const (
	_fmtCellSep = "  "
	_fmtRowSep  = "\n"
	_fmtDigits  = 2
	_released   = "Dense(released)"
)

// bytesPerMB converts byte counts to MiB.
const bytesPerMB = 1024 * 1024

// Dense is an immutable row-major matrix of float64 values.
// The zero value is not usable; build matrices through an Engine.
//   - r,c hold dimensions (rows, cols), both ≥ 1.
//   - data is the leased pool block, len r*c, offset = i*c + j.
//   - tcache holds the lazily computed transpose, owned by this matrix.
//   - borrowed marks a cached transpose: its storage belongs to the parent.
type Dense struct {
	r, c     int
	data     []float64
	eng      *Engine
	lease    *lease
	tcache   atomic.Pointer[Dense]
	borrowed bool
}

// Compile-time assertion for fmt.Stringer conformance.
var _ fmt.Stringer = (*Dense)(nil)

// alloc leases an r×c block from e's pool and wraps it in a Dense.
// Block contents are stale; callers overwrite every cell.
//
// A pool corruption error is a broken lease invariant somewhere in the
// process and is raised as a panic.
func (e *Engine) alloc(op string, r, c int) (*Dense, error) {
	key := bufpool.Key{Rows: r, Cols: c, Kind: bufpool.Float64}
	b, err := e.pool.Acquire(key)
	if err != nil {
		if errors.Is(err, bufpool.ErrPoolCorruption) {
			panic(matrixErrorf(op, err))
		}

		return nil, matrixErrorf(op, ErrShape)
	}

	l := &lease{pool: e.pool, block: b, log: e.log}
	d := &Dense{r: r, c: c, data: b.Float64s(), eng: e, lease: l}
	runtime.AddCleanup(d, reclaim, l)

	return d, nil
}

// New builds a matrix from rows, copying the values into pooled storage.
// MAIN DESCRIPTION:
//   - Validate that rows form a non-empty rectangle and copy them row-major.
//
// Implementation:
//   - Stage 1: reject empty input, zero-length rows and ragged rows.
//   - Stage 2: lease an r×c block.
//   - Stage 3: copy row by row.
//
// Errors:
//   - ErrShape for empty or ragged input.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func (e *Engine) New(rows [][]float64) (*Dense, error) {
	if len(rows) == 0 {
		return nil, matrixErrorf(opNew, ErrShape)
	}
	r, c := len(rows), len(rows[0])
	if c == 0 {
		return nil, matrixErrorf(opNew, ErrShape)
	}
	for i := 1; i < r; i++ {
		if len(rows[i]) != c {
			return nil, fmt.Errorf("%s: row %d has %d cells, want %d: %w", opNew, i, len(rows[i]), c, ErrShape)
		}
	}

	d, err := e.alloc(opNew, r, c)
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		copy(d.data[i*c:(i+1)*c], row)
	}

	return d, nil
}

// FromSlice builds an r×c matrix from a flat row-major slice (copied).
// Errors: ErrShape when r or c is non-positive or len(data) != r*c.
func (e *Engine) FromSlice(r, c int, data []float64) (*Dense, error) {
	if r <= 0 || c <= 0 || len(data) != r*c {
		return nil, matrixErrorf(opFromSlice, ErrShape)
	}
	d, err := e.alloc(opFromSlice, r, c)
	if err != nil {
		return nil, err
	}
	copy(d.data, data)

	return d, nil
}

// Identity returns I_n (ones on the diagonal, zeros elsewhere).
// Complexity: O(n^2) zeroing + O(n) diagonal writes.
func (e *Engine) Identity(n int) (*Dense, error) {
	if n <= 0 {
		return nil, matrixErrorf(opIdentity, ErrShape)
	}
	d, err := e.alloc(opIdentity, n, n)
	if err != nil {
		return nil, err
	}
	clear(d.data) // pooled blocks are stale
	for i := 0; i < n; i++ {
		d.data[i*n+i] = 1
	}

	return d, nil
}

// Rows returns the number of rows.
func (m *Dense) Rows() int { return m.r }

// Cols returns the number of columns.
func (m *Dense) Cols() int { return m.c }

// Shape returns (rows, cols).
func (m *Dense) Shape() (rows, cols int) { return m.r, m.c }

// Engine returns the Engine that owns m's storage.
func (m *Dense) Engine() *Engine { return m.eng }

// Released reports whether m's storage has gone back to the pool.
// A nil matrix reports true.
func (m *Dense) Released() bool { return m == nil || m.lease.released() }

// indexOf computes the row-major offset or returns ErrOutOfRange.
func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r {
		return 0, ErrOutOfRange
	}
	if col < 0 || col >= m.c {
		return 0, ErrOutOfRange
	}

	// Row-major offset: i*c + j.
	return row*m.c + col, nil
}

// At returns the value at (row, col).
// MAIN DESCRIPTION:
//   - Safe element read at coordinates.
//
// Errors:
//   - ErrNilMatrix, ErrReleased, ErrOutOfRange.
//
// Complexity:
//   - Time O(1), Space O(1).
func (m *Dense) At(row, col int) (float64, error) {
	if err := ValidateLive(m); err != nil {
		return 0, denseErrorf(ctxAt, row, col, err)
	}
	off, err := m.indexOf(row, col)
	if err != nil {
		return 0, denseErrorf(ctxAt, row, col, err)
	}

	v := m.data[off]
	runtime.KeepAlive(m)

	return v, nil
}

// RowsData returns a deep copy of m as a slice of rows.
func (m *Dense) RowsData() ([][]float64, error) {
	if err := ValidateLive(m); err != nil {
		return nil, matrixErrorf(opRowsData, err)
	}
	out := make([][]float64, m.r)
	for i := range out {
		out[i] = append([]float64(nil), m.data[i*m.c:(i+1)*m.c]...)
	}
	runtime.KeepAlive(m)

	return out, nil
}

// MemoryFootprint returns the bytes held by m's own storage (r*c*8).
// The cached transpose is not counted. A released matrix holds nothing.
func (m *Dense) MemoryFootprint() int64 {
	if m == nil || m.lease.released() {
		return 0
	}

	return int64(m.r) * int64(m.c) * int64(bufpool.Float64.Size())
}

// MemoryFootprintMB is MemoryFootprint in MiB.
func (m *Dense) MemoryFootprintMB() float64 {
	return float64(m.MemoryFootprint()) / bytesPerMB
}

// Format renders m with two decimals per cell, cells separated by two spaces
// and rows by newlines, with no trailing newline.
// Complexity: O(r*c).
func (m *Dense) Format() string {
	if m == nil || m.lease.released() {
		return _released
	}
	var b strings.Builder
	var buf []byte
	var i, j, base int
	for i = 0; i < m.r; i++ {
		if i > 0 {
			b.WriteString(_fmtRowSep)
		}
		base = i * m.c
		for j = 0; j < m.c; j++ {
			if j > 0 {
				b.WriteString(_fmtCellSep)
			}
			buf = strconv.AppendFloat(buf[:0], m.data[base+j], 'f', _fmtDigits, 64)
			b.Write(buf)
		}
	}
	runtime.KeepAlive(m)

	return b.String()
}

// String implements fmt.Stringer with a shape header over Format.
func (m *Dense) String() string {
	if m == nil || m.lease.released() {
		return _released
	}

	return fmt.Sprintf("Dense(%dx%d)\n%s", m.r, m.c, m.Format())
}

// Release returns m's storage, and its cached transpose's storage, to the
// pool. It is idempotent. Operations on m afterwards fail with ErrReleased.
//
// On a cached transpose Release does nothing: the parent owns that storage.
// Release panics if the pool reports the block was already returned by
// another path, which means the process has lost track of ownership.
func (m *Dense) Release() {
	if m == nil || m.borrowed {
		return
	}
	m.ClearCache()
	m.free()
}

// free ends m's lease regardless of the borrowed flag.
func (m *Dense) free() {
	if m.lease == nil {
		return
	}
	if _, err := m.lease.release(); err != nil {
		panic(matrixErrorf("Release", err))
	}
}
