// SPDX-License-Identifier: MIT

// Package matrix operations on *Dense: element-wise arithmetic with
// broadcasting, matrix multiplication, element-wise power and a cached
// transpose. Every operation validates its operands first, returns a new
// matrix from the receiver's Engine and leaves its operands untouched.
package matrix

import (
	"log/slog"
	"runtime"

	"github.com/katalvlaran/densemat/matmul"
)

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opAdd        = "Add"
	opSub        = "Subtract"
	opHadamard   = "ElementwiseMultiply"
	opMul        = "MatrixMultiply"
	opPower      = "Power"
	opTranspose  = "Transpose"
	opClearCache = "ClearCache"
)

// Add returns m + b, broadcasting size-1 dimensions.
// Errors: ErrNilMatrix, ErrReleased, ErrShapeMismatch.
// Complexity: O(r·c) time and memory.
func (m *Dense) Add(b *Dense) (*Dense, error) { return m.elementwise(opAdd, ewAdd, b) }

// Subtract returns m − b, broadcasting size-1 dimensions.
// Complexity: O(r·c).
func (m *Dense) Subtract(b *Dense) (*Dense, error) { return m.elementwise(opSub, ewSub, b) }

// ElementwiseMultiply returns the Hadamard product m ⊙ b, broadcasting
// size-1 dimensions.
// Complexity: O(r·c).
func (m *Dense) ElementwiseMultiply(b *Dense) (*Dense, error) {
	return m.elementwise(opHadamard, ewMul, b)
}

// elementwise is the shared body of Add/Subtract/ElementwiseMultiply.
// Stage 1 (Validate): both operands live; broadcast-compatible shapes.
// Stage 2 (Prepare): lease the result in the broadcast shape.
// Stage 3 (Execute): flat loop for equal shapes, strided loop otherwise.
func (m *Dense) elementwise(op string, k ewKind, b *Dense) (*Dense, error) {
	if err := ValidateLive(m); err != nil {
		return nil, matrixErrorf(op, err)
	}
	if err := ValidateLive(b); err != nil {
		return nil, matrixErrorf(op, err)
	}
	r, c, err := ValidateBroadcast(m, b)
	if err != nil {
		return nil, matrixErrorf(op, err)
	}

	out, err := m.eng.alloc(op, r, c)
	if err != nil {
		return nil, err
	}
	ewBroadcast(k, out, m, b)
	// Cleanups on m and b must not return their blocks mid-loop.
	runtime.KeepAlive(m)
	runtime.KeepAlive(b)

	return out, nil
}

// MatrixMultiply returns the matrix product m × b.
// MAIN DESCRIPTION:
//   - C[i,j] = Σ_k m[i,k]·b[k,j], accumulated with k innermost from zero.
//
// Implementation:
//   - Stage 1: validate operands and m.Cols == b.Rows.
//   - Stage 2: lease the (m.Rows × b.Cols) result.
//   - Stage 3: when m.Rows·m.Cols·b.Cols exceeds the Engine threshold run
//     matmul.Parallel over row chunks, else matmul.Dense.
//
// Behavior highlights:
//   - Both paths produce bit-identical results.
//
// Errors:
//   - ErrNilMatrix, ErrReleased, ErrShapeMismatch.
//
// Complexity:
//   - Time O(r·n·c), Space O(r·c).
func (m *Dense) MatrixMultiply(b *Dense) (*Dense, error) {
	if err := ValidateLive(m); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	if err := ValidateLive(b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	if err := ValidateMulCompatible(m, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	rows, inner, cols := m.r, m.c, b.c
	out, err := m.eng.alloc(opMul, rows, cols)
	if err != nil {
		return nil, err
	}

	if work := rows * inner * cols; work > m.eng.threshold {
		m.eng.log.Debug("parallel multiply",
			slog.Int("rows", rows),
			slog.Int("inner", inner),
			slog.Int("cols", cols),
			slog.Int("workers", m.eng.workers),
			slog.Int("chunk_rows", matmul.ChunkRows(rows, m.eng.workers)))
		err = matmul.Parallel(out.data, m.data, b.data, rows, inner, cols, m.eng.workers)
	} else {
		err = matmul.Dense(out.data, m.data, b.data, rows, inner, cols)
	}
	runtime.KeepAlive(m)
	runtime.KeepAlive(b)
	if err != nil {
		out.Release()

		return nil, matrixErrorf(opMul, err)
	}

	return out, nil
}

// Power raises every element to exponent with math.Pow.
// This is NOT the matrix power m·m·…·m: [[1,2],[3,4]].Power(2) is
// [[1,4],[9,16]]. Negative exponents follow IEEE-754 (0^-1 = +Inf).
// Complexity: O(r·c).
func (m *Dense) Power(exponent int) (*Dense, error) {
	if err := ValidateLive(m); err != nil {
		return nil, matrixErrorf(opPower, err)
	}
	out, err := m.eng.alloc(opPower, m.r, m.c)
	if err != nil {
		return nil, err
	}
	ewPow(out.data, m.data, float64(exponent))
	runtime.KeepAlive(m)

	return out, nil
}

// Transpose returns mᵀ, computing it once and caching it on m.
// MAIN DESCRIPTION:
//   - Repeated calls return the same *Dense until ClearCache or Release.
//
// Implementation:
//   - Stage 1: return the cached value when present.
//   - Stage 2: compute a candidate outside any lock.
//   - Stage 3: publish with compare-and-swap; a loser frees its candidate and
//     retries, which returns the winner.
//
// Behavior highlights:
//   - The cached transpose belongs to m. Its Release is a no-op and it
//     becomes unusable (ErrReleased) once m clears its cache or is released.
//
// Complexity:
//   - Time O(r·c) first call, O(1) after; Space O(r·c).
func (m *Dense) Transpose() (*Dense, error) {
	for {
		if err := ValidateLive(m); err != nil {
			return nil, matrixErrorf(opTranspose, err)
		}
		if t := m.tcache.Load(); t != nil {
			return t, nil
		}

		t, err := m.eng.alloc(opTranspose, m.c, m.r)
		if err != nil {
			return nil, err
		}
		ewTranspose(t.data, m.data, m.r, m.c)
		runtime.KeepAlive(m)
		t.borrowed = true

		if m.tcache.CompareAndSwap(nil, t) {
			// m may have been released while t was being built.
			if m.lease.released() {
				m.ClearCache()

				return nil, matrixErrorf(opTranspose, ErrReleased)
			}

			return t, nil
		}
		t.free()
	}
}

// ClearCache drops the cached transpose and returns its storage to the pool.
// The next Transpose recomputes. Safe to call with no cache present.
func (m *Dense) ClearCache() {
	if m == nil {
		return
	}
	t := m.tcache.Swap(nil)
	if t == nil {
		return
	}
	t.ClearCache()
	t.free()
	m.eng.log.Debug("transpose cache cleared",
		slog.String("op", opClearCache),
		slog.Int("rows", t.r),
		slog.Int("cols", t.c))
}
