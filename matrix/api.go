// SPDX-License-Identifier: MIT
// Package matrix - public API facades.
//
// Purpose:
//   - Provide thin entry points that build on the process-wide Default engine.
//   - Avoid any logic duplication - each facade delegates to the canonical method.
//   - Keep function names short for expression-style call sites.
//
// Determinism & Policy:
//   - Facades never change the loop orders or numeric policy of the methods.
//   - Validation is performed in the methods; facades only forward.
//
// AI-Hints:
//   - Prefer an explicit Engine (NewEngine + WithPool) in libraries and tests;
//     the facades are for programs that are happy with one shared pool.

package matrix

import "runtime"

// ---------- Constructors on the Default engine ----------

// New builds a matrix from rows on the Default engine.
func New(rows [][]float64) (*Dense, error) { return Default().New(rows) }

// FromSlice builds an r×c matrix from a flat row-major slice on the Default engine.
func FromSlice(r, c int, data []float64) (*Dense, error) { return Default().FromSlice(r, c, data) }

// Identity returns I_n on the Default engine.
func Identity(n int) (*Dense, error) { return Default().Identity(n) }

// ---------- Operations (facades map 1:1 to methods) ----------

// Add is a.Add(b): element-wise a + b with broadcasting.
// Complexity: O(rc).
func Add(a, b *Dense) (*Dense, error) { return a.Add(b) }

// Sub is a.Subtract(b): element-wise a − b with broadcasting.
// Complexity: O(rc).
func Sub(a, b *Dense) (*Dense, error) { return a.Subtract(b) }

// Hadamard is a.ElementwiseMultiply(b): element-wise a ⊙ b with broadcasting.
// Complexity: O(rc).
func Hadamard(a, b *Dense) (*Dense, error) { return a.ElementwiseMultiply(b) }

// Mul is a.MatrixMultiply(b): matrix product a × b.
// Complexity: O(r*n*c).
func Mul(a, b *Dense) (*Dense, error) { return a.MatrixMultiply(b) }

// Pow is m.Power(exponent): element-wise power.
// Complexity: O(rc).
func Pow(m *Dense, exponent int) (*Dense, error) { return m.Power(exponent) }

// T is m.Transpose(): the cached transpose.
// Complexity: O(rc) first call, O(1) after.
func T(m *Dense) (*Dense, error) { return m.Transpose() }

// Equal reports whether a and b are live, have the same shape and hold
// exactly the same values. NaN never equals NaN.
// Complexity: O(rc).
func Equal(a, b *Dense) bool {
	if ValidateLive(a) != nil || ValidateLive(b) != nil {
		return false
	}
	if ValidateSameShape(a, b) != nil {
		return false
	}
	for i, v := range a.data {
		if v != b.data[i] {
			return false
		}
	}
	runtime.KeepAlive(a)
	runtime.KeepAlive(b)

	return true
}
