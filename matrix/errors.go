// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// This file defines ONLY package-level sentinel errors used across the matrix
// package. Operations return these sentinels wrapped with an operation tag and
// tests MUST check them via errors.Is. No operation panics on user-triggered
// error conditions; a corrupted buffer pool is the single exception.

package matrix

import (
	"errors"
	"fmt"
)

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." for consistency and to allow
// easy grepping across logs. Call sites wrap with matrixErrorf(op, ErrX) or
// denseErrorf(method, row, col, ErrX); callers still match with errors.Is.
//
// ERROR PRIORITY (documented, enforced in tests):
// nil -> released -> shape -> index.

var (
	// ErrShape is returned when construction input is not a non-empty
	// rectangle: no rows, zero-length rows, ragged rows, or a flat slice whose
	// length does not match rows*cols.
	ErrShape = errors.New("matrix: invalid shape")

	// ErrShapeMismatch indicates operands whose shapes are incompatible for the
	// requested operation: not broadcast-compatible for elementwise ops, or
	// a.Cols != b.Rows for MatrixMultiply.
	ErrShapeMismatch = errors.New("matrix: shape mismatch")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	// Public indexers (At) MUST return this, not panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrNilMatrix indicates that a nil *Dense (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil matrix")

	// ErrReleased indicates use of a matrix whose storage went back to the pool,
	// either through Release or, for a cached transpose, through the parent's
	// ClearCache/Release.
	ErrReleased = errors.New("matrix: matrix released")
)

// matrixErrorf wraps an underlying error with the given operation tag.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}
