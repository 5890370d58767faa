// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for operand checks.
//  - Keep operations minimal by delegating nil/lifetime/shape checks here.
//  - Return sentinel errors tagged with the validator name so call sites can wrap uniformly.
//
// Note:
//  - Composite checks follow a fixed sequence (NotNil → Live → Shape).

package matrix

import "fmt"

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil.
// Complexity: O(1).
func ValidateNotNil(m *Dense) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateLive ensures m is non-nil and still owns its storage.
// Complexity: O(1).
func ValidateLive(m *Dense) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	if m.lease.released() {
		return validatorErrorf("ValidateLive", ErrReleased)
	}

	return nil
}

// ValidateSameShape ensures a and b have equal dimensions.
// Assumes a and b are not nil.
func ValidateSameShape(a, b *Dense) error {
	if a.r != b.r {
		return validatorErrorf("ValidateSameShape: Rows", ErrShapeMismatch)
	}
	if a.c != b.c {
		return validatorErrorf("ValidateSameShape: Columns", ErrShapeMismatch)
	}

	return nil
}

// ValidateBroadcast returns the broadcast shape of a and b.
// Per dimension the sizes must be equal, or one of them must be 1; the
// result takes the larger size.
// Assumes a and b are not nil.
//
// Complexity: O(1).
func ValidateBroadcast(a, b *Dense) (rows, cols int, err error) {
	rows, ok := broadcastDim(a.r, b.r)
	if !ok {
		return 0, 0, validatorErrorf("ValidateBroadcast: Rows", ErrShapeMismatch)
	}
	cols, ok = broadcastDim(a.c, b.c)
	if !ok {
		return 0, 0, validatorErrorf("ValidateBroadcast: Columns", ErrShapeMismatch)
	}

	return rows, cols, nil
}

// broadcastDim combines one dimension of two operands.
func broadcastDim(x, y int) (int, bool) {
	switch {
	case x == y:
		return x, true
	case x == 1:
		return y, true
	case y == 1:
		return x, true
	default:
		return 0, false
	}
}

// ValidateMulCompatible ensures a.Cols == b.Rows.
// Assumes a and b are not nil.
func ValidateMulCompatible(a, b *Dense) error {
	if a.c != b.r {
		return validatorErrorf("ValidateMulCompatible", ErrShapeMismatch)
	}

	return nil
}
