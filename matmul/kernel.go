// SPDX-License-Identifier: MIT

package matmul

import "fmt"

// checkDims validates the row-major layout contract shared by all kernels.
func checkDims(dst, a, b []float64, m, n, p int) error {
	if m < 0 || n < 0 || p < 0 {
		return fmt.Errorf("m=%d n=%d p=%d: %w", m, n, p, ErrDimensions)
	}
	if len(a) != m*n || len(b) != n*p || len(dst) != m*p {
		return fmt.Errorf("len(a)=%d len(b)=%d len(dst)=%d for %dx%d·%dx%d: %w",
			len(a), len(b), len(dst), m, n, n, p, ErrDimensions)
	}

	return nil
}

// Dense computes dst = a·b on the calling goroutine.
// Every cell of dst is overwritten; prior contents are irrelevant.
//
// Complexity: Time O(m·n·p), Space O(1).
func Dense(dst, a, b []float64, m, n, p int) error {
	if err := checkDims(dst, a, b, m, n, p); err != nil {
		return fmt.Errorf("Dense: %w", err)
	}
	rows(dst, a, b, n, p, 0, m)

	return nil
}

// Rows computes rows [lo,hi) of dst = a·b and touches no other row of dst.
// a and dst are the full m-row operands, not pre-sliced windows.
func Rows(dst, a, b []float64, m, n, p, lo, hi int) error {
	if err := checkDims(dst, a, b, m, n, p); err != nil {
		return fmt.Errorf("Rows: %w", err)
	}
	if lo < 0 || hi > m || lo > hi {
		return fmt.Errorf("Rows: window [%d,%d) of %d rows: %w", lo, hi, m, ErrDimensions)
	}
	rows(dst, a, b, n, p, lo, hi)

	return nil
}

// rows is the unchecked triple loop. The order i→j→k with a single
// accumulator per cell fixes the floating-point summation order.
func rows(dst, a, b []float64, n, p, lo, hi int) {
	var (
		i, j, k    int
		aRow, cRow int
		sum        float64
	)
	for i = lo; i < hi; i++ {
		aRow = i * n
		cRow = i * p
		for j = 0; j < p; j++ {
			sum = 0
			for k = 0; k < n; k++ {
				sum += a[aRow+k] * b[k*p+j]
			}
			dst[cRow+j] = sum
		}
	}
}
