// SPDX-License-Identifier: MIT

// Package matmul holds the float64 matrix-product kernels used by package
// matrix.
//
// Dense is the reference triple loop: C[i,j] = Σ_k A[i,k]·B[k,j], rows outer,
// k innermost, every cell starting from zero. Rows runs the same loop over a
// row window [lo,hi) and writes only that window of C, so disjoint windows can
// run on different goroutines with B shared read-only.
//
// Parallel splits A into contiguous row chunks of
// max(1, m/(2·workers)) rows, runs Rows for each chunk on a bounded
// errgroup, and joins before returning. Chunks write straight into their own
// rows of C, which keeps the input row order. Accumulation order inside a
// row never changes, so Parallel is bit-identical to Dense.
//
// All slices are row-major: A is m×n, B is n×p, C is m×p.
package matmul
