// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide small, *private* element-wise and broadcast kernels (ew*) shared
//     by the public operations in methods.go.
//   - Keep all loops deterministic and cache-friendly on the flat row-major buffer.
//
// Design:
//   - All ew* are UNEXPORTED (internal micro-kernels) and assume validated,
//     live operands and a correctly shaped destination.
//   - Equal shapes take a single flat loop; broadcast shapes use zero strides
//     along the size-1 dimension.
//
// Determinism & Performance:
//   - Fixed loop orders (i→j or flat 0..n-1).
//   - No allocations; O(r*c) time.

package matrix

import "math"

// ewKind selects the binary elementwise operation.
type ewKind uint8

const (
	ewAdd ewKind = iota
	ewSub
	ewMul
)

// ewApply evaluates one cell of k.
func ewApply(k ewKind, x, y float64) float64 {
	switch k {
	case ewAdd:
		return x + y
	case ewSub:
		return x - y
	default:
		return x * y
	}
}

// ewFlat computes dst[i] = x[i] ∘ y[i] over equal-length slices.
// The switch sits outside the loop so each case is a tight single pass.
func ewFlat(k ewKind, dst, x, y []float64) {
	switch k {
	case ewAdd:
		for i := range dst {
			dst[i] = x[i] + y[i]
		}
	case ewSub:
		for i := range dst {
			dst[i] = x[i] - y[i]
		}
	default:
		for i := range dst {
			dst[i] = x[i] * y[i]
		}
	}
}

// strides returns the row and column strides of an r×c operand read under
// broadcasting: a size-1 dimension repeats, so its stride is 0.
func strides(r, c int) (rs, cs int) {
	if r > 1 {
		rs = c
	}
	if c > 1 {
		cs = 1
	}

	return rs, cs
}

// ewBroadcast computes out = a ∘ b where out has the broadcast shape of a and b.
// Time: O(r*c). Space: O(1). Deterministic i→j loops.
func ewBroadcast(k ewKind, out, a, b *Dense) {
	if a.r == b.r && a.c == b.c {
		ewFlat(k, out.data, a.data, b.data)

		return
	}

	ars, acs := strides(a.r, a.c)
	brs, bcs := strides(b.r, b.c)
	var i, j, base int
	for i = 0; i < out.r; i++ {
		base = i * out.c
		for j = 0; j < out.c; j++ {
			out.data[base+j] = ewApply(k, a.data[i*ars+j*acs], b.data[i*brs+j*bcs])
		}
	}
}

// ewPow computes dst[i] = src[i]^e with IEEE-754 semantics (math.Pow).
func ewPow(dst, src []float64, e float64) {
	for i, v := range src {
		dst[i] = math.Pow(v, e)
	}
}

// ewTranspose writes the c×r transpose of the r×c src into dst.
// data[i*c + j] → dst[j*r + i].
func ewTranspose(dst, src []float64, r, c int) {
	var i, j, base int
	for i = 0; i < r; i++ {
		base = i * c
		for j = 0; j < c; j++ {
			dst[j*r+i] = src[base+j]
		}
	}
}
