// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   • Provide small, deterministic fixtures and utilities shared by the tests.
//   • Give every test its own pool so counters and shelves are hermetic.

package matrix_test

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/densemat/bufpool"
	"github.com/katalvlaran/densemat/matrix"
)

// newEngine returns an Engine bound to a fresh private pool.
func newEngine(tb testing.TB, opts ...matrix.Option) (*matrix.Engine, *bufpool.Pool) {
	tb.Helper()
	p := bufpool.New()
	e := matrix.NewEngine(append([]matrix.Option{matrix.WithPool(p)}, opts...)...)

	return e, p
}

// MustNew builds a matrix from rows or fails the test.
func MustNew(tb testing.TB, e *matrix.Engine, rows [][]float64) *matrix.Dense {
	tb.Helper()
	m, err := e.New(rows)
	require.NoError(tb, err)

	return m
}

// RequireRows compares m to want cell by cell and prints a cmp diff on mismatch.
func RequireRows(tb testing.TB, want [][]float64, m *matrix.Dense) {
	tb.Helper()
	got, err := m.RowsData()
	require.NoError(tb, err)
	if diff := cmp.Diff(want, got); diff != "" {
		tb.Fatalf("matrix mismatch (-want +got):\n%s", diff)
	}
}

// randRows returns an r×c grid of deterministic values in [-1, 1).
func randRows(seed int64, r, c int) [][]float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([][]float64, r)
	for i := range out {
		out[i] = make([]float64, c)
		for j := range out[i] {
			out[i][j] = rng.Float64()*2 - 1
		}
	}

	return out
}

// key is the pool key of an r×c float64 block.
func key(r, c int) bufpool.Key {
	return bufpool.Key{Rows: r, Cols: c, Kind: bufpool.Float64}
}
