// SPDX-License-Identifier: MIT

package matmul

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Span is a half-open row window [Lo, Hi).
type Span struct {
	Lo, Hi int
}

// Len returns Hi-Lo.
func (s Span) Len() int { return s.Hi - s.Lo }

// Workers resolves a worker hint: values <= 0 mean runtime.NumCPU().
func Workers(hint int) int {
	if hint <= 0 {
		return runtime.NumCPU()
	}

	return hint
}

// ChunkRows returns the chunk height for m rows over workers workers:
// max(1, m/(2·workers)). Two chunks per worker on average smooths out
// uneven scheduling.
func ChunkRows(m, workers int) int {
	workers = Workers(workers)

	return max(1, m/(2*workers))
}

// Partition splits [0,m) into contiguous chunks of ChunkRows(m, workers)
// rows; the last chunk takes the remainder. Deterministic for fixed inputs.
func Partition(m, workers int) []Span {
	if m <= 0 {
		return nil
	}
	size := ChunkRows(m, workers)
	spans := make([]Span, 0, (m+size-1)/size)
	for lo := 0; lo < m; lo += size {
		spans = append(spans, Span{Lo: lo, Hi: min(lo+size, m)})
	}

	return spans
}

// Parallel computes dst = a·b with row chunks fanned out to at most workers
// goroutines (workers <= 0 means runtime.NumCPU()). It blocks until every
// chunk is done; there is no cancellation and no partial result.
//
// The result is bit-identical to Dense for the same inputs.
func Parallel(dst, a, b []float64, m, n, p, workers int) error {
	if err := checkDims(dst, a, b, m, n, p); err != nil {
		return fmt.Errorf("Parallel: %w", err)
	}
	workers = Workers(workers)
	spans := Partition(m, workers)
	if workers == 1 || len(spans) <= 1 {
		rows(dst, a, b, n, p, 0, m)

		return nil
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for _, s := range spans {
		g.Go(func() error {
			rows(dst, a, b, n, p, s.Lo, s.Hi)

			return nil
		})
	}

	return g.Wait()
}
