// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/densemat/matmul"
	"github.com/katalvlaran/densemat/matrix"
)

var errBenchArgs = errors.New("--size and --repeat must be positive")

func newBenchCmd(a *app) *cobra.Command {
	var size, repeat int
	var seed int64
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time dense against parallel multiplication on random square matrices",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			if size <= 0 || repeat <= 0 {
				return errBenchArgs
			}

			return a.bench(size, repeat, seed)
		},
	}
	cmd.Flags().IntVar(&size, "size", 256, "rows and columns of each operand")
	cmd.Flags().IntVar(&repeat, "repeat", 3, "multiplications per strategy")
	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed for the operands")

	return cmd
}

// randomData returns n deterministic values in [-1, 1).
func randomData(rng *rand.Rand, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = rng.Float64()*2 - 1
	}

	return out
}

// bench multiplies the same operands with the single-goroutine kernel and the
// parallel strategy, checks that the results agree bit for bit and prints
// timings and pool activity. Both strategies share the app's pool.
func (a *app) bench(size, repeat int, seed int64) error {
	rng := rand.New(rand.NewSource(seed))
	xData, yData := randomData(rng, size*size), randomData(rng, size*size)
	workers := a.engine.Workers()

	strategies := []struct {
		name      string
		threshold int
	}{
		{"dense", math.MaxInt},
		{"parallel", 0},
	}
	avgs := make([]time.Duration, len(strategies))
	results := make([]*matrix.Dense, len(strategies))
	defer func() {
		for _, r := range results {
			r.Release()
		}
	}()

	for i, s := range strategies {
		eng := matrix.NewEngine(
			matrix.WithPool(a.pool),
			matrix.WithLogger(a.log),
			matrix.WithWorkers(workers),
			matrix.WithParallelThreshold(s.threshold))
		avg, res, err := timeMultiply(eng, size, xData, yData, repeat)
		if err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}
		avgs[i], results[i] = avg, res
		a.log.Debug("bench strategy done", slog.String("strategy", s.name), slog.Duration("avg", avg))
	}

	fmt.Fprintf(a.out, "size: %dx%d  repeat: %d  workers: %d  chunk rows: %d\n",
		size, size, repeat, workers, matmul.ChunkRows(size, workers))
	for i, s := range strategies {
		fmt.Fprintf(a.out, "%-9s avg %.2f ms\n", s.name+":", float64(avgs[i])/float64(time.Millisecond))
	}
	fmt.Fprintf(a.out, "identical: %t\n", matrix.Equal(results[0], results[1]))
	writePoolStats(a.out, a.pool.Stats())

	return nil
}

// timeMultiply runs repeat products on eng and returns the mean duration and
// the last product. Intermediate products go back to the pool, so from the
// second round on every result block is a pool hit.
func timeMultiply(eng *matrix.Engine, size int, xData, yData []float64, repeat int) (time.Duration, *matrix.Dense, error) {
	x, err := eng.FromSlice(size, size, xData)
	if err != nil {
		return 0, nil, err
	}
	defer x.Release()
	y, err := eng.FromSlice(size, size, yData)
	if err != nil {
		return 0, nil, err
	}
	defer y.Release()

	var total time.Duration
	var last *matrix.Dense
	for i := 0; i < repeat; i++ {
		last.Release()
		start := time.Now()
		last, err = x.MatrixMultiply(y)
		total += time.Since(start)
		if err != nil {
			return 0, nil, err
		}
	}

	return total / time.Duration(repeat), last, nil
}
