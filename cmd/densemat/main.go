// SPDX-License-Identifier: MIT

// Command densemat runs one matrix operation on text grids and reports the
// result, the elapsed time and the result's memory footprint.
//
// Usage:
//
//	densemat add --a a.txt --b b.txt
//	densemat matmul --a a.txt --b -        # B from stdin
//	densemat pow --a a.txt --exp 2
//	densemat transpose --a a.txt
//	densemat bench --size 512 --repeat 3
//	densemat info
//
// Grids are one row per line with whitespace-separated cells. Configuration
// comes from the environment (DENSEMAT_WORKERS, OMP_NUM_THREADS,
// DENSEMAT_PARALLEL_THRESHOLD, DENSEMAT_POOL_CAPACITY, DENSEMAT_LOG_LEVEL,
// DENSEMAT_LOG_FORMAT).
package main

import (
	"os"

	"github.com/katalvlaran/densemat/internal/config"
)

func main() {
	cmd := newRootCmd(streams{in: os.Stdin, out: os.Stdout, err: os.Stderr}, config.Load)
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
