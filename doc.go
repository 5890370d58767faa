// Package densemat is a dense float64 matrix engine with pooled storage.
//
// What is densemat?
//
//	A small library and command that bring together:
//		• Matrix value type: immutable row-major *matrix.Dense with element-wise
//		  arithmetic (numpy-style broadcasting), multiplication, element-wise
//		  power and a cached transpose
//		• Buffer pool: shape-keyed, bounded recycling of matrix storage
//		• Parallel multiply: row-chunked fan-out that matches the serial kernel
//		  bit for bit
//
// Under the hood, everything is organized under these packages:
//
//	bufpool/           - keyed block pool, process-wide default, memory statistics
//	matmul/            - dense multiply kernel and parallel row-chunk strategy
//	matrix/            - Engine and Dense: construction, operations, lifetimes
//	internal/config/   - environment configuration for the command
//	internal/gridtext/ - text grid parsing
//	cmd/densemat/      - command-line front-end
//
// Quick example:
//
//	e := matrix.NewEngine(matrix.WithPool(bufpool.New()))
//	a, _ := e.New([][]float64{{1, 2}, {3, 4}})
//	b, _ := e.New([][]float64{{5, 6}, {7, 8}})
//	c, _ := a.MatrixMultiply(b) // [[19 22] [43 50]]
//	defer c.Release()
//
//	go install github.com/katalvlaran/densemat/cmd/densemat@latest
package densemat
