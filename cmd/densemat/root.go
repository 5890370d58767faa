// SPDX-License-Identifier: MIT

package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/densemat/bufpool"
	"github.com/katalvlaran/densemat/internal/config"
	"github.com/katalvlaran/densemat/matrix"
)

// streams are the command's standard input and outputs.
type streams struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

// app is the state shared by all subcommands, built once before any runs.
type app struct {
	streams
	cfg    config.Config
	log    *slog.Logger
	pool   *bufpool.Pool
	engine *matrix.Engine
}

// newRootCmd wires the command tree. load is config.Load in production and a
// fixed environment in tests.
func newRootCmd(s streams, load func() (config.Config, error)) *cobra.Command {
	a := &app{streams: s}

	root := &cobra.Command{
		Use:          "densemat",
		Short:        "Dense float64 matrix operations on text grids",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(load)
		},
	}
	root.SetIn(s.in)
	root.SetOut(s.out)
	root.SetErr(s.err)

	root.AddCommand(
		newBinaryCmd(a, "add", "Element-wise A + B (with broadcasting)", (*matrix.Dense).Add),
		newBinaryCmd(a, "sub", "Element-wise A - B (with broadcasting)", (*matrix.Dense).Subtract),
		newBinaryCmd(a, "mul", "Element-wise A * B (with broadcasting)", (*matrix.Dense).ElementwiseMultiply),
		newBinaryCmd(a, "matmul", "Matrix product A x B", (*matrix.Dense).MatrixMultiply),
		newPowCmd(a),
		newTransposeCmd(a),
		newBenchCmd(a),
		newInfoCmd(a),
	)

	return root
}

// init loads configuration and builds the logger, pool and engine.
func (a *app) init(load func() (config.Config, error)) error {
	cfg, err := load()
	if err != nil {
		return err
	}
	log, err := cfg.NewLogger(a.err)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.log = log
	a.pool = bufpool.New(cfg.PoolOptions(log)...)
	a.engine = matrix.NewEngine(cfg.EngineOptions(a.pool, log)...)
	log.Debug("engine ready",
		slog.Int("workers", a.engine.Workers()),
		slog.Int("parallel_threshold", a.engine.ParallelThreshold()),
		slog.Int("pool_capacity", a.pool.Capacity()))

	return nil
}
