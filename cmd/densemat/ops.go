// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/katalvlaran/densemat/internal/gridtext"
	"github.com/katalvlaran/densemat/matrix"
)

// stdinName selects standard input as an operand source.
const stdinName = "-"

var errStdinTwice = errors.New("only one operand can be read from stdin")

// binaryOp is a two-operand method expression such as (*matrix.Dense).Add.
type binaryOp func(a, b *matrix.Dense) (*matrix.Dense, error)

// operandFlags registers --a and, when withB, --b.
func operandFlags(fs *pflag.FlagSet, a, b *string, withB bool) {
	fs.StringVar(a, "a", "", "file holding matrix A ('-' for stdin)")
	if withB {
		fs.StringVar(b, "b", "", "file holding matrix B ('-' for stdin)")
	}
}

func newBinaryCmd(a *app, use, short string, op binaryOp) *cobra.Command {
	var pathA, pathB string
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			if pathA == stdinName && pathB == stdinName {
				return errStdinTwice
			}
			x, err := a.load(pathA)
			if err != nil {
				return err
			}
			defer x.Release()
			y, err := a.load(pathB)
			if err != nil {
				return err
			}
			defer y.Release()

			return a.run(use, func() (*matrix.Dense, error) { return op(x, y) })
		},
	}
	operandFlags(cmd.Flags(), &pathA, &pathB, true)
	_ = cmd.MarkFlagRequired("a")
	_ = cmd.MarkFlagRequired("b")

	return cmd
}

func newPowCmd(a *app) *cobra.Command {
	var pathA string
	var exp int
	cmd := &cobra.Command{
		Use:   "pow",
		Short: "Raise every element of A to an integer exponent",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			x, err := a.load(pathA)
			if err != nil {
				return err
			}
			defer x.Release()

			return a.run("pow", func() (*matrix.Dense, error) { return x.Power(exp) })
		},
	}
	operandFlags(cmd.Flags(), &pathA, nil, false)
	cmd.Flags().IntVar(&exp, "exp", 2, "exponent applied element-wise")
	_ = cmd.MarkFlagRequired("a")

	return cmd
}

func newTransposeCmd(a *app) *cobra.Command {
	var pathA string
	cmd := &cobra.Command{
		Use:   "transpose",
		Short: "Transpose A",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			x, err := a.load(pathA)
			if err != nil {
				return err
			}
			// releases the cached transpose too
			defer x.Release()

			return a.run("transpose", x.Transpose)
		},
	}
	operandFlags(cmd.Flags(), &pathA, nil, false)
	_ = cmd.MarkFlagRequired("a")

	return cmd
}

// load reads one operand from a file or stdin.
func (a *app) load(path string) (*matrix.Dense, error) {
	var r io.Reader = a.in
	if path != stdinName {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	rows, err := gridtext.Read(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return a.engine.New(rows)
}

// run times op and prints the report. The result is released afterwards
// unless it is a cached transpose, whose owner releases it.
func (a *app) run(name string, op func() (*matrix.Dense, error)) error {
	start := time.Now()
	res, err := op()
	elapsed := time.Since(start)
	if err != nil {
		return err
	}
	defer res.Release()

	a.log.Info("operation done",
		slog.String("op", name),
		slog.Int("rows", res.Rows()),
		slog.Int("cols", res.Cols()),
		slog.Duration("elapsed", elapsed))

	return writeReport(a.out, res, elapsed)
}

// writeReport prints the result block, elapsed time and memory footprint.
func writeReport(w io.Writer, res *matrix.Dense, elapsed time.Duration) error {
	_, err := fmt.Fprintf(w, "Result:\n%s\n\nTime taken: %.2f ms\nMemory usage: %.2f MB\n",
		res.Format(),
		float64(elapsed)/float64(time.Millisecond),
		res.MemoryFootprintMB())

	return err
}
