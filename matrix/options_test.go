// SPDX-License-Identifier: MIT
package matrix_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/densemat/bufpool"
	"github.com/katalvlaran/densemat/matrix"
)

func TestDefaultOptions_Documented(t *testing.T) {
	o := matrix.GatherOptionsSnapshot_TestOnly()

	assert.True(t, o.Pool, "default pool resolved")
	assert.True(t, o.Logger, "default logger resolved")
	assert.Equal(t, matrix.DefaultWorkers, o.Workers)
	assert.Equal(t, matrix.DefaultParallelThreshold, o.Threshold)
	assert.Equal(t, 1_000_000, matrix.DefaultParallelThreshold)
}

func TestOptions_LastWriterWins(t *testing.T) {
	o := matrix.GatherOptionsSnapshot_TestOnly(
		matrix.WithWorkers(2),
		matrix.WithParallelThreshold(10),
		matrix.WithWorkers(3),
		nil, // ignored
	)
	assert.Equal(t, 3, o.Workers)
	assert.Equal(t, 10, o.Threshold)
}

func TestOptions_Panics(t *testing.T) {
	assert.PanicsWithValue(t, matrix.PanicPoolNil_TestOnly, func() { matrix.WithPool(nil) })
	assert.PanicsWithValue(t, matrix.PanicWorkersInvalid_TestOnly, func() { matrix.WithWorkers(-1) })
	assert.PanicsWithValue(t, matrix.PanicThresholdInvalid_TestOnly, func() { matrix.WithParallelThreshold(-1) })
	assert.PanicsWithValue(t, matrix.PanicLoggerNil_TestOnly, func() { matrix.WithLogger(nil) })
}

func TestNewEngine_ResolvesOptions(t *testing.T) {
	p := bufpool.New(bufpool.WithCapacity(3))
	e := matrix.NewEngine(
		matrix.WithPool(p),
		matrix.WithWorkers(5),
		matrix.WithParallelThreshold(42),
		matrix.WithLogger(slog.New(slog.DiscardHandler)),
	)
	assert.Same(t, p, e.Pool())
	assert.Equal(t, 5, e.Workers())
	assert.Equal(t, 42, e.ParallelThreshold())

	// zero workers resolves to the CPU count
	assert.GreaterOrEqual(t, matrix.NewEngine(matrix.WithPool(p)).Workers(), 1)
}
