// SPDX-License-Identifier: MIT
package config_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"runtime"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/densemat/bufpool"
	"github.com/katalvlaran/densemat/internal/config"
	"github.com/katalvlaran/densemat/matrix"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := config.LoadFrom(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.Workers)
	assert.Equal(t, 1_000_000, cfg.ParallelThreshold)
	assert.Equal(t, bufpool.DefaultCapacity, cfg.PoolCapacity)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, config.FormatText, cfg.LogFormat)
	_, err = uuid.Parse(cfg.InstanceID)
	require.NoError(t, err, "instance id is generated")
	assert.Equal(t, runtime.NumCPU(), cfg.EffectiveWorkers())
}

func TestLoadFrom_Values(t *testing.T) {
	cfg, err := config.LoadFrom(map[string]string{
		"DENSEMAT_PARALLEL_THRESHOLD": "64",
		"DENSEMAT_POOL_CAPACITY":      "5",
		"DENSEMAT_LOG_LEVEL":          "debug",
		"DENSEMAT_LOG_FORMAT":         "json",
		"DENSEMAT_INSTANCE_ID":        "run-1",
	})
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.ParallelThreshold)
	assert.Equal(t, 5, cfg.PoolCapacity)
	assert.Equal(t, "run-1", cfg.InstanceID)
	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestEffectiveWorkers_Precedence(t *testing.T) {
	cases := []struct {
		name string
		vars map[string]string
		want int
	}{
		{"explicit wins", map[string]string{"DENSEMAT_WORKERS": "3", "OMP_NUM_THREADS": "7"}, 3},
		{"omp fallback", map[string]string{"OMP_NUM_THREADS": "7"}, 7},
		{"zero means unset", map[string]string{"DENSEMAT_WORKERS": "0", "OMP_NUM_THREADS": "2"}, 2},
		{"cpu count", map[string]string{}, runtime.NumCPU()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := config.LoadFrom(tc.vars)
			require.NoError(t, err)
			assert.Equal(t, tc.want, cfg.EffectiveWorkers())
		})
	}
}

func TestLoadFrom_Invalid(t *testing.T) {
	cases := []struct {
		name    string
		vars    map[string]string
		invalid bool // ErrInvalid rather than a parse error
	}{
		{"workers negative", map[string]string{"DENSEMAT_WORKERS": "-1"}, true},
		{"omp negative", map[string]string{"OMP_NUM_THREADS": "-4"}, true},
		{"threshold negative", map[string]string{"DENSEMAT_PARALLEL_THRESHOLD": "-1"}, true},
		{"capacity negative", map[string]string{"DENSEMAT_POOL_CAPACITY": "-1"}, true},
		{"level", map[string]string{"DENSEMAT_LOG_LEVEL": "loud"}, true},
		{"format", map[string]string{"DENSEMAT_LOG_FORMAT": "xml"}, true},
		{"not a number", map[string]string{"DENSEMAT_WORKERS": "many"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := config.LoadFrom(tc.vars)
			require.Error(t, err)
			if tc.invalid {
				require.ErrorIs(t, err, config.ErrInvalid)
			}
		})
	}
}

func TestNewLogger_FormatsAndRunID(t *testing.T) {
	cfg, err := config.LoadFrom(map[string]string{
		"DENSEMAT_LOG_FORMAT":  "json",
		"DENSEMAT_INSTANCE_ID": "abc",
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	log, err := cfg.NewLogger(&buf)
	require.NoError(t, err)
	log.Info("hello")
	log.Debug("hidden at info")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "hello", rec["msg"])
	assert.Equal(t, "abc", rec["run_id"])

	cfg.LogFormat = config.FormatText
	buf.Reset()
	log, err = cfg.NewLogger(&buf)
	require.NoError(t, err)
	log.Info("hello")
	assert.Contains(t, buf.String(), "run_id=abc")
}

func TestEngineOptions_Wire(t *testing.T) {
	cfg, err := config.LoadFrom(map[string]string{
		"DENSEMAT_WORKERS":            "2",
		"DENSEMAT_PARALLEL_THRESHOLD": "10",
		"DENSEMAT_POOL_CAPACITY":      "4",
	})
	require.NoError(t, err)
	log := slog.New(slog.DiscardHandler)

	pool := bufpool.New(cfg.PoolOptions(log)...)
	e := matrix.NewEngine(cfg.EngineOptions(pool, log)...)
	assert.Equal(t, 4, pool.Capacity())
	assert.Same(t, pool, e.Pool())
	assert.Equal(t, 2, e.Workers())
	assert.Equal(t, 10, e.ParallelThreshold())
}
