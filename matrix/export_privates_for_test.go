// SPDX-License-Identifier: MIT

package matrix

// Test-Bridge (White-Box) for private state and options snapshot
//
// Purpose:
//   - Expose UNEXPORTED cache state and the resolved options to matrix_test ONLY.
//   - File name ends in _test.go, so it never ships in production builds.

// Panic message exports to avoid "magic strings" in tests.
const (
	PanicPoolNil_TestOnly          = panicPoolNil
	PanicWorkersInvalid_TestOnly   = panicWorkersInvalid
	PanicThresholdInvalid_TestOnly = panicThresholdInvalid
	PanicLoggerNil_TestOnly        = panicLoggerNil
)

// OptionsSnapshot is a read-only view of resolved Options.
type OptionsSnapshot struct {
	Pool      bool // a pool was resolved
	Workers   int
	Threshold int
	Logger    bool // a logger was resolved
}

// GatherOptionsSnapshot_TestOnly resolves opts like NewEngine does.
func GatherOptionsSnapshot_TestOnly(opts ...Option) OptionsSnapshot {
	o := gatherOptions(opts...)

	return OptionsSnapshot{
		Pool:      o.pool != nil,
		Workers:   o.workers,
		Threshold: o.threshold,
		Logger:    o.logger != nil,
	}
}

// IsBorrowed_TestOnly reports whether m is a cached transpose owned by a parent.
func IsBorrowed_TestOnly(m *Dense) bool { return m.borrowed }

// CachedTranspose_TestOnly returns the cached transpose without computing it.
func CachedTranspose_TestOnly(m *Dense) *Dense { return m.tcache.Load() }

// Reclaim_TestOnly runs the cleanup path on m's lease, as the runtime would
// once m is unreachable.
func Reclaim_TestOnly(m *Dense) { reclaim(m.lease) }

// BroadcastDim_TestOnly forwards to the per-dimension broadcast rule.
func BroadcastDim_TestOnly(x, y int) (int, bool) { return broadcastDim(x, y) }
