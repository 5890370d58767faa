// SPDX-License-Identifier: MIT

package bufpool

import "runtime"

// bytesPerMB converts byte counts to MiB for reporting.
const bytesPerMB = 1024 * 1024

// Stats is a point-in-time snapshot of pool activity.
type Stats struct {
	Capacity    int    // per-key shelf bound
	Shelves     int    // keys with at least one free block
	Blocks      int    // free blocks across all keys
	Bytes       int64  // storage held by free blocks
	Hits        uint64 // Acquire served from a shelf
	Misses      uint64 // Acquire that allocated
	Releases    uint64 // successful Release calls
	Discards    uint64 // released blocks dropped because the shelf was full
	Corruptions uint64 // detected lease violations
}

// Stats returns counters and current occupancy.
// Occupancy is summed shelf by shelf, so it is consistent per key only.
func (p *Pool) Stats() Stats {
	s := Stats{
		Capacity:    p.capacity,
		Hits:        p.hits.Load(),
		Misses:      p.misses.Load(),
		Releases:    p.releases.Load(),
		Discards:    p.discards.Load(),
		Corruptions: p.corruptions.Load(),
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	for k, sh := range p.shelves {
		sh.mu.Lock()
		n := len(sh.free)
		sh.mu.Unlock()
		if n == 0 {
			continue
		}
		s.Shelves++
		s.Blocks += n
		s.Bytes += int64(n) * k.Bytes()
	}

	return s
}

// MemoryStats reports process memory as seen by the Go runtime, in MiB.
type MemoryStats struct {
	HeapAllocMB float64 // live heap objects
	HeapInuseMB float64 // heap spans in use
	HeapIdleMB  float64 // heap spans waiting to be reused or returned
	SysMB       float64 // total obtained from the OS
	NumGC       uint32  // completed GC cycles
}

// ReadMemory samples runtime.MemStats. It stops the world briefly; do not
// call it on hot paths.
func ReadMemory() MemoryStats {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	return MemoryStats{
		HeapAllocMB: float64(ms.HeapAlloc) / bytesPerMB,
		HeapInuseMB: float64(ms.HeapInuse) / bytesPerMB,
		HeapIdleMB:  float64(ms.HeapIdle) / bytesPerMB,
		SysMB:       float64(ms.Sys) / bytesPerMB,
		NumGC:       ms.NumGC,
	}
}
