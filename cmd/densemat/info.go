// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/sys/cpu"

	"github.com/katalvlaran/densemat/bufpool"
)

// feature is one CPU capability as reported by x/sys/cpu.
type feature struct {
	name string
	has  bool
}

// cpuFeatures lists the vector extensions relevant to float64 kernels on the
// running architecture.
func cpuFeatures() []feature {
	switch runtime.GOARCH {
	case "amd64", "386":
		return []feature{
			{"sse2", cpu.X86.HasSSE2},
			{"sse41", cpu.X86.HasSSE41},
			{"avx", cpu.X86.HasAVX},
			{"avx2", cpu.X86.HasAVX2},
			{"fma", cpu.X86.HasFMA},
			{"avx512f", cpu.X86.HasAVX512F},
		}
	case "arm64":
		return []feature{
			{"asimd", cpu.ARM64.HasASIMD},
			{"fphp", cpu.ARM64.HasFPHP},
			{"sve", cpu.ARM64.HasSVE},
		}
	default:
		return nil
	}
}

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show effective configuration, CPU features, pool and memory statistics",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			a.info()

			return nil
		},
	}
}

func (a *app) info() {
	w := a.out
	fmt.Fprintf(w, "run id:             %s\n", a.cfg.InstanceID)
	fmt.Fprintf(w, "platform:           %s/%s, %d CPUs\n", runtime.GOOS, runtime.GOARCH, runtime.NumCPU())
	fmt.Fprintf(w, "workers:            %d\n", a.engine.Workers())
	fmt.Fprintf(w, "parallel threshold: %d\n", a.engine.ParallelThreshold())
	fmt.Fprintf(w, "log level:          %s (%s)\n", a.cfg.LogLevel, a.cfg.LogFormat)

	enabled := lo.FilterMap(cpuFeatures(), func(f feature, _ int) (string, bool) {
		return f.name, f.has
	})
	if len(enabled) == 0 {
		enabled = []string{"none detected"}
	}
	fmt.Fprintf(w, "cpu features:       %s\n", strings.Join(enabled, " "))

	writePoolStats(w, a.pool.Stats())
	mem := bufpool.ReadMemory()
	fmt.Fprintf(w, "heap alloc:         %.2f MB\n", mem.HeapAllocMB)
	fmt.Fprintf(w, "heap in use:        %.2f MB\n", mem.HeapInuseMB)
	fmt.Fprintf(w, "sys:                %.2f MB\n", mem.SysMB)
	fmt.Fprintf(w, "gc cycles:          %d\n", mem.NumGC)
}

// writePoolStats prints pool counters, one per line.
func writePoolStats(w io.Writer, s bufpool.Stats) {
	fmt.Fprintf(w, "pool capacity:      %d per shape\n", s.Capacity)
	fmt.Fprintf(w, "pool blocks:        %d in %d shapes (%.2f MB)\n", s.Blocks, s.Shelves, float64(s.Bytes)/(1024*1024))
	fmt.Fprintf(w, "pool hits/misses:   %d/%d\n", s.Hits, s.Misses)
	fmt.Fprintf(w, "pool releases:      %d (%d discarded)\n", s.Releases, s.Discards)
}
