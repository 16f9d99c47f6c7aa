// Package resources reports point-in-time CPU and memory usage for a
// hap's process, powering the verbose detail panel ("show -v").
package resources

import (
	"time"

	"github.com/shirou/gopsutil/v3/process"
)

// sampleWindow is how long For blocks sampling CPU load over. A
// one-shot CLI invocation has no background collector to diff against,
// so it takes this one blocking sample instead.
const sampleWindow = 200 * time.Millisecond

// Usage is a single resource snapshot for one process.
type Usage struct {
	CPUPercent float64
	RSSBytes   uint64
}

// For samples pid's current CPU percent and resident set size. Returns
// a zero Usage and no error when pid no longer exists, since a hap's
// process can exit between the status read and the sample.
func For(pid int) (Usage, error) {
	if pid <= 0 {
		return Usage{}, nil
	}
	proc, err := process.NewProcess(int32(pid))
	if err != nil {
		return Usage{}, nil
	}

	cpuPct, err := proc.Percent(sampleWindow)
	if err != nil {
		cpuPct = 0
	}

	var rss uint64
	if mi, err := proc.MemoryInfo(); err == nil && mi != nil {
		rss = mi.RSS
	}

	return Usage{CPUPercent: cpuPct, RSSBytes: rss}, nil
}

// ForAll samples every pid in pids. For reports a missing or invalid pid
// as a zero Usage rather than an error, so every pid gets an entry.
// The caller supplies a stable ordering; results are keyed by pid so the
// mapping back to a hap is the caller's responsibility.
func ForAll(pids []int) map[int]Usage {
	out := make(map[int]Usage, len(pids))
	for _, pid := range pids {
		u, err := For(pid)
		if err != nil {
			continue
		}
		out[pid] = u
	}
	return out
}
