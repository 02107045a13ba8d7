// Package observability exposes runtime self-stats for the status endpoint.
package observability

import (
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/process"
)

// ProcessStats aggregates the metrics served by /api/status.
type ProcessStats struct {
	PID           int     `json:"pid"`
	Status        string  `json:"status"`
	CPUPercent    float64 `json:"cpu_percent"`
	RSSBytes      uint64  `json:"rss_bytes"`
	AllocMemMb    uint64  `json:"alloc_mem_mb"`
	NumGC         uint32  `json:"num_gc"`
	Goroutines    int     `json:"goroutines"`
	UptimeSeconds float64 `json:"uptime_seconds"`

	// pipeline gauges
	TrackedSenders int `json:"tracked_senders"`
	ReferenceRows  int `json:"reference_rows"`
}

var startedAt = time.Now()

// Collect retrieves technical metrics (memory, CPU, OS status) for the
// current process. The pipeline gauges are left to the caller.
func Collect() (ProcessStats, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return ProcessStats{}, err
	}

	memInfo, err := p.MemoryInfo()
	if err != nil {
		return ProcessStats{}, err
	}
	cpuPercent, err := p.CPUPercent()
	if err != nil {
		return ProcessStats{}, err
	}
	status, err := p.Status()
	if err != nil {
		return ProcessStats{}, err
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	return ProcessStats{
		PID:           os.Getpid(),
		Status:        status,
		CPUPercent:    cpuPercent,
		RSSBytes:      memInfo.RSS,
		AllocMemMb:    mem.Alloc / 1024 / 1024,
		NumGC:         mem.NumGC,
		Goroutines:    runtime.NumGoroutine(),
		UptimeSeconds: time.Since(startedAt).Seconds(),
	}, nil
}
