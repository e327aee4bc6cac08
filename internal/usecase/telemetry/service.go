// Package telemetry builds point-in-time snapshots of host metrics for
// the dashboard. Collection never fails: any probe that errors
// degrades its section to zero values, and a broken process
// enumeration degrades to an empty process list.
package telemetry

import (
	"context"
	"log/slog"
	"sort"
	"time"
)

// cpuSampleWindow is how long the CPU utilization probe blocks to
// produce a representative instantaneous percentage instead of a
// since-boot average. One sample per request bounds staleness.
const cpuSampleWindow = 200 * time.Millisecond

// topProcessCount is how many processes the snapshot keeps, ranked by
// memory usage.
const topProcessCount = 5

// Load holds the 1/5/15 minute load averages.
type Load struct {
	Load1  float64 `json:"1m"`
	Load5  float64 `json:"5m"`
	Load15 float64 `json:"15m"`
}

// Memory reports virtual memory usage.
type Memory struct {
	Total   uint64  `json:"total"`
	Used    uint64  `json:"used"`
	Percent float64 `json:"percent"`
}

// Disk reports usage of the root filesystem.
type Disk struct {
	Total   uint64  `json:"total"`
	Used    uint64  `json:"used"`
	Percent float64 `json:"percent"`
}

// Network reports cumulative transfer counters across all interfaces.
type Network struct {
	BytesSent uint64 `json:"bytes_sent"`
	BytesRecv uint64 `json:"bytes_recv"`
}

// ProcessSample is one process observed during enumeration. Name falls
// back to "(unknown)" when the OS will not reveal it.
type ProcessSample struct {
	PID           int32   `json:"pid"`
	Name          string  `json:"name"`
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
}

// Snapshot is an immutable point-in-time read of the host, built fresh
// on every request and never persisted.
type Snapshot struct {
	Time          string          `json:"time"`
	Load          Load            `json:"load"`
	CPUPercent    float64         `json:"cpu_percent"`
	Memory        Memory          `json:"memory"`
	Disk          Disk            `json:"disk"`
	UptimeSeconds int64           `json:"uptime_seconds"`
	Processes     []ProcessSample `json:"processes"`
	Network       Network         `json:"network"`
}

// SystemReader abstracts the OS probes the collector composes.
// Implementations skip (not fail on) individual processes that
// disappear, deny access, or become zombies mid-enumeration.
type SystemReader interface {
	LoadAvg(ctx context.Context) (Load, error)
	CPUPercent(ctx context.Context, window time.Duration) (float64, error)
	Memory(ctx context.Context) (Memory, error)
	Disk(ctx context.Context) (Disk, error)
	Network(ctx context.Context) (Network, error)
	BootTime(ctx context.Context) (uint64, error)
	Processes(ctx context.Context) ([]ProcessSample, error)
}

// Collector assembles telemetry snapshots from a SystemReader.
type Collector struct {
	reader SystemReader
	logger *slog.Logger
	now    func() time.Time
}

// NewCollector creates a Collector over the given reader.
func NewCollector(reader SystemReader, logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Collector{reader: reader, logger: logger, now: time.Now}
}

// Collect builds a snapshot. It has no failure mode: probe errors are
// logged and their sections zeroed, keeping /api/server-stats a
// guaranteed 200.
func (c *Collector) Collect(ctx context.Context) Snapshot {
	now := c.now().UTC()
	snap := Snapshot{
		Time:      now.Format(time.RFC3339Nano),
		Processes: []ProcessSample{},
	}

	if load, err := c.reader.LoadAvg(ctx); err == nil {
		snap.Load = load
	} else {
		c.logger.Warn("load average probe failed", slog.Any("error", err))
	}

	// Blocks for the sampling window; acceptable once per request.
	if cpu, err := c.reader.CPUPercent(ctx, cpuSampleWindow); err == nil {
		snap.CPUPercent = clampPercent(cpu)
	} else {
		c.logger.Warn("cpu probe failed", slog.Any("error", err))
	}

	if mem, err := c.reader.Memory(ctx); err == nil {
		mem.Percent = clampPercent(mem.Percent)
		snap.Memory = mem
	} else {
		c.logger.Warn("memory probe failed", slog.Any("error", err))
	}

	if disk, err := c.reader.Disk(ctx); err == nil {
		disk.Percent = clampPercent(disk.Percent)
		snap.Disk = disk
	} else {
		c.logger.Warn("disk probe failed", slog.Any("error", err))
	}

	if nw, err := c.reader.Network(ctx); err == nil {
		snap.Network = nw
	} else {
		c.logger.Warn("network probe failed", slog.Any("error", err))
	}

	if boot, err := c.reader.BootTime(ctx); err == nil {
		uptime := now.Unix() - int64(boot)
		if uptime < 0 {
			// Boot time reporting can be momentarily inconsistent
			// with the current clock.
			uptime = 0
		}
		snap.UptimeSeconds = uptime
	} else {
		c.logger.Warn("boot time probe failed", slog.Any("error", err))
	}

	procs, err := c.reader.Processes(ctx)
	if err != nil {
		// Graceful degradation: a broken enumeration yields an empty
		// list, never an aborted snapshot.
		c.logger.Warn("process enumeration failed", slog.Any("error", err))
		return snap
	}
	snap.Processes = topByMemory(procs, topProcessCount)

	return snap
}

// topByMemory returns the top n samples by memory_percent, descending.
// The sort is stable so ties keep their original enumeration order.
func topByMemory(procs []ProcessSample, n int) []ProcessSample {
	sorted := make([]ProcessSample, len(procs))
	copy(sorted, procs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MemoryPercent > sorted[j].MemoryPercent
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func clampPercent(v float64) float64 {
	if v != v || v < 0 { // NaN or negative
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
