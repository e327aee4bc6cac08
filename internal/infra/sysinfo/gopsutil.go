// Package sysinfo implements the telemetry SystemReader on top of
// gopsutil. It is the only package that talks to the OS directly.
package sysinfo

import (
	"context"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
	psnet "github.com/shirou/gopsutil/v4/net"
	"github.com/shirou/gopsutil/v4/process"

	"startpage/internal/usecase/telemetry"
)

// unknownProcessName substitutes for processes whose name the OS will
// not reveal.
const unknownProcessName = "(unknown)"

// Reader reads host metrics via gopsutil.
type Reader struct {
	// RootPath is the filesystem whose usage the disk probe reports.
	RootPath string
}

// NewReader returns a Reader probing the root filesystem.
func NewReader() *Reader {
	return &Reader{RootPath: "/"}
}

var _ telemetry.SystemReader = (*Reader)(nil)

// LoadAvg reads the 1/5/15 minute load averages.
func (r *Reader) LoadAvg(ctx context.Context) (telemetry.Load, error) {
	stats, err := load.AvgWithContext(ctx)
	if err != nil {
		return telemetry.Load{}, err
	}
	return telemetry.Load{Load1: stats.Load1, Load5: stats.Load5, Load15: stats.Load15}, nil
}

// CPUPercent samples total CPU utilization over the given window.
func (r *Reader) CPUPercent(ctx context.Context, window time.Duration) (float64, error) {
	percents, err := cpu.PercentWithContext(ctx, window, false)
	if err != nil {
		return 0, err
	}
	if len(percents) == 0 {
		return 0, nil
	}
	return percents[0], nil
}

// Memory reads virtual memory usage.
func (r *Reader) Memory(ctx context.Context) (telemetry.Memory, error) {
	stats, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return telemetry.Memory{}, err
	}
	return telemetry.Memory{Total: stats.Total, Used: stats.Used, Percent: stats.UsedPercent}, nil
}

// Disk reads usage of the configured root filesystem.
func (r *Reader) Disk(ctx context.Context) (telemetry.Disk, error) {
	stats, err := disk.UsageWithContext(ctx, r.RootPath)
	if err != nil {
		return telemetry.Disk{}, err
	}
	return telemetry.Disk{Total: stats.Total, Used: stats.Used, Percent: stats.UsedPercent}, nil
}

// Network reads cumulative transfer counters aggregated across
// interfaces.
func (r *Reader) Network(ctx context.Context) (telemetry.Network, error) {
	counters, err := psnet.IOCountersWithContext(ctx, false)
	if err != nil {
		return telemetry.Network{}, err
	}
	var nw telemetry.Network
	for _, ctr := range counters {
		nw.BytesSent += ctr.BytesSent
		nw.BytesRecv += ctr.BytesRecv
	}
	return nw, nil
}

// BootTime reads the host boot time as a unix timestamp.
func (r *Reader) BootTime(ctx context.Context) (uint64, error) {
	return host.BootTimeWithContext(ctx)
}

// Processes enumerates all processes. Any process that disappears,
// denies access, or becomes a zombie mid-scan is skipped, not failed
// on — this is a live system and processes come and go during the
// scan. Only the enumeration itself can return an error.
func (r *Reader) Processes(ctx context.Context) ([]telemetry.ProcessSample, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}

	samples := make([]telemetry.ProcessSample, 0, len(procs))
	for _, p := range procs {
		memPercent, err := p.MemoryPercentWithContext(ctx)
		if err != nil {
			// Gone, denied or zombie: skip it.
			continue
		}

		name, err := p.NameWithContext(ctx)
		if err != nil || name == "" {
			name = unknownProcessName
		}

		cpuPercent, err := p.CPUPercentWithContext(ctx)
		if err != nil {
			cpuPercent = 0
		}

		samples = append(samples, telemetry.ProcessSample{
			PID:           p.Pid,
			Name:          name,
			CPUPercent:    nonNegative(cpuPercent),
			MemoryPercent: nonNegative(float64(memPercent)),
		})
	}
	return samples, nil
}

func nonNegative(v float64) float64 {
	if v != v || v < 0 {
		return 0
	}
	return v
}
