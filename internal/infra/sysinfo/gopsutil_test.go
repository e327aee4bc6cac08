package sysinfo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"startpage/internal/infra/sysinfo"
)

// Smoke tests against the live host. They assert invariants, not
// values, so they hold on any machine.

func TestReaderMemory(t *testing.T) {
	mem, err := sysinfo.NewReader().Memory(context.Background())
	require.NoError(t, err)
	assert.Greater(t, mem.Total, uint64(0))
	assert.GreaterOrEqual(t, mem.Percent, 0.0)
	assert.LessOrEqual(t, mem.Percent, 100.0)
}

func TestReaderCPUPercent(t *testing.T) {
	pct, err := sysinfo.NewReader().CPUPercent(context.Background(), 50*time.Millisecond)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, pct, 0.0)
}

func TestReaderProcessesSkipDoesNotFail(t *testing.T) {
	samples, err := sysinfo.NewReader().Processes(context.Background())
	require.NoError(t, err)
	// At minimum the test process itself is visible.
	assert.NotEmpty(t, samples)
	for _, s := range samples {
		assert.NotEmpty(t, s.Name)
		assert.GreaterOrEqual(t, s.MemoryPercent, 0.0)
		assert.GreaterOrEqual(t, s.CPUPercent, 0.0)
	}
}

func TestReaderBootTime(t *testing.T) {
	boot, err := sysinfo.NewReader().BootTime(context.Background())
	require.NoError(t, err)
	assert.LessOrEqual(t, boot, uint64(time.Now().Unix()))
}
