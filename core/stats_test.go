package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rvsalt/tabular"
)

func TestBuildStatsPerSourceAndTotals(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	sources := []SourceSheets{
		{
			Name: "ist-dc",
			VInfo: []tabular.Record{
				{"VM": "web01", "Powerstate": "poweredOn", "Memory": 8192.0, "CPUs": 4.0, "Total disk capacity MiB": 102400.0},
				{"VM": "db01", "Powerstate": "poweredOn", "Memory": 16384.0, "CPUs": 8.0, "Total disk capacity MiB": 204800.0},
				{"VM": "tmpl-w2k22", "Powerstate": "poweredOff", "Template": "True", "Memory": 4096.0, "CPUs": 2.0, "Total disk capacity MiB": 61440.0},
			},
			VSnapshot: []tabular.Record{
				{"VM": "web01", "Date / time": "2026-03-14 09:00:00"},
				{"VM": "db01", "Date / time": "2026-02-01 09:00:00"},
			},
		},
		{
			Name: "ank-dc",
			VInfo: []tabular.Record{
				{"VM": "app01", "Powerstate": "poweredOff", "Memory": 2048.0, "CPUs": 2.0, "Total disk capacity MiB": 40960.0},
			},
		},
	}

	stats := BuildStats(sources, 7, now)
	require.Len(t, stats.Sources, 2)

	ist := stats.Sources[0]
	assert.Equal(t, "ist-dc", ist.Name)
	assert.Equal(t, 3, ist.VMs)
	assert.Equal(t, 2, ist.PoweredOn)
	assert.Equal(t, 1, ist.PoweredOff)
	assert.Equal(t, 1, ist.Templates)
	assert.Equal(t, 14, ist.TotalCPU)
	assert.InDelta(t, 28.0, ist.TotalMemoryGB, 0.01)
	assert.InDelta(t, 360.0, ist.TotalDiskGB, 0.01)
	assert.Equal(t, 2, ist.Snapshots)
	assert.Equal(t, 1, ist.OldSnapshots, "only the February snapshot is past the 7 day threshold")

	total := stats.Total
	assert.Equal(t, "total", total.Name)
	assert.Equal(t, 4, total.VMs)
	assert.Equal(t, 2, total.PoweredOn)
	assert.Equal(t, 2, total.PoweredOff)
	assert.Equal(t, 16, total.TotalCPU)
	assert.InDelta(t, 30.0, total.TotalMemoryGB, 0.01)
	assert.Equal(t, 2, total.Snapshots)
	assert.Equal(t, 1, total.OldSnapshots)
}

func TestBuildStatsTextNumbers(t *testing.T) {
	// Memory exported as Turkish-formatted text still counts.
	sources := []SourceSheets{{
		Name: "x",
		VInfo: []tabular.Record{
			{"VM": "a", "Powerstate": "poweredOn", "Memory": "16.384", "CPUs": "8"},
		},
	}}
	stats := BuildStats(sources, 7, time.Now())
	assert.InDelta(t, 16.0, stats.Sources[0].TotalMemoryGB, 0.01)
	assert.Equal(t, 8, stats.Sources[0].TotalCPU)
}

func TestBuildStatsUnparsableSnapshotDateIgnored(t *testing.T) {
	sources := []SourceSheets{{
		Name:      "x",
		VSnapshot: []tabular.Record{{"VM": "a", "Date / time": "not a date"}},
	}}
	stats := BuildStats(sources, 7, time.Now())
	assert.Equal(t, 1, stats.Sources[0].Snapshots)
	assert.Equal(t, 0, stats.Sources[0].OldSnapshots)
}
