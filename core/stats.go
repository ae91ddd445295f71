package core

import (
	"time"

	"rvsalt/models"
	"rvsalt/tabular"
)

// SourceSheets bundles the sheets one source contributes to the stats view.
type SourceSheets struct {
	Name      string
	VInfo     []tabular.Record
	VSnapshot []tabular.Record
}

// BuildStats computes the dashboard summary per source plus totals.
// Snapshots older than oldDays relative to now count as old.
func BuildStats(sources []SourceSheets, oldDays int, now time.Time) models.Stats {
	stats := models.Stats{Sources: []models.SourceStats{}}
	stats.Total.Name = "total"
	threshold := now.AddDate(0, 0, -oldDays)

	for _, src := range sources {
		s := models.SourceStats{Name: src.Name, VMs: len(src.VInfo)}

		for _, vm := range src.VInfo {
			switch vm.Text("Powerstate") {
			case "poweredOn":
				s.PoweredOn++
			case "poweredOff":
				s.PoweredOff++
			}
			if boolField(vm, "Template") {
				s.Templates++
			}
			s.TotalMemoryGB += numField(vm, "Memory") / 1024
			s.TotalCPU += int(numField(vm, "CPUs"))
			s.TotalDiskGB += numField(vm, "Total disk capacity MiB") / 1024
		}
		s.TotalMemoryGB = round2(s.TotalMemoryGB)
		s.TotalDiskGB = round2(s.TotalDiskGB)

		s.Snapshots = len(src.VSnapshot)
		for _, snap := range src.VSnapshot {
			taken := parseTime(snap.Text("Date / time"))
			if !taken.IsZero() && taken.Before(threshold) {
				s.OldSnapshots++
			}
		}

		stats.Sources = append(stats.Sources, s)
		stats.Total.VMs += s.VMs
		stats.Total.PoweredOn += s.PoweredOn
		stats.Total.PoweredOff += s.PoweredOff
		stats.Total.Templates += s.Templates
		stats.Total.TotalMemoryGB = round2(stats.Total.TotalMemoryGB + s.TotalMemoryGB)
		stats.Total.TotalCPU += s.TotalCPU
		stats.Total.TotalDiskGB = round2(stats.Total.TotalDiskGB + s.TotalDiskGB)
		stats.Total.Snapshots += s.Snapshots
		stats.Total.OldSnapshots += s.OldSnapshots
	}
	return stats
}
