package cmd

import (
	"fmt"
	"os"
	"time"

	"rvsalt/config"
	"rvsalt/core"
	"rvsalt/database"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Prints the per-source inventory summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		sources, err := database.GetAllSources()
		if err != nil {
			return fmt.Errorf("failed to list sources: %w", err)
		}
		if len(sources) == 0 {
			fmt.Println("No sources imported yet. Run 'rvsalt import' first.")
			return nil
		}

		sheets := make([]core.SourceSheets, 0, len(sources))
		for _, src := range sources {
			vinfo, err := database.GetSheetRows("vInfo", src.Name)
			if err != nil {
				return fmt.Errorf("failed to load vInfo for %s: %w", src.Name, err)
			}
			vsnapshot, err := database.GetSheetRows("vSnapshot", src.Name)
			if err != nil {
				return fmt.Errorf("failed to load vSnapshot for %s: %w", src.Name, err)
			}
			sheets = append(sheets, core.SourceSheets{Name: src.Name, VInfo: vinfo, VSnapshot: vsnapshot})
		}

		stats := core.BuildStats(sheets, config.AppConfig.Analysis.SnapshotOldDays, time.Now())

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Source", "VMs", "On", "Off", "Templates", "vCPU", "RAM GB", "Disk GB", "Snapshots", "Old"})
		for _, s := range stats.Sources {
			t.AppendRow(table.Row{
				s.Name, s.VMs, s.PoweredOn, s.PoweredOff, s.Templates,
				s.TotalCPU, s.TotalMemoryGB, s.TotalDiskGB, s.Snapshots, s.OldSnapshots,
			})
		}
		t.AppendFooter(table.Row{
			"TOTAL", stats.Total.VMs, stats.Total.PoweredOn, stats.Total.PoweredOff, stats.Total.Templates,
			stats.Total.TotalCPU, stats.Total.TotalMemoryGB, stats.Total.TotalDiskGB,
			stats.Total.Snapshots, stats.Total.OldSnapshots,
		})
		t.SetStyle(table.StyleLight)
		t.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
