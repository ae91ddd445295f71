package cmd

import (
	"fmt"

	"rvsalt/config"
	"rvsalt/ingest"
	"rvsalt/logger"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import [dir]",
	Short: "Imports every inventory export file from the data directory",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dataDir := config.AppConfig.Data.Dir
		if len(args) == 1 {
			dataDir = args[0]
		}

		logger.Info("Import Command: Importing export files from %s", dataDir)
		if err := ingest.LoadDir(dataDir); err != nil {
			return fmt.Errorf("import failed: %w", err)
		}
		fmt.Printf("Import complete from %s\n", dataDir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}
