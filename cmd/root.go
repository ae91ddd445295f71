package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"rvsalt/config"
	"rvsalt/database"
	"rvsalt/logger"

	"github.com/spf13/cobra"
)

var (
	cfgFile        string
	dbPath         string
	dataDirFlag    string
	appLogPathFlag string
	logLevelFlag   string
)

func expandTildeCmd(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

var rootCmd = &cobra.Command{
	Use:   "rvsalt",
	Short: "Virtualization inventory analytics over RVTools-style exports",
	Long: `rvsalt ingests inventory export files (one JSON file per vCenter source)
into SQLite and serves an analytics dashboard: VM/host/datastore browsing,
risk and right-sizing analysis, disaster-recovery pairing and CSV reports.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Init(cfgFile, appLogPathFlag, logLevelFlag); err != nil {
			return fmt.Errorf("failed to initialize config in PersistentPreRunE: %w", err)
		}

		if dataDirFlag != "" {
			expanded, err := expandTildeCmd(dataDirFlag)
			if err != nil {
				logger.Error("Error expanding tilde in --data-dir flag '%s': %v. Using original.", dataDirFlag, err)
				expanded = dataDirFlag
			}
			config.AppConfig.Data.Dir = expanded
		}

		finalDBPath := dbPath
		if finalDBPath == "" {
			finalDBPath = config.AppConfig.Database.Path
		}
		expanded, err := expandTildeCmd(finalDBPath)
		if err != nil {
			logger.Error("Error expanding tilde in database path '%s': %v. Using original.", finalDBPath, err)
		} else {
			finalDBPath = expanded
		}
		if finalDBPath == "" {
			logger.Error("PersistentPreRunE: Database path is empty after checking flag and config! Falling back to 'rvsalt.db' in CWD.")
			finalDBPath = "rvsalt.db"
		}

		if err := database.InitDB(finalDBPath); err != nil {
			return fmt.Errorf("failed to initialize database at %s: %w", finalDBPath, err)
		}

		if cmd.Name() != "completion" &&
			cmd.Name() != cobra.ShellCompRequestCmd &&
			cmd.Name() != cobra.ShellCompNoDescRequestCmd {
			logger.Info("Database initialized at: %s", finalDBPath)
		}
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/rvsalt/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "dbpath", "", "path to SQLite database file (overrides config/default)")
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "directory holding inventory export files (overrides config/default)")
	rootCmd.PersistentFlags().StringVar(&appLogPathFlag, "app-log", "", "path for the application log file (overrides config/default)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "log level: DEBUG, INFO, ERROR (overrides config/default)")
}
