package config

import (
	"fmt"
	"os"
	"path/filepath"
	"rvsalt/logger"
	"strings"

	"github.com/spf13/viper"
)

type DefaultPaths struct {
	ConfigDir  string
	LogPathApp string
	DBPath     string
	DataDir    string
	LogLevel   string
}

type Configuration struct {
	Database struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"database"`
	Server struct {
		Port    string `mapstructure:"port"`
		LogPath string `mapstructure:"log_path"`
	} `mapstructure:"server"`
	Data struct {
		Dir string `mapstructure:"dir"`
	} `mapstructure:"data"`
	Logging struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"logging"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
}

// AnalysisConfig holds the tunable thresholds used by the analysis passes.
type AnalysisConfig struct {
	SnapshotOldDays     int     `mapstructure:"snapshot_old_days"`
	LowCPUUsagePct      float64 `mapstructure:"low_cpu_usage_pct"`
	DefaultHostSpeedMHz float64 `mapstructure:"default_host_speed_mhz"`
	MinBIOSYear         int     `mapstructure:"min_bios_year"`
	SearchDebounceMs    int     `mapstructure:"search_debounce_ms"`
}

var AppConfig Configuration

func expandTilde(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

func GetDefaultConfigPaths() DefaultPaths {
	var paths DefaultPaths
	userConfigDirBase, err := os.UserConfigDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not get user config dir: %v. Using current directory.\n", err)
		userConfigDirBase = "."
	}

	userConfigDir, err := expandTilde(userConfigDirBase)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not expand tilde in user config dir '%s': %v. Using potentially literal path.\n", userConfigDirBase, err)
		userConfigDir = userConfigDirBase
	}

	paths.ConfigDir = filepath.Join(userConfigDir, "rvsalt")
	logDir := filepath.Join(paths.ConfigDir, "logs")

	paths.LogPathApp = filepath.Join(logDir, "app.log")
	paths.DBPath = filepath.Join(paths.ConfigDir, "rvsalt.db")
	paths.DataDir = filepath.Join(paths.ConfigDir, "data")
	paths.LogLevel = "INFO"
	return paths
}

func Init(cfgFile string, flagAppLogPath, flagLogLevel string) error {
	v := viper.New()

	defaults := GetDefaultConfigPaths()
	v.SetDefault("database.path", defaults.DBPath)
	v.SetDefault("server.port", "8650")
	v.SetDefault("server.log_path", defaults.LogPathApp)
	v.SetDefault("data.dir", defaults.DataDir)
	v.SetDefault("logging.level", defaults.LogLevel)
	v.SetDefault("analysis.snapshot_old_days", 7)
	v.SetDefault("analysis.low_cpu_usage_pct", 10.0)
	v.SetDefault("analysis.default_host_speed_mhz", 2400.0)
	v.SetDefault("analysis.min_bios_year", 2021)
	v.SetDefault("analysis.search_debounce_ms", 300)

	if cfgFile != "" {
		expanded, err := expandTilde(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to expand config file path '%s': %w", cfgFile, err)
		}
		v.SetConfigFile(expanded)
	} else {
		v.AddConfigPath(defaults.ConfigDir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// No config file is fine; defaults apply.
		} else if os.IsNotExist(err) {
			// Explicit --config path pointing at a missing file also falls back to defaults.
		} else {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Flags override whatever the file provided.
	if flagAppLogPath != "" {
		v.Set("server.log_path", flagAppLogPath)
	}
	if flagLogLevel != "" {
		v.Set("logging.level", flagLogLevel)
	}

	if err := v.Unmarshal(&AppConfig); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Re-initialize loggers with the resolved settings.
	if err := logger.InitGlobalLoggers(AppConfig.Server.LogPath, AppConfig.Logging.Level); err != nil {
		return fmt.Errorf("failed to re-initialize loggers from config: %w", err)
	}

	logger.Info("Configuration loaded. DB: %s, Data dir: %s, Port: %s", AppConfig.Database.Path, AppConfig.Data.Dir, AppConfig.Server.Port)
	return nil
}
