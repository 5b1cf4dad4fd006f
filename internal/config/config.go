// Package config carries the user-level preferences of the CLI. Project
// state lives in the data manifest; nothing here is project-specific.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	DefaultWorkers = 8
	DefaultSpacing = 6

	// config file lives at ~/.scidataflow/config.yaml
	ConfigDirName  = ".scidataflow"
	ConfigFileName = "config"
	ConfigFileType = "yaml"

	EnvPrefix = "SDF"
)

var (
	home, _          = os.UserHomeDir()
	DefaultConfigDir = filepath.Join(home, ConfigDirName)
)

// Config is the resolved CLI configuration after merging defaults, the
// config file, environment and flags.
type Config struct {
	// Workers caps concurrent fingerprint computations per scan.
	Workers int `mapstructure:"workers"`
	// Spacing is the number of blanks between report columns.
	Spacing int `mapstructure:"spacing"`
	// NoColor forces plain output even on a terminal.
	NoColor bool `mapstructure:"no_color"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level"`
	// LogFile duplicates log output into a file when set.
	LogFile string `mapstructure:"log_file"`
}

func Default() *Config {
	return &Config{
		Workers:  DefaultWorkers,
		Spacing:  DefaultSpacing,
		LogLevel: "info",
	}
}

func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if c.Spacing < 1 || c.Spacing > 64 {
		return fmt.Errorf("spacing must be between 1 and 64, got %d", c.Spacing)
	}
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return nil
}
