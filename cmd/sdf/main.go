package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/apraga/scidataflow/internal/config"
	"github.com/apraga/scidataflow/internal/utils"
	"github.com/apraga/scidataflow/internal/version"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var home, _ = os.UserHomeDir()

// cliConfig is resolved once in the root PersistentPreRunE and read by
// the subcommands. Tests that build their own command tree get defaults.
var cliConfig = config.Default()

var rootCmd = &cobra.Command{
	Use:     "sdf",
	Short:   "SciDataFlow CLI",
	Long:    "Track the state of a project's data files against its manifest and remotes.",
	Version: version.Detailed(),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if err := setupLogger(cfg); err != nil {
			return err
		}
		cliConfig = cfg
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().SortFlags = false
	rootCmd.PersistentFlags().StringP("config", "c", "", "SciDataFlow config file (default ~/.scidataflow/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-file", "", "duplicate logs into a file")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")
}

func main() {
	// pick up SDF_* overrides from a local .env during development
	_ = godotenv.Load()

	// Setup root context with signal handling
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	// config path
	if cmd.Flag("config").Changed {
		viper.SetConfigFile(cmd.Flag("config").Value.String())
	} else {
		viper.AddConfigPath(config.DefaultConfigDir)                    // Then check .scidataflow
		viper.AddConfigPath(filepath.Join(home, ".config/scidataflow")) // Then check .config/scidataflow
		viper.SetConfigName(config.ConfigFileName)                      // Name of config file (without extension)
		viper.SetConfigType(config.ConfigFileType)
	}

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		enoent := errors.Is(err, os.ErrNotExist)
		_, ok := err.(viper.ConfigFileNotFoundError)
		if !enoent && !ok {
			return nil, fmt.Errorf("config read '%s': %w", viper.ConfigFileUsed(), err)
		}
	}

	viper.SetDefault("workers", config.DefaultWorkers)
	viper.SetDefault("spacing", config.DefaultSpacing)

	// Bind flags to viper
	viper.BindPFlag("log_level", cmd.Flag("log-level"))
	viper.BindPFlag("log_file", cmd.Flag("log-file"))
	viper.BindPFlag("no_color", cmd.Flag("no-color"))

	// Set up environment variables
	viper.SetEnvPrefix(config.EnvPrefix)
	viper.AutomaticEnv()

	cfg := &config.Config{
		Workers:  viper.GetInt("workers"),
		Spacing:  viper.GetInt("spacing"),
		NoColor:  viper.GetBool("no_color"),
		LogLevel: viper.GetString("log_level"),
		LogFile:  viper.GetString("log_file"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setupLogger(cfg *config.Config) error {
	level := parseLogLevel(cfg.LogLevel)

	stderrHandler := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05.000",
		NoColor:    cfg.NoColor || !isatty.IsTerminal(os.Stderr.Fd()),
	})

	if cfg.LogFile == "" {
		slog.SetDefault(slog.New(stderrHandler))
		return nil
	}

	logPath, err := utils.ResolvePath(cfg.LogFile)
	if err != nil {
		return fmt.Errorf("log file: %w", err)
	}
	if err := utils.EnsureParent(logPath); err != nil {
		return fmt.Errorf("log file: %w", err)
	}
	// stays open for the lifetime of the process
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("log file: %w", err)
	}
	fileHandler := slog.NewTextHandler(file, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})

	slog.SetDefault(slog.New(utils.NewMultiLogHandler(stderrHandler, fileHandler)))
	return nil
}

func parseLogLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
