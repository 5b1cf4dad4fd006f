package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigEnv(t *testing.T) {
	t.Setenv("SDF_WORKERS", "3")
	t.Setenv("SDF_SPACING", "4")
	t.Setenv("SDF_NO_COLOR", "true")
	t.Setenv("SDF_LOG_LEVEL", "debug")

	cfg, err := loadConfig(rootCmd)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	err = cfg.Validate()
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, 4, cfg.Spacing)
	assert.True(t, cfg.NoColor)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfigEnvRejectsBadLevel(t *testing.T) {
	t.Setenv("SDF_LOG_LEVEL", "loud")

	_, err := loadConfig(rootCmd)
	require.Error(t, err)
}

func TestLoadConfigYAML(t *testing.T) {
	dummyConfig := "workers: 5\nspacing: 2\nlog_level: warn\n"
	dummyConfigFile := filepath.Join(t.TempDir(), "config.yaml")
	err := os.WriteFile(dummyConfigFile, []byte(dummyConfig), 0o644)
	if err != nil {
		t.Fatalf("Failed to write dummy config file: %v", err)
	}

	rootCmd.PersistentFlags().Set("config", dummyConfigFile)

	cfg, err := loadConfig(rootCmd)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 5, cfg.Workers)
	assert.Equal(t, 2, cfg.Spacing)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.False(t, cfg.NoColor)
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"garbage", slog.LevelInfo},
	}
	for _, tc := range tests {
		if got := parseLogLevel(tc.in); got != tc.want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
