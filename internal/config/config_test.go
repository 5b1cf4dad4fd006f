package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultWorkers, cfg.Workers)
	assert.Equal(t, DefaultSpacing, cfg.Spacing)
	assert.False(t, cfg.NoColor)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"zero workers", func(c *Config) { c.Workers = 0 }, false},
		{"negative workers", func(c *Config) { c.Workers = -1 }, true},
		{"zero spacing", func(c *Config) { c.Spacing = 0 }, true},
		{"spacing too wide", func(c *Config) { c.Spacing = 65 }, true},
		{"empty log level", func(c *Config) { c.LogLevel = "" }, false},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
