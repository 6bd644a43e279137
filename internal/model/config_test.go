package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 60*time.Second, cfg.Sampler.Interval)
	assert.Equal(t, "Local", cfg.Sampler.Timezone)
	assert.Empty(t, cfg.Sampler.TargetSSID)
	assert.Equal(t, "en0", cfg.Detector.Interface)
	assert.Equal(t, 10*time.Second, cfg.Detector.Timeout)
	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Empty(t, cfg.Storage.Path)
	assert.Equal(t, "127.0.0.1:4680", cfg.Server.Listen)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)

	require.NoError(t, cfg.Validate())
	assert.ErrorIs(t, cfg.RequireTarget(), ErrTargetRequired)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults",
			mutate: func(*Config) {},
		},
		{
			name:    "interval too short",
			mutate:  func(c *Config) { c.Sampler.Interval = 500 * time.Millisecond },
			wantErr: "below the minimum",
		},
		{
			name:    "unknown timezone",
			mutate:  func(c *Config) { c.Sampler.Timezone = "Mars/Olympus_Mons" },
			wantErr: "unknown timezone",
		},
		{
			name:   "utc timezone",
			mutate: func(c *Config) { c.Sampler.Timezone = "UTC" },
		},
		{
			name:    "zero detector timeout",
			mutate:  func(c *Config) { c.Detector.Timeout = 0 },
			wantErr: "detector timeout",
		},
		{
			name:    "unknown backend",
			mutate:  func(c *Config) { c.Storage.Backend = "postgres" },
			wantErr: "unknown storage backend",
		},
		{
			name:   "bolt backend",
			mutate: func(c *Config) { c.Storage.Backend = BackendBolt },
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.Log.Level = "verbose" },
			wantErr: "unknown log level",
		},
		{
			name:    "unknown log format",
			mutate:  func(c *Config) { c.Log.Format = "xml" },
			wantErr: "unknown log format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_Location(t *testing.T) {
	cfg := DefaultConfig()

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	cfg.Sampler.Timezone = "UTC"
	loc, err = cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())
}
