package model

import (
	"errors"
	"fmt"
	"time"
)

const (
	BackendSQLite = "sqlite"
	BackendBolt   = "bolt"

	minInterval = time.Second
)

var ErrTargetRequired = errors.New("target SSID is not configured")

// SamplerConfig controls the polling loop.
type SamplerConfig struct {
	// TargetSSID is the wireless network name that counts as "connected".
	// Compared case-sensitively.
	TargetSSID string `ini:"target_ssid"`

	// Interval is the fixed delay between samples
	Interval time.Duration `ini:"interval"`

	// Timezone is an IANA zone name, or "Local"
	Timezone string `ini:"timezone"`
}

// DetectorConfig controls how the current SSID is read from the OS.
type DetectorConfig struct {
	// Interface is the wireless interface name (macOS only)
	Interface string `ini:"interface"`

	// Timeout bounds a single OS query
	Timeout time.Duration `ini:"timeout"`

	// StaticSSID replaces the OS query with a fixed answer when set
	StaticSSID string `ini:"static_ssid"`
}

// StorageConfig selects the daily log backend.
type StorageConfig struct {
	Backend string `ini:"backend"`
	Path    string `ini:"path"`
}

// ServerConfig controls the local HTTP query API.
type ServerConfig struct {
	// Listen is a host:port address; empty disables the server
	Listen string `ini:"listen"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level  string `ini:"level"`
	Format string `ini:"format"`
}

// Config holds the application configuration
type Config struct {
	Sampler  SamplerConfig  `ini:"sampler"`
	Detector DetectorConfig `ini:"detector"`
	Storage  StorageConfig  `ini:"storage"`
	Server   ServerConfig   `ini:"server"`
	Log      LogConfig      `ini:"log"`
}

// DefaultConfig returns a Config with sensible defaults.
// Storage.Path is left empty and resolved against the data directory.
func DefaultConfig() Config {
	return Config{
		Sampler: SamplerConfig{
			Interval: 60 * time.Second,
			Timezone: "Local",
		},
		Detector: DetectorConfig{
			Interface: "en0",
			Timeout:   10 * time.Second,
		},
		Storage: StorageConfig{
			Backend: BackendSQLite,
		},
		Server: ServerConfig{
			Listen: "127.0.0.1:4680",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate checks the configuration for values the application cannot run with.
// An empty target SSID is allowed here; see RequireTarget.
func (c Config) Validate() error {
	if c.Sampler.Interval < minInterval {
		return fmt.Errorf("sampler interval %s is below the minimum of %s", c.Sampler.Interval, minInterval)
	}

	if _, err := c.Location(); err != nil {
		return err
	}

	if c.Detector.Timeout <= 0 {
		return fmt.Errorf("detector timeout must be positive, got %s", c.Detector.Timeout)
	}

	switch c.Storage.Backend {
	case BackendSQLite, BackendBolt:
	default:
		return fmt.Errorf("unknown storage backend %q (want %q or %q)", c.Storage.Backend, BackendSQLite, BackendBolt)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}

	return nil
}

// RequireTarget returns ErrTargetRequired when no target SSID is configured.
func (c Config) RequireTarget() error {
	if c.Sampler.TargetSSID == "" {
		return ErrTargetRequired
	}

	return nil
}

// Location resolves the configured timezone.
func (c Config) Location() (*time.Location, error) {
	if c.Sampler.Timezone == "" || c.Sampler.Timezone == "Local" {
		return time.Local, nil
	}

	loc, err := time.LoadLocation(c.Sampler.Timezone)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", c.Sampler.Timezone, err)
	}

	return loc, nil
}
