package core

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/inovacc/wifilog/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnv(string) (string, bool) { return "", false }

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadConfig(LoadOptions{
		Path:      filepath.Join(dir, "missing.ini"),
		EnvFile:   filepath.Join(dir, "missing.env"),
		LookupEnv: noEnv,
	})
	require.NoError(t, err)
	assert.Equal(t, model.DefaultConfig(), cfg)
}

func TestLoadConfigFromINI(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "wifilog.ini", `
[sampler]
target_ssid = HomeNet
interval    = 30s
timezone    = UTC

[storage]
backend = bolt
path    = /tmp/wifilog.bolt
`)

	cfg, err := LoadConfig(LoadOptions{Path: path, EnvFile: filepath.Join(dir, ".env"), LookupEnv: noEnv})
	require.NoError(t, err)

	assert.Equal(t, "HomeNet", cfg.Sampler.TargetSSID)
	assert.Equal(t, 30*time.Second, cfg.Sampler.Interval)
	assert.Equal(t, "UTC", cfg.Sampler.Timezone)
	assert.Equal(t, model.BackendBolt, cfg.Storage.Backend)
	assert.Equal(t, "/tmp/wifilog.bolt", cfg.Storage.Path)
	assert.Equal(t, 10*time.Second, cfg.Detector.Timeout, "unset keys keep defaults")
}

func TestLoadConfigPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "wifilog.ini", `
[sampler]
target_ssid = FromINI
interval    = 30s

[log]
level = warn
`)
	envFile := writeFile(t, dir, ".env", `
WIFILOG_TARGET_SSID=FromDotenv
WIFILOG_LOG_FORMAT=json
WIFILOG_DETECTOR_TIMEOUT=3s
`)

	cfg, err := LoadConfig(LoadOptions{
		Path:    path,
		EnvFile: envFile,
		LookupEnv: envMap(map[string]string{
			"WIFILOG_TARGET_SSID": "FromEnv",
			"WIFILOG_INTERVAL":    "2m",
			"WIFILOG_LISTEN":      "",
		}),
		Override: func(c *model.Config) {
			c.Log.Level = "debug"
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "FromEnv", cfg.Sampler.TargetSSID, "env beats dotenv and INI")
	assert.Equal(t, 2*time.Minute, cfg.Sampler.Interval, "env beats INI")
	assert.Equal(t, "json", cfg.Log.Format, "dotenv fills unset env")
	assert.Equal(t, 3*time.Second, cfg.Detector.Timeout)
	assert.Equal(t, "debug", cfg.Log.Level, "override beats INI")
	assert.Empty(t, cfg.Server.Listen, "empty env value disables the server")
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		ini  string
		env  map[string]string
	}{
		{name: "interval below minimum", ini: "[sampler]\ninterval = 500ms\n"},
		{name: "unknown backend", ini: "[storage]\nbackend = postgres\n"},
		{name: "unknown timezone", ini: "[sampler]\ntimezone = Mars/Olympus\n"},
		{name: "bad env duration", env: map[string]string{"WIFILOG_INTERVAL": "soon"}},
		{name: "bad log level", env: map[string]string{"WIFILOG_LOG_LEVEL": "loud"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, "bad.ini", tt.ini)

			_, err := LoadConfig(LoadOptions{
				Path:      path,
				EnvFile:   filepath.Join(dir, "none.env"),
				LookupEnv: envMap(tt.env),
			})
			assert.Error(t, err)
		})
	}
}

func TestWriteDefaultConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "wifilog.ini")

	require.NoError(t, WriteDefaultConfig(path, false))

	err := WriteDefaultConfig(path, false)
	require.ErrorIs(t, err, ErrConfigExists)
	require.NoError(t, WriteDefaultConfig(path, true))

	cfg, err := LoadConfig(LoadOptions{Path: path, EnvFile: filepath.Join(dir, ".env"), LookupEnv: noEnv})
	require.NoError(t, err)
	assert.Equal(t, model.DefaultConfig(), cfg)
}

func TestShowConfig(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.Sampler.TargetSSID = "HomeNet"

	var buf bytes.Buffer
	require.NoError(t, ShowConfig(&buf, cfg))

	out := buf.String()
	assert.Contains(t, out, "[sampler]")
	assert.Contains(t, out, "HomeNet")
	assert.Contains(t, out, "[storage]")
	assert.Contains(t, out, "127.0.0.1:4680")
}
