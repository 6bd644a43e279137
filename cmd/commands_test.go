package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/inovacc/wifilog/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// Keep the data directory out of the real user profile.
	home, err := os.MkdirTemp("", "wifilog-cmd-test")
	if err != nil {
		panic(err)
	}

	for _, key := range []string{"HOME", "XDG_CONFIG_HOME", "LOCALAPPDATA", "USERPROFILE"} {
		_ = os.Setenv(key, home)
	}

	code := m.Run()

	_ = os.RemoveAll(home)
	os.Exit(code)
}

// resetFlags restores every flag to its default so executions don't leak
// state into each other through the package-level flag variables.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}

	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)

	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	resetFlags(rootCmd)

	var out, errOut bytes.Buffer

	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()

	return out.String(), err
}

type env struct {
	config string
	db     string
}

func newEnv(t *testing.T) env {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("WIFILOG_STATIC_SSID", "HomeNet")
	t.Setenv("WIFILOG_TIMEZONE", "UTC")

	return env{
		config: filepath.Join(dir, "wifilog.ini"),
		db:     filepath.Join(dir, "connections.db"),
	}
}

func (e env) args(args ...string) []string {
	return append(args, "--config", e.config, "--db", e.db)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "wifilog version "))
}

func TestConfigInitAndShow(t *testing.T) {
	e := newEnv(t)

	out, err := execute(t, e.args("config", "init")...)
	require.NoError(t, err)
	assert.Contains(t, out, e.config)

	_, err = execute(t, e.args("config", "init")...)
	require.Error(t, err)

	_, err = execute(t, e.args("config", "init", "--force")...)
	require.NoError(t, err)

	out, err = execute(t, e.args("config", "show", "--log-level", "debug")...)
	require.NoError(t, err)
	assert.Contains(t, out, "[sampler]")
	assert.Contains(t, out, "static_ssid")
	assert.Contains(t, out, "debug")
}

func TestSampleThenQuery(t *testing.T) {
	e := newEnv(t)

	_, err := execute(t, e.args("sample")...)
	require.ErrorIs(t, err, model.ErrTargetRequired)

	out, err := execute(t, e.args("sample", "--target", "HomeNet")...)
	require.NoError(t, err)
	assert.Contains(t, out, "first seen")

	out, err = execute(t, e.args("list", "--json")...)
	require.NoError(t, err)

	var records []model.DailyRecord
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 1)
	assert.Equal(t, records[0].Earliest, records[0].Latest)

	out, err = execute(t, e.args("today", "--json")...)
	require.NoError(t, err)

	var rec model.DailyRecord
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.Equal(t, records[0], rec)

	out, err = execute(t, e.args("list")...)
	require.NoError(t, err)
	assert.Contains(t, out, records[0].Date)
	assert.Contains(t, out, "Total: 1 days")
}

func TestSampleOtherNetwork(t *testing.T) {
	e := newEnv(t)

	out, err := execute(t, e.args("sample", "--target", "Office")...)
	require.NoError(t, err)
	assert.Contains(t, out, `Connected to "HomeNet", not "Office"`)

	out, err = execute(t, e.args("today")...)
	require.NoError(t, err)
	assert.Contains(t, out, "No connection recorded today")

	out, err = execute(t, e.args("list", "--json")...)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, out)
}

func TestSSID(t *testing.T) {
	e := newEnv(t)

	out, err := execute(t, e.args("ssid")...)
	require.NoError(t, err)
	assert.Equal(t, "HomeNet\n", out)
}

func TestBoltBackend(t *testing.T) {
	e := newEnv(t)
	e.db = filepath.Join(t.TempDir(), "connections.bolt")

	_, err := execute(t, e.args("sample", "--target", "HomeNet", "--backend", "bolt")...)
	require.NoError(t, err)

	out, err := execute(t, e.args("list", "--json", "--backend", "bolt")...)
	require.NoError(t, err)

	var records []model.DailyRecord
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	assert.Len(t, records, 1)
}

func TestInvalidConfig(t *testing.T) {
	e := newEnv(t)

	_, err := execute(t, e.args("list", "--backend", "postgres")...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown storage backend")
}

func TestServiceRequiresOneOperation(t *testing.T) {
	_, err := execute(t, "service")
	require.Error(t, err)

	_, err = execute(t, "service", "--start", "--stop")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only one operation")
}

func TestStatusWhenStopped(t *testing.T) {
	out, err := execute(t, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Daemon status: stopped")
}
