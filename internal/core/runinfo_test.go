package core

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunInfoRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "run.json")

	_, err := ReadRunInfo(path)
	require.ErrorIs(t, err, ErrNoRunInfo)

	info := RunInfo{
		PID:        4242,
		Address:    "127.0.0.1:4680",
		InstanceID: "7d3c2a4e-0000-4000-8000-000000000000",
		Target:     "HomeNet",
		Backend:    "sqlite",
		Version:    "0.1.0",
		StartedAt:  time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC),
	}
	require.NoError(t, WriteRunInfo(path, info))

	got, err := ReadRunInfo(path)
	require.NoError(t, err)
	assert.Equal(t, info, *got)

	RemoveRunInfo(path)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestReadRunInfoCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := ReadRunInfo(path)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoRunInfo)
}

func TestDaemonStatusStale(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")
	require.NoError(t, WriteRunInfo(path, RunInfo{PID: -1, Target: "HomeNet"}))

	info, alive, err := DaemonStatus(path)
	require.NoError(t, err)
	assert.False(t, alive)
	assert.Equal(t, "HomeNet", info.Target)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "stale run info is removed")
}
