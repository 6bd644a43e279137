package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/inovacc/wifilog/internal/application"
	"github.com/inovacc/wifilog/internal/process"
)

// ErrNoRunInfo indicates no run info file exists
var ErrNoRunInfo = errors.New("no run info file")

// RunInfo describes a running daemon. It is written on start and removed on
// clean shutdown.
type RunInfo struct {
	PID        int       `json:"pid"`
	Address    string    `json:"address,omitempty"`
	InstanceID string    `json:"instance_id"`
	Target     string    `json:"target"`
	Backend    string    `json:"backend"`
	Version    string    `json:"version"`
	StartedAt  time.Time `json:"started_at"`
}

// ReadRunInfo reads the run info file if it exists
func ReadRunInfo(path string) (*RunInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoRunInfo
		}

		return nil, fmt.Errorf("failed to read run info: %w", err)
	}

	var info RunInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("failed to parse run info: %w", err)
	}

	return &info, nil
}

// WriteRunInfo writes info to path, creating the parent directory.
func WriteRunInfo(path string, info RunInfo) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create run info directory: %w", err)
	}

	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run info: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write run info file: %w", err)
	}

	return nil
}

// RemoveRunInfo removes the run info file (called when the daemon stops)
func RemoveRunInfo(path string) {
	_ = os.Remove(path)
}

// DaemonStatus reports the recorded daemon and whether its process is still
// alive. A stale file left by a crashed daemon is removed.
func DaemonStatus(path string) (*RunInfo, bool, error) {
	info, err := ReadRunInfo(path)
	if err != nil {
		return nil, false, err
	}

	procs := process.NewProcess()
	if err := procs.ListProcesses(); err != nil {
		return info, false, err
	}

	if procs.ProcessExists(info.PID, application.AppName) {
		return info, true, nil
	}

	RemoveRunInfo(path)

	return info, false, nil
}
