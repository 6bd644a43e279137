// Package wifi reads the name of the currently associated wireless network
// from the operating system.
package wifi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/cli/safeexec"
	"github.com/inovacc/wifilog/internal/model"
)

var (
	// ErrNotConnected means the device is not associated with any wireless network.
	ErrNotConnected = errors.New("not connected to a wireless network")

	// ErrUnsupported means no SSID query exists for this platform.
	ErrUnsupported = errors.New("wireless network detection is not supported on this platform")
)

// Detector reports the SSID of the currently associated wireless network.
type Detector interface {
	CurrentSSID(ctx context.Context) (string, error)
}

// CommandError wraps a failed OS query
type CommandError struct {
	Command string
	Stderr  string
	Err     error
}

func (e *CommandError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("running %s: %v: %s", e.Command, e.Err, e.Stderr)
	}

	return fmt.Sprintf("running %s: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewDetector returns the detector selected by cfg: a Static detector when
// StaticSSID is set, otherwise the platform's command-based detector.
func NewDetector(cfg model.DetectorConfig) Detector {
	if cfg.StaticSSID != "" {
		return Static(cfg.StaticSSID)
	}

	return &CommandDetector{
		probes:  platformProbes(cfg.Interface),
		run:     runCommand,
		timeout: cfg.Timeout,
	}
}

// Static always reports the same SSID.
type Static string

func (s Static) CurrentSSID(context.Context) (string, error) {
	return string(s), nil
}

type runFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

// probe is one OS command plus the parser for its output.
type probe struct {
	command string
	args    []string
	parse   func(out []byte) (string, error)
}

// CommandDetector runs platform probes in order until one yields an SSID.
// A probe whose command is missing, or that reports not connected, falls
// through to the next one.
type CommandDetector struct {
	probes  []probe
	run     runFunc
	timeout time.Duration
}

func (d *CommandDetector) CurrentSSID(ctx context.Context) (string, error) {
	if len(d.probes) == 0 {
		return "", ErrUnsupported
	}

	if d.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	var (
		lastErr      error
		notConnected bool
	)

	for _, p := range d.probes {
		out, err := d.run(ctx, p.command, p.args...)
		if err != nil {
			lastErr = err
			continue
		}

		ssid, err := p.parse(out)
		if err == nil {
			return ssid, nil
		}

		if errors.Is(err, ErrNotConnected) {
			notConnected = true
		}

		lastErr = err
	}

	if notConnected {
		return "", ErrNotConnected
	}

	return "", lastErr
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	path, err := safeexec.LookPath(name)
	if err != nil {
		return nil, &CommandError{Command: name, Err: err}
	}

	var stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		return nil, &CommandError{
			Command: name,
			Stderr:  strings.TrimSpace(stderr.String()),
			Err:     err,
		}
	}

	return out, nil
}
