package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"syscall"
	"time"

	"github.com/inovacc/wifilog/internal/core"
	"github.com/inovacc/wifilog/internal/params"
	"github.com/inovacc/wifilog/internal/process"
	"github.com/spf13/cobra"
)

var stopTimeout time.Duration

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running sampler daemon",
	Long:  `Stop the wifilog daemon started with 'wifilog run' by sending it a termination signal.`,
	RunE:  runStop,
}

func init() {
	rootCmd.AddCommand(stopCmd)

	stopCmd.Flags().DurationVar(&stopTimeout, "timeout", 30*time.Second, "Timeout waiting for the daemon to stop")
}

func runStop(cmd *cobra.Command, _ []string) error {
	runInfoPath, err := params.RunInfoPath()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	info, alive, err := core.DaemonStatus(runInfoPath)
	if errors.Is(err, core.ErrNoRunInfo) || (err == nil && !alive) {
		_, _ = fmt.Fprintln(out, "Daemon is not running")
		return nil
	}

	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(out, "Stopping daemon (PID: %d)...\n", info.PID)

	if err := terminateProcess(info.PID); err != nil {
		return fmt.Errorf("failed to stop daemon: %w", err)
	}

	if err := waitForProcessExit(info.PID, stopTimeout); err != nil {
		return fmt.Errorf("daemon did not stop within timeout: %w", err)
	}

	_, _ = fmt.Fprintln(out, "Daemon stopped")

	return nil
}

// terminateProcess sends a termination signal to the process with the given PID
func terminateProcess(pid int) error {
	if runtime.GOOS == "windows" {
		// On Windows, use taskkill command
		cmd := exec.Command("taskkill", "/PID", fmt.Sprintf("%d", pid), "/F")
		return cmd.Run()
	}

	proc, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("failed to find process: %w", err)
	}

	return proc.Signal(syscall.SIGTERM)
}

// waitForProcessExit polls the Go process list until pid is gone
func waitForProcessExit(pid int, timeout time.Duration) error {
	procs := process.NewProcess()
	deadline := time.Now().Add(timeout)
	checkInterval := 100 * time.Millisecond

	for time.Now().Before(deadline) {
		if err := procs.ListProcesses(); err != nil {
			return fmt.Errorf("failed to list processes: %w", err)
		}

		if !procs.IsProcessRunning(pid) {
			return nil
		}

		time.Sleep(checkInterval)
	}

	return fmt.Errorf("process %d still running after %v", pid, timeout)
}
