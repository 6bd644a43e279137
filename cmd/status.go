package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/inovacc/wifilog/internal/core"
	"github.com/inovacc/wifilog/internal/params"
	"github.com/inovacc/wifilog/internal/web"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether the sampler daemon is running",
	Long: `Report the running wifilog daemon, if any: its PID, API address, target
network and, when the API is enabled, the outcome of its latest sample.`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	runInfoPath, err := params.RunInfoPath()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	info, alive, err := core.DaemonStatus(runInfoPath)
	if errors.Is(err, core.ErrNoRunInfo) || (err == nil && !alive) {
		_, _ = fmt.Fprintln(out, "Daemon status: stopped")
		return nil
	}

	if err != nil {
		return err
	}

	printRunInfo(out, info)

	if info.Address == "" {
		return nil
	}

	status, err := fetchStatus(cmd, info.Address)
	if err != nil {
		_, _ = fmt.Fprintf(out, "  API: unreachable (%v)\n", err)
		return nil
	}

	_, _ = fmt.Fprintf(out, "  Samples: %d (%d recorded, %d failed)\n", status.Stats.Ticks, status.Stats.Recorded, status.Stats.Failures)

	if !status.Stats.LastTick.IsZero() {
		_, _ = fmt.Fprintf(out, "  Last sample: %s (%s)\n", status.Stats.LastTick.Format(time.RFC3339), status.Stats.LastOutcome)
	}

	return nil
}

func printRunInfo(w io.Writer, info *core.RunInfo) {
	_, _ = fmt.Fprintln(w, "Daemon status: running")
	_, _ = fmt.Fprintf(w, "  PID: %d\n", info.PID)
	_, _ = fmt.Fprintf(w, "  Target: %s\n", info.Target)
	_, _ = fmt.Fprintf(w, "  Backend: %s\n", info.Backend)

	if info.Address != "" {
		_, _ = fmt.Fprintf(w, "  Address: http://%s\n", info.Address)
	}

	_, _ = fmt.Fprintf(w, "  Instance: %s\n", info.InstanceID)
	_, _ = fmt.Fprintf(w, "  Started: %s\n", info.StartedAt.Format(time.RFC3339))
	_, _ = fmt.Fprintf(w, "  Uptime: %s\n", time.Since(info.StartedAt).Round(time.Second))
}

func fetchStatus(cmd *cobra.Command, address string) (*web.StatusResponse, error) {
	req, err := http.NewRequestWithContext(cmd.Context(), http.MethodGet, "http://"+address+"/api/status", nil)
	if err != nil {
		return nil, err
	}

	client := &http.Client{Timeout: 2 * time.Second}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}

	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	var status web.StatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("failed to decode status: %w", err)
	}

	return &status, nil
}
