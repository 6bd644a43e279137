package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/inovacc/wifilog/internal/core"
	"github.com/inovacc/wifilog/internal/params"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Sample the WiFi network in the foreground",
	Long: `Start the sampler and the local query API and run until interrupted
with Ctrl+C or SIGTERM.

The first sample is taken immediately, then one per interval. Failures to
read the network or write the log are logged and retried on the next tick.

Examples:
  wifilog run --target HomeNet
  wifilog run --target HomeNet --interval 30s --backend bolt`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	addSamplerFlags(runCmd)
}

func runRun(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	runInfoPath, err := params.RunInfoPath()
	if err != nil {
		return err
	}

	if info, alive, err := core.DaemonStatus(runInfoPath); err == nil && alive {
		return fmt.Errorf("wifilog is already running (PID %d)", info.PID)
	}

	app, err := core.New(cfg, logger, core.WithRunInfoPath(runInfoPath))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return app.Run(ctx)
}
