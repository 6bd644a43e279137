package cmd

import (
	"fmt"

	"github.com/inovacc/wifilog/internal/cli"
	"github.com/inovacc/wifilog/internal/core"
	"github.com/inovacc/wifilog/internal/sampler"
	"github.com/spf13/cobra"
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Take a single sample now",
	Long: `Read the current network once and, if it is the target, record the
current time in the log. Prints the outcome of the sample.

Useful from cron or a login hook instead of a long-running daemon.`,
	RunE: runSample,
}

func init() {
	rootCmd.AddCommand(sampleCmd)
	addSamplerFlags(sampleCmd)
}

func runSample(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	cfg.Server.Listen = ""

	app, err := core.New(cfg, logger)
	if err != nil {
		return err
	}

	defer func() { _ = app.Close() }()

	outcome := app.Sampler().Tick(cmd.Context())
	stats := app.Sampler().Stats()
	out := cmd.OutOrStdout()

	switch outcome {
	case sampler.OutcomeRecorded:
		cli.PrintRecord(out, *stats.LastRecord)
	case sampler.OutcomeOtherNetwork:
		_, _ = fmt.Fprintf(out, "Connected to %q, not %q; nothing recorded\n", stats.LastSSID, cfg.Sampler.TargetSSID)
	case sampler.OutcomeNotConnected:
		_, _ = fmt.Fprintln(out, "Not connected to a wireless network; nothing recorded")
	default:
		return fmt.Errorf("sample failed: %s", outcome)
	}

	return nil
}
