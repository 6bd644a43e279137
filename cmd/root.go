package cmd

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/inovacc/wifilog/internal/application"
	"github.com/inovacc/wifilog/internal/core"
	"github.com/inovacc/wifilog/internal/model"
	"github.com/spf13/cobra"
)

var (
	configFile    string
	logLevel      string
	logFormat     string
	storageDriver string
	storagePath   string
	targetSSID    string
	interval      time.Duration
)

var rootCmd = &cobra.Command{
	Use:   application.AppName,
	Short: "Log when your machine is on a given WiFi network",
	Long: `wifilog samples the currently associated wireless network at a fixed
interval and keeps, for every calendar day, the earliest and latest time it
saw the target network.

Run 'wifilog run' (or install it with 'wifilog service --install') to start
sampling, then use 'wifilog list' or 'wifilog today' to read the log.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "Path to the INI configuration file (default <data dir>/wifilog.ini)")
	pf.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&logFormat, "log-format", "", "Log format: text or json")
	pf.StringVar(&storageDriver, "backend", "", "Storage backend: sqlite or bolt")
	pf.StringVar(&storagePath, "db", "", "Path to the database file")
}

// addSamplerFlags registers the flags shared by commands that sample.
func addSamplerFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&targetSSID, "target", "t", "", "Target SSID (case-sensitive)")
	cmd.Flags().DurationVar(&interval, "interval", 0, "Sampling interval (minimum 1s)")
}

// loadConfig resolves the effective configuration for cmd: defaults, INI,
// environment, then any flags set on the command line.
func loadConfig(cmd *cobra.Command) (model.Config, error) {
	flags := cmd.Flags()

	return core.LoadConfig(core.LoadOptions{
		Path: configFile,
		Override: func(c *model.Config) {
			if flags.Changed("log-level") {
				c.Log.Level = logLevel
			}

			if flags.Changed("log-format") {
				c.Log.Format = logFormat
			}

			if flags.Changed("backend") {
				c.Storage.Backend = storageDriver
			}

			if flags.Changed("db") {
				c.Storage.Path = storagePath
			}

			if flags.Changed("target") {
				c.Sampler.TargetSSID = targetSSID
			}

			if flags.Changed("interval") {
				c.Sampler.Interval = interval
			}
		},
	})
}

// setup loads the configuration and builds the logger writing to stderr.
func setup(cmd *cobra.Command) (model.Config, *slog.Logger, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return cfg, nil, err
	}

	if cfg.Storage.Path != "" {
		if cfg.Storage.Path, err = expandPath(cfg.Storage.Path); err != nil {
			return cfg, nil, err
		}
	}

	logger := core.NewLogger(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
	slog.SetDefault(logger)

	return cfg, logger, nil
}
