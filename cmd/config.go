package cmd

import (
	"fmt"

	"github.com/inovacc/wifilog/internal/core"
	"github.com/inovacc/wifilog/internal/params"
	"github.com/spf13/cobra"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage wifilog configuration",
	Long: `Commands for managing wifilog configuration.

Configuration is read from the INI file, then WIFILOG_* environment
variables (and a .env file in the working directory), then command-line flags.`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		return core.ShowConfig(cmd.OutOrStdout(), cfg)
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file with default values",
	RunE: func(cmd *cobra.Command, _ []string) error {
		path, err := configFilePath()
		if err != nil {
			return err
		}

		if err := core.WriteDefaultConfig(path, configForce); err != nil {
			return err
		}

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to %s\n", path)
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Set sampler.target_ssid before running 'wifilog run'.")

		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	RunE: func(cmd *cobra.Command, _ []string) error {
		path, err := configFilePath()
		if err != nil {
			return err
		}

		_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)

	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing file")
}

func configFilePath() (string, error) {
	if configFile != "" {
		return expandPath(configFile)
	}

	return params.ConfigPath()
}
