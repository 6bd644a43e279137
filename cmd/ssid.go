package cmd

import (
	"errors"
	"fmt"

	"github.com/inovacc/wifilog/internal/wifi"
	"github.com/spf13/cobra"
)

var ssidCmd = &cobra.Command{
	Use:   "ssid",
	Short: "Print the currently associated SSID",
	Long:  `Query the operating system for the current wireless network and print its name.`,
	RunE:  runSSID,
}

func init() {
	rootCmd.AddCommand(ssidCmd)
}

func runSSID(cmd *cobra.Command, _ []string) error {
	cfg, _, err := setup(cmd)
	if err != nil {
		return err
	}

	ssid, err := wifi.NewDetector(cfg.Detector).CurrentSSID(cmd.Context())
	if errors.Is(err, wifi.ErrNotConnected) {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Not connected to a wireless network")
		return nil
	}

	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), ssid)

	return nil
}
