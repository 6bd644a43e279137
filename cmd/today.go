package cmd

import (
	"errors"
	"fmt"

	"github.com/inovacc/wifilog/internal/cli"
	"github.com/inovacc/wifilog/internal/store"
	"github.com/spf13/cobra"
)

var todayJSON bool

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's first and last connection",
	RunE:  runToday,
}

func init() {
	rootCmd.AddCommand(todayCmd)

	todayCmd.Flags().BoolVar(&todayJSON, "json", false, "Output as JSON")
}

func runToday(cmd *cobra.Command, _ []string) error {
	cfg, _, err := setup(cmd)
	if err != nil {
		return err
	}

	date, err := today(cfg)
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}

	defer func() { _ = st.Close() }()

	out := cmd.OutOrStdout()

	rec, err := st.Get(cmd.Context(), date)
	if errors.Is(err, store.ErrNotFound) {
		if todayJSON {
			_, _ = fmt.Fprintln(out, "null")
			return nil
		}

		_, _ = fmt.Fprintf(out, "No connection recorded today (%s)\n", date)

		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to read today's record: %w", err)
	}

	if todayJSON {
		return writeJSON(out, rec)
	}

	cli.PrintRecord(out, rec)

	return nil
}
