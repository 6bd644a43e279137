package cmd

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/inovacc/wifilog/internal/cli"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	listJSON        bool
	listInteractive bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the connection log",
	Long: `Show every recorded day with the earliest and latest time the target
network was seen, most recent first.

Examples:
  wifilog list
  wifilog list --json
  wifilog list -i`,
	Aliases: []string{"ls"},
	RunE:    runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")
	listCmd.Flags().BoolVarP(&listInteractive, "interactive", "i", false, "Browse the log interactively")
}

func runList(cmd *cobra.Command, _ []string) error {
	cfg, _, err := setup(cmd)
	if err != nil {
		return err
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}

	defer func() { _ = st.Close() }()

	records, err := st.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list records: %w", err)
	}

	out := cmd.OutOrStdout()

	if listJSON {
		return writeJSON(out, records)
	}

	if listInteractive {
		if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
			return errors.New("--interactive needs a terminal; use --json for scripts")
		}

		p := tea.NewProgram(cli.NewRecordList(records, cfg.Sampler.TargetSSID), tea.WithAltScreen())

		finalModel, err := p.Run()
		if err != nil {
			return err
		}

		if selected := finalModel.(cli.RecordListModel).Selected(); selected != nil {
			cli.PrintRecord(out, *selected)
		}

		return nil
	}

	date, err := today(cfg)
	if err != nil {
		return err
	}

	cli.PrintRecords(out, records, date)

	return nil
}
