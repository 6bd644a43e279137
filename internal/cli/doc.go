// Package cli provides the terminal presentation of the connection log.
//
// [PrintRecords] renders a styled table with [Lipgloss]. [RecordListModel]
// is a [Bubbletea] model for browsing and filtering records interactively;
// it follows the standard Model-View-Update architecture.
//
// [Bubbletea]: https://github.com/charmbracelet/bubbletea
// [Lipgloss]: https://github.com/charmbracelet/lipgloss
package cli
