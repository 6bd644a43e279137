package cli

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/inovacc/wifilog/internal/model"
)

var docStyle = lipgloss.NewStyle().Margin(1, 2)

type recordItem struct {
	record model.DailyRecord
}

func (i recordItem) Title() string {
	return i.record.Date
}

func (i recordItem) Description() string {
	return fmt.Sprintf("%s - %s | %s", i.record.Earliest, i.record.Latest, Span(i.record))
}

func (i recordItem) FilterValue() string {
	return i.record.Date
}

// RecordListModel browses the connection log.
type RecordListModel struct {
	list     list.Model
	selected *model.DailyRecord
	quitting bool
}

func (m RecordListModel) Init() tea.Cmd {
	return nil
}

func (m RecordListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v)

		return m, nil

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quitting = true

			return m, tea.Quit

		case "enter":
			if i, ok := m.list.SelectedItem().(recordItem); ok {
				m.selected = &i.record
			}

			return m, tea.Quit
		}
	}

	var cmd tea.Cmd

	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m RecordListModel) View() string {
	if m.quitting {
		return ""
	}

	return docStyle.Render(m.list.View())
}

// Selected returns the record chosen with enter, if any.
func (m RecordListModel) Selected() *model.DailyRecord {
	return m.selected
}

// NewRecordList builds a browser over records, most recent first.
func NewRecordList(records []model.DailyRecord, target string) RecordListModel {
	items := make([]list.Item, len(records))
	for i, r := range records {
		items[i] = recordItem{record: r}
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Connections"

	if target != "" {
		l.Title = fmt.Sprintf("Connections to %s", target)
	}

	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)

	return RecordListModel{list: l}
}
