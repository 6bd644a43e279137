package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/inovacc/wifilog/internal/model"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	todayStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	timeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

const (
	dateWidth = 10
	timeWidth = 8
)

// PrintRecords writes records as a table. The row whose date equals today
// is highlighted.
func PrintRecords(w io.Writer, records []model.DailyRecord, today string) {
	if len(records) == 0 {
		_, _ = fmt.Fprintln(w, mutedStyle.Render("No connections recorded yet."))
		return
	}

	_, _ = fmt.Fprintf(w, "%s  %s  %s  %s\n",
		headerStyle.Render(padRight("DATE", dateWidth)),
		headerStyle.Render(padRight("EARLIEST", timeWidth)),
		headerStyle.Render(padRight("LATEST", timeWidth)),
		headerStyle.Render("SPAN"),
	)
	_, _ = fmt.Fprintln(w, strings.Repeat("-", dateWidth+2*timeWidth+12))

	for _, r := range records {
		date := padRight(r.Date, dateWidth)
		if r.Date == today {
			date = todayStyle.Render(date)
		}

		_, _ = fmt.Fprintf(w, "%s  %s  %s  %s\n",
			date,
			timeStyle.Render(padRight(r.Earliest, timeWidth)),
			timeStyle.Render(padRight(r.Latest, timeWidth)),
			Span(r),
		)
	}

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintf(w, "Total: %d days\n", len(records))
}

// PrintRecord writes a single day in a compact form.
func PrintRecord(w io.Writer, r model.DailyRecord) {
	_, _ = fmt.Fprintf(w, "%s  first seen %s, last seen %s (%s)\n",
		headerStyle.Render(r.Date),
		timeStyle.Render(r.Earliest),
		timeStyle.Render(r.Latest),
		Span(r))
}

// Span returns the time between earliest and latest as "XhYYm".
func Span(r model.DailyRecord) string {
	minutes := minutesOf(r.Latest) - minutesOf(r.Earliest)
	if minutes < 0 {
		return "-"
	}

	return fmt.Sprintf("%dh%02dm", minutes/60, minutes%60)
}

func minutesOf(timeOfDay string) int {
	var h, m int
	if _, err := fmt.Sscanf(timeOfDay, "%d:%d", &h, &m); err != nil {
		return 0
	}

	return h*60 + m
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}

	return s + strings.Repeat(" ", width-len(s))
}
