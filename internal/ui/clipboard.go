package ui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/gridview/internal/grid"
)

// writeClipboard is swapped out in tests.
var writeClipboard = clipboard.WriteAll

// yank copies the selected rows, or the cursor row when nothing is selected,
// to the system clipboard as tab-separated values.
func (m *Model) yank() tea.Cmd {
	rows := m.engine.SelectedRecords()
	if len(rows) == 0 {
		if row, ok := m.engine.Row(m.cursor); ok {
			rows = []grid.Record{row}
		}
	}
	if len(rows) == 0 {
		return m.setStatus("Nothing to copy")
	}

	if err := writeClipboard(formatTSV(m.columns, rows)); err != nil {
		slog.Warn("clipboard write failed", "err", err)
		return m.setStatus(fmt.Sprintf("clipboard error: %s", err))
	}
	return m.setStatus(fmt.Sprintf("Copied %d %s", len(rows), plural(len(rows), "row", "rows")))
}

func formatTSV(columns []grid.Column, rows []grid.Record) string {
	var b strings.Builder
	for i, c := range columns {
		if i > 0 {
			b.WriteByte('\t')
		}
		b.WriteString(c.Title())
	}
	for _, r := range rows {
		b.WriteByte('\n')
		for i, c := range columns {
			if i > 0 {
				b.WriteByte('\t')
			}
			text, _ := r.Text(c.Field)
			b.WriteString(strings.ReplaceAll(text, "\t", " "))
		}
	}
	return b.String()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
