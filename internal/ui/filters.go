package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/gridview/internal/grid"
)

// startFilter focuses the filter input of the current column.
func (m *Model) startFilter() tea.Cmd {
	if m.col < 0 || m.col >= len(m.columns) {
		return nil
	}
	c := m.columns[m.col]
	if c.Filter != grid.FilterText {
		return m.setStatus(fmt.Sprintf("%s has no filter", c.Title()))
	}
	m.blurFilter()
	m.focus = focusFilter
	return m.filters[m.col].Focus()
}

// blurFilter leaves filter editing, keeping the typed value.
func (m *Model) blurFilter() {
	for i := range m.filters {
		m.filters[i].Blur()
	}
	m.focus = focusTable
}

// updateFilter routes keys to the focused input and applies its value to the
// engine on every keystroke.
func (m *Model) updateFilter(msg tea.KeyMsg) tea.Cmd {
	input := &m.filters[m.col]
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.blurFilter()
		return nil
	case key.Matches(msg, m.keys.Cancel):
		input.SetValue("")
		m.blurFilter()
		m.applyFilter(m.col)
		return nil
	}

	var cmd tea.Cmd
	*input, cmd = input.Update(msg)
	m.applyFilter(m.col)
	return cmd
}

func (m *Model) applyFilter(col int) {
	field := m.columns[col].Field
	value := m.filters[col].Value()
	if m.engine.Filter(field) == value {
		return
	}
	m.preserveCursor(func() { m.engine.SetFilter(field, value) })
}

func (m Model) hasFilters() bool {
	for _, c := range m.columns {
		if c.Filter == grid.FilterText {
			return true
		}
	}
	return false
}
