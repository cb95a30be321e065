package ui

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/five82/gridview/internal/grid"
)

const (
	maxColWidth  = 32
	minColWidth  = 4
	columnSep    = " │ "
	markerWidth  = 2
	selectedMark = "●"
	fallbackRows = 20
)

// recomputeWidths sizes each column to its widest value in the dataset,
// including room for the sort arrow, capped at maxColWidth.
func (m *Model) recomputeWidths() {
	widths := make([]int, len(m.columns))
	for i, c := range m.columns {
		widths[i] = max(ansi.StringWidth(c.Title())+2, minColWidth)
	}
	for _, r := range m.engine.Dataset() {
		for i, c := range m.columns {
			if text, ok := r.Text(c.Field); ok {
				widths[i] = max(widths[i], ansi.StringWidth(text))
			}
		}
	}
	for i := range widths {
		widths[i] = min(widths[i], maxColWidth)
	}
	m.widths = widths
}

func (m Model) rowNumberWidth() int {
	if !m.prefs.RowNumbers {
		return 0
	}
	return len(strconv.Itoa(max(m.engine.Len(), 1))) + 1
}

func (m Model) prefixWidth() int {
	return markerWidth + m.rowNumberWidth()
}

// bodyTop is the screen line of the first data row.
func (m Model) bodyTop() int {
	top := 3 // status bar, column header, separator
	if m.hasFilters() {
		top++
	}
	return top
}

// bodyHeight is the number of data rows that fit on screen.
func (m Model) bodyHeight() int {
	if m.height <= 0 {
		return fallbackRows
	}
	h := m.height - m.bodyTop() - lipgloss.Height(m.renderFooter())
	return max(h, 1)
}

// View renders the whole screen. Only the rows inside the viewport are
// fetched from the engine.
func (m Model) View() string {
	lines := []string{
		m.renderStatusBar(),
		m.renderColumnHeader(),
	}
	if m.hasFilters() {
		lines = append(lines, m.renderFilterRow())
	}
	lines = append(lines, m.renderSeparator())
	lines = append(lines, m.renderBody()...)
	lines = append(lines, m.renderFooter())
	return strings.Join(lines, "\n")
}

func (m Model) renderColumnHeader() string {
	cells := make([]string, len(m.columns))
	sort := m.engine.Sort()
	for i, c := range m.columns {
		label := c.Title()
		if c.Sortable && sort.Field == c.Field {
			label += " " + sortArrow(sort.Direction)
		}
		text := fit(label, m.widths[i])
		if i == m.col {
			cells[i] = m.styles.ColumnFocus.Render(text)
		} else {
			cells[i] = m.styles.ColumnHeader.Render(text)
		}
	}
	prefix := strings.Repeat(" ", m.prefixWidth())
	if n := m.rowNumberWidth(); n > 0 {
		prefix = strings.Repeat(" ", markerWidth) + m.styles.MutedText.Render(fit("#", n))
	}
	return m.clip(prefix + strings.Join(cells, m.styles.Separator.Render(columnSep)))
}

func (m Model) renderFilterRow() string {
	cells := make([]string, len(m.columns))
	for i, c := range m.columns {
		if c.Filter != grid.FilterText {
			cells[i] = strings.Repeat(" ", m.widths[i])
			continue
		}
		input := m.filters[i]
		input.Width = m.widths[i] - 1
		cells[i] = fit(input.View(), m.widths[i])
	}
	prefix := strings.Repeat(" ", m.prefixWidth())
	return m.clip(prefix + strings.Join(cells, m.styles.Separator.Render(columnSep)))
}

func (m Model) renderSeparator() string {
	width := m.width
	if width <= 0 {
		width = m.prefixWidth()
		for _, w := range m.widths {
			width += w + ansi.StringWidth(columnSep)
		}
	}
	return m.styles.Separator.Render(strings.Repeat("─", width))
}

func (m Model) renderBody() []string {
	h := m.bodyHeight()
	rows := m.engine.Window(m.offset, m.offset+h)
	lines := make([]string, 0, h)
	for i, r := range rows {
		lines = append(lines, m.renderRow(m.offset+i, r))
	}
	if len(rows) == 0 {
		lines = append(lines, m.styles.MutedText.Render("  No rows match"))
	}
	for len(lines) < h && m.height > 0 {
		lines = append(lines, "")
	}
	return lines
}

func (m Model) renderRow(index int, r grid.Record) string {
	selected := m.engine.IsSelected(r.ID())

	var b strings.Builder
	if n := m.rowNumberWidth(); n > 0 {
		b.WriteString(fit(strconv.Itoa(index+1), n))
	}
	for i, c := range m.columns {
		if i > 0 {
			b.WriteString(columnSep)
		}
		text, _ := r.Text(c.Field)
		b.WriteString(fit(text, m.widths[i]))
	}

	marker := "  "
	if selected {
		marker = selectedMark + " "
	}
	if index == m.cursor {
		style := m.styles.Cursor
		if m.width > 0 {
			style = style.Width(m.width)
		}
		return style.Render(m.clip(marker + b.String()))
	}
	line := m.clip(marker + b.String())
	if !selected {
		style := m.styles.Body
		if m.width > 0 {
			style = style.Width(m.width)
		}
		return style.Render(line)
	}
	body := strings.TrimPrefix(line, marker)
	return m.styles.Marker.Render(selectedMark) + " " + m.styles.Selected.Render(body)
}

// clip cuts a line to the terminal width.
func (m Model) clip(line string) string {
	if m.width <= 0 {
		return line
	}
	return ansi.Truncate(line, m.width, "…")
}

// handleMouse maps clicks to the header and row interactions: clicking a
// sortable header sorts it, clicking a row toggles its selection.
func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action == tea.MouseActionPress {
		m.blurFilter()
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.moveCursor(-1)
		return nil
	case tea.MouseButtonWheelDown:
		m.moveCursor(1)
		return nil
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}

	col := m.columnAt(msg.X)
	switch {
	case msg.Y == 1:
		if col >= 0 {
			m.col = col
			return m.sortColumn(col)
		}
	case msg.Y == 2 && m.hasFilters():
		if col >= 0 {
			m.col = col
			return m.startFilter()
		}
	case msg.Y >= m.bodyTop():
		idx := m.offset + msg.Y - m.bodyTop()
		if idx < m.offset+m.bodyHeight() && idx < m.engine.Len() {
			m.cursor = idx
			m.toggleCursorRow()
		}
	}
	return nil
}

// columnAt returns the column under screen x, or -1.
func (m Model) columnAt(x int) int {
	pos := m.prefixWidth()
	sep := ansi.StringWidth(columnSep)
	for i, w := range m.widths {
		if x >= pos && x < pos+w {
			return i
		}
		pos += w + sep
	}
	return -1
}

func sortArrow(d grid.Direction) string {
	if d == grid.Descending {
		return "↓"
	}
	return "↑"
}

// fit truncates or pads s to exactly width cells.
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(s) > width {
		s = ansi.Truncate(s, width, "…")
	}
	if pad := width - ansi.StringWidth(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}
