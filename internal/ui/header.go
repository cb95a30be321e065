package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func (m Model) renderStatusBar() string {
	left := []string{
		m.styles.Logo.Render(m.title),
		m.styles.Text.Render(fmt.Sprintf("%d/%d rows", m.engine.Len(), len(m.engine.Dataset()))),
	}
	if sort := m.engine.Sort(); sort.IsSet() {
		left = append(left, m.styles.AccentText.Render("sort "+sort.String()))
	}
	if n := len(m.engine.Selected()); n > 0 {
		left = append(left, m.styles.AccentText.Render(fmt.Sprintf("%d selected", n)))
	}

	var right []string
	if m.loadErr != nil {
		label := "reload failed"
		if m.stale {
			label = "stale"
		}
		right = append(right, m.styles.DangerText.Render(label+": "+m.loadErr.Error()))
	}
	right = append(right, m.styles.MutedText.Render(m.theme.Name))

	sep := m.styles.FaintText.Render(" · ")
	return m.bar(m.styles.Header, strings.Join(left, sep), strings.Join(right, sep))
}

func (m Model) renderFooter() string {
	if m.focus == focusFilter {
		h := m.help
		h.ShowAll = false
		return m.bar(m.styles.Footer, h.ShortHelpView(m.keys.filterHelp()), "")
	}
	if m.statusMsg != "" {
		return m.bar(m.styles.Footer, m.styles.WarningText.Render(m.statusMsg), "")
	}
	return m.styles.Footer.Render(m.help.View(m.keys))
}

// bar lays out left and right content on a single full-width line.
func (m Model) bar(style lipgloss.Style, left, right string) string {
	if m.width <= 0 {
		if right == "" {
			return style.Render(left)
		}
		return style.Render(left + "  " + right)
	}
	inner := max(m.width-style.GetHorizontalFrameSize(), 0)
	gap := inner - ansi.StringWidth(left) - ansi.StringWidth(right)
	line := left
	if gap >= 1 {
		line += strings.Repeat(" ", gap) + right
	}
	return style.Width(m.width).Render(ansi.Truncate(line, inner, "…"))
}
