package tui

import (
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
)

// ---------------------------------------------------------------------------
// View
// ---------------------------------------------------------------------------

func (m Model) View() tea.View {
	v := tea.NewView(m.renderContent())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeAllMotion
	return v
}

// renderContent produces the string content for the view.
func (m Model) renderContent() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	var b strings.Builder
	if body := m.tree.Render(m.styles.Layout); body != "" {
		b.WriteString(body)
		b.WriteByte('\n')
	}
	m.renderStatusBar(&b)
	return b.String()
}

// renderStatusBar writes one row: split states on the left, key help on the
// right.
func (m Model) renderStatusBar(b *strings.Builder) {
	var parts []string
	for _, s := range m.tree.Splits() {
		label := s.Axis.String() + " " + strconv.FormatFloat(s.Ratio, 'f', 1, 64) + "%"
		if s.Dragging {
			parts = append(parts, m.styles.StatusDrag.Render(label+" "+s.Axis.Cursor()))
			continue
		}
		parts = append(parts, m.styles.StatusText.Render(label))
	}
	left := m.styles.StatusText.Render(" ") + strings.Join(parts, m.styles.StatusText.Render("  "))
	right := m.help.View(m.keys) + m.styles.StatusText.Render(" ")

	gap := m.width - ansi.StringWidth(left) - ansi.StringWidth(right)
	if gap < 1 {
		b.WriteString(ansi.Truncate(left, m.width, "…"))
		return
	}
	b.WriteString(left)
	b.WriteString(m.styles.StatusFill.Render(strings.Repeat(" ", gap)))
	b.WriteString(right)
}
