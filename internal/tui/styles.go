package tui

import (
	"charm.land/bubbles/v2/key"
	"charm.land/lipgloss/v2"
	"github.com/xonecas/splitpane/internal/highlight"
	"github.com/xonecas/splitpane/internal/layout"
)

// Styles holds every lipgloss style the view uses, derived from the theme.
type Styles struct {
	Layout     layout.Styles
	StatusText lipgloss.Style
	StatusDrag lipgloss.Style
	StatusFill lipgloss.Style
}

func newStyles(theme string) Styles {
	p := highlight.ThemePalette(theme)
	bg := lipgloss.Color(p.Bg)
	fill := lipgloss.NewStyle().Background(bg)
	return Styles{
		Layout: layout.Styles{
			Divider:       lipgloss.NewStyle().Foreground(lipgloss.Color(p.Border)).Background(bg),
			DividerActive: lipgloss.NewStyle().Foreground(lipgloss.Color(p.Accent)).Background(bg).Bold(true),
			Title:         lipgloss.NewStyle().Foreground(lipgloss.Color(p.Dim)).Background(bg).Bold(true),
			Fill:          fill,
		},
		StatusText: lipgloss.NewStyle().Foreground(lipgloss.Color(p.Dim)).Background(bg),
		StatusDrag: lipgloss.NewStyle().Foreground(lipgloss.Color(p.Accent)).Background(bg),
		StatusFill: fill,
	}
}

// keyMap implements help.KeyMap.
type keyMap struct {
	Quit key.Binding
	Help key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Help: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	}
}

func (k keyMap) ShortHelp() []key.Binding { return []key.Binding{k.Help} }

// FullHelp keeps one binding per column so the status bar stays one row.
func (k keyMap) FullHelp() [][]key.Binding { return [][]key.Binding{{k.Help}, {k.Quit}} }
