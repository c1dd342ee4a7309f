package tui

import (
	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"
	"github.com/xonecas/splitpane/internal/split"
)

// handleResize applies a window size change: re-derive the layout, then
// tell every controller so cached container sizes follow the window.
func (m *Model) handleResize(msg tea.WindowSizeMsg) {
	m.width, m.height = msg.Width, msg.Height
	m.help.SetWidth(m.width / 2)
	m.tree.Arrange(m.width, m.contentHeight())
	m.emit(split.Viewport, split.Resize, m.width, m.contentHeight())
	log.Debug().Int("width", m.width).Int("height", m.height).Msg("tui: resize")
}
