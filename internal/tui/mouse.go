package tui

import (
	tea "charm.land/bubbletea/v2"
	"github.com/xonecas/splitpane/internal/split"
)

// ---------------------------------------------------------------------------
// Mouse filter: drop idle motion at program level.
// ---------------------------------------------------------------------------

// MouseEventFilter drops motion events while no split is dragging; nothing
// reacts to them and each one would cost a render. Pass to tea.WithFilter.
// Never drops clicks, releases or wheel events.
func MouseEventFilter(model tea.Model, msg tea.Msg) tea.Msg {
	if _, ok := msg.(tea.MouseMotionMsg); !ok {
		return msg
	}
	if m, ok := model.(Model); ok && !m.Dragging() {
		return nil
	}
	return msg
}

// ---------------------------------------------------------------------------
// Mouse handling: divider press, document-wide move/release, pane scroll.
// ---------------------------------------------------------------------------

const wheelStep = 3

// mouseXY extracts X, Y from any mouse message via the MouseMsg interface.
func mouseXY(msg tea.MouseMsg) (int, int) {
	ms := msg.Mouse()
	return ms.X, ms.Y
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.tree.Ready() {
		return m, nil
	}
	x, y := mouseXY(msg)

	switch ev := msg.(type) {
	case tea.MouseClickMsg:
		if ev.Button != tea.MouseLeft {
			return m, nil
		}
		if el, ok := m.tree.DividerAt(x, y); ok {
			m.emit(split.DividerScope(el), split.Press, x, y)
		}
	case tea.MouseMotionMsg:
		m.emit(split.Document, split.Move, x, y)
	case tea.MouseReleaseMsg:
		m.emit(split.Document, split.Release, x, y)
	case tea.MouseWheelMsg:
		m.handleWheel(ev, x, y)
		return m, nil
	}

	m.tree.Arrange(m.width, m.contentHeight())
	return m, nil
}

// handleWheel scrolls the pane under the pointer. Panes ignore the pointer
// entirely while a divider is being dragged.
func (m *Model) handleWheel(ev tea.MouseWheelMsg, x, y int) {
	if m.tree.Dragging() {
		return
	}
	p, ok := m.tree.PaneAt(x, y)
	if !ok {
		return
	}
	switch ev.Button {
	case tea.MouseWheelUp:
		p.ScrollBy(-wheelStep)
	case tea.MouseWheelDown:
		p.ScrollBy(wheelStep)
	}
}
