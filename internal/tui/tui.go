// Package tui hosts a layout tree in a bubbletea program. It translates
// terminal mouse and window messages into split notifications and renders
// the arranged tree with a status bar.
package tui

import (
	"charm.land/bubbles/v2/help"
	tea "charm.land/bubbletea/v2"
	"github.com/xonecas/splitpane/internal/journal"
	"github.com/xonecas/splitpane/internal/layout"
	"github.com/xonecas/splitpane/internal/split"
)

const statusRows = 1

// Options configures a Model.
type Options struct {
	Tree    *layout.Tree
	Events  *split.Dispatcher
	Theme   string
	Journal *journal.Journal // nil disables recording
	Session string
}

// Model is the application model.
type Model struct {
	width  int
	height int

	tree   *layout.Tree
	events *split.Dispatcher
	styles Styles
	keys   keyMap
	help   help.Model

	journal *journal.Journal
	session string
}

// New creates the model. The tree must already be mounted on opts.Events.
func New(opts Options) Model {
	return Model{
		tree:    opts.Tree,
		events:  opts.Events,
		styles:  newStyles(opts.Theme),
		keys:    defaultKeyMap(),
		help:    help.New(),
		journal: opts.Journal,
		session: opts.Session,
	}
}

// Init initializes the TUI (required by BubbleTea).
func (m Model) Init() tea.Cmd {
	return nil
}

// Dragging reports whether any split in the tree is mid-drag.
func (m Model) Dragging() bool {
	return m.tree.Dragging()
}

func (m Model) contentHeight() int {
	return max(m.height-statusRows, 0)
}

// emit records a notification (when journaling) and delivers it. Resize
// entries carry the arranged size so replays can rebuild geometry.
func (m *Model) emit(scope split.Scope, kind split.EventKind, x, y int) {
	m.journal.Record(m.session, journal.Entry{Scope: scope, Kind: kind, X: x, Y: y})
	ev := split.Event{X: x, Y: y}
	if kind == split.Resize {
		ev = split.Event{}
	}
	m.events.Emit(scope, kind, ev)
}
