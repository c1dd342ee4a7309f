package tui

import (
	"math"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/xonecas/splitpane/internal/journal"
	"github.com/xonecas/splitpane/internal/layout"
	"github.com/xonecas/splitpane/internal/pane"
	"github.com/xonecas/splitpane/internal/split"
)

func newTestModel(t *testing.T, j *journal.Journal, session string) Model {
	t.Helper()
	right := strings.Repeat("line\n", 20)
	root := layout.Split(split.Primary, 50, "",
		layout.Leaf(pane.New("", "L")),
		layout.Leaf(pane.New("", right)))
	d := split.NewDispatcher()
	tree, err := layout.Mount(root, d)
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	t.Cleanup(tree.Close)
	return New(Options{Tree: tree, Events: d, Journal: j, Session: session})
}

func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, _ := m.Update(msg)
	return updated.(Model)
}

// 11 columns puts the divider at x=6; one row goes to the status bar.
func sized(t *testing.T, m Model) Model {
	return step(t, m, tea.WindowSizeMsg{Width: 11, Height: 4})
}

func TestResizeArrangesTree(t *testing.T) {
	m := sized(t, newTestModel(t, nil, ""))
	if !m.tree.Ready() {
		t.Fatal("tree not arranged after resize")
	}
	r, _ := m.tree.Rect("root/container")
	if r.Dx() != 11 || r.Dy() != 3 {
		t.Errorf("container = %v, want 11x3", r)
	}
	if got := m.tree.Splits()[0].ContainerSize; got != 11 {
		t.Errorf("container size = %d, want 11", got)
	}
}

func TestMouseIgnoredBeforeFirstResize(t *testing.T) {
	m := newTestModel(t, nil, "")
	m = step(t, m, tea.MouseClickMsg{X: 6, Y: 0, Button: tea.MouseLeft})
	if m.Dragging() {
		t.Error("press before layout should be ignored")
	}
}

func TestDividerDrag(t *testing.T) {
	m := sized(t, newTestModel(t, nil, ""))

	m = step(t, m, tea.MouseClickMsg{X: 6, Y: 1, Button: tea.MouseLeft})
	if !m.Dragging() {
		t.Fatal("expected drag after divider press")
	}
	m = step(t, m, tea.MouseMotionMsg{X: 8, Y: 2, Button: tea.MouseLeft})

	want := 8.0 * 100 / 11
	if got := m.tree.Splits()[0].Ratio; math.Abs(got-want) > 1e-9 {
		t.Errorf("ratio = %v, want %v", got, want)
	}
	r, _ := m.tree.Rect("root/first")
	if r.Dx() != 8 {
		t.Errorf("first width = %d, want 8", r.Dx())
	}

	m = step(t, m, tea.MouseReleaseMsg{X: 8, Y: 2, Button: tea.MouseLeft})
	if m.Dragging() {
		t.Error("still dragging after release")
	}
}

func TestPressOffDividerDoesNothing(t *testing.T) {
	m := sized(t, newTestModel(t, nil, ""))
	m = step(t, m, tea.MouseClickMsg{X: 2, Y: 1, Button: tea.MouseLeft})
	m = step(t, m, tea.MouseClickMsg{X: 6, Y: 1, Button: tea.MouseRight})
	if m.Dragging() {
		t.Error("only a left press on a divider starts a drag")
	}
	if got := m.tree.Splits()[0].Ratio; got != 50 {
		t.Errorf("ratio = %v, want 50", got)
	}
}

func TestMouseEventFilter(t *testing.T) {
	m := sized(t, newTestModel(t, nil, ""))

	motion := tea.MouseMotionMsg{X: 3, Y: 1}
	if MouseEventFilter(m, motion) != nil {
		t.Error("idle motion should be dropped")
	}
	click := tea.MouseClickMsg{X: 3, Y: 1, Button: tea.MouseLeft}
	if MouseEventFilter(m, click) == nil {
		t.Error("clicks are never dropped")
	}

	m = step(t, m, tea.MouseClickMsg{X: 6, Y: 1, Button: tea.MouseLeft})
	if MouseEventFilter(m, motion) == nil {
		t.Error("motion during a drag must pass")
	}
}

func TestWheelScrollsPaneUnderPointer(t *testing.T) {
	m := sized(t, newTestModel(t, nil, ""))
	p, _ := m.tree.PaneAt(9, 1)

	m = step(t, m, tea.MouseWheelMsg{X: 9, Y: 1, Button: tea.MouseWheelDown})
	if p.Scroll() != wheelStep {
		t.Errorf("scroll = %d, want %d", p.Scroll(), wheelStep)
	}

	m = step(t, m, tea.MouseClickMsg{X: 6, Y: 1, Button: tea.MouseLeft})
	step(t, m, tea.MouseWheelMsg{X: 9, Y: 1, Button: tea.MouseWheelDown})
	if p.Scroll() != wheelStep {
		t.Errorf("wheel during drag scrolled to %d", p.Scroll())
	}
}

func TestStatusBarShowsDrag(t *testing.T) {
	m := step(t, newTestModel(t, nil, ""), tea.WindowSizeMsg{Width: 60, Height: 4})
	out := ansi.Strip(m.renderContent())
	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d rows, want 4", len(lines))
	}
	status := lines[3]
	if !strings.Contains(status, "horizontal 50.0%") {
		t.Errorf("status = %q", status)
	}
	if w := ansi.StringWidth(status); w != 60 {
		t.Errorf("status width = %d, want 60", w)
	}

	m = step(t, m, tea.MouseClickMsg{X: 30, Y: 0, Button: tea.MouseLeft})
	status = ansi.Strip(m.renderContent())
	if !strings.Contains(status, split.Primary.Cursor()) {
		t.Errorf("drag status missing cursor hint: %q", status)
	}
}

func TestQuitKey(t *testing.T) {
	m := newTestModel(t, nil, "")
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'q', Text: "q"})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestGesturesAreJournaled(t *testing.T) {
	j, err := journal.Open(filepath.Join(t.TempDir(), "journal.db"), 0)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { j.Close() })
	id, err := j.Begin("test")
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}

	m := sized(t, newTestModel(t, j, id))
	m = step(t, m, tea.MouseClickMsg{X: 6, Y: 1, Button: tea.MouseLeft})
	m = step(t, m, tea.MouseMotionMsg{X: 8, Y: 1, Button: tea.MouseLeft})
	step(t, m, tea.MouseReleaseMsg{X: 8, Y: 1, Button: tea.MouseLeft})
	j.Flush()

	entries, err := j.Events(id)
	if err != nil {
		t.Fatalf("Events: %v", err)
	}
	kinds := make([]split.EventKind, 0, len(entries))
	for _, e := range entries {
		kinds = append(kinds, e.Kind)
	}
	want := []split.EventKind{split.Resize, split.Press, split.Move, split.Release}
	if len(kinds) != len(want) {
		t.Fatalf("kinds = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("entry %d = %v, want %v", i, kinds[i], want[i])
		}
	}
	if entries[0].X != 11 || entries[0].Y != 3 {
		t.Errorf("resize entry = %+v, want 11x3", entries[0])
	}
}
