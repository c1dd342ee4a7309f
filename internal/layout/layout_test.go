package layout

import (
	"errors"
	"image"
	"math"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/exp/golden"
	"github.com/xonecas/splitpane/internal/pane"
	"github.com/xonecas/splitpane/internal/split"
)

func leaf(text string) *Node { return Leaf(pane.New("", text)) }

func mountTest(t *testing.T, root *Node) (*Tree, *split.Dispatcher) {
	t.Helper()
	d := split.NewDispatcher()
	tree, err := Mount(root, d)
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	t.Cleanup(tree.Close)
	return tree, d
}

func TestArrangeHorizontal(t *testing.T) {
	tree, _ := mountTest(t, Split(split.Primary, 50, "", leaf("L"), leaf("R")))
	tree.Arrange(11, 3)

	checks := map[split.Element]image.Rectangle{
		"root/container": image.Rect(0, 0, 11, 3),
		"root/first":     image.Rect(0, 0, 6, 3),
		"root/divider":   image.Rect(6, 0, 7, 3),
		"root/second":    image.Rect(7, 0, 11, 3),
	}
	for el, want := range checks {
		got, ok := tree.Rect(el)
		if !ok || got != want {
			t.Errorf("%s = %v (ok=%v), want %v", el, got, ok, want)
		}
	}
	if got := tree.Splits()[0].Element; got != "root/container" {
		t.Errorf("split element = %q, want root/container", got)
	}
}

func TestArrangeExtent(t *testing.T) {
	tree, _ := mountTest(t, Split(split.Secondary, 50, "50%", leaf("T"), leaf("B")))
	tree.Arrange(10, 10)
	r, _ := tree.Rect("root/container")
	if r.Dy() != 5 {
		t.Errorf("container height = %d, want 5", r.Dy())
	}

	tree2, _ := mountTest(t, Split(split.Primary, 50, "40", leaf("L"), leaf("R")))
	tree2.Arrange(10, 10)
	r, _ = tree2.Rect("root/container")
	if r.Dy() != 10 {
		t.Errorf("extent larger than parent: height = %d, want 10", r.Dy())
	}
}

func TestMountErrors(t *testing.T) {
	d := split.NewDispatcher()
	for name, root := range map[string]*Node{
		"nil":        nil,
		"one child":  {First: leaf("x")},
		"bad extent": Split(split.Primary, 50, "abc", leaf("a"), leaf("b")),
		"both":       {Pane: pane.New("", ""), First: leaf("a"), Second: leaf("b")},
	} {
		if _, err := Mount(root, d); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestExtentMissingBeforeArrange(t *testing.T) {
	tree, _ := mountTest(t, Split(split.Primary, 50, "", leaf("L"), leaf("R")))
	_, err := tree.Extent("root/container", split.Primary)
	if !errors.Is(err, split.ErrMissingGeometry) {
		t.Fatalf("err = %v, want ErrMissingGeometry", err)
	}
	if tree.Ready() {
		t.Error("tree should not be ready before Arrange")
	}
}

func TestDragThroughDispatcher(t *testing.T) {
	tree, d := mountTest(t, Split(split.Primary, 50, "", leaf("L"), leaf("R")))
	tree.Arrange(11, 3)

	el, ok := tree.DividerAt(6, 1)
	if !ok || el != "root/divider" {
		t.Fatalf("DividerAt = %q, %v", el, ok)
	}
	d.Emit(split.DividerScope(el), split.Press, split.Event{X: 6, Y: 1})
	if !tree.Dragging() {
		t.Fatal("expected dragging")
	}
	d.Emit(split.Document, split.Move, split.Event{X: 8, Y: 2})
	tree.Arrange(11, 3)

	if r, _ := tree.Rect("root/first"); r.Dx() != 8 {
		t.Errorf("first width = %d, want 8", r.Dx())
	}
	d.Emit(split.Document, split.Release, split.Event{X: 8, Y: 2})
	if tree.Dragging() {
		t.Error("expected idle after release")
	}
	st := tree.Splits()
	if len(st) != 1 || st[0].ContainerSize != 11 {
		t.Errorf("splits = %+v", st)
	}
}

func TestNestedDividerHitsInnerSplit(t *testing.T) {
	root := Split(split.Primary, 50, "", leaf("A"),
		Split(split.Secondary, 50, "", leaf("B"), leaf("C")))
	tree, d := mountTest(t, root)
	tree.Arrange(11, 5)

	el, ok := tree.DividerAt(9, 3)
	if !ok || el != "root.2/divider" {
		t.Fatalf("DividerAt = %q, %v", el, ok)
	}
	d.Emit(split.DividerScope(el), split.Press, split.Event{X: 9, Y: 3})
	states := tree.Splits()
	if states[0].Dragging || !states[1].Dragging {
		t.Errorf("wrong split dragging: %+v", states)
	}
	ctrl, ok := tree.Controller(el)
	if !ok || ctrl.Axis() != split.Secondary {
		t.Errorf("Controller(%q) = %v, %v", el, ctrl, ok)
	}
}

func TestPaneAt(t *testing.T) {
	a, b := pane.New("", "a"), pane.New("", "b")
	tree, _ := mountTest(t, Split(split.Primary, 50, "", Leaf(a), Leaf(b)))
	tree.Arrange(10, 2)
	if p, ok := tree.PaneAt(1, 1); !ok || p != a {
		t.Error("expected first pane")
	}
	if p, ok := tree.PaneAt(9, 0); !ok || p != b {
		t.Error("expected second pane")
	}
	if _, ok := tree.PaneAt(5, 0); ok {
		t.Error("divider is not a pane")
	}
}

func TestCellsClampsForDisplay(t *testing.T) {
	tests := []struct {
		ratio float64
		total int
		want  int
	}{
		{50, 11, 6},
		{150, 10, 9},
		{-10, 10, 0},
		{math.Inf(1), 10, 5},
		{math.NaN(), 10, 5},
		{50, 1, 0},
	}
	for _, tt := range tests {
		if got := cells(tt.ratio, tt.total); got != tt.want {
			t.Errorf("cells(%v, %d) = %d, want %d", tt.ratio, tt.total, got, tt.want)
		}
	}
}

func TestRenderGolden(t *testing.T) {
	plain := lipgloss.NewStyle()
	st := Styles{Divider: plain, DividerActive: plain, Title: plain, Fill: plain}

	tests := []struct {
		name string
		root *Node
		w, h int
	}{
		{"horizontal", Split(split.Primary, 50, "", leaf("L"), leaf("R")), 11, 3},
		{"nested", Split(split.Primary, 50, "", leaf("A"),
			Split(split.Secondary, 50, "", leaf("B"), leaf("C"))), 11, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, _ := mountTest(t, tt.root)
			tree.Arrange(tt.w, tt.h)
			golden.RequireEqual(t, []byte(ansi.Strip(tree.Render(st))))
		})
	}
}
