// Package layout composes panes and split controllers into a tree, assigns
// each element a cell rectangle and renders the result.
//
// The tree is the geometry source for its controllers: an element's extent
// is read from the rectangle computed by the last Arrange.
package layout

import (
	"fmt"
	"image"
	"math"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/xonecas/splitpane/internal/pane"
	"github.com/xonecas/splitpane/internal/split"
)

// Node is a leaf (Pane set) or a split (First and Second set).
type Node struct {
	Pane *pane.Pane

	Axis   split.Axis
	Ratio  float64
	Extent string
	First  *Node
	Second *Node

	path string
	ctrl *split.Controller
}

// Leaf wraps a pane.
func Leaf(p *pane.Pane) *Node { return &Node{Pane: p} }

// Split joins two nodes along axis. ratio 0 means an even split.
func Split(axis split.Axis, ratio float64, extent string, first, second *Node) *Node {
	return &Node{Axis: axis, Ratio: ratio, Extent: extent, First: first, Second: second}
}

func (n *Node) isSplit() bool { return n.First != nil && n.Second != nil }

func (n *Node) element(part string) split.Element {
	return split.Element(n.path + "/" + part)
}

// SplitState is a read-only snapshot of one split for status display.
type SplitState struct {
	Element       split.Element
	Axis          split.Axis
	Ratio         float64
	Dragging      bool
	ContainerSize int
}

// Tree is a mounted layout.
type Tree struct {
	root   *Node
	splits []*Node
	rects  map[split.Element]image.Rectangle
	unbind []func()
	width  int
	height int
}

// Mount validates the node tree, creates one controller per split and binds
// each to src. Call Close to unmount.
func Mount(root *Node, src split.EventSource) (*Tree, error) {
	t := &Tree{root: root, rects: make(map[split.Element]image.Rectangle)}
	if err := t.mount(root, "root"); err != nil {
		return nil, err
	}
	for _, n := range t.splits {
		t.unbind = append(t.unbind, split.Bind(src, n.ctrl, n.element("divider"), n.element("first")))
	}
	log.Debug().Int("splits", len(t.splits)).Msg("layout: mounted")
	return t, nil
}

func (t *Tree) mount(n *Node, path string) error {
	if n == nil {
		return fmt.Errorf("layout: %s: empty node", path)
	}
	n.path = path
	switch {
	case n.Pane != nil && (n.First != nil || n.Second != nil):
		return fmt.Errorf("layout: %s: node is both a pane and a split", path)
	case n.Pane != nil:
		return nil
	case !n.isSplit():
		return fmt.Errorf("layout: %s: split needs two children", path)
	}
	if _, err := parseExtent(n.Extent); err != nil {
		return fmt.Errorf("layout: %s: %w", path, err)
	}
	n.ctrl = split.New(split.Config{
		Axis:            n.Axis,
		InitialRatio:    n.Ratio,
		ContainerExtent: n.Extent,
	}, t, n.element("container"))
	t.splits = append(t.splits, n)
	if err := t.mount(n.First, path+".1"); err != nil {
		return err
	}
	return t.mount(n.Second, path+".2")
}

// Close removes every event subscription.
func (t *Tree) Close() {
	for _, off := range t.unbind {
		off()
	}
	t.unbind = nil
}

// Extent implements split.GeometrySource.
func (t *Tree) Extent(el split.Element, axis split.Axis) (int, error) {
	r, ok := t.rects[el]
	if !ok {
		return 0, fmt.Errorf("element %q: %w", el, split.ErrMissingGeometry)
	}
	return axis.Extent(r), nil
}

// Ready reports whether Arrange has run.
func (t *Tree) Ready() bool { return t.width > 0 && t.height > 0 }

// Arrange lays the tree out in a width x height surface.
func (t *Tree) Arrange(width, height int) {
	t.width, t.height = width, height
	clear(t.rects)
	t.arrange(t.root, image.Rect(0, 0, width, height))
}

func (t *Tree) arrange(n *Node, r image.Rectangle) {
	if !n.isSplit() {
		t.rects[n.element("pane")] = r
		return
	}
	if h, _ := parseExtent(n.Extent); h != nil {
		r.Max.Y = r.Min.Y + h(r.Dy())
	}
	t.rects[n.element("container")] = r

	axis := n.Axis
	total := axis.Extent(r)
	first := cells(n.ctrl.Ratio(), total)
	firstR, divR, secondR := r, r, r
	if axis == split.Secondary {
		firstR.Max.Y = r.Min.Y + first
		divR.Min.Y, divR.Max.Y = firstR.Max.Y, min(firstR.Max.Y+1, r.Max.Y)
		secondR.Min.Y = divR.Max.Y
	} else {
		firstR.Max.X = r.Min.X + first
		divR.Min.X, divR.Max.X = firstR.Max.X, min(firstR.Max.X+1, r.Max.X)
		secondR.Min.X = divR.Max.X
	}
	t.rects[n.element("first")] = firstR
	t.rects[n.element("divider")] = divR
	t.rects[n.element("second")] = secondR
	t.arrange(n.First, firstR)
	t.arrange(n.Second, secondR)
}

// cells converts a ratio into the first region's size, clamped so the
// divider always fits. The controller never clamps; display does.
func cells(ratio float64, total int) int {
	if total <= 1 {
		return 0
	}
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		ratio = split.DefaultRatio
	}
	n := math.Round(ratio * float64(total) / 100)
	return int(min(max(n, 0), float64(total-1)))
}

// parseExtent reads a container extent: "" (none), "N" cells or "N%" of the
// parent height. The returned func maps parent height to split height.
func parseExtent(s string) (func(int) int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if pct, ok := strings.CutSuffix(s, "%"); ok {
		v, err := strconv.ParseFloat(pct, 64)
		if err != nil || v < 0 {
			return nil, fmt.Errorf("bad extent %q", s)
		}
		return func(parent int) int { return min(parent, int(float64(parent)*v/100)) }, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return nil, fmt.Errorf("bad extent %q", s)
	}
	return func(parent int) int { return min(parent, v) }, nil
}

// Rect returns the last computed rectangle of an element.
func (t *Tree) Rect(el split.Element) (image.Rectangle, bool) {
	r, ok := t.rects[el]
	return r, ok
}

// DividerAt returns the divider under the cell (x, y). Inner splits win over
// outer ones since they are mounted later.
func (t *Tree) DividerAt(x, y int) (split.Element, bool) {
	pt := image.Pt(x, y)
	for i := len(t.splits) - 1; i >= 0; i-- {
		el := t.splits[i].element("divider")
		if pt.In(t.rects[el]) {
			return el, true
		}
	}
	return "", false
}

// PaneAt returns the pane under the cell (x, y).
func (t *Tree) PaneAt(x, y int) (*pane.Pane, bool) {
	pt := image.Pt(x, y)
	var found *pane.Pane
	t.walk(t.root, func(n *Node) {
		if n.Pane != nil && pt.In(t.rects[n.element("pane")]) {
			found = n.Pane
		}
	})
	return found, found != nil
}

func (t *Tree) walk(n *Node, fn func(*Node)) {
	fn(n)
	if n.isSplit() {
		t.walk(n.First, fn)
		t.walk(n.Second, fn)
	}
}

// Dragging reports whether any split is mid-drag.
func (t *Tree) Dragging() bool {
	for _, n := range t.splits {
		if n.ctrl.Dragging() {
			return true
		}
	}
	return false
}

// Splits returns the state of every split in mount order.
func (t *Tree) Splits() []SplitState {
	out := make([]SplitState, 0, len(t.splits))
	for _, n := range t.splits {
		out = append(out, SplitState{
			Element:       n.ctrl.Container(),
			Axis:          n.Axis,
			Ratio:         n.ctrl.Ratio(),
			Dragging:      n.ctrl.Dragging(),
			ContainerSize: n.ctrl.ContainerSize(),
		})
	}
	return out
}

// Controller returns the controller of the split owning el (any of its
// container/first/divider/second elements).
func (t *Tree) Controller(el split.Element) (*split.Controller, bool) {
	for _, n := range t.splits {
		if strings.HasPrefix(string(el), n.path+"/") {
			return n.ctrl, true
		}
	}
	return nil, false
}
