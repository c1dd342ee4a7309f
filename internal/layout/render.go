package layout

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// Styles used when rendering a tree.
type Styles struct {
	Divider       lipgloss.Style
	DividerActive lipgloss.Style
	Title         lipgloss.Style
	Fill          lipgloss.Style
}

// Render draws the arranged tree, one string per row joined by newlines.
func (t *Tree) Render(st Styles) string {
	if !t.Ready() {
		return ""
	}
	return strings.Join(t.render(t.root, t.width, t.height, st), "\n")
}

// render returns exactly h rows of w cells for n.
func (t *Tree) render(n *Node, w, h int, st Styles) []string {
	if h <= 0 {
		return nil
	}
	if !n.isSplit() {
		return n.Pane.Render(w, h, st.Title, st.Fill)
	}

	r := t.rects[n.element("container")]
	first := t.rects[n.element("first")]
	second := t.rects[n.element("second")]
	div := t.rects[n.element("divider")]

	divStyle := st.Divider
	if n.ctrl.Dragging() {
		divStyle = st.DividerActive
	}

	var rows []string
	if n.Axis.Direction() == "column" {
		rows = append(rows, t.render(n.First, w, first.Dy(), st)...)
		if div.Dy() > 0 {
			rows = append(rows, divStyle.Render(strings.Repeat(n.Axis.Glyph(), w)))
		}
		rows = append(rows, t.render(n.Second, w, second.Dy(), st)...)
	} else {
		left := t.render(n.First, first.Dx(), r.Dy(), st)
		right := t.render(n.Second, second.Dx(), r.Dy(), st)
		glyph := ""
		if div.Dx() > 0 {
			glyph = divStyle.Render(n.Axis.Glyph())
		}
		rows = make([]string, r.Dy())
		for i := range rows {
			rows[i] = left[i] + glyph + right[i]
		}
	}

	// Rows below an extent-constrained split stay blank.
	blank := st.Fill.Render(strings.Repeat(" ", w))
	for len(rows) < h {
		rows = append(rows, blank)
	}
	return rows
}
