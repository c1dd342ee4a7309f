package layout

import (
	"fmt"

	"github.com/xonecas/splitpane/internal/config"
	"github.com/xonecas/splitpane/internal/pane"
	"github.com/xonecas/splitpane/internal/split"
)

// FromConfig builds a node tree from a validated config layout. File panes
// are read and highlighted with theme.
func FromConfig(n *config.Node, theme string) (*Node, error) {
	if n == nil {
		return nil, fmt.Errorf("layout: empty config node")
	}
	if !n.IsSplit() {
		if n.File == "" {
			return Leaf(pane.New(n.Title, n.Text)), nil
		}
		p, err := pane.FromFile(n.File, theme)
		if err != nil {
			return nil, err
		}
		if n.Title != "" {
			p.Title = n.Title
		}
		return Leaf(p), nil
	}

	axis, err := split.ParseAxis(n.Axis)
	if err != nil {
		return nil, err
	}
	first, err := FromConfig(n.First, theme)
	if err != nil {
		return nil, err
	}
	second, err := FromConfig(n.Second, theme)
	if err != nil {
		return nil, err
	}
	return Split(axis, n.RatioOrDefault(), n.Extent, first, second), nil
}

// FromFiles builds the command-line layout: one file is split against an
// empty pane, two files sit side by side along axis.
func FromFiles(files []string, axis split.Axis, ratio float64, extent, theme string) (*Node, error) {
	if len(files) == 0 || len(files) > 2 {
		return nil, fmt.Errorf("layout: expected 1 or 2 files, got %d", len(files))
	}
	panes := make([]*Node, 0, 2)
	for _, f := range files {
		p, err := pane.FromFile(f, theme)
		if err != nil {
			return nil, err
		}
		panes = append(panes, Leaf(p))
	}
	if len(panes) == 1 {
		panes = append(panes, Leaf(pane.New("", "")))
	}
	return Split(axis, ratio, extent, panes[0], panes[1]), nil
}
