// Package split implements the drag-resize state machine behind a two-region
// split layout: a controller that turns divider presses and pointer motion
// into a size ratio, plus the event contract the host wires it to.
package split

import (
	"fmt"
	"image"
	"strings"
)

// Axis selects the screen dimension a split divides along.
type Axis int

const (
	// Primary arranges regions left/right. Sizes vary along X (width).
	Primary Axis = iota
	// Secondary arranges regions top/bottom. Sizes vary along Y (height).
	Secondary
)

// ParseAxis accepts the names used in config files and flags.
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "horizontal", "primary", "row", "x":
		return Primary, nil
	case "vertical", "secondary", "column", "y":
		return Secondary, nil
	}
	return Primary, fmt.Errorf("unknown axis %q", s)
}

func (a Axis) String() string {
	if a == Secondary {
		return "vertical"
	}
	return "horizontal"
}

// Coordinate picks the pointer coordinate that moves along the axis.
func (a Axis) Coordinate(x, y int) int {
	if a == Secondary {
		return y
	}
	return x
}

// Extent picks the rect dimension measured along the axis.
func (a Axis) Extent(r image.Rectangle) int {
	if a == Secondary {
		return r.Dy()
	}
	return r.Dx()
}

// Cross picks the rect dimension perpendicular to the axis.
func (a Axis) Cross(r image.Rectangle) int {
	if a == Secondary {
		return r.Dx()
	}
	return r.Dy()
}

// SizeProperty names the sizing property applied to the first region.
func (a Axis) SizeProperty() string {
	if a == Secondary {
		return "height"
	}
	return "width"
}

// Direction is the flex direction the regions are laid out in.
func (a Axis) Direction() string {
	if a == Secondary {
		return "column"
	}
	return "row"
}

// Cursor is the resize cursor hint surfaced while dragging.
func (a Axis) Cursor() string {
	if a == Secondary {
		return "row-resize"
	}
	return "col-resize"
}

// Glyph is the cell drawn for the divider.
func (a Axis) Glyph() string {
	if a == Secondary {
		return "─"
	}
	return "│"
}
