package split

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

// DefaultRatio is the even split a controller starts at.
const DefaultRatio = 50.0

// ErrMissingGeometry is returned by a GeometrySource for an element that is
// not attached (not laid out yet).
var ErrMissingGeometry = errors.New("missing geometry")

// Element is an opaque handle to a rendered element.
type Element string

// GeometrySource resolves an element's current size along an axis, in cells.
type GeometrySource interface {
	Extent(el Element, axis Axis) (int, error)
}

// Config is what a controller is constructed from.
type Config struct {
	Axis Axis
	// InitialRatio is the starting percentage of the first region.
	// Zero means DefaultRatio.
	InitialRatio float64
	// ContainerExtent is applied verbatim by the renderer as a size
	// constraint on the whole split. Empty means none.
	ContainerExtent string
}

// DragSession is the state captured when the divider is pressed.
type DragSession struct {
	AnchorCoordinate int
	AnchorSize       float64
}

// Controller owns the interaction state of one split instance.
//
// All methods run on the host's event loop; the controller is not safe for
// concurrent use.
type Controller struct {
	axis      Axis
	extent    string
	geom      GeometrySource
	container Element

	containerSize int // 0 = unknown
	ratio         float64
	session       *DragSession
}

// New creates an idle controller.
func New(cfg Config, geom GeometrySource, container Element) *Controller {
	ratio := cfg.InitialRatio
	if ratio == 0 {
		ratio = DefaultRatio
	}
	return &Controller{
		axis:      cfg.Axis,
		extent:    cfg.ContainerExtent,
		geom:      geom,
		container: container,
		ratio:     ratio,
	}
}

// OnContainerResize overwrites the cached container size. Valid in both
// states; never touches the ratio or an active session.
func (c *Controller) OnContainerResize(size int) {
	c.containerSize = size
}

// OnDividerPress starts a drag session, replacing any existing one.
func (c *Controller) OnDividerPress(coord int, siblingSize float64) {
	c.session = &DragSession{AnchorCoordinate: coord, AnchorSize: siblingSize}
	log.Debug().
		Str("container", string(c.container)).
		Int("anchor", coord).
		Float64("size", siblingSize).
		Msg("split: drag start")
}

// OnPointerMove recomputes the ratio from the pointer coordinate. No-op when
// idle. The result is not clamped.
func (c *Controller) OnPointerMove(coord int) {
	if c.session == nil {
		return
	}
	if c.containerSize == 0 {
		c.containerSize = c.mustContainerExtent()
	}
	delta := coord - c.session.AnchorCoordinate
	c.ratio = (c.session.AnchorSize + float64(delta)) * 100 / float64(c.containerSize)
}

// OnDividerRelease ends the drag session and refreshes the container size
// so the next drag starts from current geometry.
func (c *Controller) OnDividerRelease() {
	if c.session != nil {
		log.Debug().
			Str("container", string(c.container)).
			Float64("ratio", c.ratio).
			Msg("split: drag end")
	}
	c.session = nil
	c.OnContainerResize(c.mustContainerExtent())
}

// mustContainerExtent reads the container size. A missing element means the
// controller was driven before mount; that is a lifecycle bug, so panic
// rather than cache a wrong size.
func (c *Controller) mustContainerExtent() int {
	size, err := c.geom.Extent(c.container, c.axis)
	if err != nil {
		panic(fmt.Errorf("split: resolve container %q: %w", c.container, err))
	}
	return size
}

// Ratio is the percentage of the container allotted to the first region.
func (c *Controller) Ratio() float64 { return c.ratio }

// Dragging reports whether a drag session is active.
func (c *Controller) Dragging() bool { return c.session != nil }

// Session returns a copy of the active session, if any.
func (c *Controller) Session() (DragSession, bool) {
	if c.session == nil {
		return DragSession{}, false
	}
	return *c.session, true
}

// Axis is the controller's fixed axis.
func (c *Controller) Axis() Axis { return c.axis }

// ContainerExtent is the configured size constraint for the whole split.
func (c *Controller) ContainerExtent() string { return c.extent }

// ContainerSize is the cached container size; 0 means not yet resolved.
func (c *Controller) ContainerSize() int { return c.containerSize }

// Container is the element the controller measures.
func (c *Controller) Container() Element { return c.container }
