package split

import "fmt"

// Bind subscribes c to src: presses on the divider, moves and releases on the
// document, resizes on the viewport. sibling is the region before the
// divider, measured at press time. The returned func unsubscribes all four.
func Bind(src EventSource, c *Controller, divider, sibling Element) func() {
	axis := c.Axis()
	offs := []func(){
		src.On(DividerScope(divider), Press, func(ev Event) {
			size, err := c.geom.Extent(sibling, axis)
			if err != nil {
				panic(fmt.Errorf("split: resolve sibling %q: %w", sibling, err))
			}
			c.OnDividerPress(axis.Coordinate(ev.X, ev.Y), float64(size))
		}),
		src.On(Document, Move, func(ev Event) {
			c.OnPointerMove(axis.Coordinate(ev.X, ev.Y))
		}),
		src.On(Document, Release, func(Event) {
			c.OnDividerRelease()
		}),
		src.On(Viewport, Resize, func(Event) {
			c.OnContainerResize(c.mustContainerExtent())
		}),
	}
	return func() {
		for _, off := range offs {
			off()
		}
	}
}
