package journal

import (
	"github.com/rs/zerolog/log"
	"github.com/xonecas/splitpane/internal/split"
)

// Arranger re-lays out a surface; layout.Tree satisfies it.
type Arranger interface {
	Arrange(width, height int)
}

// Replay feeds entries to src in order, re-arranging after each one the way
// the interactive host does. Pointer entries before the first resize are
// skipped since nothing is laid out yet. Returns how many entries ran.
func Replay(entries []Entry, src *split.Dispatcher, target Arranger) int {
	w, h := 0, 0
	applied := 0
	for _, e := range entries {
		if e.Kind == split.Resize {
			w, h = e.X, e.Y
			target.Arrange(w, h)
			src.Emit(split.Viewport, split.Resize, split.Event{})
			applied++
			continue
		}
		if w == 0 || h == 0 {
			continue
		}
		src.Emit(e.Scope, e.Kind, split.Event{X: e.X, Y: e.Y})
		target.Arrange(w, h)
		applied++
	}
	log.Debug().Int("entries", len(entries)).Int("applied", applied).Msg("journal: replay done")
	return applied
}
