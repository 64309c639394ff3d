package behavior

import "github.com/lao-tseu-is-alive/go-sky-pilot/pkg/geometry"

// Window names a rolling-average buffer.
type Window uint8

const (
	WindowArrive Window = iota
	WindowAvoid
	WindowSeek
	WindowSteering
	WindowPath

	numWindows
)

// windowSizes are fixed per force type.
var windowSizes = [numWindows]int{
	WindowArrive:   8,
	WindowAvoid:    16,
	WindowSeek:     8,
	WindowSteering: 8,
	WindowPath:     16,
}

// WindowSize returns the sample count of a window.
func WindowSize(w Window) int {
	if w >= numWindows {
		return 1
	}
	return windowSizes[w]
}

// Smoother owns one rolling average per window for a single agent.
// Unlike the ledger it carries state across ticks.
type Smoother struct {
	windows [numWindows]*geometry.RollingAverage
}

// NewSmoother allocates every window at its fixed size.
func NewSmoother() *Smoother {
	s := &Smoother{}
	for w := Window(0); w < numWindows; w++ {
		s.windows[w] = geometry.NewRollingAverage(windowSizes[w])
	}
	return s
}

// Average pushes force into the window and returns the mean of its samples.
func (s *Smoother) Average(force geometry.Vector2D, w Window) geometry.Vector2D {
	if w >= numWindows {
		return force
	}
	return s.windows[w].Push(force)
}

// Reset empties one window.
func (s *Smoother) Reset(w Window) {
	if w < numWindows {
		s.windows[w].Reset()
	}
}
