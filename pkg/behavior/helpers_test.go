package behavior

import "github.com/lao-tseu-is-alive/go-sky-pilot/pkg/geometry"

var testWorld = geometry.Rect{X: 0, Y: 0, W: 4096, H: 400}

// newTestController builds a 32x16 craft centred on center.
func newTestController(center, vel geometry.Vector2D) *Controller {
	craft := &Craft{
		Rect:   geometry.NewRectFromCenter(center, 32, 16),
		Vel:    vel,
		MaxVel: geometry.Vector2D{X: 4, Y: 2},
	}
	c := NewController(craft, testWorld, DefaultTuning())
	c.Begin(0)
	return c
}

func body(id ID, kind Kind, r geometry.Rect) Body {
	return Body{ID: id, Kind: kind, Rect: r}
}
