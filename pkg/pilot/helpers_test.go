package pilot

import (
	"github.com/lao-tseu-is-alive/go-sky-pilot/pkg/behavior"
	"github.com/lao-tseu-is-alive/go-sky-pilot/pkg/geometry"
	golog "github.com/tochemey/goakt/v3/log"
)

type fakeWorld struct {
	bounds geometry.Rect
	bodies map[behavior.ID]behavior.Body
	pads   []behavior.Body
}

func newFakeWorld() *fakeWorld {
	return &fakeWorld{
		bounds: geometry.Rect{X: 0, Y: 0, W: 4096, H: 400},
		bodies: make(map[behavior.ID]behavior.Body),
	}
}

func (w *fakeWorld) put(bodies ...behavior.Body) {
	for _, b := range bodies {
		w.bodies[b.ID] = b
		if b.Kind == behavior.KindLandingPad {
			w.pads = append(w.pads, b)
		}
	}
}

func (w *fakeWorld) Lookup(id behavior.ID) (behavior.Body, bool) {
	b, ok := w.bodies[id]
	return b, ok
}

func (w *fakeWorld) Nearby(q Query) []behavior.Body {
	var out []behavior.Body
	for _, b := range w.bodies {
		if q.Matches(b) {
			out = append(out, b)
		}
	}
	SortNearest(q.Origin, out)
	return out
}

func (w *fakeWorld) Bounds() geometry.Rect { return w.bounds }

func (w *fakeWorld) Pads() []behavior.Body { return w.pads }

type weaponLog struct {
	fire  []bool
	bomb  []bool
	faced []behavior.ID
}

func (l *weaponLog) RequestFire(on bool) { l.fire = append(l.fire, on) }

func (l *weaponLog) RequestBomb(on bool) { l.bomb = append(l.bomb, on) }

func (l *weaponLog) Face(target behavior.Body) { l.faced = append(l.faced, target.ID) }

func newTestAgent(id behavior.ID, team behavior.Team, center geometry.Vector2D) *Agent {
	return &Agent{
		Craft: behavior.Craft{
			Rect:   geometry.NewRectFromCenter(center, 32, 16),
			MaxVel: geometry.Vector2D{X: 4, Y: 2},
		},
		ID:        id,
		Team:      team,
		Fuel:      100,
		MaxFuel:   100,
		Health:    100,
		MaxHealth: 100,
		Ammo:      50,
		MaxAmmo:   50,
		Bombs:     5,
		MaxBombs:  5,
	}
}

// newTestPilot returns a pilot with a calm personality: no ground hunting,
// no cloud seeking.
func newTestPilot(agent *Agent, world *fakeWorld) (*Pilot, *weaponLog) {
	weapons := &weaponLog{}
	p := New(agent, Deps{World: world, Weapons: weapons, Pads: world}, DefaultTuning(), 42,
		WithLogger(golog.DiscardLogger))
	p.huntGround = false
	p.cloudSeeker = false
	return p, weapons
}

func entity(id behavior.ID, kind behavior.Kind, team behavior.Team, center geometry.Vector2D, w, h float64) behavior.Body {
	return behavior.Body{ID: id, Kind: kind, Team: team, Rect: geometry.NewRectFromCenter(center, w, h)}
}

func heli(id behavior.ID, team behavior.Team, center geometry.Vector2D) behavior.Body {
	return entity(id, behavior.KindHelicopter, team, center, 32, 16)
}
