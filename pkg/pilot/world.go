package pilot

import (
	"cmp"
	"slices"

	"github.com/lao-tseu-is-alive/go-sky-pilot/pkg/behavior"
	"github.com/lao-tseu-is-alive/go-sky-pilot/pkg/geometry"
)

// World is the spatial query service the pilot reads every tick.
type World interface {
	// Lookup resolves a handle. ok is false once the entity left the world.
	Lookup(id behavior.ID) (behavior.Body, bool)
	// Nearby returns the bodies matching q, nearest first.
	Nearby(q Query) []behavior.Body
	// Bounds is the play field.
	Bounds() geometry.Rect
}

// Weapons receives the pilot's fire intent. It never spawns anything itself.
type Weapons interface {
	RequestFire(on bool)
	RequestBomb(on bool)
	// Face is called while a target is engaged so the sprite can turn toward it.
	Face(target behavior.Body)
}

// Pads lists the landing pads ordered by X.
type Pads interface {
	Pads() []behavior.Body
}

// Deps groups the collaborators of one pilot.
type Deps struct {
	World   World
	Weapons Weapons
	Pads    Pads
}

// Query selects nearby bodies.
type Query struct {
	Origin geometry.Vector2D
	// Range is measured between centres. Zero means unlimited.
	Range float64
	// Kinds filters by kind; empty matches every kind.
	Kinds []behavior.Kind
	// EnemyOf keeps only bodies hostile to this team when set.
	EnemyOf behavior.Team
	// Exclude skips one body, usually the asking agent.
	Exclude behavior.ID
	// Cloaked also returns concealed bodies.
	Cloaked bool
}

// Matches reports whether b satisfies every filter of q.
func (q Query) Matches(b behavior.Body) bool {
	if b.Dead || b.ID == q.Exclude {
		return false
	}
	if b.Cloaked && !q.Cloaked {
		return false
	}
	if len(q.Kinds) > 0 && !slices.Contains(q.Kinds, b.Kind) {
		return false
	}
	if q.EnemyOf != behavior.TeamNeutral && !b.Team.HostileTo(q.EnemyOf) {
		return false
	}
	if q.Range > 0 && b.Center().DistanceSquaredTo(q.Origin) > q.Range*q.Range {
		return false
	}
	return true
}

// SortNearest orders bodies by centre distance to origin, ties broken by ID,
// so nearest-first decisions are reproducible.
func SortNearest(origin geometry.Vector2D, bodies []behavior.Body) {
	slices.SortFunc(bodies, func(a, b behavior.Body) int {
		if c := cmp.Compare(a.Center().DistanceSquaredTo(origin), b.Center().DistanceSquaredTo(origin)); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}
