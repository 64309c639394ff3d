// Package arena keeps every live entity of a battle and answers the spatial
// queries the pilots make each tick.
package arena

import (
	"cmp"
	"math"
	"slices"

	"github.com/dhconnelly/rtreego"
	"github.com/lao-tseu-is-alive/go-sky-pilot/pkg/behavior"
	"github.com/lao-tseu-is-alive/go-sky-pilot/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-sky-pilot/pkg/pilot"
)

// minExtent keeps zero-sized bodies indexable.
const minExtent = 1e-3

// indexed is the R-tree entry of one body, frozen at Rebuild time.
type indexed struct {
	id   behavior.ID
	rect rtreego.Rect
}

func (e *indexed) Bounds() rtreego.Rect {
	return e.rect
}

// Registry stores bodies by ID and indexes them in an R-tree.
// Lookup always sees the latest Put; Nearby prefilters on the index built by
// the last Rebuild, so bodies added since then are only found after the next one.
type Registry struct {
	bounds geometry.Rect
	bodies map[behavior.ID]behavior.Body
	tree   *rtreego.Rtree
	pads   []behavior.Body
}

// NewRegistry creates an empty registry for a play field.
func NewRegistry(bounds geometry.Rect) *Registry {
	return &Registry{
		bounds: bounds,
		bodies: make(map[behavior.ID]behavior.Body),
		tree:   rtreego.NewTree(2, 25, 50),
	}
}

// Put adds or replaces a body.
func (r *Registry) Put(b behavior.Body) {
	r.bodies[b.ID] = b
}

// Remove forgets a body.
func (r *Registry) Remove(id behavior.ID) {
	delete(r.bodies, id)
}

// Len is the number of stored bodies.
func (r *Registry) Len() int {
	return len(r.bodies)
}

// Rebuild bulk-loads a fresh R-tree from the current bodies and refreshes the
// pad list. It is called once per tick before the pilots run.
func (r *Registry) Rebuild() {
	spatials := make([]rtreego.Spatial, 0, len(r.bodies))
	r.pads = r.pads[:0]
	for _, b := range r.bodies {
		if b.Dead {
			continue
		}
		rect, err := toRect(b.Rect)
		if err != nil {
			continue
		}
		spatials = append(spatials, &indexed{id: b.ID, rect: rect})
		if b.Kind == behavior.KindLandingPad {
			r.pads = append(r.pads, b)
		}
	}
	r.tree = rtreego.NewTree(2, 25, 50, spatials...)

	slices.SortFunc(r.pads, func(a, b behavior.Body) int {
		if c := cmp.Compare(a.Rect.X, b.Rect.X); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

// Lookup resolves a handle to the latest state of its body.
func (r *Registry) Lookup(id behavior.ID) (behavior.Body, bool) {
	b, ok := r.bodies[id]
	return b, ok
}

// Nearby returns the bodies matching q, nearest first with ties broken by ID.
func (r *Registry) Nearby(q pilot.Query) []behavior.Body {
	var out []behavior.Body

	if q.Range <= 0 || math.IsInf(q.Range, 1) {
		for _, b := range r.bodies {
			if q.Matches(b) {
				out = append(out, b)
			}
		}
		pilot.SortNearest(q.Origin, out)
		return out
	}

	// every centre within Range lies inside this square
	square, err := rtreego.NewRect(
		rtreego.Point{q.Origin.X - q.Range, q.Origin.Y - q.Range},
		[]float64{2 * q.Range, 2 * q.Range},
	)
	if err != nil {
		return nil
	}
	for _, s := range r.tree.SearchIntersect(square) {
		b, ok := r.bodies[s.(*indexed).id]
		if ok && q.Matches(b) {
			out = append(out, b)
		}
	}
	pilot.SortNearest(q.Origin, out)
	return out
}

// Bounds is the play field.
func (r *Registry) Bounds() geometry.Rect {
	return r.bounds
}

// Pads returns the live landing pads ordered by X, as of the last Rebuild.
func (r *Registry) Pads() []behavior.Body {
	return r.pads
}

// All returns every body ordered by ID.
func (r *Registry) All() []behavior.Body {
	out := make([]behavior.Body, 0, len(r.bodies))
	for _, b := range r.bodies {
		out = append(out, b)
	}
	slices.SortFunc(out, func(a, b behavior.Body) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

func toRect(r geometry.Rect) (rtreego.Rect, error) {
	return rtreego.NewRect(
		rtreego.Point{r.X, r.Y},
		[]float64{math.Max(r.W, minExtent), math.Max(r.H, minExtent)},
	)
}
