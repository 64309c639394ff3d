package behavior

import "github.com/lao-tseu-is-alive/go-sky-pilot/pkg/geometry"

// Obstacle is something the craft must not fly into.
type Obstacle struct {
	Body Body
	Rect geometry.Rect
	// Composite is set when Rect merges a whole tethered group.
	Composite bool
}

// ObstacleOf wraps a single body.
func ObstacleOf(b Body) Obstacle {
	return Obstacle{Body: b, Rect: b.Rect}
}

// Kind is the ledger key for the obstacle.
func (o Obstacle) Kind() Kind {
	if o.Composite {
		return KindComposite
	}
	return o.Body.Kind
}

// ComposeBounds merges the parts of a chained structure into one rectangle.
// X and width come from the first present part in the order anchor, payload,
// link; Y from the topmost part; the height reaches down to the lowest bottom.
// Nil parts are missing. It returns false when no part is present.
func ComposeBounds(anchor, link, payload *geometry.Rect) (geometry.Rect, bool) {
	var base *geometry.Rect
	for _, p := range []*geometry.Rect{anchor, payload, link} {
		if p != nil {
			base = p
			break
		}
	}
	if base == nil {
		return geometry.Rect{}, false
	}

	top, bottom := base.Top(), base.Bottom()
	for _, p := range []*geometry.Rect{anchor, link, payload} {
		if p == nil {
			continue
		}
		top = min(top, p.Top())
		bottom = max(bottom, p.Bottom())
	}

	return geometry.Rect{X: base.X, Y: top, W: base.W, H: bottom - top}, true
}

// MergeObstacles turns nearby bodies into obstacles, folding every tethered
// group that still has its anchor into a single composite so the craft cannot
// thread between the parts. Payloads that lost their anchor, and the link
// still hanging from them, stay independent obstacles.
// Order follows bodies; lookup resolves tether parts outside the list.
func MergeObstacles(bodies []Body, lookup func(ID) (Body, bool)) []Obstacle {
	out := make([]Obstacle, 0, len(bodies))
	seen := make(map[ID]struct{}, len(bodies))

	resolve := func(id ID, self Body) (Body, bool) {
		if id == "" {
			return Body{}, false
		}
		if id == self.ID {
			return self, !self.Dead
		}
		if lookup == nil {
			return Body{}, false
		}
		b, ok := lookup(id)
		if !ok || b.Dead {
			return Body{}, false
		}
		return b, true
	}

	for _, b := range bodies {
		if _, dup := seen[b.ID]; dup || b.Dead {
			continue
		}
		seen[b.ID] = struct{}{}

		if b.Tether.IsZero() {
			out = append(out, ObstacleOf(b))
			continue
		}

		anchor, ok := resolve(b.Tether.Anchor, b)
		if !ok {
			out = append(out, ObstacleOf(b))
			continue
		}

		var linkRect, payloadRect *geometry.Rect
		if link, ok := resolve(b.Tether.Link, b); ok {
			linkRect = &link.Rect
			seen[link.ID] = struct{}{}
		}
		if payload, ok := resolve(b.Tether.Payload, b); ok {
			payloadRect = &payload.Rect
			seen[payload.ID] = struct{}{}
		}
		seen[anchor.ID] = struct{}{}

		rect, _ := ComposeBounds(&anchor.Rect, linkRect, payloadRect)
		out = append(out, Obstacle{Body: anchor, Rect: rect, Composite: linkRect != nil || payloadRect != nil})
	}

	return out
}
