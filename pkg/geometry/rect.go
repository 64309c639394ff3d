package geometry

import (
	"fmt"
	"math"
)

// Rect is an axis-aligned bounding box; (X, Y) is the top-left corner.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// NewRectFromCenter builds a w×h rect centred on c.
func NewRectFromCenter(c Vector2D, w, h float64) Rect {
	return Rect{X: c.X - w/2, Y: c.Y - h/2, W: w, H: h}
}

func (r Rect) String() string {
	return fmt.Sprintf("[%.1f,%.1f %.1fx%.1f]", r.X, r.Y, r.W, r.H)
}

func (r Rect) Left() float64   { return r.X }
func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Top() float64    { return r.Y }
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Center returns the middle point of the rect.
func (r Rect) Center() Vector2D {
	return Vector2D{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Moved returns the rect translated by d.
func (r Rect) Moved(d Vector2D) Rect {
	return Rect{X: r.X + d.X, Y: r.Y + d.Y, W: r.W, H: r.H}
}

// Contains reports whether p lies inside the rect (edges included).
func (r Rect) Contains(p Vector2D) bool {
	return p.X >= r.Left() && p.X <= r.Right() && p.Y >= r.Top() && p.Y <= r.Bottom()
}

// Intersects reports whether the two rects overlap.
func (r Rect) Intersects(o Rect) bool {
	return r.Left() < o.Right() && o.Left() < r.Right() && r.Top() < o.Bottom() && o.Top() < r.Bottom()
}

// ContainsX reports whether r fits horizontally inside o.
func (r Rect) ContainsX(o Rect) bool {
	return r.Left() >= o.Left() && r.Right() <= o.Right()
}

// Expand grows the rect by margin on every side.
func (r Rect) Expand(margin float64) Rect {
	return Rect{X: r.X - margin, Y: r.Y - margin, W: r.W + 2*margin, H: r.H + 2*margin}
}

// Union returns the smallest rect covering both.
func (r Rect) Union(o Rect) Rect {
	left := math.Min(r.Left(), o.Left())
	top := math.Min(r.Top(), o.Top())
	right := math.Max(r.Right(), o.Right())
	bottom := math.Max(r.Bottom(), o.Bottom())
	return Rect{X: left, Y: top, W: right - left, H: bottom - top}
}

// Eq compares two rects within Epsilon.
func (r Rect) Eq(o Rect) bool {
	return math.Abs(r.X-o.X) <= Epsilon && math.Abs(r.Y-o.Y) <= Epsilon &&
		math.Abs(r.W-o.W) <= Epsilon && math.Abs(r.H-o.H) <= Epsilon
}
