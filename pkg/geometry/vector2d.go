package geometry

import (
	"fmt"
	"math"
)

// Epsilon is the tolerance used for float comparisons and zero-length checks.
const Epsilon = 1e-9

// Vector2D is a vector or a point in world space. Y grows downward.
// It is a plain value: every operation returns a new vector.
type Vector2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NewVector creates a new Vector2D.
func NewVector(x, y float64) Vector2D {
	return Vector2D{X: x, Y: y}
}

func (v Vector2D) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", v.X, v.Y)
}

// ---------------------------------------------------------------------
// Arithmetic
// ---------------------------------------------------------------------

func (v Vector2D) Add(o Vector2D) Vector2D {
	return Vector2D{v.X + o.X, v.Y + o.Y}
}

func (v Vector2D) Sub(o Vector2D) Vector2D {
	return Vector2D{v.X - o.X, v.Y - o.Y}
}

// Mul scales the vector.
func (v Vector2D) Mul(k float64) Vector2D {
	return Vector2D{v.X * k, v.Y * k}
}

func (v Vector2D) Dot(o Vector2D) float64 {
	return v.X*o.X + v.Y*o.Y
}

// ---------------------------------------------------------------------
// Magnitude
// ---------------------------------------------------------------------

// LenSqr is the squared magnitude, enough for comparisons.
func (v Vector2D) LenSqr() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Len is the Euclidean norm.
func (v Vector2D) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalize returns the unit vector with the same direction.
// A zero-length vector comes back as zero.
func (v Vector2D) Normalize() Vector2D {
	l := v.Len()
	if l < Epsilon {
		return Vector2D{}
	}
	return v.Mul(1 / l)
}

// SetMag rescales the vector to magnitude n. Zero stays zero.
func (v Vector2D) SetMag(n float64) Vector2D {
	return v.Normalize().Mul(n)
}

// Limit caps the magnitude at max; a negative max is treated as zero.
func (v Vector2D) Limit(max float64) Vector2D {
	max = math.Max(max, 0)
	if v.LenSqr() > max*max {
		return v.SetMag(max)
	}
	return v
}

// IsZero reports a vector within Epsilon of the origin on both axes.
func (v Vector2D) IsZero() bool {
	return math.Abs(v.X) <= Epsilon && math.Abs(v.Y) <= Epsilon
}

// ---------------------------------------------------------------------
// Geometry
// ---------------------------------------------------------------------

func (v Vector2D) DistanceTo(o Vector2D) float64 {
	return v.Sub(o).Len()
}

func (v Vector2D) DistanceSquaredTo(o Vector2D) float64 {
	return v.Sub(o).LenSqr()
}

// Angle is the heading of v from the X axis, in [-Pi, Pi].
func (v Vector2D) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// Rotate turns the vector by angle radians around the origin.
func (v Vector2D) Rotate(angle float64) Vector2D {
	sin, cos := math.Sincos(angle)
	return Vector2D{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// Project returns the component of v along on. Projecting onto zero gives zero.
func (v Vector2D) Project(on Vector2D) Vector2D {
	lsq := on.LenSqr()
	if lsq < Epsilon {
		return Vector2D{}
	}
	return on.Mul(v.Dot(on) / lsq)
}

// NormalPoint returns the foot of the perpendicular from p to the line through
// a and b. A degenerate line (a == b) returns a.
func NormalPoint(p, a, b Vector2D) Vector2D {
	ab := b.Sub(a)
	if ab.LenSqr() < Epsilon {
		return a
	}
	return a.Add(p.Sub(a).Project(ab))
}

// Eq compares two vectors within Epsilon.
func (v Vector2D) Eq(o Vector2D) bool {
	return math.Abs(v.X-o.X) <= Epsilon && math.Abs(v.Y-o.Y) <= Epsilon
}
