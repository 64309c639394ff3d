package geometry

import (
	"math"
	"testing"
)

func floatEquals(a, b float64) bool {
	return math.Abs(a-b) <= Epsilon
}

func TestVector_String(t *testing.T) {
	if got := NewVector(1.5, -2.25).String(); got != "(1.50, -2.25)" {
		t.Errorf("String() = %q", got)
	}
}

func TestVector_Arithmetic(t *testing.T) {
	a, b := Vector2D{3, -2}, Vector2D{-1, 5}
	tests := []struct {
		name string
		got  Vector2D
		want Vector2D
	}{
		{"add", a.Add(b), Vector2D{2, 3}},
		{"sub", a.Sub(b), Vector2D{4, -7}},
		{"mul", a.Mul(-0.5), Vector2D{-1.5, 1}},
		{"sub returns a copy", a, Vector2D{3, -2}},
	}
	for _, tt := range tests {
		if !tt.got.Eq(tt.want) {
			t.Errorf("%s: got %v, want %v", tt.name, tt.got, tt.want)
		}
	}
	if got := a.Dot(b); got != -13 {
		t.Errorf("Dot = %v, want -13", got)
	}
}

func TestVector_Magnitude(t *testing.T) {
	v := Vector2D{-6, 8}

	if v.Len() != 10 || v.LenSqr() != 100 {
		t.Fatalf("Len/LenSqr = %v/%v, want 10/100", v.Len(), v.LenSqr())
	}
	if got := v.Normalize(); !got.Eq(Vector2D{-0.6, 0.8}) {
		t.Errorf("Normalize = %v", got)
	}
	if got := v.SetMag(2.5); !got.Eq(Vector2D{-1.5, 2}) {
		t.Errorf("SetMag(2.5) = %v", got)
	}
	if got := v.Limit(5); !floatEquals(got.Len(), 5) {
		t.Errorf("Limit(5) has length %v", got.Len())
	}
	if got := v.Limit(50); !got.Eq(v) {
		t.Errorf("Limit above the length changed the vector: %v", got)
	}
	if got := v.Limit(-1); !got.IsZero() {
		t.Errorf("negative limit = %v, want zero", got)
	}
}

func TestVector_ZeroIsSafe(t *testing.T) {
	inputs := []Vector2D{{}, {Epsilon / 10, 0}, {0, -Epsilon / 2}, {1e-300, 1e-300}, {1e300, -1e300}}
	for _, in := range inputs {
		for name, got := range map[string]Vector2D{
			"Normalize": in.Normalize(),
			"SetMag":    in.SetMag(3),
			"Limit":     in.Limit(1),
		} {
			if math.IsNaN(got.X) || math.IsNaN(got.Y) || math.IsInf(got.Len(), 0) {
				t.Errorf("%s(%v) = %v, want finite", name, in, got)
			}
		}
	}
	if !(Vector2D{Epsilon / 2, -Epsilon / 2}).IsZero() {
		t.Error("a vector inside Epsilon should be zero")
	}
}

func TestVector_DistanceAndAngle(t *testing.T) {
	a, b := Vector2D{1, 1}, Vector2D{4, 5}
	if a.DistanceTo(b) != 5 || a.DistanceSquaredTo(b) != 25 {
		t.Errorf("distance = %v/%v, want 5/25", a.DistanceTo(b), a.DistanceSquaredTo(b))
	}

	tests := []struct {
		v    Vector2D
		want float64
	}{
		{Vector2D{1, 0}, 0},
		{Vector2D{0, 1}, math.Pi / 2}, // down the screen
		{Vector2D{-1, 0}, math.Pi},
		{Vector2D{0, -1}, -math.Pi / 2},
	}
	for _, tt := range tests {
		if got := tt.v.Angle(); !floatEquals(got, tt.want) {
			t.Errorf("%v.Angle() = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestVector_Rotate(t *testing.T) {
	v := Vector2D{2, 0}
	if got := v.Rotate(math.Pi / 2); !got.Eq(Vector2D{0, 2}) {
		t.Errorf("quarter turn = %v", got)
	}
	got := v.Rotate(40 * math.Pi / 180)
	if !floatEquals(got.Len(), 2) || got.Y <= 0 {
		t.Errorf("40 degrees = %v, want length 2 below the axis", got)
	}
}

func TestProjectAndNormalPoint(t *testing.T) {
	if got := (Vector2D{3, 7}).Project(Vector2D{2, 0}); !got.Eq(Vector2D{3, 0}) {
		t.Errorf("Project onto X = %v", got)
	}
	if got := (Vector2D{3, 7}).Project(Vector2D{}); !got.IsZero() {
		t.Errorf("Project onto zero = %v", got)
	}

	tests := []struct {
		name    string
		p, a, b Vector2D
		want    Vector2D
	}{
		{"horizontal line", Vector2D{5, 9}, Vector2D{0, 2}, Vector2D{10, 2}, Vector2D{5, 2}},
		{"diagonal", Vector2D{0, 2}, Vector2D{0, 0}, Vector2D{4, 4}, Vector2D{1, 1}},
		{"beyond the segment", Vector2D{-3, 1}, Vector2D{0, 0}, Vector2D{1, 0}, Vector2D{-3, 0}},
		{"degenerate", Vector2D{9, 9}, Vector2D{2, 2}, Vector2D{2, 2}, Vector2D{2, 2}},
	}
	for _, tt := range tests {
		if got := NormalPoint(tt.p, tt.a, tt.b); !got.Eq(tt.want) {
			t.Errorf("%s: NormalPoint = %v, want %v", tt.name, got, tt.want)
		}
	}
}
