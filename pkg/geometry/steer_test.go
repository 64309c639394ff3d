package geometry

import (
	"math"
	"testing"
)

func TestSeek_Bounded(t *testing.T) {
	tests := []struct {
		name                       string
		target, position, velocity Vector2D
		maxForce, maxVelocity      float64
	}{
		{"Standing still", Vector2D{100, 0}, Vector2D{0, 0}, Vector2D{0, 0}, 0.3, 4},
		{"Flying away", Vector2D{100, 0}, Vector2D{0, 0}, Vector2D{-4, 0}, 0.3, 4},
		{"On target", Vector2D{5, 5}, Vector2D{5, 5}, Vector2D{3, -2}, 0.2, 4},
		{"Tiny force", Vector2D{-50, 20}, Vector2D{10, 10}, Vector2D{1, 1}, 0.01, 10},
		{"Zero force", Vector2D{-50, 20}, Vector2D{10, 10}, Vector2D{1, 1}, 0, 10},
		{"Huge velocity", Vector2D{0, 1000}, Vector2D{0, 0}, Vector2D{1e6, -1e6}, 0.3, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Seek(tt.target, tt.position, tt.velocity, tt.maxForce, tt.maxVelocity)
			if got.Len() > tt.maxForce+Epsilon {
				t.Errorf("Seek magnitude = %v; want <= %v", got.Len(), tt.maxForce)
			}
			if math.IsNaN(got.X) || math.IsNaN(got.Y) {
				t.Errorf("Seek produced NaN: %v", got)
			}
		})
	}
}

func TestSeek_Direction(t *testing.T) {
	got := Seek(Vector2D{100, 0}, Vector2D{0, 0}, Vector2D{0, 0}, 0.5, 4)
	want := Vector2D{0.5, 0}
	if !got.Eq(want) {
		t.Errorf("Seek from rest = %v; want %v", got, want)
	}
}

func TestArrive_Decelerates(t *testing.T) {
	target := Vector2D{200, 100}
	const radius = 100.0
	prev := math.Inf(1)

	// walk toward the target from outside the radius to the target itself
	for x := 50.0; x <= 200; x += 5 {
		got := Arrive(target, Vector2D{x, 100}, Vector2D{}, 4, radius)
		mag := got.Len()
		if target.DistanceTo(Vector2D{x, 100}) < radius && mag > prev+Epsilon {
			t.Fatalf("Arrive magnitude grew from %v to %v at x=%v", prev, mag, x)
		}
		prev = mag
	}

	if got := Arrive(target, target, Vector2D{}, 4, radius); !got.IsZero() {
		t.Errorf("Arrive on target = %v; want zero", got)
	}
}

func TestArrive_FullSpeedOutsideRadius(t *testing.T) {
	got := Arrive(Vector2D{500, 0}, Vector2D{0, 0}, Vector2D{}, 4, 100)
	if !floatEquals(got.Len(), 4) {
		t.Errorf("Arrive outside radius magnitude = %v; want 4", got.Len())
	}

	half := Arrive(Vector2D{50, 0}, Vector2D{0, 0}, Vector2D{}, 4, 100)
	if !floatEquals(half.Len(), 2) {
		t.Errorf("Arrive at half radius magnitude = %v; want 2", half.Len())
	}
}
