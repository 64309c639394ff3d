package geometry

import "testing"

func TestRect_Edges(t *testing.T) {
	r := Rect{X: 10, Y: 20, W: 30, H: 40}
	if r.Right() != 40 || r.Bottom() != 60 {
		t.Errorf("Right/Bottom = %v/%v; want 40/60", r.Right(), r.Bottom())
	}
	if c := r.Center(); !c.Eq(Vector2D{25, 40}) {
		t.Errorf("Center = %v; want (25, 40)", c)
	}
	if got := NewRectFromCenter(Vector2D{25, 40}, 30, 40); !got.Eq(r) {
		t.Errorf("NewRectFromCenter = %v; want %v", got, r)
	}
}

func TestRect_ContainsAndIntersects(t *testing.T) {
	r := Rect{X: 0, Y: 0, W: 10, H: 10}

	tests := []struct {
		name string
		p    Vector2D
		want bool
	}{
		{"Inside", Vector2D{5, 5}, true},
		{"Edge", Vector2D{10, 0}, true},
		{"Outside", Vector2D{11, 5}, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.p); got != tt.want {
			t.Errorf("%s: Contains(%v) = %v; want %v", tt.name, tt.p, got, tt.want)
		}
	}

	if !r.Intersects(Rect{X: 5, Y: 5, W: 10, H: 10}) {
		t.Error("overlapping rects should intersect")
	}
	if r.Intersects(Rect{X: 10, Y: 0, W: 5, H: 5}) {
		t.Error("touching rects should not intersect")
	}
}

func TestRect_Union(t *testing.T) {
	a := Rect{X: 0, Y: 10, W: 10, H: 10}
	b := Rect{X: 5, Y: 0, W: 20, H: 5}
	want := Rect{X: 0, Y: 0, W: 25, H: 20}
	if got := a.Union(b); !got.Eq(want) {
		t.Errorf("Union = %v; want %v", got, want)
	}
}

func TestRect_ContainsX(t *testing.T) {
	pad := Rect{X: 100, Y: 300, W: 60, H: 8}
	if !(Rect{X: 110, Y: 0, W: 40, H: 20}).ContainsX(pad) {
		t.Error("craft fully over the pad should be contained")
	}
	if (Rect{X: 90, Y: 0, W: 40, H: 20}).ContainsX(pad) {
		t.Error("craft hanging over the pad edge should not be contained")
	}
}
