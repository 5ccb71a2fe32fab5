package geometry

import "testing"

func TestRect_Intersects(t *testing.T) {
	base := Rect{X: 0, Y: 0, Width: 100, Height: 100}
	tests := []struct {
		name string
		o    Rect
		want bool
	}{
		{"overlap", Rect{X: 50, Y: 50, Width: 100, Height: 100}, true},
		{"inside", Rect{X: 10, Y: 10, Width: 10, Height: 10}, true},
		{"touching edge", Rect{X: 100, Y: 0, Width: 10, Height: 10}, false},
		{"left of", Rect{X: -20, Y: 0, Width: 10, Height: 10}, false},
		{"below", Rect{X: 0, Y: 200, Width: 10, Height: 10}, false},
		{"empty", Rect{X: 10, Y: 10}, false},
	}
	for _, tt := range tests {
		if got := base.Intersects(tt.o); got != tt.want {
			t.Errorf("%s: Intersects(%v) = %v, want %v", tt.name, tt.o, got, tt.want)
		}
		if got := tt.o.Intersects(base); got != tt.want {
			t.Errorf("%s: reversed Intersects = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestRect_Expand(t *testing.T) {
	got := Rect{X: 10, Y: 20, Width: 100, Height: 50}.Expand(1.5)
	want := Rect{X: 8.5, Y: 18.5, Width: 103, Height: 53}
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestRect_MaxEdges(t *testing.T) {
	r := Rect{X: 100, Y: 200, Width: 400, Height: 300}
	if r.MaxX() != 500 || r.MaxY() != 500 {
		t.Errorf("got maxX=%g maxY=%g, want 500 500", r.MaxX(), r.MaxY())
	}
}
