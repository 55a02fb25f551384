package treemap

import (
	"errors"
	"math"
	"testing"
)

func TestBoxAspectRatio(t *testing.T) {
	tests := []struct {
		name string
		box  Box
		want float64
	}{
		{"square", Box{Width: 10, Height: 10}, 1},
		{"wide", Box{Width: 30, Height: 10}, 3},
		{"tall", Box{Width: 10, Height: 40}, 4},
		{"zero width", Box{Width: 0, Height: 10}, math.Inf(1)},
		{"zero height", Box{Width: 10, Height: 0}, math.Inf(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.box.AspectRatio(); got != tt.want {
				t.Errorf("AspectRatio() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBoxOverlaps(t *testing.T) {
	a := Box{Width: 10, Height: 10}
	tests := []struct {
		name string
		b    Box
		want bool
	}{
		{"shared edge", Box{X: 10, Width: 10, Height: 10}, false},
		{"corner touch", Box{X: 10, Y: 10, Width: 5, Height: 5}, false},
		{"inside", Box{X: 2, Y: 2, Width: 2, Height: 2}, true},
		{"partial", Box{X: 5, Y: 5, Width: 10, Height: 10}, true},
		{"disjoint", Box{X: 50, Y: 50, Width: 1, Height: 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Overlaps(tt.b, eps); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBoxContains(t *testing.T) {
	outer := Box{X: 10, Y: 10, Width: 100, Height: 50}
	if !outer.Contains(Box{X: 10, Y: 10, Width: 100, Height: 50}, 0) {
		t.Error("box should contain itself")
	}
	if outer.Contains(Box{X: 9, Y: 10, Width: 5, Height: 5}, 0) {
		t.Error("box escaping left edge should not be contained")
	}
	if !outer.Contains(Box{X: 9.9999999, Y: 10, Width: 5, Height: 5}, 1e-6) {
		t.Error("drift within eps should be tolerated")
	}
}

func TestBoxCenterAndInset(t *testing.T) {
	b := Box{X: 10, Y: 20, Width: 40, Height: 10}
	if x, y := b.Center(); x != 30 || y != 25 {
		t.Errorf("Center() = (%v, %v), want (30, 25)", x, y)
	}
	want := Box{X: 12, Y: 22, Width: 36, Height: 6}
	if got := b.Inset(2); got != want {
		t.Errorf("Inset(2) = %+v, want %+v", got, want)
	}
}

func TestBoxValidate(t *testing.T) {
	if err := (Box{Width: 1, Height: 1}).Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
	if err := (Box{Width: 1, Height: 0}).Validate(); !errors.Is(err, ErrInvalidBox) {
		t.Errorf("Validate() = %v, want ErrInvalidBox", err)
	}
}

func TestSortByID(t *testing.T) {
	rects := []Rect{{Item: Item{ID: "b"}}, {Item: Item{ID: "c"}}, {Item: Item{ID: "a"}}}
	SortByID(rects)
	for i, want := range []string{"a", "b", "c"} {
		if rects[i].Item.ID != want {
			t.Errorf("rects[%d] = %s, want %s", i, rects[i].Item.ID, want)
		}
	}
}
