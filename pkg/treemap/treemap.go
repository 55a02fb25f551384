package treemap

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"
)

var (
	// ErrInvalidBox is returned when the bounding box has a non-positive or
	// non-finite width or height, or a non-finite origin.
	ErrInvalidBox = errors.New("treemap: invalid box")

	// ErrInvalidWeight is returned when an item weight is NaN or infinite.
	ErrInvalidWeight = errors.New("treemap: invalid weight")

	// ErrInvalidOption is returned when a layout option is out of range.
	ErrInvalidOption = errors.New("treemap: invalid option")
)

// Item is a weighted entry to be laid out. Data is carried through to the
// resulting [Rect] untouched.
type Item struct {
	ID     string  `json:"id"`
	Weight float64 `json:"weight"`
	Data   any     `json:"data,omitempty"`
}

// Box is an axis-aligned rectangle with its origin at the top-left corner.
type Box struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Area returns Width * Height.
func (b Box) Area() float64 { return b.Width * b.Height }

// Right returns the x coordinate of the right edge.
func (b Box) Right() float64 { return b.X + b.Width }

// Bottom returns the y coordinate of the bottom edge.
func (b Box) Bottom() float64 { return b.Y + b.Height }

// Center returns the midpoint of the box.
func (b Box) Center() (x, y float64) {
	return b.X + b.Width/2, b.Y + b.Height/2
}

// AspectRatio returns max(w/h, h/w). Boxes with a zero or negative side
// report +Inf so they always lose against any proper rectangle.
func (b Box) AspectRatio() float64 {
	if b.Width <= 0 || b.Height <= 0 {
		return math.Inf(1)
	}
	return math.Max(b.Width/b.Height, b.Height/b.Width)
}

// Inset shrinks the box by d on every side. The result may have a negative
// size if d exceeds half a side.
func (b Box) Inset(d float64) Box {
	return Box{X: b.X + d, Y: b.Y + d, Width: b.Width - 2*d, Height: b.Height - 2*d}
}

// Contains reports whether o lies entirely within b, allowing eps of slack
// for floating point drift.
func (b Box) Contains(o Box, eps float64) bool {
	return o.X >= b.X-eps && o.Y >= b.Y-eps &&
		o.Right() <= b.Right()+eps && o.Bottom() <= b.Bottom()+eps
}

// Overlaps reports whether the interiors of b and o intersect by more than eps
// in both dimensions. Boxes that only share an edge do not overlap.
func (b Box) Overlaps(o Box, eps float64) bool {
	w := math.Min(b.Right(), o.Right()) - math.Max(b.X, o.X)
	h := math.Min(b.Bottom(), o.Bottom()) - math.Max(b.Y, o.Y)
	return w > eps && h > eps
}

// Validate reports whether the box can be laid out into.
func (b Box) Validate() error {
	for _, v := range []float64{b.X, b.Y} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: origin (%v, %v) is not finite", ErrInvalidBox, b.X, b.Y)
		}
	}
	if !(b.Width > 0) || !(b.Height > 0) || math.IsInf(b.Width, 0) || math.IsInf(b.Height, 0) {
		return fmt.Errorf("%w: size %vx%v must be positive and finite", ErrInvalidBox, b.Width, b.Height)
	}
	return nil
}

// Rect is a placed tile: the area assigned to one [Item].
type Rect struct {
	Box
	Item Item `json:"item"`
}

// SortByID orders rects by item ID in place.
func SortByID(rects []Rect) {
	slices.SortStableFunc(rects, func(a, b Rect) int {
		return cmp.Compare(a.Item.ID, b.Item.ID)
	})
}

// Index maps item IDs to their rects. Later duplicates win.
func Index(rects []Rect) map[string]Rect {
	m := make(map[string]Rect, len(rects))
	for _, r := range rects {
		m[r.Item.ID] = r
	}
	return m
}
