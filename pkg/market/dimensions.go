package market

import "math"

// Container size limits used by Dimensions.
const (
	MaxContainerWidth  = 1800
	MinContainerHeight = 400

	viewportShare = 0.95
)

// Size is a width/height pair in pixels.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Dimensions picks a container size for count tiles. Larger sets get a
// larger base canvas. When viewport is positive the width is capped at 95%
// of it (and never exceeds MaxContainerWidth); the height keeps the base
// aspect ratio but never drops below MinContainerHeight.
func Dimensions(count int, viewport float64) Size {
	base := baseSize(count)
	width := base.Width
	if viewport > 0 {
		width = math.Min(width, math.Min(MaxContainerWidth, viewport*viewportShare))
	}
	aspect := base.Width / base.Height
	return Size{
		Width:  width,
		Height: math.Max(MinContainerHeight, width/aspect),
	}
}

func baseSize(count int) Size {
	switch {
	case count > 400:
		return Size{1600, 800}
	case count > 200:
		return Size{1400, 700}
	case count > 100:
		return Size{1200, 600}
	default:
		return Size{1000, 500}
	}
}
