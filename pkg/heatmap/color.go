package heatmap

import "math"

// Bucket is one step of the colour scale: changes strictly above Above get
// Color.
type Bucket struct {
	Above float64 `json:"above"`
	Color string  `json:"color"`
}

// Scale is the red/green change scale, strongest gain first. Changes not
// above any bucket get FloorColor.
var Scale = []Bucket{
	{5, "#166534"},
	{3, "#15803d"},
	{1, "#16a34a"},
	{0.5, "#22c55e"},
	{0, "#4ade80"},
	{-0.5, "#f87171"},
	{-1, "#ef4444"},
	{-3, "#dc2626"},
	{-5, "#b91c1c"},
}

// FloorColor is used for changes of -5% and worse.
const FloorColor = "#991b1b"

// ColorFor maps a percentage change to a fill colour. NaN is treated as no
// change.
func ColorFor(changePct float64) string {
	if math.IsNaN(changePct) {
		changePct = 0
	}
	for _, b := range Scale {
		if changePct > b.Above {
			return b.Color
		}
	}
	return FloorColor
}
