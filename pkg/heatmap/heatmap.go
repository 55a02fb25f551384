// Package heatmap turns a list of stocks into a laid-out market heatmap.
//
// Each stock becomes a treemap item weighted by market cap. [Build] runs the
// layout from [treemap.Layout] and decorates every rectangle with the stock's
// quote data, a fill colour from [ColorFor] and enough geometry for a
// renderer to decide how much text fits ([Tile.LabelLevel]).
//
// A [Heatmap] is plain data. It round-trips through JSON with [Marshal] and
// [Unmarshal], which is how layouts are cached and how saved layouts are
// rendered again later.
package heatmap

import (
	"math"

	"github.com/visarcu/heatmap/pkg/market"
	"github.com/visarcu/heatmap/pkg/treemap"
)

// Heatmap is a complete laid-out heatmap. Tiles are in layout order: the
// largest stock first, then depth-first through the split tree.
type Heatmap struct {
	Title   string         `json:"title,omitempty"`
	Width   float64        `json:"width"`
	Height  float64        `json:"height"`
	Tiles   []Tile         `json:"tiles"`
	Summary market.Summary `json:"summary"`
	Sectors []SectorStat   `json:"sectors"`
}

// Tile is one stock placed on the canvas.
type Tile struct {
	Symbol    string  `json:"symbol"`
	Name      string  `json:"name"`
	Sector    string  `json:"sector"`
	Price     float64 `json:"price"`
	Change    float64 `json:"change"`
	ChangePct float64 `json:"change_pct"`
	MarketCap float64 `json:"market_cap"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Color     string  `json:"color"`
}

// SectorStat summarises one sector. Share is the sector's percentage of the
// total market cap on the map.
type SectorStat struct {
	Sector         string  `json:"sector"`
	Count          int     `json:"count"`
	AvgChange      float64 `json:"avg_change"`
	TotalMarketCap float64 `json:"total_market_cap"`
	Share          float64 `json:"share"`
}

// Box returns the tile's rectangle.
func (t Tile) Box() treemap.Box {
	return treemap.Box{X: t.X, Y: t.Y, Width: t.Width, Height: t.Height}
}

// Area returns the tile's area in square pixels.
func (t Tile) Area() float64 { return t.Width * t.Height }

// LabelLevel says how much text a tile can hold.
type LabelLevel int

const (
	LabelNone   LabelLevel = iota // too small for text
	LabelSymbol                   // ticker only
	LabelChange                   // ticker and change
	LabelFull                     // ticker, change and price
)

// Label thresholds in square pixels, and the minimum side for any text.
const (
	minLabelSide   = 14.0
	minSymbolArea  = 300.0
	minChangeArea  = 800.0
	minPriceArea   = 1500.0
	minFontSize    = 8.0
	maxFontSize    = 14.0
	fontSizeFactor = 8.0
)

func (l LabelLevel) String() string {
	switch l {
	case LabelSymbol:
		return "symbol"
	case LabelChange:
		return "change"
	case LabelFull:
		return "full"
	default:
		return "none"
	}
}

// LabelLevel picks the label detail from the tile's size.
func (t Tile) LabelLevel() LabelLevel {
	a := t.Area()
	switch {
	case t.Width < minLabelSide || t.Height < minLabelSide || a < minSymbolArea:
		return LabelNone
	case a <= minChangeArea:
		return LabelSymbol
	case a <= minPriceArea:
		return LabelChange
	default:
		return LabelFull
	}
}

// FontSize scales with the square root of the tile area, clamped to
// [8, 14] pixels.
func (t Tile) FontSize() float64 {
	s := math.Sqrt(t.Area()) / fontSizeFactor
	return math.Max(minFontSize, math.Min(maxFontSize, s))
}

// Tile returns the tile for symbol.
func (h *Heatmap) Tile(symbol string) (Tile, bool) {
	for _, t := range h.Tiles {
		if t.Symbol == symbol {
			return t, true
		}
	}
	return Tile{}, false
}

// Box returns the canvas rectangle.
func (h *Heatmap) Box() treemap.Box {
	return treemap.Box{Width: h.Width, Height: h.Height}
}
