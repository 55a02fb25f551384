package sink

import (
	"math"
	"strconv"

	"github.com/visarcu/heatmap/pkg/heatmap"
	"github.com/visarcu/heatmap/pkg/market"
)

const (
	headerHeight = 32.0
	legendHeight = 28.0
	legendSwatch = 14.0

	backgroundColor = "#111827"
	borderColor     = "#1f2937"
	textColor       = "#ffffff"
	mutedTextColor  = "#9ca3af"

	lineHeightRatio = 1.2
)

// Option configures rendering.
type Option func(*renderer)

type renderer struct {
	title     string
	titleSet  bool
	legend    bool
	tooltips  bool
	formatter market.Formatter
	scale     float64
}

// WithTitle sets the header line. An empty title removes the header.
func WithTitle(s string) Option {
	return func(r *renderer) { r.title, r.titleSet = s, true }
}

// WithLegend adds the colour legend below the map.
func WithLegend() Option { return func(r *renderer) { r.legend = true } }

// WithFormatter sets the locale used for numbers and sector names.
func WithFormatter(f market.Formatter) Option { return func(r *renderer) { r.formatter = f } }

// WithoutTooltips omits SVG <title> elements.
func WithoutTooltips() Option { return func(r *renderer) { r.tooltips = false } }

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
// Non-positive values are ignored.
func WithScale(s float64) Option {
	return func(r *renderer) {
		if s > 0 && !math.IsInf(s, 0) {
			r.scale = s
		}
	}
}

func newRenderer(h *heatmap.Heatmap, opts ...Option) renderer {
	r := renderer{
		tooltips:  true,
		formatter: market.German,
		scale:     2.0,
	}
	for _, opt := range opts {
		opt(&r)
	}
	if !r.titleSet {
		r.title = h.Title
	}
	return r
}

// frame is the output canvas: an optional header, the map, and an optional
// legend strip.
type frame struct {
	width   float64
	height  float64
	offsetY float64
	legendY float64
}

func (r renderer) frame(h *heatmap.Heatmap) frame {
	f := frame{width: h.Width, height: h.Height}
	if r.title != "" {
		f.offsetY = headerHeight
		f.height += headerHeight
	}
	if r.legend {
		f.legendY = f.height
		f.height += legendHeight
	}
	return f
}

type legendEntry struct {
	color string
	label string
}

func legendEntries(f market.Formatter) []legendEntry {
	entries := make([]legendEntry, 0, len(heatmap.Scale)+1)
	for _, b := range heatmap.Scale {
		entries = append(entries, legendEntry{color: b.Color, label: "> " + f.Percent(b.Above, decimalsFor(b.Above))})
	}
	last := heatmap.Scale[len(heatmap.Scale)-1].Above
	entries = append(entries, legendEntry{color: heatmap.FloorColor, label: "<= " + f.Percent(last, decimalsFor(last))})
	return entries
}

func decimalsFor(v float64) int {
	if v == math.Trunc(v) {
		return 0
	}
	return 1
}

// tileLines returns the label lines for a tile, top to bottom.
func tileLines(t heatmap.Tile, f market.Formatter) []string {
	switch t.LabelLevel() {
	case heatmap.LabelSymbol:
		return []string{t.Symbol}
	case heatmap.LabelChange:
		return []string{t.Symbol, f.Percent(t.ChangePct, 1)}
	case heatmap.LabelFull:
		return []string{t.Symbol, f.Percent(t.ChangePct, 1), f.Price(t.Price)}
	default:
		return nil
	}
}

// tooltipLines returns the hover text for a tile.
func tooltipLines(t heatmap.Tile, f market.Formatter) []string {
	l := f.Labels()
	head := t.Symbol
	if t.Name != "" && t.Name != t.Symbol {
		head += " - " + t.Name
	}
	return []string{
		head,
		l.MarketCap + ": " + f.MarketCap(t.MarketCap),
		l.Sector + ": " + f.Sector(t.Sector),
		l.Price + ": " + f.Price(t.Price),
		f.Percent(t.ChangePct, 2) + " " + l.Today,
	}
}

// summaryLine is the right-hand header text: average change, then
// advancers and decliners.
func summaryLine(h *heatmap.Heatmap, f market.Formatter) string {
	s := h.Summary
	return f.Percent(s.AvgChange, 2) + "  " + strconv.Itoa(s.Up) + " / " + strconv.Itoa(s.Down)
}
