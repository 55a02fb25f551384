package sink

import (
	"bytes"
	"fmt"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/visarcu/heatmap/pkg/heatmap"
)

// maxPNGPixels caps the raster size to keep memory bounded.
const maxPNGPixels = 64 << 20

// RenderPNG rasterises the heatmap. Coordinates are multiplied by the scale
// (WithScale, default 2) and rounded to whole pixels.
func RenderPNG(h *heatmap.Heatmap, opts ...Option) ([]byte, error) {
	r := newRenderer(h, opts...)
	f := r.frame(h)

	w := int(math.Ceil(f.width * r.scale))
	ht := int(math.Ceil(f.height * r.scale))
	if w <= 0 || ht <= 0 {
		return nil, fmt.Errorf("png: empty canvas %dx%d", w, ht)
	}
	if w*ht > maxPNGPixels {
		return nil, fmt.Errorf("png: canvas %dx%d exceeds %d pixels", w, ht, maxPNGPixels)
	}

	dc := gg.NewContext(w, ht)
	dc.SetHexColor(backgroundColor)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	if r.title != "" {
		r.pngHeader(dc, h, f)
	}
	for _, t := range h.Tiles {
		r.pngTile(dc, t, f.offsetY)
	}
	if r.legend {
		r.pngLegend(dc, f)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("png: encode: %w", err)
	}
	return buf.Bytes(), nil
}

func (r renderer) px(v float64) float64 { return math.Round(v * r.scale) }

func (r renderer) pngHeader(dc *gg.Context, h *heatmap.Heatmap, f frame) {
	y := r.px(headerHeight / 2)
	dc.SetHexColor(textColor)
	dc.DrawStringAnchored(r.title, r.px(8), y, 0, 0.5)
	if h.Summary.Total > 0 {
		dc.SetHexColor(mutedTextColor)
		dc.DrawStringAnchored(summaryLine(h, r.formatter), r.px(f.width-8), y, 1, 0.5)
	}
}

func (r renderer) pngTile(dc *gg.Context, t heatmap.Tile, offsetY float64) {
	x0, y0 := r.px(t.X), r.px(t.Y+offsetY)
	x1, y1 := r.px(t.X+t.Width), r.px(t.Y+offsetY+t.Height)

	dc.DrawRectangle(x0, y0, x1-x0, y1-y0)
	dc.SetHexColor(t.Color)
	dc.FillPreserve()
	dc.SetHexColor(borderColor)
	dc.SetLineWidth(math.Max(1, r.scale/2))
	dc.Stroke()

	lines := tileLines(t, r.formatter)
	if len(lines) == 0 {
		return
	}
	lh := basicfont.Face7x13.Height + 2
	cx := (x0 + x1) / 2
	top := (y0+y1)/2 - float64(lh*(len(lines)-1))/2
	dc.SetHexColor(textColor)
	for i, line := range lines {
		if w, _ := dc.MeasureString(line); w > x1-x0 {
			continue
		}
		dc.DrawStringAnchored(line, cx, top+float64(lh*i), 0.5, 0.5)
	}
}

func (r renderer) pngLegend(dc *gg.Context, f frame) {
	entries := legendEntries(r.formatter)
	step := f.width / float64(len(entries))
	y := f.legendY + (legendHeight-legendSwatch)/2
	for i, e := range entries {
		x := step*float64(i) + 8
		dc.DrawRectangle(r.px(x), r.px(y), r.px(legendSwatch), r.px(legendSwatch))
		dc.SetHexColor(e.color)
		dc.Fill()
		dc.SetHexColor(mutedTextColor)
		dc.DrawStringAnchored(e.label, r.px(x+legendSwatch+4), r.px(y+legendSwatch/2), 0, 0.5)
	}
}
