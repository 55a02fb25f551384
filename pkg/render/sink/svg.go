package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/visarcu/heatmap/pkg/heatmap"
)

const tileInteractionCSS = `
    .tile rect { transition: stroke 0.15s ease, stroke-width 0.15s ease; }
    .tile:hover rect { stroke: #ffffff; stroke-width: 2; }
    .tile text { pointer-events: none; }`

// RenderSVG renders the heatmap as a standalone SVG document.
func RenderSVG(h *heatmap.Heatmap, opts ...Option) []byte {
	r := newRenderer(h, opts...)
	f := r.frame(h)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f" font-family="Helvetica, Arial, sans-serif">`+"\n",
		f.width, f.height, f.width, f.height)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", tileInteractionCSS)
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", backgroundColor)

	if r.title != "" {
		r.svgHeader(&buf, h, f)
	}
	for _, t := range h.Tiles {
		r.svgTile(&buf, t, f.offsetY)
	}
	if r.legend {
		r.svgLegend(&buf, f)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r renderer) svgHeader(buf *bytes.Buffer, h *heatmap.Heatmap, f frame) {
	y := headerHeight / 2
	fmt.Fprintf(buf, `  <text class="title" x="8" y="%.1f" fill="%s" font-size="16" font-weight="bold" dominant-baseline="middle">%s</text>`+"\n",
		y, textColor, escapeXML(r.title))
	if h.Summary.Total > 0 {
		fmt.Fprintf(buf, `  <text class="summary" x="%.1f" y="%.1f" fill="%s" font-size="12" text-anchor="end" dominant-baseline="middle">%s</text>`+"\n",
			f.width-8, y, mutedTextColor, escapeXML(summaryLine(h, r.formatter)))
	}
}

func (r renderer) svgTile(buf *bytes.Buffer, t heatmap.Tile, offsetY float64) {
	y := t.Y + offsetY
	fmt.Fprintf(buf, `  <g class="tile" id="tile-%s" data-sector="%s">`+"\n", escapeXML(t.Symbol), escapeXML(t.Sector))
	fmt.Fprintf(buf, `    <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" stroke="%s" stroke-width="0.5"/>`+"\n",
		t.X, y, t.Width, t.Height, t.Color, borderColor)
	if r.tooltips {
		fmt.Fprintf(buf, "    <title>%s</title>\n", escapeXML(strings.Join(tooltipLines(t, r.formatter), "\n")))
	}

	lines := tileLines(t, r.formatter)
	if len(lines) > 0 {
		fs := t.FontSize()
		lh := fs * lineHeightRatio
		cx := t.X + t.Width/2
		top := y + t.Height/2 - lh*float64(len(lines)-1)/2
		for i, line := range lines {
			weight := "normal"
			size := fs * 0.85
			if i == 0 {
				weight, size = "bold", fs
			}
			fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" fill="%s" font-size="%.1f" font-weight="%s" text-anchor="middle" dominant-baseline="middle">%s</text>`+"\n",
				cx, top+lh*float64(i), textColor, size, weight, escapeXML(line))
		}
	}
	buf.WriteString("  </g>\n")
}

func (r renderer) svgLegend(buf *bytes.Buffer, f frame) {
	entries := legendEntries(r.formatter)
	step := f.width / float64(len(entries))
	y := f.legendY + (legendHeight-legendSwatch)/2
	buf.WriteString(`  <g class="legend">` + "\n")
	for i, e := range entries {
		x := step*float64(i) + 8
		fmt.Fprintf(buf, `    <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
			x, y, legendSwatch, legendSwatch, e.color)
		fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" fill="%s" font-size="10" dominant-baseline="middle">%s</text>`+"\n",
			x+legendSwatch+4, y+legendSwatch/2, mutedTextColor, escapeXML(e.label))
	}
	buf.WriteString("  </g>\n")
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
