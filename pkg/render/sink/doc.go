// Package sink renders a laid-out [heatmap.Heatmap] into output formats.
//
// # Overview
//
// A "sink" transforms a computed heatmap into bytes. This package provides:
//
//   - SVG: vector output with tooltips and hover highlighting
//   - PNG: raster output drawn with github.com/fogleman/gg
//   - JSON: the heatmap document itself
//
// # SVG Output
//
// [RenderSVG] draws one rectangle per tile, filled with the tile colour and
// labelled according to [heatmap.Tile.LabelLevel]. Every tile carries a
// <title> tooltip with name, market cap, sector, price and daily change.
//
//	svg := sink.RenderSVG(h,
//	    sink.WithTitle("S&P 500"),
//	    sink.WithLegend(),
//	)
//
// # Options
//
// [Option] values apply to both SVG and PNG:
//
//   - [WithTitle]: header line above the map (defaults to the heatmap title)
//   - [WithLegend]: colour legend strip below the map
//   - [WithFormatter]: locale for numbers and sector names (default German)
//   - [WithoutTooltips]: omit <title> elements (SVG only)
//   - [WithScale]: pixel scale factor (PNG only, default 2)
//
// # PNG Output
//
// [RenderPNG] rasterises the same frame in-process, so no external
// converter is needed. Labels use the 7x13 bitmap face from
// golang.org/x/image.
//
// # JSON Output
//
// [RenderJSON] writes the heatmap in the format read back by
// [heatmap.Unmarshal].
package sink
