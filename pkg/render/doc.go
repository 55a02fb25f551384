// Package render groups the output stages for laid-out heatmaps.
//
// The [sink] subpackage turns a [heatmap.Heatmap] into SVG, PNG or JSON.
// Renderers only read tile geometry and colours; they never re-run the
// treemap, so a layout loaded from JSON renders identically to a fresh one.
//
//	svg := sink.RenderSVG(h, sink.WithLegend())
//	png, err := sink.RenderPNG(h, sink.WithScale(3))
//
// [sink]: github.com/visarcu/heatmap/pkg/render/sink
// [heatmap.Heatmap]: github.com/visarcu/heatmap/pkg/heatmap
package render
