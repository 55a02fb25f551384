package pipeline

import (
	"fmt"

	"github.com/visarcu/heatmap/pkg/heatmap"
	"github.com/visarcu/heatmap/pkg/render/sink"
)

// Render generates output artifacts in the requested formats.
func Render(h *heatmap.Heatmap, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	sinkOpts := buildSinkOptions(opts)
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(h, sinkOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(h, sinkOpts...)
		case FormatJSON:
			data, err = sink.RenderJSON(h)
		default:
			return nil, ValidateFormat(format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// RenderFromLayoutData renders a heatmap saved with [heatmap.Marshal].
func RenderFromLayoutData(data []byte, opts Options) (map[string][]byte, error) {
	h, err := heatmap.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return Render(h, opts)
}

func buildSinkOptions(opts Options) []sink.Option {
	sinkOpts := []sink.Option{
		sink.WithFormatter(opts.Formatter()),
		sink.WithScale(opts.Scale),
	}
	if opts.Legend {
		sinkOpts = append(sinkOpts, sink.WithLegend())
	}
	if opts.NoTooltips {
		sinkOpts = append(sinkOpts, sink.WithoutTooltips())
	}
	return sinkOpts
}
