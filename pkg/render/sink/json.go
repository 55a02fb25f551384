package sink

import (
	"fmt"

	"github.com/visarcu/heatmap/pkg/heatmap"
)

// RenderJSON exports the heatmap document with a trailing newline.
func RenderJSON(h *heatmap.Heatmap) ([]byte, error) {
	data, err := heatmap.Marshal(h)
	if err != nil {
		return nil, fmt.Errorf("marshal heatmap: %w", err)
	}
	return append(data, '\n'), nil
}
