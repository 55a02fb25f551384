package heatmap

import (
	"encoding/json"

	errs "github.com/visarcu/heatmap/pkg/errors"
)

// Marshal encodes h as indented JSON.
func Marshal(h *Heatmap) ([]byte, error) {
	return json.MarshalIndent(h, "", "  ")
}

// Unmarshal decodes a heatmap. The canvas must be a valid box and every
// tile needs a symbol.
func Unmarshal(data []byte) (*Heatmap, error) {
	var h Heatmap
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "decode heatmap")
	}
	if err := h.Box().Validate(); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidBox, err, "decode heatmap")
	}
	for _, t := range h.Tiles {
		if t.Symbol == "" {
			return nil, errs.New(errs.ErrCodeInvalidInput, "decode heatmap: tile without symbol")
		}
	}
	return &h, nil
}
