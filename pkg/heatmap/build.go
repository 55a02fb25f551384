package heatmap

import (
	"errors"
	"math"

	errs "github.com/visarcu/heatmap/pkg/errors"
	"github.com/visarcu/heatmap/pkg/market"
	"github.com/visarcu/heatmap/pkg/treemap"
)

// Options controls layout and labelling. Padding and MinSize are used as
// given. A zero SplitFraction means the treemap default.
type Options struct {
	Title         string  `json:"title,omitempty"`
	Padding       float64 `json:"padding"`
	MinSize       float64 `json:"min_size"`
	SplitFraction float64 `json:"split_fraction"`
}

// DefaultOptions returns the treemap defaults.
func DefaultOptions() Options {
	return Options{
		Padding:       treemap.DefaultPadding,
		MinSize:       treemap.DefaultMinSize,
		SplitFraction: treemap.DefaultMaxSplitFraction,
	}
}

func (o Options) layoutOptions() []treemap.Option {
	opts := []treemap.Option{
		treemap.WithPadding(o.Padding),
		treemap.WithMinSize(o.MinSize),
	}
	if o.SplitFraction != 0 {
		opts = append(opts, treemap.WithMaxSplitFraction(o.SplitFraction))
	}
	return opts
}

// Build lays out stocks inside box, weighted by market cap.
//
// Errors carry a pkg/errors code: ErrCodeInvalidBox for a bad box,
// ErrCodeInvalidWeight for a non-finite market cap and ErrCodeInvalidInput
// for bad options. The treemap sentinel stays reachable with errors.Is.
func Build(stocks []market.Stock, box treemap.Box, opts Options) (*Heatmap, error) {
	items := make([]treemap.Item, len(stocks))
	for i, s := range stocks {
		items[i] = treemap.Item{ID: s.Symbol, Weight: s.MarketCap, Data: i}
	}

	rects, err := treemap.Layout(items, box, opts.layoutOptions()...)
	if err != nil {
		return nil, layoutError(err)
	}

	h := &Heatmap{
		Title:   opts.Title,
		Width:   box.Width,
		Height:  box.Height,
		Tiles:   make([]Tile, len(rects)),
		Summary: market.Summarize(stocks),
		Sectors: sectorStats(stocks),
	}
	for i, r := range rects {
		s := stocks[r.Item.Data.(int)]
		h.Tiles[i] = Tile{
			Symbol:    s.Symbol,
			Name:      s.Name,
			Sector:    s.Sector,
			Price:     s.Price,
			Change:    s.Change,
			ChangePct: s.ChangePct,
			MarketCap: s.MarketCap,
			X:         r.X,
			Y:         r.Y,
			Width:     r.Width,
			Height:    r.Height,
			Color:     ColorFor(s.ChangePct),
		}
	}
	return h, nil
}

func layoutError(err error) error {
	switch {
	case errors.Is(err, treemap.ErrInvalidBox):
		return errs.Wrap(errs.ErrCodeInvalidBox, err, "layout")
	case errors.Is(err, treemap.ErrInvalidWeight):
		return errs.Wrap(errs.ErrCodeInvalidWeight, err, "layout")
	case errors.Is(err, treemap.ErrInvalidOption):
		return errs.Wrap(errs.ErrCodeInvalidInput, err, "layout")
	default:
		return errs.Wrap(errs.ErrCodeInternal, err, "layout")
	}
}

func sectorStats(stocks []market.Stock) []SectorStat {
	agg := market.AggregateSectors(stocks)
	var total float64
	for _, s := range stocks {
		total += s.MarketCap
	}

	out := make([]SectorStat, len(agg))
	for i, a := range agg {
		share := 0.0
		if total > 0 && !math.IsInf(total, 0) {
			share = a.TotalMarketCap / total * 100
		}
		out[i] = SectorStat{
			Sector:         a.Sector,
			Count:          a.Count,
			AvgChange:      a.AvgChange,
			TotalMarketCap: a.TotalMarketCap,
			Share:          share,
		}
	}
	return out
}
