package pipeline

import (
	"slices"
	"strings"

	errs "github.com/visarcu/heatmap/pkg/errors"
	"github.com/visarcu/heatmap/pkg/heatmap"
	"github.com/visarcu/heatmap/pkg/market"
)

// =============================================================================
// Layout Generation
// =============================================================================

// GenerateLayout filters and ranks stocks, sizes the canvas and lays out the
// heatmap. It does not touch the cache.
func GenerateLayout(stocks []market.Stock, opts Options) (*heatmap.Heatmap, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return nil, err
	}
	selected, sector, err := SelectStocks(stocks, opts)
	if err != nil {
		return nil, err
	}
	return buildHeatmap(selected, sector, opts)
}

func buildHeatmap(selected []market.Stock, sector string, opts Options) (*heatmap.Heatmap, error) {
	box := opts.Box(len(selected))
	return heatmap.Build(selected, box, opts.HeatmapOptions(defaultTitle(opts, sector)))
}

// SelectStocks returns the stocks that go on the map, largest first: the
// configured sector only, then at most Top of them. The sector is matched
// case-insensitively against both the canonical and the German name, and
// the canonical name is returned.
func SelectStocks(stocks []market.Stock, opts Options) ([]market.Stock, string, error) {
	out := slices.Clone(stocks)
	market.SortByMarketCap(out)

	var sector string
	if opts.Sector != "" {
		var err error
		if sector, err = matchSector(out, opts.Sector); err != nil {
			return nil, "", err
		}
		out = market.FilterSector(out, sector)
	}
	out = market.TopN(out, opts.Top)

	if len(out) == 0 {
		return nil, "", errs.New(errs.ErrCodeNoData, "no stocks to lay out")
	}
	return out, sector, nil
}

func matchSector(stocks []market.Stock, name string) (string, error) {
	want := strings.TrimSpace(name)
	seen := make(map[string]bool)
	var available []string
	for _, s := range stocks {
		if strings.EqualFold(s.Sector, want) || strings.EqualFold(market.SectorDisplayName(s.Sector), want) {
			return s.Sector, nil
		}
		if !seen[s.Sector] {
			seen[s.Sector] = true
			available = append(available, s.Sector)
		}
	}
	slices.Sort(available)
	return "", errs.New(errs.ErrCodeInvalidSector, "unknown sector %q (available: %s)", name, strings.Join(available, ", "))
}

// defaultTitle names the map after its universe and sector unless a title
// was given.
func defaultTitle(opts Options, sector string) string {
	if opts.Title != "" {
		return opts.Title
	}
	var parts []string
	if opts.Universe != "" && opts.Stocks == nil {
		if u, err := market.LookupUniverse(opts.Universe); err == nil {
			parts = append(parts, u.DisplayName)
		}
	}
	if sector != "" {
		parts = append(parts, opts.Formatter().Sector(sector))
	}
	return strings.Join(parts, " - ")
}
