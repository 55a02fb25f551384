// Package market holds the stock model behind the heatmap: quotes as
// delivered by the market-data API, stocks enriched with a sector, sector
// aggregates, index universes and the German-style display formatting used
// on tiles and tooltips.
package market

import (
	"cmp"
	"math"
	"slices"
)

// Quote is a single real-time quote as returned by the quote endpoint.
// Field names follow the upstream JSON.
type Quote struct {
	Symbol            string  `json:"symbol"`
	Name              string  `json:"name"`
	Price             float64 `json:"price"`
	ChangesPercentage float64 `json:"changesPercentage"`
	Change            float64 `json:"change"`
	DayLow            float64 `json:"dayLow,omitempty"`
	DayHigh           float64 `json:"dayHigh,omitempty"`
	YearLow           float64 `json:"yearLow,omitempty"`
	YearHigh          float64 `json:"yearHigh,omitempty"`
	MarketCap         float64 `json:"marketCap"`
	Volume            float64 `json:"volume,omitempty"`
	Exchange          string  `json:"exchange,omitempty"`
	Timestamp         int64   `json:"timestamp,omitempty"`
}

// Stock is a quote reduced to what the heatmap draws, plus its sector.
type Stock struct {
	Symbol    string  `json:"symbol"`
	Name      string  `json:"name"`
	Sector    string  `json:"sector"`
	Price     float64 `json:"price"`
	Change    float64 `json:"change"`
	ChangePct float64 `json:"change_pct"`
	MarketCap float64 `json:"market_cap"`
}

// FromQuotes turns raw quotes into stocks ready for layout:
//   - quotes without a positive, finite market cap are dropped
//   - the first quote per symbol wins
//   - the name falls back to the symbol
//   - the sector comes from sectors, or [SectorOther]
//
// The result is sorted by market cap, largest first. Ties keep input order.
func FromQuotes(quotes []Quote, sectors SectorMap) []Stock {
	seen := make(map[string]bool, len(quotes))
	stocks := make([]Stock, 0, len(quotes))
	for _, q := range quotes {
		if q.Symbol == "" || seen[q.Symbol] || !validCap(q.MarketCap) {
			continue
		}
		seen[q.Symbol] = true

		name := q.Name
		if name == "" {
			name = q.Symbol
		}
		stocks = append(stocks, Stock{
			Symbol:    q.Symbol,
			Name:      name,
			Sector:    sectors.Lookup(q.Symbol),
			Price:     q.Price,
			Change:    q.Change,
			ChangePct: finiteOrZero(q.ChangesPercentage),
			MarketCap: q.MarketCap,
		})
	}
	SortByMarketCap(stocks)
	return stocks
}

// SortByMarketCap sorts stocks largest first, keeping the order of ties.
func SortByMarketCap(stocks []Stock) {
	slices.SortStableFunc(stocks, func(a, b Stock) int {
		return cmp.Compare(b.MarketCap, a.MarketCap)
	})
}

// FilterSector returns the stocks in sector. An empty sector returns all
// stocks.
func FilterSector(stocks []Stock, sector string) []Stock {
	if sector == "" {
		return stocks
	}
	var out []Stock
	for _, s := range stocks {
		if s.Sector == sector {
			out = append(out, s)
		}
	}
	return out
}

// TopN returns at most n stocks from the front of the slice. n <= 0 means
// no limit.
func TopN(stocks []Stock, n int) []Stock {
	if n <= 0 || n >= len(stocks) {
		return stocks
	}
	return stocks[:n]
}

func validCap(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
