package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	errs "github.com/visarcu/heatmap/pkg/errors"
	"github.com/visarcu/heatmap/pkg/market"
)

// record accepts both the upstream quote keys and the exported stock keys.
type record struct {
	Symbol            string   `json:"symbol"`
	Name              string   `json:"name"`
	Sector            string   `json:"sector"`
	Price             float64  `json:"price"`
	Change            float64  `json:"change"`
	ChangePct         *float64 `json:"change_pct"`
	ChangesPercentage *float64 `json:"changesPercentage"`
	MarketCap         *float64 `json:"market_cap"`
	MarketCapUpstream *float64 `json:"marketCap"`
}

func firstSet(vals ...*float64) float64 {
	for _, v := range vals {
		if v != nil {
			return *v
		}
	}
	return 0
}

// ReadJSON decodes a stock list from r. Sectors given in the file win over
// sectors; the rest are looked up there. ReadJSON does not close r.
func ReadJSON(r io.Reader, sectors market.SectorMap) ([]market.Stock, error) {
	var recs []record
	if err := json.NewDecoder(r).Decode(&recs); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "decode stock list")
	}

	quotes := make([]market.Quote, 0, len(recs))
	fileSectors := make(market.SectorMap)
	for i, rec := range recs {
		sym := errs.NormalizeSymbol(rec.Symbol)
		if err := errs.ValidateSymbol(sym); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidSymbol, err, "record %d", i)
		}
		if rec.Sector != "" {
			if _, dup := fileSectors[sym]; !dup {
				fileSectors[sym] = rec.Sector
			}
		}
		quotes = append(quotes, market.Quote{
			Symbol:            sym,
			Name:              rec.Name,
			Price:             rec.Price,
			Change:            rec.Change,
			ChangesPercentage: firstSet(rec.ChangePct, rec.ChangesPercentage),
			MarketCap:         firstSet(rec.MarketCap, rec.MarketCapUpstream),
		})
	}
	return market.FromQuotes(quotes, sectors.Merge(fileSectors)), nil
}

// ImportJSON reads a stock list from the file at path.
func ImportJSON(path string, sectors market.SectorMap) ([]market.Stock, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f, sectors)
}

// WriteJSON encodes stocks as indented JSON to w.
func WriteJSON(stocks []market.Stock, w io.Writer) error {
	if stocks == nil {
		stocks = []market.Stock{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(stocks); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes stocks to a JSON file at path.
func ExportJSON(stocks []market.Stock, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(stocks, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
