package io

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	errs "github.com/visarcu/heatmap/pkg/errors"
	"github.com/visarcu/heatmap/pkg/market"
)

func TestReadJSON(t *testing.T) {
	input := `[
		{"symbol": "aapl", "name": "Apple", "price": 190, "changesPercentage": 1.5, "marketCap": 3000},
		{"symbol": "SAP.DE", "sector": "Software", "change_pct": -0.4, "market_cap": 200},
		{"symbol": "ZERO", "marketCap": 0},
		{"symbol": "AAPL", "marketCap": 9999}
	]`
	sectors := market.SectorMap{"AAPL": market.SectorTechnology, "SAP.DE": market.SectorTechnology}

	got, err := ReadJSON(strings.NewReader(input), sectors)
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}
	want := []market.Stock{
		{Symbol: "AAPL", Name: "Apple", Sector: market.SectorTechnology, Price: 190, ChangePct: 1.5, MarketCap: 3000},
		{Symbol: "SAP.DE", Name: "SAP.DE", Sector: "Software", ChangePct: -0.4, MarketCap: 200},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ReadJSON() mismatch (-want +got):\n%s", diff)
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  errs.Code
	}{
		{"not json", `{`, errs.ErrCodeInvalidInput},
		{"object", `{"symbol": "AAPL"}`, errs.ErrCodeInvalidInput},
		{"bad symbol", `[{"symbol": "$$$", "marketCap": 1}]`, errs.ErrCodeInvalidSymbol},
		{"empty symbol", `[{"marketCap": 1}]`, errs.ErrCodeInvalidSymbol},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.input), nil)
			if !errs.Is(err, tt.code) {
				t.Errorf("ReadJSON() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	stocks := []market.Stock{
		{Symbol: "MSFT", Name: "Microsoft", Sector: market.SectorTechnology, Price: 410.5, Change: 2.1, ChangePct: 0.51, MarketCap: 3.1e12},
		{Symbol: "JPM", Name: "JPMorgan", Sector: market.SectorFinancials, Price: 150, Change: -1, ChangePct: -0.66, MarketCap: 4.3e11},
	}
	path := filepath.Join(t.TempDir(), "stocks.json")

	if err := ExportJSON(stocks, path); err != nil {
		t.Fatalf("ExportJSON() error: %v", err)
	}
	got, err := ImportJSON(path, nil)
	if err != nil {
		t.Fatalf("ImportJSON() error: %v", err)
	}
	if diff := cmp.Diff(stocks, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestImportJSONMissingFile(t *testing.T) {
	_, err := ImportJSON(filepath.Join(t.TempDir(), "missing.json"), nil)
	if !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("ImportJSON() error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestWriteJSONNil(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(nil, &buf); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(buf.String()); got != "[]" {
		t.Errorf("WriteJSON(nil) = %q, want []", got)
	}
}
