package heatmap

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	errs "github.com/visarcu/heatmap/pkg/errors"
	"github.com/visarcu/heatmap/pkg/market"
	"github.com/visarcu/heatmap/pkg/treemap"
)

func sampleStocks() []market.Stock {
	return []market.Stock{
		{Symbol: "AAPL", Name: "Apple", Sector: market.SectorTechnology, Price: 190, ChangePct: 1.2, MarketCap: 100},
		{Symbol: "MSFT", Name: "Microsoft", Sector: market.SectorTechnology, Price: 410, ChangePct: -0.7, MarketCap: 50},
		{Symbol: "XOM", Name: "Exxon", Sector: market.SectorEnergy, Price: 110, ChangePct: 6, MarketCap: 50},
	}
}

func TestBuild(t *testing.T) {
	h, err := Build(sampleStocks(), treemap.Box{Width: 300, Height: 100}, Options{
		Title:   "Test",
		Padding: 1,
		MinSize: 10,
	})
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	want := []Tile{
		{Symbol: "AAPL", Name: "Apple", Sector: market.SectorTechnology, Price: 190, ChangePct: 1.2, MarketCap: 100,
			X: 1, Y: 1, Width: 148, Height: 98, Color: "#16a34a"},
		{Symbol: "MSFT", Name: "Microsoft", Sector: market.SectorTechnology, Price: 410, ChangePct: -0.7, MarketCap: 50,
			X: 151, Y: 1, Width: 73, Height: 98, Color: "#ef4444"},
		{Symbol: "XOM", Name: "Exxon", Sector: market.SectorEnergy, Price: 110, ChangePct: 6, MarketCap: 50,
			X: 226, Y: 1, Width: 73, Height: 98, Color: "#166534"},
	}
	if diff := cmp.Diff(want, h.Tiles, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("tiles mismatch (-want +got):\n%s", diff)
	}

	if h.Title != "Test" || h.Width != 300 || h.Height != 100 {
		t.Errorf("header = %q %vx%v", h.Title, h.Width, h.Height)
	}
	if h.Summary.Total != 3 || h.Summary.Up != 2 || h.Summary.Down != 1 {
		t.Errorf("summary = %+v", h.Summary)
	}

	wantSectors := []SectorStat{
		{Sector: market.SectorTechnology, Count: 2, AvgChange: 0.25, TotalMarketCap: 150, Share: 75},
		{Sector: market.SectorEnergy, Count: 1, AvgChange: 6, TotalMarketCap: 50, Share: 25},
	}
	if diff := cmp.Diff(wantSectors, h.Sectors, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("sectors mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildEmpty(t *testing.T) {
	h, err := Build(nil, treemap.Box{Width: 100, Height: 100}, DefaultOptions())
	if err != nil {
		t.Fatalf("Build(nil) error: %v", err)
	}
	if len(h.Tiles) != 0 || h.Summary.Total != 0 {
		t.Errorf("Build(nil) = %+v, want empty", h)
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name     string
		stocks   []market.Stock
		box      treemap.Box
		opts     Options
		code     errs.Code
		sentinel error
	}{
		{
			name:     "zero box",
			stocks:   sampleStocks(),
			box:      treemap.Box{Width: 0, Height: 100},
			opts:     DefaultOptions(),
			code:     errs.ErrCodeInvalidBox,
			sentinel: treemap.ErrInvalidBox,
		},
		{
			name:     "infinite cap",
			stocks:   []market.Stock{{Symbol: "X", MarketCap: math.Inf(1)}},
			box:      treemap.Box{Width: 10, Height: 10},
			opts:     DefaultOptions(),
			code:     errs.ErrCodeInvalidWeight,
			sentinel: treemap.ErrInvalidWeight,
		},
		{
			name:     "negative padding",
			stocks:   sampleStocks(),
			box:      treemap.Box{Width: 10, Height: 10},
			opts:     Options{Padding: -1},
			code:     errs.ErrCodeInvalidInput,
			sentinel: treemap.ErrInvalidOption,
		},
		{
			name:     "split fraction above one",
			stocks:   sampleStocks(),
			box:      treemap.Box{Width: 10, Height: 10},
			opts:     Options{SplitFraction: 2},
			code:     errs.ErrCodeInvalidInput,
			sentinel: treemap.ErrInvalidOption,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.stocks, tt.box, tt.opts)
			if !errs.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
			if !errors.Is(err, tt.sentinel) {
				t.Errorf("error = %v, want to wrap %v", err, tt.sentinel)
			}
		})
	}
}

func TestBuildTilesInsideCanvas(t *testing.T) {
	var stocks []market.Stock
	for i := range 200 {
		stocks = append(stocks, market.Stock{
			Symbol:    "S" + string(rune('A'+i%26)) + string(rune('A'+i/26)),
			MarketCap: 1e12 / float64(i+1),
			ChangePct: float64(i%11) - 5,
		})
	}
	box := treemap.Box{Width: 1200, Height: 600}
	h, err := Build(stocks, box, Options{})
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if len(h.Tiles) != len(stocks) {
		t.Fatalf("got %d tiles, want %d", len(h.Tiles), len(stocks))
	}
	for _, tile := range h.Tiles {
		if !box.Contains(tile.Box(), 1e-6) {
			t.Errorf("tile %s %+v outside canvas", tile.Symbol, tile.Box())
		}
		if tile.Color == "" {
			t.Errorf("tile %s has no colour", tile.Symbol)
		}
	}
}

func TestColorFor(t *testing.T) {
	tests := []struct {
		pct  float64
		want string
	}{
		{10, "#166534"},
		{5.01, "#166534"},
		{5, "#15803d"},
		{3.5, "#15803d"},
		{2, "#16a34a"},
		{0.75, "#22c55e"},
		{0.1, "#4ade80"},
		{0, "#f87171"},
		{-0.3, "#f87171"},
		{-0.5, "#ef4444"},
		{-2, "#dc2626"},
		{-4, "#b91c1c"},
		{-5, FloorColor},
		{-20, FloorColor},
		{math.NaN(), "#f87171"},
	}
	for _, tt := range tests {
		if got := ColorFor(tt.pct); got != tt.want {
			t.Errorf("ColorFor(%v) = %s, want %s", tt.pct, got, tt.want)
		}
	}
}

func TestLabelLevel(t *testing.T) {
	tests := []struct {
		name string
		w, h float64
		want LabelLevel
	}{
		{"narrow", 10, 100, LabelNone},
		{"flat", 100, 10, LabelNone},
		{"tiny", 15, 15, LabelNone},
		{"symbol", 20, 20, LabelSymbol},
		{"symbol edge", 40, 20, LabelSymbol},
		{"change", 30, 30, LabelChange},
		{"full", 50, 40, LabelFull},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tile := Tile{Width: tt.w, Height: tt.h}
			if got := tile.LabelLevel(); got != tt.want {
				t.Errorf("LabelLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFontSize(t *testing.T) {
	tests := []struct {
		w, h, want float64
	}{
		{10, 10, 8},
		{96, 96, 12},
		{400, 400, 14},
	}
	for _, tt := range tests {
		if got := (Tile{Width: tt.w, Height: tt.h}).FontSize(); got != tt.want {
			t.Errorf("FontSize(%vx%v) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	h, err := Build(sampleStocks(), treemap.Box{Width: 300, Height: 100}, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	data, err := Marshal(h)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if diff := cmp.Diff(h, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestUnmarshalInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
		code errs.Code
	}{
		{"bad json", `{`, errs.ErrCodeInvalidInput},
		{"zero canvas", `{"width":0,"height":10,"tiles":[]}`, errs.ErrCodeInvalidBox},
		{"tile without symbol", `{"width":10,"height":10,"tiles":[{"x":0}]}`, errs.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal([]byte(tt.data))
			if !errs.Is(err, tt.code) {
				t.Errorf("Unmarshal() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestHeatmapTileLookup(t *testing.T) {
	h := &Heatmap{Tiles: []Tile{{Symbol: "A"}, {Symbol: "B", Price: 2}}}
	if tile, ok := h.Tile("B"); !ok || tile.Price != 2 {
		t.Errorf("Tile(B) = %+v, %v", tile, ok)
	}
	if _, ok := h.Tile("C"); ok {
		t.Error("Tile(C) found")
	}
}
