package sink

import (
	"bytes"
	"encoding/xml"
	"image/png"
	"io"
	"strings"
	"testing"

	"golang.org/x/text/language"

	"github.com/visarcu/heatmap/pkg/heatmap"
	"github.com/visarcu/heatmap/pkg/market"
	"github.com/visarcu/heatmap/pkg/treemap"
)

func testHeatmap(t *testing.T) *heatmap.Heatmap {
	t.Helper()
	stocks := []market.Stock{
		{Symbol: "AAPL", Name: "Apple Inc.", Sector: market.SectorTechnology, Price: 189.84, ChangePct: 1.234, MarketCap: 3.1e12},
		{Symbol: "AT&T", Name: "AT&T <Inc>", Sector: market.SectorTelecommunications, Price: 17.5, ChangePct: -2, MarketCap: 1.2e11},
		{Symbol: "TINY", Name: "Tiny", Sector: market.SectorEnergy, Price: 1, ChangePct: 0, MarketCap: 1e6},
	}
	h, err := heatmap.Build(stocks, treemap.Box{Width: 400, Height: 200}, heatmap.DefaultOptions())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	h.Title = "Test Map"
	return h
}

func TestRenderSVG(t *testing.T) {
	h := testHeatmap(t)
	svg := string(RenderSVG(h, WithLegend()))

	for _, want := range []string{
		`<svg xmlns="http://www.w3.org/2000/svg"`,
		`viewBox="0 0 400.0 260.0"`,
		`id="tile-AAPL"`,
		`id="tile-AT&amp;T"`,
		`Test Map`,
		`AAPL - Apple Inc.`,
		`MCap: 3,1 Bio.`,
		`Sektor: Technologie`,
		`Kurs: 189,84 $`,
		`+1,23% heute`,
		`AT&amp;T &lt;Inc&gt;`,
		`class="legend"`,
		`&lt;= -5%`,
		`&gt; +5%`,
		`</svg>`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
}

func TestRenderSVGWellFormed(t *testing.T) {
	svg := RenderSVG(testHeatmap(t), WithLegend())
	dec := xml.NewDecoder(bytes.NewReader(svg))
	for {
		_, err := dec.Token()
		if err != nil {
			if err == io.EOF {
				return
			}
			t.Fatalf("SVG is not well-formed XML: %v", err)
		}
	}
}

func TestRenderSVGOptions(t *testing.T) {
	h := testHeatmap(t)

	svg := string(RenderSVG(h, WithTitle(""), WithoutTooltips()))
	if strings.Contains(svg, "<title>") {
		t.Error("WithoutTooltips() still emits <title>")
	}
	if strings.Contains(svg, "Test Map") {
		t.Error(`WithTitle("") still emits header`)
	}
	if !strings.Contains(svg, `viewBox="0 0 400.0 200.0"`) {
		t.Error("frame without header or legend should match the canvas")
	}

	en := string(RenderSVG(h, WithFormatter(market.NewFormatter(language.English))))
	for _, want := range []string{"Market cap: 3.1 T", "Sector: Technology", "Price: $189.84", "+1.23% today"} {
		if !strings.Contains(en, want) {
			t.Errorf("English SVG missing %q", want)
		}
	}
}

func TestRenderSVGLabels(t *testing.T) {
	h := &heatmap.Heatmap{
		Width: 200, Height: 100,
		Tiles: []heatmap.Tile{
			{Symbol: "BIG", Price: 10, ChangePct: 1, X: 0, Y: 0, Width: 100, Height: 100, Color: "#16a34a"},
			{Symbol: "SMALL", X: 100, Y: 0, Width: 10, Height: 10, Color: "#16a34a"},
		},
	}
	svg := string(RenderSVG(h))
	if !strings.Contains(svg, ">BIG</text>") || !strings.Contains(svg, ">10,00 $</text>") {
		t.Error("large tile should carry symbol and price labels")
	}
	if strings.Contains(svg, ">SMALL</text>") {
		t.Error("tiny tile should not carry a label")
	}
}

func TestRenderPNG(t *testing.T) {
	h := testHeatmap(t)

	tests := []struct {
		name  string
		opts  []Option
		wantW int
		wantH int
	}{
		{"default scale", nil, 800, 464},
		{"scale 1 with legend", []Option{WithScale(1), WithLegend()}, 400, 260},
		{"no title", []Option{WithScale(1), WithTitle("")}, 400, 200},
		{"invalid scale ignored", []Option{WithScale(-3), WithTitle("")}, 800, 400},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := RenderPNG(h, tt.opts...)
			if err != nil {
				t.Fatalf("RenderPNG() error: %v", err)
			}
			img, err := png.Decode(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("png.Decode() error: %v", err)
			}
			b := img.Bounds()
			if b.Dx() != tt.wantW || b.Dy() != tt.wantH {
				t.Errorf("size = %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestRenderPNGTooLarge(t *testing.T) {
	h := &heatmap.Heatmap{Width: 9000, Height: 9000}
	if _, err := RenderPNG(h, WithScale(2)); err == nil {
		t.Error("RenderPNG() expected error for oversized canvas")
	}
}

func TestRenderJSON(t *testing.T) {
	h := testHeatmap(t)
	data, err := RenderJSON(h)
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}
	if !bytes.HasSuffix(data, []byte("\n")) {
		t.Error("RenderJSON() output should end with a newline")
	}
	got, err := heatmap.Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if got.Title != "Test Map" || len(got.Tiles) != len(h.Tiles) {
		t.Errorf("round trip = %q with %d tiles", got.Title, len(got.Tiles))
	}
}

func TestLegendEntries(t *testing.T) {
	entries := legendEntries(market.German)
	if len(entries) != len(heatmap.Scale)+1 {
		t.Fatalf("got %d entries, want %d", len(entries), len(heatmap.Scale)+1)
	}
	want := []string{"> +5%", "> +3%", "> +1%", "> +0,5%", "> +0%", "> -0,5%", "> -1%", "> -3%", "> -5%", "<= -5%"}
	for i, e := range entries {
		if e.label != want[i] {
			t.Errorf("entry %d = %q, want %q", i, e.label, want[i])
		}
	}
	if entries[len(entries)-1].color != heatmap.FloorColor {
		t.Error("last legend entry should use the floor colour")
	}
}
