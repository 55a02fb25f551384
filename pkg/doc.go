// Package pkg provides the libraries behind the heatmap CLI and HTTP server.
//
// # Overview
//
// A market heatmap shows every stock of an index as a rectangle whose area
// is proportional to its market cap and whose colour encodes the daily
// change. The pkg directory is organized into these areas:
//
//  1. [treemap] - Binary space partitioning of weighted items into a box
//  2. [market] - Stocks, sectors, universes, breadth and locale formatting
//  3. [heatmap] - Stocks laid out as coloured tiles
//  4. [integrations] - Quote providers (Financial Modeling Prep)
//  5. [pipeline] - Orchestration (fetch → layout → render) with caching
//  6. [cache] - File, memory, Redis and MongoDB cache backends
//
// # Architecture
//
// The typical data flow:
//
//	Universe or symbol list
//	         ↓
//	    [integrations/fmp] (batched quote fetch)
//	         ↓
//	    [market] (clean, assign sectors, filter)
//	         ↓
//	    [heatmap] via [treemap] (layout + colour)
//	         ↓
//	    [render/sink] (SVG/PNG/JSON)
//
// # Quick Start
//
// Lay out a handful of stocks and render them:
//
//	stocks := []market.Stock{
//	    {Symbol: "AAPL", Sector: market.SectorTechnology, ChangePct: 1.2, MarketCap: 3.4e12},
//	    {Symbol: "XOM", Sector: market.SectorEnergy, ChangePct: -0.8, MarketCap: 4.6e11},
//	}
//	h, _ := heatmap.Build(stocks, treemap.Box{Width: 1200, Height: 800}, heatmap.DefaultOptions())
//	svg := sink.RenderSVG(h, sink.WithLegend())
//
// The [pipeline] package runs the same steps from a universe name, caching
// quotes, layouts and artifacts:
//
//	runner := pipeline.NewRunner(cache.NewMemoryCache(), cache.NewDefaultKeyer(), quotes, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{Universe: market.UniverseDAX})
//
// # Supporting Packages
//
// [errors] - Error codes shared by the CLI and the HTTP server, plus input
// validation helpers.
//
// [httputil] - Retry with exponential backoff for outbound HTTP.
//
// [io] - Import and export of stock lists as JSON.
//
// [observability] - Log hooks for cache and fetch events.
//
// [buildinfo] - Version information injected at build time.
//
// [treemap]: https://pkg.go.dev/github.com/visarcu/heatmap/pkg/treemap
// [market]: https://pkg.go.dev/github.com/visarcu/heatmap/pkg/market
// [heatmap]: https://pkg.go.dev/github.com/visarcu/heatmap/pkg/heatmap
// [integrations]: https://pkg.go.dev/github.com/visarcu/heatmap/pkg/integrations
// [integrations/fmp]: https://pkg.go.dev/github.com/visarcu/heatmap/pkg/integrations/fmp
// [pipeline]: https://pkg.go.dev/github.com/visarcu/heatmap/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/visarcu/heatmap/pkg/cache
// [render/sink]: https://pkg.go.dev/github.com/visarcu/heatmap/pkg/render/sink
// [errors]: https://pkg.go.dev/github.com/visarcu/heatmap/pkg/errors
// [httputil]: https://pkg.go.dev/github.com/visarcu/heatmap/pkg/httputil
// [io]: https://pkg.go.dev/github.com/visarcu/heatmap/pkg/io
// [observability]: https://pkg.go.dev/github.com/visarcu/heatmap/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/visarcu/heatmap/pkg/buildinfo
package pkg
