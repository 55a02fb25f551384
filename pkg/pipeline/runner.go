package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/visarcu/heatmap/pkg/cache"
	"github.com/visarcu/heatmap/pkg/heatmap"
	"github.com/visarcu/heatmap/pkg/market"
	"github.com/visarcu/heatmap/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it so that caching behaves identically.
//
// The Runner is stateless except for its collaborators; it doesn't store
// pipeline results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Quotes QuoteSource
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache, keyer and quote source.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
// quotes may be nil when only preloaded stocks are laid out.
func NewRunner(c cache.Cache, keyer cache.Keyer, quotes QuoteSource, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Quotes: quotes,
		Logger: logger,
	}
}

// Execute runs the complete fetch → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{}

	// Stage 1: Fetch
	fetchStart := time.Now()
	stocks, fetchHit, err := r.FetchStocksWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	result.Stocks = stocks
	result.Stats.StockCount = len(stocks)
	result.Stats.FetchTime = time.Since(fetchStart)
	result.CacheInfo.FetchHit = fetchHit

	r.Logger.Info("fetched stocks",
		"stocks", len(stocks),
		"cached", fetchHit,
		"duration", result.Stats.FetchTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	h, layoutHit, err := r.ComputeLayoutWithCacheInfo(ctx, stocks, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Heatmap = h
	result.Stats.TileCount = len(h.Tiles)
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"tiles", len(h.Tiles),
		"width", h.Width,
		"height", h.Height,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, h, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// FetchStocksWithCacheInfo resolves the stock source with caching and
// returns cache hit info. Preloaded stocks are returned as given.
func (r *Runner) FetchStocksWithCacheInfo(ctx context.Context, opts Options) ([]market.Stock, bool, error) {
	if err := opts.ValidateForFetch(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	if opts.Stocks != nil {
		return opts.Stocks, false, nil
	}
	src, err := resolveSource(opts)
	if err != nil {
		return nil, false, err
	}

	hooks := observability.Pipeline()
	hooks.OnFetchStart(ctx, src.name, len(src.symbols))
	start := time.Now()

	cacheKey := r.Keyer.QuotesKey(src.name, src.symbols)

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		var cached []market.Stock
		if err := cache.GetJSON(ctx, r.Cache, cacheKey, &cached); err == nil && len(cached) > 0 {
			hooks.OnFetchComplete(ctx, src.name, len(cached), time.Since(start), nil)
			return cached, true, nil
		}
	}

	stocks, err := fetchSource(ctx, r.Quotes, src, opts)
	hooks.OnFetchComplete(ctx, src.name, len(stocks), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Refreshed results replace the cached list.
	_ = cache.SetJSON(ctx, r.Cache, cacheKey, stocks, cache.TTLQuotes)

	return stocks, false, nil
}

// FetchStocks is a convenience wrapper that calls FetchStocksWithCacheInfo
// and discards the cache hit info.
func (r *Runner) FetchStocks(ctx context.Context, opts Options) ([]market.Stock, error) {
	stocks, _, err := r.FetchStocksWithCacheInfo(ctx, opts)
	return stocks, err
}

// ComputeLayoutWithCacheInfo lays out stocks with caching and returns cache
// hit info.
//
// The layout is a pure function of the selected stocks, the canvas and the
// layout options, so it is memoised under a key derived from all three.
func (r *Runner) ComputeLayoutWithCacheInfo(ctx context.Context, stocks []market.Stock, opts Options) (*heatmap.Heatmap, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	selected, sector, err := SelectStocks(stocks, opts)
	if err != nil {
		return nil, false, err
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, len(selected))
	start := time.Now()

	// Compute cache key
	box := opts.Box(len(selected))
	title := defaultTitle(opts, sector)
	itemsHash, err := cache.HashJSON(struct {
		Stocks []market.Stock `json:"stocks"`
		Title  string         `json:"title"`
	}{selected, title})
	if err != nil {
		return nil, false, fmt.Errorf("hash layout input: %w", err)
	}
	cacheKey := r.Keyer.LayoutKey(itemsHash, opts.LayoutKeyOpts(box))

	// Try cache first
	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		if cached, err := heatmap.Unmarshal(data); err == nil {
			hooks.OnLayoutComplete(ctx, len(cached.Tiles), time.Since(start), nil)
			return cached, true, nil
		}
		// If deserialization fails, fall through to recompute
	}

	h, err := heatmap.Build(selected, box, opts.HeatmapOptions(title))
	if err != nil {
		hooks.OnLayoutComplete(ctx, 0, time.Since(start), err)
		return nil, false, err
	}
	hooks.OnLayoutComplete(ctx, len(h.Tiles), time.Since(start), nil)

	// Cache the result
	if data, err := heatmap.Marshal(h); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLLayout)
	}

	return h, false, nil
}

// ComputeLayout is a convenience wrapper that calls
// ComputeLayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) ComputeLayout(ctx context.Context, stocks []market.Stock, opts Options) (*heatmap.Heatmap, error) {
	h, _, err := r.ComputeLayoutWithCacheInfo(ctx, stocks, opts)
	return h, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, h *heatmap.Heatmap, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Compute cache key from layout data
	layoutData, err := heatmap.Marshal(h)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	// Try to get all formats from cache
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, cacheKey)
		if err != nil || !hit {
			break
		}
		artifacts[format] = data
	}
	if len(artifacts) == len(opts.Formats) {
		return artifacts, true, nil
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	rendered, err := Render(h, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Render(ctx context.Context, h *heatmap.Heatmap, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, h, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil || opts.Logger == discard {
		opts.Logger = r.Logger
	}
}
