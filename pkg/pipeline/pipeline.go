// Package pipeline provides the heatmap pipeline shared by the CLI and the
// HTTP server.
//
// This package implements the complete fetch → layout → render pipeline so
// that every entry point resolves universes, sizes the canvas, caches and
// renders the same way.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Fetch: Resolve a universe or symbol list to quotes and clean stocks
//  2. Layout: Filter, rank and lay out the stocks as a treemap heatmap
//  3. Render: Generate output in various formats (SVG, PNG, JSON)
//
// Each stage can be run independently or as part of the complete pipeline,
// and each is cached through the [Runner]'s [cache.Cache].
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(c, nil, fmp.NewClient(c, apiKey, cache.TTLHTTP), logger)
//	opts := pipeline.Options{
//	    Universe: "sp500",
//	    Sector:   "Technology",
//	    Formats:  []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	stocks, err := runner.FetchStocks(ctx, opts)
//	h, err := runner.ComputeLayout(ctx, stocks, opts)
//	artifacts, err := runner.Render(ctx, h, opts)
package pipeline

import (
	"io"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/visarcu/heatmap/pkg/cache"
	errs "github.com/visarcu/heatmap/pkg/errors"
	"github.com/visarcu/heatmap/pkg/heatmap"
	"github.com/visarcu/heatmap/pkg/market"
	"github.com/visarcu/heatmap/pkg/treemap"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultUniverse is used when neither a universe, symbols nor stocks
	// are given.
	DefaultUniverse = market.UniverseSP500

	// DefaultLocale selects German number formatting and sector names.
	DefaultLocale = "de"

	// DefaultScale is the PNG resolution multiplier.
	DefaultScale = 2.0

	// MaxTop caps the number of tiles on one map.
	MaxTop = 1000
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
}

// ContentType returns the MIME type for a format.
func ContentType(format string) string {
	switch format {
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatJSON:
		return "application/json"
	default:
		return "application/octet-stream"
	}
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the heatmap pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Fetch options
	Universe string         `json:"universe,omitempty"`
	Symbols  []string       `json:"symbols,omitempty"`
	Stocks   []market.Stock `json:"stocks,omitempty"` // Preloaded stocks skip the fetch stage
	Refresh  bool           `json:"refresh,omitempty"`

	// Layout options
	Sector        string   `json:"sector,omitempty"`
	Top           int      `json:"top,omitempty"`
	Width         float64  `json:"width,omitempty"`
	Height        float64  `json:"height,omitempty"`
	Viewport      float64  `json:"viewport,omitempty"` // Caps the auto-sized width when Width/Height are unset
	Padding       *float64 `json:"padding,omitempty"`
	MinSize       *float64 `json:"min_size,omitempty"`
	SplitFraction float64  `json:"split_fraction,omitempty"`
	Title         string   `json:"title,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Legend     bool     `json:"legend,omitempty"`
	NoTooltips bool     `json:"no_tooltips,omitempty"`
	Locale     string   `json:"locale,omitempty"`
	Scale      float64  `json:"scale,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Stocks are the cleaned stocks before sector filtering.
	Stocks []market.Stock

	// Heatmap is the laid-out map.
	Heatmap *heatmap.Heatmap

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	StockCount int
	TileCount  int
	FetchTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	FetchHit  bool // Whether stocks came from cache
	LayoutHit bool // Whether the heatmap came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errs.New(errs.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks every field and applies defaults for the full
// pipeline. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForFetch(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForFetch checks the stock source and applies its defaults.
func (o *Options) ValidateForFetch() error {
	o.Symbols = errs.ParseSymbols(strings.Join(o.Symbols, ","))
	if o.Universe == "" && len(o.Symbols) == 0 && o.Stocks == nil {
		o.Universe = DefaultUniverse
	}
	if o.Universe != "" {
		u, err := market.LookupUniverse(o.Universe)
		if err != nil {
			return err
		}
		o.Universe = u.Name
	}
	if len(o.Symbols) > 0 {
		if err := errs.ValidateSymbols(o.Symbols); err != nil {
			return err
		}
	}
	o.setLogger()
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Padding == nil {
		o.Padding = ptr(treemap.DefaultPadding)
	}
	if o.MinSize == nil {
		o.MinSize = ptr(treemap.DefaultMinSize)
	}
	o.setLogger()
}

// ValidateForLayout validates and sets defaults for layout computation.
// Width and Height must be given together; when both are zero the canvas
// is sized from the tile count with [market.Dimensions].
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if (o.Width == 0) != (o.Height == 0) {
		return errs.New(errs.ErrCodeInvalidBox, "width and height must be set together")
	}
	if o.Width != 0 {
		if err := errs.ValidateDimension("width", o.Width); err != nil {
			return err
		}
		if err := errs.ValidateDimension("height", o.Height); err != nil {
			return err
		}
	}
	if o.Viewport < 0 || math.IsNaN(o.Viewport) || math.IsInf(o.Viewport, 0) {
		return errs.New(errs.ErrCodeInvalidInput, "viewport must be a non-negative number, got %v", o.Viewport)
	}
	if o.Top < 0 || o.Top > MaxTop {
		return errs.New(errs.ErrCodeInvalidInput, "top must be between 0 and %d, got %d", MaxTop, o.Top)
	}
	if !nonNegative(*o.Padding) {
		return errs.New(errs.ErrCodeInvalidInput, "padding must be a non-negative number, got %v", *o.Padding)
	}
	if !nonNegative(*o.MinSize) {
		return errs.New(errs.ErrCodeInvalidInput, "min_size must be a non-negative number, got %v", *o.MinSize)
	}
	if o.SplitFraction != 0 && !(o.SplitFraction > 0 && o.SplitFraction <= 1) {
		return errs.New(errs.ErrCodeInvalidInput, "split_fraction must be in (0, 1], got %v", o.SplitFraction)
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Locale == "" {
		o.Locale = DefaultLocale
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	o.setLogger()
}

// ValidateForRender validates and sets defaults for rendering. Duplicate
// formats are dropped.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	formats := make([]string, 0, len(o.Formats))
	for _, f := range o.Formats {
		f = strings.ToLower(strings.TrimSpace(f))
		if !slices.Contains(formats, f) {
			formats = append(formats, f)
		}
	}
	o.Formats = formats
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if _, err := market.ParseLocale(o.Locale); err != nil {
		return err
	}
	if !(o.Scale > 0) || math.IsInf(o.Scale, 0) {
		return errs.New(errs.ErrCodeInvalidInput, "scale must be a positive number, got %v", o.Scale)
	}
	return nil
}

// Box returns the canvas for count tiles.
func (o *Options) Box(count int) treemap.Box {
	if o.Width > 0 && o.Height > 0 {
		return treemap.Box{Width: o.Width, Height: o.Height}
	}
	size := market.Dimensions(count, o.Viewport)
	return treemap.Box{Width: size.Width, Height: size.Height}
}

// HeatmapOptions returns the layout options for [heatmap.Build].
func (o *Options) HeatmapOptions(title string) heatmap.Options {
	o.SetLayoutDefaults()
	return heatmap.Options{
		Title:         title,
		Padding:       *o.Padding,
		MinSize:       *o.MinSize,
		SplitFraction: o.SplitFraction,
	}
}

// LayoutKeyOpts returns cache key options for a layout inside box.
func (o *Options) LayoutKeyOpts(box treemap.Box) cache.LayoutKeyOpts {
	o.SetLayoutDefaults()
	return cache.LayoutKeyOpts{
		Width:         box.Width,
		Height:        box.Height,
		Padding:       *o.Padding,
		MinSize:       *o.MinSize,
		SplitFraction: o.SplitFraction,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Format:     format,
		Legend:     o.Legend,
		NoTooltips: o.NoTooltips,
		Locale:     o.Locale,
	}
	if format == FormatPNG {
		opts.Scale = o.Scale
	}
	return opts
}

// Formatter returns the number formatter for the configured locale.
func (o *Options) Formatter() market.Formatter {
	f, err := market.ParseLocale(o.Locale)
	if err != nil {
		return market.German
	}
	return f
}

// discard is the logger options fall back to until a Runner supplies one.
var discard = log.NewWithOptions(io.Discard, log.Options{})

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = discard
	}
}

func nonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0)
}

func ptr[T any](v T) *T { return &v }
