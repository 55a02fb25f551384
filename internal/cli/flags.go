package cli

import (
	"strings"

	"github.com/spf13/cobra"

	errs "github.com/visarcu/heatmap/pkg/errors"
	"github.com/visarcu/heatmap/pkg/market"
	"github.com/visarcu/heatmap/pkg/pipeline"
)

// mapFlags holds the flags shared by the commands that build a heatmap.
// Flags seeded from the config only override it when set explicitly.
type mapFlags struct {
	// fetch
	universe string
	symbols  string
	refresh  bool

	// layout
	sector        string
	top           int
	width         float64
	height        float64
	viewport      float64
	padding       float64
	minSize       float64
	splitFraction float64
	title         string

	// render
	formats    string
	locale     string
	legend     bool
	noTooltips bool
	scale      float64
}

func (f *mapFlags) registerFetch(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.universe, "universe", "u", "", "index universe: "+strings.Join(market.UniverseNames(), ", "))
	fs.StringVarP(&f.symbols, "symbols", "s", "", "comma-separated ticker symbols (overrides the universe list)")
	fs.BoolVar(&f.refresh, "refresh", false, "ignore cached quotes")
}

func (f *mapFlags) registerLayout(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.sector, "sector", "", "only show one sector (English or German name)")
	fs.IntVar(&f.top, "top", 0, "keep the N largest stocks (0 keeps all)")
	fs.Float64Var(&f.width, "width", 0, "canvas width (requires --height)")
	fs.Float64Var(&f.height, "height", 0, "canvas height (requires --width)")
	fs.Float64Var(&f.viewport, "viewport", 0, "viewport width used to size the canvas automatically")
	fs.Float64Var(&f.padding, "padding", 0, "inset applied to each tile")
	fs.Float64Var(&f.minSize, "min-size", 0, "minimum tile width and height")
	fs.Float64Var(&f.splitFraction, "split-fraction", 0, "largest share of items considered for one split, in (0, 1]")
	fs.StringVar(&f.title, "title", "", "map title (default derived from universe and sector)")
}

func (f *mapFlags) registerRender(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), png, json (comma-separated)")
	fs.StringVar(&f.locale, "locale", "", "number and sector language: de, en")
	fs.BoolVar(&f.legend, "legend", false, "draw the colour legend")
	fs.BoolVar(&f.noTooltips, "no-tooltips", false, "omit SVG hover tooltips")
	fs.Float64Var(&f.scale, "scale", pipeline.DefaultScale, "PNG resolution multiplier")
}

// apply copies the flags onto opts.
func (f *mapFlags) apply(cmd *cobra.Command, opts *pipeline.Options) {
	changed := cmd.Flags().Changed

	if f.universe != "" {
		opts.Universe = f.universe
	}
	if f.symbols != "" {
		opts.Symbols = errs.ParseSymbols(f.symbols)
	}
	opts.Refresh = f.refresh

	opts.Sector = f.sector
	opts.Top = f.top
	opts.Width = f.width
	opts.Height = f.height
	opts.Viewport = f.viewport
	opts.Title = f.title
	if changed("padding") {
		opts.Padding = &f.padding
	}
	if changed("min-size") {
		opts.MinSize = &f.minSize
	}
	if changed("split-fraction") {
		opts.SplitFraction = f.splitFraction
	}

	opts.Formats = parseFormats(f.formats)
	if changed("locale") {
		opts.Locale = f.locale
	}
	if changed("legend") {
		opts.Legend = f.legend
	}
	opts.NoTooltips = f.noTooltips
	opts.Scale = f.scale
}

// options returns the config defaults overlaid with the command's flags.
// The config universe applies only when no source is given.
func (c *CLI) options(cmd *cobra.Command, f *mapFlags) pipeline.Options {
	opts := c.baseOptions()
	f.apply(cmd, &opts)
	if opts.Universe == "" && len(opts.Symbols) == 0 {
		opts.Universe = c.config().Layout.Universe
	}
	return opts
}
