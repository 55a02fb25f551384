// Package cli implements the heatmap command-line interface.
//
// # Commands
//
//   - fetch: Download quotes for a universe or symbol list to stocks.json
//   - layout: Lay out a stock list as a treemap heatmap (layout.json)
//   - render: Render SVG, PNG or JSON from stocks, a layout, or live quotes
//   - sectors: Print sector performance as a table
//   - view: Browse a heatmap in the terminal
//   - serve: Run the HTTP API
//   - cache: Manage the local cache
//
// Shell completion scripts come from cobra's built-in completion command.
//
// Global flags select the config file (--config), switch to debug logging
// (--verbose) and bypass the cache (--no-cache).
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/visarcu/heatmap/internal/config"
	"github.com/visarcu/heatmap/pkg/buildinfo"
	"github.com/visarcu/heatmap/pkg/cache"
	"github.com/visarcu/heatmap/pkg/integrations/fmp"
	"github.com/visarcu/heatmap/pkg/observability"
	"github.com/visarcu/heatmap/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "heatmap"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	verbose    bool
	noCache    bool
	cfg        *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Heatmap lays out stock market heatmaps weighted by market cap",
		Long: `Heatmap fetches real-time quotes for an index or a list of symbols and lays
them out as a treemap: each stock is a tile sized by market cap and coloured
by its daily change. Maps render to SVG, PNG and JSON, in the terminal, or
over HTTP.`,
		Version:           buildinfo.Current(),
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	flags.StringVar(&c.configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	flags.BoolVar(&c.noCache, "no-cache", false, "disable caching")

	root.AddCommand(c.fetchCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.sectorsCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())

	return root
}

// setup loads the configuration and wires logging before any command runs.
func (c *CLI) setup(cmd *cobra.Command, args []string) error {
	path := c.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg = cfg

	level := cfg.LogLevel()
	if c.verbose {
		level = LogDebug
	}
	c.SetLogLevel(level)
	observability.NewLogHooks(c.Logger).Register()

	c.Logger.Debug("loaded config", "path", path, "cache", cfg.Cache.Backend)
	return nil
}

// config returns the loaded configuration, or the defaults when setup has
// not run.
func (c *CLI) config() *config.Config {
	if c.cfg == nil {
		c.cfg = config.Default()
	}
	return c.cfg
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context) (*pipeline.Runner, error) {
	backend, err := c.newCache(ctx)
	if err != nil {
		return nil, err
	}
	cfg := c.config()

	var keyer cache.Keyer = cache.NewDefaultKeyer()
	if cfg.Cache.Prefix != "" {
		keyer = cache.NewScopedKeyer(keyer, cfg.Cache.Prefix)
	}

	quotes := fmp.NewClient(backend, cfg.MarketData.APIKey, cache.TTLHTTP,
		fmp.WithBaseURL(cfg.MarketData.BaseURL),
		fmp.WithChunkSize(cfg.MarketData.ChunkSize),
		fmp.WithConcurrency(cfg.MarketData.Concurrency),
		fmp.WithRateLimit(rate.Limit(cfg.MarketData.RateLimit), max(1, cfg.MarketData.Concurrency)),
		fmp.WithLogger(c.Logger),
	)
	return pipeline.NewRunner(cache.Instrument(backend), keyer, quotes, c.Logger), nil
}

// newCache opens the configured cache backend. --no-cache wins over the
// configuration.
func (c *CLI) newCache(ctx context.Context) (cache.Cache, error) {
	cfg := c.config().Cache
	if c.noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendMemory:
		return cache.NewMemoryCache(), nil
	case config.BackendRedis:
		return cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	case config.BackendMongo:
		return cache.NewMongoCache(ctx, cache.MongoOptions{
			URI:        cfg.MongoURI,
			Database:   cfg.MongoDatabase,
			Collection: cfg.MongoCollection,
		})
	default:
		dir, err := c.cacheDirectory()
		if err != nil {
			c.Logger.Warn("no cache directory, caching disabled", "err", err)
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDirectory returns the configured cache directory, or the XDG default.
func (c *CLI) cacheDirectory() (string, error) {
	if dir := c.config().Cache.Dir; dir != "" {
		return dir, nil
	}
	return cacheDir()
}

// cacheDir returns the cache directory using XDG standard (~/.cache/heatmap/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// baseOptions returns pipeline options seeded from the layout config.
func (c *CLI) baseOptions() pipeline.Options {
	l := c.config().Layout
	padding, minSize := l.Padding, l.MinSize
	return pipeline.Options{
		Padding:       &padding,
		MinSize:       &minSize,
		SplitFraction: l.SplitFraction,
		Locale:        l.Locale,
		Legend:        l.Legend,
		Logger:        c.Logger,
	}
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}
