// Package config loads the heatmap configuration file.
//
// Files are TOML or YAML, chosen by extension. A missing file is not an
// error: defaults apply, then environment variables, then command-line
// flags (applied by the caller).
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	errs "github.com/visarcu/heatmap/pkg/errors"
	"github.com/visarcu/heatmap/pkg/integrations/fmp"
	"github.com/visarcu/heatmap/pkg/market"
	"github.com/visarcu/heatmap/pkg/treemap"
)

const appName = "heatmap"

// Cache backends.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
	BackendNone   = "none"
)

// ValidBackends lists the supported cache backends.
var ValidBackends = []string{BackendFile, BackendMemory, BackendRedis, BackendMongo, BackendNone}

// Config holds all heatmap configuration.
type Config struct {
	MarketData MarketDataConfig `toml:"market_data" yaml:"market_data"`
	Cache      CacheConfig      `toml:"cache" yaml:"cache"`
	Server     ServerConfig     `toml:"server" yaml:"server"`
	Layout     LayoutConfig     `toml:"layout" yaml:"layout"`
	Log        LogConfig        `toml:"log" yaml:"log"`
}

// MarketDataConfig configures the quote provider.
type MarketDataConfig struct {
	APIKey      string  `toml:"api_key" yaml:"api_key"`
	BaseURL     string  `toml:"base_url" yaml:"base_url"`
	ChunkSize   int     `toml:"chunk_size" yaml:"chunk_size"`
	Concurrency int     `toml:"concurrency" yaml:"concurrency"`
	RateLimit   float64 `toml:"rate_limit" yaml:"rate_limit"` // requests per second, 0 disables
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend string `toml:"backend" yaml:"backend"` // file, memory, redis, mongo, none
	Dir     string `toml:"dir" yaml:"dir"`
	Prefix  string `toml:"prefix" yaml:"prefix"` // key scope for shared backends

	RedisAddr     string `toml:"redis_addr" yaml:"redis_addr"`
	RedisPassword string `toml:"redis_password" yaml:"redis_password"`
	RedisDB       int    `toml:"redis_db" yaml:"redis_db"`

	MongoURI        string `toml:"mongo_uri" yaml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database" yaml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection" yaml:"mongo_collection"`
}

// ServerConfig configures `heatmap serve`.
type ServerConfig struct {
	Addr           string `toml:"addr" yaml:"addr"`
	RequestTimeout string `toml:"request_timeout" yaml:"request_timeout"`
	MaxBodyBytes   int64  `toml:"max_body_bytes" yaml:"max_body_bytes"`
}

// LayoutConfig holds the defaults for maps built without explicit flags.
type LayoutConfig struct {
	Universe      string  `toml:"universe" yaml:"universe"`
	Locale        string  `toml:"locale" yaml:"locale"`
	Padding       float64 `toml:"padding" yaml:"padding"`
	MinSize       float64 `toml:"min_size" yaml:"min_size"`
	SplitFraction float64 `toml:"split_fraction" yaml:"split_fraction"`
	Legend        bool    `toml:"legend" yaml:"legend"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `toml:"level" yaml:"level"` // debug, info, warn, error
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		MarketData: MarketDataConfig{
			BaseURL:     fmp.DefaultBaseURL,
			ChunkSize:   fmp.DefaultChunkSize,
			Concurrency: fmp.DefaultConcurrency,
			RateLimit:   fmp.DefaultRate,
		},
		Cache: CacheConfig{
			Backend:         BackendFile,
			RedisAddr:       "localhost:6379",
			MongoURI:        "mongodb://localhost:27017",
			MongoDatabase:   appName,
			MongoCollection: "cache",
		},
		Server: ServerConfig{
			Addr:           ":8080",
			RequestTimeout: "30s",
			MaxBodyBytes:   1 << 20,
		},
		Layout: LayoutConfig{
			Universe:      market.UniverseSP500,
			Locale:        "de",
			Padding:       treemap.DefaultPadding,
			MinSize:       treemap.DefaultMinSize,
			SplitFraction: treemap.DefaultMaxSplitFraction,
		},
		Log: LogConfig{Level: "info"},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/heatmap/config.toml, falling back
// to ~/.config.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", appName, "config.toml")
}

// Load reads path over the defaults and applies environment overrides.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "read config")
	default:
		if err := decode(path, data, cfg); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "parse config %s", path)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	if isYAML(path) {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	}
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown key %q", undecoded[0].String())
	}
	return nil
}

// Save writes the configuration to path in the format its extension names.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	var buf bytes.Buffer
	if isYAML(path) {
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return fmt.Errorf("marshal config: %w", err)
		}
	} else if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	// The file may hold an API key.
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("FMP_API_KEY"); key != "" {
		c.MarketData.APIKey = key
	}
	if backend := os.Getenv("HEATMAP_CACHE_BACKEND"); backend != "" {
		c.Cache.Backend = strings.ToLower(backend)
	}
	if dir := os.Getenv("HEATMAP_CACHE_DIR"); dir != "" {
		c.Cache.Dir = dir
	}
	if addr := os.Getenv("HEATMAP_REDIS_ADDR"); addr != "" {
		c.Cache.RedisAddr = addr
	}
	if uri := os.Getenv("HEATMAP_MONGO_URI"); uri != "" {
		c.Cache.MongoURI = uri
	}
	if addr := os.Getenv("HEATMAP_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	if level := os.Getenv("HEATMAP_LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
	if rate := os.Getenv("HEATMAP_RATE_LIMIT"); rate != "" {
		if v, err := strconv.ParseFloat(rate, 64); err == nil {
			c.MarketData.RateLimit = v
		}
	}
}

// Validate checks the configuration for values no command can work with.
// A missing API key is not an error here since offline commands don't need
// one.
func (c *Config) Validate() error {
	if !slices.Contains(ValidBackends, c.Cache.Backend) {
		return errs.New(errs.ErrCodeInvalidConfig, "invalid cache backend %q (valid: %s)",
			c.Cache.Backend, strings.Join(ValidBackends, ", "))
	}
	if c.MarketData.BaseURL != "" {
		if err := errs.ValidateURL(c.MarketData.BaseURL); err != nil {
			return errs.Wrap(errs.ErrCodeInvalidConfig, err, "market_data.base_url")
		}
	}
	if c.MarketData.ChunkSize < 0 || c.MarketData.Concurrency < 0 || c.MarketData.RateLimit < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "market_data chunk_size, concurrency and rate_limit must not be negative")
	}
	if _, err := time.ParseDuration(c.Server.RequestTimeout); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "server.request_timeout")
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "log.level")
	}
	if c.Layout.Universe != "" {
		if _, err := market.LookupUniverse(c.Layout.Universe); err != nil {
			return errs.Wrap(errs.ErrCodeInvalidConfig, err, "layout.universe")
		}
	}
	if _, err := market.ParseLocale(c.Layout.Locale); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "layout.locale")
	}
	if c.Layout.Padding < 0 || c.Layout.MinSize < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "layout padding and min_size must not be negative")
	}
	if c.Layout.SplitFraction < 0 || c.Layout.SplitFraction > 1 {
		return errs.New(errs.ErrCodeInvalidConfig, "layout.split_fraction must be in (0, 1]")
	}
	return nil
}

// RequestTimeout returns the server request timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	d, err := time.ParseDuration(c.Server.RequestTimeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// LogLevel returns the configured log level, defaulting to info.
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
