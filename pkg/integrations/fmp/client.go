package fmp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/visarcu/heatmap/pkg/cache"
	errs "github.com/visarcu/heatmap/pkg/errors"
	"github.com/visarcu/heatmap/pkg/integrations"
	"github.com/visarcu/heatmap/pkg/market"
)

const (
	// DefaultBaseURL is the quote API root.
	DefaultBaseURL = "https://financialmodelingprep.com/api/v3"

	// DefaultChunkSize is the number of symbols per quote request.
	DefaultChunkSize = 100

	// DefaultConcurrency bounds the quote requests in flight.
	DefaultConcurrency = 4

	// DefaultRate is the request rate allowed per second. It replaces the
	// fixed pause between batches.
	DefaultRate  = 10
	defaultBurst = 4

	apiKeyParam = "apikey"
)

// Client fetches real-time quotes. It is safe for concurrent use.
type Client struct {
	*integrations.Client
	baseURL     string
	apiKey      string
	chunkSize   int
	concurrency int
	logger      *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another API root, such as a test server.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithChunkSize sets how many symbols go into one request.
func WithChunkSize(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.chunkSize = n
		}
	}
}

// WithConcurrency sets how many requests may be in flight at once.
func WithConcurrency(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// WithRateLimit throttles requests. A zero r disables throttling.
func WithRateLimit(r rate.Limit, burst int) Option {
	return func(c *Client) { c.SetRateLimit(r, burst) }
}

// WithLogger sets the logger used to report failed batches.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a quote client with the given cache backend and API key.
// Responses are cached for cacheTTL (typically [cache.TTLHTTP]).
func NewClient(backend cache.Cache, apiKey string, cacheTTL time.Duration, opts ...Option) *Client {
	c := &Client{
		Client:      integrations.NewClient(backend, "fmp:", cacheTTL, nil),
		baseURL:     DefaultBaseURL,
		apiKey:      strings.TrimSpace(apiKey),
		chunkSize:   DefaultChunkSize,
		concurrency: DefaultConcurrency,
		logger:      log.New(io.Discard),
	}
	c.SetRedactedParams(apiKeyParam)
	c.SetRateLimit(DefaultRate, defaultBurst)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchQuotes retrieves quotes for symbols in batches.
//
// Symbols are normalised, validated and de-duplicated first. Batches are
// fetched concurrently and independently: a failed batch is logged and
// skipped, and an error is returned only when every batch fails. Quotes
// come back in batch order, unfiltered; use [market.FromQuotes] to clean
// them up.
//
// If refresh is true, cached responses are ignored.
func (c *Client) FetchQuotes(ctx context.Context, symbols []string, refresh bool) ([]market.Quote, error) {
	if c.apiKey == "" {
		return nil, errs.New(errs.ErrCodeUnauthorized, "quote API key is required (set FMP_API_KEY)")
	}
	syms := dedupe(symbols)
	if err := errs.ValidateSymbols(syms); err != nil {
		return nil, err
	}

	batches := chunk(syms, c.chunkSize)
	results := make([][]market.Quote, len(batches))
	failures := make([]error, len(batches))

	var g errgroup.Group
	g.SetLimit(c.concurrency)
	for i, batch := range batches {
		g.Go(func() error {
			results[i], failures[i] = c.fetchBatch(ctx, batch, refresh)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, errs.Wrap(errs.ErrCodeTimeout, err, "fetch quotes")
		}
		return nil, err
	}

	var (
		quotes   []market.Quote
		firstErr error
		failed   int
	)
	for i, err := range failures {
		if err != nil {
			failed++
			if firstErr == nil {
				firstErr = err
			}
			c.logger.Warn("quote batch failed", "batch", i+1, "of", len(batches), "symbols", len(batches[i]), "err", err)
			continue
		}
		quotes = append(quotes, results[i]...)
	}
	if failed == len(batches) {
		return nil, integrations.Classify(firstErr, "fetch quotes for %d symbols", len(syms))
	}
	return quotes, nil
}

// FetchQuote retrieves a single quote.
func (c *Client) FetchQuote(ctx context.Context, symbol string, refresh bool) (*market.Quote, error) {
	quotes, err := c.FetchQuotes(ctx, []string{symbol}, refresh)
	if err != nil {
		return nil, err
	}
	if len(quotes) == 0 {
		return nil, errs.New(errs.ErrCodeNotFound, "no quote for %s", errs.NormalizeSymbol(symbol))
	}
	return &quotes[0], nil
}

func (c *Client) fetchBatch(ctx context.Context, batch []string, refresh bool) ([]market.Quote, error) {
	var quotes []market.Quote
	err := c.Cached(ctx, "quote:"+strings.Join(batch, ","), refresh, &quotes, func() error {
		return c.fetch(ctx, batch, &quotes)
	})
	return quotes, err
}

func (c *Client) fetch(ctx context.Context, batch []string, out *[]market.Quote) error {
	raw, err := c.GetRaw(ctx, c.quoteURL(batch))
	if err != nil {
		return err
	}
	return decodeQuotes(raw, out)
}

func (c *Client) quoteURL(batch []string) string {
	escaped := make([]string, len(batch))
	for i, s := range batch {
		escaped[i] = url.PathEscape(s)
	}
	return fmt.Sprintf("%s/quote/%s?%s=%s", c.baseURL, strings.Join(escaped, ","), apiKeyParam, url.QueryEscape(c.apiKey))
}

// errorResponse is sent with status 200 for invalid keys and plan limits.
type errorResponse struct {
	Message string `json:"Error Message"`
}

func decodeQuotes(raw []byte, out *[]market.Quote) error {
	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "{") {
		var e errorResponse
		if err := json.Unmarshal(raw, &e); err == nil && e.Message != "" {
			return fmt.Errorf("%w: %s", integrations.ErrUnauthorized, e.Message)
		}
		return fmt.Errorf("%w: unexpected object response", integrations.ErrNetwork)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode quotes: %w", err)
	}
	return nil
}

func dedupe(symbols []string) []string {
	seen := make(map[string]bool, len(symbols))
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		s = errs.NormalizeSymbol(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

func chunk(symbols []string, size int) [][]string {
	var out [][]string
	for start := 0; start < len(symbols); start += size {
		out = append(out, symbols[start:min(start+size, len(symbols))])
	}
	return out
}
