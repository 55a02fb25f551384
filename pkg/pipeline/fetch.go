package pipeline

import (
	"context"

	errs "github.com/visarcu/heatmap/pkg/errors"
	"github.com/visarcu/heatmap/pkg/market"
)

// QuoteSource fetches raw quotes for a symbol list. It is satisfied by
// *fmp.Client.
type QuoteSource interface {
	FetchQuotes(ctx context.Context, symbols []string, refresh bool) ([]market.Quote, error)
}

// source is a resolved stock source: what to ask for and how to classify
// the answer.
type source struct {
	name    string
	symbols []string
	sectors market.SectorMap
}

// resolveSource turns the fetch options into a symbol list. Explicit
// symbols take precedence over the universe's constituents, but the
// universe's sector map still applies to them.
func resolveSource(opts Options) (source, error) {
	var src source
	if opts.Universe != "" {
		u, err := market.LookupUniverse(opts.Universe)
		if err != nil {
			return source{}, err
		}
		src = source{name: u.Name, symbols: u.Symbols, sectors: u.Sectors}
	}
	if len(opts.Symbols) > 0 {
		src.symbols = opts.Symbols
		if src.name == "" {
			src.name = "symbols"
			src.sectors = market.DefaultSectors()
		}
	}
	if len(src.symbols) == 0 {
		return source{}, errs.New(errs.ErrCodeInvalidInput, "universe or symbols required")
	}
	return src, nil
}

func fetchSource(ctx context.Context, src QuoteSource, s source, opts Options) ([]market.Stock, error) {
	if src == nil {
		return nil, errs.New(errs.ErrCodeInvalidConfig, "no quote source configured")
	}
	quotes, err := src.FetchQuotes(ctx, s.symbols, opts.Refresh)
	if err != nil {
		return nil, err
	}
	stocks := market.FromQuotes(quotes, s.sectors)
	if len(stocks) == 0 {
		return nil, errs.New(errs.ErrCodeNoData, "no usable quotes for %s (%d symbols requested)", s.name, len(s.symbols))
	}
	if dropped := len(s.symbols) - len(stocks); dropped > 0 {
		opts.Logger.Warn("some symbols returned no usable quote", "source", s.name, "requested", len(s.symbols), "missing", dropped)
	}
	return stocks, nil
}
