// Package integrations provides HTTP clients for market-data APIs.
//
// # Overview
//
// This package contains the shared plumbing for upstream quote providers.
// Each provider lives in its own subpackage:
//
//   - [fmp]: Financial Modeling Prep batch quotes
//
// # Client Pattern
//
// Provider clients follow a consistent pattern:
//
//	client := fmp.NewClient(backend, apiKey, cache.TTLHTTP)
//	quotes, err := client.FetchQuotes(ctx, symbols, false)  // false = use cache
//
// Clients handle:
//   - HTTP requests with retry, Retry-After and client-side rate limiting
//   - Response caching through any [cache.Cache] backend
//   - API-specific decoding and error mapping
//
// # Shared Infrastructure
//
// The [Client] type provides the HTTP layer used by every provider. Failures
// surface as the sentinels [ErrNotFound], [ErrNetwork], [ErrUnauthorized]
// and [ErrRateLimited]; [Classify] turns them into coded errors for the
// CLI and the HTTP server. Query parameters holding credentials are
// stripped from observability output with [RedactURL].
//
// [fmp]: github.com/visarcu/heatmap/pkg/integrations/fmp
// [cache.Cache]: github.com/visarcu/heatmap/pkg/cache.Cache
package integrations
