// Package fmp fetches real-time stock quotes from the Financial Modeling
// Prep API.
//
// Symbols are requested in batches of [DefaultChunkSize] through the
// comma-separated quote endpoint. Batches run concurrently under a request
// rate limit, and each is cached independently, so a repeated request for
// the same universe costs nothing until the cache entry expires.
//
// A batch that fails is logged and skipped. [Client.FetchQuotes] returns an
// error only when no batch succeeded, which lets a heatmap render with a
// few missing tiles rather than not at all.
package fmp
