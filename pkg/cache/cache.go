// Package cache provides the byte-level cache used by the quotes client, the
// layout memoizer and the render store.
//
// Backends implement [Cache]. The CLI defaults to [FileCache] under the XDG
// cache directory, the server to [RedisCache] or [MongoCache] when configured,
// and tests use [MemoryCache] or [NullCache]. Keys are produced by a [Keyer]
// so every component agrees on naming and a deployment can isolate tenants
// with [ScopedKeyer].
//
// All entries are disposable. Losing the cache costs a refetch or a
// recompute, never data.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte slices under string keys with an optional TTL.
// A TTL of zero means the entry does not expire.
//
// Get reports a miss as (nil, false, nil). Errors are reserved for backend
// failures; callers typically treat them as misses.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Default TTLs per entry kind.
const (
	// TTLHTTP applies to raw upstream responses.
	TTLHTTP = time.Minute

	// TTLQuotes applies to processed stock lists. Quotes move during the
	// trading day, so this stays short.
	TTLQuotes = 2 * time.Minute

	// TTLLayout applies to computed treemaps. Layouts are a pure function of
	// their key, so they can live long.
	TTLLayout = 24 * time.Hour

	// TTLArtifact applies to rendered SVG/PNG/JSON output.
	TTLArtifact = 24 * time.Hour

	// TTLRender applies to renders stored by the API under an ID.
	TTLRender = 7 * 24 * time.Hour
)
