package cache

import (
	"context"
	"strings"
	"time"

	"github.com/visarcu/heatmap/pkg/observability"
)

// keyKinds are the leading segments produced by [DefaultKeyer].
var keyKinds = []string{"http", "quotes", "layout", "artifact", "render"}

// Instrument wraps c so every Get and Set reports to the registered
// [observability.CacheHooks].
func Instrument(c Cache) Cache {
	if _, ok := c.(instrumented); ok {
		return c
	}
	return instrumented{Cache: c}
}

type instrumented struct {
	Cache
}

func (c instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, hit, err := c.Cache.Get(ctx, key)
	if hit {
		observability.Cache().OnCacheHit(ctx, KeyKind(key))
	} else {
		observability.Cache().OnCacheMiss(ctx, KeyKind(key))
	}
	return data, hit, err
}

func (c instrumented) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	err := c.Cache.Set(ctx, key, data, ttl)
	if err == nil {
		observability.Cache().OnCacheSet(ctx, KeyKind(key), len(data))
	}
	return err
}

// KeyKind returns the entry kind of a key ("layout", "quotes", ...), looking
// past any [ScopedKeyer] prefix. Unknown keys report "other".
func KeyKind(key string) string {
	for _, seg := range strings.Split(key, ":") {
		for _, k := range keyKinds {
			if seg == k {
				return k
			}
		}
	}
	return "other"
}
