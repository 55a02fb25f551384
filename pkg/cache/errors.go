package cache

import "errors"

var (
	// ErrCacheMiss is returned by helpers that must distinguish a miss from
	// an empty value, such as [GetJSON].
	ErrCacheMiss = errors.New("cache miss")

	// ErrClosed is returned by backends used after Close.
	ErrClosed = errors.New("cache closed")
)
