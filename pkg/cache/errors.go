package cache

import "errors"

// Sentinel errors for caching operations.
var (
	// ErrCacheMiss is returned by helpers that treat a miss as an error
	// condition; Get's boolean covers the common path.
	ErrCacheMiss = errors.New("cache miss")

	// ErrClosed is returned when operating on a closed cache.
	ErrClosed = errors.New("cache closed")
)
