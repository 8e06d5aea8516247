// Package cache provides pluggable result caching for trendspot analyses.
//
// Decomposing and ranking a large follows graph is pure but not free, so
// the pipeline caches derived artifacts (serialized graphs, community
// partitions, spread runs) keyed by a hash of the input graph and the
// analysis options. Backends:
//   - FileCache: directory-backed, for CLI usage
//   - RedisCache: shared cache for multi-instance deployments
//   - NullCache: caching disabled
//
// Keys are produced through the [Keyer] interface so deployments can
// namespace them (see [NewScopedKeyer]).
package cache

import (
	"context"
	"time"
)

// Default TTLs per artifact class. Ingested graphs track their source,
// derived results only change with the graph, so derived entries can
// live longer.
const (
	TTLGraph     = 24 * time.Hour
	TTLCommunity = 7 * 24 * time.Hour
	TTLSpread    = 7 * 24 * time.Hour
)

// Cache is the storage interface for analysis artifacts.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// CommunityKeyOpts carries the options that change a decomposition result.
type CommunityKeyOpts struct {
	Metric      string  // ranking metric name
	TopFraction float64 // trend-setter share per community
}

// SpreadKeyOpts carries the options that change a spread simulation result.
type SpreadKeyOpts struct {
	Start          int
	MaxDepth       int
	MaxGenerations int
}

// Keyer generates cache keys for the analysis stages.
type Keyer interface {
	// GraphKey keys an ingested graph by its source descriptor.
	GraphKey(source string) string

	// CommunityKey keys a decomposition+ranking result by graph hash.
	CommunityKey(graphHash string, opts CommunityKeyOpts) string

	// SpreadKey keys a spread simulation by graph hash and run options.
	SpreadKey(graphHash string, opts SpreadKeyOpts) string
}

// DefaultKeyer produces unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// GraphKey generates a key for ingested graph caching.
func (k *DefaultKeyer) GraphKey(source string) string {
	return "graph:" + Hash([]byte(source))
}

// CommunityKey generates a key for community analysis caching.
func (k *DefaultKeyer) CommunityKey(graphHash string, opts CommunityKeyOpts) string {
	return hashKey("community", graphHash, opts.Metric, opts.TopFraction)
}

// SpreadKey generates a key for spread simulation caching.
func (k *DefaultKeyer) SpreadKey(graphHash string, opts SpreadKeyOpts) string {
	return hashKey("spread", graphHash, opts.Start, opts.MaxDepth, opts.MaxGenerations)
}
