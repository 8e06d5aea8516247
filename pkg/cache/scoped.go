package cache

// ScopedKeyer wraps a Keyer with a prefix so separate deployments or users
// sharing one backend get isolated namespaces.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to all generated
// keys. A nil inner keyer falls back to the default.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// GraphKey generates a prefixed key for ingested graph caching.
func (k *ScopedKeyer) GraphKey(source string) string {
	return k.prefix + k.inner.GraphKey(source)
}

// CommunityKey generates a prefixed key for community analysis caching.
func (k *ScopedKeyer) CommunityKey(graphHash string, opts CommunityKeyOpts) string {
	return k.prefix + k.inner.CommunityKey(graphHash, opts)
}

// SpreadKey generates a prefixed key for spread simulation caching.
func (k *ScopedKeyer) SpreadKey(graphHash string, opts SpreadKeyOpts) string {
	return k.prefix + k.inner.SpreadKey(graphHash, opts)
}
