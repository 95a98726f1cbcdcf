package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// The HTTP server uses it so that a shared Redis instance can hold the
// entries of several deployments side by side.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "wiregraph:staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// AnalysisKey generates a prefixed key for analysis caching.
func (k *ScopedKeyer) AnalysisKey(sourceHash string, opts AnalysisKeyOpts) string {
	return k.prefix + k.inner.AnalysisKey(sourceHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(analysisHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(analysisHash, opts)
}
