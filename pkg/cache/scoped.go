package cache

// ScopedKeyer wraps a Keyer with a prefix so separate contexts get
// separate cache namespaces. The preview server scopes its keys when
// caching in Redis, since the instance may be shared with other
// applications.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "workspace:reports:")
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

// SummaryKey generates a prefixed key for a file summary.
func (k *ScopedKeyer) SummaryKey(kind, fingerprint string, opts SummaryKeyOpts) string {
	return k.prefix + k.inner.SummaryKey(kind, fingerprint, opts)
}
