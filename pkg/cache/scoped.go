package cache

// ScopedKeyer wraps a Keyer with a prefix so separate namespaces, such as
// different program versions, never share entries.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "v1.2.0:")
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

// FingerprintKey generates a prefixed fingerprint key.
func (k *ScopedKeyer) FingerprintKey(candidates []string, minLength int) string {
	return k.prefix + k.inner.FingerprintKey(candidates, minLength)
}
