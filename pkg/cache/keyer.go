package cache

// Keyer derives cache keys.
type Keyer interface {
	// FingerprintKey identifies a fingerprint search over candidates, in
	// order, starting at minLength.
	FingerprintKey(candidates []string, minLength int) string
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// FingerprintKey returns "fingerprint:<sha256>". Candidate order matters
// because the result lists segments in candidate order.
func (DefaultKeyer) FingerprintKey(candidates []string, minLength int) string {
	return hashKey("fingerprint", candidates, minLength)
}
