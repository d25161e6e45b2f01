package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// Server deployments use it to keep per-tenant entries apart while
// sharing one Redis instance.
//
// Example usage:
//
//	// Tenant-specific keys
//	tenantKeyer := NewScopedKeyer(NewDefaultKeyer(), "tenant:abc123:")
//
//	// Shared keys
//	globalKeyer := NewDefaultKeyer()
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

// PassKey generates a prefixed key for a pass result.
func (k *ScopedKeyer) PassKey(docHash, viewID string, opts PassKeyOpts) string {
	return k.prefix + k.inner.PassKey(docHash, viewID, opts)
}

// DocumentKey generates a prefixed key for a document snapshot.
func (k *ScopedKeyer) DocumentKey(docHash string) string {
	return k.prefix + k.inner.DocumentKey(docHash)
}
