package cache

// ScopedKeyer prefixes every key of an inner [Keyer]. Several projects or
// CI jobs can then share one Redis database without reading each other's
// entries:
//
//	keyer := NewScopedKeyer(nil, "ci:job-42:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer scopes inner under prefix. A nil inner means the
// [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// ModelKey implements [Keyer].
func (k *ScopedKeyer) ModelKey(inputHash string, opts ModelKeyOpts) string {
	return k.prefix + k.inner.ModelKey(inputHash, opts)
}

// PlanKey implements [Keyer].
func (k *ScopedKeyer) PlanKey(modelHash string) string {
	return k.prefix + k.inner.PlanKey(modelHash)
}
