package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation. Useful
// when several deployments or test runs share one Redis instance and need
// separate cache namespaces.
//
// Example usage:
//
//	// Per-environment keys
//	stagingKeyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
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

// PuzzleKey generates a prefixed key for a generated puzzle.
func (k *ScopedKeyer) PuzzleKey(family string, opts PuzzleKeyOpts) string {
	return k.prefix + k.inner.PuzzleKey(family, opts)
}

// SolveKey generates a prefixed key for a solver result.
func (k *ScopedKeyer) SolveKey(gridHash string, opts SolveKeyOpts) string {
	return k.prefix + k.inner.SolveKey(gridHash, opts)
}

// DatasetKey generates a prefixed key for dataset metadata.
func (k *ScopedKeyer) DatasetKey(name string) string {
	return k.prefix + k.inner.DatasetKey(name)
}
