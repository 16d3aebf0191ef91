package index

// Map is an Index backed by a Go map.
type Map[V any] struct {
	m map[string]V
}

// NewMap creates a new map index.
func NewMap[V any]() *Map[V] {
	return &Map[V]{
		m: make(map[string]V),
	}
}

// Lookup returns the value for the given key.
func (idx *Map[V]) Lookup(key string) (V, bool) {
	v, ok := idx.m[key]
	return v, ok
}

// Upsert stores the value for the given key.
func (idx *Map[V]) Upsert(key string, v V) {
	idx.m[key] = v
}

// Len returns the number of keys.
func (idx *Map[V]) Len() int {
	return len(idx.m)
}
