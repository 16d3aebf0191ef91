package cache

// Cache is a byte-oriented cache. Returned slices must be treated as
// read-only.
type Cache interface {
	// Get returns a cached value. ok=false if missing.
	Get(key string) (b []byte, ok bool)
	// Set caches a value. The cache retains b; callers must not modify it.
	Set(key string, b []byte)
	// Stats returns hit and miss counts.
	Stats() (hits, misses int64)
	// Size returns the cached bytes.
	Size() int64
}
