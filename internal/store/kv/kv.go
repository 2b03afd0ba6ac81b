// Package kv provides the small persistent key-value layer the local
// store sits on. Values are opaque byte blobs under string keys, with a
// usage accounting hook for quota enforcement.
package kv

// Store is a flat string-keyed blob store
type Store interface {
	// Get returns the value for key, or (nil, nil) if the key is absent
	Get(key string) ([]byte, error)

	// Set writes the value for key, overwriting any previous value
	Set(key string, value []byte) error

	// Remove deletes the key. Removing an absent key is not an error.
	Remove(key string) error

	// Usage estimates the total bytes held across all keys and values
	Usage() (int64, error)

	// Close releases the underlying resources
	Close() error
}
