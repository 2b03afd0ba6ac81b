package kv

// NewStore selects a backend from the configured path. An empty path
// means ephemeral in-memory storage; anything else is a bbolt file.
func NewStore(path string) (Store, error) {
	if path == "" {
		return NewMemoryStore(), nil
	}
	return NewBoltStore(path)
}
