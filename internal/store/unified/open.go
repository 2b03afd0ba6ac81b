package unified

import (
	"fmt"
	"log/slog"

	"copydesk/internal/config"
	"copydesk/internal/store/cloud"
	"copydesk/internal/store/kv"
	"copydesk/internal/store/local"
)

// Open assembles the full storage stack from configuration: a key-value
// backend (bbolt file, or in-memory when no path is set), the local
// store over it, and a cloud mirror when a base URL is configured.
// Callers own the returned store and must Close it.
func Open(cfg *config.Config, tokens cloud.TokenProvider, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	backend, err := kv.NewStore(cfg.LocalStorePath)
	if err != nil {
		return nil, fmt.Errorf("open local storage: %w", err)
	}

	localStore := local.New(local.Options{
		KV:     backend,
		Quota:  cfg.LocalStoreQuota,
		Logger: logger,
	})

	var cloudStore *cloud.Store
	mode := ModeLocalOnly
	if cfg.CloudBaseURL != "" {
		cloudStore = cloud.NewStore(cloud.NewClient(cloud.ClientOptions{
			BaseURL:       cfg.CloudBaseURL,
			TokenProvider: tokens,
		}))
		mode = ModeCloudFirst
	}

	store := New(Options{
		Local:  localStore,
		Cloud:  cloudStore,
		Mode:   mode,
		Logger: logger,
	})
	store.kv = backend

	return store, nil
}

// Close releases the underlying key-value backend, if Open created one
func (s *Store) Close() error {
	if s.kv == nil {
		return nil
	}
	return s.kv.Close()
}
