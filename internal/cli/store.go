package cli

import (
	"context"
	"fmt"

	"griddeck/internal/config"
	"griddeck/internal/layoutstore"
)

// openBackend constructs the persistence backend selected by the config.
// The returned closer releases backend resources; it is a no-op for the
// file and memory backends.
func openBackend(ctx context.Context, cfg *config.Config) (layoutstore.Store, func() error, error) {
	switch cfg.Store.Backend {
	case "file":
		s, err := layoutstore.NewFileStore(cfg.Store.Dir)
		if err != nil {
			return nil, nil, fmt.Errorf("open layout dir: %w", err)
		}
		return s, func() error { return nil }, nil
	case "redis":
		s, err := layoutstore.NewRedisStore(ctx, cfg.Store.RedisAddr)
		if err != nil {
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		return s, s.Close, nil
	case "memory":
		return layoutstore.NewMemoryStore(), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}
