package storage

import (
	"context"
	"fmt"

	"github.com/clinicdesk/clinic-scheduling/internal/config"
)

// Open builds the store selected by cfg.StoreBackend. The returned close
// func releases the backend connection and is safe to call once.
func Open(ctx context.Context, cfg config.Config) (Store, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendMemory:
		return NewMemoryStore(), func() {}, nil

	case config.BackendRedis:
		client, err := NewRedisClient(cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword)
		if err != nil {
			return nil, nil, fmt.Errorf("open redis store: %w", err)
		}
		return NewRedisStore(client), func() { _ = client.Close() }, nil

	case config.BackendPostgres:
		pool, err := ConnectPostgres(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres store: %w", err)
		}
		store := NewPostgresStore(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return store, pool.Close, nil
	}

	return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
}
