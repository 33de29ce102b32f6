package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/noah-isme/classroom-portal/pkg/config"
	"github.com/noah-isme/classroom-portal/pkg/database"
	"github.com/noah-isme/classroom-portal/pkg/kv"
)

// OpenStore builds the collection store selected by cfg.Storage.Driver. The
// returned close function releases any backing connection.
func OpenStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (CollectionStore, func() error, error) {
	noop := func() error { return nil }
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Storage.Driver {
	case "", config.StoreDriverFile:
		store, err := NewFileStore(cfg.Storage.DataDir)
		if err != nil {
			return nil, noop, err
		}
		logger.Info("collection store ready", zap.String("driver", config.StoreDriverFile), zap.String("dir", cfg.Storage.DataDir))
		return store, noop, nil
	case config.StoreDriverPostgres:
		db, err := database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			return nil, noop, err
		}
		store := NewPostgresStore(db)
		if err := store.Migrate(ctx); err != nil {
			_ = db.Close()
			return nil, noop, err
		}
		logger.Info("collection store ready", zap.String("driver", config.StoreDriverPostgres), zap.String("database", cfg.Database.Name))
		return store, db.Close, nil
	case config.StoreDriverRedis:
		client, err := kv.NewRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, noop, err
		}
		logger.Info("collection store ready", zap.String("driver", config.StoreDriverRedis), zap.String("prefix", cfg.Redis.KeyPrefix))
		return NewRedisStore(client, cfg.Redis.KeyPrefix), client.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown store driver %q", cfg.Storage.Driver)
	}
}
