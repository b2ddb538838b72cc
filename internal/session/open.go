package session

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/restaurant-console/internal/config"
	"github.com/spec-kit/restaurant-console/internal/persistence"
	"github.com/spec-kit/restaurant-console/internal/repository"
)

// Pinger reports whether a store backend answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Backend is an opened token store together with the connection behind it.
type Backend struct {
	Name   string
	Store  TokenStore
	Pinger Pinger
	close  func()
}

// Close releases the backend connection, if any.
func (b *Backend) Close() {
	if b != nil && b.close != nil {
		b.close()
	}
}

// OpenBackend builds the token store selected by cfg.Session.Store.
func OpenBackend(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Backend, error) {
	switch cfg.Session.Store {
	case config.StoreRedis:
		rdb := persistence.NewRedis(ctx, cfg.Redis, cfg.Session.RedisKeyPrefix, logger)
		key, err := rdb.CredentialKey(cfg.Session.TerminalID)
		if err != nil {
			rdb.Close()
			return nil, err
		}
		store, err := NewRedisStore(rdb.Client, key)
		if err != nil {
			rdb.Close()
			return nil, err
		}
		return &Backend{Name: config.StoreRedis, Store: store, Pinger: rdb, close: rdb.Close}, nil

	case config.StorePostgres:
		pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		store, err := NewPostgresStore(repository.NewCredentialRepository(pg.Pool), cfg.Session.TerminalID)
		if err != nil {
			pg.Close()
			return nil, err
		}
		return &Backend{Name: config.StorePostgres, Store: store, Pinger: pg, close: pg.Close}, nil

	default:
		store, err := NewFileStore(cfg.Session.FilePath)
		if err != nil {
			return nil, err
		}
		return &Backend{Name: config.StoreFile, Store: store}, nil
	}
}
