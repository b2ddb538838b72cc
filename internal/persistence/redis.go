package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/restaurant-console/internal/config"
)

const redisConnectTimeout = 2 * time.Second

// Redis is the connection behind the redis credential store. Terminals
// sharing one instance keep their credential under separate keys.
type Redis struct {
	Client *redis.Client
	prefix string
}

// NewRedis builds the client. An unreachable server is logged, not fatal;
// the store reports errors per call and hydration falls back to logged out.
func NewRedis(ctx context.Context, cfg config.RedisConfig, keyPrefix string, logger *zap.Logger) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, redisConnectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.String("addr", cfg.Addr), zap.Error(err))
	} else {
		logger.Info("connected to redis", zap.String("addr", cfg.Addr), zap.Int("db", cfg.DB))
	}

	return &Redis{Client: client, prefix: keyPrefix}
}

// CredentialKey names the key holding terminalID's credential.
func (r *Redis) CredentialKey(terminalID string) (string, error) {
	if terminalID == "" {
		return "", errors.New("terminal id is required")
	}
	return r.prefix + terminalID, nil
}

// Close closes the client.
func (r *Redis) Close() {
	if r != nil && r.Client != nil {
		_ = r.Client.Close()
	}
}

// Ping verifies Redis connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return errors.New("redis client not configured")
	}
	return r.Client.Ping(ctx).Err()
}
