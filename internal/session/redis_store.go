package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisKV is the subset of the go-redis client the store needs.
type redisKV interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisStore keeps the credential under a per-terminal key so kiosks sharing
// a Redis instance keep separate sessions.
type RedisStore struct {
	client redisKV
	key    string
}

var _ TokenStore = (*RedisStore)(nil)

// NewRedisStore builds a store over key, usually persistence.Redis.CredentialKey.
func NewRedisStore(client redisKV, key string) (*RedisStore, error) {
	if client == nil {
		return nil, errors.New("redis client not configured")
	}
	if key == "" {
		return nil, errors.New("redis credential key is required")
	}
	return &RedisStore{client: client, key: key}, nil
}

// Key returns the Redis key holding the credential.
func (s *RedisStore) Key() string {
	return s.key
}

// Save stores the credential without expiry; the decoder owns expiry checks.
func (s *RedisStore) Save(ctx context.Context, credential string) error {
	if err := s.client.Set(ctx, s.key, credential, 0).Err(); err != nil {
		return fmt.Errorf("redis set credential: %w", err)
	}
	return nil
}

// Load reads the credential.
func (s *RedisStore) Load(ctx context.Context) (string, error) {
	val, err := s.client.Get(ctx, s.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNoCredential
		}
		return "", fmt.Errorf("redis get credential: %w", err)
	}
	if val == "" {
		return "", ErrNoCredential
	}
	return val, nil
}

// Clear deletes the key. Deleting a missing key is not an error.
func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("redis delete credential: %w", err)
	}
	return nil
}
