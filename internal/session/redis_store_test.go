package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRedis struct {
	data   map[string]string
	getErr error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	val, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(val, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	f.data[key] = value.(string)
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func TestRedisStoreKeysPerTerminal(t *testing.T) {
	ctx := context.Background()
	rdb := newFakeRedis()

	bar, err := NewRedisStore(rdb, "console:credential:bar-1")
	require.NoError(t, err)
	patio, err := NewRedisStore(rdb, "console:credential:patio-2")
	require.NoError(t, err)

	assert.Equal(t, "console:credential:bar-1", bar.Key())

	require.NoError(t, bar.Save(ctx, "token-bar"))
	_, err = patio.Load(ctx)
	assert.ErrorIs(t, err, ErrNoCredential)

	got, err := bar.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "token-bar", got)

	require.NoError(t, bar.Clear(ctx))
	require.NoError(t, bar.Clear(ctx))
	_, err = bar.Load(ctx)
	assert.ErrorIs(t, err, ErrNoCredential)
}

func TestRedisStoreSurfacesTransportErrors(t *testing.T) {
	rdb := newFakeRedis()
	rdb.getErr = errors.New("connection refused")
	store, err := NewRedisStore(rdb, "p:t")
	require.NoError(t, err)

	_, err = store.Load(context.Background())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoCredential)
}

func TestRedisStoreRequiresKey(t *testing.T) {
	_, err := NewRedisStore(newFakeRedis(), "")
	assert.Error(t, err)

	_, err = NewRedisStore(nil, "p:t")
	assert.Error(t, err)
}
