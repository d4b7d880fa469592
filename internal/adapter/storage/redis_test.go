package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/niksmo/storefront/internal/core/port"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRedis struct {
	values map[string]string
	ttls   map[string]time.Duration
	err    error
}

func newStubRedis() *stubRedis {
	return &stubRedis{
		values: make(map[string]string),
		ttls:   make(map[string]time.Duration),
	}
}

func (r *stubRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if r.err != nil {
		return redis.NewStringResult("", r.err)
	}
	v, ok := r.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (r *stubRedis) Set(
	_ context.Context, key string, value any, expiration time.Duration,
) *redis.StatusCmd {
	if r.err != nil {
		return redis.NewStatusResult("", r.err)
	}
	r.values[key] = string(value.([]byte))
	r.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (r *stubRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	if r.err != nil {
		return redis.NewIntResult(0, r.err)
	}
	var n int64
	for _, k := range keys {
		if _, ok := r.values[k]; ok {
			delete(r.values, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func TestRedisStorage(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		rdb := newStubRedis()
		s := RedisStorage{rdb: rdb, ttl: time.Hour}

		_, err := s.Load(t.Context(), "pp_cart")
		require.ErrorIs(t, err, port.ErrNotFound)

		require.NoError(t, s.Save(t.Context(), "pp_cart", []byte(`{}`)))
		assert.Equal(t, `{}`, rdb.values["storefront:cart:pp_cart"])
		assert.Equal(t, time.Hour, rdb.ttls["storefront:cart:pp_cart"])

		blob, err := s.Load(t.Context(), "pp_cart")
		require.NoError(t, err)
		assert.Equal(t, `{}`, string(blob))

		require.NoError(t, s.Delete(t.Context(), "pp_cart"))
		assert.ErrorIs(t, s.Delete(t.Context(), "pp_cart"), port.ErrNotFound)
	})

	t.Run("Failure", func(t *testing.T) {
		rdb := newStubRedis()
		rdb.err = errors.New("connection refused")
		s := RedisStorage{rdb: rdb}

		_, err := s.Load(t.Context(), "pp_cart")
		require.Error(t, err)
		assert.NotErrorIs(t, err, port.ErrNotFound)
		assert.Error(t, s.Save(t.Context(), "pp_cart", []byte(`{}`)))
		assert.Error(t, s.Delete(t.Context(), "pp_cart"))
	})

	t.Run("CloseWithoutClient", func(t *testing.T) {
		assert.NotPanics(t, RedisStorage{rdb: newStubRedis()}.Close)
	})

	t.Run("InvalidURL", func(t *testing.T) {
		_, err := NewRedisStorage(t.Context(), "not-a-url", 0)
		assert.Error(t, err)
	})
}
