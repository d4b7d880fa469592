package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

var _ BlobStorage = (*RedisStorage)(nil)

// RedisKeyPrefix namespaces the cart keys inside a shared Redis database.
const RedisKeyPrefix = "storefront:cart:"

type redisCmdable interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// A RedisStorage keeps every blob as a string value.
//
// A positive ttl expires carts that were not written for that long.
type RedisStorage struct {
	rdb    redisCmdable
	ttl    time.Duration
	closer func() error
}

func NewRedisStorage(
	ctx context.Context, url string, ttl time.Duration,
) (RedisStorage, error) {
	const op = "NewRedisStorage"

	opts, err := redis.ParseURL(url)
	if err != nil {
		return RedisStorage{}, fmt.Errorf("%s: invalid url: %w", op, err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return RedisStorage{}, fmt.Errorf("%s: redis is unavailable: %w", op, err)
	}

	slog.Info("redis is available", "op", op, "addr", opts.Addr)
	return RedisStorage{rdb: client, ttl: ttl, closer: client.Close}, nil
}

func (s RedisStorage) Load(ctx context.Context, key string) ([]byte, error) {
	const op = "RedisStorage.Load"

	blob, err := s.rdb.Get(ctx, RedisKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, notFound(op, key)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return blob, nil
}

func (s RedisStorage) Save(ctx context.Context, key string, blob []byte) error {
	const op = "RedisStorage.Save"

	if err := s.rdb.Set(ctx, RedisKeyPrefix+key, blob, s.ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s RedisStorage) Delete(ctx context.Context, key string) error {
	const op = "RedisStorage.Delete"

	n, err := s.rdb.Del(ctx, RedisKeyPrefix+key).Result()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return notFound(op, key)
	}
	return nil
}

func (s RedisStorage) Close() {
	const op = "RedisStorage.Close"
	if s.closer == nil {
		return
	}
	if err := s.closer(); err != nil {
		slog.Error("failed to close", "op", op, "err", err)
	}
}
