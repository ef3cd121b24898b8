package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	errx "github.com/shopeasy/storefront/internal/core/error"
	"github.com/shopeasy/storefront/internal/storefront/model"
	logx "github.com/shopeasy/storefront/pkg/logger"
)

// RedisStorage keeps one client's collections as plain string values under
// "<prefix>:<clientID>:<key>".
type RedisStorage struct {
	rdb       redis.Cmdable
	namespace string
	ttl       time.Duration
}

func NewRedisStorage(rdb redis.Cmdable, prefix, clientID string, ttl time.Duration) *RedisStorage {
	return &RedisStorage{rdb: rdb, namespace: fmt.Sprintf("%s:%s", prefix, clientID), ttl: ttl}
}

func (r *RedisStorage) itemKey(key string) string {
	return fmt.Sprintf("%s:%s", r.namespace, key)
}

func (r *RedisStorage) GetItem(ctx context.Context, key string) (string, bool, error) {
	k := r.itemKey(key)

	v, err := r.rdb.Get(ctx, k).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		logx.Error().Err(err).Str("key", k).Msg("failed to read item from redis")
		return "", false, errx.WrapRedis(err)
	}
	return v, true, nil
}

func (r *RedisStorage) SetItem(ctx context.Context, key string, value string) error {
	k := r.itemKey(key)

	// a zero ttl keeps the value until it is removed, like local storage
	if err := r.rdb.Set(ctx, k, value, r.ttl).Err(); err != nil {
		logx.Error().Err(err).Str("key", k).Msg("failed to write item to redis")
		return errx.WrapRedis(err)
	}
	return nil
}

func (r *RedisStorage) RemoveItem(ctx context.Context, key string) error {
	k := r.itemKey(key)
	if err := r.rdb.Del(ctx, k).Err(); err != nil {
		logx.Error().Err(err).Str("key", k).Msg("failed to delete item from redis")
		return errx.WrapRedis(err)
	}
	return nil
}

var _ model.Storage = (*RedisStorage)(nil)
