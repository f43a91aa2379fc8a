package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const redisWatchRetries = 5

// RedisSettingsStore implements SettingsStore on a Redis server. Keys are
// namespaced with a prefix.
type RedisSettingsStore struct {
	client *redis.Client
	prefix string
}

// OpenRedisSettingsStore connects to url. A url that does not parse is used
// as a plain address. An unreachable server is logged, not fatal; operations
// report errors until it comes up.
func OpenRedisSettingsStore(ctx context.Context, url, prefix string, logger *zap.Logger) *RedisSettingsStore {
	opt, err := redis.ParseURL(url)
	if err != nil {
		logger.Warn("failed to parse redis url, using direct addr", zap.String("url", url), zap.Error(err))
		opt = &redis.Options{Addr: url}
	}
	client := redis.NewClient(opt)
	if _, err := client.Ping(ctx).Result(); err != nil {
		logger.Warn("failed to connect to redis", zap.String("addr", opt.Addr), zap.Error(err))
	}
	return NewRedisSettingsStore(client, prefix)
}

func NewRedisSettingsStore(client *redis.Client, prefix string) *RedisSettingsStore {
	return &RedisSettingsStore{client: client, prefix: prefix}
}

func (s *RedisSettingsStore) key(k string) string { return s.prefix + k }

func (s *RedisSettingsStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, s.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("reading setting %s: %w", key, err)
	}
	return value, true, nil
}

func (s *RedisSettingsStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("writing setting %s: %w", key, err)
	}
	return nil
}

func (s *RedisSettingsStore) Delete(ctx context.Context, key string) error {
	n, err := s.client.Del(ctx, s.key(key)).Result()
	if err != nil {
		return fmt.Errorf("deleting setting %s: %w", key, err)
	}
	if n == 0 {
		return fmt.Errorf("setting %s: %w", key, ErrNotFound)
	}
	return nil
}

// Update uses WATCH/MULTI and retries when another client wins the race.
func (s *RedisSettingsStore) Update(ctx context.Context, key string, fn UpdateFunc) error {
	k := s.key(key)
	txf := func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, k).Result()
		found := true
		if errors.Is(err, redis.Nil) {
			found, err = false, nil
		}
		if err != nil {
			return err
		}
		next, err := fn(current, found)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, k, next, 0)
			return nil
		})
		return err
	}

	var err error
	for range redisWatchRetries {
		err = s.client.Watch(ctx, txf, k)
		if !errors.Is(err, redis.TxFailedErr) {
			break
		}
	}
	if err != nil {
		return fmt.Errorf("updating setting %s: %w", key, err)
	}
	return nil
}

func (s *RedisSettingsStore) Close() error {
	return s.client.Close()
}
