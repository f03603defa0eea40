// Package redis backs the byte cache port with a shared Redis instance. The
// dashboard runs fine without it; main wires the cache only when Redis is
// reachable at startup.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/42roma/monitor/internal/config"
	"github.com/42roma/monitor/internal/port/cache"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type redisCacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisClient connects to the configured Redis instance and verifies the
// connection with a ping before handing the client out.
func NewRedisClient(cfg *config.RedisConfig, logger *zap.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		logger.Error("Failed to connect to Redis", zap.String("address", cfg.Address), zap.Error(err))
		return nil, fmt.Errorf("failed to ping redis at %s: %w", cfg.Address, err)
	}
	logger.Info("Successfully connected to Redis", zap.String("address", cfg.Address))
	return rdb, nil
}

func NewRedisCacheRepository(client *redis.Client, logger *zap.Logger) cache.CacheRepository {
	return &redisCacheRepository{
		client: client,
		logger: logger,
	}
}

// Get returns the cached bytes for key, cache.ErrNotFound on a miss.
func (r *redisCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, cache.ErrNotFound
		}
		r.logger.Error("Redis read failed", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("redisCacheRepository.Get: reading key %s: %w", key, err)
	}
	return val, nil
}

// Set stores value under key for ttl; a zero ttl keeps the key until it is
// deleted.
func (r *redisCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		r.logger.Error("Redis write failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("redisCacheRepository.Set: writing key %s: %w", key, err)
	}
	r.logger.Debug("Cached value", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (r *redisCacheRepository) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.logger.Error("Redis delete failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("redisCacheRepository.Delete: deleting key %s: %w", key, err)
	}
	r.logger.Debug("Deleted cached value", zap.String("key", key))
	return nil
}
