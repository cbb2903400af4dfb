package cache

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/ZaighumCheema47/klap-closing-app/internal/domain/entity"
)

// RedisClosingCache caches archived closings in Redis.
type RedisClosingCache struct {
	client *redis.Client
}

// NewRedisClosingCache connects a Redis-backed closing cache.
func NewRedisClosingCache(addr, password string, db int) *RedisClosingCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	return &RedisClosingCache{client: client}
}

func (c *RedisClosingCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisClosingCache) Close() error {
	return c.client.Close()
}

func (c *RedisClosingCache) Get(ctx context.Context, key string) (*entity.ArchivedClosing, bool, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var closing entity.ArchivedClosing
	if err := json.Unmarshal([]byte(val), &closing); err != nil {
		return nil, false, err
	}
	return &closing, true, nil
}

func (c *RedisClosingCache) Set(ctx context.Context, key string, value *entity.ArchivedClosing, ttl time.Duration) error {
	if value == nil {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, payload, ttl).Err()
}

func (c *RedisClosingCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}
