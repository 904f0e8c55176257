package profilefieldinfra

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Abraxas-365/hirely/recruitment/profilefield"
	"github.com/redis/go-redis/v9"
)

const cacheKey = "hirely:profile_field_config"

// RedisFieldCache implements profilefield.Cache with a single JSON value
type RedisFieldCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisFieldCache(client *redis.Client, ttl time.Duration) *RedisFieldCache {
	return &RedisFieldCache{client: client, ttl: ttl}
}

func (c *RedisFieldCache) Get(ctx context.Context) ([]profilefield.FieldConfig, bool, error) {
	data, err := c.client.Get(ctx, cacheKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get field cache: %w", err)
	}

	var fields []profilefield.FieldConfig
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, false, fmt.Errorf("decode field cache: %w", err)
	}
	return fields, true, nil
}

func (c *RedisFieldCache) Set(ctx context.Context, fields []profilefield.FieldConfig) error {
	data, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encode field cache: %w", err)
	}
	if err := c.client.Set(ctx, cacheKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("set field cache: %w", err)
	}
	return nil
}

func (c *RedisFieldCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, cacheKey).Err(); err != nil {
		return fmt.Errorf("invalidate field cache: %w", err)
	}
	return nil
}
