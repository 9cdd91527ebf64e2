package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang/snappy"
	redis "github.com/redis/go-redis/v9"
	paramdomain "github.com/smallbiznis/immolens/internal/parameters/domain"
)

const keyResolvedConfig = "immolens:parameters:%d"

// RedisCache stores resolved configurations as snappy-compressed JSON.
type RedisCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewRedisCache(client redis.Cmdable, ttl time.Duration) *RedisCache {
	if client == nil {
		return nil
	}
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, fiscalYear int) (paramdomain.ResolvedConfiguration, error) {
	var cfg paramdomain.ResolvedConfiguration
	if c == nil {
		return cfg, paramdomain.ErrCacheMiss
	}
	raw, err := c.client.Get(ctx, cacheKey(fiscalYear)).Bytes()
	if errors.Is(err, redis.Nil) {
		return cfg, paramdomain.ErrCacheMiss
	}
	if err != nil {
		return cfg, err
	}
	return decode(raw)
}

func (c *RedisCache) Set(ctx context.Context, cfg paramdomain.ResolvedConfiguration) error {
	if c == nil {
		return nil
	}
	raw, err := encode(cfg)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, cacheKey(cfg.FiscalYear), raw, c.ttl).Err()
}

func (c *RedisCache) Delete(ctx context.Context, fiscalYear int) error {
	if c == nil {
		return nil
	}
	return c.client.Del(ctx, cacheKey(fiscalYear)).Err()
}

func cacheKey(fiscalYear int) string {
	return fmt.Sprintf(keyResolvedConfig, fiscalYear)
}

func encode(cfg paramdomain.ResolvedConfiguration) ([]byte, error) {
	payload, err := json.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	return snappy.Encode(nil, payload), nil
}

func decode(raw []byte) (paramdomain.ResolvedConfiguration, error) {
	var cfg paramdomain.ResolvedConfiguration
	payload, err := snappy.Decode(nil, raw)
	if err != nil {
		return cfg, fmt.Errorf("decode cached parameters: %w", err)
	}
	if err := json.Unmarshal(payload, &cfg); err != nil {
		return cfg, fmt.Errorf("unmarshal cached parameters: %w", err)
	}
	return cfg, nil
}
