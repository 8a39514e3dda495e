package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/marceloquintiliano12-debug/a-aidaTati/internal/catalog"
)

const menuKey = "catalog:products"

// RedisMenuCache keeps the product list warm so the storefront does not hit
// Postgres on every menu render.
type RedisMenuCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisMenuCache(rdb *redis.Client, ttl time.Duration) *RedisMenuCache {
	return &RedisMenuCache{rdb: rdb, ttl: ttl}
}

func (c *RedisMenuCache) GetProducts(ctx context.Context) ([]catalog.Product, bool, error) {
	raw, err := c.rdb.Get(ctx, menuKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var ps []catalog.Product
	if err := json.Unmarshal(raw, &ps); err != nil {
		return nil, false, err
	}
	return ps, true, nil
}

func (c *RedisMenuCache) SetProducts(ctx context.Context, ps []catalog.Product) error {
	raw, err := json.Marshal(ps)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, menuKey, raw, c.ttl).Err()
}

var _ catalog.MenuCache = (*RedisMenuCache)(nil)
