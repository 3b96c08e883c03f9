package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	countKey      = "catalog:count"
	storefrontKey = "catalog:storefront"

	ttl = 30 * time.Second
)

// Cache is a best-effort read cache for the hot catalog endpoints. A nil
// *Cache is valid and behaves as a permanent miss, so the server runs
// without redis in development and in tests.
type Cache struct {
	rdb *redis.Client
}

func New(addr string) (*Cache, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &Cache{rdb: rdb}, nil
}

func (c *Cache) ProductCount(ctx context.Context) (int64, bool) {
	if c == nil {
		return 0, false
	}
	v, err := c.rdb.Get(ctx, countKey).Result()
	if err != nil {
		return 0, false
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (c *Cache) SetProductCount(ctx context.Context, n int64) {
	if c == nil {
		return
	}
	c.rdb.Set(ctx, countKey, strconv.FormatInt(n, 10), ttl)
}

// Storefront returns the cached JSON envelope of the storefront listing.
func (c *Cache) Storefront(ctx context.Context) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	b, err := c.rdb.Get(ctx, storefrontKey).Bytes()
	if err != nil {
		return nil, false
	}
	return b, true
}

func (c *Cache) SetStorefront(ctx context.Context, payload []byte) {
	if c == nil {
		return
	}
	c.rdb.Set(ctx, storefrontKey, payload, ttl)
}

// InvalidateProducts drops catalog keys after any product mutation.
func (c *Cache) InvalidateProducts(ctx context.Context) {
	if c == nil {
		return
	}
	c.rdb.Del(ctx, countKey, storefrontKey)
}
