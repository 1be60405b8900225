package services

import (
	"context"
	"errors"
	"time"

	"restaurante360/services/logger"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

const (
	cachePrefix     = "r360:"
	defaultCacheTTL = 30 * time.Minute

	UsersCacheKey = "users:all"
)

func ActivitiesCacheKey(managerID string) string {
	return "activities:" + managerID
}

// Cache is a read-through JSON cache on Redis. A nil Cache, or one without a
// client, misses on every read and ignores writes.
type Cache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewCache(rdb *redis.Client, log logger.Logger) *Cache {
	if log == nil {
		log = logger.Nop{}
	}
	return &Cache{rdb: rdb, ttl: defaultCacheTTL, logger: log}
}

func (c *Cache) enabled() bool {
	return c != nil && c.rdb != nil
}

// Get decodes key into target and reports whether it was found.
func (c *Cache) Get(ctx context.Context, key string, target interface{}) (bool, error) {
	if !c.enabled() {
		return false, nil
	}
	cached, err := c.rdb.Get(ctx, cachePrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(cached, target); err != nil {
		return false, err
	}
	return true, nil
}

func (c *Cache) Set(ctx context.Context, key string, value interface{}) error {
	if !c.enabled() {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, cachePrefix+key, data, c.ttl).Err()
}

// Delete drops keys, logging failures.
func (c *Cache) Delete(ctx context.Context, keys ...string) {
	if !c.enabled() || len(keys) == 0 {
		return
	}
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = cachePrefix + k
	}
	if err := c.rdb.Del(ctx, prefixed...).Err(); err != nil {
		c.logger.Error("cache delete %v: %v", keys, err)
	}
}

// Flush removes every key owned by the service and returns how many.
func (c *Cache) Flush(ctx context.Context) (int, error) {
	if !c.enabled() {
		return 0, nil
	}
	removed := 0
	iter := c.rdb.Scan(ctx, 0, cachePrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, iter.Err()
}

// remember loads key into target, or fills it with load and stores it.
func (c *Cache) remember(ctx context.Context, key string, target interface{}, load func() error) error {
	if hit, err := c.Get(ctx, key, target); err != nil {
		c.logger.Error("cache get %s: %v", key, err)
	} else if hit {
		return nil
	}
	if err := load(); err != nil {
		return err
	}
	if err := c.Set(ctx, key, target); err != nil {
		c.logger.Error("cache set %s: %v", key, err)
	}
	return nil
}
