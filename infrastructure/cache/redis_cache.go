package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"decorlens/domain/services"
	"decorlens/infrastructure/redis"
	"decorlens/pkg/logger"
)

const keyPrefix = "decorlens:img:"

// RedisImageCache shares proxied images between API instances. Redis errors
// degrade to cache misses.
type RedisImageCache struct {
	client *redis.RedisClient
}

func NewRedisImageCache(client *redis.RedisClient) *RedisImageCache {
	return &RedisImageCache{client: client}
}

func (c *RedisImageCache) Get(ctx context.Context, key string) (*services.CachedImage, bool) {
	raw, err := c.client.Get(ctx, imageKey(key))
	if err != nil {
		if !redis.IsNil(err) {
			logger.Warn(logger.CategoryCache, "get_failed", "Redis image cache read failed", map[string]interface{}{"error": err.Error()})
		}
		return nil, false
	}

	var img services.CachedImage
	if err := json.Unmarshal(raw, &img); err != nil {
		return nil, false
	}
	return &img, true
}

func (c *RedisImageCache) Set(ctx context.Context, key string, img *services.CachedImage, ttl time.Duration) {
	raw, err := json.Marshal(img)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, imageKey(key), raw, ttl); err != nil {
		logger.Warn(logger.CategoryCache, "set_failed", "Redis image cache write failed", map[string]interface{}{"error": err.Error()})
	}
}

// imageKey hashes the source URL so keys stay short and safe
func imageKey(url string) string {
	sum := sha256.Sum256([]byte(url))
	return keyPrefix + hex.EncodeToString(sum[:])
}
