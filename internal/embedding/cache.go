// internal/embedding/cache.go
package embedding

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sana-bil/Smart-Scholar/internal/common/logger"
	"github.com/sana-bil/Smart-Scholar/internal/common/metrics"
)

// Cache is a Redis read-through wrapper around a Provider. Field texts repeat
// heavily across queries, so cached vectors avoid most provider round-trips.
type Cache struct {
	provider Provider
	redis    *redis.Client
	ttl      time.Duration
	logger   logger.Logger
}

var _ Provider = (*Cache)(nil)

// NewCache wraps provider with a Redis-backed vector cache.
func NewCache(provider Provider, rdb *redis.Client, ttl time.Duration, log logger.Logger) *Cache {
	return &Cache{
		provider: provider,
		redis:    rdb,
		ttl:      ttl,
		logger:   log.WithFields(map[string]interface{}{"component": "embedding-cache"}),
	}
}

// Embed serves the vector from Redis when present, otherwise delegates to the
// wrapped provider and stores the result. Cache failures degrade to direct
// provider calls; they never fail the embedding request.
func (c *Cache) Embed(ctx context.Context, text string) ([]float32, error) {
	key := cacheKey(text)

	if val, err := c.redis.Get(ctx, key).Result(); err == nil {
		var vec []float32
		if err := json.Unmarshal([]byte(val), &vec); err == nil && len(vec) > 0 {
			metrics.EmbeddingCacheHits.Inc()
			return vec, nil
		}
	}
	metrics.EmbeddingCacheMisses.Inc()

	vec, err := c.provider.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(vec); err == nil {
		if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.logger.Debug("failed to cache embedding", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
	}
	return vec, nil
}

func cacheKey(text string) string {
	sum := sha1.Sum([]byte(text))
	return "emb:" + hex.EncodeToString(sum[:])
}
