package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/formease/formease-server/internal/llm"
)

// ExtractionCache remembers validated extraction results by document content
// hash, so re-uploading the same file never pays for a second backend call.
type ExtractionCache interface {
	Get(ctx context.Context, key string) (llm.DetailFields, bool)
	Set(ctx context.Context, key string, fields llm.DetailFields)
}

const keyPrefix = "formease:extract:"

type redisCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedisCache wraps a redis client as an ExtractionCache. Cache errors are
// logged and treated as misses; the pipeline must work with redis down.
func NewRedisCache(rdb *redis.Client, ttl time.Duration, logger *slog.Logger) ExtractionCache {
	if logger == nil {
		logger = slog.Default()
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &redisCache{rdb: rdb, ttl: ttl, logger: logger}
}

func (c *redisCache) Get(ctx context.Context, key string) (llm.DetailFields, bool) {
	raw, err := c.rdb.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("cache.get_failed", "key", key, "error", err)
		}
		return llm.DetailFields{}, false
	}
	var fields llm.DetailFields
	if err := json.Unmarshal(raw, &fields); err != nil {
		c.logger.Warn("cache.decode_failed", "key", key, "error", err)
		return llm.DetailFields{}, false
	}
	return fields, true
}

func (c *redisCache) Set(ctx context.Context, key string, fields llm.DetailFields) {
	raw, err := json.Marshal(fields)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, keyPrefix+key, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("cache.set_failed", "key", key, "error", err)
	}
}

type noopCache struct{}

// NewNoopCache returns a cache that never hits, for deployments without redis.
func NewNoopCache() ExtractionCache { return noopCache{} }

func (noopCache) Get(context.Context, string) (llm.DetailFields, bool) {
	return llm.DetailFields{}, false
}

func (noopCache) Set(context.Context, string, llm.DetailFields) {}
