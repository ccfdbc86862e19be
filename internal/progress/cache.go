// Package progress caches the polling read model and link statistics.
//
// The scans table stays authoritative; a cache miss or a Redis failure
// falls back to the database.
package progress

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	infralogger "github.com/jonesrussell/north-cloud/link-checker/infrastructure/logger"
	"github.com/jonesrussell/north-cloud/link-checker/internal/domain"
)

const (
	ProgressKey = "link-checker:progress"
	StatsKey    = "link-checker:stats"

	ProgressTTL = 30 * time.Second
	StatsTTL    = 5 * time.Minute
)

// Cache stores short-lived snapshots. Getters return nil on a miss.
type Cache interface {
	GetProgress(ctx context.Context) *domain.Progress
	SetProgress(ctx context.Context, p domain.Progress)
	ClearProgress(ctx context.Context)

	GetStats(ctx context.Context) *domain.LinkStats
	SetStats(ctx context.Context, s domain.LinkStats)
	ClearStats(ctx context.Context)
}

// RedisCache implements Cache with JSON values under fixed keys.
type RedisCache struct {
	client *redis.Client
	logger infralogger.Logger
}

// NewRedisCache creates a cache on client.
func NewRedisCache(client *redis.Client, log infralogger.Logger) *RedisCache {
	return &RedisCache{client: client, logger: log}
}

func (c *RedisCache) GetProgress(ctx context.Context) *domain.Progress {
	var p domain.Progress
	if !c.get(ctx, ProgressKey, &p) {
		return nil
	}
	return &p
}

func (c *RedisCache) SetProgress(ctx context.Context, p domain.Progress) {
	c.set(ctx, ProgressKey, p, ProgressTTL)
}

func (c *RedisCache) ClearProgress(ctx context.Context) {
	c.del(ctx, ProgressKey)
}

func (c *RedisCache) GetStats(ctx context.Context) *domain.LinkStats {
	var s domain.LinkStats
	if !c.get(ctx, StatsKey, &s) {
		return nil
	}
	return &s
}

func (c *RedisCache) SetStats(ctx context.Context, s domain.LinkStats) {
	c.set(ctx, StatsKey, s, StatsTTL)
}

func (c *RedisCache) ClearStats(ctx context.Context) {
	c.del(ctx, StatsKey)
}

func (c *RedisCache) get(ctx context.Context, key string, dest any) bool {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("Cache read failed", infralogger.String("key", key), infralogger.Error(err))
		}
		return false
	}

	if err = json.Unmarshal(raw, dest); err != nil {
		c.logger.Warn("Discarding unreadable cache entry", infralogger.String("key", key), infralogger.Error(err))
		c.del(ctx, key)
		return false
	}
	return true
}

func (c *RedisCache) set(ctx context.Context, key string, value any, ttl time.Duration) {
	raw, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("Cache encode failed", infralogger.String("key", key), infralogger.Error(err))
		return
	}

	if err = c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		c.logger.Warn("Cache write failed", infralogger.String("key", key), infralogger.Error(err))
	}
}

func (c *RedisCache) del(ctx context.Context, key string) {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.logger.Warn("Cache delete failed", infralogger.String("key", key), infralogger.Error(err))
	}
}

// NopCache is used when Redis is disabled.
type NopCache struct{}

func (NopCache) GetProgress(context.Context) *domain.Progress { return nil }
func (NopCache) SetProgress(context.Context, domain.Progress) {}
func (NopCache) ClearProgress(context.Context)                {}
func (NopCache) GetStats(context.Context) *domain.LinkStats   { return nil }
func (NopCache) SetStats(context.Context, domain.LinkStats)   {}
func (NopCache) ClearStats(context.Context)                   {}
