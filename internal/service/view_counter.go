package service

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ViewCounter tracks post view counts in Redis. Counting is best effort;
// a counter failure must never fail a public read.
type ViewCounter struct {
	client *redis.Client
	logger *zap.Logger
}

// NewViewCounter builds a counter. A nil client disables counting.
func NewViewCounter(client *redis.Client, logger *zap.Logger) *ViewCounter {
	return &ViewCounter{client: client, logger: logger}
}

// Hit increments and returns the view count for a post slug.
func (v *ViewCounter) Hit(ctx context.Context, slug string) int64 {
	if v == nil || v.client == nil {
		return 0
	}
	count, err := v.client.Incr(ctx, viewKey(slug)).Result()
	if err != nil {
		v.logger.Warn("view counter unavailable", zap.String("slug", slug), zap.Error(err))
		return 0
	}
	return count
}

// Count returns the current view count without incrementing.
func (v *ViewCounter) Count(ctx context.Context, slug string) int64 {
	if v == nil || v.client == nil {
		return 0
	}
	count, err := v.client.Get(ctx, viewKey(slug)).Int64()
	if err != nil && err != redis.Nil {
		v.logger.Warn("view counter unavailable", zap.String("slug", slug), zap.Error(err))
	}
	return count
}

func viewKey(slug string) string {
	return fmt.Sprintf("post:views:%s", slug)
}
