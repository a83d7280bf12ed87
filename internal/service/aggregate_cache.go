package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/courseval/courseval-backend/internal/config"
	"github.com/courseval/courseval-backend/internal/rating"
)

// aggregateTTL bounds staleness if an incremental update is ever lost; the
// reconciler worker repairs drift well before this expires.
const aggregateTTL = 24 * time.Hour

// aggregateCache keeps per-course rating aggregates in Redis so list and
// detail reads skip the evaluations scan. Values are updated incrementally
// on evaluation create/delete and rebuilt by the reconciler worker.
type aggregateCache struct {
	rdb *redis.Client
}

// Get returns the cached aggregate, or ok=false on miss or decode failure.
func (c *aggregateCache) Get(ctx context.Context, courseID string) (rating.Aggregate, bool) {
	data, err := c.rdb.Get(ctx, config.CacheKey.CourseAggregateKey(courseID)).Bytes()
	if err != nil {
		return rating.Aggregate{}, false
	}
	var agg rating.Aggregate
	if err := json.Unmarshal(data, &agg); err != nil {
		return rating.Aggregate{}, false
	}
	return agg, true
}

// Set stores the aggregate.
func (c *aggregateCache) Set(ctx context.Context, courseID string, agg rating.Aggregate) error {
	data, err := json.Marshal(agg)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, config.CacheKey.CourseAggregateKey(courseID), data, aggregateTTL).Err()
}

// Insert applies an incremental insert to the cached aggregate. A cache
// miss is left as a miss; the next full read backfills it.
func (c *aggregateCache) Insert(ctx context.Context, courseID string, newRating int) error {
	agg, ok := c.Get(ctx, courseID)
	if !ok {
		return nil
	}
	return c.Set(ctx, courseID, rating.ApplyInsert(agg, newRating))
}

// Remove applies an incremental removal to the cached aggregate.
func (c *aggregateCache) Remove(ctx context.Context, courseID string, removedRating int) error {
	agg, ok := c.Get(ctx, courseID)
	if !ok {
		return nil
	}
	return c.Set(ctx, courseID, rating.ApplyRemove(agg, removedRating))
}

// Invalidate drops the cached aggregate.
func (c *aggregateCache) Invalidate(ctx context.Context, courseID string) error {
	err := c.rdb.Del(ctx, config.CacheKey.CourseAggregateKey(courseID)).Err()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	return err
}
