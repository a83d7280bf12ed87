package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/courseval/courseval-backend/internal/config"
	"github.com/courseval/courseval-backend/internal/rating"
)

// aggregateTTL matches the service-side cache TTL so a reconciled entry
// lives as long as an incrementally maintained one.
const aggregateTTL = 24 * time.Hour

// AggregateWorker periodically recomputes per-course rating aggregates from
// PostgreSQL and rewrites the Redis cache, repairing any drift the
// incremental updates accumulated (lost writes, racing deletes).
type AggregateWorker struct {
	pool     *pgxpool.Pool
	rdb      *redis.Client
	interval time.Duration
	log      zerolog.Logger
}

// NewAggregateWorker creates a new AggregateWorker.
func NewAggregateWorker(pool *pgxpool.Pool, rdb *redis.Client, interval time.Duration, log zerolog.Logger) *AggregateWorker {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &AggregateWorker{
		pool:     pool,
		rdb:      rdb,
		interval: interval,
		log:      log.With().Str("component", "aggregate_worker").Logger(),
	}
}

// Start begins the reconcile loop. Call in a goroutine.
func (w *AggregateWorker) Start(ctx context.Context) {
	w.log.Info().Dur("interval", w.interval).Msg("Worker started")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// Run once at startup so a cold cache warms without waiting a full tick.
	w.reconcile(ctx)

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopped")
			return
		case <-ticker.C:
			w.reconcile(ctx)
		}
	}
}

func (w *AggregateWorker) reconcile(ctx context.Context) {
	rows, err := w.pool.Query(ctx,
		`SELECT c.id, COUNT(e.id), COALESCE(AVG(e.rating), 0)
		 FROM courses c
		 LEFT JOIN evaluations e ON e.course_id = c.id
		 GROUP BY c.id`,
	)
	if err != nil {
		w.log.Error().Err(err).Msg("Aggregate query error")
		return
	}
	defer rows.Close()

	repaired := 0
	for rows.Next() {
		var (
			courseID string
			count    int
			average  float64
		)
		if err := rows.Scan(&courseID, &count, &average); err != nil {
			w.log.Error().Err(err).Msg("Aggregate scan error")
			return
		}

		agg := rating.Aggregate{Count: count, Average: average, Rated: count > 0}
		if !agg.Rated {
			agg = rating.Aggregate{}
		}

		if w.writeIfChanged(ctx, courseID, agg) {
			repaired++
		}
	}
	if err := rows.Err(); err != nil {
		w.log.Error().Err(err).Msg("Aggregate rows error")
		return
	}

	if repaired > 0 {
		w.log.Info().Int("count", repaired).Msg("Repaired stale aggregates")
	}
}

// writeIfChanged stores the recomputed aggregate and reports whether the
// cached value was absent or differed from it.
func (w *AggregateWorker) writeIfChanged(ctx context.Context, courseID string, agg rating.Aggregate) bool {
	key := config.CacheKey.CourseAggregateKey(courseID)

	data, err := json.Marshal(agg)
	if err != nil {
		w.log.Error().Err(err).Str("course_id", courseID).Msg("Marshal error")
		return false
	}

	changed := true
	if cached, err := w.rdb.Get(ctx, key).Bytes(); err == nil {
		var prev rating.Aggregate
		if json.Unmarshal(cached, &prev) == nil && prev == agg {
			changed = false
		}
	}

	if err := w.rdb.Set(ctx, key, data, aggregateTTL).Err(); err != nil {
		w.log.Error().Err(err).Str("course_id", courseID).Msg("Cache write error")
		return false
	}
	return changed
}
