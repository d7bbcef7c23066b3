package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/codeprep/codeprep-backend/internal/config"
	"github.com/codeprep/codeprep-backend/internal/model"
)

// SummaryWorker consumes progress_summary_queue and applies summary
// creates/touches to PostgreSQL. The batch progress endpoint enqueues
// instead of writing inline so its response never blocks on summary rows.
type SummaryWorker struct {
	pool *pgxpool.Pool
	rdb  *redis.Client
	log  zerolog.Logger
}

// NewSummaryWorker creates a new SummaryWorker.
func NewSummaryWorker(pool *pgxpool.Pool, rdb *redis.Client, log zerolog.Logger) *SummaryWorker {
	return &SummaryWorker{
		pool: pool,
		rdb:  rdb,
		log:  log.With().Str("component", "summary_worker").Logger(),
	}
}

// Start begins the infinite worker loop. Call in a goroutine.
func (w *SummaryWorker) Start(ctx context.Context) {
	w.log.Info().Msg("Worker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopping...")
			// Drain remaining items before exit.
			w.drain(context.Background())
			w.log.Info().Msg("Worker stopped")
			return
		default:
			w.processNext(ctx)
		}
	}
}

func (w *SummaryWorker) processNext(ctx context.Context) {
	// BLPop blocks until an item is available or timeout (1 second).
	result, err := w.rdb.BLPop(ctx, time.Second, config.WorkerKey.ProgressSummaryQueue).Result()
	if err != nil {
		if err != redis.Nil && ctx.Err() == nil {
			w.log.Error().Err(err).Msg("BLPop error")
		}
		return
	}

	if len(result) < 2 {
		return
	}

	var job model.SummaryJob
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		w.log.Error().Err(err).Msg("Unmarshal error")
		return
	}

	if err := w.apply(ctx, &job); err != nil {
		w.log.Error().Err(err).
			Str("user_id", job.UserID.String()).
			Str("course_id", job.CourseID).
			Str("op", job.Op).
			Msg("Apply error, retrying in 5s")
		// Push back to queue for retry.
		w.rdb.RPush(ctx, config.WorkerKey.ProgressSummaryQueue, result[1])
		time.Sleep(5 * time.Second)
	}
}

func (w *SummaryWorker) apply(ctx context.Context, job *model.SummaryJob) error {
	switch job.Op {
	case model.SummaryOpCreate:
		// DO NOTHING on conflict: another create or an inline recompute may
		// have landed first, and that row is at least as fresh.
		_, err := w.pool.Exec(ctx,
			`INSERT INTO course_progress
			   (user_id, course_id, total_problems, completed_problems,
			    overall_progress, last_problem_id, last_accessed_at)
			 VALUES ($1, $2, $3, 0, 0, 1, NOW())
			 ON CONFLICT (user_id, course_id) DO NOTHING`,
			job.UserID, job.CourseID, job.TotalProblems,
		)
		return err
	case model.SummaryOpTouch:
		_, err := w.pool.Exec(ctx,
			`UPDATE course_progress SET last_accessed_at = NOW()
			 WHERE user_id = $1 AND course_id = $2`,
			job.UserID, job.CourseID,
		)
		return err
	default:
		w.log.Warn().Str("op", job.Op).Msg("Unknown summary op, dropping")
		return nil
	}
}

// drain processes all remaining items in the queue before shutdown.
func (w *SummaryWorker) drain(ctx context.Context) {
	drained := 0
	for {
		result, err := w.rdb.LPop(ctx, config.WorkerKey.ProgressSummaryQueue).Result()
		if err != nil {
			break
		}

		var job model.SummaryJob
		if err := json.Unmarshal([]byte(result), &job); err != nil {
			w.log.Error().Err(err).Msg("Drain unmarshal error")
			continue
		}

		if err := w.apply(ctx, &job); err != nil {
			w.log.Error().Err(err).Msg("Drain apply error")
			w.rdb.RPush(ctx, config.WorkerKey.ProgressSummaryQueue, result)
			break
		}
		drained++
	}

	if drained > 0 {
		w.log.Info().Int("count", drained).Msg("Drained remaining items")
	}
}
