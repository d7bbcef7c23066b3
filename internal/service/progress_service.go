package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/codeprep/codeprep-backend/internal/config"
	"github.com/codeprep/codeprep-backend/internal/model"
	"github.com/codeprep/codeprep-backend/internal/repository"
)

// CourseProgressView is the per-course progress payload returned to clients.
type CourseProgressView struct {
	CourseID           string                      `json:"course_id"`
	ProblemCompletions map[string]model.Completion `json:"problem_completions"`
	CompletedProblems  int                         `json:"completed_problems"`
	TotalProblems      int                         `json:"total_problems"`
	OverallProgress    int                         `json:"overall_progress"`
	LastAccessedAt     time.Time                   `json:"last_accessed_at"`
}

// ProgressService derives and maintains per-course progress. The completion
// records are the source of truth; the course_progress summary is a
// denormalized rollup recomputed after every completion write and lazily
// created on first read.
type ProgressService struct {
	progressRepo   *repository.ProgressRepository
	completionRepo *repository.CompletionRepository
	catalog        *CatalogService
	rdb            *redis.Client
	log            zerolog.Logger
}

// NewProgressService creates a new ProgressService.
func NewProgressService(
	progressRepo *repository.ProgressRepository,
	completionRepo *repository.CompletionRepository,
	catalog *CatalogService,
	rdb *redis.Client,
	log zerolog.Logger,
) *ProgressService {
	return &ProgressService{
		progressRepo:   progressRepo,
		completionRepo: completionRepo,
		catalog:        catalog,
		rdb:            rdb,
		log:            log.With().Str("component", "progress_service").Logger(),
	}
}

// ProgressPercent computes round(100 * completed / total), rounding halves
// away from zero. A course with no problems reports 0, never a division
// error.
func ProgressPercent(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// NextProblemID is the resume point shown behind a "Continue" action.
// With no completions it is the first problem. Otherwise it is the highest
// completed ordinal plus one, clamped to the course's last ordinal. Gaps
// below the highest completed ordinal are skipped; the completions map is
// what exposes them.
func NextProblemID(maxCompleted, total int) int {
	if maxCompleted <= 0 {
		return 1
	}
	next := maxCompleted + 1
	if next > total {
		next = total
	}
	return next
}

// GetCourseProgress returns the user's progress for one course, creating a
// zeroed summary on first read. Every call refreshes last_accessed_at: the
// summary doubles as a "last seen" record.
func (s *ProgressService) GetCourseProgress(ctx context.Context, userID uuid.UUID, courseID string) (*CourseProgressView, error) {
	total, err := s.catalog.CountProblems(ctx, courseID)
	if err != nil {
		return nil, err
	}

	summary, err := s.progressRepo.Get(ctx, userID, courseID)
	switch {
	case err == nil:
		if err := s.progressRepo.Touch(ctx, userID, courseID); err != nil {
			return nil, fmt.Errorf("touch summary: %w", err)
		}
	case errors.Is(err, pgx.ErrNoRows):
		fresh := &model.CourseProgress{
			UserID:        userID,
			CourseID:      courseID,
			TotalProblems: total,
			LastProblemID: 1,
		}
		// DO NOTHING on conflict: if a concurrent first read won the race,
		// this is a no-op and the winner's row is what we report.
		if err := s.progressRepo.Create(ctx, fresh); err != nil {
			return nil, fmt.Errorf("create summary: %w", err)
		}
		summary = fresh
		summary.LastAccessedAt = time.Now()
	default:
		return nil, fmt.Errorf("get summary: %w", err)
	}

	completions, err := s.completionRepo.MapByCourse(ctx, userID, courseID)
	if err != nil {
		return nil, fmt.Errorf("map completions: %w", err)
	}

	completed := len(completions)
	return &CourseProgressView{
		CourseID:           courseID,
		ProblemCompletions: completions,
		CompletedProblems:  completed,
		TotalProblems:      total,
		OverallProgress:    ProgressPercent(completed, total),
		LastAccessedAt:     summary.LastAccessedAt,
	}, nil
}

// MarkCompleted upserts the completion fact and synchronously recomputes the
// summary. Calling it twice for the same key leaves exactly one record; the
// second call refreshes completed_at and the stored solution.
func (s *ProgressService) MarkCompleted(ctx context.Context, userID uuid.UUID, courseID string, problemID int, solution *string) error {
	rec := &model.CompletionRecord{
		UserID:    userID,
		CourseID:  courseID,
		ProblemID: problemID,
		Solution:  solution,
	}
	if err := s.completionRepo.Upsert(ctx, rec); err != nil {
		return fmt.Errorf("upsert completion: %w", err)
	}

	// A crash between the upsert above and the recompute below leaves the
	// summary stale until the next read or completion; the completion record
	// itself is already durable.
	return s.recompute(ctx, userID, courseID, problemID)
}

// recompute re-derives the summary counters from the completion records.
func (s *ProgressService) recompute(ctx context.Context, userID uuid.UUID, courseID string, lastProblemID int) error {
	total, err := s.catalog.CountProblems(ctx, courseID)
	if err != nil {
		return err
	}

	completed, err := s.completionRepo.CountByCourse(ctx, userID, courseID)
	if err != nil {
		return fmt.Errorf("count completions: %w", err)
	}

	// Ensure the row exists before updating counters: a user can complete a
	// problem before ever reading the course's progress page.
	if err := s.progressRepo.Create(ctx, &model.CourseProgress{
		UserID:        userID,
		CourseID:      courseID,
		TotalProblems: total,
		LastProblemID: 1,
	}); err != nil {
		return fmt.Errorf("ensure summary: %w", err)
	}

	overall := ProgressPercent(completed, total)
	if err := s.progressRepo.UpdateCounters(ctx, userID, courseID, total, completed, overall, lastProblemID); err != nil {
		return fmt.Errorf("update counters: %w", err)
	}
	return nil
}

// GetBatchProgress resolves progress for many courses in three grouped
// queries (problem counts, completion stats, summaries) — never one query
// per course. Summaries missing for requested courses are enqueued for
// background creation; the response reports zeroed defaults for them and
// is therefore eventually consistent with the stored summary.
func (s *ProgressService) GetBatchProgress(ctx context.Context, userID uuid.UUID, courseIDs []string) (map[string]model.CourseProgressEntry, error) {
	totals, err := s.catalog.CountProblemsBatch(ctx, courseIDs)
	if err != nil {
		return nil, err
	}

	stats, err := s.completionRepo.StatsByCourses(ctx, userID, courseIDs)
	if err != nil {
		return nil, fmt.Errorf("completion stats: %w", err)
	}

	summaries, err := s.progressRepo.ListByCourses(ctx, userID, courseIDs)
	if err != nil {
		return nil, fmt.Errorf("list summaries: %w", err)
	}
	haveSummary := make(map[string]bool, len(summaries))
	for _, sum := range summaries {
		haveSummary[sum.CourseID] = true
	}

	progress := make(map[string]model.CourseProgressEntry, len(courseIDs))
	for _, courseID := range courseIDs {
		total := totals[courseID]
		st := stats[courseID]

		progress[courseID] = model.CourseProgressEntry{
			Percentage:            ProgressPercent(st.Completed, total),
			CompletedProblems:     st.Completed,
			TotalProblems:         total,
			LastAccessedProblemID: NextProblemID(st.MaxProblemID, total),
		}

		op := model.SummaryOpTouch
		if !haveSummary[courseID] {
			op = model.SummaryOpCreate
		}
		s.enqueueSummaryJob(ctx, model.SummaryJob{
			UserID:        userID,
			CourseID:      courseID,
			Op:            op,
			TotalProblems: total,
		})
	}

	return progress, nil
}

// enqueueSummaryJob pushes a background summary write. Failures are logged
// and dropped — the job is an optimization of the next read, not a
// correctness requirement.
func (s *ProgressService) enqueueSummaryJob(ctx context.Context, job model.SummaryJob) {
	payload, err := json.Marshal(job)
	if err != nil {
		s.log.Error().Err(err).Msg("Marshal summary job")
		return
	}
	if err := s.rdb.RPush(ctx, config.WorkerKey.ProgressSummaryQueue, payload).Err(); err != nil {
		s.log.Warn().Err(err).
			Str("course_id", job.CourseID).
			Str("op", job.Op).
			Msg("Enqueue summary job failed")
	}
}
