package repository

import (
	"context"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/codeprep/codeprep-backend/internal/model"
)

// CourseCompletionStats aggregates a user's completions within one course.
type CourseCompletionStats struct {
	Completed    int
	MaxProblemID int
}

// CompletionRepository handles completion record data access.
type CompletionRepository struct {
	pool *pgxpool.Pool
}

// NewCompletionRepository creates a new CompletionRepository.
func NewCompletionRepository(pool *pgxpool.Pool) *CompletionRepository {
	return &CompletionRepository{pool: pool}
}

// Upsert records a completion. The ON CONFLICT clause serializes concurrent
// submissions for the same key: a re-submission refreshes completed_at and
// the stored solution instead of creating a second row.
func (r *CompletionRepository) Upsert(ctx context.Context, rec *model.CompletionRecord) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO problem_completions (user_id, course_id, problem_id, solution, completed_at)
		 VALUES ($1, $2, $3, $4, NOW())
		 ON CONFLICT (user_id, course_id, problem_id) DO UPDATE
		 SET solution = EXCLUDED.solution, completed_at = NOW()
		 RETURNING completed_at`,
		rec.UserID, rec.CourseID, rec.ProblemID, rec.Solution,
	).Scan(&rec.CompletedAt)
}

// CountByCourse returns how many problems the user has completed in a course.
func (r *CompletionRepository) CountByCourse(ctx context.Context, userID uuid.UUID, courseID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM problem_completions
		 WHERE user_id = $1 AND course_id = $2`, userID, courseID,
	).Scan(&count)
	return count, err
}

// MapByCourse returns the user's completions for a course keyed by problem
// ordinal, the shape the progress endpoint exposes.
func (r *CompletionRepository) MapByCourse(ctx context.Context, userID uuid.UUID, courseID string) (map[string]model.Completion, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT problem_id, solution, completed_at
		 FROM problem_completions
		 WHERE user_id = $1 AND course_id = $2`, userID, courseID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	completions := make(map[string]model.Completion)
	for rows.Next() {
		var problemID int
		var c model.Completion
		if err := rows.Scan(&problemID, &c.Solution, &c.CompletedAt); err != nil {
			return nil, err
		}
		completions[strconv.Itoa(problemID)] = c
	}
	return completions, rows.Err()
}

// StatsByCourses returns per-course completion counts and the highest
// completed ordinal for all requested courses in one grouped query.
// Courses with no completions are absent from the map.
func (r *CompletionRepository) StatsByCourses(ctx context.Context, userID uuid.UUID, courseIDs []string) (map[string]CourseCompletionStats, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT course_id, COUNT(*), MAX(problem_id)
		 FROM problem_completions
		 WHERE user_id = $1 AND course_id = ANY($2)
		 GROUP BY course_id`, userID, courseIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := make(map[string]CourseCompletionStats, len(courseIDs))
	for rows.Next() {
		var courseID string
		var s CourseCompletionStats
		if err := rows.Scan(&courseID, &s.Completed, &s.MaxProblemID); err != nil {
			return nil, err
		}
		stats[courseID] = s
	}
	return stats, rows.Err()
}
