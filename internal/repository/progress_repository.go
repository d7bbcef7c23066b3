package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/codeprep/codeprep-backend/internal/model"
)

// ProgressRepository handles the denormalized per-course progress summaries.
type ProgressRepository struct {
	pool *pgxpool.Pool
}

// NewProgressRepository creates a new ProgressRepository.
func NewProgressRepository(pool *pgxpool.Pool) *ProgressRepository {
	return &ProgressRepository{pool: pool}
}

// Get retrieves one summary. Returns pgx.ErrNoRows when absent.
func (r *ProgressRepository) Get(ctx context.Context, userID uuid.UUID, courseID string) (*model.CourseProgress, error) {
	p := &model.CourseProgress{}
	err := r.pool.QueryRow(ctx,
		`SELECT user_id, course_id, total_problems, completed_problems,
		        overall_progress, last_problem_id, last_accessed_at
		 FROM course_progress
		 WHERE user_id = $1 AND course_id = $2`, userID, courseID,
	).Scan(&p.UserID, &p.CourseID, &p.TotalProblems, &p.CompletedProblems,
		&p.OverallProgress, &p.LastProblemID, &p.LastAccessedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Create inserts a summary. DO NOTHING on conflict so two concurrent lazy
// creates for the same key cannot duplicate; the loser simply finds the
// winner's row on its next read.
func (r *ProgressRepository) Create(ctx context.Context, p *model.CourseProgress) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO course_progress
		   (user_id, course_id, total_problems, completed_problems,
		    overall_progress, last_problem_id, last_accessed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, NOW())
		 ON CONFLICT (user_id, course_id) DO NOTHING`,
		p.UserID, p.CourseID, p.TotalProblems, p.CompletedProblems,
		p.OverallProgress, p.LastProblemID,
	)
	return err
}

// Touch refreshes last_accessed_at. Every summary read does this, even when
// no completion changed; it feeds the "last seen" display.
func (r *ProgressRepository) Touch(ctx context.Context, userID uuid.UUID, courseID string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE course_progress SET last_accessed_at = NOW()
		 WHERE user_id = $1 AND course_id = $2`, userID, courseID,
	)
	return err
}

// UpdateCounters writes a freshly derived rollup. Concurrent recomputes for
// the same key interleave last-write-wins; the drift window closes on the
// next recompute.
func (r *ProgressRepository) UpdateCounters(ctx context.Context, userID uuid.UUID, courseID string, total, completed, overall int, lastProblemID int) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE course_progress
		 SET total_problems = $3, completed_problems = $4,
		     overall_progress = $5, last_problem_id = $6,
		     last_accessed_at = NOW()
		 WHERE user_id = $1 AND course_id = $2`,
		userID, courseID, total, completed, overall, lastProblemID,
	)
	return err
}

// ListByCourses retrieves the user's summaries for all requested courses
// in one query.
func (r *ProgressRepository) ListByCourses(ctx context.Context, userID uuid.UUID, courseIDs []string) ([]model.CourseProgress, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT user_id, course_id, total_problems, completed_problems,
		        overall_progress, last_problem_id, last_accessed_at
		 FROM course_progress
		 WHERE user_id = $1 AND course_id = ANY($2)`, userID, courseIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []model.CourseProgress
	for rows.Next() {
		var p model.CourseProgress
		if err := rows.Scan(&p.UserID, &p.CourseID, &p.TotalProblems, &p.CompletedProblems,
			&p.OverallProgress, &p.LastProblemID, &p.LastAccessedAt); err != nil {
			return nil, err
		}
		summaries = append(summaries, p)
	}
	return summaries, rows.Err()
}
