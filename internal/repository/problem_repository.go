package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/codeprep/codeprep-backend/internal/model"
)

// ProblemRepository handles read access to the problem catalog.
// The catalog is seeded offline; request-time access is read-only.
type ProblemRepository struct {
	pool *pgxpool.Pool
}

// NewProblemRepository creates a new ProblemRepository.
func NewProblemRepository(pool *pgxpool.Pool) *ProblemRepository {
	return &ProblemRepository{pool: pool}
}

// ListByCourse retrieves the listing projection of a course's problems,
// ordered ascending by ordinal. An unknown course yields an empty slice,
// not an error.
func (r *ProblemRepository) ListByCourse(ctx context.Context, courseID string) ([]model.ProblemSummary, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT problem_id, title, difficulty, tags
		 FROM problems WHERE course_id = $1
		 ORDER BY problem_id`, courseID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var problems []model.ProblemSummary
	for rows.Next() {
		var p model.ProblemSummary
		if err := rows.Scan(&p.ProblemID, &p.Title, &p.Difficulty, &p.Tags); err != nil {
			return nil, err
		}
		problems = append(problems, p)
	}
	return problems, rows.Err()
}

// GetByCourseAndOrdinal retrieves one full problem. Returns pgx.ErrNoRows
// when the (course, ordinal) pair does not exist.
func (r *ProblemRepository) GetByCourseAndOrdinal(ctx context.Context, courseID string, problemID int) (*model.Problem, error) {
	p := &model.Problem{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, course_id, problem_id, title, difficulty, description,
		        examples, constraints, test_cases, hints, solution, tags
		 FROM problems
		 WHERE course_id = $1 AND problem_id = $2`, courseID, problemID,
	).Scan(&p.ID, &p.CourseID, &p.ProblemID, &p.Title, &p.Difficulty, &p.Description,
		&p.Examples, &p.Constraints, &p.TestCases, &p.Hints, &p.Solution, &p.Tags)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// CountByCourse returns the number of problems in a course.
func (r *ProblemRepository) CountByCourse(ctx context.Context, courseID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM problems WHERE course_id = $1`, courseID,
	).Scan(&count)
	return count, err
}

// CountByCourses returns problem counts for all requested courses in one
// grouped query. Courses with no problems are absent from the map.
func (r *ProblemRepository) CountByCourses(ctx context.Context, courseIDs []string) (map[string]int, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT course_id, COUNT(*)
		 FROM problems WHERE course_id = ANY($1)
		 GROUP BY course_id`, courseIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int, len(courseIDs))
	for rows.Next() {
		var courseID string
		var count int
		if err := rows.Scan(&courseID, &count); err != nil {
			return nil, err
		}
		counts[courseID] = count
	}
	return counts, rows.Err()
}

// DistinctCourseIDs returns every course ID present in the catalog.
// Used for not-found diagnostics on problem lookups.
func (r *ProblemRepository) DistinctCourseIDs(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT DISTINCT course_id FROM problems ORDER BY course_id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Upsert inserts or replaces one catalog entry. Only the offline seeder
// calls this; re-running the seeder refreshes existing problems in place.
func (r *ProblemRepository) Upsert(ctx context.Context, p *model.Problem) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO problems (course_id, problem_id, title, difficulty, description,
		                       examples, constraints, test_cases, hints, solution, tags)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 ON CONFLICT (course_id, problem_id) DO UPDATE
		 SET title = EXCLUDED.title, difficulty = EXCLUDED.difficulty,
		     description = EXCLUDED.description, examples = EXCLUDED.examples,
		     constraints = EXCLUDED.constraints, test_cases = EXCLUDED.test_cases,
		     hints = EXCLUDED.hints, solution = EXCLUDED.solution,
		     tags = EXCLUDED.tags, updated_at = NOW()
		 RETURNING id`,
		p.CourseID, p.ProblemID, p.Title, p.Difficulty, p.Description,
		p.Examples, p.Constraints, p.TestCases, p.Hints, p.Solution, p.Tags,
	).Scan(&p.ID)
}
