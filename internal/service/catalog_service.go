package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/codeprep/codeprep-backend/internal/config"
	"github.com/codeprep/codeprep-backend/internal/model"
	"github.com/codeprep/codeprep-backend/internal/repository"
)

// ErrProblemNotFound signals a missing (course, ordinal) pair.
var ErrProblemNotFound = errors.New("problem not found")

// courseCountTTL bounds staleness of cached per-course problem counts.
// The catalog only changes when the seeder runs, so a short TTL is plenty.
const courseCountTTL = 10 * time.Minute

// CatalogService serves read-only problem catalog lookups. Client-facing
// reads always go through redaction; the unredacted problem never leaves
// this package except to the seeder and tests.
type CatalogService struct {
	problemRepo *repository.ProblemRepository
	rdb         *redis.Client
	log         zerolog.Logger
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(problemRepo *repository.ProblemRepository, rdb *redis.Client, log zerolog.Logger) *CatalogService {
	return &CatalogService{
		problemRepo: problemRepo,
		rdb:         rdb,
		log:         log.With().Str("component", "catalog_service").Logger(),
	}
}

// ListProblems returns a course's listing, ordered by ordinal. An unknown
// course yields an empty list: course identifiers are permissive lookups,
// not validated input.
func (s *CatalogService) ListProblems(ctx context.Context, courseID string) ([]model.ProblemSummary, error) {
	problems, err := s.problemRepo.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("list problems: %w", err)
	}
	return problems, nil
}

// GetProblem returns one problem with the solution stripped and hidden test
// cases removed.
func (s *CatalogService) GetProblem(ctx context.Context, courseID string, problemID int) (*model.Problem, error) {
	p, err := s.problemRepo.GetByCourseAndOrdinal(ctx, courseID, problemID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProblemNotFound
		}
		return nil, fmt.Errorf("get problem: %w", err)
	}
	redacted := p.Redacted()
	return &redacted, nil
}

// CountProblems returns a course's total problem count, cached in Redis.
func (s *CatalogService) CountProblems(ctx context.Context, courseID string) (int, error) {
	key := config.CacheKey.CourseProblemCountKey(courseID)

	cached, err := s.rdb.Get(ctx, key).Result()
	if err == nil {
		if n, convErr := strconv.Atoi(cached); convErr == nil {
			return n, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		// Cache trouble is not fatal; fall through to the database.
		s.log.Warn().Err(err).Str("course_id", courseID).Msg("Count cache read failed")
	}

	count, err := s.problemRepo.CountByCourse(ctx, courseID)
	if err != nil {
		return 0, fmt.Errorf("count problems: %w", err)
	}

	if err := s.rdb.Set(ctx, key, strconv.Itoa(count), courseCountTTL).Err(); err != nil {
		s.log.Warn().Err(err).Str("course_id", courseID).Msg("Count cache write failed")
	}

	return count, nil
}

// CountProblemsBatch resolves totals for all requested courses with a single
// grouped query. Courses absent from the catalog map to 0.
func (s *CatalogService) CountProblemsBatch(ctx context.Context, courseIDs []string) (map[string]int, error) {
	counts, err := s.problemRepo.CountByCourses(ctx, courseIDs)
	if err != nil {
		return nil, fmt.Errorf("count problems batch: %w", err)
	}
	for _, id := range courseIDs {
		if _, ok := counts[id]; !ok {
			counts[id] = 0
		}
	}
	return counts, nil
}

// KnownCourseIDs returns every course ID in the catalog, cached in Redis.
// Attached to 404 responses as diagnostic context.
func (s *CatalogService) KnownCourseIDs(ctx context.Context) ([]string, error) {
	key := config.CacheKey.CourseIDsKey()

	cached, err := s.rdb.Get(ctx, key).Result()
	if err == nil && cached != "" {
		return strings.Split(cached, ","), nil
	}

	ids, err := s.problemRepo.DistinctCourseIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("distinct course ids: %w", err)
	}

	if len(ids) > 0 {
		if err := s.rdb.Set(ctx, key, strings.Join(ids, ","), courseCountTTL).Err(); err != nil {
			s.log.Warn().Err(err).Msg("Course ID cache write failed")
		}
	}

	return ids, nil
}
