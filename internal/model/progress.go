package model

import (
	"time"

	"github.com/google/uuid"
)

// CompletionRecord is the durable fact that a user solved a problem.
// At most one record exists per (user_id, course_id, problem_id); writes
// are atomic upserts so duplicate submissions refresh rather than duplicate.
type CompletionRecord struct {
	UserID      uuid.UUID `json:"user_id"`
	CourseID    string    `json:"course_id"`
	ProblemID   int       `json:"problem_id"`
	Solution    *string   `json:"solution,omitempty"`
	CompletedAt time.Time `json:"completed_at"`
}

// Completion is the per-problem entry of the completions map returned by
// the course progress endpoint, keyed by problem ordinal.
type Completion struct {
	CompletedAt time.Time `json:"completed_at"`
	Solution    *string   `json:"solution,omitempty"`
}

// CourseProgress is the denormalized per-user per-course rollup. It is
// recomputed after every completion upsert and lazily created on first read;
// between those points it may lag the completion records.
type CourseProgress struct {
	UserID            uuid.UUID `json:"user_id"`
	CourseID          string    `json:"course_id"`
	TotalProblems     int       `json:"total_problems"`
	CompletedProblems int       `json:"completed_problems"`
	OverallProgress   int       `json:"overall_progress"`
	LastProblemID     int       `json:"last_problem_id"`
	LastAccessedAt    time.Time `json:"last_accessed_at"`
}

// CourseProgressEntry is one course's slice of the batch progress response.
type CourseProgressEntry struct {
	Percentage            int `json:"percentage"`
	CompletedProblems     int `json:"completed_problems"`
	TotalProblems         int `json:"total_problems"`
	LastAccessedProblemID int `json:"last_accessed_problem_id"`
}

// MarkCompletedRequest is the payload for recording a solved problem.
type MarkCompletedRequest struct {
	Solution *string `json:"solution" binding:"omitempty,max=65536"`
}

// BatchProgressRequest is the payload for the multi-course progress endpoint.
type BatchProgressRequest struct {
	CourseIDs []string `json:"course_ids" binding:"required,min=1,max=100,dive,required,max=100"`
}
