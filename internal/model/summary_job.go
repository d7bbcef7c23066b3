package model

import "github.com/google/uuid"

// Summary job operations consumed by the progress summary worker.
const (
	SummaryOpCreate = "create"
	SummaryOpTouch  = "touch"
)

// SummaryJob is a queued background write against a course progress summary.
// The batch endpoint enqueues these instead of blocking its response on
// summary persistence; the worker applies them eventually.
type SummaryJob struct {
	UserID        uuid.UUID `json:"user_id"`
	CourseID      string    `json:"course_id"`
	Op            string    `json:"op"`
	TotalProblems int       `json:"total_problems"`
}
