package model

import "time"

// Difficulty classifies a problem.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Example is a worked input/output pair shown alongside a problem statement.
type Example struct {
	Input       string `json:"input"`
	Output      string `json:"output"`
	Explanation string `json:"explanation,omitempty"`
}

// TestCase is a judge case for a problem. Hidden cases are used for grading
// only and must never reach a client.
type TestCase struct {
	Input          string `json:"input"`
	ExpectedOutput string `json:"expected_output"`
	IsHidden       bool   `json:"is_hidden,omitempty"`
}

// Problem represents one catalog entry. Problems are keyed by
// (course_id, problem_id) where problem_id is an ordinal unique only within
// its course. The catalog is seeded offline and read-only at request time.
type Problem struct {
	ID          int64      `json:"-"`
	CourseID    string     `json:"course_id"`
	ProblemID   int        `json:"problem_id"`
	Title       string     `json:"title"`
	Difficulty  Difficulty `json:"difficulty"`
	Description string     `json:"description"`
	Examples    []Example  `json:"examples"`
	Constraints []string   `json:"constraints"`
	TestCases   []TestCase `json:"test_cases"`
	Hints       []string   `json:"hints"`
	Solution    *string    `json:"solution,omitempty"`
	Tags        []string   `json:"tags"`
	CreatedAt   time.Time  `json:"-"`
	UpdatedAt   time.Time  `json:"-"`
}

// Redacted returns a copy of the problem safe to send to clients:
// the solution is stripped and hidden test cases are filtered out.
func (p Problem) Redacted() Problem {
	out := p
	out.Solution = nil
	visible := make([]TestCase, 0, len(p.TestCases))
	for _, tc := range p.TestCases {
		if !tc.IsHidden {
			visible = append(visible, tc)
		}
	}
	out.TestCases = visible
	return out
}

// ProblemSummary is the listing projection of a problem.
type ProblemSummary struct {
	ProblemID  int        `json:"problem_id"`
	Title      string     `json:"title"`
	Difficulty Difficulty `json:"difficulty"`
	Tags       []string   `json:"tags"`
}
