package model

import "testing"

func TestProblemRedacted(t *testing.T) {
	solution := "def solve(): pass"
	p := Problem{
		CourseID:  "python-basics",
		ProblemID: 3,
		Title:     "FizzBuzz",
		Solution:  &solution,
		TestCases: []TestCase{
			{Input: "1", ExpectedOutput: "1"},
			{Input: "3", ExpectedOutput: "Fizz", IsHidden: true},
			{Input: "5", ExpectedOutput: "Buzz"},
		},
	}

	r := p.Redacted()

	if r.Solution != nil {
		t.Error("redacted problem must not carry a solution")
	}
	if len(r.TestCases) != 2 {
		t.Fatalf("expected 2 visible test cases, got %d", len(r.TestCases))
	}
	for _, tc := range r.TestCases {
		if tc.IsHidden {
			t.Errorf("hidden test case leaked: %+v", tc)
		}
	}

	// The original must be untouched.
	if p.Solution == nil || len(p.TestCases) != 3 {
		t.Error("Redacted must not mutate the receiver")
	}
}

func TestProblemRedactedEmptyTestCases(t *testing.T) {
	r := Problem{ProblemID: 1}.Redacted()
	if r.TestCases == nil {
		t.Error("redacted test cases should be an empty slice, not nil")
	}
}
