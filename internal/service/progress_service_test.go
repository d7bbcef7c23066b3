package service

import "testing"

func TestProgressPercent(t *testing.T) {
	cases := []struct {
		name      string
		completed int
		total     int
		want      int
	}{
		{"empty course", 0, 0, 0},
		{"negative total", 3, -1, 0},
		{"nothing completed", 0, 30, 0},
		{"rounds down", 7, 30, 23},
		{"rounds half up", 15, 30, 50},
		{"one of three", 1, 3, 33},
		{"two of three", 2, 3, 67},
		{"all completed", 30, 30, 100},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ProgressPercent(tc.completed, tc.total)
			if got != tc.want {
				t.Errorf("ProgressPercent(%d, %d) = %d, want %d", tc.completed, tc.total, got, tc.want)
			}
		})
	}
}

func TestNextProblemID(t *testing.T) {
	cases := []struct {
		name         string
		maxCompleted int
		total        int
		want         int
	}{
		{"no completions", 0, 10, 1},
		{"negative max", -5, 10, 1},
		{"mid course", 3, 10, 4},
		{"last problem completed clamps", 10, 10, 10},
		{"beyond total clamps", 12, 10, 10},
		{"single problem course", 1, 1, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NextProblemID(tc.maxCompleted, tc.total)
			if got != tc.want {
				t.Errorf("NextProblemID(%d, %d) = %d, want %d", tc.maxCompleted, tc.total, got, tc.want)
			}
		})
	}
}
