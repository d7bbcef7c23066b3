package config

import (
	"testing"
)

func TestParseOrigins(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{"empty means allow all", "", nil},
		{"single", "https://app.example.com", []string{"https://app.example.com"}},
		{"multiple with spaces", "https://a.com, https://b.com ,https://c.com", []string{"https://a.com", "https://b.com", "https://c.com"}},
		{"trailing comma", "https://a.com,", []string{"https://a.com"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := parseOrigins(tc.in)
			if len(got) != len(tc.want) {
				t.Fatalf("parseOrigins(%q) = %v, want %v", tc.in, got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("parseOrigins(%q)[%d] = %q, want %q", tc.in, i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("TEST_INT_VALID", "42")
	t.Setenv("TEST_INT_INVALID", "not-a-number")

	if got := getEnvInt("TEST_INT_VALID", 7); got != 42 {
		t.Errorf("valid value: got %d, want 42", got)
	}
	if got := getEnvInt("TEST_INT_INVALID", 7); got != 7 {
		t.Errorf("invalid value falls back: got %d, want 7", got)
	}
	if got := getEnvInt("TEST_INT_UNSET", 7); got != 7 {
		t.Errorf("unset value falls back: got %d, want 7", got)
	}
}

func TestCacheKeys(t *testing.T) {
	if got := CacheKey.UserSessionKey("abc-123"); got != "login:abc-123" {
		t.Errorf("UserSessionKey = %q", got)
	}
	if got := CacheKey.CourseProblemCountKey("python-basics"); got != "course:python-basics:problem_count" {
		t.Errorf("CourseProblemCountKey = %q", got)
	}
}
