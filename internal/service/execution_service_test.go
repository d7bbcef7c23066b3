package service

import "testing"

func TestResolveLanguage(t *testing.T) {
	cases := []struct {
		in           string
		wantLanguage string
	}{
		{"python", "python3"},
		{"Python", "python3"},
		{"javascript", "nodejs"},
		{"go", "go"},
		{"cpp", "cpp"},
		{"brainfuck", "brainfuck"}, // unknown passes through
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			lc := resolveLanguage(tc.in)
			if lc.Language != tc.wantLanguage {
				t.Errorf("resolveLanguage(%q).Language = %q, want %q", tc.in, lc.Language, tc.wantLanguage)
			}
			if lc.VersionIndex != "0" {
				t.Errorf("resolveLanguage(%q).VersionIndex = %q, want %q", tc.in, lc.VersionIndex, "0")
			}
		})
	}
}
