package service

import (
	"strings"
	"testing"

	"github.com/codeprep/codeprep-backend/internal/model"
)

func TestCleanResponseDeduplicatesCodeBlocks(t *testing.T) {
	raw := "Here is the fix:\n\n```go\nfmt.Println(\"hi\")\n```\n\nAs shown above:\n\n```go\nfmt.Println(\"hi\")\n```\n\nDone."
	got := CleanResponse(raw)

	if count := strings.Count(got, "```go"); count != 1 {
		t.Errorf("expected 1 code block after cleaning, got %d:\n%s", count, got)
	}
	if strings.Contains(got, "\n\n\n") {
		t.Errorf("blank runs not collapsed:\n%q", got)
	}
}

func TestCleanResponseKeepsDistinctBlocks(t *testing.T) {
	raw := "First:\n```go\na := 1\n```\nSecond:\n```go\nb := 2\n```"
	got := CleanResponse(raw)

	if !strings.Contains(got, "a := 1") || !strings.Contains(got, "b := 2") {
		t.Errorf("distinct blocks should survive cleaning:\n%s", got)
	}
}

func TestCleanResponseTrimsWhitespace(t *testing.T) {
	got := CleanResponse("  \n\nhello\n\n  ")
	if got != "hello" {
		t.Errorf("got %q, want %q", got, "hello")
	}
}

func TestBuildHelpPrompt(t *testing.T) {
	req := &model.ProblemHelpRequest{
		ProblemTitle:       "Two Sum",
		ProblemDescription: "Find two numbers that add to target.",
		Language:           "python",
		Question:           "Why is my loop wrong?",
	}
	prompt := buildHelpPrompt(req)

	for _, want := range []string{"Two Sum", "Why is my loop wrong?", "[INST]", "[/INST]"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestBuildHelpPromptDefaults(t *testing.T) {
	prompt := buildHelpPrompt(&model.ProblemHelpRequest{Question: "help"})

	if !strings.Contains(prompt, "Problem Title: Unknown") {
		t.Errorf("missing title default:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Programming Language: Not specified") {
		t.Errorf("missing language default:\n%s", prompt)
	}
}
