package ai

import (
	"fmt"
	"strings"
	"testing"
)

func TestBuildTaskPromptDeterministic(t *testing.T) {
	t.Parallel()

	task := TaskRef{Title: "Pay rent", Description: "before the 5th"}
	contexts := []ContextItem{
		{SourceType: "email", Content: "rent is due"},
		{SourceType: "note", Content: "landlord called"},
	}

	a := BuildTaskPrompt(task, contexts)
	b := BuildTaskPrompt(task, contexts)
	if a != b {
		t.Fatal("identical inputs must produce an identical prompt")
	}

	if !strings.Contains(a, "title: Pay rent") {
		t.Fatalf("prompt missing title:\n%s", a)
	}
	if !strings.Contains(a, "- (email) rent is due") {
		t.Fatalf("prompt missing context line:\n%s", a)
	}
	if !strings.Contains(a, `"priority_score":8`) {
		t.Fatalf("prompt missing example object:\n%s", a)
	}
	if !strings.Contains(a, "Return only JSON") {
		t.Fatalf("prompt missing JSON-only instruction:\n%s", a)
	}
}

func TestBuildTaskPromptCapsContextAt20(t *testing.T) {
	t.Parallel()

	var contexts []ContextItem
	for i := 0; i < 50; i++ {
		contexts = append(contexts, ContextItem{
			SourceType: "note",
			Content:    fmt.Sprintf("entry %d", i),
		})
	}

	prompt := BuildTaskPrompt(TaskRef{Title: "t"}, contexts)

	if got := strings.Count(prompt, "- (note)"); got != 20 {
		t.Fatalf("expected 20 rendered entries, got %d", got)
	}
	if strings.Contains(prompt, "entry 20") {
		t.Fatal("entry past the cap leaked into the prompt")
	}
	if !strings.Contains(prompt, "entry 19") {
		t.Fatal("last in-cap entry missing from the prompt")
	}
}

func TestBuildTaskPromptEmptyContext(t *testing.T) {
	t.Parallel()

	prompt := BuildTaskPrompt(TaskRef{Title: "solo"}, nil)
	if !strings.Contains(prompt, "Recent context") {
		t.Fatalf("prompt should keep the context section header:\n%s", prompt)
	}
}
