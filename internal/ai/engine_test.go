package ai

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

// fakeCompleter scripts one response (or error) per call, in order.
type fakeCompleter struct {
	calls     int
	responses []string
	errs      []error
}

func (f *fakeCompleter) Complete(ctx context.Context, prompt string, maxTokens int, temperature float32) (string, error) {
	i := f.calls
	f.calls++
	if i < len(f.errs) && f.errs[i] != nil {
		return "", f.errs[i]
	}
	if i < len(f.responses) {
		return f.responses[i], nil
	}
	return "", errors.New("unscripted call")
}

func TestSuggestTaskNoBackendFallback(t *testing.T) {
	t.Parallel()

	engine := NewEngine(nil, time.Second, nil)

	for _, task := range []TaskRef{
		{ID: 1, Title: "Pay rent", Description: "before the 5th"},
		{ID: 2, Title: "Buy milk"},
	} {
		s := engine.SuggestTask(context.Background(), task, nil)
		if s.Outcome != OutcomeFallback {
			t.Fatalf("outcome = %s, want fallback", s.Outcome)
		}
		if s.PriorityScore == nil || *s.PriorityScore != 5 {
			t.Fatalf("fallback score = %v, want 5", s.PriorityScore)
		}
		if s.Deadline != nil {
			t.Fatal("fallback deadline must be absent")
		}
		want := task.Description
		if want == "" {
			want = task.Title
		}
		if s.ImprovedDescription != want {
			t.Fatalf("fallback description = %q, want %q", s.ImprovedDescription, want)
		}
		if s.SuggestedCategory != "" {
			t.Fatal("fallback category must be absent")
		}
	}
}

func TestSuggestTaskBackendError(t *testing.T) {
	t.Parallel()

	fc := &fakeCompleter{errs: []error{errors.New("rate limited")}}
	engine := NewEngine(fc, time.Second, nil)

	s := engine.SuggestTask(context.Background(), TaskRef{ID: 1, Title: "t"}, nil)
	if s.Outcome != OutcomeBackendError {
		t.Fatalf("outcome = %s, want backend_error", s.Outcome)
	}
	if s.Err == "" {
		t.Fatal("expected error field to be set")
	}
	if !s.Empty() {
		t.Fatalf("failed call must not carry fields: %+v", s)
	}
}

func TestSuggestTaskUnparsableResponse(t *testing.T) {
	t.Parallel()

	fc := &fakeCompleter{responses: []string{"sorry, I cannot help with that"}}
	engine := NewEngine(fc, time.Second, nil)

	s := engine.SuggestTask(context.Background(), TaskRef{ID: 1, Title: "t"}, nil)
	if s.Outcome != OutcomeUnparsable {
		t.Fatalf("outcome = %s, want unparsable", s.Outcome)
	}
	if s.Err != "" {
		t.Fatalf("unparsable is not an error: %q", s.Err)
	}
	if !s.Empty() {
		t.Fatalf("unparsable response must yield an empty suggestion: %+v", s)
	}
}

func TestSuggestBulkIsolatesFailuresAndKeepsOrder(t *testing.T) {
	t.Parallel()

	fc := &fakeCompleter{
		responses: []string{
			`{"priority_score":9,"improved_description":"one"}`,
			"",
			`{"priority_score":2,"improved_description":"three"}`,
		},
		errs: []error{nil, errors.New("boom"), nil},
	}
	engine := NewEngine(fc, time.Second, nil)

	tasks := []TaskInput{
		{Fields: map[string]any{"id": float64(1), "title": "first"}},
		{Fields: map[string]any{"id": float64(2), "title": "second"}},
		{Fields: map[string]any{"id": float64(3), "title": "third"}},
	}

	got := engine.SuggestBulk(context.Background(), tasks, nil)
	if len(got) != 3 {
		t.Fatalf("expected 3 suggestions, got %d", len(got))
	}

	for i, wantID := range []int64{1, 2, 3} {
		if got[i].TaskID != wantID {
			t.Fatalf("suggestion %d tagged with task %d, want %d", i, got[i].TaskID, wantID)
		}
	}
	if got[0].TaskTitle != "first" || got[2].TaskTitle != "third" {
		t.Fatalf("titles not tagged: %+v", got)
	}

	if got[0].Outcome != OutcomeModel || *got[0].PriorityScore != 9 {
		t.Fatalf("first suggestion wrong: %+v", got[0])
	}
	if got[1].Outcome != OutcomeBackendError || got[1].Err == "" {
		t.Fatalf("second suggestion should carry the failure: %+v", got[1])
	}
	if got[2].Outcome != OutcomeModel || got[2].ImprovedDescription != "three" {
		t.Fatalf("third suggestion wrong: %+v", got[2])
	}
}

func TestSuggestBulkEmptyInput(t *testing.T) {
	t.Parallel()

	engine := NewEngine(nil, time.Second, nil)
	if got := engine.SuggestBulk(context.Background(), nil, nil); len(got) != 0 {
		t.Fatalf("expected no suggestions, got %d", len(got))
	}
}

func TestOutcomeString(t *testing.T) {
	t.Parallel()

	cases := map[Outcome]string{
		OutcomeModel:        "model",
		OutcomeFallback:     "fallback",
		OutcomeUnparsable:   "unparsable",
		OutcomeBackendError: "backend_error",
		Outcome(42):         "unknown",
	}
	for o, want := range cases {
		if got := o.String(); got != want {
			t.Fatalf("Outcome(%d).String() = %q, want %q", o, got, want)
		}
	}
}

func TestSuggestTaskUsesPrompt(t *testing.T) {
	t.Parallel()

	var seenPrompt string
	fc := &promptCapture{reply: `{"priority_score":1}`, seen: &seenPrompt}
	engine := NewEngine(fc, time.Second, nil)

	task := TaskRef{ID: 4, Title: "Water plants", Description: "balcony only"}
	contexts := []ContextItem{{SourceType: "note", Content: "ferns look dry"}}
	engine.SuggestTask(context.Background(), task, contexts)

	want := BuildTaskPrompt(task, contexts)
	if seenPrompt != want {
		t.Fatalf("engine did not send the built prompt:\n%s", seenPrompt)
	}
}

type promptCapture struct {
	reply string
	seen  *string
}

func (p *promptCapture) Complete(ctx context.Context, prompt string, maxTokens int, temperature float32) (string, error) {
	*p.seen = prompt
	if maxTokens != suggestionMaxTokens {
		return "", fmt.Errorf("maxTokens = %d, want %d", maxTokens, suggestionMaxTokens)
	}
	if temperature != suggestionTemperature {
		return "", fmt.Errorf("temperature = %v, want %v", temperature, suggestionTemperature)
	}
	return p.reply, nil
}
