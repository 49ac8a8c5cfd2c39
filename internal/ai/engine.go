package ai

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const (
	suggestionMaxTokens   = 400
	suggestionTemperature = 0.2
)

// Engine produces enrichment suggestions, one backend call per task. It is
// stateless across calls; a nil Completer switches it into deterministic
// fallback mode so the system works without a live model dependency.
type Engine struct {
	client  Completer
	timeout time.Duration
	log     *slog.Logger
}

func NewEngine(client Completer, timeout time.Duration, log *slog.Logger) *Engine {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if log == nil {
		log = slog.Default()
	}
	return &Engine{client: client, timeout: timeout, log: log}
}

// SuggestTask runs one enrichment call. Backend failures are encoded into
// the suggestion, never returned: the caller always gets a usable value.
func (e *Engine) SuggestTask(ctx context.Context, task TaskRef, contexts []ContextItem) Suggestion {
	if e.client == nil {
		return e.fallback(task)
	}

	prompt := BuildTaskPrompt(task, contexts)

	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	raw, err := e.client.Complete(callCtx, prompt, suggestionMaxTokens, suggestionTemperature)
	if err != nil {
		e.log.Warn("suggestion backend call failed",
			"task_id", task.ID, "error", err)
		return Suggestion{Outcome: OutcomeBackendError, Err: err.Error()}
	}

	s, ok := ParseSuggestion(raw)
	if !ok {
		e.log.Warn("suggestion response not parsable", "task_id", task.ID)
		return Suggestion{Outcome: OutcomeUnparsable}
	}
	s.Outcome = OutcomeModel
	return s
}

// SuggestBulk enriches each task independently against a shared context
// window. One task failing does not affect the others; results line up 1:1
// with the input and carry the originating task's id and title so callers
// can re-match them.
func (e *Engine) SuggestBulk(ctx context.Context, tasks []TaskInput, contexts []ContextItem) []Suggestion {
	batchID := uuid.NewString()
	e.log.Info("bulk suggestion batch", "batch_id", batchID, "tasks", len(tasks))

	out := make([]Suggestion, 0, len(tasks))
	for _, in := range tasks {
		ref := NormalizeTask(in)
		s := e.SuggestTask(ctx, ref, contexts)
		s.TaskID = ref.ID
		s.TaskTitle = ref.Title
		out = append(out, s)
	}
	return out
}

// fallback is the fixed suggestion used when no credential is configured:
// middle priority, the task's own description (or title) and nothing else.
func (e *Engine) fallback(task TaskRef) Suggestion {
	score := 5
	desc := task.Description
	if desc == "" {
		desc = task.Title
	}
	return Suggestion{
		PriorityScore:       &score,
		ImprovedDescription: desc,
		Outcome:             OutcomeFallback,
	}
}
