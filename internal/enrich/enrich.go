package enrich

import (
	"context"
	"log/slog"

	"smarttodo-backend/internal/ai"
	"smarttodo-backend/internal/models"
)

// Context window sizes, counted most-recent-first.
const (
	singleContextWindow = 30
	bulkContextWindow   = 50
)

// Enricher wires the suggestion engine to the persistence layer: it loads
// the task and context window, asks for a suggestion and safely merges the
// answer back.
type Enricher struct {
	store  Store
	engine *ai.Engine
	log    *slog.Logger
}

func New(store Store, engine *ai.Engine, log *slog.Logger) *Enricher {
	if log == nil {
		log = slog.Default()
	}
	return &Enricher{store: store, engine: engine, log: log}
}

// EnrichTask enriches one task and persists any accepted fields. The
// returned task reflects the post-merge state; a task that could not be
// enriched comes back unchanged with the suggestion's Err set.
func (e *Enricher) EnrichTask(ctx context.Context, userID, taskID int64) (ai.Suggestion, models.Task, error) {
	t, err := e.store.TaskByID(ctx, userID, taskID)
	if err != nil {
		return ai.Suggestion{}, models.Task{}, err
	}

	contexts, err := e.loadContexts(ctx, userID, singleContextWindow)
	if err != nil {
		return ai.Suggestion{}, models.Task{}, err
	}

	sugg := e.engine.SuggestTask(ctx, ai.NormalizeTask(ai.TaskInput{Record: &t}), contexts)

	changed, err := ApplySuggestion(ctx, e.store, userID, &t, sugg)
	if err != nil {
		return sugg, t, err
	}
	if changed {
		t, err = e.store.UpdateTask(ctx, t)
		if err != nil {
			return sugg, t, err
		}
	}
	return sugg, t, nil
}

// EnrichAll enriches every task of the user against a shared context window.
// Suggestions come back 1:1 in task order. Each suggestion is re-matched to
// its task by id first, then by exact title; unmatchable ones are dropped.
//
// Write policy: merges (including category upserts, which are idempotent and
// commit independently) are computed per task, with invalid fields or whole
// suggestions skipped in isolation; the resulting task updates are then
// written in one transaction, all or nothing.
func (e *Enricher) EnrichAll(ctx context.Context, userID int64) ([]ai.Suggestion, []models.Task, error) {
	tasks, err := e.store.ListTasks(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	contexts, err := e.loadContexts(ctx, userID, bulkContextWindow)
	if err != nil {
		return nil, nil, err
	}

	inputs := make([]ai.TaskInput, len(tasks))
	for i := range tasks {
		inputs[i] = ai.TaskInput{Record: &tasks[i]}
	}

	suggestions := e.engine.SuggestBulk(ctx, inputs, contexts)

	var updated []models.Task
	for _, s := range suggestions {
		t := matchTask(tasks, s)
		if t == nil {
			e.log.Warn("suggestion matches no task",
				"user_id", userID, "suggestion_task_id", s.TaskID)
			continue
		}

		changed, err := ApplySuggestion(ctx, e.store, userID, t, s)
		if err != nil {
			return suggestions, nil, err
		}
		if changed {
			updated = append(updated, *t)
		}
	}

	if len(updated) > 0 {
		if err := e.store.UpdateTasks(ctx, updated); err != nil {
			return suggestions, nil, err
		}
	}
	return suggestions, updated, nil
}

func (e *Enricher) loadContexts(ctx context.Context, userID int64, limit int) ([]ai.ContextItem, error) {
	entries, err := e.store.RecentContexts(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	inputs := make([]ai.ContextInput, len(entries))
	for i := range entries {
		inputs[i] = ai.ContextInput{Entry: &entries[i]}
	}
	return ai.NormalizeContexts(inputs), nil
}

// matchTask resolves a suggestion to one of the loaded tasks: primary key
// first, exact title as fallback when no id matched.
func matchTask(tasks []models.Task, s ai.Suggestion) *models.Task {
	if s.TaskID != 0 {
		for i := range tasks {
			if tasks[i].ID == s.TaskID {
				return &tasks[i]
			}
		}
	}
	if s.TaskTitle != "" {
		for i := range tasks {
			if tasks[i].Title == s.TaskTitle {
				return &tasks[i]
			}
		}
	}
	return nil
}
