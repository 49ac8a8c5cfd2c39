package enrich

import (
	"context"
	"time"

	"smarttodo-backend/internal/ai"
	"smarttodo-backend/internal/models"
)

const deadlineLayout = "2006-01-02"

// ApplySuggestion merges a suggestion onto a task, field by field. Every
// field is validated independently; anything out of range, malformed or in
// the past is dropped without touching the rest. Title and status are never
// modified. The returned flag tells the caller whether a save is needed.
//
// The only side effect beyond the task itself is the category
// lookup-or-create, and its error is the only way this function can fail.
func ApplySuggestion(ctx context.Context, cats CategoryStore, userID int64, t *models.Task, s ai.Suggestion) (bool, error) {
	return applySuggestionAt(ctx, cats, userID, t, s, time.Now())
}

func applySuggestionAt(ctx context.Context, cats CategoryStore, userID int64, t *models.Task, s ai.Suggestion, now time.Time) (bool, error) {
	changed := false

	if s.PriorityScore != nil && *s.PriorityScore >= 0 && *s.PriorityScore <= 10 {
		t.PriorityScore = *s.PriorityScore
		changed = true
	}

	if s.Deadline != nil {
		if d, err := time.Parse(deadlineLayout, *s.Deadline); err == nil {
			if !d.Before(models.DateOnly(now.UTC())) {
				t.Deadline = &d
				changed = true
			}
		}
	}

	if s.ImprovedDescription != "" {
		t.Description = s.ImprovedDescription
		changed = true
	}

	if s.SuggestedCategory != "" {
		cat, err := cats.GetOrCreateCategory(ctx, userID, s.SuggestedCategory)
		if err != nil {
			return changed, err
		}
		t.CategoryID = &cat.ID
		t.CategoryName = cat.Name
		changed = true
	}

	return changed, nil
}
