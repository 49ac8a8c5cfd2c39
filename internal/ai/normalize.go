package ai

import (
	"smarttodo-backend/internal/models"
)

// ContextInput is one context item as supplied by a caller: either a
// persisted record or a loose key/value map. Exactly one side is set.
type ContextInput struct {
	Entry  *models.ContextEntry
	Fields map[string]any
}

// ContextItem is the canonical shape every downstream component works with.
type ContextItem struct {
	SourceType string
	Content    string
}

// TaskInput mirrors ContextInput for tasks. Bulk callers may only have
// map-shaped tasks, so normalization also recovers id and title for
// re-matching later.
type TaskInput struct {
	Record *models.Task
	Fields map[string]any
}

type TaskRef struct {
	ID          int64
	Title       string
	Description string
}

// NormalizeContexts coerces a mixed sequence into ordered ContextItems,
// preserving input order (callers supply most-recent-first). Missing or
// malformed fields degrade to empty strings, never to an error.
func NormalizeContexts(in []ContextInput) []ContextItem {
	out := make([]ContextItem, 0, len(in))
	for _, c := range in {
		switch {
		case c.Entry != nil:
			out = append(out, ContextItem{
				SourceType: string(c.Entry.SourceType),
				Content:    c.Entry.Content,
			})
		default:
			out = append(out, ContextItem{
				SourceType: mapString(c.Fields, "source_type"),
				Content:    mapString(c.Fields, "content"),
			})
		}
	}
	return out
}

// NormalizeTask coerces either task representation into a TaskRef.
func NormalizeTask(in TaskInput) TaskRef {
	if in.Record != nil {
		return TaskRef{
			ID:          in.Record.ID,
			Title:       in.Record.Title,
			Description: in.Record.Description,
		}
	}
	return TaskRef{
		ID:          mapInt64(in.Fields, "id"),
		Title:       mapString(in.Fields, "title"),
		Description: mapString(in.Fields, "description"),
	}
}

func mapString(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}

func mapInt64(m map[string]any, key string) int64 {
	if m == nil {
		return 0
	}
	switch v := m[key].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	}
	return 0
}
