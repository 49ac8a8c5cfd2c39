package store

import (
	"context"
	"fmt"
	"strings"

	"smarttodo-backend/internal/models"
)

// Context content handed to the prompt side is capped per entry to keep
// prompts bounded.
const maxContextContent = 500

func (s *Store) CreateContextEntry(ctx context.Context, e models.ContextEntry) (models.ContextEntry, error) {
	e.Content = strings.TrimSpace(e.Content)
	if err := models.ValidateContent(e.Content); err != nil {
		return models.ContextEntry{}, err
	}
	if !e.SourceType.Valid() {
		return models.ContextEntry{}, models.ErrBadSourceType
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO context_entries (user_id, content, source_type, processed_insights)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, e.UserID, e.Content, e.SourceType, nullableJSON(e.ProcessedInsights))

	if err := row.Scan(&e.ID, &e.CreatedAt); err != nil {
		return models.ContextEntry{}, fmt.Errorf("insert context entry: %w", err)
	}
	return e, nil
}

// RecentContexts returns up to limit entries, most recent first, with each
// content truncated for prompt use.
func (s *Store) RecentContexts(ctx context.Context, userID int64, limit int) ([]models.ContextEntry, error) {
	if limit <= 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, content, source_type, processed_insights, created_at
		FROM context_entries
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent contexts: %w", err)
	}
	defer rows.Close()

	var out []models.ContextEntry
	for rows.Next() {
		var e models.ContextEntry
		var insights []byte
		if err := rows.Scan(&e.ID, &e.UserID, &e.Content, &e.SourceType, &insights, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan context entry: %w", err)
		}
		e.ProcessedInsights = insights
		e.Content = models.Truncate(e.Content, maxContextContent)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("recent contexts rows: %w", err)
	}
	return out, nil
}

func (s *Store) DeleteContextEntry(ctx context.Context, userID, entryID int64) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM context_entries WHERE user_id = $1 AND id = $2
	`, userID, entryID)
	if err != nil {
		return fmt.Errorf("delete context entry: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrContextNotFound
	}
	return nil
}

func nullableJSON(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}
