package store

import (
	"context"
	"fmt"
	"strings"

	"smarttodo-backend/internal/models"
)

func (s *Store) CreateCategory(ctx context.Context, userID int64, name string) (models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Category{}, models.ErrBadCategoryName
	}

	var c models.Category
	c.UserID = userID
	c.Name = name

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO categories (user_id, name)
		VALUES ($1, $2)
		RETURNING id, usage_frequency
	`, userID, name)

	if err := row.Scan(&c.ID, &c.UsageFrequency); err != nil {
		if isUniqueViolation(err) {
			return models.Category{}, models.ErrCategoryExists
		}
		return models.Category{}, fmt.Errorf("insert category: %w", err)
	}
	return c, nil
}

// GetOrCreateCategory is the merge policy's lookup-or-create. The upsert is
// atomic per (user_id, name), so concurrent enrichment requests cannot race
// a duplicate row into existence. Every hit bumps usage_frequency.
func (s *Store) GetOrCreateCategory(ctx context.Context, userID int64, name string) (models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Category{}, models.ErrBadCategoryName
	}

	var c models.Category
	c.UserID = userID

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO categories (user_id, name, usage_frequency)
		VALUES ($1, $2, 1)
		ON CONFLICT (user_id, name) DO UPDATE
		SET usage_frequency = categories.usage_frequency + 1
		RETURNING id, name, usage_frequency
	`, userID, name)

	if err := row.Scan(&c.ID, &c.Name, &c.UsageFrequency); err != nil {
		return models.Category{}, fmt.Errorf("get or create category: %w", err)
	}
	return c, nil
}

func (s *Store) ListCategories(ctx context.Context, userID int64) ([]models.Category, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, name, usage_frequency
		FROM categories
		WHERE user_id = $1
		ORDER BY name ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.UsageFrequency); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list categories rows: %w", err)
	}
	return out, nil
}

func (s *Store) DeleteCategory(ctx context.Context, userID, categoryID int64) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM categories WHERE user_id = $1 AND id = $2
	`, userID, categoryID)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrCategoryNotFound
	}
	return nil
}
