package enrich

import (
	"context"

	"smarttodo-backend/internal/models"
)

// CategoryStore is the one side effect the merge policy needs: an atomic,
// (user, name)-scoped lookup-or-create.
type CategoryStore interface {
	GetOrCreateCategory(ctx context.Context, userID int64, name string) (models.Category, error)
}

// Store is what the enricher needs from the persistence layer.
type Store interface {
	CategoryStore

	TaskByID(ctx context.Context, userID, taskID int64) (models.Task, error)
	ListTasks(ctx context.Context, userID int64) ([]models.Task, error)
	RecentContexts(ctx context.Context, userID int64, limit int) ([]models.ContextEntry, error)
	UpdateTask(ctx context.Context, t models.Task) (models.Task, error)
	// UpdateTasks writes every task in a single transaction: either all of
	// them land or none do.
	UpdateTasks(ctx context.Context, ts []models.Task) error
}
