package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"smarttodo-backend/internal/models"
)

const taskColumns = `
	t.id, t.user_id, t.title, t.description,
	t.category_id, COALESCE(c.name, ''),
	t.priority_score, t.deadline, t.status,
	t.created_at, t.updated_at`

func scanTask(row interface{ Scan(...any) error }) (models.Task, error) {
	var (
		t          models.Task
		categoryID sql.NullInt64
		deadline   sql.NullTime
	)
	err := row.Scan(
		&t.ID, &t.UserID, &t.Title, &t.Description,
		&categoryID, &t.CategoryName,
		&t.PriorityScore, &deadline, &t.Status,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return models.Task{}, err
	}
	if categoryID.Valid {
		t.CategoryID = &categoryID.Int64
	}
	if deadline.Valid {
		d := deadline.Time
		t.Deadline = &d
	}
	return t, nil
}

func (s *Store) CreateTask(ctx context.Context, t models.Task) (models.Task, error) {
	t.Title = strings.TrimSpace(t.Title)
	if err := models.ValidateTitle(t.Title); err != nil {
		return models.Task{}, err
	}
	if t.Status == "" {
		t.Status = models.StatusPending
	}
	if !t.Status.Valid() {
		return models.Task{}, models.ErrBadStatus
	}
	if err := models.ValidateDeadline(t.Deadline, time.Now()); err != nil {
		return models.Task{}, err
	}
	if t.PriorityScore < 0 || t.PriorityScore > 10 {
		t.PriorityScore = 0
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO tasks (user_id, title, description, category_id, priority_score, deadline, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, t.UserID, t.Title, t.Description, t.CategoryID, t.PriorityScore, t.Deadline, t.Status)

	if err := row.Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return models.Task{}, fmt.Errorf("insert task: %w", err)
	}
	return t, nil
}

func (s *Store) TaskByID(ctx context.Context, userID, taskID int64) (models.Task, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+taskColumns+`
		FROM tasks t
		LEFT JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = $1 AND t.id = $2
	`, userID, taskID)

	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, models.ErrTaskNotFound
	}
	if err != nil {
		return models.Task{}, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

// ListTasks returns the user's tasks in the dashboard order: highest
// priority first, nearest deadline next, newest last.
func (s *Store) ListTasks(ctx context.Context, userID int64) ([]models.Task, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+taskColumns+`
		FROM tasks t
		LEFT JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = $1
		ORDER BY t.priority_score DESC, t.deadline ASC NULLS LAST, t.created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var out []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tasks rows: %w", err)
	}
	return out, nil
}

// UpdateTask writes all mutable fields of the task, scoped to its owner.
func (s *Store) UpdateTask(ctx context.Context, t models.Task) (models.Task, error) {
	t.Title = strings.TrimSpace(t.Title)
	if err := models.ValidateTitle(t.Title); err != nil {
		return models.Task{}, err
	}
	if !t.Status.Valid() {
		return models.Task{}, models.ErrBadStatus
	}

	row := s.db.QueryRowContext(ctx, `
		UPDATE tasks
		SET title = $3,
			description = $4,
			category_id = $5,
			priority_score = $6,
			deadline = $7,
			status = $8,
			updated_at = now()
		WHERE user_id = $1 AND id = $2
		RETURNING updated_at
	`, t.UserID, t.ID, t.Title, t.Description, t.CategoryID, t.PriorityScore, t.Deadline, t.Status)

	if err := row.Scan(&t.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Task{}, models.ErrTaskNotFound
		}
		return models.Task{}, fmt.Errorf("update task: %w", err)
	}
	return t, nil
}

// UpdateTasks writes a batch of tasks inside one transaction. Either every
// update commits or none of them do.
func (s *Store) UpdateTasks(ctx context.Context, ts []models.Task) error {
	if len(ts) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin batch update: %w", err)
	}
	defer tx.Rollback()

	for _, t := range ts {
		_, err := tx.ExecContext(ctx, `
			UPDATE tasks
			SET description = $3,
				category_id = $4,
				priority_score = $5,
				deadline = $6,
				updated_at = now()
			WHERE user_id = $1 AND id = $2
		`, t.UserID, t.ID, t.Description, t.CategoryID, t.PriorityScore, t.Deadline)
		if err != nil {
			return fmt.Errorf("batch update task %d: %w", t.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit batch update: %w", err)
	}
	return nil
}

func (s *Store) SetTaskStatus(ctx context.Context, userID, taskID int64, status models.TaskStatus) error {
	if !status.Valid() {
		return models.ErrBadStatus
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE tasks SET status = $3, updated_at = now()
		WHERE user_id = $1 AND id = $2
	`, userID, taskID, status)
	if err != nil {
		return fmt.Errorf("set task status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrTaskNotFound
	}
	return nil
}

func (s *Store) DeleteTask(ctx context.Context, userID, taskID int64) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM tasks WHERE user_id = $1 AND id = $2
	`, userID, taskID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrTaskNotFound
	}
	return nil
}

// Stats aggregates the user's tasks for the dashboard.
func (s *Store) Stats(ctx context.Context, userID int64) (models.TaskStats, error) {
	stats := models.TaskStats{ByCategory: map[string]int{}}

	row := s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'in_progress'),
			COUNT(*) FILTER (WHERE status = 'completed'),
			COUNT(*) FILTER (WHERE deadline IS NOT NULL AND deadline < CURRENT_DATE AND status <> 'completed')
		FROM tasks
		WHERE user_id = $1
	`, userID)
	if err := row.Scan(&stats.Total, &stats.Pending, &stats.InProgress, &stats.Completed, &stats.Overdue); err != nil {
		return models.TaskStats{}, fmt.Errorf("task stats: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT c.name, COUNT(t.id)
		FROM tasks t
		JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = $1
		GROUP BY c.name
	`, userID)
	if err != nil {
		return models.TaskStats{}, fmt.Errorf("category stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		var n int
		if err := rows.Scan(&name, &n); err != nil {
			return models.TaskStats{}, fmt.Errorf("scan category stats: %w", err)
		}
		stats.ByCategory[name] = n
	}
	if err := rows.Err(); err != nil {
		return models.TaskStats{}, fmt.Errorf("category stats rows: %w", err)
	}
	return stats, nil
}
