package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/lib/pq"
)

// Store is the Postgres persistence layer: ownership-scoped accessors for
// tasks, categories and context entries.
type Store struct {
	db  *sql.DB
	log *slog.Logger
}

func New(db *sql.DB, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{db: db, log: log}
}

const schema = `
CREATE TABLE IF NOT EXISTS categories (
	id              BIGSERIAL PRIMARY KEY,
	user_id         BIGINT NOT NULL,
	name            VARCHAR(100) NOT NULL,
	usage_frequency INTEGER NOT NULL DEFAULT 0,
	UNIQUE (user_id, name)
);

CREATE TABLE IF NOT EXISTS context_entries (
	id                 BIGSERIAL PRIMARY KEY,
	user_id            BIGINT NOT NULL,
	content            TEXT NOT NULL,
	source_type        VARCHAR(20) NOT NULL,
	processed_insights JSONB,
	created_at         TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_context_entries_user_created
	ON context_entries (user_id, created_at DESC);

CREATE TABLE IF NOT EXISTS tasks (
	id             BIGSERIAL PRIMARY KEY,
	user_id        BIGINT NOT NULL,
	title          VARCHAR(200) NOT NULL,
	description    TEXT NOT NULL DEFAULT '',
	category_id    BIGINT REFERENCES categories(id) ON DELETE SET NULL,
	priority_score INTEGER NOT NULL DEFAULT 0 CHECK (priority_score BETWEEN 0 AND 10),
	deadline       DATE,
	status         VARCHAR(20) NOT NULL DEFAULT 'pending',
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_tasks_user ON tasks (user_id);
`

// Init creates the base tables when they do not exist yet.
func (s *Store) Init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	s.log.Info("database schema ensured")
	return nil
}

func isUniqueViolation(err error) bool {
	pqErr, ok := err.(*pq.Error)
	return ok && pqErr.Code == "23505"
}
