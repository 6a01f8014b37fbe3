package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// migrations holds the full schema. The tasks table stores every
// entity kind; ids are unique per kind, not globally, so the primary
// key spans both columns.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS tasks (
		id           INTEGER NOT NULL,
		kind         TEXT    NOT NULL CHECK (kind IN ('TASK', 'EPIC', 'SUBTASK')),
		name         TEXT    NOT NULL,
		status       TEXT    NOT NULL,
		description  TEXT    NOT NULL,
		duration_min INTEGER NOT NULL DEFAULT 0,
		start_time   TEXT,
		epic_id      INTEGER,
		PRIMARY KEY (id, kind)
	)`,
}
