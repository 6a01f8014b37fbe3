package manager

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Martinez1337/go-kanban/internal/domain"
)

// sqliteTimeLayout is the stored timestamp format, same as the file
// codec so both backends round-trip identically.
const sqliteTimeLayout = time.RFC3339

// sqliteStore persists full store snapshots into a single tasks table,
// replacing all rows transactionally on each save.
type sqliteStore struct {
	db *sql.DB
}

func (s sqliteStore) Save(tasks []*domain.Task, epics []*domain.Epic, subtasks []*domain.Subtask) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: beginning transaction: %v", ErrPersistence, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM tasks`); err != nil {
		return fmt.Errorf("%w: clearing tasks table: %v", ErrPersistence, err)
	}

	const insert = `INSERT INTO tasks (id, kind, name, status, description, duration_min, start_time, epic_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	for _, t := range tasks {
		if _, err := tx.Exec(insert, t.ID, string(domain.KindTask), t.Name, string(t.Status),
			t.Description, int64(t.Duration/time.Minute), startTimeValue(t.StartTime), nil); err != nil {
			return fmt.Errorf("%w: inserting task %d: %v", ErrPersistence, t.ID, err)
		}
	}
	for _, e := range epics {
		if _, err := tx.Exec(insert, e.ID, string(domain.KindEpic), e.Name, string(e.Status),
			e.Description, int64(e.Duration/time.Minute), startTimeValue(e.StartTime), nil); err != nil {
			return fmt.Errorf("%w: inserting epic %d: %v", ErrPersistence, e.ID, err)
		}
	}
	for _, st := range subtasks {
		if _, err := tx.Exec(insert, st.ID, string(domain.KindSubtask), st.Name, string(st.Status),
			st.Description, int64(st.Duration/time.Minute), startTimeValue(st.StartTime), st.EpicID); err != nil {
			return fmt.Errorf("%w: inserting subtask %d: %v", ErrPersistence, st.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing snapshot: %v", ErrPersistence, err)
	}
	return nil
}

// startTimeValue converts a *time.Time to a value suitable for SQLite
// storage: nil (SQL NULL) when unscheduled.
func startTimeValue(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.Format(sqliteTimeLayout)
}

// LoadSQLiteTaskManager rebuilds a store from the tasks table of a
// database and persists back into it after every mutation. The same
// load rules as the file backend apply: subtasks attach after epics, a
// missing parent is a corrupt-store condition, epic fields are
// recomputed, the id generator resumes past the highest id seen.
func LoadSQLiteTaskManager(conn *sql.DB) (*PersistentTaskManager, error) {
	rows, err := conn.Query(`SELECT id, kind, name, status, description, duration_min, start_time, epic_id
		FROM tasks ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%w: querying tasks: %v", ErrPersistence, err)
	}
	defer rows.Close()

	var (
		tasks    []*domain.Task
		epics    []*domain.Epic
		subtasks []*domain.Subtask
	)
	for rows.Next() {
		var (
			base     domain.Task
			kindStr  string
			status   string
			minutes  int64
			startStr sql.NullString
			epicID   sql.NullInt64
		)
		if err := rows.Scan(&base.ID, &kindStr, &base.Name, &status, &base.Description,
			&minutes, &startStr, &epicID); err != nil {
			return nil, fmt.Errorf("%w: scanning task row: %v", ErrPersistence, err)
		}
		kind, err := domain.ParseKind(kindStr)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
		}
		base.Status, err = domain.ParseStatus(status)
		if err != nil {
			return nil, fmt.Errorf("%w: task %d: %v", ErrInvalidArgument, base.ID, err)
		}
		base.Duration = time.Duration(minutes) * time.Minute
		if startStr.Valid && startStr.String != "" {
			st, err := time.Parse(sqliteTimeLayout, startStr.String)
			if err != nil {
				return nil, fmt.Errorf("%w: task %d: bad start time %q", ErrInvalidArgument, base.ID, startStr.String)
			}
			base.StartTime = &st
		}

		switch kind {
		case domain.KindEpic:
			epics = append(epics, &domain.Epic{Task: base})
		case domain.KindSubtask:
			if !epicID.Valid {
				return nil, fmt.Errorf("%w: subtask %d has no epic id", ErrCorruptFile, base.ID)
			}
			sub := &domain.Subtask{Task: base, EpicID: int(epicID.Int64)}
			if err := sub.Validate(); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
			}
			subtasks = append(subtasks, sub)
		default:
			tasks = append(tasks, &base)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading tasks: %v", ErrPersistence, err)
	}

	inner := NewInMemoryTaskManager()
	if err := inner.restore(tasks, epics, subtasks); err != nil {
		return nil, err
	}
	return newPersistentTaskManager(inner, sqliteStore{db: conn}), nil
}
