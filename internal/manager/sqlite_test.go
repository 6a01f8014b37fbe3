package manager

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/Martinez1337/go-kanban/internal/db"
	"github.com/Martinez1337/go-kanban/internal/domain"
	"github.com/Martinez1337/go-kanban/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) (conn *sql.DB, path string) {
	t.Helper()
	path = filepath.Join(t.TempDir(), "tasks.db")
	conn, err := db.OpenDB(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn, path
}

func TestSQLiteBacked_RoundTrip(t *testing.T) {
	conn, path := openTestDB(t)

	m, err := LoadSQLiteTaskManager(conn)
	require.NoError(t, err)

	start := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	taskID, err := m.CreateTask(testutil.NewTask("scheduled", testutil.WithSchedule(start, 30*time.Minute)))
	require.NoError(t, err)
	epicID, err := m.CreateEpic(testutil.NewEpic("release"))
	require.NoError(t, err)
	subID, err := m.CreateSubtask(testutil.NewSubtask(epicID, "step",
		testutil.WithStatus(domain.StatusDone), testutil.WithDuration(20*time.Minute)))
	require.NoError(t, err)

	// Reopen the database and rebuild the manager from rows alone.
	require.NoError(t, conn.Close())
	reopened, err := db.OpenDB(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	loaded, err := LoadSQLiteTaskManager(reopened)
	require.NoError(t, err)

	task, err := loaded.GetTask(taskID)
	require.NoError(t, err)
	require.NotNil(t, task.StartTime)
	assert.True(t, start.Equal(*task.StartTime))
	assert.Equal(t, 30*time.Minute, task.Duration)

	epic, err := loaded.GetEpic(epicID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDone, epic.Status)
	assert.Equal(t, 20*time.Minute, epic.Duration)
	assert.Equal(t, []int{subID}, epic.SubtaskIDs)

	nextID, err := loaded.CreateTask(testutil.NewTask("fresh"))
	require.NoError(t, err)
	assert.Equal(t, subID+1, nextID)
}

func TestSQLiteBacked_SaveReplacesRows(t *testing.T) {
	conn, path := openTestDB(t)

	m, err := LoadSQLiteTaskManager(conn)
	require.NoError(t, err)

	id, err := m.CreateTask(testutil.NewTask("transient"))
	require.NoError(t, err)
	keptID, err := m.CreateTask(testutil.NewTask("kept"))
	require.NoError(t, err)
	require.NoError(t, m.DeleteTask(id))

	require.NoError(t, conn.Close())
	reopened, err := db.OpenDB(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	loaded, err := LoadSQLiteTaskManager(reopened)
	require.NoError(t, err)
	tasks := loaded.ListTasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, keptID, tasks[0].ID)
}

func TestLoadSQLite_RejectsOrphanSubtask(t *testing.T) {
	conn, _ := openTestDB(t)

	_, err := conn.Exec(
		`INSERT INTO tasks (id, kind, name, status, description, duration_min, start_time, epic_id)
		 VALUES (3, 'SUBTASK', 'Sub1', 'NEW', 'DescSub', 10, NULL, 999)`)
	require.NoError(t, err)

	_, err = LoadSQLiteTaskManager(conn)
	assert.ErrorIs(t, err, ErrCorruptFile)
}

func TestLoadSQLite_RejectsUnknownStatus(t *testing.T) {
	conn, _ := openTestDB(t)

	// The kind column is CHECK constrained, so a bad status is the
	// reachable corruption here.
	_, err := conn.Exec(
		`INSERT INTO tasks (id, kind, name, status, description, duration_min, start_time, epic_id)
		 VALUES (1, 'TASK', 'Task1', 'BLOCKED', 'Desc1', 0, NULL, NULL)`)
	require.NoError(t, err)

	_, err = LoadSQLiteTaskManager(conn)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
