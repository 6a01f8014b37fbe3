package manager

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Martinez1337/go-kanban/internal/domain"
	"github.com/Martinez1337/go-kanban/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempSavePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "tasks.csv")
}

func TestFileBacked_SaveWritesRecords(t *testing.T) {
	path := tempSavePath(t)
	m := NewFileBackedTaskManager(path)

	_, err := m.CreateTask(testutil.NewTask("Task1", testutil.WithDuration(10*time.Minute)))
	require.NoError(t, err)
	epicID, err := m.CreateEpic(testutil.NewEpic("Epic1"))
	require.NoError(t, err)
	_, err = m.CreateSubtask(testutil.NewSubtask(epicID, "Sub1",
		testutil.WithStatus(domain.StatusDone), testutil.WithDuration(10*time.Minute)))
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(content)

	assert.Contains(t, text, "id,type,name,status,description,duration,startTime,epic\n")
	assert.Contains(t, text, "1,TASK,Task1,NEW,Task1 description,10,null,\n")
	assert.Contains(t, text, "2,EPIC,Epic1,DONE,Epic1 description,10,null,\n", "epic carries derived status and duration")
	assert.Contains(t, text, "3,SUBTASK,Sub1,DONE,Sub1 description,10,null,2\n")
}

func TestFileBacked_RoundTrip(t *testing.T) {
	path := tempSavePath(t)
	m := NewFileBackedTaskManager(path)

	start := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	taskID, err := m.CreateTask(testutil.NewTask("scheduled", testutil.WithSchedule(start, 30*time.Minute)))
	require.NoError(t, err)
	epicID, err := m.CreateEpic(testutil.NewEpic("release"))
	require.NoError(t, err)
	subID, err := m.CreateSubtask(testutil.NewSubtask(epicID, "step",
		testutil.WithStatus(domain.StatusDone), testutil.WithSchedule(start.Add(time.Hour), 20*time.Minute)))
	require.NoError(t, err)

	loaded, err := LoadFileBackedTaskManager(path)
	require.NoError(t, err)

	task, err := loaded.GetTask(taskID)
	require.NoError(t, err)
	assert.Equal(t, "scheduled", task.Name)
	require.NotNil(t, task.StartTime)
	assert.True(t, start.Equal(*task.StartTime))
	assert.Equal(t, 30*time.Minute, task.Duration)

	epic, err := loaded.GetEpic(epicID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDone, epic.Status, "derived fields recomputed on load")
	assert.Equal(t, 20*time.Minute, epic.Duration)
	assert.Equal(t, []int{subID}, epic.SubtaskIDs)

	sub, err := loaded.GetSubtask(subID)
	require.NoError(t, err)
	assert.Equal(t, epicID, sub.EpicID)

	// Generator resumes past the highest persisted id.
	nextID, err := loaded.CreateTask(testutil.NewTask("fresh"))
	require.NoError(t, err)
	assert.Equal(t, subID+1, nextID)
}

func TestLoadFileBacked_MissingFile(t *testing.T) {
	path := tempSavePath(t)

	loaded, err := LoadFileBackedTaskManager(path)
	require.NoError(t, err)
	assert.Empty(t, loaded.ListTasks())
	assert.Empty(t, loaded.ListEpics())
	assert.Empty(t, loaded.ListSubtasks())

	// The empty store is bound to the path and saves on first mutation.
	_, err = loaded.CreateTask(testutil.NewTask("first"))
	require.NoError(t, err)
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestLoadFileBacked_SkipsBlankLines(t *testing.T) {
	path := tempSavePath(t)
	content := "id,type,name,status,description,duration,startTime,epic\n" +
		"1,TASK,Task1,NEW,Desc1,10,null,\n" +
		"\n" +
		"2,EPIC,Epic1,NEW,DescEpic,0,null,\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	loaded, err := LoadFileBackedTaskManager(path)
	require.NoError(t, err)
	assert.Len(t, loaded.ListTasks(), 1)
	assert.Len(t, loaded.ListEpics(), 1)
}

func TestLoadFileBacked_OrphanSubtaskIsFatal(t *testing.T) {
	path := tempSavePath(t)
	content := "id,type,name,status,description,duration,startTime,epic\n" +
		"3,SUBTASK,Sub1,NEW,DescSub,10,null,999\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := LoadFileBackedTaskManager(path)
	assert.ErrorIs(t, err, ErrCorruptFile)
}

func TestLoadFileBacked_MalformedLineIsFatal(t *testing.T) {
	path := tempSavePath(t)
	content := "id,type,name,status,description,duration,startTime,epic\n" +
		"1,STORY,Task1,NEW,Desc1,10,null,\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	_, err := LoadFileBackedTaskManager(path)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestFileBacked_SaveFailureSurfacesButKeepsMemory(t *testing.T) {
	// Point the store at a path whose directory does not exist.
	path := filepath.Join(t.TempDir(), "missing", "tasks.csv")
	m := NewFileBackedTaskManager(path)

	id, err := m.CreateTask(testutil.NewTask("doomed save"))
	assert.ErrorIs(t, err, ErrPersistence)

	// The in-memory mutation stays applied; memory and file diverge.
	got, getErr := m.GetTask(id)
	require.NoError(t, getErr)
	assert.Equal(t, "doomed save", got.Name)
}

func TestFileBacked_DeleteRewritesFile(t *testing.T) {
	path := tempSavePath(t)
	m := NewFileBackedTaskManager(path)

	id, err := m.CreateTask(testutil.NewTask("transient"))
	require.NoError(t, err)
	require.NoError(t, m.DeleteTask(id))

	loaded, err := LoadFileBackedTaskManager(path)
	require.NoError(t, err)
	assert.Empty(t, loaded.ListTasks())
}
