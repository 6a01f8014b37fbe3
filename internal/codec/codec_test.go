package codec

import (
	"testing"
	"time"

	"github.com/Martinez1337/go-kanban/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var codecStart = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func TestEncodeTask_Unscheduled(t *testing.T) {
	task := &domain.Task{ID: 1, Name: "Task1", Description: "Desc1", Status: domain.StatusNew}
	assert.Equal(t, "1,TASK,Task1,NEW,Desc1,0,null,", EncodeTask(task))
}

func TestEncodeSubtask_TrailingEpicID(t *testing.T) {
	sub := &domain.Subtask{
		Task: domain.Task{
			ID: 3, Name: "Sub1", Description: "DescSub",
			Status: domain.StatusDone, Duration: 10 * time.Minute,
		},
		EpicID: 2,
	}
	assert.Equal(t, "3,SUBTASK,Sub1,DONE,DescSub,10,null,2", EncodeSubtask(sub))
}

func TestRoundTrip_ScheduledTask(t *testing.T) {
	task := &domain.Task{
		ID: 7, Name: "Review", Description: "PR review",
		Status: domain.StatusInProgress, Duration: 45 * time.Minute, StartTime: &codecStart,
	}

	rec, err := Decode(EncodeTask(task))
	require.NoError(t, err)
	assert.Equal(t, domain.KindTask, rec.Kind)
	require.NotNil(t, rec.Task)
	assert.Equal(t, task.ID, rec.Task.ID)
	assert.Equal(t, task.Name, rec.Task.Name)
	assert.Equal(t, task.Status, rec.Task.Status)
	assert.Equal(t, task.Duration, rec.Task.Duration)
	require.NotNil(t, rec.Task.StartTime)
	assert.True(t, task.StartTime.Equal(*rec.Task.StartTime), "start time must round-trip exactly")
}

func TestRoundTrip_Epic(t *testing.T) {
	epic := domain.NewEpic(2, "Epic1", "DescEpic")

	rec, err := Decode(EncodeEpic(epic))
	require.NoError(t, err)
	assert.Equal(t, domain.KindEpic, rec.Kind)
	require.NotNil(t, rec.Epic)
	assert.Equal(t, 2, rec.Epic.ID)
	assert.Equal(t, "Epic1", rec.Epic.Name)
	assert.Nil(t, rec.Epic.StartTime)
}

func TestRoundTrip_Subtask(t *testing.T) {
	sub := &domain.Subtask{
		Task: domain.Task{
			ID: 3, Name: "Sub1", Description: "DescSub",
			Status: domain.StatusDone, Duration: 10 * time.Minute, StartTime: &codecStart,
		},
		EpicID: 2,
	}

	rec, err := Decode(EncodeSubtask(sub))
	require.NoError(t, err)
	assert.Equal(t, domain.KindSubtask, rec.Kind)
	require.NotNil(t, rec.Subtask)
	assert.Equal(t, 2, rec.Subtask.EpicID)
	assert.Equal(t, 3, rec.ID())
}

func TestDecode_CaseInsensitiveKind(t *testing.T) {
	rec, err := Decode("1,task,Task1,new,Desc1,0,null,")
	require.NoError(t, err)
	assert.Equal(t, domain.KindTask, rec.Kind)
	assert.Equal(t, domain.StatusNew, rec.Task.Status)
}

func TestDecode_Invalid(t *testing.T) {
	cases := []struct {
		name string
		line string
	}{
		{"too few fields", "1,TASK,Task1"},
		{"bad id", "x,TASK,Task1,NEW,Desc,0,null,"},
		{"unknown kind", "1,STORY,Task1,NEW,Desc,0,null,"},
		{"unknown status", "1,TASK,Task1,WAITING,Desc,0,null,"},
		{"bad duration", "1,TASK,Task1,NEW,Desc,ten,null,"},
		{"bad start time", "1,TASK,Task1,NEW,Desc,10,yesterday,"},
		{"subtask without epic", "3,SUBTASK,Sub1,NEW,Desc,10,null,"},
		{"subtask bad epic id", "3,SUBTASK,Sub1,NEW,Desc,10,null,x"},
		{"self-referential subtask", "5,SUBTASK,Sub1,NEW,Desc,10,null,5"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(tc.line)
			assert.ErrorIs(t, err, ErrInvalidRecord)
		})
	}
}
