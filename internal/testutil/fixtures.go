// Package testutil provides entity factories shared by tests.
package testutil

import (
	"time"

	"github.com/Martinez1337/go-kanban/internal/domain"
)

// TaskOption mutates a task under construction.
type TaskOption func(*domain.Task)

func WithID(id int) TaskOption {
	return func(t *domain.Task) { t.ID = id }
}

func WithStatus(s domain.TaskStatus) TaskOption {
	return func(t *domain.Task) { t.Status = s }
}

func WithDuration(d time.Duration) TaskOption {
	return func(t *domain.Task) { t.Duration = d }
}

// WithSchedule sets both the start time and the duration, giving the
// task a concrete [start, start+d) window.
func WithSchedule(start time.Time, d time.Duration) TaskOption {
	return func(t *domain.Task) {
		st := start
		t.StartTime = &st
		t.Duration = d
	}
}

// NewTask builds a plain task with no id, NEW status and no schedule
// unless options say otherwise.
func NewTask(name string, opts ...TaskOption) *domain.Task {
	t := &domain.Task{Name: name, Description: name + " description", Status: domain.StatusNew}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// NewEpic builds an unstored epic carrying only name and description.
func NewEpic(name string) *domain.Epic {
	return domain.NewEpic(0, name, name+" description")
}

// NewSubtask builds a subtask bound to epicID.
func NewSubtask(epicID int, name string, opts ...TaskOption) *domain.Subtask {
	s := &domain.Subtask{
		Task:   domain.Task{Name: name, Description: name + " description", Status: domain.StatusNew},
		EpicID: epicID,
	}
	for _, opt := range opts {
		opt(&s.Task)
	}
	return s
}
