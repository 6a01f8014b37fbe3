package domain

import "time"

// Task is an atomic work item. A zero Duration means "no duration";
// a nil StartTime means the task is not scheduled and never takes part
// in overlap checks.
type Task struct {
	ID          int
	Name        string
	Description string
	Status      TaskStatus
	Duration    time.Duration
	StartTime   *time.Time
}

// EndTime returns StartTime + Duration, or nil when the task is unscheduled.
func (t *Task) EndTime() *time.Time {
	if t.StartTime == nil {
		return nil
	}
	end := t.StartTime.Add(t.Duration)
	return &end
}

// Clone returns an independent copy of the task.
func (t *Task) Clone() *Task {
	c := *t
	if t.StartTime != nil {
		st := *t.StartTime
		c.StartTime = &st
	}
	return &c
}
