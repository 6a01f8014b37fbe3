package domain

import "time"

// Epic groups subtasks. Its Status, Duration, StartTime and End are
// derived from its children by the store's aggregation and are never
// taken from client input.
type Epic struct {
	Task
	SubtaskIDs []int
	End        *time.Time
}

// NewEpic creates an epic with no children. Derived fields start at
// their empty values: status NEW, zero duration, no time window.
func NewEpic(id int, name, description string) *Epic {
	return &Epic{
		Task: Task{
			ID:          id,
			Name:        name,
			Description: description,
			Status:      StatusNew,
		},
	}
}

// EndTime returns the derived latest child end time, not StartTime+Duration:
// children may leave gaps between each other.
func (e *Epic) EndTime() *time.Time {
	if e.End == nil {
		return nil
	}
	end := *e.End
	return &end
}

// AddSubtaskID appends id to the child list, skipping duplicates and
// the epic's own id.
func (e *Epic) AddSubtaskID(id int) {
	if id == e.ID {
		return
	}
	for _, existing := range e.SubtaskIDs {
		if existing == id {
			return
		}
	}
	e.SubtaskIDs = append(e.SubtaskIDs, id)
}

// RemoveSubtaskID removes id from the child list if present.
func (e *Epic) RemoveSubtaskID(id int) {
	for i, existing := range e.SubtaskIDs {
		if existing == id {
			e.SubtaskIDs = append(e.SubtaskIDs[:i], e.SubtaskIDs[i+1:]...)
			return
		}
	}
}

// ClearSubtaskIDs drops all children and resets the derived time fields.
func (e *Epic) ClearSubtaskIDs() {
	e.SubtaskIDs = nil
	e.Duration = 0
	e.StartTime = nil
	e.End = nil
}

// Clone returns an independent copy of the epic, child list included.
func (e *Epic) Clone() *Epic {
	c := Epic{Task: *e.Task.Clone()}
	if e.SubtaskIDs != nil {
		c.SubtaskIDs = append([]int(nil), e.SubtaskIDs...)
	}
	if e.End != nil {
		end := *e.End
		c.End = &end
	}
	return &c
}
