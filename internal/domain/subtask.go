package domain

import "fmt"

// Subtask is a task owned by exactly one epic. EpicID is required and
// immutable once the subtask is stored.
type Subtask struct {
	Task
	EpicID int
}

// Validate rejects a subtask that references itself as its own epic.
// A zero ID is not yet assigned and cannot collide.
func (s *Subtask) Validate() error {
	if s.ID != 0 && s.ID == s.EpicID {
		return fmt.Errorf("subtask id %d must not equal its epic id", s.ID)
	}
	return nil
}

// Clone returns an independent copy of the subtask.
func (s *Subtask) Clone() *Subtask {
	return &Subtask{Task: *s.Task.Clone(), EpicID: s.EpicID}
}
