package manager

import "github.com/Martinez1337/go-kanban/internal/domain"

// TaskManager is the aggregate store for tasks, epics and subtasks.
// All returned entities are independent copies; mutating them never
// affects stored state. Mutating operations on durable implementations
// additionally persist the whole store before returning.
type TaskManager interface {
	ListTasks() []*domain.Task
	ListEpics() []*domain.Epic
	ListSubtasks() []*domain.Subtask

	// ListEpicSubtasks returns the epic's subtasks in child-list order.
	ListEpicSubtasks(epicID int) ([]*domain.Subtask, error)

	// ListPrioritized returns every scheduled task and subtask ordered
	// by start time, then id. Unscheduled items are excluded.
	ListPrioritized() []*domain.Task

	GetTask(id int) (*domain.Task, error)
	GetEpic(id int) (*domain.Epic, error)
	GetSubtask(id int) (*domain.Subtask, error)

	CreateTask(t *domain.Task) (int, error)
	CreateEpic(e *domain.Epic) (int, error)
	CreateSubtask(s *domain.Subtask) (int, error)

	UpdateTask(t *domain.Task) error
	UpdateEpic(e *domain.Epic) error
	UpdateSubtask(s *domain.Subtask) error

	DeleteTask(id int) error
	DeleteEpic(id int) error
	DeleteSubtask(id int) error

	DeleteAllTasks() error
	DeleteAllEpics() error
	DeleteAllSubtasks() error

	// History returns snapshots of read entities, oldest first.
	History() []*domain.Task
}
