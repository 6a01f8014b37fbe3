package manager

import (
	"sync"

	"github.com/Martinez1337/go-kanban/internal/domain"
)

// SnapshotStore persists one full image of the store. Every mutation
// rewrites everything; there are no incremental appends.
type SnapshotStore interface {
	Save(tasks []*domain.Task, epics []*domain.Epic, subtasks []*domain.Subtask) error
}

// PersistentTaskManager decorates an InMemoryTaskManager so every
// successful mutation is followed by a full save through the backing
// SnapshotStore. A save failure is returned to the caller; the
// in-memory mutation is not rolled back, so memory and the backing
// store may diverge until the next successful save.
type PersistentTaskManager struct {
	*InMemoryTaskManager

	// mu serializes mutation+save pairs so a slow save cannot
	// interleave with a later mutation's snapshot.
	mu    sync.Mutex
	store SnapshotStore
}

var _ TaskManager = (*PersistentTaskManager)(nil)

func newPersistentTaskManager(inner *InMemoryTaskManager, store SnapshotStore) *PersistentTaskManager {
	return &PersistentTaskManager{InMemoryTaskManager: inner, store: store}
}

func (p *PersistentTaskManager) flush() error {
	tasks, epics, subtasks := p.snapshot()
	return p.store.Save(tasks, epics, subtasks)
}

func (p *PersistentTaskManager) CreateTask(t *domain.Task) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	id, err := p.InMemoryTaskManager.CreateTask(t)
	if err != nil {
		return 0, err
	}
	return id, p.flush()
}

func (p *PersistentTaskManager) CreateEpic(e *domain.Epic) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	id, err := p.InMemoryTaskManager.CreateEpic(e)
	if err != nil {
		return 0, err
	}
	return id, p.flush()
}

func (p *PersistentTaskManager) CreateSubtask(s *domain.Subtask) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	id, err := p.InMemoryTaskManager.CreateSubtask(s)
	if err != nil {
		return 0, err
	}
	return id, p.flush()
}

func (p *PersistentTaskManager) UpdateTask(t *domain.Task) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.InMemoryTaskManager.UpdateTask(t); err != nil {
		return err
	}
	return p.flush()
}

func (p *PersistentTaskManager) UpdateEpic(e *domain.Epic) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.InMemoryTaskManager.UpdateEpic(e); err != nil {
		return err
	}
	return p.flush()
}

func (p *PersistentTaskManager) UpdateSubtask(s *domain.Subtask) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.InMemoryTaskManager.UpdateSubtask(s); err != nil {
		return err
	}
	return p.flush()
}

func (p *PersistentTaskManager) DeleteTask(id int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.InMemoryTaskManager.DeleteTask(id); err != nil {
		return err
	}
	return p.flush()
}

func (p *PersistentTaskManager) DeleteEpic(id int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.InMemoryTaskManager.DeleteEpic(id); err != nil {
		return err
	}
	return p.flush()
}

func (p *PersistentTaskManager) DeleteSubtask(id int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.InMemoryTaskManager.DeleteSubtask(id); err != nil {
		return err
	}
	return p.flush()
}

func (p *PersistentTaskManager) DeleteAllTasks() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.InMemoryTaskManager.DeleteAllTasks(); err != nil {
		return err
	}
	return p.flush()
}

func (p *PersistentTaskManager) DeleteAllEpics() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.InMemoryTaskManager.DeleteAllEpics(); err != nil {
		return err
	}
	return p.flush()
}

func (p *PersistentTaskManager) DeleteAllSubtasks() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.InMemoryTaskManager.DeleteAllSubtasks(); err != nil {
		return err
	}
	return p.flush()
}
