package manager

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Martinez1337/go-kanban/internal/domain"
)

// prioritizedEntry indexes one scheduled task or subtask by its
// half-open time window [start, end).
type prioritizedEntry struct {
	id    int
	kind  domain.TaskKind
	start time.Time
	end   time.Time
}

// InMemoryTaskManager is the sole owner of all entity state and the
// enforcement point for every store invariant: kind-scoped id
// uniqueness, subtask→epic referential integrity, temporal non-overlap
// of scheduled items, and epic field derivation. A single mutex guards
// each public operation end to end.
type InMemoryTaskManager struct {
	mu       sync.Mutex
	tasks    map[int]*domain.Task
	epics    map[int]*domain.Epic
	subtasks map[int]*domain.Subtask

	// prioritized is kept sorted by (start time, id).
	prioritized []prioritizedEntry

	history *HistoryTracker

	// lastID is the highest id ever assigned or observed in this run;
	// the generator hands out lastID+1 and never goes back.
	lastID int
}

var _ TaskManager = (*InMemoryTaskManager)(nil)

func NewInMemoryTaskManager() *InMemoryTaskManager {
	return &InMemoryTaskManager{
		tasks:    make(map[int]*domain.Task),
		epics:    make(map[int]*domain.Epic),
		subtasks: make(map[int]*domain.Subtask),
		history:  NewHistoryTracker(),
	}
}

func (m *InMemoryTaskManager) ListTasks() []*domain.Task {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*domain.Task, 0, len(m.tasks))
	for _, t := range m.tasks {
		out = append(out, t.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *InMemoryTaskManager) ListEpics() []*domain.Epic {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*domain.Epic, 0, len(m.epics))
	for _, e := range m.epics {
		out = append(out, e.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *InMemoryTaskManager) ListSubtasks() []*domain.Subtask {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*domain.Subtask, 0, len(m.subtasks))
	for _, s := range m.subtasks {
		out = append(out, s.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *InMemoryTaskManager) ListEpicSubtasks(epicID int) ([]*domain.Subtask, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.epics[epicID]
	if !ok {
		return nil, fmt.Errorf("epic %d: %w", epicID, ErrNotFound)
	}
	out := make([]*domain.Subtask, 0, len(e.SubtaskIDs))
	for _, id := range e.SubtaskIDs {
		if s, ok := m.subtasks[id]; ok {
			out = append(out, s.Clone())
		}
	}
	return out, nil
}

func (m *InMemoryTaskManager) ListPrioritized() []*domain.Task {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*domain.Task, 0, len(m.prioritized))
	for _, p := range m.prioritized {
		switch p.kind {
		case domain.KindSubtask:
			if s, ok := m.subtasks[p.id]; ok {
				out = append(out, s.Task.Clone())
			}
		default:
			if t, ok := m.tasks[p.id]; ok {
				out = append(out, t.Clone())
			}
		}
	}
	return out
}

func (m *InMemoryTaskManager) GetTask(id int) (*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tasks[id]
	if !ok {
		return nil, fmt.Errorf("task %d: %w", id, ErrNotFound)
	}
	m.history.Record(t)
	return t.Clone(), nil
}

func (m *InMemoryTaskManager) GetEpic(id int) (*domain.Epic, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.epics[id]
	if !ok {
		return nil, fmt.Errorf("epic %d: %w", id, ErrNotFound)
	}
	m.history.Record(&e.Task)
	return e.Clone(), nil
}

func (m *InMemoryTaskManager) GetSubtask(id int) (*domain.Subtask, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.subtasks[id]
	if !ok {
		return nil, fmt.Errorf("subtask %d: %w", id, ErrNotFound)
	}
	m.history.Record(&s.Task)
	return s.Clone(), nil
}

func (m *InMemoryTaskManager) CreateTask(t *domain.Task) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := t.Clone()
	if c.Status == "" {
		c.Status = domain.StatusNew
	}
	if err := validateText("task", c.Name, c.Description); err != nil {
		return 0, err
	}
	id, err := m.takeID(c.ID, "task", func(id int) bool { _, ok := m.tasks[id]; return ok })
	if err != nil {
		return 0, err
	}
	c.ID = id
	if m.overlapping(c, domain.KindTask) {
		return 0, fmt.Errorf("task %q: %w", c.Name, ErrTimeConflict)
	}
	m.tasks[id] = c
	m.addPrioritized(c, domain.KindTask)
	return id, nil
}

// CreateEpic stores a new epic carrying only the caller's name and
// description. Status, duration and time window are derived state and
// any values supplied by the caller are discarded.
func (m *InMemoryTaskManager) CreateEpic(e *domain.Epic) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := validateText("epic", e.Name, e.Description); err != nil {
		return 0, err
	}
	id, err := m.takeID(e.ID, "epic", func(id int) bool { _, ok := m.epics[id]; return ok })
	if err != nil {
		return 0, err
	}
	m.epics[id] = domain.NewEpic(id, e.Name, e.Description)
	return id, nil
}

func (m *InMemoryTaskManager) CreateSubtask(s *domain.Subtask) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := s.Clone()
	if c.Status == "" {
		c.Status = domain.StatusNew
	}
	if err := c.Validate(); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	if err := validateText("subtask", c.Name, c.Description); err != nil {
		return 0, err
	}
	id, err := m.takeID(c.ID, "subtask", func(id int) bool { _, ok := m.subtasks[id]; return ok })
	if err != nil {
		return 0, err
	}
	c.ID = id

	epic, ok := m.epics[c.EpicID]
	if !ok {
		return 0, fmt.Errorf("epic %d: %w", c.EpicID, ErrNotFound)
	}
	if m.overlapping(&c.Task, domain.KindSubtask) {
		return 0, fmt.Errorf("subtask %q: %w", c.Name, ErrTimeConflict)
	}

	m.subtasks[id] = c
	m.addPrioritized(&c.Task, domain.KindSubtask)
	epic.AddSubtaskID(id)
	m.recomputeEpic(epic)
	return id, nil
}

// UpdateTask replaces the stored task wholesale. The id must exist.
func (m *InMemoryTaskManager) UpdateTask(t *domain.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tasks[t.ID]; !ok {
		return fmt.Errorf("task %d: %w", t.ID, ErrNotFound)
	}
	if err := validateText("task", t.Name, t.Description); err != nil {
		return err
	}
	c := t.Clone()
	if c.Status == "" {
		c.Status = domain.StatusNew
	}
	if m.overlapping(c, domain.KindTask) {
		return fmt.Errorf("task %q: %w", c.Name, ErrTimeConflict)
	}
	m.removePrioritized(c.ID, domain.KindTask)
	m.tasks[c.ID] = c
	m.addPrioritized(c, domain.KindTask)
	return nil
}

// UpdateEpic changes only name and description. An unknown id is a
// silent no-op: there is nothing to update and nothing is harmed.
func (m *InMemoryTaskManager) UpdateEpic(e *domain.Epic) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := validateText("epic", e.Name, e.Description); err != nil {
		return err
	}
	if stored, ok := m.epics[e.ID]; ok {
		stored.Name = e.Name
		stored.Description = e.Description
	}
	return nil
}

func (m *InMemoryTaskManager) UpdateSubtask(s *domain.Subtask) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.subtasks[s.ID]
	if !ok {
		return fmt.Errorf("subtask %d: %w", s.ID, ErrNotFound)
	}
	if s.EpicID != stored.EpicID {
		return fmt.Errorf("%w: subtask %d: epic id is immutable", ErrInvalidArgument, s.ID)
	}
	if err := validateText("subtask", s.Name, s.Description); err != nil {
		return err
	}
	c := s.Clone()
	if c.Status == "" {
		c.Status = domain.StatusNew
	}
	if m.overlapping(&c.Task, domain.KindSubtask) {
		return fmt.Errorf("subtask %q: %w", c.Name, ErrTimeConflict)
	}
	m.removePrioritized(c.ID, domain.KindSubtask)
	m.subtasks[c.ID] = c
	m.addPrioritized(&c.Task, domain.KindSubtask)
	m.recomputeEpic(m.epics[c.EpicID])
	return nil
}

// DeleteTask removes the task from storage, history and the priority
// index. A missing id is a no-op.
func (m *InMemoryTaskManager) DeleteTask(id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tasks[id]; !ok {
		return nil
	}
	delete(m.tasks, id)
	m.history.Evict(id)
	m.removePrioritized(id, domain.KindTask)
	return nil
}

// DeleteEpic removes the epic and cascades to every owned subtask.
func (m *InMemoryTaskManager) DeleteEpic(id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.epics[id]
	if !ok {
		return nil
	}
	for _, sid := range e.SubtaskIDs {
		delete(m.subtasks, sid)
		m.history.Evict(sid)
		m.removePrioritized(sid, domain.KindSubtask)
	}
	delete(m.epics, id)
	m.history.Evict(id)
	return nil
}

func (m *InMemoryTaskManager) DeleteSubtask(id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.subtasks[id]
	if !ok {
		return nil
	}
	delete(m.subtasks, id)
	m.history.Evict(id)
	m.removePrioritized(id, domain.KindSubtask)

	if epic, ok := m.epics[s.EpicID]; ok {
		epic.RemoveSubtaskID(id)
		m.recomputeEpic(epic)
	}
	return nil
}

func (m *InMemoryTaskManager) DeleteAllTasks() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id := range m.tasks {
		m.history.Evict(id)
		m.removePrioritized(id, domain.KindTask)
	}
	m.tasks = make(map[int]*domain.Task)
	return nil
}

// DeleteAllEpics clears every epic, and with them every subtask:
// subtasks cannot exist orphaned.
func (m *InMemoryTaskManager) DeleteAllEpics() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id := range m.epics {
		m.history.Evict(id)
	}
	m.epics = make(map[int]*domain.Epic)

	for id := range m.subtasks {
		m.history.Evict(id)
		m.removePrioritized(id, domain.KindSubtask)
	}
	m.subtasks = make(map[int]*domain.Subtask)
	return nil
}

func (m *InMemoryTaskManager) DeleteAllSubtasks() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id := range m.subtasks {
		m.history.Evict(id)
		m.removePrioritized(id, domain.KindSubtask)
	}
	m.subtasks = make(map[int]*domain.Subtask)

	for _, e := range m.epics {
		e.ClearSubtaskIDs()
		m.recomputeEpic(e)
	}
	return nil
}

func (m *InMemoryTaskManager) History() []*domain.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.history.List()
}

// validateText rejects field values the snapshot format cannot carry:
// records are comma separated with no quoting or escaping, so the
// delimiter must never appear in a name or description.
func validateText(kind, name, description string) error {
	if strings.Contains(name, ",") || strings.Contains(description, ",") {
		return fmt.Errorf("%w: %s %q: name and description must not contain a comma", ErrInvalidArgument, kind, name)
	}
	return nil
}

// takeID resolves the id for a new entity: 0 means generate the next
// one; an explicit id must be free within its kind and pushes the
// generator past it so the value is never handed out again.
func (m *InMemoryTaskManager) takeID(requested int, kind string, exists func(int) bool) (int, error) {
	if requested == 0 {
		m.lastID++
		return m.lastID, nil
	}
	if exists(requested) {
		return 0, fmt.Errorf("%s %d: %w", kind, requested, ErrAlreadyExists)
	}
	if requested > m.lastID {
		m.lastID = requested
	}
	return requested, nil
}

// overlapping reports whether t's [start, end) window intersects any
// other indexed item. Two windows overlap iff s1 < e2 && e1 > s2; an
// unscheduled item never overlaps anything. Ids are only unique within
// a kind, so the item's own entry is matched by (id, kind).
func (m *InMemoryTaskManager) overlapping(t *domain.Task, kind domain.TaskKind) bool {
	if t.StartTime == nil {
		return false
	}
	start, end := *t.StartTime, *t.EndTime()
	for _, p := range m.prioritized {
		if p.id == t.ID && p.kind == kind {
			continue
		}
		if start.Before(p.end) && end.After(p.start) {
			return true
		}
	}
	return false
}

func (m *InMemoryTaskManager) addPrioritized(t *domain.Task, kind domain.TaskKind) {
	if t.StartTime == nil {
		return
	}
	e := prioritizedEntry{id: t.ID, kind: kind, start: *t.StartTime, end: *t.EndTime()}
	i := sort.Search(len(m.prioritized), func(i int) bool {
		p := m.prioritized[i]
		if !p.start.Equal(e.start) {
			return p.start.After(e.start)
		}
		return p.id >= e.id
	})
	m.prioritized = append(m.prioritized, prioritizedEntry{})
	copy(m.prioritized[i+1:], m.prioritized[i:])
	m.prioritized[i] = e
}

func (m *InMemoryTaskManager) removePrioritized(id int, kind domain.TaskKind) {
	for i, p := range m.prioritized {
		if p.id == id && p.kind == kind {
			m.prioritized = append(m.prioritized[:i], m.prioritized[i+1:]...)
			return
		}
	}
}

// recomputeEpic rederives the epic's status, duration and time window
// from its current children. NEW with no children; the shared status
// when all children agree on NEW or DONE; IN_PROGRESS otherwise.
// Duration sums positive child durations only; the window spans the
// earliest child start to the latest child end.
func (m *InMemoryTaskManager) recomputeEpic(e *domain.Epic) {
	var n int
	counts := make(map[domain.TaskStatus]int)
	var total time.Duration
	var earliest, latest *time.Time

	for _, id := range e.SubtaskIDs {
		s, ok := m.subtasks[id]
		if !ok {
			continue
		}
		n++
		counts[s.Status]++
		if s.Duration > 0 {
			total += s.Duration
		}
		if s.StartTime != nil {
			if earliest == nil || s.StartTime.Before(*earliest) {
				st := *s.StartTime
				earliest = &st
			}
			end := *s.EndTime()
			if latest == nil || end.After(*latest) {
				latest = &end
			}
		}
	}

	switch {
	case n == 0, counts[domain.StatusNew] == n:
		e.Status = domain.StatusNew
	case counts[domain.StatusDone] == n:
		e.Status = domain.StatusDone
	default:
		e.Status = domain.StatusInProgress
	}

	if n == 0 {
		e.Duration, e.StartTime, e.End = 0, nil, nil
		return
	}
	e.Duration = total
	e.StartTime = earliest
	e.End = latest
}

// snapshot returns id-ordered copies of every collection, for savers.
func (m *InMemoryTaskManager) snapshot() ([]*domain.Task, []*domain.Epic, []*domain.Subtask) {
	return m.ListTasks(), m.ListEpics(), m.ListSubtasks()
}

// restore rebuilds the store from persisted entities. Subtasks are
// attached after all epics are present; a subtask whose epic is absent
// aborts the whole load with ErrCorruptFile. Epic derived fields from
// the persisted data are not trusted and are recomputed from the
// attached children. The id generator resumes past the highest id seen.
func (m *InMemoryTaskManager) restore(tasks []*domain.Task, epics []*domain.Epic, subtasks []*domain.Subtask) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	maxID := 0
	for _, t := range tasks {
		c := t.Clone()
		m.tasks[c.ID] = c
		m.addPrioritized(c, domain.KindTask)
		maxID = max(maxID, c.ID)
	}
	for _, e := range epics {
		m.epics[e.ID] = domain.NewEpic(e.ID, e.Name, e.Description)
		maxID = max(maxID, e.ID)
	}
	for _, s := range subtasks {
		epic, ok := m.epics[s.EpicID]
		if !ok {
			return fmt.Errorf("%w: subtask %d references missing epic %d", ErrCorruptFile, s.ID, s.EpicID)
		}
		c := s.Clone()
		m.subtasks[c.ID] = c
		m.addPrioritized(&c.Task, domain.KindSubtask)
		epic.AddSubtaskID(c.ID)
		maxID = max(maxID, c.ID)
	}
	for _, e := range m.epics {
		m.recomputeEpic(e)
	}
	if maxID > m.lastID {
		m.lastID = maxID
	}
	return nil
}
