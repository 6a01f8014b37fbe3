package manager

import (
	"fmt"
	"os"
	"strings"

	"github.com/Martinez1337/go-kanban/internal/codec"
	"github.com/Martinez1337/go-kanban/internal/domain"
)

// fileStore writes the whole store as one text file: a header line,
// then all tasks, all epics, all subtasks, one record per line.
type fileStore struct {
	path string
}

func (f fileStore) Save(tasks []*domain.Task, epics []*domain.Epic, subtasks []*domain.Subtask) error {
	var sb strings.Builder
	sb.WriteString(codec.Header)
	sb.WriteByte('\n')
	for _, t := range tasks {
		sb.WriteString(codec.EncodeTask(t))
		sb.WriteByte('\n')
	}
	for _, e := range epics {
		sb.WriteString(codec.EncodeEpic(e))
		sb.WriteByte('\n')
	}
	for _, s := range subtasks {
		sb.WriteString(codec.EncodeSubtask(s))
		sb.WriteByte('\n')
	}
	if err := os.WriteFile(f.path, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("%w: writing %s: %v", ErrPersistence, f.path, err)
	}
	return nil
}

// NewFileBackedTaskManager returns an empty store that rewrites the
// file at path after every successful mutation.
func NewFileBackedTaskManager(path string) *PersistentTaskManager {
	return newPersistentTaskManager(NewInMemoryTaskManager(), fileStore{path: path})
}

// LoadFileBackedTaskManager rebuilds a store from the file at path. A
// missing file yields an empty store bound to that path; an unreadable
// or unparsable file, or a subtask whose epic is not in the file, fails
// the load outright.
func LoadFileBackedTaskManager(path string) (*PersistentTaskManager, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return NewFileBackedTaskManager(path), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrPersistence, path, err)
	}

	var (
		tasks    []*domain.Task
		epics    []*domain.Epic
		subtasks []*domain.Subtask
	)
	lines := strings.Split(string(data), "\n")
	for i, line := range lines {
		if i == 0 || strings.TrimSpace(line) == "" {
			continue // header, blank lines
		}
		rec, err := codec.Decode(line)
		if err != nil {
			return nil, fmt.Errorf("%w: %s line %d: %v", ErrInvalidArgument, path, i+1, err)
		}
		switch rec.Kind {
		case domain.KindEpic:
			epics = append(epics, rec.Epic)
		case domain.KindSubtask:
			subtasks = append(subtasks, rec.Subtask)
		default:
			tasks = append(tasks, rec.Task)
		}
	}

	inner := NewInMemoryTaskManager()
	if err := inner.restore(tasks, epics, subtasks); err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return newPersistentTaskManager(inner, fileStore{path: path}), nil
}
