package server

import (
	"fmt"
	"time"

	"github.com/Martinez1337/go-kanban/internal/domain"
)

// timeLayout is the wire format for timestamps, minute precision.
const timeLayout = "15:04 02.01.2006"

// taskPayload is the JSON shape shared by all three entity kinds.
// Durations travel as whole minutes and an absent startTime means the
// item is unscheduled.
type taskPayload struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status,omitempty"`
	Duration    int64  `json:"duration"`
	StartTime   string `json:"startTime,omitempty"`
	EndTime     string `json:"endTime,omitempty"`
}

type subtaskPayload struct {
	taskPayload
	EpicID int `json:"epicId"`
}

type epicPayload struct {
	taskPayload
	SubtaskIDs []int `json:"subtaskIds"`
}

type errorPayload struct {
	Error string `json:"error"`
}

func fromTask(t *domain.Task) taskPayload {
	p := taskPayload{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Status:      string(t.Status),
		Duration:    int64(t.Duration / time.Minute),
	}
	if t.StartTime != nil {
		p.StartTime = t.StartTime.Format(timeLayout)
	}
	if end := t.EndTime(); end != nil {
		p.EndTime = end.Format(timeLayout)
	}
	return p
}

func fromSubtask(s *domain.Subtask) subtaskPayload {
	return subtaskPayload{taskPayload: fromTask(&s.Task), EpicID: s.EpicID}
}

func fromEpic(e *domain.Epic) epicPayload {
	p := epicPayload{taskPayload: fromTask(&e.Task), SubtaskIDs: e.SubtaskIDs}
	if p.SubtaskIDs == nil {
		p.SubtaskIDs = []int{}
	}
	if end := e.EndTime(); end != nil {
		p.EndTime = end.Format(timeLayout)
	}
	return p
}

func fromTasks(ts []*domain.Task) []taskPayload {
	out := make([]taskPayload, 0, len(ts))
	for _, t := range ts {
		out = append(out, fromTask(t))
	}
	return out
}

func fromSubtasks(ss []*domain.Subtask) []subtaskPayload {
	out := make([]subtaskPayload, 0, len(ss))
	for _, s := range ss {
		out = append(out, fromSubtask(s))
	}
	return out
}

func fromEpics(es []*domain.Epic) []epicPayload {
	out := make([]epicPayload, 0, len(es))
	for _, e := range es {
		out = append(out, fromEpic(e))
	}
	return out
}

func (p taskPayload) toTask() (*domain.Task, error) {
	t := &domain.Task{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Duration:    time.Duration(p.Duration) * time.Minute,
	}
	if p.Status != "" {
		status, err := domain.ParseStatus(p.Status)
		if err != nil {
			return nil, err
		}
		t.Status = status
	}
	if p.StartTime != "" {
		start, err := time.Parse(timeLayout, p.StartTime)
		if err != nil {
			return nil, fmt.Errorf("bad startTime %q, want %q", p.StartTime, timeLayout)
		}
		t.StartTime = &start
	}
	return t, nil
}

func (p subtaskPayload) toSubtask() (*domain.Subtask, error) {
	base, err := p.toTask()
	if err != nil {
		return nil, err
	}
	return &domain.Subtask{Task: *base, EpicID: p.EpicID}, nil
}

func (p epicPayload) toEpic() (*domain.Epic, error) {
	base, err := p.toTask()
	if err != nil {
		return nil, err
	}
	return &domain.Epic{Task: *base}, nil
}
