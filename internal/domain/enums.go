package domain

import (
	"fmt"
	"strings"
)

type TaskStatus string

const (
	StatusNew        TaskStatus = "NEW"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusDone       TaskStatus = "DONE"
)

// ValidStatuses is the canonical set of accepted task status strings.
var ValidStatuses = map[TaskStatus]bool{
	StatusNew: true, StatusInProgress: true, StatusDone: true,
}

// ParseStatus converts a stored status string into a TaskStatus.
// Matching is case-insensitive; stored form is upper-case.
func ParseStatus(s string) (TaskStatus, error) {
	st := TaskStatus(strings.ToUpper(s))
	if !ValidStatuses[st] {
		return "", fmt.Errorf("unknown task status %q", s)
	}
	return st, nil
}

type TaskKind string

const (
	KindTask    TaskKind = "TASK"
	KindEpic    TaskKind = "EPIC"
	KindSubtask TaskKind = "SUBTASK"
)

// ParseKind converts a stored kind tag into a TaskKind, case-insensitively.
func ParseKind(s string) (TaskKind, error) {
	switch k := TaskKind(strings.ToUpper(s)); k {
	case KindTask, KindEpic, KindSubtask:
		return k, nil
	default:
		return "", fmt.Errorf("unknown task kind %q", s)
	}
}
