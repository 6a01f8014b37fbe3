// Package formatter renders store entities for terminal output.
package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/Martinez1337/go-kanban/internal/domain"
)

const displayTimeLayout = "15:04 02.01.2006"

// Plain disables all styling, for pipes and dumb terminals.
var Plain bool

func render(style func() string, plain string) string {
	if Plain {
		return plain
	}
	return style()
}

// Window formats the scheduled slot of a task, or a dash when the
// task is unscheduled.
func Window(t *domain.Task) string {
	if t.StartTime == nil {
		return "-"
	}
	out := t.StartTime.Format(displayTimeLayout)
	if end := t.EndTime(); end != nil && t.Duration > 0 {
		out += " .. " + end.Format(displayTimeLayout)
	}
	return out
}

// TaskLine renders a single one-line summary of a task.
func TaskLine(t *domain.Task) string {
	status := render(func() string { return StatusIndicator(t.Status) }, string(t.Status))
	id := render(func() string { return StyleDim.Render(fmt.Sprintf("#%d", t.ID)) }, fmt.Sprintf("#%d", t.ID))
	name := render(func() string { return StyleFg.Render(t.Name) }, t.Name)
	return fmt.Sprintf("%s  %-14s %s  %s", id, status, name, Window(t))
}

// SubtaskLine renders a subtask with its parent reference.
func SubtaskLine(s *domain.Subtask) string {
	parent := fmt.Sprintf("(epic #%d)", s.EpicID)
	return TaskLine(&s.Task) + "  " + render(func() string { return StyleDim.Render(parent) }, parent)
}

// EpicBlock renders an epic headline followed by duration and child count.
func EpicBlock(e *domain.Epic) string {
	var b strings.Builder
	b.WriteString(TaskLine(&e.Task))
	detail := fmt.Sprintf("    %d subtasks, %s total", len(e.SubtaskIDs), FormatDuration(e.Duration))
	b.WriteString("\n")
	b.WriteString(render(func() string { return StyleDim.Render(detail) }, detail))
	return b.String()
}

// Header renders a section title.
func Header(title string) string {
	return render(func() string { return StyleHeader.Render(strings.ToUpper(title)) }, strings.ToUpper(title))
}

// FormatDuration prints a duration in compact h/m form.
func FormatDuration(d time.Duration) string {
	if d == 0 {
		return "0m"
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh%02dm", h, m)
	}
}
