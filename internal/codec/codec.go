// Package codec converts single entities to and from the line-oriented
// text format used by the file-backed store. It has no knowledge of the
// store itself and depends only on the domain types.
package codec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Martinez1337/go-kanban/internal/domain"
)

// Header is the first line of every save file. It is written verbatim
// and skipped, never parsed, on load.
const Header = "id,type,name,status,description,duration,startTime,epic"

// timeLayout is the on-disk timestamp format. RFC3339 round-trips
// exactly and is locale-independent.
const timeLayout = time.RFC3339

// nullLiteral marks an absent start time in a record.
const nullLiteral = "null"

// ErrInvalidRecord reports a line that cannot be parsed back into an
// entity: wrong field count, unknown kind or status tag, or an
// unparseable numeric or timestamp field.
var ErrInvalidRecord = errors.New("invalid record")

// Record is the tagged result of decoding one line. Exactly one of
// Task, Epic, Subtask is non-nil, matching Kind.
type Record struct {
	Kind    domain.TaskKind
	Task    *domain.Task
	Epic    *domain.Epic
	Subtask *domain.Subtask
}

// ID returns the id of whichever entity the record holds.
func (r Record) ID() int {
	switch r.Kind {
	case domain.KindEpic:
		return r.Epic.ID
	case domain.KindSubtask:
		return r.Subtask.ID
	default:
		return r.Task.ID
	}
}

// EncodeTask renders a plain task as one record line.
func EncodeTask(t *domain.Task) string {
	return encodeCommon(t, domain.KindTask)
}

// EncodeEpic renders an epic as one record line. The epic's derived
// duration and start time are written as they currently stand; the
// store recomputes them from children on load regardless.
func EncodeEpic(e *domain.Epic) string {
	return encodeCommon(&e.Task, domain.KindEpic)
}

// EncodeSubtask renders a subtask as one record line with the trailing
// epic reference.
func EncodeSubtask(s *domain.Subtask) string {
	return encodeCommon(&s.Task, domain.KindSubtask) + strconv.Itoa(s.EpicID)
}

// encodeCommon writes the shared field prefix, trailing comma included,
// so a subtask line can append its epic id directly. Field values must
// not contain the comma delimiter; the format has no escaping.
func encodeCommon(t *domain.Task, kind domain.TaskKind) string {
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(t.ID))
	sb.WriteByte(',')
	sb.WriteString(string(kind))
	sb.WriteByte(',')
	sb.WriteString(t.Name)
	sb.WriteByte(',')
	sb.WriteString(string(t.Status))
	sb.WriteByte(',')
	sb.WriteString(t.Description)
	sb.WriteByte(',')
	sb.WriteString(strconv.FormatInt(int64(t.Duration/time.Minute), 10))
	sb.WriteByte(',')
	if t.StartTime == nil {
		sb.WriteString(nullLiteral)
	} else {
		sb.WriteString(t.StartTime.Format(timeLayout))
	}
	sb.WriteByte(',')
	return sb.String()
}

// Decode parses one record line into a tagged Record.
func Decode(line string) (Record, error) {
	fields := strings.Split(line, ",")
	if len(fields) < 7 {
		return Record{}, fmt.Errorf("%w: expected at least 7 fields, got %d", ErrInvalidRecord, len(fields))
	}

	id, err := strconv.Atoi(fields[0])
	if err != nil || id < 0 {
		return Record{}, fmt.Errorf("%w: bad id %q", ErrInvalidRecord, fields[0])
	}
	kind, err := domain.ParseKind(fields[1])
	if err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	status, err := domain.ParseStatus(fields[3])
	if err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	minutes, err := strconv.ParseInt(fields[5], 10, 64)
	if err != nil {
		return Record{}, fmt.Errorf("%w: bad duration %q", ErrInvalidRecord, fields[5])
	}

	var start *time.Time
	if raw := fields[6]; raw != "" && raw != nullLiteral {
		t, err := time.Parse(timeLayout, raw)
		if err != nil {
			return Record{}, fmt.Errorf("%w: bad start time %q", ErrInvalidRecord, raw)
		}
		start = &t
	}

	base := domain.Task{
		ID:          id,
		Name:        fields[2],
		Description: fields[4],
		Status:      status,
		Duration:    time.Duration(minutes) * time.Minute,
		StartTime:   start,
	}

	switch kind {
	case domain.KindEpic:
		return Record{Kind: kind, Epic: &domain.Epic{Task: base}}, nil
	case domain.KindSubtask:
		if len(fields) < 8 || fields[7] == "" {
			return Record{}, fmt.Errorf("%w: subtask %d is missing its epic id", ErrInvalidRecord, id)
		}
		epicID, err := strconv.Atoi(fields[7])
		if err != nil {
			return Record{}, fmt.Errorf("%w: bad epic id %q", ErrInvalidRecord, fields[7])
		}
		sub := &domain.Subtask{Task: base, EpicID: epicID}
		if err := sub.Validate(); err != nil {
			return Record{}, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
		}
		return Record{Kind: kind, Subtask: sub}, nil
	default:
		return Record{Kind: kind, Task: &base}, nil
	}
}
