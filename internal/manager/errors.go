package manager

import "errors"

var (
	// ErrNotFound indicates a lookup by id for an entity that does not
	// exist in its kind's collection, or a subtask referencing an
	// unknown epic.
	ErrNotFound = errors.New("not found")

	// ErrTimeConflict indicates a scheduled task or subtask would
	// overlap an already stored one.
	ErrTimeConflict = errors.New("overlaps an existing task")

	// ErrAlreadyExists indicates a caller-supplied id collides with an
	// existing entity of the same kind on create.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidArgument indicates caller input that can never be
	// stored: a self-referential subtask or an attempt to move a
	// subtask to a different epic.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrPersistence indicates an I/O failure while saving or loading
	// a durable store.
	ErrPersistence = errors.New("persistence failure")

	// ErrCorruptFile indicates a persisted subtask references an epic
	// absent from the same file. Loading aborts; no partial store is
	// returned.
	ErrCorruptFile = errors.New("corrupt save data")
)
