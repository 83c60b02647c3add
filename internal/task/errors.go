package task

import "errors"

// Sentinel errors returned by the engine's public operations. Callers
// match them with errors.Is to choose a user-facing message; none of
// them is fatal and a failed operation leaves both the in-memory state
// and the store file untouched.
var (
	// ErrEmptyName rejects a blank or whitespace-only task name.
	ErrEmptyName = errors.New("task name must not be empty")

	// ErrInvalidDate rejects a due date that does not parse as
	// YYYY-MM-DD.
	ErrInvalidDate = errors.New("due date must use the YYYY-MM-DD format")

	// ErrDuplicate rejects adding a name that is already active.
	ErrDuplicate = errors.New("task already exists")

	// ErrNotFound reports an operation on a name with no active task.
	ErrNotFound = errors.New("task not found")

	// ErrCorruptStore reports an unreadable store file. The manager
	// recovers by starting from an empty state.
	ErrCorruptStore = errors.New("store file is corrupt")
)
