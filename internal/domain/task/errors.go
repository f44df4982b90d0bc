package task

import "errors"

var (
	// ErrTaskNotFound indicates the task doesn't exist.
	ErrTaskNotFound = errors.New("task not found")
	// ErrTaskExists indicates a task with the same ID is already stored.
	ErrTaskExists = errors.New("task already exists")
	// ErrInvalidInput indicates invalid input for a task mutation.
	ErrInvalidInput = errors.New("invalid task input")
)
