package board

import "errors"

var (
	// ErrBoardNotFound indicates no board has been initialized.
	ErrBoardNotFound = errors.New("board not found")
	// ErrColumnNotFound indicates the column doesn't exist.
	ErrColumnNotFound = errors.New("column not found")
	// ErrTaskNotPlaced indicates the task is not in any column.
	ErrTaskNotPlaced = errors.New("task not placed on board")
	// ErrDuplicatePlacement indicates a task ID appears more than once.
	ErrDuplicatePlacement = errors.New("task placed in more than one slot")
	// ErrInvalidInput indicates invalid board input.
	ErrInvalidInput = errors.New("invalid board input")
)

// errNoChange aborts a repository update without committing.
var errNoChange = errors.New("no change")
