// Package memory holds the process-lifetime repositories behind the board
// engine. Nothing here survives a restart.
package memory

// Store groups the repositories used by one board.
type Store struct {
	Tasks  *TaskRepository
	Boards *BoardRepository
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		Tasks:  NewTaskRepository(),
		Boards: NewBoardRepository(),
	}
}
