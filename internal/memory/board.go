package memory

import (
	"context"
	"sync"

	"github.com/rpggio/designboard/internal/domain/board"
	"github.com/rpggio/designboard/internal/repository"
)

// BoardRepository implements board.Repository in process memory.
type BoardRepository struct {
	mu    sync.RWMutex
	board *board.Board
}

// NewBoardRepository creates a BoardRepository with no board.
func NewBoardRepository() *BoardRepository {
	return &BoardRepository{}
}

// Get returns a copy of the board.
func (r *BoardRepository) Get(_ context.Context) (*board.Board, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.board == nil {
		return nil, repository.ErrNotFound
	}
	return r.board.Clone(), nil
}

// Save replaces the stored board.
func (r *BoardRepository) Save(_ context.Context, b *board.Board) error {
	if b == nil {
		return repository.ErrInvalidInput
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.board = b.Clone()
	return nil
}

// Update applies fn to a copy of the board and commits it when fn succeeds.
func (r *BoardRepository) Update(_ context.Context, fn func(*board.Board) error) (*board.Board, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.board == nil {
		return nil, repository.ErrNotFound
	}

	updated := r.board.Clone()
	if err := fn(updated); err != nil {
		return nil, err
	}
	r.board = updated
	return updated.Clone(), nil
}
