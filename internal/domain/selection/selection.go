// Package selection tracks the task currently open in a detail view and
// keeps its snapshot current with the task store.
package selection

import (
	"context"
	"sync"

	"github.com/rpggio/designboard/internal/domain/task"
)

// TaskReader loads a task by ID.
type TaskReader interface {
	Get(ctx context.Context, id string) (*task.Task, error)
}

// Selection holds at most one selected task.
type Selection struct {
	tasks TaskReader

	mu      sync.RWMutex
	current *task.Task
}

// New creates an empty selection. Callers should register Refresh with the
// task service so the snapshot follows every mutation.
func New(tasks TaskReader) *Selection {
	return &Selection{tasks: tasks}
}

// Select opens taskID. The previous selection is kept when the task is unknown.
func (s *Selection) Select(ctx context.Context, taskID string) (*task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, err := s.tasks.Get(ctx, taskID)
	if err != nil {
		return nil, err
	}
	s.current = t
	return t.Clone(), nil
}

// Clear closes the selection.
func (s *Selection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}

// Current returns a copy of the selected task.
func (s *Selection) Current() (*task.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil, false
	}
	return s.current.Clone(), true
}

// Refresh adopts t when it is the selected task and not older than the
// held snapshot.
func (s *Selection) Refresh(t task.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil || s.current.ID != t.ID || t.Revision < s.current.Revision {
		return
	}
	s.current = t.Clone()
}
