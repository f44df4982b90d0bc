package memory

import (
	"context"
	"sync"

	"github.com/rpggio/designboard/internal/domain/task"
	"github.com/rpggio/designboard/internal/repository"
)

// TaskRepository implements task.Repository in process memory.
type TaskRepository struct {
	mu    sync.RWMutex
	tasks map[string]*task.Task
}

// NewTaskRepository creates an empty TaskRepository.
func NewTaskRepository() *TaskRepository {
	return &TaskRepository{tasks: make(map[string]*task.Task)}
}

// Create stores a new task.
func (r *TaskRepository) Create(_ context.Context, t *task.Task) error {
	if t == nil || t.ID == "" {
		return repository.ErrInvalidInput
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tasks[t.ID]; exists {
		return repository.ErrAlreadyExists
	}
	r.tasks[t.ID] = t.Clone()
	return nil
}

// Get returns a copy of the stored task.
func (r *TaskRepository) Get(_ context.Context, id string) (*task.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tasks[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return t.Clone(), nil
}

// List returns copies of all stored tasks in no particular order.
func (r *TaskRepository) List(_ context.Context) ([]task.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]task.Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		out = append(out, *t.Clone())
	}
	return out, nil
}

// Update applies fn to a copy of the task and commits it when fn succeeds.
func (r *TaskRepository) Update(_ context.Context, id string, fn func(*task.Task) error) (*task.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.tasks[id]
	if !ok {
		return nil, repository.ErrNotFound
	}

	updated := current.Clone()
	if err := fn(updated); err != nil {
		return nil, err
	}
	updated.ID = current.ID
	r.tasks[id] = updated
	return updated.Clone(), nil
}
