package task

import "context"

// Repository provides storage for task records.
//
// Update must run fn against a private copy of the stored task and commit
// the copy only when fn returns nil; the whole read-modify-write is one
// critical section.
type Repository interface {
	Create(ctx context.Context, t *Task) error
	Get(ctx context.Context, id string) (*Task, error)
	List(ctx context.Context) ([]Task, error)
	Update(ctx context.Context, id string, fn func(*Task) error) (*Task, error)
}
