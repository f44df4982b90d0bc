package mocks

import (
	"context"

	"github.com/rpggio/designboard/internal/domain/board"
	"github.com/rpggio/designboard/internal/domain/task"
	"github.com/stretchr/testify/mock"
)

var (
	_ task.Repository  = (*TaskRepository)(nil)
	_ board.Repository = (*BoardRepository)(nil)
)

// TaskRepository is a mock for task.Repository.
//
// Update is expected as Update(ctx, id); the returned task is treated as the
// stored value and fn is applied to a copy of it, so service logic inside fn
// still runs.
type TaskRepository struct {
	mock.Mock
}

func (m *TaskRepository) Create(ctx context.Context, t *task.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *TaskRepository) Get(ctx context.Context, id string) (*task.Task, error) {
	args := m.Called(ctx, id)
	if t, ok := args.Get(0).(*task.Task); ok {
		return t.Clone(), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskRepository) List(ctx context.Context) ([]task.Task, error) {
	args := m.Called(ctx)
	if tasks, ok := args.Get(0).([]task.Task); ok {
		return tasks, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskRepository) Update(ctx context.Context, id string, fn func(*task.Task) error) (*task.Task, error) {
	args := m.Called(ctx, id)
	if err := args.Error(1); err != nil {
		return nil, err
	}
	current, ok := args.Get(0).(*task.Task)
	if !ok {
		return nil, nil
	}
	updated := current.Clone()
	if err := fn(updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// BoardRepository is a mock for board.Repository with the same Update
// convention as TaskRepository.
type BoardRepository struct {
	mock.Mock
}

func (m *BoardRepository) Get(ctx context.Context) (*board.Board, error) {
	args := m.Called(ctx)
	if b, ok := args.Get(0).(*board.Board); ok {
		return b.Clone(), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *BoardRepository) Save(ctx context.Context, b *board.Board) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *BoardRepository) Update(ctx context.Context, fn func(*board.Board) error) (*board.Board, error) {
	args := m.Called(ctx)
	if err := args.Error(1); err != nil {
		return nil, err
	}
	current, ok := args.Get(0).(*board.Board)
	if !ok {
		return nil, nil
	}
	updated := current.Clone()
	if err := fn(updated); err != nil {
		return nil, err
	}
	return updated, nil
}
