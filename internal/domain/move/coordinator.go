// Package move carries a task from one column to another and keeps the
// task's status in step with the column it lands in.
package move

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rpggio/designboard/internal/domain/board"
	"github.com/rpggio/designboard/internal/domain/task"
)

// BoardLayout is the part of the board service the coordinator needs.
type BoardLayout interface {
	ColumnOf(ctx context.Context, taskID string) (*board.Column, error)
	MoveTask(ctx context.Context, taskID, targetColumnID string) (board.MoveResult, error)
}

// TaskStore is the part of the task service the coordinator needs.
type TaskStore interface {
	Get(ctx context.Context, id string) (*task.Task, error)
	SetStatus(ctx context.Context, id, status string) (*task.Task, error)
}

// Result is the outcome of a drop. Task is nil for no-ops.
type Result struct {
	board.MoveResult
	Task *task.Task `json:"task,omitempty"`
}

// Coordinator validates and executes drag-and-drop moves.
type Coordinator struct {
	boards BoardLayout
	tasks  TaskStore
	logger *slog.Logger
}

// NewCoordinator creates a new move coordinator.
func NewCoordinator(boards BoardLayout, tasks TaskStore, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Coordinator{boards: boards, tasks: tasks, logger: logger}
}

// Move drops taskID onto targetColumnID. The task's status becomes the
// target column's title as of the move; later column renames do not touch it.
func (c *Coordinator) Move(ctx context.Context, taskID, targetColumnID string) (Result, error) {
	source, err := c.boards.ColumnOf(ctx, taskID)
	if err != nil {
		if errors.Is(err, board.ErrTaskNotPlaced) {
			return Result{MoveResult: board.MoveResult{
				Outcome:    board.OutcomeNoOp,
				Reason:     board.ReasonNotPlaced,
				ToColumnID: targetColumnID,
			}}, nil
		}
		return Result{}, err
	}
	if source.ID == targetColumnID {
		return Result{MoveResult: board.MoveResult{
			Outcome:      board.OutcomeNoOp,
			Reason:       board.ReasonSameColumn,
			FromColumnID: source.ID,
			ToColumnID:   targetColumnID,
		}}, nil
	}

	// A placed ID without a task record would leave status and placement
	// disagreeing, so refuse before touching the board.
	if _, err := c.tasks.Get(ctx, taskID); err != nil {
		return Result{}, err
	}

	moved, err := c.boards.MoveTask(ctx, taskID, targetColumnID)
	if err != nil {
		return Result{}, err
	}
	if !moved.Moved() {
		return Result{MoveResult: moved}, nil
	}

	updated, err := c.tasks.SetStatus(ctx, taskID, moved.ToColumnTitle)
	if err != nil {
		return Result{}, fmt.Errorf("syncing status after move: %w", err)
	}

	c.logger.Info("task status synced", "task_id", taskID, "status", updated.Status)
	return Result{MoveResult: moved, Task: updated}, nil
}
