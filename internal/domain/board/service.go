package board

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rpggio/designboard/internal/repository"
)

// Service owns column membership and ordering.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new board service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, logger: logger}
}

// Validate checks column identity and the one-slot-per-task rule.
func Validate(b *Board) error {
	if b == nil || len(b.Columns) == 0 {
		return ErrInvalidInput
	}
	columns := make(map[string]struct{}, len(b.Columns))
	placed := make(map[string]struct{})
	for _, col := range b.Columns {
		if strings.TrimSpace(col.ID) == "" || strings.TrimSpace(col.Title) == "" {
			return ErrInvalidInput
		}
		if _, dup := columns[col.ID]; dup {
			return fmt.Errorf("%w: duplicate column %q", ErrInvalidInput, col.ID)
		}
		columns[col.ID] = struct{}{}
		for _, id := range col.TaskIDs {
			if _, dup := placed[id]; dup {
				return fmt.Errorf("%w: %q", ErrDuplicatePlacement, id)
			}
			placed[id] = struct{}{}
		}
	}
	return nil
}

// Initialize stores the starting layout.
func (s *Service) Initialize(ctx context.Context, b *Board) error {
	if err := Validate(b); err != nil {
		return err
	}
	if err := s.repo.Save(ctx, b.Clone()); err != nil {
		return fmt.Errorf("saving board: %w", err)
	}
	return nil
}

// Get returns a snapshot of the board.
func (s *Service) Get(ctx context.Context) (*Board, error) {
	b, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, fmt.Errorf("getting board: %w", err)
	}
	return b, nil
}

// Column returns a column by ID.
func (s *Service) Column(ctx context.Context, columnID string) (*Column, error) {
	b, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	idx := b.columnIndex(columnID)
	if idx < 0 {
		return nil, ErrColumnNotFound
	}
	col := b.Columns[idx]
	return &col, nil
}

// ColumnOf returns the column currently containing taskID.
func (s *Service) ColumnOf(ctx context.Context, taskID string) (*Column, error) {
	b, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	idx, _ := b.placement(taskID)
	if idx < 0 {
		return nil, ErrTaskNotPlaced
	}
	col := b.Columns[idx]
	return &col, nil
}

// MoveTask removes taskID from its column and appends it to the tail of
// targetColumnID. Moving an unplaced task or moving onto the current
// column is a no-op, not an error.
func (s *Service) MoveTask(ctx context.Context, taskID, targetColumnID string) (MoveResult, error) {
	result := MoveResult{Outcome: OutcomeNoOp, ToColumnID: targetColumnID}

	_, err := s.repo.Update(ctx, func(b *Board) error {
		target := b.columnIndex(targetColumnID)
		if target < 0 {
			return ErrColumnNotFound
		}
		result.ToColumnTitle = b.Columns[target].Title

		source, slot := b.placement(taskID)
		if source < 0 {
			result.Reason = ReasonNotPlaced
			return errNoChange
		}
		result.FromColumnID = b.Columns[source].ID
		if source == target {
			result.Reason = ReasonSameColumn
			return errNoChange
		}

		from := b.Columns[source].TaskIDs
		b.Columns[source].TaskIDs = append(from[:slot:slot], from[slot+1:]...)
		b.Columns[target].TaskIDs = append(b.Columns[target].TaskIDs, taskID)
		result.Outcome = OutcomeMoved
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, errNoChange):
			s.logger.Debug("move skipped", "task_id", taskID, "column_id", targetColumnID, "reason", result.Reason)
			return result, nil
		case errors.Is(err, ErrColumnNotFound):
			return MoveResult{}, ErrColumnNotFound
		case errors.Is(err, repository.ErrNotFound):
			return MoveResult{}, ErrBoardNotFound
		default:
			return MoveResult{}, fmt.Errorf("moving task: %w", err)
		}
	}

	s.logger.Info("task moved", "task_id", taskID, "from", result.FromColumnID, "to", result.ToColumnID)
	return result, nil
}
