package memory

import (
	"context"
	"testing"

	"github.com/rpggio/designboard/internal/domain/board"
	"github.com/rpggio/designboard/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestBoardRepository_SaveGetUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewBoardRepository()

	_, err := repo.Get(ctx)
	require.ErrorIs(t, err, repository.ErrNotFound)
	_, err = repo.Update(ctx, func(*board.Board) error { return nil })
	require.ErrorIs(t, err, repository.ErrNotFound)

	original := &board.Board{
		ProjectID: "proj-001",
		Columns: []board.Column{
			{ID: "todo", Title: "To Do", TaskIDs: []string{"T-01"}},
			{ID: "doing", Title: "In Progress"},
		},
	}
	require.NoError(t, repo.Save(ctx, original))

	original.Columns[0].TaskIDs[0] = "mutated"
	got, err := repo.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"T-01"}, got.Columns[0].TaskIDs)

	updated, err := repo.Update(ctx, func(b *board.Board) error {
		b.Columns[1].TaskIDs = append(b.Columns[1].TaskIDs, "T-02")
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []string{"T-02"}, updated.Columns[1].TaskIDs)

	require.ErrorIs(t, repo.Save(ctx, nil), repository.ErrInvalidInput)
}
