package board

import "context"

// Repository provides storage for the board layout.
type Repository interface {
	Get(ctx context.Context) (*Board, error)
	Save(ctx context.Context, b *Board) error
	Update(ctx context.Context, fn func(*Board) error) (*Board, error)
}
