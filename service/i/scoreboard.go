package i

import (
	"context"

	dmn "github.com/beka-birhanu/vinom-mouse/domain"
)

// Scoreboard ranks the best replay of every algorithm per maze dimension.
type Scoreboard interface {
	// Record keeps score when it beats the algorithm's current best for its dimension.
	Record(ctx context.Context, score dmn.Score) error

	// Top returns up to n entries for dim, fastest first.
	Top(ctx context.Context, dim int, n int64) ([]dmn.Score, error)
}
