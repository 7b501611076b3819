package i

import (
	"context"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/google/uuid"
)

// Leaderboard keeps each player's best completion time per board.
type Leaderboard interface {
	// Record stores ticks for player if it beats their previous best and
	// reports whether it did.
	Record(ctx context.Context, board string, player uuid.UUID, ticks int64) (bool, error)

	// Top returns up to n entries, fastest first.
	Top(ctx context.Context, board string, n int64) ([]dmn.LeaderboardEntry, error)
}
