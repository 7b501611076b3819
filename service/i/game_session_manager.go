package i

import (
	"github.com/beka-birhanu/vinom-maze/game"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/google/uuid"
)

// GameSessionManager runs maze sessions on behalf of their owners. Every
// method taking a session ID fails for callers that do not own it.
type GameSessionManager interface {
	// NewSession builds a maze for c and starts ticking it. c.Seed is used
	// only when fixedSeed is true; otherwise a seed is drawn.
	NewSession(owner uuid.UUID, c game.Config, fixedSeed bool) (game.Snapshot, error)

	// Snapshot returns the full state of a session, maze included.
	Snapshot(owner, id uuid.UUID) (game.Snapshot, error)

	// Nudge applies one directional impulse to the ball.
	Nudge(owner, id uuid.UUID, dir maze.Direction) error

	// Reset replaces the session's maze with a fresh one of the same size.
	Reset(owner, id uuid.UUID) (game.Snapshot, error)

	// Hint returns the cells from the ball to the goal.
	Hint(owner, id uuid.UUID) ([]maze.Cell, error)

	// End stops a session and releases it.
	End(owner, id uuid.UUID) error

	// Subscribe streams a frame per tick until cancel is called or the session ends.
	Subscribe(owner, id uuid.UUID) (frames <-chan game.Snapshot, cancel func(), err error)
}
