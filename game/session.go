package game

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/beka-birhanu/vinom-maze/layout"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/physics"
	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r2"
)

// Game-related errors.
var (
	ErrInvalidDimension = errors.New("cell counts must be positive")
	ErrInvalidWorldSize = errors.New("world size must be positive")
)

// Game constants for configuration and input.
const (
	DefaultCells  = 14  // Default cells per axis.
	DefaultWidth  = 840 // Default world width in units.
	DefaultHeight = 840 // Default world height in units.

	ImpulseStep = 2.0 // Velocity change per directional input.

	wallStyle     = "red"
	goalStyle     = "green"
	boundaryStyle = "gray"
)

// Config describes a new session.
type Config struct {
	ID              uuid.UUID // Session ID, generated when nil.
	CellsHorizontal int       // Columns of the maze.
	CellsVertical   int       // Rows of the maze.
	Width           float64   // World width, DefaultWidth when zero.
	Height          float64   // World height, DefaultHeight when zero.
	Seed            int64     // Seed for maze generation.
}

// Session is one play-through of one maze. It owns the physics world and every
// body in it until the session is discarded.
type Session struct {
	id        uuid.UUID
	config    Config
	maze      *maze.Maze
	layout    *layout.Layout
	world     *physics.World
	ball      *physics.Body
	won       bool
	wonAtTick int64
	justWon   bool
	sync.Mutex
}

// New generates a maze for c, lays it out and populates a fresh world.
func New(c Config) (*Session, error) {
	if c.CellsHorizontal < 1 || c.CellsVertical < 1 {
		return nil, ErrInvalidDimension
	}
	if c.Width == 0 {
		c.Width = DefaultWidth
	}
	if c.Height == 0 {
		c.Height = DefaultHeight
	}
	if c.Width < 0 || c.Height < 0 {
		return nil, ErrInvalidWorldSize
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}

	m, err := maze.Generate(c.CellsVertical, c.CellsHorizontal, maze.NewSource(c.Seed))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDimension, err)
	}

	l, err := layout.Build(m, c.Width, c.Height)
	if err != nil {
		return nil, err
	}

	s := &Session{
		id:     c.ID,
		config: c,
		maze:   m,
		layout: l,
		world:  physics.NewWorld(),
	}
	s.populate()
	return s, nil
}

// populate adds every layout body to the world and hooks the win check.
func (s *Session) populate() {
	for _, b := range s.layout.Boundaries {
		s.world.Add(physics.NewStaticRect(b.Center, b.Width, b.Height, string(b.Kind), boundaryStyle))
	}

	walls := make([]*physics.Body, 0, len(s.layout.Walls))
	for _, w := range s.layout.Walls {
		walls = append(walls, physics.NewStaticRect(w.Center, w.Width, w.Height, string(w.Kind), wallStyle))
	}
	s.world.Add(walls...)

	g := s.layout.Goal
	s.world.Add(physics.NewStaticRect(g.Center, g.Width, g.Height, string(g.Kind), goalStyle))

	b := s.layout.Ball
	s.ball = physics.NewDynamicCircle(b.Center, b.Radius, string(b.Kind))
	s.world.Add(s.ball)

	s.world.OnCollisionStart(s.handleCollisions)
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Config returns the configuration the session was built from, defaults applied.
func (s *Session) Config() Config {
	return s.config
}

// Maze returns the generated maze.
func (s *Session) Maze() *maze.Maze {
	return s.maze
}

// Layout returns the geometry derived from the maze.
func (s *Session) Layout() *layout.Layout {
	return s.layout
}

// Nudge adds ImpulseStep to the ball's velocity along dir.
func (s *Session) Nudge(dir maze.Direction) {
	s.Lock()
	defer s.Unlock()

	dr, dc := dir.Delta()
	delta := r2.Vec{X: float64(dc) * ImpulseStep, Y: float64(dr) * ImpulseStep}
	s.world.SetVelocity(s.ball, r2.Add(s.ball.Velocity, delta))
}

// Step advances the world by one tick and reports whether the ball reached
// the goal during it.
func (s *Session) Step() bool {
	s.Lock()
	defer s.Unlock()

	s.justWon = false
	s.world.Step()
	return s.justWon
}

// Won reports whether the goal has been reached.
func (s *Session) Won() bool {
	s.Lock()
	defer s.Unlock()
	return s.won
}

// WonAtTick returns the tick the goal was reached on, 0 before that.
func (s *Session) WonAtTick() int64 {
	s.Lock()
	defer s.Unlock()
	return s.wonAtTick
}

// handleCollisions is registered on the world; it runs inside Step.
func (s *Session) handleCollisions(pairs []physics.Pair) {
	if s.won {
		return
	}
	for _, p := range pairs {
		if layout.IsWin(layout.Kind(p.A.Label), layout.Kind(p.B.Label)) {
			s.collapse()
			return
		}
	}
}

// collapse releases every wall and turns gravity on. It runs once per session.
func (s *Session) collapse() {
	for _, b := range s.world.Bodies() {
		if layout.Kind(b.Label) == layout.KindWall {
			s.world.SetStatic(b, false)
		}
	}
	s.world.SetGravity(r2.Vec{Y: 1})
	s.won = true
	s.wonAtTick = s.world.Ticks()
	s.justWon = true
}

// Hint returns the cells from the ball's current cell to the goal cell.
func (s *Session) Hint() []maze.Cell {
	s.Lock()
	pos := s.ball.Position
	s.Unlock()

	from := maze.Cell{
		Row: clampIndex(pos.Y/s.layout.UnitY, s.maze.Rows),
		Col: clampIndex(pos.X/s.layout.UnitX, s.maze.Cols),
	}
	return s.maze.Path(from, maze.Cell{Row: s.maze.Rows - 1, Col: s.maze.Cols - 1})
}

func clampIndex(v float64, n int) int {
	i := int(math.Floor(v))
	return max(0, min(n-1, i))
}
