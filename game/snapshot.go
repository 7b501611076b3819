package game

import (
	"github.com/beka-birhanu/vinom-maze/layout"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/physics"
	"github.com/google/uuid"
)

// BodyState is the renderable state of one body.
type BodyState struct {
	ID     int         `json:"id"`
	Kind   layout.Kind `json:"kind"`
	Shape  string      `json:"shape"`
	X      float64     `json:"x"`
	Y      float64     `json:"y"`
	Width  float64     `json:"width,omitempty"`
	Height float64     `json:"height,omitempty"`
	Radius float64     `json:"radius,omitempty"`
	Static bool        `json:"static"`
	Style  string      `json:"style,omitempty"`
}

// Snapshot is the state of a session at one tick.
type Snapshot struct {
	ID        uuid.UUID   `json:"id"`
	Tick      int64       `json:"tick"`
	Won       bool        `json:"won"`
	WonAtTick int64       `json:"won_at_tick,omitempty"`
	Width     float64     `json:"width"`
	Height    float64     `json:"height"`
	Ball      BodyState   `json:"ball"`
	Bodies    []BodyState `json:"bodies"`
	Maze      *maze.Maze  `json:"maze,omitempty"`
}

// Snapshot captures every body in the world along with the maze.
func (s *Session) Snapshot() Snapshot {
	snap := s.capture(true)
	snap.Maze = s.maze
	return snap
}

// Frame captures only bodies that can move. Before the goal is reached that
// is the ball alone.
func (s *Session) Frame() Snapshot {
	return s.capture(false)
}

func (s *Session) capture(all bool) Snapshot {
	s.Lock()
	defer s.Unlock()

	snap := Snapshot{
		ID:        s.id,
		Tick:      s.world.Ticks(),
		Won:       s.won,
		WonAtTick: s.wonAtTick,
		Width:     s.layout.Width,
		Height:    s.layout.Height,
		Ball:      bodyState(s.ball),
	}

	bodies := s.world.Bodies()
	snap.Bodies = make([]BodyState, 0, len(bodies))
	for _, b := range bodies {
		if all || !b.IsStatic() {
			snap.Bodies = append(snap.Bodies, bodyState(b))
		}
	}
	return snap
}

func bodyState(b *physics.Body) BodyState {
	state := BodyState{
		ID:     b.ID,
		Kind:   layout.Kind(b.Label),
		X:      b.Position.X,
		Y:      b.Position.Y,
		Static: b.IsStatic(),
		Style:  b.Style,
	}
	switch b.Shape {
	case physics.ShapeCircle:
		state.Shape = "circle"
		state.Radius = b.Radius
	default:
		state.Shape = "rect"
		state.Width = b.Width
		state.Height = b.Height
	}
	return state
}
