// Package layout maps a maze onto continuous space: closed passages become wall
// rectangles, the far corner cell holds the goal and the first cell the ball.
package layout

import (
	"errors"

	"github.com/beka-birhanu/vinom-maze/maze"
	"gonum.org/v1/gonum/spatial/r2"
)

// Kind tags every body emitted by the builder.
type Kind string

const (
	KindWall     Kind = "wall"
	KindGoal     Kind = "goal"
	KindBall     Kind = "ball"
	KindBoundary Kind = "boundary"
)

const (
	WallThickness     = 5.0
	BoundaryThickness = 2.0
	goalScale         = 0.7
	ballRadiusDivisor = 4.0
)

var (
	ErrInvalidSize = errors.New("layout size must be positive")
	ErrNilMaze     = errors.New("maze is nil")
)

// Rect is an axis-aligned rectangle positioned by its center.
type Rect struct {
	Center r2.Vec  `json:"center"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Kind   Kind    `json:"kind"`
}

// Circle is positioned by its center.
type Circle struct {
	Center r2.Vec  `json:"center"`
	Radius float64 `json:"radius"`
	Kind   Kind    `json:"kind"`
}

// Layout is the geometry derived from one maze.
type Layout struct {
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	UnitX      float64 `json:"unit_x"`
	UnitY      float64 `json:"unit_y"`
	Walls      []Rect  `json:"walls"`
	Boundaries []Rect  `json:"boundaries"`
	Goal       Rect    `json:"goal"`
	Ball       Circle  `json:"ball"`
}

// Build derives the wall segments, goal region and ball spawn for m scaled to
// width x height.
func Build(m *maze.Maze, width, height float64) (*Layout, error) {
	if m == nil {
		return nil, ErrNilMaze
	}
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidSize
	}

	unitX := width / float64(m.Cols)
	unitY := height / float64(m.Rows)

	l := &Layout{
		Width:      width,
		Height:     height,
		UnitX:      unitX,
		UnitY:      unitY,
		Walls:      make([]Rect, 0, 2*m.Rows*m.Cols),
		Boundaries: boundaries(width, height),
	}

	for r, row := range m.Horizontals {
		for c, open := range row {
			if open {
				continue
			}
			l.Walls = append(l.Walls, Rect{
				Center: r2.Vec{X: float64(c)*unitX + unitX/2, Y: float64(r)*unitY + unitY},
				Width:  unitX,
				Height: WallThickness,
				Kind:   KindWall,
			})
		}
	}

	for r, row := range m.Verticals {
		for c, open := range row {
			if open {
				continue
			}
			l.Walls = append(l.Walls, Rect{
				Center: r2.Vec{X: float64(c)*unitX + unitX, Y: float64(r)*unitY + unitY/2},
				Width:  WallThickness,
				Height: unitY,
				Kind:   KindWall,
			})
		}
	}

	l.Goal = Rect{
		Center: r2.Vec{X: width - unitX/2, Y: height - unitY/2},
		Width:  unitX * goalScale,
		Height: unitY * goalScale,
		Kind:   KindGoal,
	}

	l.Ball = Circle{
		Center: r2.Vec{X: unitX / 2, Y: unitY / 2},
		Radius: min(unitX, unitY) / ballRadiusDivisor,
		Kind:   KindBall,
	}

	return l, nil
}

// CellCenter returns the center of grid cell (row, col).
func (l *Layout) CellCenter(row, col int) r2.Vec {
	return r2.Vec{X: float64(col)*l.UnitX + l.UnitX/2, Y: float64(row)*l.UnitY + l.UnitY/2}
}

func boundaries(width, height float64) []Rect {
	return []Rect{
		{Center: r2.Vec{X: width / 2, Y: 0}, Width: width, Height: BoundaryThickness, Kind: KindBoundary},
		{Center: r2.Vec{X: width / 2, Y: height}, Width: width, Height: BoundaryThickness, Kind: KindBoundary},
		{Center: r2.Vec{X: 0, Y: height / 2}, Width: BoundaryThickness, Height: height, Kind: KindBoundary},
		{Center: r2.Vec{X: width, Y: height / 2}, Width: BoundaryThickness, Height: height, Kind: KindBoundary},
	}
}

// IsWin reports whether a collision between bodies tagged a and b reaches the
// goal. Order does not matter.
func IsWin(a, b Kind) bool {
	return (a == KindBall && b == KindGoal) || (a == KindGoal && b == KindBall)
}
