package layout

import (
	"testing"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

// closedMaze returns a maze with every passage closed except the listed ones.
func closedMaze(rows, cols int) *maze.Maze {
	m := &maze.Maze{Rows: rows, Cols: cols}
	m.Verticals = make([][]bool, rows)
	for r := range m.Verticals {
		m.Verticals[r] = make([]bool, cols-1)
	}
	m.Horizontals = make([][]bool, rows-1)
	for r := range m.Horizontals {
		m.Horizontals[r] = make([]bool, cols)
	}
	return m
}

func TestBuild(t *testing.T) {
	t.Run("Rejects bad input", func(t *testing.T) {
		_, err := Build(nil, 100, 100)
		assert.ErrorIs(t, err, ErrNilMaze)

		_, err = Build(closedMaze(2, 2), 0, 100)
		assert.ErrorIs(t, err, ErrInvalidSize)

		_, err = Build(closedMaze(2, 2), 100, -1)
		assert.ErrorIs(t, err, ErrInvalidSize)
	})

	t.Run("Closed horizontal passage geometry", func(t *testing.T) {
		m := closedMaze(4, 5)
		l, err := Build(m, 250, 200)
		require.NoError(t, err)
		require.Equal(t, 50.0, l.UnitX)
		require.Equal(t, 50.0, l.UnitY)

		want := Rect{Center: r2.Vec{X: 175, Y: 150}, Width: 50, Height: WallThickness, Kind: KindWall}
		assert.Contains(t, l.Walls, want)
	})

	t.Run("Closed vertical passage geometry", func(t *testing.T) {
		m := closedMaze(4, 5)
		l, err := Build(m, 250, 200)
		require.NoError(t, err)

		want := Rect{Center: r2.Vec{X: 100, Y: 75}, Width: WallThickness, Height: 50, Kind: KindWall}
		assert.Contains(t, l.Walls, want)
	})

	t.Run("One wall per closed passage", func(t *testing.T) {
		m := closedMaze(3, 4)
		l, err := Build(m, 400, 300)
		require.NoError(t, err)
		assert.Len(t, l.Walls, 3*3+2*4)

		m.Verticals[1][2] = true
		m.Horizontals[0][0] = true
		l, err = Build(m, 400, 300)
		require.NoError(t, err)
		assert.Len(t, l.Walls, 3*3+2*4-2)
		assert.NotContains(t, l.Walls, Rect{Center: r2.Vec{X: 300, Y: 150}, Width: WallThickness, Height: 100, Kind: KindWall})
	})

	t.Run("Generated maze wall count", func(t *testing.T) {
		m, err := maze.Generate(14, 14, maze.NewSource(3))
		require.NoError(t, err)
		l, err := Build(m, 840, 700)
		require.NoError(t, err)

		total := 14*13 + 13*14
		assert.Len(t, l.Walls, total-m.OpenPassages())
		for _, w := range l.Walls {
			assert.Equal(t, KindWall, w.Kind)
		}
	})

	t.Run("Goal and ball placement", func(t *testing.T) {
		l, err := Build(closedMaze(4, 5), 250, 200)
		require.NoError(t, err)

		assert.Equal(t, r2.Vec{X: 225, Y: 175}, l.Goal.Center)
		assert.InDelta(t, 35, l.Goal.Width, 1e-9)
		assert.InDelta(t, 35, l.Goal.Height, 1e-9)
		assert.Equal(t, KindGoal, l.Goal.Kind)
		assert.Equal(t, Circle{Center: r2.Vec{X: 25, Y: 25}, Radius: 12.5, Kind: KindBall}, l.Ball)
	})

	t.Run("Ball radius follows the smaller unit", func(t *testing.T) {
		l, err := Build(closedMaze(2, 4), 400, 100)
		require.NoError(t, err)
		assert.Equal(t, 100.0, l.UnitX)
		assert.Equal(t, 50.0, l.UnitY)
		assert.Equal(t, 12.5, l.Ball.Radius)
	})

	t.Run("Single cell has no interior walls", func(t *testing.T) {
		l, err := Build(closedMaze(1, 1), 60, 60)
		require.NoError(t, err)
		assert.Empty(t, l.Walls)
		assert.Len(t, l.Boundaries, 4)
		assert.Equal(t, r2.Vec{X: 30, Y: 30}, l.Goal.Center)
		assert.Equal(t, r2.Vec{X: 30, Y: 30}, l.Ball.Center)
	})

	t.Run("Boundaries frame the world", func(t *testing.T) {
		l, err := Build(closedMaze(2, 2), 300, 200)
		require.NoError(t, err)
		for _, b := range l.Boundaries {
			assert.Equal(t, KindBoundary, b.Kind)
		}
		assert.Equal(t, r2.Vec{X: 150, Y: 200}, l.Boundaries[1].Center)
		assert.Equal(t, r2.Vec{X: 300, Y: 100}, l.Boundaries[3].Center)
	})
}

func TestCellCenter(t *testing.T) {
	l, err := Build(closedMaze(4, 5), 250, 200)
	require.NoError(t, err)
	assert.Equal(t, r2.Vec{X: 175, Y: 125}, l.CellCenter(2, 3))
}

func TestIsWin(t *testing.T) {
	assert.True(t, IsWin(KindBall, KindGoal))
	assert.True(t, IsWin(KindGoal, KindBall))
	assert.False(t, IsWin(KindBall, KindWall))
	assert.False(t, IsWin(KindWall, KindGoal))
	assert.False(t, IsWin(KindBall, KindBall))
	assert.False(t, IsWin(KindGoal, KindGoal))
	assert.False(t, IsWin(KindBoundary, KindBall))
}
