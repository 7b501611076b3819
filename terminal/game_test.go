package terminal

import (
	"testing"

	"github.com/beka-birhanu/vinom-maze/game"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSound struct {
	plays int
}

func (s *countingSound) Play() { s.plays++ }

func newTestGame(t *testing.T, c game.Config, sound Sound) *Game {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)

	g, err := NewGame(screen, c, sound)
	require.NoError(t, err)
	return g
}

func TestNewGameRejectsInvalidSizes(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	_, err := NewGame(screen, game.Config{CellsHorizontal: 0, CellsVertical: 3}, nil)
	assert.ErrorIs(t, err, game.ErrInvalidDimension)
}

func TestHandleKey(t *testing.T) {
	c := game.Config{CellsHorizontal: 6, CellsVertical: 6, Seed: 11}

	t.Run("Arrows and WASD nudge the ball", func(t *testing.T) {
		g := newTestGame(t, c, nil)
		start := g.Session().Snapshot().Ball

		require.NoError(t, g.HandleKey(tcell.KeyRight, 0))
		require.NoError(t, g.HandleKey(tcell.KeyRune, 's'))
		g.Step()

		ball := g.Session().Snapshot().Ball
		assert.Greater(t, ball.X, start.X)
		assert.Greater(t, ball.Y, start.Y)
	})

	t.Run("Quit keys", func(t *testing.T) {
		for _, k := range []struct {
			key tcell.Key
			r   rune
		}{{tcell.KeyEscape, 0}, {tcell.KeyCtrlC, 0}, {tcell.KeyRune, 'q'}} {
			g := newTestGame(t, c, nil)
			require.NoError(t, g.HandleKey(k.key, k.r))
			assert.True(t, g.Quit())
		}
	})

	t.Run("Reset moves to the next seed", func(t *testing.T) {
		g := newTestGame(t, c, nil)
		before := g.Session()

		require.NoError(t, g.HandleKey(tcell.KeyRune, 'r'))
		assert.NotSame(t, before, g.Session())
		assert.Equal(t, int64(12), g.Session().Config().Seed)
	})

	t.Run("Hint toggles", func(t *testing.T) {
		g := newTestGame(t, c, nil)
		require.NoError(t, g.HandleKey(tcell.KeyRune, 'h'))
		assert.True(t, g.showHint)
		require.NoError(t, g.HandleKey(tcell.KeyRune, 'H'))
		assert.False(t, g.showHint)
	})

	t.Run("Other keys are ignored", func(t *testing.T) {
		g := newTestGame(t, c, nil)
		require.NoError(t, g.HandleKey(tcell.KeyRune, 'x'))
		require.NoError(t, g.HandleKey(tcell.KeyTab, 0))
		assert.False(t, g.Quit())
	})
}

func TestStepChimesOnceOnWin(t *testing.T) {
	sound := &countingSound{}
	// A single cell spawns the ball on the goal.
	g := newTestGame(t, game.Config{CellsHorizontal: 1, CellsVertical: 1, Width: 60, Height: 60}, sound)

	for range 5 {
		g.Step()
	}
	assert.Equal(t, 1, sound.plays)
	assert.True(t, g.Session().Won())
}

func TestDraw(t *testing.T) {
	g := newTestGame(t, game.Config{CellsHorizontal: 4, CellsVertical: 4, Seed: 2}, nil)
	canvas := newRecordingCanvas(40, 21)
	g.renderer = NewRenderer(canvas)

	g.Draw()
	assert.Contains(t, canvas.cells, cell{0, 20})
	assert.NotContains(t, canvasRunes(canvas), hintRune)

	require.NoError(t, g.HandleKey(tcell.KeyRune, 'h'))
	g.Draw()
	assert.Contains(t, canvasRunes(canvas), hintRune)
	assert.Contains(t, canvasRunes(canvas), ballRune)
}

func TestStatus(t *testing.T) {
	g := newTestGame(t, game.Config{CellsHorizontal: 2, CellsVertical: 2, Seed: 7}, nil)
	assert.Contains(t, g.status(g.Session().Snapshot()), "seed 7")

	assert.Contains(t, g.status(game.Snapshot{Won: true, WonAtTick: 42}), "solved in 42 ticks")
}

func canvasRunes(c *recordingCanvas) []rune {
	runes := make([]rune, 0, len(c.cells))
	for _, r := range c.cells {
		runes = append(runes, r)
	}
	return runes
}
