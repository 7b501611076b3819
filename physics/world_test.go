package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestWorldAdd(t *testing.T) {
	w := NewWorld()
	a := NewStaticRect(r2.Vec{X: 1, Y: 1}, 2, 2, "wall", "red")
	b := NewDynamicCircle(r2.Vec{X: 5, Y: 5}, 1, "ball")
	w.Add(a, nil, b)

	require.Len(t, w.Bodies(), 2)
	assert.Equal(t, 1, a.ID)
	assert.Equal(t, 2, b.ID)
	assert.True(t, a.IsStatic())
	assert.False(t, b.IsStatic())
}

func TestWorldStep(t *testing.T) {
	t.Run("Static bodies never move", func(t *testing.T) {
		w := NewWorld()
		wall := NewStaticRect(r2.Vec{X: 10, Y: 10}, 20, 5, "wall", "")
		w.Add(wall)
		w.SetGravity(r2.Vec{Y: 1})
		w.SetVelocity(wall, r2.Vec{X: 3})

		for range 10 {
			w.Step()
		}
		assert.Equal(t, r2.Vec{X: 10, Y: 10}, wall.Position)
		assert.Equal(t, r2.Vec{}, wall.Velocity)
		assert.Equal(t, int64(10), w.Ticks())
	})

	t.Run("Velocity moves dynamic bodies", func(t *testing.T) {
		w := NewWorld()
		ball := NewDynamicCircle(r2.Vec{X: 10, Y: 10}, 2, "ball")
		w.Add(ball)
		w.SetVelocity(ball, r2.Vec{X: 2})

		w.Step()
		assert.InDelta(t, 10+2*(1-DefaultFrictionAir), ball.Position.X, 1e-9)
		assert.InDelta(t, 10, ball.Position.Y, 1e-9)
	})

	t.Run("Gravity accelerates dynamic bodies", func(t *testing.T) {
		w := NewWorld()
		ball := NewDynamicCircle(r2.Vec{X: 10, Y: 10}, 2, "ball")
		w.Add(ball)
		w.SetGravity(r2.Vec{Y: 1})

		w.Step()
		first := ball.Velocity.Y
		w.Step()
		assert.InDelta(t, GravityScale, first, 1e-9)
		assert.Greater(t, ball.Velocity.Y, first)
		assert.Greater(t, ball.Position.Y, 10.0)
	})

	t.Run("Speed is clamped", func(t *testing.T) {
		w := NewWorld()
		ball := NewDynamicCircle(r2.Vec{}, 1, "ball")
		w.Add(ball)
		w.SetVelocity(ball, r2.Vec{X: 1000, Y: 0})
		assert.InDelta(t, MaxSpeed, r2.Norm(ball.Velocity), 1e-9)
	})

	t.Run("Circle stops against a static wall", func(t *testing.T) {
		w := NewWorld()
		ball := NewDynamicCircle(r2.Vec{X: 50, Y: 50}, 10, "ball")
		wall := NewStaticRect(r2.Vec{X: 75, Y: 50}, 5, 100, "wall", "")
		w.Add(ball, wall)
		w.SetVelocity(ball, r2.Vec{X: 5})

		for range 20 {
			w.Step()
			assert.LessOrEqual(t, ball.Position.X, 62.5+1e-9)
		}
		assert.InDelta(t, 62.5, ball.Position.X, 1e-9)
		assert.InDelta(t, 0, ball.Velocity.X, 1e-9)
	})

	t.Run("Fast circle does not tunnel through a thin wall", func(t *testing.T) {
		w := NewWorld()
		ball := NewDynamicCircle(r2.Vec{X: 10, Y: 50}, 3, "ball")
		wall := NewStaticRect(r2.Vec{X: 40, Y: 50}, 2, 100, "wall", "")
		w.Add(ball, wall)
		w.SetVelocity(ball, r2.Vec{X: MaxSpeed})

		for range 10 {
			w.Step()
		}
		assert.Less(t, ball.Position.X, 40.0)
	})

	t.Run("Dynamic rectangle rests on a static floor", func(t *testing.T) {
		w := NewWorld()
		plank := NewStaticRect(r2.Vec{X: 100, Y: 100}, 50, 5, "wall", "")
		floor := NewStaticRect(r2.Vec{X: 100, Y: 200}, 300, 2, "boundary", "")
		w.Add(plank, floor)
		w.SetStatic(plank, false)
		w.SetGravity(r2.Vec{Y: 1})

		for range 300 {
			w.Step()
		}
		assert.InDelta(t, 196.5, plank.Position.Y, 1e-6)
		assert.InDelta(t, 100, plank.Position.X, 1e-6)
		assert.InDelta(t, 200, floor.Position.Y, 1e-9)
	})

	t.Run("Dynamic rectangles pass through each other", func(t *testing.T) {
		w := NewWorld()
		a := NewStaticRect(r2.Vec{X: 10, Y: 10}, 10, 10, "wall", "")
		b := NewStaticRect(r2.Vec{X: 12, Y: 10}, 10, 10, "wall", "")
		w.Add(a, b)
		w.SetStatic(a, false)
		w.SetStatic(b, false)

		w.Step()
		assert.Equal(t, r2.Vec{X: 10, Y: 10}, a.Position)
		assert.Equal(t, r2.Vec{X: 12, Y: 10}, b.Position)
	})
}

func TestSetStatic(t *testing.T) {
	w := NewWorld()
	ball := NewDynamicCircle(r2.Vec{}, 1, "ball")
	w.Add(ball)
	w.SetVelocity(ball, r2.Vec{X: 3, Y: 4})

	w.SetStatic(ball, true)
	assert.True(t, ball.IsStatic())
	assert.Equal(t, r2.Vec{}, ball.Velocity)

	w.SetStatic(ball, false)
	assert.False(t, ball.IsStatic())
}

func TestOnCollisionStart(t *testing.T) {
	w := NewWorld()
	ball := NewDynamicCircle(r2.Vec{X: 50, Y: 50}, 10, "ball")
	goal := NewStaticRect(r2.Vec{X: 75, Y: 50}, 5, 100, "goal", "green")
	far := NewStaticRect(r2.Vec{X: 500, Y: 500}, 5, 5, "wall", "")
	w.Add(far, ball, goal)

	var events [][]Pair
	w.OnCollisionStart(func(pairs []Pair) {
		events = append(events, pairs)
	})

	w.SetVelocity(ball, r2.Vec{X: 5})
	for range 20 {
		w.Step()
	}

	require.Len(t, events, 1, "resting contact must not re-fire")
	require.Len(t, events[0], 1)
	pair := events[0][0]
	assert.Same(t, ball, pair.A)
	assert.Same(t, goal, pair.B)
	assert.Less(t, pair.A.ID, pair.B.ID)

	w.SetVelocity(ball, r2.Vec{X: -5})
	for range 5 {
		w.Step()
	}
	w.SetVelocity(ball, r2.Vec{X: 5})
	for range 20 {
		w.Step()
	}
	assert.Len(t, events, 2, "leaving and touching again starts a new collision")
}

func TestCollisionStartNeedsOverlap(t *testing.T) {
	w := NewWorld()
	goal := NewStaticRect(r2.Vec{X: 75, Y: 50}, 5, 100, "goal", "green")
	// 0.4 units short of the goal's left edge at 72.5.
	ball := NewDynamicCircle(r2.Vec{X: 62.1, Y: 50}, 10, "ball")
	w.Add(ball, goal)

	fired := 0
	w.OnCollisionStart(func(pairs []Pair) {
		fired += len(pairs)
	})

	w.Step()
	assert.Equal(t, 0, fired, "a gap is not a collision")

	w.SetVelocity(ball, r2.Vec{X: 1})
	w.Step()
	assert.Equal(t, 1, fired)

	for range 10 {
		w.Step()
	}
	assert.Equal(t, 1, fired, "resting contact must not re-fire")
}

func TestPenetration(t *testing.T) {
	t.Run("Circle outside rectangle reports the gap", func(t *testing.T) {
		c := NewDynamicCircle(r2.Vec{X: 0, Y: 0}, 1, "ball")
		r := NewStaticRect(r2.Vec{X: 5, Y: 0}, 2, 2, "wall", "")
		normal, depth, ok := penetration(c, r)
		require.True(t, ok)
		assert.Equal(t, r2.Vec{X: -1}, normal)
		assert.InDelta(t, -3, depth, 1e-9)
	})

	t.Run("Circle center inside rectangle leaves through the nearest side", func(t *testing.T) {
		c := NewDynamicCircle(r2.Vec{X: 0, Y: 4}, 1, "ball")
		r := NewStaticRect(r2.Vec{X: 0, Y: 0}, 20, 10, "wall", "")
		normal, depth, ok := penetration(c, r)
		require.True(t, ok)
		assert.Equal(t, r2.Vec{Y: 1}, normal)
		assert.InDelta(t, 2, depth, 1e-9)
	})

	t.Run("Rectangle over circle flips the normal", func(t *testing.T) {
		r := NewStaticRect(r2.Vec{X: 5, Y: 0}, 2, 2, "wall", "")
		c := NewDynamicCircle(r2.Vec{X: 0, Y: 0}, 4.5, "ball")
		normal, depth, ok := penetration(r, c)
		require.True(t, ok)
		assert.Equal(t, r2.Vec{X: 1}, normal)
		assert.InDelta(t, 0.5, depth, 1e-9)
	})

	t.Run("Overlapping circles", func(t *testing.T) {
		a := NewDynamicCircle(r2.Vec{X: 0, Y: 0}, 2, "ball")
		b := NewDynamicCircle(r2.Vec{X: 3, Y: 0}, 2, "ball")
		normal, depth, ok := penetration(a, b)
		require.True(t, ok)
		assert.Equal(t, r2.Vec{X: -1}, normal)
		assert.InDelta(t, 1, depth, 1e-9)
	})
}
