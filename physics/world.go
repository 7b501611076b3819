/*
Package physics is a small fixed-tick 2D world for axis-aligned rectangles and
circles.

Bodies are either static (never move) or dynamic. Dynamic bodies integrate
gravity and velocity once per Step and are pushed out of the bodies they
overlap. Dynamic circles collide with every other body, dynamic rectangles only
with static ones. Collision-start handlers receive each pair of bodies once,
on the tick they first touch.
*/
package physics

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/spatial/r2"
)

const (
	// GravityScale converts the world gravity vector into velocity gained per tick.
	GravityScale = 0.25
	// DefaultFrictionAir is the fraction of velocity lost per tick.
	DefaultFrictionAir = 0.01
	// MaxSpeed bounds the per-tick speed of dynamic bodies.
	MaxSpeed = 24.0

	maxTravel    = 1.0 // per sub-step distance so thin walls are never skipped.
	contactSlop  = 0.5 // bodies already in contact stay so within this gap.
	maxSubSteps  = 32
	minVelocity2 = 1e-12
)

// Shape is the collision geometry of a body.
type Shape int

const (
	ShapeRect Shape = iota
	ShapeCircle
)

// Body is a rigid body owned by a World once added.
type Body struct {
	ID       int     // assigned by World.Add in insertion order starting at 1.
	Label    string  // kind tag, e.g. "wall".
	Style    string  // fill style hint for renderers.
	Shape    Shape   // collision shape.
	Position r2.Vec  // center.
	Velocity r2.Vec  // units per tick.
	Width    float64 // rectangles only.
	Height   float64 // rectangles only.
	Radius   float64 // circles only.
	static   bool
}

// IsStatic reports whether the body ignores forces and velocity.
func (b *Body) IsStatic() bool {
	return b.static
}

// Pair is two bodies that started touching, A has the lower ID.
type Pair struct {
	A *Body
	B *Body
}

// CollisionHandler receives the pairs that started touching during one tick.
type CollisionHandler func(pairs []Pair)

type pairKey [2]int

// World owns bodies and steps them forward in time.
type World struct {
	bodies      []*Body
	gravity     r2.Vec
	frictionAir float64
	nextID      int
	handlers    []CollisionHandler
	contacts    map[pairKey]struct{}
	ticks       int64
}

// NewWorld creates an empty world with zero gravity.
func NewWorld() *World {
	return &World{
		frictionAir: DefaultFrictionAir,
		nextID:      1,
		contacts:    make(map[pairKey]struct{}),
	}
}

// NewStaticRect creates a static rectangle centered at center.
func NewStaticRect(center r2.Vec, width, height float64, label, style string) *Body {
	return &Body{
		Label:    label,
		Style:    style,
		Shape:    ShapeRect,
		Position: center,
		Width:    width,
		Height:   height,
		static:   true,
	}
}

// NewDynamicCircle creates a dynamic circle centered at center.
func NewDynamicCircle(center r2.Vec, radius float64, label string) *Body {
	return &Body{
		Label:    label,
		Shape:    ShapeCircle,
		Position: center,
		Radius:   radius,
	}
}

// Add hands bodies to the world and assigns their IDs.
func (w *World) Add(bodies ...*Body) {
	for _, b := range bodies {
		if b == nil {
			continue
		}
		b.ID = w.nextID
		w.nextID++
		w.bodies = append(w.bodies, b)
	}
}

// Bodies returns the bodies in insertion order. The slice must not be modified.
func (w *World) Bodies() []*Body {
	return w.bodies
}

// SetVelocity replaces the velocity of a dynamic body.
func (w *World) SetVelocity(b *Body, v r2.Vec) {
	if b.static {
		return
	}
	b.Velocity = clampSpeed(v)
}

// SetStatic switches a body between static and dynamic. Bodies made static
// lose their velocity.
func (w *World) SetStatic(b *Body, static bool) {
	b.static = static
	if static {
		b.Velocity = r2.Vec{}
	}
}

// SetGravity sets the gravity vector applied to dynamic bodies.
func (w *World) SetGravity(g r2.Vec) {
	w.gravity = g
}

// Gravity returns the current gravity vector.
func (w *World) Gravity() r2.Vec {
	return w.gravity
}

// Ticks returns how many times Step has run.
func (w *World) Ticks() int64 {
	return w.ticks
}

// OnCollisionStart registers a handler for newly touching pairs.
func (w *World) OnCollisionStart(h CollisionHandler) {
	w.handlers = append(w.handlers, h)
}

// Step advances the world by one tick.
func (w *World) Step() {
	w.ticks++

	statics, dynamics := w.partition()
	fastest := 0.0
	for _, b := range dynamics {
		v := r2.Add(r2.Scale(1-w.frictionAir, b.Velocity), r2.Scale(GravityScale, w.gravity))
		b.Velocity = clampSpeed(v)
		fastest = math.Max(fastest, r2.Norm(b.Velocity))
	}

	subSteps := int(math.Ceil(fastest / maxTravel))
	subSteps = max(1, min(subSteps, maxSubSteps))

	touching := make(map[pairKey]struct{})
	for range subSteps {
		for _, b := range dynamics {
			if r2.Norm2(b.Velocity) < minVelocity2 {
				continue
			}
			b.Position = r2.Add(b.Position, r2.Scale(1/float64(subSteps), b.Velocity))
		}
		w.resolve(statics, dynamics, touching)
	}

	var started []Pair
	for key := range touching {
		if _, before := w.contacts[key]; before {
			continue
		}
		started = append(started, Pair{A: w.bodies[key[0]-1], B: w.bodies[key[1]-1]})
	}
	slices.SortFunc(started, func(x, y Pair) int {
		if x.A.ID != y.A.ID {
			return x.A.ID - y.A.ID
		}
		return x.B.ID - y.B.ID
	})
	w.contacts = touching

	if len(started) == 0 {
		return
	}
	for _, h := range w.handlers {
		h(started)
	}
}

// resolve separates overlapping bodies and records every touching pair.
func (w *World) resolve(statics, dynamics []*Body, touching map[pairKey]struct{}) {
	for _, d := range dynamics {
		for _, o := range statics {
			w.contact(d, o, touching)
		}
		if d.Shape != ShapeCircle {
			continue
		}
		for _, o := range dynamics {
			if o == d || (o.Shape == ShapeCircle && o.ID < d.ID) {
				// circle pairs are handled once, from the lower ID.
				continue
			}
			w.contact(d, o, touching)
		}
	}
}

func (w *World) contact(d, o *Body, touching map[pairKey]struct{}) {
	normal, depth, ok := penetration(d, o)
	if !ok {
		return
	}
	key := keyOf(d, o)
	_, before := w.contacts[key]
	_, now := touching[key]
	if depth <= 0 {
		// only a real overlap starts a contact; the slop keeps one alive.
		if (before || now) && depth > -contactSlop {
			touching[key] = struct{}{}
		}
		return
	}
	touching[key] = struct{}{}

	if o.static {
		separate(d, normal, depth)
		return
	}
	separate(d, normal, depth/2)
	separate(o, r2.Scale(-1, normal), depth/2)
}

func (w *World) partition() (statics, dynamics []*Body) {
	for _, b := range w.bodies {
		if b.static {
			statics = append(statics, b)
		} else {
			dynamics = append(dynamics, b)
		}
	}
	return statics, dynamics
}

// separate pushes b along normal by depth and cancels velocity into the normal.
func separate(b *Body, normal r2.Vec, depth float64) {
	b.Position = r2.Add(b.Position, r2.Scale(depth, normal))
	if vn := r2.Dot(b.Velocity, normal); vn < 0 {
		b.Velocity = r2.Sub(b.Velocity, r2.Scale(vn, normal))
	}
}

func keyOf(a, b *Body) pairKey {
	if a.ID < b.ID {
		return pairKey{a.ID, b.ID}
	}
	return pairKey{b.ID, a.ID}
}

func clampSpeed(v r2.Vec) r2.Vec {
	speed := r2.Norm(v)
	if speed <= MaxSpeed {
		return v
	}
	return r2.Scale(MaxSpeed/speed, v)
}
