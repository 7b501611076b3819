package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// penetration returns the unit normal pointing from o towards d and how deep
// d sits inside o. A negative depth is the gap between the two shapes.
func penetration(d, o *Body) (normal r2.Vec, depth float64, ok bool) {
	switch {
	case d.Shape == ShapeCircle && o.Shape == ShapeRect:
		normal, depth = circleRect(d.Position, d.Radius, o.Position, o.Width/2, o.Height/2)
		return normal, depth, true
	case d.Shape == ShapeRect && o.Shape == ShapeCircle:
		normal, depth = circleRect(o.Position, o.Radius, d.Position, d.Width/2, d.Height/2)
		return r2.Scale(-1, normal), depth, true
	case d.Shape == ShapeRect && o.Shape == ShapeRect:
		normal, depth = rectRect(d.Position, d.Width/2, d.Height/2, o.Position, o.Width/2, o.Height/2)
		return normal, depth, true
	case d.Shape == ShapeCircle && o.Shape == ShapeCircle:
		normal, depth = circleCircle(d.Position, d.Radius, o.Position, o.Radius)
		return normal, depth, true
	}
	return r2.Vec{}, 0, false
}

// circleRect pushes the circle out of the rectangle.
func circleRect(c r2.Vec, radius float64, rc r2.Vec, hw, hh float64) (r2.Vec, float64) {
	delta := r2.Sub(c, rc)
	closest := r2.Vec{X: clamp(delta.X, -hw, hw), Y: clamp(delta.Y, -hh, hh)}

	if closest == delta {
		// center inside the rectangle: leave through the nearest side.
		dx := hw - math.Abs(delta.X)
		dy := hh - math.Abs(delta.Y)
		if dx < dy {
			return r2.Vec{X: sign(delta.X)}, dx + radius
		}
		return r2.Vec{Y: sign(delta.Y)}, dy + radius
	}

	diff := r2.Sub(delta, closest)
	dist := r2.Norm(diff)
	return r2.Scale(1/dist, diff), radius - dist
}

func rectRect(a r2.Vec, ahw, ahh float64, b r2.Vec, bhw, bhh float64) (r2.Vec, float64) {
	delta := r2.Sub(a, b)
	ox := ahw + bhw - math.Abs(delta.X)
	oy := ahh + bhh - math.Abs(delta.Y)

	if ox < 0 && oy < 0 {
		return r2.Vec{X: sign(delta.X)}, -math.Hypot(ox, oy)
	}
	if ox < oy {
		return r2.Vec{X: sign(delta.X)}, ox
	}
	return r2.Vec{Y: sign(delta.Y)}, oy
}

func circleCircle(a r2.Vec, ar float64, b r2.Vec, br float64) (r2.Vec, float64) {
	delta := r2.Sub(a, b)
	dist := r2.Norm(delta)
	if dist == 0 {
		return r2.Vec{Y: -1}, ar + br
	}
	return r2.Scale(1/dist, delta), ar + br - dist
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
