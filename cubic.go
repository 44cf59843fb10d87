package extrude

import (
	"math"
)

// CubicBez is a cubic Bézier curve with absolute control points.
type CubicBez struct {
	P0 Point
	P1 Point
	P2 Point
	P3 Point
}

func (c CubicBez) IsNaN() bool {
	return c.P0.IsNaN() || c.P1.IsNaN() || c.P2.IsNaN() || c.P3.IsNaN()
}

// Eval evaluates the curve at t using the Bernstein basis. t is not clamped.
func (c CubicBez) Eval(t float64) Point {
	mt := 1.0 - t
	a := Vec2(c.P0).Mul(mt * mt * mt)
	b := Vec2(c.P1).Mul(mt * mt * 3.0)
	cc := Vec2(c.P2).Mul(mt * 3.0)
	d := Vec2(c.P3)
	v := a.Add(b.Add(cc.Add(d.Mul(t)).Mul(t)).Mul(t))
	return Point(v)
}

// Deriv evaluates the first derivative of the curve at t. The result is not
// normalized; its angle is the direction of the tangent at t.
func (c CubicBez) Deriv(t float64) Vec2 {
	mt := 1.0 - t
	d01 := c.P1.Sub(c.P0).Mul(3 * mt * mt)
	d12 := c.P2.Sub(c.P1).Mul(6 * mt * t)
	d23 := c.P3.Sub(c.P2).Mul(3 * t * t)
	return d01.Add(d12).Add(d23)
}

// Split splits the curve at t using de Casteljau's algorithm. The first curve
// covers [0, t] and the second covers [t, 1]; they share the split point.
func (c CubicBez) Split(t float64) (CubicBez, CubicBez) {
	q1 := c.P0.Lerp(c.P1, t)
	q2 := c.P1.Lerp(c.P2, t)
	q3 := c.P2.Lerp(c.P3, t)
	q12 := q1.Lerp(q2, t)
	q23 := q2.Lerp(q3, t)
	pm := q12.Lerp(q23, t)
	return CubicBez{c.P0, q1, q12, pm}, CubicBez{pm, q23, q3, c.P3}
}

// Subsegment returns the part of the curve between t0 and t1.
func (c CubicBez) Subsegment(t0, t1 float64) CubicBez {
	p0 := c.Eval(t0)
	p3 := c.Eval(t1)
	scale := (t1 - t0) * (1.0 / 3.0)
	p1 := p0.Translate(c.Deriv(t0).Mul(scale))
	p2 := p3.Translate(c.Deriv(t1).Mul(scale).Negate())
	return CubicBez{p0, p1, p2, p3}
}

func (c CubicBez) Start() Point {
	return c.P0
}

func (c CubicBez) End() Point {
	return c.P3
}

// IsLine reports whether all control points lie on the line through P0 and P3,
// within a tolerance relative to the size of the curve. The tangent direction
// of such a curve is constant modulo π.
func (c CubicBez) IsLine() bool {
	chord := c.P3.Sub(c.P0)
	scale := max(chord.Hypot(), c.P1.Sub(c.P0).Hypot(), c.P2.Sub(c.P0).Hypot())
	if scale == 0 {
		return true
	}
	const epsilon = 1e-9
	if chord.Hypot2() == 0 {
		// Closed curve; it is a line only if the handles are parallel.
		return math.Abs(c.P1.Sub(c.P0).Cross(c.P2.Sub(c.P0))) <= epsilon*scale*scale
	}
	return math.Abs(chord.Cross(c.P1.Sub(c.P0))) <= epsilon*scale*scale &&
		math.Abs(chord.Cross(c.P2.Sub(c.P0))) <= epsilon*scale*scale
}
