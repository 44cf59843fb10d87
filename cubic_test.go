package extrude

import (
	"testing"
)

func TestCubicBezDeriv(t *testing.T) {
	// y = x^2
	c := CubicBez{
		Pt(0.0, 0.0),
		Pt(1.0/3.0, 0.0),
		Pt(2.0/3.0, 1.0/3.0),
		Pt(1.0, 1.0),
	}

	const n = 10
	const delta = 1e-6
	for i := range n + 1 {
		ts := float64(i) / float64(n)
		p := c.Eval(ts)
		p1 := c.Eval(ts + delta)
		dApprox := p1.Sub(p).Mul(1.0 / delta)
		d := c.Deriv(ts)
		if l := d.Sub(dApprox).Hypot(); l >= delta*2 {
			t.Errorf("got difference of %g, want at most %g", l, delta*2)
		}
	}
}

func TestCubicBezEvalEndpoints(t *testing.T) {
	assertNear(t, sCurve.Eval(0), sCurve.P0, 0)
	assertNear(t, sCurve.Eval(1), sCurve.P3, 1e-12)
	diff(t, sCurve.P1.Sub(sCurve.P0).Mul(3), sCurve.Deriv(0), approx)
	diff(t, sCurve.P3.Sub(sCurve.P2).Mul(3), sCurve.Deriv(1), approx)
}

func TestCubicBezSplit(t *testing.T) {
	for _, at := range []float64{0.1, 0.25, 0.5, 0.9} {
		before, after := sCurve.Split(at)
		assertNear(t, before.P3, sCurve.Eval(at), 1e-9)
		assertNear(t, after.P0, sCurve.Eval(at), 1e-9)
		const n = 8
		for i := range n + 1 {
			s := float64(i) / n
			assertNear(t, before.Eval(s), sCurve.Eval(s*at), 1e-9)
			assertNear(t, after.Eval(s), sCurve.Eval(at+s*(1-at)), 1e-9)
		}
	}
}

func TestCubicBezSubsegment(t *testing.T) {
	sub := sCurve.Subsegment(0.2, 0.7)
	for i := range 11 {
		s := float64(i) / 10
		assertNear(t, sub.Eval(s), sCurve.Eval(0.2+s*0.5), 1e-9)
	}
}

func TestCubicBezIsLine(t *testing.T) {
	tests := []struct {
		c    CubicBez
		want bool
	}{
		{CubicBez{Pt(0, 0), Pt(0, 0), Pt(10, 10), Pt(10, 10)}, true},
		{CubicBez{Pt(0, 0), Pt(3, 3), Pt(6, 6), Pt(10, 10)}, true},
		// Handles beyond the chord still give a constant direction modulo π.
		{CubicBez{Pt(0, 0), Pt(-5, 0), Pt(15, 0), Pt(10, 0)}, true},
		{CubicBez{Pt(0, 0), Pt(0, 0), Pt(0, 0), Pt(0, 0)}, true},
		{sCurve, false},
		{CubicBez{Pt(0, 0), Pt(0, 10), Pt(10, 10), Pt(10, 0)}, false},
	}
	for _, tt := range tests {
		if got := tt.c.IsLine(); got != tt.want {
			t.Errorf("%v.IsLine() = %t, want %t", tt.c, got, tt.want)
		}
	}
}
