package extrude

import (
	"math"
)

const (
	// tangentMargin is the minimum distance of a tangent parameter from either
	// end of the curve. It doubles as the threshold for treating two
	// parameters as the same tangent point.
	tangentMargin = 1e-1
	// tangentTolerance is the maximum angular error, in radians and modulo π,
	// accepted when verifying a candidate.
	tangentTolerance = 0.1

	solverTolerance     = 1e-4
	solverMaxIterations = 100
	solverSeedMargin    = 1e-4
	// solverStall is the threshold on the change between consecutive steps
	// below which the iteration is considered to oscillate.
	solverStall = 1e-2
	// solverDamping scales the step while oscillating.
	solverDamping = 0.5
)

// noSolution is returned by the single-seed solver when it doesn't converge.
const noSolution = -1

// FindTangents returns the parameters t ∈ (0.1, 0.9) at which the tangent of c
// is parallel to the direction th, in radians. Tangents are direction-agnostic;
// a tangent pointing in th+π matches as well.
//
// The curve is searched from six seeds: near 0, near 1, and 0.5, each with
// both sign conventions of the angular error. Failed and duplicate runs are
// discarded, as are results whose tangent doesn't match th within 0.1 radians.
// Typical cubics produce zero, one or two parameters, in the order in which
// the seeds found them.
//
// Curves whose control points are collinear have a constant tangent
// direction; they either never match th or match it everywhere, and no
// parameter is returned for them, nor for curves with NaN control points.
func FindTangents(c CubicBez, th float64) []float64 {
	if c.IsNaN() || c.IsLine() {
		return nil
	}
	seeds := [...]float64{solverSeedMargin, 1 - solverSeedMargin, 0.5}
	var raw [2 * len(seeds)]float64
	for i, seed := range seeds {
		raw[2*i] = findTangent(c, th, seed, true)
		raw[2*i+1] = findTangent(c, th, seed, false)
	}

	var out []float64
outer:
	for _, t := range raw {
		if t <= tangentMargin || t >= 1-tangentMargin {
			continue
		}
		for _, o := range out {
			if math.Abs(wrapHalfTurn(t-o)) < tangentMargin {
				continue outer
			}
		}
		if math.Abs(wrapHalfTurn(c.Deriv(t).Angle()-th)) > tangentTolerance {
			continue
		}
		out = append(out, t)
	}
	return out
}

// findTangent runs the damped fixed-point iteration from a single seed. It
// returns noSolution if an iterate leaves [0, 1] or the iteration didn't
// settle.
//
// The error is the angular difference between the tangent at the current
// estimate and th, measured in half turns and wrapped into [-0.5, 0.5). flip
// selects which of the two differences, tangent−th or th−tangent, drives the
// step; depending on the curvature only one of them moves towards the root.
func findTangent(c CubicBez, th float64, seed float64, flip bool) float64 {
	ts := make([]float64, 1, solverMaxIterations+1)
	ts[0] = seed
	diff := math.Inf(1)
	for i := 0; math.Abs(diff) > solverTolerance && i < solverMaxIterations; i++ {
		d := c.Deriv(ts[i]).Angle() - th
		if flip {
			d = -d
		}
		diff = mod(d/math.Pi+0.5, 1) - 0.5

		scale := 1.0
		if i > 4 && stalled(ts) && math.Abs(diff) > solverStall {
			scale = solverDamping
		}

		next := ts[i] + scale*0.5*diff
		ts = append(ts, next)
		if next < 0 || next > 1 {
			return noSolution
		}
	}
	if len(ts) >= 4 && !stalled(ts) {
		return noSolution
	}
	return ts[len(ts)-1]
}

// stalled reports whether the last two steps recorded in ts are of nearly
// equal size.
func stalled(ts []float64) bool {
	n := len(ts)
	return math.Abs((ts[n-1]-ts[n-2])-(ts[n-3]-ts[n-4])) < solverStall
}

// wrapHalfTurn reduces an angle modulo π into [-π/2, π/2).
func wrapHalfTurn(th float64) float64 {
	return mod(th+math.Pi/2, math.Pi) - math.Pi/2
}

// mod returns x modulo n, with the sign of n.
func mod(x, n float64) float64 {
	return math.Mod(math.Mod(x, n)+n, n)
}
