package extrude

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

var approx = cmpopts.EquateApprox(0, 1e-9)

func assertNear(t *testing.T, got, want Point, epsilon float64) {
	t.Helper()
	if d := got.Distance(want); d > epsilon {
		t.Fatalf("got %s, expected %s", got, want)
	}
}

// square returns a closed 100×100 square with straight edges.
func square() VectorNetwork {
	return VectorNetwork{
		Vertices: []Point{Pt(0, 0), Pt(100, 0), Pt(100, 100), Pt(0, 100)},
		Segments: []Segment{
			{Start: 0, End: 1},
			{Start: 1, End: 2},
			{Start: 2, End: 3},
			{Start: 3, End: 0},
		},
		Regions: []Region{{Loops: []Loop{{0, 1, 2, 3}}}},
	}
}

// circle returns a circle of radius r around the origin made of four cubic
// arcs. The vertices sit at 45°, 135°, 225° and 315°, so that the arcs'
// horizontal and vertical tangents fall in their middles.
func circle(r float64) VectorNetwork {
	// Handle length for a quarter circle.
	k := 4.0 / 3.0 * math.Tan(math.Pi/8) * r
	var n VectorNetwork
	for i := range 4 {
		th := math.Pi/4 + float64(i)*math.Pi/2
		n.Vertices = append(n.Vertices, Point(VecFromAngle(th).Mul(r)))
	}
	for i := range 4 {
		th0 := math.Pi/4 + float64(i)*math.Pi/2
		th1 := th0 + math.Pi/2
		n.Segments = append(n.Segments, Segment{
			Start:        i,
			End:          (i + 1) % 4,
			TangentStart: VecFromAngle(th0 + math.Pi/2).Mul(k),
			TangentEnd:   VecFromAngle(th1 - math.Pi/2).Mul(k),
		})
	}
	n.Regions = []Region{{Loops: []Loop{{0, 1, 2, 3}}}}
	return n
}

// sCurve has vertical tangents at t = (700 ± √70000) / 1400.
var sCurve = CubicBez{Pt(0, 0), Pt(150, 50), Pt(-50, 100), Pt(100, 150)}

var sCurveTangents = []float64{
	(700 - math.Sqrt(70000)) / 1400,
	(700 + math.Sqrt(70000)) / 1400,
}

var endpointsOnly = cmpopts.IgnoreFields(Segment{}, "TangentStart", "TangentEnd")
