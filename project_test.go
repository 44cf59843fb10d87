package extrude

import (
	"math"
	"slices"
	"testing"
)

func squareSource() Source {
	return Source{
		Name:    "square",
		Network: square(),
		Style: Style{
			Fills:        []Paint{SolidPaint(RGB{1, 0, 0}, 1)},
			Strokes:      []Paint{SolidPaint(Black, 0.5)},
			StrokeWeight: 2,
			StrokeAlign:  StrokeInside,
			StrokeCap:    CapSquare,
			StrokeJoin:   JoinMiter,
			DashPattern:  []float64{4, 2},
		},
		Transform: Affine{2, 0, 0, 2, 10, 20},
	}
}

func keep() PaintOverride { return PaintOverride{Enabled: true} }

func wallNames(p Projection) []string {
	var names []string
	for _, w := range p.Walls {
		names = append(names, w.Name)
	}
	return names
}

func TestProjectSquare(t *testing.T) {
	src := squareSource()
	p := Project(src, Request{
		Angle:    0,
		Distance: 100,
		Strokes:  keep(),
		Fills:    keep(),
	})

	if got := len(p.Shapes()); got != 5 {
		t.Fatalf("got %d shapes, want 5", got)
	}
	// The source is scaled by 2, so the offset of 100 is 50 in its own
	// coordinates.
	// Sorted by x midpoint: 3 (0), 0 (50), 2 (50), 1 (100); emitted in
	// reverse for positive distances.
	diff(t, []string{"1 2", "2 3", "0 1", "3 0"}, wallNames(p))
	diff(t, 0, p.InsertOffset)

	wantVerts := [][]Point{
		{Pt(100, 0), Pt(100, 100), Pt(150, 100), Pt(150, 0)},
		{Pt(100, 100), Pt(0, 100), Pt(50, 100), Pt(150, 100)},
		{Pt(0, 0), Pt(100, 0), Pt(150, 0), Pt(50, 0)},
		{Pt(0, 100), Pt(0, 0), Pt(50, 0), Pt(50, 100)},
	}
	for i, w := range p.Walls {
		diff(t, wantVerts[i], w.Network.Vertices, approx)
		if err := w.Network.Validate(); err != nil {
			t.Errorf("wall %d: %s", i, err)
		}
		diff(t, JoinRound, w.Style.StrokeJoin)
		diff(t, src.Style.Fills, w.Style.Fills)
		diff(t, src.Style.Strokes, w.Style.Strokes)
		diff(t, 2.0, w.Style.StrokeWeight)
		diff(t, StrokeInside, w.Style.StrokeAlign)
		diff(t, CapSquare, w.Style.StrokeCap)
		diff(t, []float64{4, 2}, w.Style.DashPattern)
		diff(t, src.Transform, w.Transform)
	}

	if p.Cap == nil {
		t.Fatal("missing cap")
	}
	diff(t, "square", p.Cap.Name)
	diff(t, square(), p.Cap.Network)
	diff(t, Affine{2, 0, 0, 2, 110, 20}, p.Cap.Transform, approx)
	diff(t, JoinMiter, p.Cap.Style.StrokeJoin)

	// The source is left alone.
	diff(t, squareSource(), src)
}

func TestProjectWallEdges(t *testing.T) {
	src := Source{Name: "circle", Network: circle(50), Transform: Identity}
	req := Request{Angle: math.Pi / 2, Distance: 30, Strokes: keep(), Fills: keep()}
	p := Project(src, req)

	if len(p.Walls) != 6 {
		t.Fatalf("got %d walls, want 6", len(p.Walls))
	}
	offset := req.Offset()
	for _, w := range p.Walls {
		base := w.Network.Cubic(0)
		top := w.Network.Cubic(2)
		// The far edge is the base edge moved by the offset, running
		// backwards.
		want := CubicBez{
			base.P3.Translate(offset),
			base.P2.Translate(offset),
			base.P1.Translate(offset),
			base.P0.Translate(offset),
		}
		diff(t, want, top, approx)
		for _, s := range []int{1, 3} {
			if !w.Network.Cubic(s).IsLine() {
				t.Errorf("wall %s: side %d isn't straight", w.Name, s)
			}
		}
	}
	// Every edge of the bisected cap appears as the base of exactly one wall.
	for i := range p.Cap.Network.Segments {
		c := p.Cap.Network.Cubic(i)
		found := 0
		for _, w := range p.Walls {
			if sameCurve(w.Network.Cubic(0), c, 1e-9) {
				found++
			}
		}
		if found != 1 {
			t.Errorf("cap segment %d is the base of %d walls", i, found)
		}
	}
}

func transformCubic(c CubicBez, aff Affine) CubicBez {
	return CubicBez{c.P0.Transform(aff), c.P1.Transform(aff), c.P2.Transform(aff), c.P3.Transform(aff)}
}

func TestProjectWallsMeetCap(t *testing.T) {
	for _, aff := range []Affine{
		Identity,
		{2, 0, 0, 2, 10, 20},
		Rotate(0.5).Mul(Scale(2, 3)).ThenTranslate(Vec(10, 20)),
		{1, 0.5, -0.25, 1.5, -30, 5},
	} {
		src := Source{Name: "circle", Network: circle(50), Transform: aff}
		req := Request{Angle: 0.3, Distance: 40, Strokes: keep(), Fills: keep()}
		p := Project(src, req)
		if p.Cap == nil {
			t.Fatal("missing cap")
		}
		if len(p.Walls) != len(p.Cap.Network.Segments) {
			t.Fatalf("%v: got %d walls for %d cap segments", aff, len(p.Walls), len(p.Cap.Network.Segments))
		}
		for _, w := range p.Walls {
			diff(t, aff, w.Transform)
			base := transformCubic(w.Network.Cubic(0), w.Transform)
			far := transformCubic(w.Network.Cubic(2), w.Transform)
			found := false
			for i := range p.Cap.Network.Segments {
				c := p.Cap.Network.Cubic(i)
				if sameCurve(base, transformCubic(c, src.Transform), 1e-6) &&
					sameCurve(far, transformCubic(c, p.Cap.Transform), 1e-6) {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("%v: wall %s doesn't connect the source to the cap", aff, w.Name)
			}
		}
	}
}

func TestProjectSingularTransform(t *testing.T) {
	src := squareSource()
	src.Transform = Affine{0, 0, 0, 1, 5, 5}
	p := Project(src, Request{Angle: 0, Distance: 10, Strokes: keep(), Fills: keep()})
	if len(p.Walls) != 4 {
		t.Fatalf("got %d walls, want 4", len(p.Walls))
	}
	for _, w := range p.Walls {
		for _, v := range w.Network.Vertices {
			if v.IsNaN() {
				t.Fatalf("wall %s has NaN vertices", w.Name)
			}
		}
	}
}

func TestProjectInvert(t *testing.T) {
	src := squareSource()
	req := Request{Angle: 0, Distance: 100, Strokes: keep(), Fills: keep()}
	normal := Project(src, req)
	req.Invert = true
	inverted := Project(src, req)

	if inverted.Cap != nil {
		t.Error("inverted projection kept the cap")
	}
	diff(t, 1, inverted.InsertOffset)
	names := wallNames(normal)
	slices.Reverse(names)
	diff(t, names, wallNames(inverted))
}

func TestProjectNegativeDistance(t *testing.T) {
	src := squareSource()
	p := Project(src, Request{Angle: 0, Distance: -100, Strokes: keep(), Fills: keep()})
	diff(t, []string{"3 0", "0 1", "2 3", "1 2"}, wallNames(p))
	diff(t, []Point{Pt(0, 100), Pt(0, 0), Pt(-50, 0), Pt(-50, 100)}, p.Walls[0].Network.Vertices, approx)
}

func TestProjectZeroDistance(t *testing.T) {
	p := Project(squareSource(), Request{Angle: math.Pi / 3, Distance: 0, Strokes: keep(), Fills: keep()})
	if len(p.Walls) != 4 {
		t.Fatalf("got %d walls, want 4", len(p.Walls))
	}
	for _, w := range p.Walls {
		v := w.Network.Vertices
		diff(t, v[1], v[2])
		diff(t, v[0], v[3])
	}
	if p.Cap == nil {
		t.Fatal("missing cap")
	}
}

func TestProjectEmpty(t *testing.T) {
	p := Project(Source{Transform: Identity}, Request{Distance: 10})
	if len(p.Shapes()) != 0 {
		t.Errorf("got %d shapes, want none", len(p.Shapes()))
	}
}

func TestProjectPaintOverrides(t *testing.T) {
	green := SolidPaint(RGB{0, 1, 0}, 0.25)
	p := Project(squareSource(), Request{
		Distance: 10,
		Strokes:  PaintOverride{Enabled: false},
		Fills:    PaintOverride{Enabled: true, Paint: &green},
	})
	for _, s := range p.Shapes() {
		diff(t, []Paint{green}, s.Style.Fills)
		diff(t, []Paint{}, s.Style.Strokes)
	}
}

func TestDrawIndex(t *testing.T) {
	tests := []struct {
		distance float64
		invert   bool
		want     []int
	}{
		{1, false, []int{3, 2, 1, 0}},
		{0, false, []int{3, 2, 1, 0}},
		{-1, false, []int{0, 1, 2, 3}},
		{1, true, []int{0, 1, 2, 3}},
		{-1, true, []int{3, 2, 1, 0}},
	}
	for _, tt := range tests {
		var got []int
		for i := range 4 {
			got = append(got, DrawIndex(i, 4, tt.distance, tt.invert))
		}
		diff(t, tt.want, got)
	}
}

func TestSortSegmentsStable(t *testing.T) {
	n := square()
	diff(t, []int{3, 0, 2, 1}, SortSegments(&n, 0))
	diff(t, []int{1, 0, 2, 3}, SortSegments(&n, math.Pi))
}

func TestPaintOverrideResolve(t *testing.T) {
	own := []Paint{SolidPaint(RGB{1, 1, 1}, 1)}
	red := SolidPaint(RGB{1, 0, 0}, 1)
	diff(t, []Paint{}, PaintOverride{}.Resolve(own))
	diff(t, []Paint{}, PaintOverride{Paint: &red}.Resolve(own))
	diff(t, own, PaintOverride{Enabled: true}.Resolve(own))
	diff(t, []Paint{red}, PaintOverride{Enabled: true, Paint: &red}.Resolve(own))
}
