package extrude

import (
	"cmp"
	"fmt"
	"math"
	"slices"
)

// Request describes a projection.
type Request struct {
	// Angle is the projection direction in radians.
	Angle float64
	// Distance is the signed extrusion distance along the projection
	// direction.
	Distance float64
	// Invert reverses the draw order and drops the front cap.
	Invert  bool
	Strokes PaintOverride
	Fills   PaintOverride
}

// Offset returns the extrusion offset, Distance along Angle.
func (req Request) Offset() Vec2 {
	return VecFromAngle(req.Angle).Mul(req.Distance)
}

// Source is a flattened path to be projected.
type Source struct {
	Name      string
	Network   VectorNetwork
	Style     Style
	Transform Affine
}

// Shape is a path produced by [Project].
type Shape struct {
	Name      string
	Network   VectorNetwork
	Style     Style
	Transform Affine
}

// Projection is the result of projecting a single source.
type Projection struct {
	// Walls holds one extruded quad per segment of the bisected network, in
	// the order in which they are to be inserted into the document.
	Walls []Shape
	// Cap is the source outline moved by the extrusion offset. It is nil for
	// inverted projections, whose back face is discarded.
	Cap *Shape
	// InsertOffset is the position, relative to the slot directly after the
	// flattened copy of the source, at which every wall is inserted. The copy
	// sits immediately below the source, so an offset of 1 places the walls
	// above the source.
	InsertOffset int
}

// Shapes returns the walls followed by the cap, if any.
func (p Projection) Shapes() []Shape {
	out := slices.Clone(p.Walls)
	if p.Cap != nil {
		out = append(out, *p.Cap)
	}
	return out
}

// Project bisects a copy of the source's network at its silhouette points and
// extrudes every resulting segment into a quad. src isn't modified. A source
// without segments produces an empty projection.
func Project(src Source, req Request) Projection {
	if src.Network.IsEmpty() {
		return Projection{}
	}
	network := src.Network.Clone()
	_, target := localDirection(src.Transform, req.Angle+math.Pi/2)
	bisect(&network, target)
	return Extrude(&network, src, req)
}

// Extrude builds the wall quads and the cap for an already bisected network.
func Extrude(n *VectorNetwork, src Source, req Request) Projection {
	if n.IsEmpty() {
		return Projection{}
	}
	fills := req.Fills.Resolve(src.Style.Fills)
	strokes := req.Strokes.Resolve(src.Style.Strokes)
	dir, _ := localDirection(src.Transform, req.Angle)
	offset := dir.Mul(req.Distance)

	order := sortSegments(n, dir)
	out := Projection{
		Walls: make([]Shape, 0, len(order)),
	}
	if req.Invert {
		out.InsertOffset = 1
	}
	for i := range order {
		seg := n.Segments[order[DrawIndex(i, len(order), req.Distance, req.Invert)]]
		wall := Shape{
			Name:    fmt.Sprintf("%d %d", seg.Start, seg.End),
			Network: extrudeSegment(n, seg, offset),
			Style: Style{
				Fills:        slices.Clone(fills),
				Strokes:      slices.Clone(strokes),
				StrokeWeight: src.Style.StrokeWeight,
				StrokeAlign:  src.Style.StrokeAlign,
				StrokeCap:    src.Style.StrokeCap,
				StrokeJoin:   JoinRound,
				DashPattern:  slices.Clone(src.Style.DashPattern),
			},
			Transform: src.Transform,
		}
		out.Walls = append(out.Walls, wall)
	}

	if !req.Invert {
		style := src.Style.Clone()
		style.Fills = fills
		style.Strokes = strokes
		out.Cap = &Shape{
			Name:      src.Name,
			Network:   n.Clone(),
			Style:     style,
			Transform: src.Transform.ThenTranslate(req.Offset()),
		}
	}
	return out
}

// SortSegments returns the indices of n's segments, stably sorted by the
// projection of their endpoints' midpoint onto the direction th.
func SortSegments(n *VectorNetwork, th float64) []int {
	return sortSegments(n, VecFromAngle(th))
}

func sortSegments(n *VectorNetwork, dir Vec2) []int {
	dists := make([]float64, len(n.Segments))
	order := make([]int, len(n.Segments))
	for i := range n.Segments {
		// TODO: use the point of the curve farthest along dir instead of
		// the midpoint of the endpoints. This needs the tangents perpendicular
		// to dir.
		dists[i] = Vec2(n.Midpoint(i)).Dot(dir)
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(dists[a], dists[b])
	})
	return order
}

// localDirection maps the projection direction th into the coordinate system
// of a source placed by aff, where the walls are built, and returns it along
// with its angle. Offsetting local vertices by the returned vector moves them
// by one unit along th in the parent's coordinates. Transforms without an
// inverse leave the direction unchanged.
func localDirection(aff Affine, th float64) (Vec2, float64) {
	dir := VecFromAngle(th)
	linear := aff.WithTranslation(Vec2{})
	if linear == Identity {
		return dir, th
	}
	inv := linear.Invert()
	if inv.IsNaN() {
		return dir, th
	}
	local := dir.Transform(inv)
	if local.IsNaN() || local.IsZero() {
		return dir, th
	}
	return local, local.Angle()
}

// DrawIndex maps the i-th of count emitted walls to a position in the sorted
// segment order. Walls are emitted from the far end for non-negative
// distances, and the order is reversed once more for inverted projections.
func DrawIndex(i, count int, distance float64, invert bool) int {
	j := count - 1 - i
	if distance < 0 {
		j = i
	}
	if invert {
		j = count - 1 - j
	}
	return j
}

// extrudeSegment builds the closed quad between seg and its copy translated
// by offset. The copy runs backwards so that the outline doesn't intersect
// itself.
func extrudeSegment(n *VectorNetwork, seg Segment, offset Vec2) VectorNetwork {
	start := n.Vertices[seg.Start]
	end := n.Vertices[seg.End]
	return VectorNetwork{
		Vertices: []Point{
			start,
			end,
			end.Translate(offset),
			start.Translate(offset),
		},
		Segments: []Segment{
			{Start: 0, End: 1, TangentStart: seg.TangentStart, TangentEnd: seg.TangentEnd},
			{Start: 1, End: 2},
			{Start: 2, End: 3, TangentStart: seg.TangentEnd, TangentEnd: seg.TangentStart},
			{Start: 3, End: 0},
		},
		Regions: []Region{{Loops: []Loop{{0, 1, 2, 3}}}},
	}
}
