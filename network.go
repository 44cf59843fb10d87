package extrude

import (
	"errors"
	"fmt"
	"iter"
	"slices"
)

var (
	ErrInvalidIndex = errors.New("index out of range")
	ErrBrokenLoop   = errors.New("loop is not connected")
	ErrNaN          = errors.New("coordinate is NaN")
)

// Segment is a cubic Bézier between two vertices of a [VectorNetwork].
//
// TangentStart and TangentEnd are offsets from the start and end vertex to the
// two interior control points. Zero handles describe a straight edge.
type Segment struct {
	Start        int  `yaml:"start" json:"start"`
	End          int  `yaml:"end" json:"end"`
	TangentStart Vec2 `yaml:"tangentStart,omitempty" json:"tangentStart,omitzero"`
	TangentEnd   Vec2 `yaml:"tangentEnd,omitempty" json:"tangentEnd,omitzero"`
}

// Loop is a closed boundary, as a cyclic sequence of segment indices.
type Loop []int

// Region is a fillable area bounded by one or more loops.
type Region struct {
	Loops []Loop `yaml:"loops" json:"loops"`
}

// VectorNetwork is a planar graph of vertices and cubic segments, grouped
// into regions. Segments refer to vertices and loops refer to segments by
// index.
type VectorNetwork struct {
	Vertices []Point   `yaml:"vertices" json:"vertices"`
	Segments []Segment `yaml:"segments" json:"segments"`
	Regions  []Region  `yaml:"regions,omitempty" json:"regions,omitempty"`
}

// Clone returns a deep copy of the network.
func (n *VectorNetwork) Clone() VectorNetwork {
	out := VectorNetwork{
		Vertices: slices.Clone(n.Vertices),
		Segments: slices.Clone(n.Segments),
	}
	if n.Regions != nil {
		out.Regions = make([]Region, len(n.Regions))
		for i, r := range n.Regions {
			loops := make([]Loop, len(r.Loops))
			for j, l := range r.Loops {
				loops[j] = slices.Clone(l)
			}
			out.Regions[i] = Region{Loops: loops}
		}
	}
	return out
}

// IsEmpty reports whether the network has no segments.
func (n *VectorNetwork) IsEmpty() bool {
	return len(n.Segments) == 0
}

// Cubic returns segment i as a cubic Bézier with absolute control points,
// interpreting its handles relative to the current endpoint vertices.
func (n *VectorNetwork) Cubic(i int) CubicBez {
	seg := n.Segments[i]
	p0 := n.Vertices[seg.Start]
	p3 := n.Vertices[seg.End]
	return CubicBez{
		P0: p0,
		P1: p0.Translate(seg.TangentStart),
		P2: p3.Translate(seg.TangentEnd),
		P3: p3,
	}
}

// Midpoint returns the average of the two endpoint vertices of segment i.
func (n *VectorNetwork) Midpoint(i int) Point {
	seg := n.Segments[i]
	return n.Vertices[seg.Start].Midpoint(n.Vertices[seg.End])
}

// Center returns the average of all vertices. It returns the zero point for
// a network without vertices.
func (n *VectorNetwork) Center() Point {
	if len(n.Vertices) == 0 {
		return Point{}
	}
	var acc Vec2
	for _, v := range n.Vertices {
		acc = acc.Add(Vec2(v))
	}
	return Point(acc.Mul(1 / float64(len(n.Vertices))))
}

// ControlBox returns the bounding box of all vertices and control points,
// which encloses the network's curves.
func (n *VectorNetwork) ControlBox() (Rect, bool) {
	if len(n.Vertices) == 0 {
		return Rect{}, false
	}
	r := NewRectFromPoints(n.Vertices[0], n.Vertices[0])
	for _, v := range n.Vertices {
		r = r.UnionPoint(v)
	}
	for i := range n.Segments {
		c := n.Cubic(i)
		r = r.UnionPoint(c.P1).UnionPoint(c.P2)
	}
	return r, true
}

// Transform applies aff to the vertices and handles of the network.
func (n *VectorNetwork) Transform(aff Affine) {
	for i, v := range n.Vertices {
		n.Vertices[i] = v.Transform(aff)
	}
	for i, seg := range n.Segments {
		seg.TangentStart = seg.TangentStart.Transform(aff)
		seg.TangentEnd = seg.TangentEnd.Transform(aff)
		n.Segments[i] = seg
	}
}

// Append adds the vertices, segments and regions of o to n, offsetting o's
// indices.
func (n *VectorNetwork) Append(o VectorNetwork) {
	vOff := len(n.Vertices)
	sOff := len(n.Segments)
	n.Vertices = append(n.Vertices, o.Vertices...)
	for _, seg := range o.Segments {
		seg.Start += vOff
		seg.End += vOff
		n.Segments = append(n.Segments, seg)
	}
	for _, r := range o.Regions {
		loops := make([]Loop, len(r.Loops))
		for i, l := range r.Loops {
			loops[i] = make(Loop, len(l))
			for j, s := range l {
				loops[i][j] = s + sOff
			}
		}
		n.Regions = append(n.Regions, Region{Loops: loops})
	}
}

// Loops iterates over all loops of all regions.
func (n *VectorNetwork) Loops() iter.Seq[Loop] {
	return func(yield func(Loop) bool) {
		for _, r := range n.Regions {
			for _, l := range r.Loops {
				if !yield(l) {
					return
				}
			}
		}
	}
}

// Validate checks that no coordinate is NaN, that all indices are in range and
// that consecutive segments of every loop share an endpoint.
func (n *VectorNetwork) Validate() error {
	for i, v := range n.Vertices {
		if v.IsNaN() {
			return fmt.Errorf("vertex %d: %w", i, ErrNaN)
		}
	}
	for i, seg := range n.Segments {
		if seg.TangentStart.IsNaN() || seg.TangentEnd.IsNaN() {
			return fmt.Errorf("segment %d: handle: %w", i, ErrNaN)
		}
		if seg.Start < 0 || seg.Start >= len(n.Vertices) {
			return fmt.Errorf("segment %d: start vertex %d: %w", i, seg.Start, ErrInvalidIndex)
		}
		if seg.End < 0 || seg.End >= len(n.Vertices) {
			return fmt.Errorf("segment %d: end vertex %d: %w", i, seg.End, ErrInvalidIndex)
		}
	}
	for ri, r := range n.Regions {
		for li, l := range r.Loops {
			for _, s := range l {
				if s < 0 || s >= len(n.Segments) {
					return fmt.Errorf("region %d, loop %d: segment %d: %w", ri, li, s, ErrInvalidIndex)
				}
			}
			for k := range l {
				a := n.Segments[l[k]]
				b := n.Segments[l[(k+1)%len(l)]]
				if !a.touches(b) {
					return fmt.Errorf("region %d, loop %d: segments %d and %d: %w",
						ri, li, l[k], l[(k+1)%len(l)], ErrBrokenLoop)
				}
			}
		}
	}
	return nil
}

// touches reports whether seg and o share at least one endpoint.
func (seg Segment) touches(o Segment) bool {
	return seg.Start == o.Start || seg.Start == o.End || seg.End == o.Start || seg.End == o.End
}

// Reverse returns the segment with its direction swapped.
func (seg Segment) Reverse() Segment {
	return Segment{
		Start:        seg.End,
		End:          seg.Start,
		TangentStart: seg.TangentEnd,
		TangentEnd:   seg.TangentStart,
	}
}
