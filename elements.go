package extrude

import (
	"fmt"
	"iter"
	"slices"
)

type PathElementKind int

const (
	// Move directly to the point without drawing anything, starting a new
	// subpath.
	MoveToKind PathElementKind = iota + 1
	// Draw a line from the current location to the point.
	LineToKind
	// Draw a cubic bezier using the current location and the three points.
	CubicToKind
	// Close off the path.
	ClosePathKind
)

// PathElement is a drawing command. A valid sequence of elements has a MoveTo
// at the beginning of each subpath.
type PathElement struct {
	Kind PathElementKind
	P0   Point
	P1   Point
	P2   Point
}

func (el PathElement) String() string {
	var kind string
	switch el.Kind {
	case MoveToKind:
		kind = "MoveTo"
	case LineToKind:
		kind = "LineTo"
	case CubicToKind:
		kind = "CubicTo"
	case ClosePathKind:
		kind = "ClosePath"
	default:
		kind = "InvalidPathElement"
	}
	return fmt.Sprintf("%s(%s, %s, %s)", kind, el.P0, el.P1, el.P2)
}

func MoveTo(pt Point) PathElement {
	return PathElement{Kind: MoveToKind, P0: pt}
}

func LineTo(pt Point) PathElement {
	return PathElement{Kind: LineToKind, P0: pt}
}

func CubicTo(p0, p1, p2 Point) PathElement {
	return PathElement{Kind: CubicToKind, P0: p0, P1: p1, P2: p2}
}

func ClosePath() PathElement {
	return PathElement{Kind: ClosePathKind}
}

// PathElements converts the network to drawing commands. Every loop becomes
// a closed subpath, traversed in loop order. Segments that aren't part of any
// loop become open subpaths of their own.
func (n *VectorNetwork) PathElements() iter.Seq[PathElement] {
	return func(yield func(PathElement) bool) {
		inLoop := make([]bool, len(n.Segments))
		for l := range n.Loops() {
			if len(l) == 0 {
				continue
			}
			for _, s := range l {
				inLoop[s] = true
			}
			if !n.loopElements(l, yield) {
				return
			}
		}
		for i, seg := range n.Segments {
			if inLoop[i] {
				continue
			}
			if !yield(MoveTo(n.Vertices[seg.Start])) || !yield(n.segmentElement(seg)) {
				return
			}
		}
	}
}

func (n *VectorNetwork) loopElements(l Loop, yield func(PathElement) bool) bool {
	first := n.Segments[l[0]]
	if len(l) > 1 {
		next := n.Segments[l[1]]
		if first.End != next.Start && first.End != next.End {
			first = first.Reverse()
		}
	}
	if !yield(MoveTo(n.Vertices[first.Start])) || !yield(n.segmentElement(first)) {
		return false
	}
	cur := first.End
	for _, s := range l[1:] {
		seg := n.Segments[s]
		switch cur {
		case seg.Start:
		case seg.End:
			seg = seg.Reverse()
		default:
			if !yield(MoveTo(n.Vertices[seg.Start])) {
				return false
			}
		}
		if !yield(n.segmentElement(seg)) {
			return false
		}
		cur = seg.End
	}
	return yield(ClosePath())
}

func (n *VectorNetwork) segmentElement(seg Segment) PathElement {
	p0 := n.Vertices[seg.Start]
	p3 := n.Vertices[seg.End]
	if seg.TangentStart.IsZero() && seg.TangentEnd.IsZero() {
		return LineTo(p3)
	}
	return CubicTo(p0.Translate(seg.TangentStart), p3.Translate(seg.TangentEnd), p3)
}

// Elements collects the network's path elements into a slice.
func (n *VectorNetwork) Elements() []PathElement {
	return slices.Collect(n.PathElements())
}
