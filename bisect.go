package extrude

import (
	"math"
	"slices"
)

// Bisect splits the segments of n at their silhouette points for the
// projection angle th, in radians. A silhouette point is where a segment's
// tangent is perpendicular to the projection direction; after bisection no
// segment crosses one.
//
// Bisect modifies n in place. Split segments keep their slot for the first
// part; the remaining parts are appended to the segment list and inserted
// into every loop that references the original segment, so that loops stay
// closed and connected. New vertices are appended to the vertex list.
func Bisect(n *VectorNetwork, th float64) {
	bisect(n, th+math.Pi/2)
}

// bisect splits the segments of n where their tangent has the direction
// target.
func bisect(n *VectorNetwork, target float64) {
	// Segments appended below are parts of curves that were already searched.
	count := len(n.Segments)
	for s := range count {
		ts := FindTangents(n.Cubic(s), target)
		slices.Sort(ts)
		w := s
		u := 0.0
		for _, t := range ts {
			// Rebase t from the original curve onto the not yet split tail.
			t = (t - u) / (1 - u)
			u += t * (1 - u)
			w = n.split(w, t)
		}
	}
}

// split splits segment w at t and returns the index of the segment that
// covers the part after t, which is where any further split of the same
// curve has to happen.
func (n *VectorNetwork) split(w int, t float64) int {
	seg := n.Segments[w]
	before, after := n.Cubic(w).Split(t)

	mid := len(n.Vertices)
	n.Vertices = append(n.Vertices, after.P0)

	first := Segment{
		Start:        seg.Start,
		End:          mid,
		TangentStart: before.P1.Sub(before.P0),
		TangentEnd:   before.P2.Sub(before.P3),
	}
	second := Segment{
		Start:        mid,
		End:          seg.End,
		TangentStart: after.P1.Sub(after.P0),
		TangentEnd:   after.P2.Sub(after.P3),
	}

	// If the loop enters w through its end vertex, store the parts so that
	// the one kept in w's slot is still the first one the loop visits.
	flipped := n.enteredFromEnd(w)
	if flipped {
		first, second = second, first
	}
	n.Segments[w] = first
	added := len(n.Segments)
	n.Segments = append(n.Segments, second)

	for ri := range n.Regions {
		for li, l := range n.Regions[ri].Loops {
			n.Regions[ri].Loops[li] = n.insertAfterSplit(l, w, added)
		}
	}

	if flipped {
		return w
	}
	return added
}

// enteredFromEnd reports whether the first loop containing segment w
// traverses it from its end vertex to its start vertex, judging by the
// segment preceding it in the loop.
func (n *VectorNetwork) enteredFromEnd(w int) bool {
	for l := range n.Loops() {
		li := slices.Index(l, w)
		if li < 0 {
			continue
		}
		if len(l) == 1 {
			return false
		}
		seg := n.Segments[w]
		prev := n.Segments[l[(li-1+len(l))%len(l)]]
		return seg.End == prev.Start || seg.End == prev.End
	}
	return false
}

// insertAfterSplit inserts added next to w in l, if l contains w. The new
// index goes after w, unless the segment preceding w connects to added
// rather than to w.
func (n *VectorNetwork) insertAfterSplit(l Loop, w, added int) Loop {
	li := slices.Index(l, w)
	if li < 0 {
		return l
	}
	at := li + 1
	if len(l) > 1 {
		prev := n.Segments[l[(li-1+len(l))%len(l)]]
		if !prev.touches(n.Segments[w]) && prev.touches(n.Segments[added]) {
			at = li
		}
	}
	return slices.Insert(l, at, added)
}
