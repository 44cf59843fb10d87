// Package extrude fakes a 2.5-D projection of flat vector paths. A path's
// outline is cut at its silhouette points for a chosen projection angle, and
// every resulting edge is extruded into a quad along that angle. Layered in
// the right order, the quads and the translated outline look like a solid.
//
// # Vector networks
//
// Paths are represented as a [VectorNetwork]: an arena of vertices and cubic
// segments, plus regions made up of loops of segment indices. Segment handles
// are stored relative to their vertices, so moving a vertex carries its
// handles along.
//
// # Pipeline
//
// The work happens in three steps, each usable on its own:
//
//   - [FindTangents] locates the parameters at which a [CubicBez] has a given
//     tangent direction, using a damped fixed-point iteration from six seeds.
//   - [Bisect] splits every segment of a network at the points where its
//     tangent is perpendicular to the projection direction, keeping loops
//     connected.
//   - [Extrude] orders the segments along the projection direction and builds
//     one closed quad per segment, plus the translated outline ("cap").
//
// [Project] runs the last two steps on a copy of a [Source].
//
// # Ordering
//
// Walls are emitted from far to near so that inserting them one after
// another at the same position of a document yields correct self-occlusion.
// The sign of the distance and the Invert flag each reverse the order.
// Segments are ranked by the midpoint of their endpoints, which is an
// approximation of their extent along the projection direction.
//
// # Errors
//
// Projection itself cannot fail. Degenerate input, such as an empty network,
// produces no shapes, and tangent searches that don't converge are dropped.
package extrude
