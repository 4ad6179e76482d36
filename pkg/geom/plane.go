// Package geom provides the polygon primitives the BSP and mesh layers are
// built on: oriented planes, planar polygons, and the split, clip and merge
// operations between them. Vectors are sdfx v3.Vec values so geometry can
// flow to and from sdfx transforms and bounding boxes without conversion.
package geom

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Vector is a point or direction in model space.
type Vector = v3.Vec

// Epsilon is the distance below which two points, or a point and a plane,
// are treated as coincident.
const Epsilon = 1e-8

// PlaneComparison classifies a polygon against a plane. Front and Back are
// bit flags so that combining vertex classes yields Spanning.
type PlaneComparison int

const (
	Coplanar PlaneComparison = 0
	Front    PlaneComparison = 1
	Back     PlaneComparison = 2
	Spanning PlaneComparison = Front | Back
)

func (c PlaneComparison) String() string {
	switch c {
	case Coplanar:
		return "coplanar"
	case Front:
		return "front"
	case Back:
		return "back"
	case Spanning:
		return "spanning"
	default:
		return "unknown"
	}
}

// Plane is an oriented plane: the points p with Normal·p == W. Normal is unit
// length and points to the front half-space.
type Plane struct {
	Normal Vector
	W      float64
}

// NewPlane returns the plane through point with the given normal.
func NewPlane(normal, point Vector) Plane {
	n := normal.Normalize()
	return Plane{Normal: n, W: n.Dot(point)}
}

// PlaneFromPoints fits a plane through a closed loop of points using
// Newell's method. The normal follows the right-hand rule over the loop
// order. It returns false when the loop has no area.
func PlaneFromPoints(points []Vector) (Plane, bool) {
	if len(points) < 3 {
		return Plane{}, false
	}
	var n, centroid Vector
	for i, a := range points {
		b := points[(i+1)%len(points)]
		n.X += (a.Y - b.Y) * (a.Z + b.Z)
		n.Y += (a.Z - b.Z) * (a.X + b.X)
		n.Z += (a.X - b.X) * (a.Y + b.Y)
		centroid = centroid.Add(a)
	}
	length := n.Length()
	if length < Epsilon {
		return Plane{}, false
	}
	n = n.DivScalar(length)
	centroid = centroid.DivScalar(float64(len(points)))
	return Plane{Normal: n, W: n.Dot(centroid)}, true
}

// Distance returns the signed distance from p to the plane; positive values
// are in front.
func (p Plane) Distance(v Vector) float64 {
	return p.Normal.Dot(v) - p.W
}

// IsEqual reports whether two planes are the same oriented plane within
// Epsilon.
func (p Plane) IsEqual(other Plane) bool {
	return p.Normal.Equals(other.Normal, Epsilon) && math.Abs(p.W-other.W) < Epsilon
}

// Flipped returns the plane facing the opposite direction.
func (p Plane) Flipped() Plane {
	return Plane{Normal: p.Normal.Neg(), W: -p.W}
}

// Translated returns the plane moved by offset.
func (p Plane) Translated(offset Vector) Plane {
	return Plane{Normal: p.Normal, W: p.W + p.Normal.Dot(offset)}
}

// classify returns the side of the plane a single point lies on.
func (p Plane) classify(v Vector) PlaneComparison {
	t := p.Distance(v)
	switch {
	case t < -Epsilon:
		return Back
	case t > Epsilon:
		return Front
	default:
		return Coplanar
	}
}
