package geom

import (
	"math"

	"github.com/deadsy/sdfx/sdf"
)

// Polygon is a planar polygon with counter-clockwise winding when viewed
// from the front of its plane.
//
// ID tags fragments produced by splitting: every piece cut from the same
// source polygon within one clip operation carries the same non-zero ID so
// the pieces can be merged back together. Zero means the polygon has never
// been split.
type Polygon struct {
	Vertices []Vector
	Plane    Plane
	ID       int
}

// NewPolygon builds a polygon from a vertex loop, dropping repeated
// vertices. It returns false if fewer than three distinct vertices remain or
// the loop has no area.
func NewPolygon(vertices []Vector) (Polygon, bool) {
	verts := make([]Vector, 0, len(vertices))
	for _, v := range vertices {
		if len(verts) > 0 && verts[len(verts)-1].Equals(v, Epsilon) {
			continue
		}
		verts = append(verts, v)
	}
	for len(verts) > 1 && verts[0].Equals(verts[len(verts)-1], Epsilon) {
		verts = verts[:len(verts)-1]
	}
	if len(verts) < 3 {
		return Polygon{}, false
	}
	plane, ok := PlaneFromPoints(verts)
	if !ok {
		return Polygon{}, false
	}
	return Polygon{Vertices: verts, Plane: plane}, true
}

// Clone returns a copy that shares no vertex storage with p.
func (p Polygon) Clone() Polygon {
	verts := make([]Vector, len(p.Vertices))
	copy(verts, p.Vertices)
	return Polygon{Vertices: verts, Plane: p.Plane, ID: p.ID}
}

// WithID returns a copy of p tagged with id.
func (p Polygon) WithID(id int) Polygon {
	p.ID = id
	return p
}

// Compare classifies the polygon against plane.
func (p Polygon) Compare(plane Plane) PlaneComparison {
	var c PlaneComparison
	for _, v := range p.Vertices {
		c |= plane.classify(v)
		if c == Spanning {
			break
		}
	}
	return c
}

// IsConvex reports whether every corner turns the same way as the polygon's
// normal. Collinear corners are allowed.
func (p Polygon) IsConvex() bool {
	n := len(p.Vertices)
	if n < 3 {
		return false
	}
	for i := range p.Vertices {
		a := p.Vertices[i]
		b := p.Vertices[(i+1)%n]
		c := p.Vertices[(i+2)%n]
		if b.Sub(a).Cross(c.Sub(b)).Dot(p.Plane.Normal) < -Epsilon {
			return false
		}
	}
	return true
}

// Inverted returns the polygon facing the other way.
func (p Polygon) Inverted() Polygon {
	n := len(p.Vertices)
	verts := make([]Vector, n)
	for i, v := range p.Vertices {
		verts[n-1-i] = v
	}
	return Polygon{Vertices: verts, Plane: p.Plane.Flipped(), ID: p.ID}
}

// Translated returns the polygon moved by offset.
func (p Polygon) Translated(offset Vector) Polygon {
	verts := make([]Vector, len(p.Vertices))
	for i, v := range p.Vertices {
		verts[i] = v.Add(offset)
	}
	return Polygon{Vertices: verts, Plane: p.Plane.Translated(offset), ID: p.ID}
}

// Transformed applies an affine transform to every vertex and refits the
// plane. The transform is expected to be rigid or at least non-mirroring;
// the winding is preserved as given.
func (p Polygon) Transformed(m sdf.M44) (Polygon, bool) {
	verts := make([]Vector, len(p.Vertices))
	for i, v := range p.Vertices {
		verts[i] = m.MulPosition(v)
	}
	plane, ok := PlaneFromPoints(verts)
	if !ok {
		return Polygon{}, false
	}
	return Polygon{Vertices: verts, Plane: plane, ID: p.ID}, true
}

// Area returns the polygon's surface area.
func (p Polygon) Area() float64 {
	if len(p.Vertices) < 3 {
		return 0
	}
	var sum Vector
	origin := p.Vertices[0]
	for i := 1; i+1 < len(p.Vertices); i++ {
		a := p.Vertices[i].Sub(origin)
		b := p.Vertices[i+1].Sub(origin)
		sum = sum.Add(a.Cross(b))
	}
	return math.Abs(sum.Dot(p.Plane.Normal)) / 2
}

// Bounds returns the axis-aligned box enclosing the polygon.
func (p Polygon) Bounds() sdf.Box3 {
	if len(p.Vertices) == 0 {
		return sdf.Box3{}
	}
	box := sdf.Box3{Min: p.Vertices[0], Max: p.Vertices[0]}
	for _, v := range p.Vertices[1:] {
		box.Min = box.Min.Min(v)
		box.Max = box.Max.Max(v)
	}
	return box
}

// Edges returns the polygon's directed edges in winding order.
func (p Polygon) Edges() [][2]Vector {
	n := len(p.Vertices)
	edges := make([][2]Vector, n)
	for i, v := range p.Vertices {
		edges[i] = [2]Vector{v, p.Vertices[(i+1)%n]}
	}
	return edges
}

// edgePlanes returns, for a convex polygon, one plane per edge perpendicular
// to the polygon with its front facing away from the interior.
func (p Polygon) edgePlanes() []Plane {
	n := len(p.Vertices)
	planes := make([]Plane, 0, n)
	for i, a := range p.Vertices {
		b := p.Vertices[(i+1)%n]
		normal := b.Sub(a).Cross(p.Plane.Normal)
		if normal.Length() < Epsilon {
			continue
		}
		planes = append(planes, NewPlane(normal, a))
	}
	return planes
}
