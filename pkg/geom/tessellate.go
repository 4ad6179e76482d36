package geom

import "slices"

// Tessellate splits p into convex pieces. A convex polygon is returned as
// is. Otherwise p is triangulated and neighbouring triangles are merged
// back together as long as the result stays convex. Pieces keep p's ID.
func (p Polygon) Tessellate() []Polygon {
	if p.IsConvex() {
		return []Polygon{p}
	}
	pieces := p.Triangulate()
	for i := 0; i < len(pieces); i++ {
		for j := i + 1; j < len(pieces); {
			merged, ok := pieces[i].Merge(pieces[j], true)
			if !ok {
				j++
				continue
			}
			pieces[i] = merged
			pieces = slices.Delete(pieces, j, j+1)
			j = i + 1
		}
	}
	return pieces
}

// Triangulate splits p into triangles. Convex polygons are fanned from
// their first vertex; concave ones are ear-clipped.
func (p Polygon) Triangulate() []Polygon {
	n := len(p.Vertices)
	if n < 3 {
		return nil
	}
	if n == 3 {
		return []Polygon{p}
	}
	if p.IsConvex() {
		tris := make([]Polygon, 0, n-2)
		for i := 1; i+1 < n; i++ {
			tris = p.appendTriangle(tris, p.Vertices[0], p.Vertices[i], p.Vertices[i+1])
		}
		return tris
	}

	normal := p.Plane.Normal
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	var tris []Polygon
	for len(idx) > 3 {
		ear := -1
		for i := range idx {
			a := p.Vertices[idx[(i+len(idx)-1)%len(idx)]]
			b := p.Vertices[idx[i]]
			c := p.Vertices[idx[(i+1)%len(idx)]]
			if b.Sub(a).Cross(c.Sub(b)).Dot(normal) <= Epsilon {
				continue // reflex or flat corner
			}
			blocked := false
			for _, k := range idx {
				v := p.Vertices[k]
				if v.Equals(a, Epsilon) || v.Equals(b, Epsilon) || v.Equals(c, Epsilon) {
					continue
				}
				if insideTriangle(v, a, b, c, normal) {
					blocked = true
					break
				}
			}
			if !blocked {
				ear = i
				tris = p.appendTriangle(tris, a, b, c)
				break
			}
		}
		if ear < 0 {
			// No clean ear on a degenerate outline; fan what is left.
			for i := 1; i+1 < len(idx); i++ {
				tris = p.appendTriangle(tris, p.Vertices[idx[0]], p.Vertices[idx[i]], p.Vertices[idx[i+1]])
			}
			return tris
		}
		idx = slices.Delete(idx, ear, ear+1)
	}
	return p.appendTriangle(tris, p.Vertices[idx[0]], p.Vertices[idx[1]], p.Vertices[idx[2]])
}

func (p Polygon) appendTriangle(tris []Polygon, a, b, c Vector) []Polygon {
	if b.Sub(a).Cross(c.Sub(a)).Length() < Epsilon {
		return tris
	}
	return append(tris, Polygon{Vertices: []Vector{a, b, c}, Plane: p.Plane, ID: p.ID})
}

// insideTriangle reports whether v lies inside or on the border of the
// triangle abc, all in the plane with the given normal.
func insideTriangle(v, a, b, c, normal Vector) bool {
	return b.Sub(a).Cross(v.Sub(a)).Dot(normal) >= -Epsilon &&
		c.Sub(b).Cross(v.Sub(b)).Dot(normal) >= -Epsilon &&
		a.Sub(c).Cross(v.Sub(c)).Dot(normal) >= -Epsilon
}
