package geom

// Merge joins p and other into one polygon when they lie in the same plane
// and share an edge traversed in opposite directions. Collinear vertices left
// at the ends of the shared edge are removed. With ensureConvex set, a merge
// that would produce a concave polygon fails. The result keeps p's ID.
func (p Polygon) Merge(other Polygon, ensureConvex bool) (Polygon, bool) {
	if !p.Plane.IsEqual(other.Plane) {
		return Polygon{}, false
	}
	n, m := len(p.Vertices), len(other.Vertices)
	for i := 0; i < n; i++ {
		a, b := p.Vertices[i], p.Vertices[(i+1)%n]
		for j := 0; j < m; j++ {
			c, d := other.Vertices[j], other.Vertices[(j+1)%m]
			if !a.Equals(d, Epsilon) || !b.Equals(c, Epsilon) {
				continue
			}
			// Walk p from b round to a, then other from just after a to
			// just before b.
			verts := make([]Vector, 0, n+m-2)
			for k := 1; k <= n; k++ {
				verts = append(verts, p.Vertices[(i+k)%n])
			}
			for k := 2; k < m; k++ {
				verts = append(verts, other.Vertices[(j+k)%m])
			}
			verts = removeCollinear(verts)
			if len(verts) < 3 {
				return Polygon{}, false
			}
			merged := Polygon{Vertices: verts, Plane: p.Plane, ID: p.ID}
			if ensureConvex && !merged.IsConvex() {
				return Polygon{}, false
			}
			return merged, true
		}
	}
	return Polygon{}, false
}

// removeCollinear drops vertices that do not change the direction of the
// outline, including duplicates and zero-width spikes.
func removeCollinear(verts []Vector) []Vector {
	for changed := true; changed && len(verts) >= 3; {
		changed = false
		n := len(verts)
		for i := 0; i < n; i++ {
			a := verts[(i+n-1)%n]
			b := verts[i]
			c := verts[(i+1)%n]
			if b.Sub(a).Cross(c.Sub(b)).Length() < Epsilon {
				verts = append(verts[:i:i], verts[i+1:]...)
				changed = true
				break
			}
		}
	}
	return verts
}
