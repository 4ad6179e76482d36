package geom

// Split sorts p into coplanar, front or back relative to plane, cutting it in
// two when it spans the plane. The first time an untagged polygon is cut,
// *id is incremented and both fragments take the new value; fragments of an
// already tagged polygon keep its ID.
func (p Polygon) Split(plane Plane, coplanar, front, back *[]Polygon, id *int) {
	switch p.Compare(plane) {
	case Coplanar:
		*coplanar = append(*coplanar, p)
	case Front:
		*front = append(*front, p)
	case Back:
		*back = append(*back, p)
	default:
		if p.ID == 0 {
			*id++
			p.ID = *id
		}
		if !p.IsConvex() {
			for _, piece := range p.Tessellate() {
				piece.Split(plane, coplanar, front, back, id)
			}
			return
		}
		f, b := p.splitSpanning(plane)
		if len(f.Vertices) >= 3 {
			*front = append(*front, f)
		}
		if len(b.Vertices) >= 3 {
			*back = append(*back, b)
		}
	}
}

// splitSpanning cuts a convex polygon that crosses plane. Vertices lying on
// the plane go to both halves; the crossing points are computed once and
// shared so the halves meet along an identical edge.
func (p Polygon) splitSpanning(plane Plane) (front, back Polygon) {
	n := len(p.Vertices)
	f := make([]Vector, 0, n+1)
	b := make([]Vector, 0, n+1)
	for i, vi := range p.Vertices {
		vj := p.Vertices[(i+1)%n]
		di, dj := plane.Distance(vi), plane.Distance(vj)
		ti, tj := plane.classify(vi), plane.classify(vj)
		if ti != Back {
			f = append(f, vi)
		}
		if ti != Front {
			b = append(b, vi)
		}
		if ti|tj == Spanning {
			t := di / (di - dj)
			v := vi.Add(vj.Sub(vi).MulScalar(t))
			f = append(f, v)
			b = append(b, v)
		}
	}
	front = Polygon{Vertices: f, Plane: p.Plane, ID: p.ID}
	back = Polygon{Vertices: b, Plane: p.Plane, ID: p.ID}
	return front, back
}

// ClipTo clips p against a list of polygons lying in the same plane. The
// parts of p covered by any of them are appended to inside and the rest to
// outside. Splits performed along the way tag fragments through id.
func (p Polygon) ClipTo(polygons []Polygon, inside, outside *[]Polygon, id *int) {
	toTest := []Polygon{p}
	if !p.IsConvex() {
		if p.ID == 0 {
			*id++
			p.ID = *id
		}
		toTest = p.Tessellate()
	}
	for _, polygon := range polygons {
		for _, convex := range polygon.Tessellate() {
			if len(toTest) == 0 {
				break
			}
			var remaining []Polygon
			for _, t := range toTest {
				convex.clipConvex(t, inside, &remaining, id)
			}
			toTest = remaining
		}
	}
	*outside = append(*outside, toTest...)
}

// clipConvex clips the convex polygon t against the convex receiver by
// walking its edge planes. Whatever is still behind every edge plane is
// covered by the receiver.
func (p Polygon) clipConvex(t Polygon, inside, outside *[]Polygon, id *int) {
	var coplanar []Polygon
	for _, plane := range p.edgePlanes() {
		var back []Polygon
		t.Split(plane, &coplanar, outside, &back, id)
		if len(back) == 0 {
			return
		}
		t = back[0]
	}
	*inside = append(*inside, t)
}
