package geom

import (
	"math"
	"testing"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(t *testing.T, x0, y0, x1, y1 float64) Polygon {
	t.Helper()
	p, ok := NewPolygon([]Vector{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}})
	require.True(t, ok)
	return p
}

// lShape is a concave hexagon in the z=0 plane covering three unit squares.
func lShape(t *testing.T) Polygon {
	t.Helper()
	p, ok := NewPolygon([]Vector{
		{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 2}, {X: 0, Y: 2},
	})
	require.True(t, ok)
	return p
}

func totalArea(polys []Polygon) float64 {
	var sum float64
	for _, p := range polys {
		sum += p.Area()
	}
	return sum
}

func TestPlaneFromPoints(t *testing.T) {
	plane, ok := PlaneFromPoints([]Vector{{X: 0, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 1}, {X: 0, Y: 1, Z: 1}})
	require.True(t, ok)
	assert.True(t, plane.Normal.Equals(v3.Vec{Z: 1}, Epsilon))
	assert.InDelta(t, 1.0, plane.W, Epsilon)

	_, ok = PlaneFromPoints([]Vector{{}, {X: 1}, {X: 2}})
	assert.False(t, ok, "collinear points have no plane")
}

func TestPlaneFlipTranslate(t *testing.T) {
	p := NewPlane(v3.Vec{X: 2}, v3.Vec{X: 3})
	assert.InDelta(t, 3.0, p.W, Epsilon)
	assert.InDelta(t, 1.0, p.Normal.Length(), Epsilon)

	moved := p.Translated(v3.Vec{X: 1, Y: 5})
	assert.InDelta(t, 4.0, moved.W, Epsilon)
	assert.True(t, moved.Translated(v3.Vec{X: -1, Y: -5}).IsEqual(p))

	f := p.Flipped()
	assert.False(t, f.IsEqual(p))
	assert.True(t, f.Flipped().IsEqual(p))
	assert.InDelta(t, -1.0, f.Distance(v3.Vec{X: 4}), Epsilon)
}

func TestNewPolygonDropsDuplicates(t *testing.T) {
	p, ok := NewPolygon([]Vector{{}, {}, {X: 1}, {X: 1, Y: 1}, {}})
	require.True(t, ok)
	assert.Len(t, p.Vertices, 3)

	_, ok = NewPolygon([]Vector{{}, {X: 1}, {}})
	assert.False(t, ok)
}

func TestCompare(t *testing.T) {
	p := square(t, 0, 0, 1, 1)
	tests := []struct {
		name  string
		plane Plane
		want  PlaneComparison
	}{
		{"coplanar", NewPlane(v3.Vec{Z: 1}, v3.Vec{}), Coplanar},
		{"front", NewPlane(v3.Vec{Z: 1}, v3.Vec{Z: -1}), Front},
		{"back", NewPlane(v3.Vec{Z: 1}, v3.Vec{Z: 1}), Back},
		{"spanning", NewPlane(v3.Vec{X: 1}, v3.Vec{X: 0.5}), Spanning},
		{"touching edge", NewPlane(v3.Vec{X: 1}, v3.Vec{X: 1}), Back},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Compare(tt.plane), "got %v", p.Compare(tt.plane))
		})
	}
}

func TestSplitTagsFragments(t *testing.T) {
	p := square(t, 0, 0, 2, 1)
	var coplanar, front, back []Polygon
	id := 0
	p.Split(NewPlane(v3.Vec{X: 1}, v3.Vec{X: 0.5}), &coplanar, &front, &back, &id)

	require.Len(t, front, 1)
	require.Len(t, back, 1)
	assert.Empty(t, coplanar)
	assert.Equal(t, 1, id)
	assert.Equal(t, 1, front[0].ID)
	assert.Equal(t, 1, back[0].ID)
	assert.InDelta(t, 1.5, front[0].Area(), 1e-9)
	assert.InDelta(t, 0.5, back[0].Area(), 1e-9)

	// A second cut of a tagged fragment keeps its lineage.
	var f2, b2 []Polygon
	front[0].Split(NewPlane(v3.Vec{X: 1}, v3.Vec{X: 1.5}), &coplanar, &f2, &b2, &id)
	assert.Equal(t, 1, id)
	require.Len(t, f2, 1)
	assert.Equal(t, 1, f2[0].ID)
}

func TestSplitNonConvex(t *testing.T) {
	p := lShape(t)
	var coplanar, front, back []Polygon
	id := 0
	p.Split(NewPlane(v3.Vec{X: 1}, v3.Vec{X: 0.5}), &coplanar, &front, &back, &id)
	for _, f := range append(front, back...) {
		assert.True(t, f.IsConvex())
		assert.Equal(t, 1, f.ID)
	}
	assert.InDelta(t, 3.0, totalArea(front)+totalArea(back), 1e-9)
	assert.InDelta(t, 0.5*2, totalArea(back), 1e-9)
}

func TestMergeRestoresSplit(t *testing.T) {
	p := square(t, 0, 0, 2, 1)
	var coplanar, front, back []Polygon
	id := 0
	p.Split(NewPlane(v3.Vec{X: 1}, v3.Vec{X: 1}), &coplanar, &front, &back, &id)
	require.Len(t, front, 1)
	require.Len(t, back, 1)

	merged, ok := front[0].Merge(back[0], true)
	require.True(t, ok)
	assert.Len(t, merged.Vertices, 4, "collinear split vertices are removed")
	assert.InDelta(t, 2.0, merged.Area(), 1e-9)
	assert.True(t, merged.Plane.IsEqual(p.Plane))
}

func TestMergeRejects(t *testing.T) {
	a := square(t, 0, 0, 1, 1)

	t.Run("no shared edge", func(t *testing.T) {
		_, ok := a.Merge(square(t, 3, 3, 4, 4), false)
		assert.False(t, ok)
	})
	t.Run("different plane", func(t *testing.T) {
		_, ok := a.Merge(square(t, 1, 0, 2, 1).Inverted(), false)
		assert.False(t, ok)
	})
	t.Run("concave result", func(t *testing.T) {
		// (1,1) splits b's left edge so it meets a's right edge exactly.
		b, ok := NewPolygon([]Vector{{X: 1}, {X: 2}, {X: 2, Y: 2}, {X: 1, Y: 2}, {X: 1, Y: 1}})
		require.True(t, ok)
		_, ok = a.Merge(b, true)
		assert.False(t, ok)
		l, ok := a.Merge(b, false)
		require.True(t, ok)
		assert.False(t, l.IsConvex())
		assert.Len(t, l.Vertices, 6)
		assert.InDelta(t, 3.0, l.Area(), 1e-9)
	})
}

func TestTessellate(t *testing.T) {
	l := lShape(t)
	require.False(t, l.IsConvex())

	tris := l.Triangulate()
	assert.Len(t, tris, 4)
	assert.InDelta(t, 3.0, totalArea(tris), 1e-9)

	pieces := l.WithID(7).Tessellate()
	assert.Less(t, len(pieces), len(tris))
	for _, p := range pieces {
		assert.True(t, p.IsConvex())
		assert.Equal(t, 7, p.ID)
	}
	assert.InDelta(t, 3.0, totalArea(pieces), 1e-9)

	sq := square(t, 0, 0, 1, 1)
	assert.Equal(t, []Polygon{sq}, sq.Tessellate())
}

func TestClipTo(t *testing.T) {
	p := square(t, 0, 0, 2, 2)
	var inside, outside []Polygon
	id := 0
	p.ClipTo([]Polygon{square(t, 1, 1, 3, 3)}, &inside, &outside, &id)
	assert.InDelta(t, 1.0, totalArea(inside), 1e-9)
	assert.InDelta(t, 3.0, totalArea(outside), 1e-9)

	inside, outside = nil, nil
	p.ClipTo([]Polygon{square(t, 2, 0, 3, 2)}, &inside, &outside, &id)
	assert.Empty(t, inside, "sharing an edge is not overlap")
	assert.InDelta(t, 4.0, totalArea(outside), 1e-9)

	inside, outside = nil, nil
	p.ClipTo([]Polygon{lShape(t)}, &inside, &outside, &id)
	assert.InDelta(t, 3.0, totalArea(inside), 1e-9)
	assert.InDelta(t, 1.0, totalArea(outside), 1e-9)
}

func TestInvertedTranslatedTransformed(t *testing.T) {
	p := square(t, 0, 0, 1, 1)
	inv := p.Inverted()
	assert.True(t, inv.Plane.IsEqual(p.Plane.Flipped()))
	assert.True(t, inv.Inverted().Vertices[0].Equals(p.Vertices[0], Epsilon))

	moved := p.Translated(v3.Vec{Z: 2})
	assert.InDelta(t, 2.0, moved.Plane.W, Epsilon)
	assert.InDelta(t, 0.0, p.Plane.W, Epsilon, "receiver is untouched")

	rotated, ok := p.Transformed(sdf.RotateX(sdf.DtoR(90)))
	require.True(t, ok)
	assert.True(t, rotated.Plane.Normal.Equals(v3.Vec{Y: -1}, 1e-9))
	assert.InDelta(t, 1.0, rotated.Area(), 1e-9)
}

func TestBoundsAndEdges(t *testing.T) {
	p := square(t, -1, 2, 3, 4)
	box := p.Bounds()
	assert.Equal(t, v3.Vec{X: -1, Y: 2}, box.Min)
	assert.Equal(t, v3.Vec{X: 3, Y: 4}, box.Max)

	edges := p.Edges()
	require.Len(t, edges, 4)
	for i, e := range edges {
		assert.Equal(t, edges[(i+1)%4][0], e[1])
	}
	assert.False(t, math.IsNaN(p.Area()))
}
