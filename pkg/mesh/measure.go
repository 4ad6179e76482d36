package mesh

import (
	"math"

	"github.com/chazu/carve/pkg/geom"
	"github.com/deadsy/sdfx/sdf"
	"github.com/samber/lo"
)

// Bounds returns the axis-aligned box enclosing the mesh. The empty mesh has
// a zero box.
func (m Mesh) Bounds() sdf.Box3 {
	if m.IsEmpty() {
		return sdf.Box3{}
	}
	box := m.polygons[0].Bounds()
	for _, p := range m.polygons[1:] {
		box = box.Extend(p.Bounds())
	}
	return box
}

// Volume returns the enclosed volume, summing signed tetrahedra from the
// origin to every polygon fan triangle. Inside-out meshes have negative
// volume.
func (m Mesh) Volume() float64 {
	return lo.SumBy(m.polygons, func(p geom.Polygon) float64 {
		var v float64
		a := p.Vertices[0]
		for i := 1; i+1 < len(p.Vertices); i++ {
			v += a.Dot(p.Vertices[i].Cross(p.Vertices[i+1]))
		}
		return v / 6
	})
}

// SurfaceArea returns the total polygon area.
func (m Mesh) SurfaceArea() float64 {
	return lo.SumBy(m.polygons, geom.Polygon.Area)
}

// Triangles returns the mesh as triangles, in polygon order.
func (m Mesh) Triangles() []geom.Polygon {
	return lo.FlatMap(m.polygons, func(p geom.Polygon, _ int) []geom.Polygon {
		return p.Triangulate()
	})
}

// edgeKey is an undirected edge with endpoints snapped to a grid.
type edgeKey [6]int64

const snap = 1e-6

func snapVector(v geom.Vector) [3]int64 {
	return [3]int64{
		int64(math.Round(v.X / snap)),
		int64(math.Round(v.Y / snap)),
		int64(math.Round(v.Z / snap)),
	}
}

func newEdgeKey(a, b geom.Vector) edgeKey {
	ka, kb := snapVector(a), snapVector(b)
	if kb[0] < ka[0] || (kb[0] == ka[0] && (kb[1] < ka[1] || (kb[1] == ka[1] && kb[2] < ka[2]))) {
		ka, kb = kb, ka
	}
	return edgeKey{ka[0], ka[1], ka[2], kb[0], kb[1], kb[2]}
}

// IsWatertight reports whether every polygon edge is shared by exactly two
// polygons. Edges that meet another polygon's edge only partway along it
// (T-junctions) count as open. The empty mesh is not watertight.
func (m Mesh) IsWatertight() bool {
	if m.IsEmpty() {
		return false
	}
	counts := make(map[edgeKey]int)
	for _, p := range m.polygons {
		for _, e := range p.Edges() {
			counts[newEdgeKey(e[0], e[1])]++
		}
	}
	for _, n := range counts {
		if n != 2 {
			return false
		}
	}
	return true
}
