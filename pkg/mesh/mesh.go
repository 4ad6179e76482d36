// Package mesh provides closed polygon meshes and the boolean operations
// between them. Booleans are computed by clipping each operand's polygons
// against a BSP tree of the other; the tree of a mesh is built on first use
// and shared by copies of the mesh.
package mesh

import (
	"sync"

	"github.com/chazu/carve/pkg/bsp"
	"github.com/chazu/carve/pkg/geom"
)

// Mesh is an immutable set of polygons bounding a solid. The zero value is
// the empty mesh.
type Mesh struct {
	polygons      []geom.Polygon
	isKnownConvex bool
	cache         *treeCache
}

type treeCache struct {
	once  sync.Once
	build func() *bsp.Tree
	tree  *bsp.Tree
}

func newTreeCache(build func() *bsp.Tree) *treeCache {
	return &treeCache{build: build}
}

// New returns a mesh over copies of polygons. Fragment IDs are cleared.
func New(polygons []geom.Polygon) Mesh {
	return newMesh(polygons, false)
}

func newMesh(polygons []geom.Polygon, convex bool) Mesh {
	polys := make([]geom.Polygon, len(polygons))
	for i, p := range polygons {
		polys[i] = p.Clone().WithID(0)
	}
	return withPolygons(polys, convex)
}

// withPolygons wraps polys without copying them.
func withPolygons(polys []geom.Polygon, convex bool) Mesh {
	if len(polys) == 0 {
		return Mesh{}
	}
	return Mesh{
		polygons:      polys,
		isKnownConvex: convex,
		cache: newTreeCache(func() *bsp.Tree {
			return bsp.Build(polys, convex)
		}),
	}
}

// tree returns the mesh's BSP tree. The tree is shared and must not be
// mutated; Clone it first.
func (m Mesh) tree() *bsp.Tree {
	if m.cache == nil {
		return nil
	}
	m.cache.once.Do(func() {
		m.cache.tree = m.cache.build()
		m.cache.build = nil
	})
	return m.cache.tree
}

// Polygons returns a copy of the mesh's polygons.
func (m Mesh) Polygons() []geom.Polygon {
	out := make([]geom.Polygon, len(m.polygons))
	for i, p := range m.polygons {
		out[i] = p.Clone()
	}
	return out
}

// Len returns the number of polygons.
func (m Mesh) Len() int { return len(m.polygons) }

// IsEmpty reports whether the mesh has no polygons.
func (m Mesh) IsEmpty() bool { return len(m.polygons) == 0 }

// IsKnownConvex reports whether the mesh was constructed as a convex solid,
// such as a primitive or a transform of one. A false result does not mean
// the mesh is concave; use IsConvex for that.
func (m Mesh) IsKnownConvex() bool { return m.isKnownConvex }

// IsConvex reports whether the mesh bounds a convex solid. It builds a fresh
// tree over the mesh's polygons and checks that no polygon ever landed in
// front of another's plane. The empty mesh is convex.
func (m Mesh) IsConvex() bool {
	return bsp.Build(m.polygons, false).IsConvex()
}
