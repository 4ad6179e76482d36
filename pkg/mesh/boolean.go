package mesh

import (
	"github.com/chazu/carve/pkg/bsp"
	"github.com/chazu/carve/pkg/geom"
	"github.com/deadsy/sdfx/sdf"
)

// Union returns the solid covered by a or b.
func Union(a, b Mesh) Mesh {
	switch {
	case a.IsEmpty():
		return b
	case b.IsEmpty():
		return a
	case boundsDisjoint(a.Bounds(), b.Bounds()):
		return Merge(a, b)
	}
	polys := b.tree().Clip(a.polygons, bsp.KeepFront)
	polys = append(polys, a.tree().Clip(b.polygons, bsp.KeepFrontCoplanar)...)
	return New(polys)
}

// UnionAll folds Union over meshes.
func UnionAll(meshes ...Mesh) Mesh {
	var out Mesh
	for _, m := range meshes {
		out = Union(out, m)
	}
	return out
}

// Intersection returns the solid covered by both a and b.
func Intersection(a, b Mesh) Mesh {
	if a.IsEmpty() || b.IsEmpty() || boundsDisjoint(a.Bounds(), b.Bounds()) {
		return Mesh{}
	}
	polys := b.tree().Clip(a.polygons, bsp.KeepBack)
	polys = append(polys, a.tree().Clip(b.polygons, bsp.KeepBackCoplanar)...)
	return New(polys)
}

// Subtraction returns the solid covered by a but not by b.
func Subtraction(a, b Mesh) Mesh {
	if a.IsEmpty() || b.IsEmpty() || boundsDisjoint(a.Bounds(), b.Bounds()) {
		return a
	}
	polys := b.tree().Clip(a.polygons, bsp.KeepFront)
	for _, p := range a.tree().Clip(b.polygons, bsp.KeepBack) {
		polys = append(polys, p.Inverted())
	}
	return New(polys)
}

// Merge returns a mesh holding the polygons of both a and b without any
// clipping. It is the union of two meshes that do not overlap. The result's
// tree is b's tree inserted into a copy of a's.
func Merge(a, b Mesh) Mesh {
	if a.IsEmpty() {
		return b
	}
	if b.IsEmpty() {
		return a
	}
	polys := make([]geom.Polygon, 0, len(a.polygons)+len(b.polygons))
	polys = append(polys, a.polygons...)
	polys = append(polys, b.polygons...)
	return Mesh{
		polygons: polys,
		cache: newTreeCache(func() *bsp.Tree {
			return a.tree().Clone().Merge(b.tree())
		}),
	}
}

// boundsDisjoint reports whether two boxes are separated along some axis.
// Touching boxes are not disjoint.
func boundsDisjoint(a, b sdf.Box3) bool {
	return a.Max.X < b.Min.X || b.Max.X < a.Min.X ||
		a.Max.Y < b.Min.Y || b.Max.Y < a.Min.Y ||
		a.Max.Z < b.Min.Z || b.Max.Z < a.Min.Z
}
