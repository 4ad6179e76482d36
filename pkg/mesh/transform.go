package mesh

import (
	"github.com/chazu/carve/pkg/bsp"
	"github.com/chazu/carve/pkg/geom"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Translated returns the mesh moved by offset. An already built tree is
// translated rather than rebuilt.
func (m Mesh) Translated(offset geom.Vector) Mesh {
	if m.IsEmpty() {
		return m
	}
	polys := make([]geom.Polygon, len(m.polygons))
	for i, p := range m.polygons {
		polys[i] = p.Translated(offset)
	}
	return Mesh{
		polygons:      polys,
		isKnownConvex: m.isKnownConvex,
		cache: newTreeCache(func() *bsp.Tree {
			return m.tree().Translated(offset)
		}),
	}
}

// Transformed returns the mesh with the affine transform t applied to every
// vertex. Mirroring transforms reverse the winding so the mesh stays
// outward facing. Polygons collapsed by a singular transform are dropped.
func (m Mesh) Transformed(t sdf.M44) Mesh {
	mirror := determinant(t) < 0
	polys := make([]geom.Polygon, 0, len(m.polygons))
	for _, p := range m.polygons {
		if mirror {
			p = p.Inverted()
		}
		q, ok := p.Transformed(t)
		if !ok {
			continue
		}
		polys = append(polys, q)
	}
	return withPolygons(polys, m.isKnownConvex)
}

// Inverted returns the mesh turned inside out.
func (m Mesh) Inverted() Mesh {
	polys := make([]geom.Polygon, len(m.polygons))
	for i, p := range m.polygons {
		polys[i] = p.Inverted()
	}
	return withPolygons(polys, false)
}

// determinant returns the determinant of the linear part of t.
func determinant(t sdf.M44) float64 {
	o := t.MulPosition(v3.Vec{})
	x := t.MulPosition(v3.Vec{X: 1}).Sub(o)
	y := t.MulPosition(v3.Vec{Y: 1}).Sub(o)
	z := t.MulPosition(v3.Vec{Z: 1}).Sub(o)
	return x.Dot(y.Cross(z))
}
