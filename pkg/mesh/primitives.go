package mesh

import (
	"math"

	"github.com/chazu/carve/pkg/geom"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Box returns the axis-aligned box spanning min to max. A box with no volume
// is empty.
func Box(min, max geom.Vector) Mesh {
	lo, hi := min.Min(max), min.Max(max)
	size := hi.Sub(lo)
	if size.X < geom.Epsilon || size.Y < geom.Epsilon || size.Z < geom.Epsilon {
		return Mesh{}
	}
	x0, y0, z0 := lo.X, lo.Y, lo.Z
	x1, y1, z1 := hi.X, hi.Y, hi.Z
	faces := [][]geom.Vector{
		{{X: x0, Y: y0, Z: z0}, {X: x0, Y: y0, Z: z1}, {X: x0, Y: y1, Z: z1}, {X: x0, Y: y1, Z: z0}}, // -x
		{{X: x1, Y: y0, Z: z0}, {X: x1, Y: y1, Z: z0}, {X: x1, Y: y1, Z: z1}, {X: x1, Y: y0, Z: z1}}, // +x
		{{X: x0, Y: y0, Z: z0}, {X: x1, Y: y0, Z: z0}, {X: x1, Y: y0, Z: z1}, {X: x0, Y: y0, Z: z1}}, // -y
		{{X: x0, Y: y1, Z: z0}, {X: x0, Y: y1, Z: z1}, {X: x1, Y: y1, Z: z1}, {X: x1, Y: y1, Z: z0}}, // +y
		{{X: x0, Y: y0, Z: z0}, {X: x0, Y: y1, Z: z0}, {X: x1, Y: y1, Z: z0}, {X: x1, Y: y0, Z: z0}}, // -z
		{{X: x0, Y: y0, Z: z1}, {X: x1, Y: y0, Z: z1}, {X: x1, Y: y1, Z: z1}, {X: x0, Y: y1, Z: z1}}, // +z
	}
	return fromLoops(faces)
}

// Cube returns an axis-aligned cube of edge length size centred on center.
func Cube(center geom.Vector, size float64) Mesh {
	half := v3.Vec{X: size / 2, Y: size / 2, Z: size / 2}
	return Box(center.Sub(half), center.Add(half))
}

// Cylinder returns a prism with segments sides approximating a cylinder of
// the given radius and height, centred on the origin along the Z axis.
// Invalid dimensions, or fewer than three segments, give the empty mesh.
func Cylinder(radius, height float64, segments int) Mesh {
	if radius <= geom.Epsilon || height <= geom.Epsilon || segments < 3 {
		return Mesh{}
	}
	bottom := make([]geom.Vector, segments)
	top := make([]geom.Vector, segments)
	for i := range segments {
		a := 2 * math.Pi * float64(i) / float64(segments)
		x, y := radius*math.Cos(a), radius*math.Sin(a)
		bottom[i] = v3.Vec{X: x, Y: y, Z: -height / 2}
		top[i] = v3.Vec{X: x, Y: y, Z: height / 2}
	}
	loops := make([][]geom.Vector, 0, segments+2)
	for i := range segments {
		j := (i + 1) % segments
		loops = append(loops, []geom.Vector{bottom[i], bottom[j], top[j], top[i]})
	}
	loops = append(loops, top)
	base := make([]geom.Vector, segments)
	for i, v := range bottom {
		base[segments-1-i] = v
	}
	loops = append(loops, base)
	return fromLoops(loops)
}

// fromLoops builds a convex mesh from outward-facing vertex loops.
func fromLoops(loops [][]geom.Vector) Mesh {
	polys := make([]geom.Polygon, 0, len(loops))
	for _, loop := range loops {
		if p, ok := geom.NewPolygon(loop); ok {
			polys = append(polys, p)
		}
	}
	return withPolygons(polys, true)
}
