// Package csg implements the kernel.Kernel interface with exact polygon
// booleans on BSP trees (see package mesh).
package csg

import (
	"fmt"

	"github.com/chazu/carve/pkg/kernel"
	"github.com/chazu/carve/pkg/mesh"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Compile-time interface check.
var _ kernel.Kernel = (*CSGKernel)(nil)

// DefaultSegments is the cylinder resolution used when a caller passes
// segments <= 0.
const DefaultSegments = 32

// csgSolid wraps a mesh.Mesh to implement kernel.Solid.
type csgSolid struct {
	m mesh.Mesh
}

// BoundingBox returns the axis-aligned bounding box.
func (s *csgSolid) BoundingBox() (min, max [3]float64) {
	bb := s.m.Bounds()
	min = [3]float64{bb.Min.X, bb.Min.Y, bb.Min.Z}
	max = [3]float64{bb.Max.X, bb.Max.Y, bb.Max.Z}
	return min, max
}

// CSGKernel implements kernel.Kernel on polygon meshes.
type CSGKernel struct {
	segments int
}

// Option configures a CSGKernel.
type Option func(*CSGKernel)

// WithSegments sets the default cylinder resolution.
func WithSegments(n int) Option {
	return func(k *CSGKernel) {
		if n >= 3 {
			k.segments = n
		}
	}
}

// New returns a new CSGKernel.
func New(opts ...Option) *CSGKernel {
	k := &CSGKernel{segments: DefaultSegments}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

// Unwrap returns the mesh behind a solid created by this package.
func Unwrap(s kernel.Solid) (mesh.Mesh, bool) {
	cs, ok := s.(*csgSolid)
	if !ok {
		return mesh.Mesh{}, false
	}
	return cs.m, true
}

// unwrap extracts the mesh from a kernel.Solid, panicking on solids from
// another kernel.
func unwrap(s kernel.Solid) mesh.Mesh {
	return s.(*csgSolid).m
}

func wrap(m mesh.Mesh) kernel.Solid {
	return &csgSolid{m: m}
}

// Box creates a box with the given dimensions and its minimum corner at the
// origin, so that a translation places the corner.
func (k *CSGKernel) Box(x, y, z float64) kernel.Solid {
	return wrap(mesh.Box(v3.Vec{}, v3.Vec{X: x, Y: y, Z: z}))
}

// Cylinder creates a segments-sided prism approximating a cylinder.
func (k *CSGKernel) Cylinder(height, radius float64, segments int) kernel.Solid {
	if segments <= 0 {
		segments = k.segments
	}
	return wrap(mesh.Cylinder(radius, height, segments))
}

// Union returns the union of two solids.
func (k *CSGKernel) Union(a, b kernel.Solid) kernel.Solid {
	return wrap(mesh.Union(unwrap(a), unwrap(b)))
}

// Difference returns the difference a - b.
func (k *CSGKernel) Difference(a, b kernel.Solid) kernel.Solid {
	return wrap(mesh.Subtraction(unwrap(a), unwrap(b)))
}

// Intersection returns the intersection of two solids.
func (k *CSGKernel) Intersection(a, b kernel.Solid) kernel.Solid {
	return wrap(mesh.Intersection(unwrap(a), unwrap(b)))
}

// Translate moves a solid by (x, y, z).
func (k *CSGKernel) Translate(s kernel.Solid, x, y, z float64) kernel.Solid {
	return wrap(unwrap(s).Translated(v3.Vec{X: x, Y: y, Z: z}))
}

// Rotate rotates a solid by Euler angles (degrees) around X, Y, Z axes.
func (k *CSGKernel) Rotate(s kernel.Solid, x, y, z float64) kernel.Solid {
	m := sdf.RotateZ(sdf.DtoR(z)).Mul(sdf.RotateY(sdf.DtoR(y))).Mul(sdf.RotateX(sdf.DtoR(x)))
	return wrap(unwrap(s).Transformed(m))
}

// ToMesh triangulates a solid into a flat-shaded triangle mesh.
func (k *CSGKernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	m, ok := Unwrap(s)
	if !ok {
		return nil, fmt.Errorf("csg: %w: %T", kernel.ErrForeignSolid, s)
	}
	out := &kernel.Mesh{}
	for _, tri := range m.Triangles() {
		n := tri.Plane.Normal
		out.AddTriangle(
			toFloat32(tri.Vertices[0]),
			toFloat32(tri.Vertices[1]),
			toFloat32(tri.Vertices[2]),
			toFloat32(n),
		)
	}
	return out, nil
}

func toFloat32(v v3.Vec) [3]float32 {
	return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
}
