// Package kernel defines the abstract geometry kernel interface.
// The design graph is evaluated through this interface, so the tessellator
// does not depend on how solids are represented. The csg package provides
// the polygon/BSP implementation used by carve.
package kernel

import "errors"

// ErrForeignSolid is returned when a kernel is handed a Solid that another
// kernel created.
var ErrForeignSolid = errors.New("solid belongs to a different kernel")

// Solid is an opaque handle to a geometry kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box. An empty solid
	// reports a zero box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract geometry kernel interface.
type Kernel interface {
	// Primitives. Boxes have their minimum corner at the origin; cylinders
	// are centred on the origin along Z. A segments value <= 0 selects the
	// kernel's default resolution.
	Box(x, y, z float64) Solid
	Cylinder(height, radius float64, segments int) Solid

	// Boolean operations
	Union(a, b Solid) Solid
	Difference(a, b Solid) Solid
	Intersection(a, b Solid) Solid

	// Transforms
	Translate(s Solid, x, y, z float64) Solid
	Rotate(s Solid, x, y, z float64) Solid // Euler angles in degrees, applied X then Y then Z

	// Mesh output
	ToMesh(s Solid) (*Mesh, error)
}
