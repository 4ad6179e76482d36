package kernel

import (
	"errors"
	"testing"
)

// --- Mesh helper method tests ---

func TestMeshVertexCount(t *testing.T) {
	tests := []struct {
		name     string
		vertices []float32
		want     int
	}{
		{"empty", nil, 0},
		{"one vertex", []float32{1, 2, 3}, 1},
		{"four vertices", []float32{0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Mesh{Vertices: tt.vertices}
			if got := m.VertexCount(); got != tt.want {
				t.Errorf("VertexCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMeshTriangleCount(t *testing.T) {
	tests := []struct {
		name    string
		indices []uint32
		want    int
	}{
		{"empty", nil, 0},
		{"one triangle", []uint32{0, 1, 2}, 1},
		{"two triangles", []uint32{0, 1, 2, 2, 3, 0}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Mesh{Indices: tt.indices}
			if got := m.TriangleCount(); got != tt.want {
				t.Errorf("TriangleCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMeshIsEmpty(t *testing.T) {
	t.Run("empty mesh", func(t *testing.T) {
		m := &Mesh{}
		if !m.IsEmpty() {
			t.Error("IsEmpty() = false for empty mesh, want true")
		}
	})
	t.Run("non-empty mesh", func(t *testing.T) {
		m := &Mesh{Vertices: []float32{1, 2, 3}}
		if m.IsEmpty() {
			t.Error("IsEmpty() = true for non-empty mesh, want false")
		}
	})
}

func TestMeshBounds(t *testing.T) {
	m := &Mesh{}
	if lo, hi := m.Bounds(); lo != ([3]float32{}) || hi != ([3]float32{}) {
		t.Errorf("empty Bounds() = %v, %v, want zero", lo, hi)
	}
	m.AddTriangle([3]float32{1, -2, 3}, [3]float32{4, 0, -1}, [3]float32{0, 5, 2}, [3]float32{0, 0, 1})
	lo, hi := m.Bounds()
	if lo != [3]float32{0, -2, -1} {
		t.Errorf("Bounds() min = %v, want [0 -2 -1]", lo)
	}
	if hi != [3]float32{4, 5, 3} {
		t.Errorf("Bounds() max = %v, want [4 5 3]", hi)
	}
}

func TestMeshAddTriangle(t *testing.T) {
	m := &Mesh{}
	n := [3]float32{0, 0, 1}
	m.AddTriangle([3]float32{0, 0, 0}, [3]float32{1, 0, 0}, [3]float32{0, 1, 0}, n)
	m.AddTriangle([3]float32{1, 0, 0}, [3]float32{1, 1, 0}, [3]float32{0, 1, 0}, n)

	if got := m.VertexCount(); got != 6 {
		t.Errorf("VertexCount() = %d, want 6", got)
	}
	if got := m.TriangleCount(); got != 2 {
		t.Errorf("TriangleCount() = %d, want 2", got)
	}
	if len(m.Normals) != len(m.Vertices) {
		t.Errorf("normals length %d != vertices length %d", len(m.Normals), len(m.Vertices))
	}
	want := []uint32{0, 1, 2, 3, 4, 5}
	for i, idx := range m.Indices {
		if idx != want[i] {
			t.Fatalf("Indices = %v, want %v", m.Indices, want)
		}
	}
}

// --- Compile-time interface check with a stub kernel ---

// stubSolid is a minimal Solid implementation for testing.
type stubSolid struct {
	minBB, maxBB [3]float64
}

func (s *stubSolid) BoundingBox() (min, max [3]float64) {
	return s.minBB, s.maxBB
}

// stubKernel is a minimal Kernel implementation that proves the interface
// is satisfiable. It only tracks bounding boxes.
type stubKernel struct{}

func (k *stubKernel) Box(x, y, z float64) Solid {
	return &stubSolid{maxBB: [3]float64{x, y, z}}
}

func (k *stubKernel) Cylinder(height, radius float64, _ int) Solid {
	return &stubSolid{
		minBB: [3]float64{-radius, -radius, -height / 2},
		maxBB: [3]float64{radius, radius, height / 2},
	}
}

func (k *stubKernel) Union(a, _ Solid) Solid       { return a }
func (k *stubKernel) Difference(a, _ Solid) Solid   { return a }
func (k *stubKernel) Intersection(a, _ Solid) Solid { return a }

func (k *stubKernel) Translate(s Solid, x, y, z float64) Solid {
	lo, hi := s.BoundingBox()
	d := [3]float64{x, y, z}
	for i := range 3 {
		lo[i] += d[i]
		hi[i] += d[i]
	}
	return &stubSolid{minBB: lo, maxBB: hi}
}

func (k *stubKernel) Rotate(s Solid, _, _, _ float64) Solid { return s }

func (k *stubKernel) ToMesh(s Solid) (*Mesh, error) {
	if _, ok := s.(*stubSolid); !ok {
		return nil, ErrForeignSolid
	}
	return &Mesh{}, nil
}

// Compile-time checks that the stubs implement the interfaces.
var _ Solid = (*stubSolid)(nil)
var _ Kernel = (*stubKernel)(nil)

func TestStubKernelBoundingBox(t *testing.T) {
	var k Kernel = &stubKernel{}
	s := k.Translate(k.Box(10, 20, 30), 1, 2, 3)
	min, max := s.BoundingBox()
	if min != [3]float64{1, 2, 3} {
		t.Errorf("Box min = %v, want [1 2 3]", min)
	}
	if max != [3]float64{11, 22, 33} {
		t.Errorf("Box max = %v, want [11 22 33]", max)
	}
}

type foreignSolid struct{}

func (foreignSolid) BoundingBox() (min, max [3]float64) { return min, max }

func TestStubKernelToMesh(t *testing.T) {
	var k Kernel = &stubKernel{}
	m, err := k.ToMesh(k.Box(1, 1, 1))
	if err != nil {
		t.Fatalf("ToMesh() error = %v", err)
	}
	if !m.IsEmpty() {
		t.Error("stub ToMesh() should return empty mesh")
	}
	if _, err := k.ToMesh(foreignSolid{}); !errors.Is(err, ErrForeignSolid) {
		t.Errorf("ToMesh(foreign) error = %v, want ErrForeignSolid", err)
	}
}
