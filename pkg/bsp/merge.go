package bsp

import "github.com/chazu/carve/pkg/geom"

// Merge inserts every polygon of other into t, partitioning it through t's
// existing planes, and returns t. other is not modified and shares nothing
// with the result. When t is empty the result is a copy of other; a nil t
// yields a new tree, so callers write t = t.Merge(other). Merging a tree
// with itself inserts a copy of each of its polygons.
func (t *Tree) Merge(other *Tree) *Tree {
	if other.empty() {
		return t
	}
	if other == t {
		other = other.Clone()
	}
	if t.empty() {
		c := other.Clone()
		if t == nil {
			return c
		}
		t.nodes = c.nodes
		return t
	}

	var id int
	stack := []int32{0}
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := other.nodes[idx]
		if len(n.polygons) > 0 {
			polys := make([]geom.Polygon, len(n.polygons))
			for i, p := range n.polygons {
				polys[i] = p.Clone().WithID(0)
			}
			t.insert(0, polys, &id)
		}
		if n.front != none {
			stack = append(stack, n.front)
		}
		if n.back != none {
			stack = append(stack, n.back)
		}
	}
	return t
}

// Translated returns a copy of t moved by offset.
func (t *Tree) Translated(offset geom.Vector) *Tree {
	if t == nil {
		return nil
	}
	out := &Tree{nodes: make([]node, len(t.nodes))}
	for i, n := range t.nodes {
		polys := make([]geom.Polygon, len(n.polygons))
		for j, p := range n.polygons {
			polys[j] = p.Translated(offset)
		}
		n.plane = n.plane.Translated(offset)
		n.polygons = polys
		out.nodes[i] = n
	}
	return out
}
