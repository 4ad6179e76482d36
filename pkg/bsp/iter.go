package bsp

import (
	"iter"

	"github.com/chazu/carve/pkg/geom"
)

// All returns a sequence over every polygon in the tree. Nodes are visited
// depth first with the back subtree before the front one; each node's own
// polygons come out in stored order. The polygons share vertex storage with
// the tree and must not be modified.
func (t *Tree) All() iter.Seq[geom.Polygon] {
	return func(yield func(geom.Polygon) bool) {
		if t.empty() {
			return
		}
		stack := []int32{0}
		for len(stack) > 0 {
			idx := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			n := &t.nodes[idx]
			for _, p := range n.polygons {
				if !yield(p) {
					return
				}
			}
			if n.front != none {
				stack = append(stack, n.front)
			}
			if n.back != none {
				stack = append(stack, n.back)
			}
		}
	}
}

// Polygons returns copies of all polygons in the tree, in All order.
func (t *Tree) Polygons() []geom.Polygon {
	polys := make([]geom.Polygon, 0, t.Len())
	for p := range t.All() {
		polys = append(polys, p.Clone())
	}
	return polys
}
