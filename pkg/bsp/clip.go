package bsp

import (
	"slices"

	"github.com/chazu/carve/pkg/geom"
)

// Clip returns the parts of polygons selected by rule, cutting polygons where
// they cross the tree's planes. Fragments cut from the same input polygon are
// merged back together where they still share an edge.
//
// On the empty tree everything is in front: the front rules return polygons
// unchanged and the back rules return nil.
func (t *Tree) Clip(polygons []geom.Polygon, rule KeepRule) []geom.Polygon {
	if t.empty() {
		if rule.keepsFront() {
			return polygons
		}
		return nil
	}
	in := make([]geom.Polygon, len(polygons))
	for i, p := range polygons {
		in[i] = p.WithID(0)
	}

	var (
		id    int
		acc   accumulator
		stack = []task{{0, in}}
	)
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := &t.nodes[cur.node]
		var coplanar, front, back []geom.Polygon
		for _, p := range cur.polygons {
			p.Split(n.plane, &coplanar, &front, &back, &id)
		}
		for _, p := range coplanar {
			if rule.sameFacingGoesFront() && n.plane.Normal.Dot(p.Plane.Normal) > 0 {
				front = append(front, p)
				continue
			}
			p.ClipTo(n.polygons, &back, &front, &id)
		}

		var f, b task
		if len(front) > 0 {
			if n.front == none {
				if rule.keepsFront() {
					acc.add(front...)
				}
			} else {
				f = task{n.front, front}
			}
		}
		if len(back) > 0 {
			if n.back == none {
				if !rule.keepsFront() {
					acc.add(back...)
				}
			} else {
				b = task{n.back, back}
			}
		}
		stack = pushPair(stack, f, b)
	}
	return acc.polygons
}

// accumulator collects clip output, merging each new fragment with earlier
// fragments of the same lineage that share an edge with it.
type accumulator struct {
	polygons []geom.Polygon
}

func (a *accumulator) add(polygons ...geom.Polygon) {
	for _, p := range polygons {
		if p.ID != 0 {
			for i := len(a.polygons) - 1; i >= 0; i-- {
				if a.polygons[i].ID != p.ID {
					continue
				}
				if merged, ok := p.Merge(a.polygons[i], false); ok {
					p = merged
					a.polygons = slices.Delete(a.polygons, i, i+1)
				}
			}
		}
		a.polygons = append(a.polygons, p)
	}
}
