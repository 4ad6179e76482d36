// Package bsp implements the binary space partition tree behind carve's
// boolean operations. A tree is built once from a solid's polygons and then
// used to classify and cut other polygons against that solid.
//
// Nodes live in a flat arena and refer to each other by index. A nil *Tree
// is the empty tree; every method accepts it.
package bsp

import (
	"github.com/chazu/carve/pkg/geom"
)

const none int32 = -1

type node struct {
	plane    geom.Plane
	polygons []geom.Polygon
	front    int32
	back     int32
	parent   int32
}

// Tree is a BSP tree over a set of polygons. Trees are not safe for
// concurrent mutation; independent trees share no state.
type Tree struct {
	nodes []node
}

// Build creates a tree from polygons. When convex is true the polygons are
// taken to bound a convex solid and the tree is a chain of back links with
// one node per distinct plane; nothing is split. Build returns nil for an
// empty polygon list.
func Build(polygons []geom.Polygon, convex bool) *Tree {
	if len(polygons) == 0 {
		return nil
	}
	polys := make([]geom.Polygon, len(polygons))
	for i, p := range polygons {
		polys[i] = p.WithID(0)
	}
	if convex {
		return buildConvex(polys)
	}
	t := &Tree{}
	t.addNode(polys[0].Plane, none)
	var id int
	t.insert(0, polys, &id)
	return t
}

func buildConvex(polys []geom.Polygon) *Tree {
	Shuffle(NewGenerator(0), polys)
	groups := groupByPlane(polys)
	t := &Tree{nodes: make([]node, 0, len(groups))}
	parent := none
	for _, g := range groups {
		idx := t.addNode(g[0].Plane, parent)
		t.nodes[idx].polygons = g
		if parent != none {
			t.nodes[parent].back = idx
		}
		parent = idx
	}
	return t
}

// groupByPlane buckets polygons by plane, keeping first-seen order for both
// the groups and the polygons inside them.
func groupByPlane(polys []geom.Polygon) [][]geom.Polygon {
	var groups [][]geom.Polygon
outer:
	for _, p := range polys {
		for i, g := range groups {
			if g[0].Plane.IsEqual(p.Plane) {
				groups[i] = append(g, p)
				continue outer
			}
		}
		groups = append(groups, []geom.Polygon{p})
	}
	return groups
}

func (t *Tree) addNode(plane geom.Plane, parent int32) int32 {
	t.nodes = append(t.nodes, node{plane: plane, front: none, back: none, parent: parent})
	return int32(len(t.nodes) - 1)
}

func (t *Tree) empty() bool {
	return t == nil || len(t.nodes) == 0
}

type task struct {
	node     int32
	polygons []geom.Polygon
}

// pushPair queues two buckets so the smaller one is popped first.
func pushPair(stack []task, a, b task) []task {
	if len(a.polygons) < len(b.polygons) {
		a, b = b, a
	}
	if len(a.polygons) > 0 {
		stack = append(stack, a)
	}
	if len(b.polygons) > 0 {
		stack = append(stack, b)
	}
	return stack
}

// insert partitions polygons into the subtree rooted at start, growing
// child nodes as needed.
func (t *Tree) insert(start int32, polygons []geom.Polygon, id *int) {
	stack := []task{{start, polygons}}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		plane := t.nodes[cur.node].plane
		var coplanar, front, back []geom.Polygon
		for _, p := range cur.polygons {
			p.Split(plane, &coplanar, &front, &back, id)
		}
		for _, p := range coplanar {
			if plane.Normal.Dot(p.Plane.Normal) > 0 {
				t.nodes[cur.node].polygons = append(t.nodes[cur.node].polygons, p)
			} else {
				back = append(back, p)
			}
		}
		var f, b task
		if len(front) > 0 {
			f = task{t.child(cur.node, true, front[0].Plane), front}
		}
		if len(back) > 0 {
			b = task{t.child(cur.node, false, back[0].Plane), back}
		}
		stack = pushPair(stack, f, b)
	}
}

// child returns the front or back child of n, creating it on plane if it
// does not exist yet.
func (t *Tree) child(n int32, front bool, plane geom.Plane) int32 {
	c := t.nodes[n].back
	if front {
		c = t.nodes[n].front
	}
	if c != none {
		return c
	}
	c = t.addNode(plane, n)
	if front {
		t.nodes[n].front = c
	} else {
		t.nodes[n].back = c
	}
	return c
}

// Clone returns a deep copy of t.
func (t *Tree) Clone() *Tree {
	if t == nil {
		return nil
	}
	out := &Tree{nodes: make([]node, len(t.nodes))}
	for i, n := range t.nodes {
		polys := make([]geom.Polygon, len(n.polygons))
		for j, p := range n.polygons {
			polys[j] = p.Clone()
		}
		n.polygons = polys
		out.nodes[i] = n
	}
	return out
}

// IsConvex reports whether no node has a front child, which holds exactly
// when every stored polygon lies on or behind every other polygon's plane.
// The empty tree is convex.
func (t *Tree) IsConvex() bool {
	if t == nil {
		return true
	}
	for _, n := range t.nodes {
		if n.front != none {
			return false
		}
	}
	return true
}

// Len returns the number of polygons stored in the tree.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	var count int
	for _, n := range t.nodes {
		count += len(n.polygons)
	}
	return count
}

// NodeCount returns the number of nodes in the tree.
func (t *Tree) NodeCount() int {
	if t == nil {
		return 0
	}
	return len(t.nodes)
}

// Depth returns the number of nodes on the longest root-to-leaf path.
func (t *Tree) Depth() int {
	if t.empty() {
		return 0
	}
	type entry struct {
		node  int32
		depth int
	}
	var deepest int
	stack := []entry{{0, 1}}
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		deepest = max(deepest, e.depth)
		n := t.nodes[e.node]
		if n.front != none {
			stack = append(stack, entry{n.front, e.depth + 1})
		}
		if n.back != none {
			stack = append(stack, entry{n.back, e.depth + 1})
		}
	}
	return deepest
}
