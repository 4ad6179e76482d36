// Package tessellate walks a design graph and produces triangle meshes
// using a geometry kernel. One mesh is produced per root solid; groups
// fan out so that each member becomes its own part.
package tessellate

import (
	"fmt"

	"github.com/chazu/carve/pkg/graph"
	"github.com/chazu/carve/pkg/kernel"
)

// transformStack accumulates the transforms between a part's top node and
// the solid it finally emits.
type transformStack struct {
	frames []graph.TransformData
}

func newTransformStack() *transformStack {
	return &transformStack{}
}

func (ts *transformStack) push(td graph.TransformData) {
	ts.frames = append(ts.frames, td)
}

func (ts *transformStack) pop() {
	if len(ts.frames) > 0 {
		ts.frames = ts.frames[:len(ts.frames)-1]
	}
}

// apply transforms s by every frame, innermost first.
func (ts *transformStack) apply(k kernel.Kernel, s kernel.Solid) kernel.Solid {
	for i := len(ts.frames) - 1; i >= 0; i-- {
		s = applyTransform(k, s, ts.frames[i])
	}
	return s
}

// applyTransform rotates, then translates.
func applyTransform(k kernel.Kernel, s kernel.Solid, td graph.TransformData) kernel.Solid {
	if r := td.Rotation; r != nil && !r.IsZero() {
		s = k.Rotate(s, r.X, r.Y, r.Z)
	}
	if t := td.Translation; t != nil && !t.IsZero() {
		s = k.Translate(s, t.X, t.Y, t.Z)
	}
	return s
}

// evaluator turns graph nodes into kernel solids. Shared subtrees are
// evaluated once.
type evaluator struct {
	g        *graph.DesignGraph
	k        kernel.Kernel
	solids   map[graph.NodeID]kernel.Solid
	visiting map[graph.NodeID]bool
}

// Tessellate walks the design graph and produces one triangle mesh per
// part using the provided geometry kernel. The tessellator is read-only and
// never mutates the graph.
func Tessellate(g *graph.DesignGraph, k kernel.Kernel) ([]*kernel.Mesh, error) {
	if g == nil {
		return nil, nil
	}

	ev := &evaluator{
		g:        g,
		k:        k,
		solids:   make(map[graph.NodeID]kernel.Solid),
		visiting: make(map[graph.NodeID]bool),
	}

	var meshes []*kernel.Mesh
	ts := newTransformStack()

	for _, rootID := range g.Roots {
		root := g.Get(rootID)
		if root == nil {
			continue
		}
		collected, err := ev.walkNode(root, root.DisplayName(), ts)
		if err != nil {
			return nil, fmt.Errorf("tessellate: error walking root %s: %w", rootID.Short(), err)
		}
		meshes = append(meshes, collected...)
	}

	return meshes, nil
}

// walkNode collects the parts below n. Groups fan out to their members;
// everything else becomes a single part named partName.
func (ev *evaluator) walkNode(n *graph.Node, partName string, ts *transformStack) ([]*kernel.Mesh, error) {
	if n.Kind == graph.NodeGroup || n.Kind == graph.NodeTransform {
		if ev.visiting[n.ID] {
			return nil, fmt.Errorf("cycle through node %s", n.ID.Short())
		}
		ev.visiting[n.ID] = true
		defer delete(ev.visiting, n.ID)
	}

	switch n.Kind {
	case graph.NodeGroup:
		var meshes []*kernel.Mesh
		for _, child := range ev.g.Children(n) {
			collected, err := ev.walkNode(child, child.DisplayName(), ts)
			if err != nil {
				return nil, err
			}
			meshes = append(meshes, collected...)
		}
		return meshes, nil

	case graph.NodeTransform:
		td, ok := n.Data.(graph.TransformData)
		if !ok {
			return nil, fmt.Errorf("transform node %s has unexpected data type %T", n.ID.Short(), n.Data)
		}
		children := ev.g.Children(n)
		if len(children) != 1 {
			return nil, fmt.Errorf("transform node %s has %d children, want 1", n.ID.Short(), len(children))
		}
		ts.push(td)
		defer ts.pop()
		return ev.walkNode(children[0], partName, ts)

	default:
		solid, err := ev.solid(n)
		if err != nil {
			return nil, err
		}
		mesh, err := ev.k.ToMesh(ts.apply(ev.k, solid))
		if err != nil {
			return nil, fmt.Errorf("tessellate: ToMesh failed for node %s: %w", n.ID.Short(), err)
		}
		mesh.PartName = partName
		return []*kernel.Mesh{mesh}, nil
	}
}

// solid evaluates n to a kernel solid.
func (ev *evaluator) solid(n *graph.Node) (kernel.Solid, error) {
	if s, ok := ev.solids[n.ID]; ok {
		return s, nil
	}
	if ev.visiting[n.ID] {
		return nil, fmt.Errorf("cycle through node %s", n.ID.Short())
	}
	ev.visiting[n.ID] = true
	defer delete(ev.visiting, n.ID)

	var (
		s   kernel.Solid
		err error
	)
	switch n.Kind {
	case graph.NodePrimitive:
		s, err = ev.primitive(n)
	case graph.NodeTransform:
		s, err = ev.transform(n)
	case graph.NodeBoolean:
		s, err = ev.boolean(n)
	case graph.NodeGroup:
		// A group used as an operand stands for the union of its members.
		s, err = ev.fold(n, ev.k.Union)
	default:
		err = fmt.Errorf("unknown node kind: %v", n.Kind)
	}
	if err != nil {
		return nil, err
	}

	ev.solids[n.ID] = s
	return s, nil
}

func (ev *evaluator) primitive(n *graph.Node) (kernel.Solid, error) {
	switch data := n.Data.(type) {
	case graph.BoxData:
		return ev.k.Box(data.Size.X, data.Size.Y, data.Size.Z), nil
	case graph.CylinderData:
		segments := data.Segments
		if segments == 0 {
			segments = ev.g.Defaults.Segments
		}
		return ev.k.Cylinder(data.Height, data.Radius, segments), nil
	default:
		return nil, fmt.Errorf("primitive node %s has unsupported data type %T", n.ID.Short(), n.Data)
	}
}

func (ev *evaluator) transform(n *graph.Node) (kernel.Solid, error) {
	td, ok := n.Data.(graph.TransformData)
	if !ok {
		return nil, fmt.Errorf("transform node %s has unexpected data type %T", n.ID.Short(), n.Data)
	}
	children := ev.g.Children(n)
	if len(children) != 1 {
		return nil, fmt.Errorf("transform node %s has %d children, want 1", n.ID.Short(), len(children))
	}
	child, err := ev.solid(children[0])
	if err != nil {
		return nil, err
	}
	return applyTransform(ev.k, child, td), nil
}

func (ev *evaluator) boolean(n *graph.Node) (kernel.Solid, error) {
	bd, ok := n.Data.(graph.BooleanData)
	if !ok {
		return nil, fmt.Errorf("boolean node %s has unexpected data type %T", n.ID.Short(), n.Data)
	}
	switch bd.Op {
	case graph.OpUnion:
		return ev.fold(n, ev.k.Union)
	case graph.OpDifference:
		return ev.fold(n, ev.k.Difference)
	case graph.OpIntersection:
		return ev.fold(n, ev.k.Intersection)
	default:
		return nil, fmt.Errorf("boolean node %s has unknown op %v", n.ID.Short(), bd.Op)
	}
}

// fold combines the children of n left to right with op.
func (ev *evaluator) fold(n *graph.Node, op func(a, b kernel.Solid) kernel.Solid) (kernel.Solid, error) {
	children := ev.g.Children(n)
	if len(children) == 0 {
		return nil, fmt.Errorf("%s node %s has no operands", n.Kind, n.ID.Short())
	}
	acc, err := ev.solid(children[0])
	if err != nil {
		return nil, err
	}
	for _, c := range children[1:] {
		s, err := ev.solid(c)
		if err != nil {
			return nil, err
		}
		acc = op(acc, s)
	}
	return acc, nil
}
