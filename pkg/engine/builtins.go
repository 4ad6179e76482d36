package engine

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/chazu/carve/pkg/graph"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpSolid wraps a graph.NodeID so solids can be passed between builtins.
type sexpSolid struct {
	id   graph.NodeID
	name string // human-readable name for error messages
}

func (s *sexpSolid) SexpString(ps *zygo.PrintState) string {
	if s.name != "" {
		return fmt.Sprintf("(solid %q)", s.name)
	}
	return fmt.Sprintf("(solid %s)", s.id.Short())
}
func (s *sexpSolid) Type() *zygo.RegisteredType { return nil }

// sexpVec3 wraps a graph.Vec3.
type sexpVec3 struct {
	vec graph.Vec3
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %g %g %g)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value; treat as flag with nil.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// float reads the numeric keyword key into dst when present.
func (a kwArgs) float(key string, dst *float64) error {
	v, ok := a.kw[key]
	if !ok {
		return nil
	}
	f, err := toFloat64(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = f
	return nil
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toSolid extracts a NodeID from a sexpSolid.
func toSolid(s zygo.Sexp) (graph.NodeID, error) {
	if ref, ok := s.(*sexpSolid); ok {
		return ref.id, nil
	}
	return graph.NodeID{}, fmt.Errorf("expected solid, got %T (%s)", s, s.SexpString(nil))
}

// toVec3 extracts a Vec3 from a sexpVec3.
func toVec3(s zygo.Sexp) (graph.Vec3, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return graph.Vec3{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

// toSolids reads solid operands. A single list or array argument is
// expanded so generated collections can be passed directly.
func toSolids(args []zygo.Sexp) ([]graph.NodeID, error) {
	if len(args) == 1 {
		if _, ok := args[0].(*sexpSolid); !ok {
			items, err := sexpListToSlice(args[0])
			if err != nil {
				return nil, err
			}
			args = items
		}
	}
	ids := make([]graph.NodeID, 0, len(args))
	for i, a := range args {
		id, err := toSolid(a)
		if err != nil {
			return nil, fmt.Errorf("operand %d: %w", i+1, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// ---------------------------------------------------------------------------
// Content-addressed node construction
// ---------------------------------------------------------------------------

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func formatVec(v graph.Vec3) string {
	return formatFloat(v.X) + "," + formatFloat(v.Y) + "," + formatFloat(v.Z)
}

func formatIDs(ids []graph.NodeID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	return strings.Join(parts, ",")
}

// builder populates a DesignGraph during one evaluation.
type builder struct {
	g *graph.DesignGraph

	// superseded holds anonymous nodes that defsolid copied under a name.
	superseded map[graph.NodeID]bool
}

// add inserts an anonymous node whose ID is derived from path, so equal
// expressions share one node.
func (b *builder) add(path string, kind graph.NodeKind, children []graph.NodeID, data graph.NodeData) *sexpSolid {
	id := graph.NewNodeID(path)
	if b.g.Get(id) == nil {
		b.g.AddNode(&graph.Node{ID: id, Kind: kind, Children: children, Data: data})
	}
	return &sexpSolid{id: id}
}

// finish drops superseded nodes that nothing else refers to.
func (b *builder) finish() {
	if len(b.superseded) == 0 {
		return
	}
	used := make(map[graph.NodeID]bool)
	for _, n := range b.g.Nodes {
		for _, c := range n.Children {
			used[c] = true
		}
	}
	for _, r := range b.g.Roots {
		used[r] = true
	}
	for id := range b.superseded {
		if !used[id] {
			delete(b.g.Nodes, id)
		}
	}
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

type builtin = func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error)

// registerBuiltins installs all carve DSL builtins into a zygomys environment.
// The builtins operate on the provided DesignGraph, populating it during
// evaluation. The returned builder must be finished after the run.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, g *graph.DesignGraph) *builder {
	b := &builder{g: g, superseded: make(map[graph.NodeID]bool)}

	fns := map[string]builtin{
		"vec3":         b.vec3,
		"box":          b.box,
		"cylinder":     b.cylinder,
		"translate":    b.transform("translate"),
		"rotate":       b.transform("rotate"),
		"union":        b.boolean(graph.OpUnion),
		"difference":   b.boolean(graph.OpDifference),
		"intersection": b.boolean(graph.OpIntersection),
		"defsolid":     b.defsolid,
		"solid":        b.solid,
		"group":        b.group,
	}
	for name, fn := range fns {
		env.AddFunction(name, fn)
	}
	return b
}

// (vec3 1 2 3)
func (b *builder) vec3(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
	if len(args) != 3 {
		return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
	}

	var c [3]float64
	for i, axis := range []string{"x", "y", "z"} {
		f, err := toFloat64(args[i])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: %s: %w", axis, err)
		}
		c[i] = f
	}

	return &sexpVec3{vec: graph.Vec3{X: c[0], Y: c[1], Z: c[2]}}, nil
}

// (box :size (vec3 100 60 10))
func (b *builder) box(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
	pa := parseArgs(args)

	v, ok := pa.kw["size"]
	if !ok {
		if len(pa.positional) != 1 {
			return zygo.SexpNull, fmt.Errorf("box requires :size")
		}
		v = pa.positional[0]
	}
	size, err := toVec3(v)
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("box: size: %w", err)
	}

	data := graph.BoxData{PrimKind: graph.PrimBox, Size: size}
	return b.add("box/"+formatVec(size), graph.NodePrimitive, nil, data), nil
}

// (cylinder :radius 5 :height 30 :segments 24)
func (b *builder) cylinder(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
	pa := parseArgs(args)
	data := graph.CylinderData{PrimKind: graph.PrimCylinder}

	if err := pa.float("radius", &data.Radius); err != nil {
		return zygo.SexpNull, fmt.Errorf("cylinder: %w", err)
	}
	if err := pa.float("height", &data.Height); err != nil {
		return zygo.SexpNull, fmt.Errorf("cylinder: %w", err)
	}
	var segments float64
	if err := pa.float("segments", &segments); err != nil {
		return zygo.SexpNull, fmt.Errorf("cylinder: %w", err)
	}
	data.Segments = int(segments)

	path := fmt.Sprintf("cylinder/%s,%s,%d", formatFloat(data.Radius), formatFloat(data.Height), data.Segments)
	return b.add(path, graph.NodePrimitive, nil, data), nil
}

// (translate s (vec3 10 0 0)) and (rotate s (vec3 0 0 90))
func (b *builder) transform(op string) builtin {
	return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("%s requires a solid and a vec3", op)
		}
		child, err := toSolid(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: %w", op, err)
		}
		v, err := toVec3(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: %w", op, err)
		}

		var data graph.TransformData
		if op == "rotate" {
			data.Rotation = &v
		} else {
			data.Translation = &v
		}

		path := op + "/" + child.String() + "/" + formatVec(v)
		return b.add(path, graph.NodeTransform, []graph.NodeID{child}, data), nil
	}
}

// (union a b ...), (difference a b ...), (intersection a b ...)
func (b *builder) boolean(op graph.BooleanOp) builtin {
	return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		children, err := toSolids(args)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("%s: %w", op, err)
		}
		if len(children) < 2 {
			return zygo.SexpNull, fmt.Errorf("%s requires at least 2 solids, got %d", op, len(children))
		}

		path := op.String() + "/" + formatIDs(children)
		return b.add(path, graph.NodeBoolean, children, graph.BooleanData{Op: op}), nil
	}
}

// (defsolid "name" s) names a solid and registers it as a root.
func (b *builder) defsolid(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
	if len(args) != 2 {
		return zygo.SexpNull, fmt.Errorf("defsolid requires a name and a solid expression")
	}

	solidName, err := toString(args[0])
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("defsolid: name: %w", err)
	}
	if b.g.Lookup(solidName) != nil {
		return zygo.SexpNull, fmt.Errorf("defsolid: solid %q already defined", solidName)
	}
	bodyID, err := toSolid(args[1])
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("defsolid: %w", err)
	}
	body := b.g.Get(bodyID)
	if body == nil {
		return zygo.SexpNull, fmt.Errorf("defsolid: unknown solid %s", bodyID.Short())
	}

	id := graph.NewNodeID("defsolid/" + solidName)
	b.g.AddNode(&graph.Node{
		ID:       id,
		Kind:     body.Kind,
		Name:     solidName,
		Children: slices.Clone(body.Children),
		Data:     body.Data,
	})
	b.g.AddRoot(id)
	if body.Name == "" {
		b.superseded[bodyID] = true
	}

	return &sexpSolid{id: id, name: solidName}, nil
}

// (solid "name")
func (b *builder) solid(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
	if len(args) != 1 {
		return zygo.SexpNull, fmt.Errorf("solid requires a name argument")
	}

	solidName, err := toString(args[0])
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("solid: name: %w", err)
	}

	n := b.g.Lookup(solidName)
	if n == nil {
		return zygo.SexpNull, fmt.Errorf("solid: no solid named %q", solidName)
	}

	return &sexpSolid{id: n.ID, name: solidName}, nil
}

// (group "name" s ...) collects solids that are output as separate parts.
// Members stop being roots of their own.
func (b *builder) group(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
	if len(args) < 1 {
		return zygo.SexpNull, fmt.Errorf("group requires a name argument")
	}

	groupName, err := toString(args[0])
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("group: name: %w", err)
	}
	if b.g.Lookup(groupName) != nil {
		return zygo.SexpNull, fmt.Errorf("group: name %q already defined", groupName)
	}

	children, err := toSolids(args[1:])
	if err != nil {
		return zygo.SexpNull, fmt.Errorf("group: %w", err)
	}

	id := graph.NewNodeID("group/" + groupName)
	b.g.AddNode(&graph.Node{
		ID:       id,
		Kind:     graph.NodeGroup,
		Name:     groupName,
		Children: children,
		Data:     graph.GroupData{},
	})
	b.g.Roots = slices.DeleteFunc(b.g.Roots, func(r graph.NodeID) bool {
		return slices.Contains(children, r)
	})
	b.g.AddRoot(id)

	return &sexpSolid{id: id, name: groupName}, nil
}
