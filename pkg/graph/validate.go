package graph

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// ValidationSeverity separates blocking findings from advisory ones.
type ValidationSeverity int

const (
	SeverityError ValidationSeverity = iota
	SeverityWarning
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError is one finding. NodeID is zero for graph-level problems.
type ValidationError struct {
	NodeID   NodeID
	Message  string
	Severity ValidationSeverity
}

func (e ValidationError) Error() string {
	if e.NodeID.IsZero() {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] node %s: %s", e.Severity, e.NodeID.Short(), e.Message)
}

// ValidationWarning is an advisory finding.
type ValidationWarning struct {
	NodeID  NodeID
	Message string
}

// ValidationResult holds the findings of every tier.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationWarning
}

// OK reports whether nothing blocks tessellation.
func (r ValidationResult) OK() bool {
	return len(r.Errors) == 0
}

// findings accumulates validation output.
type findings []ValidationError

func (f *findings) errorf(id NodeID, format string, args ...any) {
	*f = append(*f, ValidationError{NodeID: id, Message: fmt.Sprintf(format, args...), Severity: SeverityError})
}

func (f *findings) warnf(id NodeID, format string, args ...any) {
	*f = append(*f, ValidationError{NodeID: id, Message: fmt.Sprintf(format, args...), Severity: SeverityWarning})
}

// Validate runs the structural checks (tier 1). Findings come out in a
// stable order for a given graph; warnings carry SeverityWarning. g is
// never modified.
func Validate(g *DesignGraph) []ValidationError {
	var f findings
	ids := sortedIDs(g)
	checkAcyclic(g, ids, &f)
	checkReferences(g, ids, &f)
	checkNames(g, &f)
	checkRoots(g, ids, &f)
	checkKinds(g, ids, &f)
	return f
}

// ValidateAll runs the structural and geometric tiers.
func ValidateAll(g *DesignGraph) ValidationResult {
	var result ValidationResult
	for _, e := range Validate(g) {
		if e.Severity == SeverityWarning {
			result.Warnings = append(result.Warnings, ValidationWarning{NodeID: e.NodeID, Message: e.Message})
			continue
		}
		result.Errors = append(result.Errors, e)
	}

	errs, warnings := validateGeometry(g)
	result.Errors = append(result.Errors, errs...)
	result.Warnings = append(result.Warnings, warnings...)
	return result
}

func sortedIDs(g *DesignGraph) []NodeID {
	ids := lo.Keys(g.Nodes)
	slices.SortFunc(ids, func(a, b NodeID) int { return bytes.Compare(a[:], b[:]) })
	return ids
}

// checkAcyclic reports the first cycle found, spelled out as a path of
// node names. Missing children are left to checkReferences.
func checkAcyclic(g *DesignGraph, ids []NodeID, f *findings) {
	const (
		unseen = iota
		onPath
		done
	)
	type frame struct {
		id   NodeID
		next int
	}
	state := make(map[NodeID]int, len(g.Nodes))

	for _, start := range ids {
		if state[start] != unseen {
			continue
		}
		path := []frame{{id: start}}
		state[start] = onPath
		for len(path) > 0 {
			top := &path[len(path)-1]
			children := g.Nodes[top.id].Children
			if top.next == len(children) {
				state[top.id] = done
				path = path[:len(path)-1]
				continue
			}
			child := children[top.next]
			top.next++
			if _, ok := g.Nodes[child]; !ok {
				continue
			}
			switch state[child] {
			case onPath:
				at := slices.IndexFunc(path, func(fr frame) bool { return fr.id == child })
				names := make([]string, 0, len(path)-at+1)
				for _, fr := range path[at:] {
					names = append(names, g.Nodes[fr.id].DisplayName())
				}
				names = append(names, g.Nodes[child].DisplayName())
				f.errorf(child, "cycle detected: %s", strings.Join(names, " -> "))
				return
			case unseen:
				state[child] = onPath
				path = append(path, frame{id: child})
			}
		}
	}
}

func checkReferences(g *DesignGraph, ids []NodeID, f *findings) {
	for _, id := range ids {
		for _, child := range g.Nodes[id].Children {
			if _, ok := g.Nodes[child]; !ok {
				f.errorf(id, "child reference %s does not exist", child.Short())
			}
		}
	}
}

// checkNames requires the name index to be exact: every entry resolves, and
// no name is carried by two nodes.
func checkNames(g *DesignGraph, f *findings) {
	names := lo.Keys(g.NameIndex)
	slices.Sort(names)
	for _, name := range names {
		if id := g.NameIndex[name]; g.Nodes[id] == nil {
			f.errorf(NodeID{}, "name index entry %q references non-existent node %s", name, id.Short())
		}
	}

	counts := lo.CountValuesBy(lo.Values(g.Nodes), func(n *Node) string { return n.Name })
	dups := lo.Filter(lo.Keys(counts), func(name string, _ int) bool { return name != "" && counts[name] > 1 })
	slices.Sort(dups)
	for _, name := range dups {
		f.errorf(NodeID{}, "duplicate name %q assigned to %d nodes", name, counts[name])
	}
}

// checkRoots rejects missing roots and warns about nodes no root reaches.
func checkRoots(g *DesignGraph, ids []NodeID, f *findings) {
	reached := make(map[NodeID]bool, len(g.Nodes))
	var pending []NodeID
	for _, r := range g.Roots {
		if g.Nodes[r] == nil {
			f.errorf(NodeID{}, "root reference %s does not exist", r.Short())
			continue
		}
		pending = append(pending, r)
	}
	for len(pending) > 0 {
		id := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		if reached[id] {
			continue
		}
		reached[id] = true
		if n := g.Nodes[id]; n != nil {
			pending = append(pending, n.Children...)
		}
	}

	for _, id := range ids {
		if !reached[id] {
			f.warnf(id, "node %q is not reachable from any root (orphan)", g.Nodes[id].DisplayName())
		}
	}
}

func checkKinds(g *DesignGraph, ids []NodeID, f *findings) {
	for _, id := range ids {
		n := g.Nodes[id]
		var ok bool
		switch n.Kind {
		case NodePrimitive:
			switch n.Data.(type) {
			case BoxData, CylinderData:
				ok = true
			}
		case NodeTransform:
			_, ok = n.Data.(TransformData)
		case NodeBoolean:
			_, ok = n.Data.(BooleanData)
		case NodeGroup:
			_, ok = n.Data.(GroupData)
		}
		if !ok {
			f.errorf(id, "%s node carries %T data", n.Kind, n.Data)
		}
	}
}
