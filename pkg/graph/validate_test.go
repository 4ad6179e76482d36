package graph

import (
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

// buildValidPlate creates a valid graph: a box with a translated cylinder
// subtracted from it, registered as the named root "plate".
func buildValidPlate() *DesignGraph {
	g := New()

	boxID := NewNodeID("box/plate")
	cylID := NewNodeID("cylinder/hole")
	moveID := NewNodeID("translate/hole")
	diffID := NewNodeID("defsolid/plate")

	g.AddNode(&Node{
		ID: boxID, Kind: NodePrimitive,
		Data: BoxData{PrimKind: PrimBox, Size: Vec3{100, 60, 10}},
	})
	g.AddNode(&Node{
		ID: cylID, Kind: NodePrimitive,
		Data: CylinderData{PrimKind: PrimCylinder, Radius: 5, Height: 30, Segments: 24},
	})
	g.AddNode(&Node{
		ID: moveID, Kind: NodeTransform,
		Children: []NodeID{cylID},
		Data:     TransformData{Translation: &Vec3{50, 30, 5}},
	})
	g.AddNode(&Node{
		ID: diffID, Kind: NodeBoolean, Name: "plate",
		Children: []NodeID{boxID, moveID},
		Data:     BooleanData{Op: OpDifference},
	})
	g.AddRoot(diffID)

	return g
}

// hasError returns true if errs contains at least one error-severity finding
// whose message contains substr.
func hasError(errs []ValidationError, substr string) bool {
	for _, e := range errs {
		if e.Severity == SeverityError && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

// hasWarning returns true if errs contains at least one warning-severity
// finding whose message contains substr.
func hasWarning(errs []ValidationError, substr string) bool {
	for _, e := range errs {
		if e.Severity == SeverityWarning && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

// errorCount returns the number of error-severity findings.
func errorCount(errs []ValidationError) int {
	n := 0
	for _, e := range errs {
		if e.Severity == SeverityError {
			n++
		}
	}
	return n
}

func logAll(t *testing.T, errs []ValidationError) {
	t.Helper()
	for _, e := range errs {
		t.Logf("  %s", e)
	}
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestValidate_ValidGraph(t *testing.T) {
	g := buildValidPlate()
	errs := Validate(g)
	for _, e := range errs {
		t.Errorf("unexpected validation error: %s", e)
	}
}

func TestValidate_EmptyGraph(t *testing.T) {
	errs := Validate(New())
	for _, e := range errs {
		t.Errorf("unexpected validation error on empty graph: %s", e)
	}
}

func TestValidate_CycleDetection(t *testing.T) {
	g := New()

	aID := NewNodeID("a")
	bID := NewNodeID("b")
	cID := NewNodeID("c")

	// Create a cycle: a -> b -> c -> a
	g.AddNode(&Node{ID: aID, Kind: NodeGroup, Name: "a", Children: []NodeID{bID}, Data: GroupData{}})
	g.AddNode(&Node{ID: bID, Kind: NodeGroup, Name: "b", Children: []NodeID{cID}, Data: GroupData{}})
	g.AddNode(&Node{ID: cID, Kind: NodeGroup, Name: "c", Children: []NodeID{aID}, Data: GroupData{}})
	g.AddRoot(aID)

	errs := Validate(g)
	if !hasError(errs, "cycle") {
		t.Error("expected cycle detection error, got none")
		logAll(t, errs)
	}

	// The message walks the loop from the revisited node back to itself.
	var path []string
	for _, e := range errs {
		if rest, ok := strings.CutPrefix(e.Message, "cycle detected: "); ok {
			path = strings.Split(rest, " -> ")
		}
	}
	if len(path) != 4 || path[0] != path[3] {
		t.Errorf("cycle path = %v, want a closed loop over a, b and c", path)
	}
}

func TestValidate_SelfLoop(t *testing.T) {
	g := New()
	id := NewNodeID("self")
	g.AddNode(&Node{ID: id, Kind: NodeGroup, Name: "self", Children: []NodeID{id}, Data: GroupData{}})
	g.AddRoot(id)

	errs := Validate(g)
	if !hasError(errs, "cycle detected: self -> self") {
		t.Error("expected self loop to be reported")
		logAll(t, errs)
	}
}

func TestValidate_StableOrder(t *testing.T) {
	g := buildValidPlate()
	for _, name := range []string{"stray-a", "stray-b", "stray-c", "stray-d"} {
		g.AddNode(&Node{ID: NewNodeID("box/" + name), Kind: NodePrimitive, Name: name, Data: BoxData{Size: Vec3{1, 1, 1}}})
	}
	g.NameIndex["ghost"] = NewNodeID("ghost")
	g.NameIndex["phantom"] = NewNodeID("phantom")

	first := Validate(g)
	for range 10 {
		again := Validate(g)
		if len(again) != len(first) {
			t.Fatalf("finding count changed: %d then %d", len(first), len(again))
		}
		for i := range first {
			if again[i] != first[i] {
				t.Fatalf("finding %d changed: %q then %q", i, first[i].Message, again[i].Message)
			}
		}
	}
}

func TestValidate_DanglingReference(t *testing.T) {
	g := New()

	parentID := NewNodeID("parent")
	g.AddNode(&Node{
		ID: parentID, Kind: NodeGroup, Name: "parent",
		Children: []NodeID{NewNodeID("missing-child")},
		Data:     GroupData{},
	})
	g.AddRoot(parentID)

	errs := Validate(g)
	if !hasError(errs, "does not exist") {
		t.Error("expected dangling reference error, got none")
		logAll(t, errs)
	}
}

func TestValidate_DuplicateName(t *testing.T) {
	g := New()

	aID := NewNodeID("box/a")
	bID := NewNodeID("box/b")
	g.AddNode(&Node{ID: aID, Kind: NodePrimitive, Name: "part", Data: BoxData{Size: Vec3{1, 1, 1}}})
	g.AddNode(&Node{ID: bID, Kind: NodePrimitive, Name: "part", Data: BoxData{Size: Vec3{2, 2, 2}}})
	g.AddRoot(aID)
	g.AddRoot(bID)

	errs := Validate(g)
	if !hasError(errs, `duplicate name "part"`) {
		t.Error("expected duplicate name error, got none")
		logAll(t, errs)
	}
}

func TestValidate_OrphanNode(t *testing.T) {
	g := buildValidPlate()
	orphanID := NewNodeID("box/stray")
	g.AddNode(&Node{ID: orphanID, Kind: NodePrimitive, Name: "stray", Data: BoxData{Size: Vec3{1, 1, 1}}})

	errs := Validate(g)
	if errorCount(errs) != 0 {
		t.Errorf("orphan should not be an error, got %d errors", errorCount(errs))
		logAll(t, errs)
	}
	if !hasWarning(errs, `"stray" is not reachable`) {
		t.Error("expected orphan warning, got none")
		logAll(t, errs)
	}
}

func TestValidate_NameIndexPointsToMissingNode(t *testing.T) {
	g := buildValidPlate()
	g.NameIndex["ghost"] = NewNodeID("ghost")

	errs := Validate(g)
	if !hasError(errs, `"ghost" references non-existent node`) {
		t.Error("expected stale name index error, got none")
		logAll(t, errs)
	}
}

func TestValidate_RootReferencesNonExistentNode(t *testing.T) {
	g := New()
	g.AddRoot(NewNodeID("nowhere"))

	errs := Validate(g)
	if !hasError(errs, "root reference") {
		t.Error("expected missing root error, got none")
		logAll(t, errs)
	}
}

func TestValidate_KindDataMismatch(t *testing.T) {
	g := New()
	id := NewNodeID("mismatch")
	g.AddNode(&Node{ID: id, Kind: NodeBoolean, Data: BoxData{Size: Vec3{1, 1, 1}}})
	g.AddRoot(id)

	errs := Validate(g)
	if !hasError(errs, "boolean node carries graph.BoxData data") {
		t.Error("expected kind/data mismatch error, got none")
		logAll(t, errs)
	}
}

func TestValidate_MultipleErrors(t *testing.T) {
	g := buildValidPlate()
	g.NameIndex["ghost"] = NewNodeID("ghost")
	g.AddRoot(NewNodeID("nowhere"))
	plate := g.MustLookup("plate")
	plate.Children = append(plate.Children, NewNodeID("gone"))

	errs := Validate(g)
	if n := errorCount(errs); n != 3 {
		t.Errorf("error count = %d, want 3", n)
		logAll(t, errs)
	}
}

func TestValidationError_String(t *testing.T) {
	id := NewNodeID("x")
	e := ValidationError{NodeID: id, Message: "broken", Severity: SeverityError}
	want := "[error] node " + id.Short() + ": broken"
	if e.Error() != want {
		t.Errorf("Error() = %q, want %q", e.Error(), want)
	}

	g := ValidationError{Message: "graph-level", Severity: SeverityWarning}
	if g.Error() != "[warning] graph-level" {
		t.Errorf("Error() = %q", g.Error())
	}

	if s := ValidationSeverity(7).String(); s != "ValidationSeverity(7)" {
		t.Errorf("unknown severity String() = %q", s)
	}
}
