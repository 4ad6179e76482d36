package graph

import "fmt"

// ---------------------------------------------------------------------------
// Tier 2: geometric validation (errors + warnings)
// ---------------------------------------------------------------------------

// validateGeometry runs all Tier 2 geometric checks.
// Returns errors (blocking) and warnings (advisory) separately.
func validateGeometry(g *DesignGraph) ([]ValidationError, []ValidationWarning) {
	var errs []ValidationError
	var warnings []ValidationWarning

	errs = append(errs, validateDimensions(g)...)
	errs = append(errs, validateArity(g)...)
	warnings = append(warnings, validateNoOpTransforms(g)...)

	return errs, warnings
}

// validateDimensions checks that every primitive has positive size and a
// usable cylinder resolution.
func validateDimensions(g *DesignGraph) []ValidationError {
	var errs []ValidationError
	bad := func(node *Node, format string, args ...any) {
		errs = append(errs, ValidationError{
			NodeID:   node.ID,
			Message:  fmt.Sprintf(format, args...),
			Severity: SeverityError,
		})
	}

	for _, node := range g.Nodes {
		switch d := node.Data.(type) {
		case BoxData:
			if d.Size.X <= 0 {
				bad(node, "box size X is %.4f, must be positive", d.Size.X)
			}
			if d.Size.Y <= 0 {
				bad(node, "box size Y is %.4f, must be positive", d.Size.Y)
			}
			if d.Size.Z <= 0 {
				bad(node, "box size Z is %.4f, must be positive", d.Size.Z)
			}
		case CylinderData:
			if d.Radius <= 0 {
				bad(node, "cylinder radius is %.4f, must be positive", d.Radius)
			}
			if d.Height <= 0 {
				bad(node, "cylinder height is %.4f, must be positive", d.Height)
			}
			if d.Segments != 0 && d.Segments < 3 {
				bad(node, "cylinder has %d segments, need at least 3", d.Segments)
			}
		}
	}

	return errs
}

// validateArity checks child counts: primitives are leaves, transforms wrap
// exactly one solid, booleans combine at least two and groups hold at least
// one.
func validateArity(g *DesignGraph) []ValidationError {
	var errs []ValidationError

	for _, node := range g.Nodes {
		n := len(node.Children)
		var msg string
		switch node.Kind {
		case NodePrimitive:
			if n != 0 {
				msg = fmt.Sprintf("primitive has %d children, want none", n)
			}
		case NodeTransform:
			if n != 1 {
				msg = fmt.Sprintf("transform has %d children, want exactly 1", n)
			}
		case NodeBoolean:
			if n < 2 {
				op := "boolean"
				if d, ok := node.Data.(BooleanData); ok {
					op = d.Op.String()
				}
				msg = fmt.Sprintf("%s has %d operands, need at least 2", op, n)
			}
		case NodeGroup:
			if n == 0 {
				msg = "group is empty"
			}
		}
		if msg != "" {
			errs = append(errs, ValidationError{NodeID: node.ID, Message: msg, Severity: SeverityError})
		}
	}

	return errs
}

// validateNoOpTransforms warns about transforms that neither move nor rotate.
func validateNoOpTransforms(g *DesignGraph) []ValidationWarning {
	var warnings []ValidationWarning

	for _, node := range g.Nodes {
		td, ok := node.Data.(TransformData)
		if !ok {
			continue
		}
		moves := td.Translation != nil && !td.Translation.IsZero()
		turns := td.Rotation != nil && !td.Rotation.IsZero()
		if !moves && !turns {
			warnings = append(warnings, ValidationWarning{
				NodeID:  node.ID,
				Message: "transform has no effect",
			})
		}
	}

	return warnings
}
