package bsp

// KeepRule selects which part of the clipped polygons survives a Clip.
type KeepRule int

const (
	// KeepFront keeps what lies strictly in front of the tree's surface.
	KeepFront KeepRule = iota
	// KeepFrontCoplanar keeps the front side plus surface polygons facing
	// the same way as the tree's own.
	KeepFrontCoplanar
	// KeepBack keeps what lies strictly behind the tree's surface.
	KeepBack
	// KeepBackCoplanar keeps the back side plus surface polygons facing the
	// same way as the tree's own.
	KeepBackCoplanar
)

func (r KeepRule) String() string {
	switch r {
	case KeepFront:
		return "front"
	case KeepFrontCoplanar:
		return "front+coplanar"
	case KeepBack:
		return "back"
	case KeepBackCoplanar:
		return "back+coplanar"
	default:
		return "unknown"
	}
}

func (r KeepRule) keepsFront() bool {
	return r == KeepFront || r == KeepFrontCoplanar
}

// sameFacingGoesFront reports whether coplanar polygons facing the node's
// way are sent on to the front subtree instead of being clipped against the
// node's polygons. KeepFrontCoplanar and KeepBack route them the same way,
// as do KeepFront and KeepBackCoplanar, so each complementary pair splits
// its input without gaps or overlap.
func (r KeepRule) sameFacingGoesFront() bool {
	return r == KeepFrontCoplanar || r == KeepBack
}
