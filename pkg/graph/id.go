package graph

import (
	"encoding/hex"

	"github.com/google/uuid"
)

// idNamespace scopes node IDs so they cannot collide with other UUIDv5 users.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/chazu/carve/node"))

// NodeID is a content-addressed node identifier: the same construction path
// always yields the same ID, so re-evaluating unchanged source produces an
// identical graph.
type NodeID uuid.UUID

// NewNodeID derives the ID for a construction path such as "box/3.000,1.000,2.000".
func NewNodeID(path string) NodeID {
	return NodeID(uuid.NewSHA1(idNamespace, []byte(path)))
}

// IsZero reports whether id is the zero value.
func (id NodeID) IsZero() bool {
	return id == NodeID{}
}

// String returns the canonical UUID form.
func (id NodeID) String() string {
	return uuid.UUID(id).String()
}

// Short returns the first 6 bytes as hex, for log and error messages.
func (id NodeID) Short() string {
	return hex.EncodeToString(id[:6])
}

// MarshalText implements encoding.TextMarshaler so IDs serialise as strings,
// including as JSON map keys.
func (id NodeID) MarshalText() ([]byte, error) {
	return uuid.UUID(id).MarshalText()
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *NodeID) UnmarshalText(text []byte) error {
	var u uuid.UUID
	if err := u.UnmarshalText(text); err != nil {
		return err
	}
	*id = NodeID(u)
	return nil
}

// SourceRef locates the source expression that created a node.
type SourceRef struct {
	Line int `json:"line,omitempty"`
	Col  int `json:"col,omitempty"`
}
