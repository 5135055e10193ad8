package model

// Node is a single document in the graph. Identity is a stable string
// id (the source document name, extension stripped) plus a numeric id
// in [0, 65535] used on the wire (wire.Record). Attributes beyond
// identity are a label, the physics record (model.PhysicsRecord),
// document-derived metadata, and optional rendering hints.
type Node struct {
	StringID string
	NumericID uint16

	Label    string
	Physics  PhysicsRecord
	Metadata map[string]string

	// RenderHints are optional, client-facing presentation attributes
	// (size/color/group) derived from metadata at build time; never
	// touched by the physics driver or inbound wire edits.
	RenderHints RenderHints
}

// RenderHints mirrors the original's optional Node rendering fields
// (original_source/src/models/node.rs): node_type, size, color,
// weight, group. All optional; zero value means "unset".
type RenderHints struct {
	NodeType string
	Size     float32
	Color    string
	Weight   float32
	Group    string
}

// NewNode builds a Node with zeroed physics state and FlagActive set,
// matching the original's Node::new default (flags = 1).
func NewNode(stringID string, numericID uint16) *Node {
	n := &Node{
		StringID:  stringID,
		NumericID: numericID,
		Label:     stringID,
		Metadata:  make(map[string]string),
	}
	n.Physics.SetActive(true)
	return n
}

// Clone returns a deep copy of n — metadata map and render hints are
// copied, not shared, so mutating the clone never affects the original.
func (n *Node) Clone() *Node {
	c := *n
	c.Metadata = make(map[string]string, len(n.Metadata))
	for k, v := range n.Metadata {
		c.Metadata[k] = v
	}
	return &c
}
