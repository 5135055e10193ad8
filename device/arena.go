package device

import "github.com/sbl8/forcegraph/kernels"

// Arena is a reusable set of per-tick scratch buffers: the node-state
// slice, adjacency slice and result slice a driver tick needs are
// reallocated only when the node/edge count changes, not on every
// tick. This mirrors the scratch-region role of a bump allocator
// without the byte-buffer machinery — the physics step here operates
// on typed kernels.NodeState slices, not raw payload bytes.
type Arena struct {
	nodes     []kernels.NodeState
	adjacency [][]kernels.Neighbor
	results   []kernels.NodeState
}

// Reset grows the arena's buffers to fit nodeCount nodes if needed,
// reusing the existing backing arrays otherwise. Adjacency slices are
// always rebuilt since topology may have changed.
func (a *Arena) Reset(nodeCount int) {
	if cap(a.nodes) < nodeCount {
		a.nodes = make([]kernels.NodeState, nodeCount)
		a.results = make([]kernels.NodeState, nodeCount)
	} else {
		a.nodes = a.nodes[:nodeCount]
		a.results = a.results[:nodeCount]
	}
	a.adjacency = make([][]kernels.Neighbor, nodeCount)
}

// Nodes returns the arena's node-state scratch buffer, sized to the
// last Reset call.
func (a *Arena) Nodes() []kernels.NodeState { return a.nodes }

// Adjacency returns the arena's adjacency scratch buffer.
func (a *Arena) Adjacency() [][]kernels.Neighbor { return a.adjacency }

// Results returns the arena's output scratch buffer, same length as
// Nodes.
func (a *Arena) Results() []kernels.NodeState { return a.results }
