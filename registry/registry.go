// Package registry holds the shared graph state that the physics
// driver, the ingestion pipeline and every streaming session read and
// mutate concurrently: the graph itself, a string-id index mirroring
// it, and the physics parameter block. Each is independently
// lockable, following the split-RWMutex discipline of the graph core
// it is grounded on (muVert/muEdgeAdj there, muGraph/muIndex/muParams
// here) — many readers proceed concurrently, and a writer excludes
// only the readers of the handle it holds.
package registry

import (
	"sync"

	"github.com/sbl8/forcegraph/kernels"
	"github.com/sbl8/forcegraph/model"
)

// Registry is the process-wide shared state. The zero value is not
// usable; construct with New.
type Registry struct {
	muGraph sync.RWMutex // protects graph
	graph   *model.Graph

	muIndex sync.RWMutex // protects index; kept consistent with graph under WriteBoth
	index   map[string]*model.Node

	muParams sync.RWMutex // protects params
	params   kernels.Params
}

// New builds a Registry over an initial graph and parameter block.
func New(g *model.Graph, params kernels.Params) *Registry {
	r := &Registry{graph: g, params: params}
	r.reindexLocked()
	return r
}

func (r *Registry) reindexLocked() {
	idx := make(map[string]*model.Node, len(r.graph.Nodes))
	for _, n := range r.graph.Nodes {
		idx[n.StringID] = n
	}
	r.index = idx
}

// ReadGraph calls fn with a read lock held on the graph. fn must not
// retain the pointer past the call.
func (r *Registry) ReadGraph(fn func(g *model.Graph)) {
	r.muGraph.RLock()
	defer r.muGraph.RUnlock()
	fn(r.graph)
}

// WriteGraph calls fn with a write lock held on the graph only. Use
// this when fn does not need the index to stay consistent with the
// graph across the call (e.g. physics position/velocity updates that
// don't add or remove nodes).
func (r *Registry) WriteGraph(fn func(g *model.Graph)) {
	r.muGraph.Lock()
	defer r.muGraph.Unlock()
	fn(r.graph)
}

// ReadIndex calls fn with a read lock held on the string-id index.
func (r *Registry) ReadIndex(fn func(index map[string]*model.Node)) {
	r.muIndex.RLock()
	defer r.muIndex.RUnlock()
	fn(r.index)
}

// WriteBoth atomically acquires write locks on both the graph and the
// index, in a fixed lock order (graph, then index) to avoid deadlock
// with any future caller that needs both. Use this for any mutation
// that replaces the node set — after fn returns, the index is
// rebuilt from the (possibly new) graph before the locks are released,
// so the registry invariant (index consistent with graph) holds the
// instant both locks are released.
func (r *Registry) WriteBoth(fn func(g *model.Graph)) {
	r.muGraph.Lock()
	defer r.muGraph.Unlock()
	r.muIndex.Lock()
	defer r.muIndex.Unlock()

	fn(r.graph)
	r.reindexLocked()
}

// ReplaceGraph swaps in a newly built graph (e.g. after a rebuild) and
// rebuilds the index to match, atomically from any reader's view.
func (r *Registry) ReplaceGraph(g *model.Graph) {
	r.muGraph.Lock()
	defer r.muGraph.Unlock()
	r.muIndex.Lock()
	defer r.muIndex.Unlock()

	r.graph = g
	r.reindexLocked()
}

// Params returns a copy of the current parameter block.
func (r *Registry) Params() kernels.Params {
	r.muParams.RLock()
	defer r.muParams.RUnlock()
	return r.params
}

// SetParams atomically replaces the parameter block between ticks.
func (r *Registry) SetParams(p kernels.Params) {
	r.muParams.Lock()
	defer r.muParams.Unlock()
	r.params = p
}
