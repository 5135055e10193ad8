package device

import (
	"context"
	"time"

	"github.com/golang/glog"

	"github.com/sbl8/forcegraph/errs"
	"github.com/sbl8/forcegraph/kernels"
	"github.com/sbl8/forcegraph/metrics"
	"github.com/sbl8/forcegraph/model"
	"github.com/sbl8/forcegraph/registry"
)

// TickInterval is the driver's target cadence (spec: 60 Hz).
const TickInterval = time.Second / 60

// Driver runs the physics tick loop against a Registry, preferring a
// data-parallel Backend and falling back to SerialBackend when a step
// on that backend fails.
type Driver struct {
	reg      *registry.Registry
	active   Backend
	fallback Backend
	arena    Arena
	metrics  *metrics.Collector

	lastNodeCount int
	lastEdgeCount int
}

// NewDriver builds a Driver. primary is the preferred backend (typically
// a WorkerPoolBackend); if primary returns an error from a step, the
// driver switches permanently to a SerialBackend, reruns that step on
// it and keeps running. Backend has no separate initialization step,
// so a step error is the only trigger for the switch. m may be nil.
func NewDriver(reg *registry.Registry, primary Backend, m *metrics.Collector) *Driver {
	return &Driver{reg: reg, active: primary, fallback: SerialBackend{}, metrics: m}
}

// Run blocks, ticking at TickInterval until ctx is cancelled. A
// disabled parameter block makes each tick a no-op rather than
// stopping the loop.
func (d *Driver) Run(ctx context.Context) {
	ticker := time.NewTicker(TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.tick(ctx)
		}
	}
}

func (d *Driver) tick(ctx context.Context) {
	params := d.reg.Params()
	if !params.Enabled {
		return
	}

	start := time.Now()
	defer func() { d.metrics.ObserveTick(time.Since(start)) }()

	var stepErr error
	d.reg.WriteGraph(func(g *model.Graph) {
		snap, topologyChanged, err := d.buildSnapshot(g, params)
		if err != nil {
			stepErr = err
			return
		}
		if topologyChanged {
			glog.V(2).Infof("device: topology changed, %d nodes %d edges", len(g.Nodes), len(g.Edges))
		}

		out := d.arena.Results()
		if err := d.active.Step(ctx, snap, out); err != nil {
			glog.Warningf("device: primary backend step failed, switching to fallback: %v", err)
			d.active = d.fallback
			if err := d.fallback.Step(ctx, snap, out); err != nil {
				stepErr = errs.NewDeviceError(err, "fallback backend step failed")
				return
			}
		}

		for i, n := range g.Nodes {
			n.Physics.Position = out[i].Position
			n.Physics.Velocity = out[i].Velocity
		}
	})

	if stepErr != nil {
		glog.Warningf("device: tick skipped: %v", stepErr)
	}
}

// buildSnapshot materializes a kernels.Snapshot from the current graph
// using the driver's arena, reporting whether node or edge counts
// changed since the previous tick.
func (d *Driver) buildSnapshot(g *model.Graph, params kernels.Params) (*kernels.Snapshot, bool, error) {
	n := len(g.Nodes)
	topologyChanged := n != d.lastNodeCount || len(g.Edges) != d.lastEdgeCount
	d.lastNodeCount, d.lastEdgeCount = n, len(g.Edges)

	d.arena.Reset(n)
	nodes := d.arena.Nodes()
	for i, node := range g.Nodes {
		nodes[i] = kernels.NodeState{
			Position: node.Physics.Position,
			Velocity: node.Physics.Velocity,
			Mass:     node.Physics.Mass,
			Active:   node.Physics.Active(),
		}
	}

	indexOf := make(map[string]int, n)
	for i, node := range g.Nodes {
		indexOf[node.StringID] = i
	}
	adjacency := d.arena.Adjacency()
	for _, e := range g.Edges {
		si, ok1 := indexOf[e.Source]
		ti, ok2 := indexOf[e.Target]
		if !ok1 || !ok2 {
			return nil, topologyChanged, errs.NewTopologyError("edge %q-%q references missing node", e.Source, e.Target)
		}
		adjacency[si] = append(adjacency[si], kernels.Neighbor{Index: ti, Weight: e.Weight})
		adjacency[ti] = append(adjacency[ti], kernels.Neighbor{Index: si, Weight: e.Weight})
	}

	return &kernels.Snapshot{Nodes: nodes, Adjacency: adjacency, Params: params}, topologyChanged, nil
}
