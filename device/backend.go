// Package device provides the compute backends that run one physics
// step over a kernels.Snapshot: WorkerPoolBackend, which parallelizes
// kernels.StepNode across a worker pool via errgroup, and
// SerialBackend, the host fallback that runs kernels.StepNode over
// every node slot inline. Both implement Backend and are interchangeable from the
// driver's point of view.
package device

import (
	"context"

	"github.com/sbl8/forcegraph/kernels"
)

// Backend runs one physics step over snap, writing results into out.
// out must be the same length as snap.Nodes. Implementations must not
// mutate snap.
type Backend interface {
	Step(ctx context.Context, snap *kernels.Snapshot, out []kernels.NodeState) error
	Close() error
}
