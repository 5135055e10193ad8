package device

import (
	"context"

	"github.com/sbl8/forcegraph/kernels"
)

// SerialBackend runs the physics step on the host in a single
// goroutine. It is the fallback path the Driver switches to after a
// step on its primary backend fails, and must
// produce numerically equivalent results to WorkerPoolBackend up to
// float summation order.
type SerialBackend struct{}

func (SerialBackend) Step(ctx context.Context, snap *kernels.Snapshot, out []kernels.NodeState) error {
	for i := range snap.Nodes {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		out[i] = kernels.StepNode(snap, i)
	}
	return nil
}

func (SerialBackend) Close() error { return nil }
