package device

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/sbl8/forcegraph/kernels"
)

// WorkerPoolBackend parallelizes the physics step across a fixed pool
// of goroutines, one work item per contiguous range of node slots.
// Every goroutine reads the same, unmutated kernels.Snapshot — this is
// the data-parallel compute device the driver prefers when available.
type WorkerPoolBackend struct {
	workers int
}

// NewWorkerPoolBackend builds a WorkerPoolBackend with workers
// goroutines. A non-positive value defaults to GOMAXPROCS.
func NewWorkerPoolBackend(workers int) *WorkerPoolBackend {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &WorkerPoolBackend{workers: workers}
}

func (b *WorkerPoolBackend) Step(ctx context.Context, snap *kernels.Snapshot, out []kernels.NodeState) error {
	n := len(snap.Nodes)
	if n == 0 {
		return nil
	}
	workers := b.workers
	if workers > n {
		workers = n
	}
	chunk := (n + workers - 1) / workers

	group, gctx := errgroup.WithContext(ctx)
	for start := 0; start < n; start += chunk {
		start := start
		end := start + chunk
		if end > n {
			end = n
		}
		group.Go(func() error {
			for i := start; i < end; i++ {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				out[i] = kernels.StepNode(snap, i)
			}
			return nil
		})
	}
	return group.Wait()
}

func (b *WorkerPoolBackend) Close() error { return nil }
