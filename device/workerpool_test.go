package device

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sbl8/forcegraph/kernels"
)

func sampleSnapshot(n int) *kernels.Snapshot {
	nodes := make([]kernels.NodeState, n)
	adjacency := make([][]kernels.Neighbor, n)
	for i := range nodes {
		nodes[i] = kernels.NodeState{Position: [3]float32{float32(i), 0, 0}, Mass: 128, Active: true}
	}
	return &kernels.Snapshot{Nodes: nodes, Adjacency: adjacency, Params: kernels.DefaultParams()}
}

func TestWorkerPoolAndSerialBackendsAgree(t *testing.T) {
	t.Parallel()
	snap := sampleSnapshot(50)

	serialOut := make([]kernels.NodeState, 50)
	require.NoError(t, SerialBackend{}.Step(context.Background(), snap, serialOut))

	poolOut := make([]kernels.NodeState, 50)
	pool := NewWorkerPoolBackend(4)
	require.NoError(t, pool.Step(context.Background(), snap, poolOut))

	require.Equal(t, serialOut, poolOut)
}

func TestWorkerPoolBackendHandlesEmptySnapshot(t *testing.T) {
	t.Parallel()
	snap := &kernels.Snapshot{Params: kernels.DefaultParams()}
	pool := NewWorkerPoolBackend(4)
	require.NoError(t, pool.Step(context.Background(), snap, nil))
}
