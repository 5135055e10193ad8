package model

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sbl8/forcegraph/errs"
)

func sampleMetadata() MetadataStore {
	return MetadataStore{
		"a.md": {FileName: "a.md", FileSize: 100, References: map[string]int{"b.md": 2}},
		"b.md": {FileName: "b.md", FileSize: 200, References: map[string]int{"a.md": 1}},
		"c.md": {FileName: "c.md", FileSize: 50, References: map[string]int{}},
	}
}

func TestBuildDeterministicOrder(t *testing.T) {
	t.Parallel()
	g1, err := Build(sampleMetadata())
	require.NoError(t, err)
	g2, err := Build(sampleMetadata())
	require.NoError(t, err)

	require.Equal(t, len(g1.Nodes), len(g2.Nodes))
	for i := range g1.Nodes {
		require.Equal(t, g1.Nodes[i].StringID, g2.Nodes[i].StringID)
		require.Equal(t, g1.Nodes[i].NumericID, g2.Nodes[i].NumericID)
	}
}

func TestBuildEdgeWeightIsBidirectionalSum(t *testing.T) {
	t.Parallel()
	g, err := Build(sampleMetadata())
	require.NoError(t, err)
	require.Len(t, g.Edges, 1)
	require.Equal(t, float32(3), g.Edges[0].Weight) // 2 (a->b) + 1 (b->a)
}

func TestBuildRejectsSelfEdges(t *testing.T) {
	t.Parallel()
	md := MetadataStore{
		"a.md": {FileName: "a.md", References: map[string]int{"a.md": 5}},
	}
	g, err := Build(md)
	require.NoError(t, err)
	require.Empty(t, g.Edges)
}

func TestBuildDropsDanglingEdges(t *testing.T) {
	t.Parallel()
	md := MetadataStore{
		"a.md": {FileName: "a.md", References: map[string]int{"ghost.md": 1}},
	}
	g, err := Build(md)
	require.NoError(t, err)
	require.Empty(t, g.Edges)
}

func TestRebuildPreservesPositionsOfSurvivingNodes(t *testing.T) {
	t.Parallel()
	prev, err := Build(sampleMetadata())
	require.NoError(t, err)

	node := prev.NodeByStringID("a")
	require.NotNil(t, node)
	node.Physics.Position = [3]float32{7, 8, 9}
	node.Physics.Velocity = [3]float32{1, 1, 1}

	next, err := Rebuild(sampleMetadata(), prev)
	require.NoError(t, err)

	survived := next.NodeByStringID("a")
	require.NotNil(t, survived)
	require.Equal(t, [3]float32{7, 8, 9}, survived.Physics.Position)
	require.Equal(t, [3]float32{1, 1, 1}, survived.Physics.Velocity)
}

func TestBuildRejectsTooManyNodesForWireSpace(t *testing.T) {
	t.Parallel()
	md := make(MetadataStore, 0x10001)
	for i := 0; i <= 0x10000; i++ {
		name := "doc" + strconv.Itoa(i) + ".md"
		md[name] = &MetadataEntry{FileName: name}
	}
	_, err := Build(md)
	require.Error(t, err)
	require.True(t, errs.IsTopologyError(err))
}

func TestSnapshotIsIndependentCopy(t *testing.T) {
	t.Parallel()
	g, err := Build(sampleMetadata())
	require.NoError(t, err)

	snap := g.Snapshot()
	snap.NodeByStringID("a").Physics.Position = [3]float32{9, 9, 9}

	require.NotEqual(t, snap.NodeByStringID("a").Physics.Position, g.NodeByStringID("a").Physics.Position)
}

func TestValidateCatchesDuplicateNumericID(t *testing.T) {
	t.Parallel()
	g := &Graph{
		Nodes: []*Node{
			NewNode("x", 1),
			NewNode("y", 1),
		},
	}
	err := g.Validate()
	require.Error(t, err)
	require.True(t, errs.IsTopologyError(err))
}
