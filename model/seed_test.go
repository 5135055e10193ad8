package model

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSeedPositionsSkipsAlreadyPositioned(t *testing.T) {
	t.Parallel()
	g, err := Build(sampleMetadata())
	require.NoError(t, err)

	existing := g.NodeByStringID("a")
	existing.Physics.Position = [3]float32{1, 2, 3}

	SeedPositions(g, rand.New(rand.NewSource(42)))

	require.Equal(t, [3]float32{1, 2, 3}, existing.Physics.Position)
	for _, n := range g.Nodes {
		if n.StringID == "a" {
			continue
		}
		require.NotEqual(t, [3]float32{}, n.Physics.Position)
	}
}

func TestSeedPositionsDeterministicWithSameSeed(t *testing.T) {
	t.Parallel()
	g1, _ := Build(sampleMetadata())
	g2, _ := Build(sampleMetadata())

	SeedPositions(g1, rand.New(rand.NewSource(7)))
	SeedPositions(g2, rand.New(rand.NewSource(7)))

	for i := range g1.Nodes {
		require.Equal(t, g1.Nodes[i].Physics.Position, g2.Nodes[i].Physics.Position)
	}
}
