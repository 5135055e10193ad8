package model

import (
	"math"
	"math/rand"
)

const (
	seedInitialRadius = 0.5
	seedJitterLow      = 0.9
	seedJitterSpan     = 0.2
)

var goldenRatio = (1.0 + math.Sqrt(5.0)) / 2.0

// SeedPositions assigns a Fibonacci-sphere initial position to every
// node whose PhysicsRecord.Position is still the zero vector, leaving
// already-positioned nodes (carried over from a Rebuild) untouched.
// The distribution spreads points near-uniformly over a sphere of
// radius seedInitialRadius, with a small random jitter so coincident
// nodes don't start on exactly the same point.
func SeedPositions(g *Graph, rng *rand.Rand) {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	n := float64(len(g.Nodes))
	if n == 0 {
		return
	}
	for i, node := range g.Nodes {
		if node.Physics.Position != [3]float32{} {
			continue
		}
		fi := float64(i)
		theta := 2.0 * math.Pi * fi / goldenRatio
		phi := math.Acos(1.0 - 2.0*(fi+0.5)/n)
		r := seedInitialRadius * (seedJitterLow + rng.Float64()*seedJitterSpan)

		sinPhi, cosPhi := math.Sincos(phi)
		sinTheta, cosTheta := math.Sincos(theta)

		node.Physics.Position = [3]float32{
			float32(r * sinPhi * cosTheta),
			float32(r * sinPhi * sinTheta),
			float32(r * cosPhi),
		}
		node.Physics.Velocity = [3]float32{}
	}
}
