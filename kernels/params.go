// Package kernels implements the force-directed layout step: the
// per-node force accumulation and semi-implicit Euler integration run
// once per physics tick. StepNode computes one node's update;
// StepSerial runs it over every node and is the pure-Go reference
// implementation. device.WorkerPoolBackend parallelizes StepNode
// across a worker pool, device.SerialBackend runs it inline as the
// host fallback; both call the same per-node function so they stay
// numerically equivalent up to float summation order.
package kernels

// Params is the replaceable-between-ticks physics parameter block.
type Params struct {
	IterationsPerTick    int
	SpringStrength       float32
	Repulsion            float32
	Damping              float32
	MaxRepulsionDistance float32
	ViewportBounds       float32
	MassScale            float32
	BoundaryDamping      float32
	EnableBounds         bool
	// HardClampCoordinate bounds every axis of a node's position after
	// integration, independent of EnableBounds: the final safety net
	// against runaway positions, applied on every tick.
	HardClampCoordinate float32
	TimeStep            float32
	Enabled             bool
}

// DefaultParams mirrors the original's tuned defaults for a graph of a
// few hundred nodes at 60 Hz.
func DefaultParams() Params {
	return Params{
		IterationsPerTick:    1,
		SpringStrength:       0.5,
		Repulsion:            50.0,
		Damping:              0.9,
		MaxRepulsionDistance: 50.0,
		ViewportBounds:       100.0,
		MassScale:            1.0,
		BoundaryDamping:      0.5,
		EnableBounds:         true,
		HardClampCoordinate:  100.0,
		TimeStep:             1.0 / 60.0,
		Enabled:              true,
	}
}

const forceEpsilon float32 = 1e-4
