package kernels

// springRestLength is the natural spring length L0 from the force
// model. The parameter block has no slot for it — the original
// implementation this was ported from also hard-codes it rather than
// exposing it as a tunable — so it is a package constant.
const springRestLength float32 = 1.0

// NodeState is the per-node physics state the kernel reads and writes.
type NodeState struct {
	Position [3]float32
	Velocity [3]float32
	Mass     uint8
	Active   bool
}

// Neighbor is one spring connection out of a node, with its weight.
type Neighbor struct {
	Index  int
	Weight float32
}

// Snapshot is the read-only shared input to a single tick step: every
// node's current state, indexed by slot, and each node's incident
// edges. StepNode never mutates it, which is what lets callers run it
// concurrently across node slots against one shared snapshot — "one
// work item per node per step, shared read of all node positions".
type Snapshot struct {
	Nodes     []NodeState
	Adjacency [][]Neighbor
	Params    Params
}

// StepNode computes one semi-implicit Euler step for node slot i
// against snap and returns its updated state. Inactive nodes pass
// through unchanged.
func StepNode(snap *Snapshot, i int) NodeState {
	self := snap.Nodes[i]
	if !self.Active {
		return self
	}
	p := snap.Params

	var force [3]float32
	for j := range snap.Nodes {
		if j == i {
			continue
		}
		other := snap.Nodes[j]
		if !other.Active {
			continue
		}
		force = addVec(force, repulsionForce(self.Position, other.Position, p))
	}
	for _, nb := range snap.Adjacency[i] {
		force = addVec(force, springForce(self.Position, snap.Nodes[nb.Index].Position, nb.Weight, p))
	}

	massScalar := massScalarFromByte(self.Mass, p.MassScale)
	accel := scaleVec(force, 1.0/massScalar)

	vel := addVec(self.Velocity, scaleVec(accel, p.TimeStep))
	if p.EnableBounds {
		vel = applyBoundaryDamping(self.Position, vel, p)
	}
	vel = scaleVec(vel, p.Damping)

	pos := addVec(self.Position, scaleVec(vel, p.TimeStep))
	pos = clampHard(pos, p.HardClampCoordinate)

	return NodeState{Position: pos, Velocity: vel, Mass: self.Mass, Active: self.Active}
}

// StepSerial runs StepNode over every node slot in order and writes
// the results back into snap.Nodes in place. This is the host
// fallback path; it must stay numerically equivalent to a parallel
// caller that applies StepNode's results per slot, up to summation
// order over floats.
func StepSerial(snap *Snapshot) {
	updated := make([]NodeState, len(snap.Nodes))
	for i := range snap.Nodes {
		updated[i] = StepNode(snap, i)
	}
	copy(snap.Nodes, updated)
}

func repulsionForce(a, b [3]float32, p Params) [3]float32 {
	delta := subVec(a, b)
	distSq := dot(delta, delta)
	if p.MaxRepulsionDistance > 0 && distSq > p.MaxRepulsionDistance*p.MaxRepulsionDistance {
		return [3]float32{}
	}
	if distSq < forceEpsilon {
		distSq = forceEpsilon
	}
	magnitude := p.Repulsion / distSq
	return scaleVec(normalize(delta), magnitude)
}

func springForce(a, b [3]float32, weight float32, p Params) [3]float32 {
	delta := subVec(b, a)
	dist := magnitude(delta)
	magnitudeForce := p.SpringStrength * weight * (dist - springRestLength)
	return scaleVec(normalize(delta), magnitudeForce)
}

func applyBoundaryDamping(pos, vel [3]float32, p Params) [3]float32 {
	out := vel
	for axis := 0; axis < 3; axis++ {
		if pos[axis] > p.ViewportBounds || pos[axis] < -p.ViewportBounds {
			out[axis] *= p.BoundaryDamping
		}
	}
	return out
}

// clampHard applies the unconditional final safety net: every axis is
// bounded to ±limit regardless of EnableBounds. A non-positive limit
// disables the clamp.
func clampHard(pos [3]float32, limit float32) [3]float32 {
	if limit <= 0 {
		return pos
	}
	out := pos
	for axis := 0; axis < 3; axis++ {
		if out[axis] > limit {
			out[axis] = limit
		}
		if out[axis] < -limit {
			out[axis] = -limit
		}
	}
	return out
}

func massScalarFromByte(mass uint8, scale float32) float32 {
	base := float32(mass) / 25.5
	if base < forceEpsilon {
		base = forceEpsilon
	}
	return base * scale
}
