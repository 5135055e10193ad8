package model

import "math"

// PhysicsRecord is the fixed 28-byte in-memory physics payload for a
// node: position, velocity, mass, flags and two bytes of alignment
// padding. Mass and flags are server-only — wire frames never carry
// them (see wire.Record) and inbound edits must never touch them.
type PhysicsRecord struct {
	Position [3]float32
	Velocity [3]float32
	Mass     uint8
	Flags    uint8
	_        [2]byte // alignment padding, never sent on the wire
}

// Flag bits for PhysicsRecord.Flags.
const (
	FlagActive    uint8 = 1 << 0
	FlagConnected uint8 = 1 << 1
)

// Active reports whether FlagActive is set.
func (p PhysicsRecord) Active() bool { return p.Flags&FlagActive != 0 }

// Connected reports whether FlagConnected is set.
func (p PhysicsRecord) Connected() bool { return p.Flags&FlagConnected != 0 }

// SetActive sets or clears FlagActive.
func (p *PhysicsRecord) SetActive(v bool) { p.setFlag(FlagActive, v) }

// SetConnected sets or clears FlagConnected.
func (p *PhysicsRecord) SetConnected(v bool) { p.setFlag(FlagConnected, v) }

func (p *PhysicsRecord) setFlag(bit uint8, v bool) {
	if v {
		p.Flags |= bit
	} else {
		p.Flags &^= bit
	}
}

// These clamp bounds mirror the original's log-scale mass
// derivation (original_source/src/models/node.rs::set_file_size).
const (
	minMassByte uint8   = 1
	maxBaseMass float32 = 10.0
	minBaseMass float32 = 0.1
)

// MassFromFileSize derives the quantized 8-bit mass from a document's
// byte size on a log10 scale, clamped to keep very large or very small
// documents from producing degenerate forces.
func MassFromFileSize(size uint64) uint8 {
	base := float32(math.Log10(float64(size)+1)) / 4.0
	if base < minBaseMass {
		base = minBaseMass
	}
	if base > maxBaseMass {
		base = maxBaseMass
	}
	scaled := uint8(base * 25.5)
	if scaled < minMassByte {
		scaled = minMassByte
	}
	return scaled
}
