// Package wire implements the fixed-width binary frame format carried
// over a streaming session: 26 bytes per node, little-endian
// throughout, node id followed by position then velocity. Mass, flags
// and padding never cross the wire — those are server-only fields of
// model.PhysicsRecord.
package wire

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/sbl8/forcegraph/errs"
)

// RecordSize is the fixed per-node record length in bytes.
const RecordSize = 26

// MaxInboundRecords bounds a single client→server frame: more than
// this many records is a protocol violation (spec §4.2).
const MaxInboundRecords = 2

// Record is one decoded (numeric id, position, velocity) triple.
type Record struct {
	NumericID uint16
	Position  [3]float32
	Velocity  [3]float32
}

// Encode concatenates records into a frame, preserving input order.
func Encode(records []Record) []byte {
	buf := make([]byte, 0, len(records)*RecordSize)
	var rec [RecordSize]byte
	for _, r := range records {
		putRecord(&rec, r)
		buf = append(buf, rec[:]...)
	}
	return buf
}

func putRecord(dst *[RecordSize]byte, r Record) {
	binary.LittleEndian.PutUint16(dst[0:2], r.NumericID)
	for i, v := range r.Position {
		binary.LittleEndian.PutUint32(dst[2+4*i:6+4*i], math.Float32bits(v))
	}
	for i, v := range r.Velocity {
		binary.LittleEndian.PutUint32(dst[14+4*i:18+4*i], math.Float32bits(v))
	}
}

// Decode parses a frame into its records. The frame length must be an
// exact multiple of RecordSize; any other length is a *errs.Error of
// kind ProtocolError. An empty frame decodes to an empty, non-nil
// slice.
func Decode(frame []byte) ([]Record, error) {
	if len(frame)%RecordSize != 0 {
		return nil, errs.NewProtocolError("frame length %d is not a multiple of %d", len(frame), RecordSize)
	}
	n := len(frame) / RecordSize
	records := make([]Record, n)
	r := bytes.NewReader(frame)
	for i := 0; i < n; i++ {
		var raw [RecordSize]byte
		if _, err := r.Read(raw[:]); err != nil {
			return nil, errs.NewProtocolError("short frame at record %d: %v", i, err)
		}
		records[i] = Record{
			NumericID: binary.LittleEndian.Uint16(raw[0:2]),
			Position: [3]float32{
				math.Float32frombits(binary.LittleEndian.Uint32(raw[2:6])),
				math.Float32frombits(binary.LittleEndian.Uint32(raw[6:10])),
				math.Float32frombits(binary.LittleEndian.Uint32(raw[10:14])),
			},
			Velocity: [3]float32{
				math.Float32frombits(binary.LittleEndian.Uint32(raw[14:18])),
				math.Float32frombits(binary.LittleEndian.Uint32(raw[18:22])),
				math.Float32frombits(binary.LittleEndian.Uint32(raw[22:26])),
			},
		}
	}
	return records, nil
}

// DecodeInbound decodes a client→server frame and additionally
// enforces the MaxInboundRecords cap (spec §4.2): a frame with more
// records than the cap must not mutate any state and is reported as a
// protocol error.
func DecodeInbound(frame []byte) ([]Record, error) {
	records, err := Decode(frame)
	if err != nil {
		return nil, err
	}
	if len(records) > MaxInboundRecords {
		return nil, errs.NewProtocolError("inbound frame carries %d records, max %d", len(records), MaxInboundRecords)
	}
	return records, nil
}
