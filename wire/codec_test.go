package wire

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sbl8/forcegraph/errs"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	t.Parallel()
	records := []Record{
		{NumericID: 0, Position: [3]float32{1, 2, 3}, Velocity: [3]float32{-1, -2, -3}},
		{NumericID: 65535, Position: [3]float32{0.5, -0.25, 100}, Velocity: [3]float32{0, 0, 0}},
	}

	frame := Encode(records)
	require.Len(t, frame, len(records)*RecordSize)

	got, err := Decode(frame)
	require.NoError(t, err)
	require.Equal(t, records, got)
}

func TestDecodeFrameLengthBoundary(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		length  int
		wantErr bool
	}{
		{name: "empty", length: 0, wantErr: false},
		{name: "one record", length: RecordSize, wantErr: false},
		{name: "three records", length: 3 * RecordSize, wantErr: false},
		{name: "not a multiple", length: RecordSize + 1, wantErr: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			records, err := Decode(make([]byte, tt.length))
			if tt.wantErr {
				require.Error(t, err)
				require.True(t, errs.IsProtocolError(err))
				return
			}
			require.NoError(t, err)
			require.Len(t, records, tt.length/RecordSize)
		})
	}
}

func TestDecodeInboundRejectsOversizeFrame(t *testing.T) {
	t.Parallel()
	three := make([]Record, MaxInboundRecords+1)
	frame := Encode(three)

	_, err := DecodeInbound(frame)
	require.Error(t, err)
	require.True(t, errs.IsProtocolError(err))
}

func TestDecodeInboundAcceptsLimit(t *testing.T) {
	t.Parallel()
	two := make([]Record, MaxInboundRecords)
	frame := Encode(two)

	got, err := DecodeInbound(frame)
	require.NoError(t, err)
	require.Len(t, got, MaxInboundRecords)
}

func TestEncodePreservesOrder(t *testing.T) {
	t.Parallel()
	records := []Record{
		{NumericID: 3},
		{NumericID: 1},
		{NumericID: 2},
	}
	got, err := Decode(Encode(records))
	require.NoError(t, err)
	require.Equal(t, []uint16{3, 1, 2}, []uint16{got[0].NumericID, got[1].NumericID, got[2].NumericID})
}
