package session

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeadbandFirstSeenAlwaysQualifies(t *testing.T) {
	t.Parallel()
	d := newDeadband(DefaultPositionDeadband, DefaultVelocityDeadband)
	require.True(t, d.qualifies(1, [3]float32{0, 0, 0}, [3]float32{0, 0, 0}))
}

func TestDeadbandSuppressesInsignificantChange(t *testing.T) {
	t.Parallel()
	d := newDeadband(DefaultPositionDeadband, DefaultVelocityDeadband)
	d.commit(1, [3]float32{0, 0, 0}, [3]float32{0, 0, 0})

	require.False(t, d.qualifies(1, [3]float32{0.0001, 0, 0}, [3]float32{0, 0, 0}))
}

func TestDeadbandQualifiesOnPositionThreshold(t *testing.T) {
	t.Parallel()
	d := newDeadband(DefaultPositionDeadband, DefaultVelocityDeadband)
	d.commit(1, [3]float32{0, 0, 0}, [3]float32{0, 0, 0})

	require.True(t, d.qualifies(1, [3]float32{1, 0, 0}, [3]float32{0, 0, 0}))
}

func TestDeadbandQualifiesOnVelocityThreshold(t *testing.T) {
	t.Parallel()
	d := newDeadband(DefaultPositionDeadband, DefaultVelocityDeadband)
	d.commit(1, [3]float32{0, 0, 0}, [3]float32{0, 0, 0})

	require.True(t, d.qualifies(1, [3]float32{0, 0, 0}, [3]float32{1, 0, 0}))
}

func TestDeadbandCommitUpdatesBothMapsInLockstep(t *testing.T) {
	t.Parallel()
	d := newDeadband(DefaultPositionDeadband, DefaultVelocityDeadband)
	d.commit(1, [3]float32{1, 2, 3}, [3]float32{4, 5, 6})

	require.Equal(t, [3]float32{1, 2, 3}, d.lastPosition[1])
	require.Equal(t, [3]float32{4, 5, 6}, d.lastVelocity[1])
}
