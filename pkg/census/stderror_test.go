package census

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMOESERoundTrip(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 100.0/1.645, MOEToSE(100), 1e-12)
	assert.InDelta(t, 164.5, SEToMOE(100), 1e-12)
	assert.InDelta(t, 123.456, SEToMOE(MOEToSE(123.456)), 1e-12)
}

func TestTotalSE_DesignFactor(t *testing.T) {
	t.Parallel()

	// D * sqrt((99/N) * 50^2) / 100 with D=1.5, N=2068.
	se, err := totalSE(2068, 1.5, 0)
	require.NoError(t, err)
	assert.InDelta(t, 1.5*math.Sqrt((99.0/2068)*2500)/100, se, 1e-15)
}

func TestTotalSE_SamplingPercentage(t *testing.T) {
	t.Parallel()

	se, err := totalSE(5000, 0, 2.5)
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt(((100-2.5)/(5000*2.5))*2500)/100, se, 1e-15)
}

func TestTotalSE_PathsAgreeAtUnity(t *testing.T) {
	t.Parallel()

	// A design factor of 1 and a 1% sampling fraction reduce to the same
	// formula.
	fromFactor, err := totalSE(2068, 1, 0)
	require.NoError(t, err)
	fromPct, err := totalSE(2068, 0, 1)
	require.NoError(t, err)
	assert.InDelta(t, fromFactor, fromPct, 1e-15)
}

func TestTotalSE_MutuallyExclusive(t *testing.T) {
	t.Parallel()

	_, err := totalSE(1000, 1.5, 2.5)
	require.ErrorIs(t, err, ErrConfiguration)

	_, err = totalSE(1000, 0, 0)
	require.ErrorIs(t, err, ErrConfiguration)
}

func TestTotalSE_BadInputs(t *testing.T) {
	t.Parallel()

	_, err := totalSE(0, 1.5, 0)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = totalSE(1000, 0, 150)
	require.ErrorIs(t, err, ErrInvalidInput)
}
