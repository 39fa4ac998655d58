package census

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// householdIncome is a 2013 ACS 5-year household income distribution for a
// single geography.
func householdIncome() []Bin {
	rows := []struct{ min, max, n float64 }{
		{2499, 9999, 186},
		{10000, 14999, 78},
		{15000, 19999, 98},
		{20000, 24999, 287},
		{25000, 29999, 142},
		{30000, 34999, 90},
		{35000, 39999, 107},
		{40000, 44999, 104},
		{45000, 49999, 178},
		{50000, 59999, 106},
		{60000, 74999, 177},
		{75000, 99999, 262},
		{100000, 124999, 77},
		{125000, 149999, 100},
		{150000, 199999, 58},
		{200000, 250001, 18},
	}
	bins := make([]Bin, len(rows))
	for i, r := range rows {
		bins[i] = Bin{Min: r.min, Max: r.max, N: r.n, MOE: math.NaN()}
	}
	return bins
}

func TestMedian_DesignFactor(t *testing.T) {
	t.Parallel()

	got, err := Median(householdIncome(), MedianOptions{DesignFactor: 1.5})
	require.NoError(t, err)
	assert.InDelta(t, 42211.096153846156, got.Value, 1e-9)
	assert.InDelta(t, 27260.315546093672, got.MOE, 1e-8)
}

func TestMedian_NoDesignInput(t *testing.T) {
	t.Parallel()

	got, err := Median(householdIncome(), MedianOptions{})
	require.NoError(t, err)
	assert.InDelta(t, 42211.096153846156, got.Value, 1e-9)
	assert.False(t, got.HasMOE())
}

func TestMedian_SamplingPercentage(t *testing.T) {
	t.Parallel()

	got, err := Median(householdIncome(), MedianOptions{SamplingPercentage: 2.5})
	require.NoError(t, err)
	assert.InDelta(t, 42211.096153846156, got.Value, 1e-9)
	assert.True(t, got.HasMOE())
	assert.Greater(t, got.MOE, 0.0)
}

func TestMedian_SamplingPercentageOneMatchesUnitDesignFactor(t *testing.T) {
	t.Parallel()

	fromFactor, err := Median(householdIncome(), MedianOptions{DesignFactor: 1})
	require.NoError(t, err)
	fromPct, err := Median(householdIncome(), MedianOptions{SamplingPercentage: 1})
	require.NoError(t, err)
	assert.InDelta(t, fromFactor.MOE, fromPct.MOE, 1e-9)
}

func TestMedian_EvenTotalOnBoundary(t *testing.T) {
	t.Parallel()

	bins := []Bin{
		{Min: 0, Max: 10, N: 5, MOE: math.NaN()},
		{Min: 10, Max: 20, N: 5, MOE: math.NaN()},
	}
	got, err := Median(bins, MedianOptions{})
	require.NoError(t, err)
	assert.Equal(t, 10.0, got.Value)
}

func TestMedian_JamValueHigh(t *testing.T) {
	t.Parallel()

	bins := []Bin{
		{Min: 0, Max: 9999, N: 10, MOE: math.NaN()},
		{Min: 10000, Max: math.NaN(), N: 90, MOE: math.NaN()},
	}

	_, err := Median(bins, MedianOptions{})
	require.ErrorIs(t, err, ErrUndefinedMedian)

	got, err := Median(bins, MedianOptions{JamValues: &JamValues{Low: 2499, High: 250001}})
	require.NoError(t, err)
	assert.Equal(t, 250001.0, got.Value)
	assert.False(t, got.HasMOE())
}

func TestMedian_JamValueLow(t *testing.T) {
	t.Parallel()

	bins := []Bin{
		{Min: math.NaN(), Max: 9999, N: 90, MOE: math.NaN()},
		{Min: 10000, Max: 19999, N: 10, MOE: math.NaN()},
	}

	_, err := Median(bins, MedianOptions{})
	require.ErrorIs(t, err, ErrUndefinedMedian)

	got, err := Median(bins, MedianOptions{JamValues: &JamValues{Low: 2499, High: 250001}})
	require.NoError(t, err)
	assert.Equal(t, 2499.0, got.Value)
}

func TestMedian_InvalidBins(t *testing.T) {
	t.Parallel()

	_, err := Median(nil, MedianOptions{})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = Median([]Bin{{Min: 0, Max: 10, N: -3, MOE: math.NaN()}}, MedianOptions{})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func binsWithMOE() []Bin {
	return []Bin{
		{Min: 0, Max: 9999, N: 120, MOE: 9},
		{Min: 10000, Max: 19999, N: 80, MOE: 8},
		{Min: 20000, Max: 29999, N: 95, MOE: 7},
		{Min: 30000, Max: 49999, N: 60, MOE: 6},
	}
}

func TestMedian_Simulated(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(42, 0))
	got, err := Median(binsWithMOE(), MedianOptions{Simulations: 200, Rand: rng})
	require.NoError(t, err)

	// The deterministic median of the unperturbed table.
	det, err := Median(binsWithMOE(), MedianOptions{})
	require.NoError(t, err)

	assert.InDelta(t, det.Value, got.Value, 2500)
	assert.True(t, got.HasMOE())
	assert.Greater(t, got.MOE, 0.0)
}

func TestMedian_SimulatedDeterministicWithSeed(t *testing.T) {
	t.Parallel()

	run := func() Result {
		rng := rand.New(rand.NewPCG(7, 11))
		got, err := Median(binsWithMOE(), MedianOptions{Simulations: 100, Rand: rng})
		require.NoError(t, err)
		return got
	}

	first := run()
	second := run()
	assert.Equal(t, first, second)
}

func TestMedian_SimulatedAllOpenLandings(t *testing.T) {
	t.Parallel()

	// The midpoint always lands in the open-ended last bin, so every
	// realization is excluded and no jam value is consulted.
	bins := []Bin{
		{Min: 0, Max: 9999, N: 5, MOE: 1},
		{Min: 10000, Max: math.NaN(), N: 95, MOE: 1},
	}
	rng := rand.New(rand.NewPCG(1, 2))
	_, err := Median(bins, MedianOptions{Simulations: 50, Rand: rng})
	require.ErrorIs(t, err, ErrUndefinedMedian)
}

func TestMedian_SimulationOptionConflicts(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(1, 2))

	_, err := Median(binsWithMOE(), MedianOptions{Simulations: 10, Rand: rng, DesignFactor: 1.5})
	require.ErrorIs(t, err, ErrConfiguration)

	_, err = Median(binsWithMOE(), MedianOptions{Simulations: 10, Rand: rng, JamValues: &JamValues{}})
	require.ErrorIs(t, err, ErrConfiguration)

	_, err = Median(binsWithMOE(), MedianOptions{Simulations: 10})
	require.ErrorIs(t, err, ErrConfiguration)
}

func TestMedian_ConfidenceBandOutsideDataRange(t *testing.T) {
	t.Parallel()

	// With N=10 and a design factor of 2 the total's standard error
	// swamps the cumulative scale (p_lower < 0), so neither band edge
	// falls within a data range.
	bins := []Bin{
		{Min: 0, Max: 10, N: 5, MOE: math.NaN()},
		{Min: 10, Max: 20, N: 5, MOE: math.NaN()},
	}
	_, err := Median(bins, MedianOptions{DesignFactor: 2})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestMedian_SimulationDefaultCount(t *testing.T) {
	t.Parallel()

	// A random source alone requests the simulation path with the
	// default realization count.
	run := func(simulations int) Result {
		rng := rand.New(rand.NewPCG(13, 17))
		got, err := Median(binsWithMOE(), MedianOptions{Simulations: simulations, Rand: rng})
		require.NoError(t, err)
		return got
	}

	defaulted := run(0)
	explicit := run(DefaultSimulations)
	assert.Equal(t, explicit, defaulted)
	assert.True(t, defaulted.HasMOE())
}

func TestMedian_AnalyticKnobsMutuallyExclusive(t *testing.T) {
	t.Parallel()

	_, err := Median(householdIncome(), MedianOptions{DesignFactor: 1.5, SamplingPercentage: 2.5})
	require.ErrorIs(t, err, ErrConfiguration)
}
