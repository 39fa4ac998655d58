package census

import (
	"math"
	"math/rand/v2"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// DefaultSimulations is the realization count used by the Monte Carlo
// estimators when the caller does not set one.
const DefaultSimulations = 50

// perturbCount draws a synthetic count for a bin by sampling a normal
// adjustment scaled to the count's standard error, rounded and clipped to
// stay non-negative. Bins without a count margin are exact.
func perturbCount(rng *rand.Rand, b Bin) float64 {
	if !b.HasMOE() || b.MOE == 0 {
		return b.N
	}
	nn := math.Round(b.N + rng.NormFloat64()*MOEToSE(b.MOE))
	return math.Max(0, nn)
}

// summarize returns the mean and sample standard deviation of the
// per-realization statistics. The accumulation is order-independent, so
// the realization ordering never affects the aggregate. Fewer than two
// values yield a NaN deviation.
func summarize(values []float64) (mean, sd float64) {
	n := float64(len(values))
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean = sum / n

	if len(values) < 2 {
		return mean, math.NaN()
	}
	var sumSq float64
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}
	return mean, math.Sqrt(sumSq / (n - 1))
}

// simulateMedian estimates a binned median and its margin by repeatedly
// perturbing the bin counts and re-interpolating. Realizations whose
// midpoint lands in an open-ended or empty bin are excluded; jam values
// are never substituted here. Any exclusion degrades the margin to NaN
// because the surviving realizations understate the spread.
func simulateMedian(bins []Bin, simulations int, rng *rand.Rand) (Result, error) {
	results := make([]float64, 0, simulations)
	excluded := 0
	counts := make([]float64, len(bins))

	for s := 0; s < simulations; s++ {
		for i, b := range bins {
			counts[i] = perturbCount(rng, b)
		}

		idx := locateMidpoint(counts)
		if idx < 0 {
			excluded++
			continue
		}
		v := interpolate(bins, counts, idx)
		if math.IsNaN(v) {
			excluded++
			continue
		}
		results = append(results, v)
	}

	if len(results) == 0 {
		return Result{}, eris.Wrapf(ErrUndefinedMedian,
			"simulated median: all %d realizations landed in open-ended or empty bins", simulations)
	}

	mean, sd := summarize(results)
	moe := SEToMOE(sd)
	if excluded > 0 || math.IsNaN(moe) {
		moe = math.NaN()
	}

	zap.L().Debug("simulated median",
		zap.Int("simulations", simulations),
		zap.Int("excluded", excluded),
		zap.Float64("median", mean),
		zap.Float64("moe", moe),
	)

	return Result{Value: mean, MOE: moe}, nil
}
