package census

import (
	"math"
	"math/rand/v2"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// MeanOptions configures Mean.
type MeanOptions struct {
	// Pareto draws the last bin's values from a Pareto tail anchored at
	// that bin's lower bound instead of a uniform spread. Appropriate for
	// heavy-tailed measures like income.
	Pareto bool

	// Simulations is the realization count; DefaultSimulations when zero.
	Simulations int

	// Rand supplies the randomness. Required.
	Rand *rand.Rand
}

// Mean estimates the arithmetic mean of a binned dataset by simulation: in
// each realization the bin counts are perturbed by their margins, synthetic
// unit values are drawn inside every bin, and the realization's mean is
// recorded. The Bureau publishes no closed form for this, so the reported
// margin of error is the spread of the simulated outcomes converted to the
// 90% level.
//
// Every bin needs finite bounds, except the last bin's upper bound, which
// may be open when Pareto is set.
func Mean(bins []Bin, opts MeanOptions) (Result, error) {
	if _, err := validateBins(bins); err != nil {
		return Result{}, eris.Wrap(err, "mean")
	}
	if opts.Rand == nil {
		return Result{}, eris.Wrap(ErrConfiguration, "mean: a random source is required")
	}
	simulations := opts.Simulations
	if simulations <= 0 {
		simulations = DefaultSimulations
	}

	last := len(bins) - 1
	for i, b := range bins {
		if math.IsNaN(b.Min) {
			return Result{}, eris.Wrapf(ErrInvalidInput, "mean: bin %d needs a lower bound", i)
		}
		if math.IsNaN(b.Max) && !(opts.Pareto && i == last) {
			return Result{}, eris.Wrapf(ErrInvalidInput, "mean: bin %d needs an upper bound", i)
		}
	}

	var alpha float64
	if opts.Pareto {
		var err error
		alpha, err = paretoShape(bins)
		if err != nil {
			return Result{}, eris.Wrap(err, "mean")
		}
	}

	results := make([]float64, 0, simulations)
	excluded := 0

	for s := 0; s < simulations; s++ {
		var sum, total float64
		for i, b := range bins {
			nn := perturbCount(opts.Rand, b)
			total += nn
			if opts.Pareto && i == last {
				sum += drawParetoSum(opts.Rand, b.Min, alpha, int(nn))
			} else {
				sum += drawUniformSum(opts.Rand, b.Min, b.Max, int(nn))
			}
		}
		if total <= 0 {
			excluded++
			continue
		}
		results = append(results, sum/total)
	}

	if len(results) == 0 {
		return Result{}, eris.Wrapf(ErrInvalidInput,
			"mean: all %d realizations had zero total count", simulations)
	}

	mean, sd := summarize(results)
	moe := SEToMOE(sd)

	zap.L().Debug("simulated mean",
		zap.Int("simulations", simulations),
		zap.Int("excluded", excluded),
		zap.Bool("pareto", opts.Pareto),
		zap.Float64("mean", mean),
		zap.Float64("moe", moe),
	)

	return Result{Value: mean, MOE: moe}, nil
}

// paretoShape fits the tail shape parameter from the counts and lower
// bounds of the last two bins:
// alpha = (ln(n_{k-1} + n_k) - ln(n_k)) / (ln(L_k) - ln(L_{k-1})).
func paretoShape(bins []Bin) (float64, error) {
	if len(bins) < 2 {
		return 0, eris.Wrap(ErrInvalidInput, "pareto tail needs at least two bins")
	}
	top, below := bins[len(bins)-1], bins[len(bins)-2]
	if top.Min <= 0 || below.Min <= 0 || top.Min == below.Min {
		return 0, eris.Wrapf(ErrInvalidInput,
			"pareto tail needs distinct positive lower bounds, got %v and %v", below.Min, top.Min)
	}
	if top.N <= 0 || below.N <= 0 {
		return 0, eris.Wrap(ErrInvalidInput, "pareto tail needs positive counts in the last two bins")
	}
	return (math.Log(below.N+top.N) - math.Log(top.N)) / (math.Log(top.Min) - math.Log(below.Min)), nil
}

// drawUniformSum sums n draws spread uniformly over [min, max].
func drawUniformSum(rng *rand.Rand, min, max float64, n int) float64 {
	var sum float64
	for i := 0; i < n; i++ {
		sum += min + rng.Float64()*(max-min)
	}
	return sum
}

// drawParetoSum sums n inverse-CDF draws from a Pareto distribution with
// scale xm and shape alpha: xm * (1-U)^(-1/alpha).
func drawParetoSum(rng *rand.Rand, xm, alpha float64, n int) float64 {
	var sum float64
	for i := 0; i < n; i++ {
		sum += xm * math.Pow(1-rng.Float64(), -1/alpha)
	}
	return sum
}
