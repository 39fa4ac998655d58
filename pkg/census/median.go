package census

import (
	"math"
	"math/rand/v2"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Result pairs a derived point estimate with its margin of error. MOE is
// NaN when no margin could be derived for the estimate.
type Result struct {
	Value float64 `json:"value"`
	MOE   float64 `json:"moe"`
}

// HasMOE reports whether a margin of error was derived.
func (r Result) HasMOE() bool {
	return !math.IsNaN(r.MOE)
}

// MedianOptions configures Median. Exactly one of DesignFactor or
// SamplingPercentage may be set to derive an analytic margin of error;
// with neither, the margin is NaN. Setting Rand or Simulations switches
// to the Monte Carlo margin instead and is mutually exclusive with the
// analytic knobs and with JamValues.
type MedianOptions struct {
	// DesignFactor tailors the standard error to a complex sample design
	// (PUMS). Zero means unset.
	DesignFactor float64

	// SamplingPercentage is the percent of the population covered by the
	// survey sample (e.g. 2.5 for one-year ACS). Zero means unset.
	SamplingPercentage float64

	// JamValues substitute for open first/last bin bounds when the median
	// lands there. Deterministic path only.
	JamValues *JamValues

	// Simulations is the Monte Carlo realization count;
	// DefaultSimulations when zero and Rand is set. Bin count margins,
	// where present, drive the per-realization perturbation.
	Simulations int

	// Rand supplies the randomness for the Monte Carlo path and enables
	// it when set; reproducibility is the caller's seed.
	Rand *rand.Rand
}

// Median estimates the median of a binned dataset by linear interpolation
// within the bin containing the cumulative-count midpoint, following the
// Bureau's published method. See MedianOptions for how the margin of error
// is derived.
func Median(bins []Bin, opts MedianOptions) (Result, error) {
	total, err := validateBins(bins)
	if err != nil {
		return Result{}, eris.Wrap(err, "median")
	}

	if opts.Simulations > 0 || opts.Rand != nil {
		if opts.DesignFactor > 0 || opts.SamplingPercentage > 0 {
			return Result{}, eris.Wrap(ErrConfiguration,
				"median: simulations exclude the analytic design factor and sampling percentage knobs")
		}
		if opts.JamValues != nil {
			return Result{}, eris.Wrap(ErrConfiguration,
				"median: jam values do not apply to the simulation path")
		}
		if opts.Rand == nil {
			return Result{}, eris.Wrap(ErrConfiguration, "median: simulations need a random source")
		}
		simulations := opts.Simulations
		if simulations <= 0 {
			simulations = DefaultSimulations
		}
		return simulateMedian(bins, simulations, opts.Rand)
	}

	counts := publishedCounts(bins)
	idx := locateMidpoint(counts)
	bin := bins[idx]

	var value float64
	switch {
	case math.IsNaN(bin.Max):
		if opts.JamValues == nil {
			return Result{}, eris.Wrap(ErrUndefinedMedian,
				"median: midpoint falls in the open-ended last bin and no jam value was supplied")
		}
		value = opts.JamValues.High
	case math.IsNaN(bin.Min):
		if opts.JamValues == nil {
			return Result{}, eris.Wrap(ErrUndefinedMedian,
				"median: midpoint falls in the open-ended first bin and no jam value was supplied")
		}
		value = opts.JamValues.Low
	case counts[idx] == 0:
		return Result{}, eris.Wrapf(ErrUndefinedMedian, "median: midpoint bin %d is empty", idx)
	default:
		value = interpolate(bins, counts, idx)
	}

	if opts.DesignFactor == 0 && opts.SamplingPercentage == 0 {
		zap.L().Debug("median: no design input, skipping margin of error",
			zap.Float64("median", value),
		)
		return Result{Value: value, MOE: math.NaN()}, nil
	}

	moe, err := medianMOE(bins, total, opts.DesignFactor, opts.SamplingPercentage)
	if err != nil {
		return Result{}, eris.Wrap(err, "median")
	}

	return Result{Value: value, MOE: moe}, nil
}

// medianMOE derives the analytic margin of error for a binned median: the
// standard error of the total places a confidence band around the 0.5
// cumulative proportion, the band's edges are interpolated back onto the
// value scale, and half their spread converts to a margin at 90%.
func medianMOE(bins []Bin, total, designFactor, samplingPercentage float64) (float64, error) {
	se, err := totalSE(total, designFactor, samplingPercentage)
	if err != nil {
		return 0, err
	}

	lower, err := cumulativeBound(bins, total, 0.5-se)
	if err != nil {
		return 0, err
	}
	upper, err := cumulativeBound(bins, total, 0.5+se)
	if err != nil {
		return 0, err
	}

	moe := SEToMOE((upper - lower) / 2)
	if math.IsNaN(moe) || math.IsInf(moe, 0) {
		return math.NaN(), nil
	}
	return moe, nil
}

// cumulativeBound interpolates the value at cumulative proportion p across
// the binned distribution. Within the bin containing p the interpolation
// runs from the bin's lower bound to the next bin's lower bound, falling
// back to the bin's own upper bound for the last bin.
func cumulativeBound(bins []Bin, total, p float64) (float64, error) {
	counts := publishedCounts(bins)
	below, _ := cumulate(counts)
	pn := total * p

	for i, b := range bins {
		lo, hi := below[i], below[i]+counts[i]
		if pn < lo || pn > hi {
			continue
		}

		a1 := b.Min
		a2 := b.Max
		c1 := lo / total
		c2 := hi / total
		if i+1 < len(bins) {
			a2 = bins[i+1].Min
			c2 = below[i+1] / total
		}
		return ((p-c1)/(c2-c1))*(a2-a1) + a1, nil
	}

	return 0, eris.Wrapf(ErrInvalidInput,
		"cumulative point %v does not fall within a data range", pn)
}

func publishedCounts(bins []Bin) []float64 {
	counts := make([]float64, len(bins))
	for i, b := range bins {
		counts[i] = b.N
	}
	return counts
}
