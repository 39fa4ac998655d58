package census

import (
	"math"

	"github.com/rotisserie/eris"
)

// zScore is the 90% confidence-level multiplier used throughout Bureau
// publications. Every margin of error in this package is SE * zScore.
const zScore = 1.645

// MOEToSE converts a published margin of error to a standard error.
func MOEToSE(moe float64) float64 {
	return moe / zScore
}

// SEToMOE converts a standard error to a margin of error at the 90%
// confidence level.
func SEToMOE(se float64) float64 {
	return se * zScore
}

// totalSE derives the standard error of the cumulative-proportion scale for
// a binned total n. Exactly one of designFactor or samplingPercentage must
// be positive:
//
//   - designFactor applies the PUMS formula for a total drawn from a
//     complex sample: D * sqrt((99/N) * 50^2) / 100.
//   - samplingPercentage applies the formula for a total under simple
//     random sampling without replacement:
//     sqrt(((100-p)/(N*p)) * 50^2) / 100.
//
// The two agree at D=1, p=1.
func totalSE(n, designFactor, samplingPercentage float64) (float64, error) {
	hasFactor := designFactor > 0
	hasPct := samplingPercentage > 0

	switch {
	case hasFactor && hasPct:
		return 0, eris.Wrap(ErrConfiguration,
			"standard error: design factor and sampling percentage are mutually exclusive")
	case !hasFactor && !hasPct:
		return 0, eris.Wrap(ErrConfiguration,
			"standard error: a design factor or sampling percentage is required")
	case n <= 0:
		return 0, eris.Wrapf(ErrInvalidInput, "standard error: non-positive total %v", n)
	}

	if hasFactor {
		return designFactor * math.Sqrt((99/n)*(50*50)) / 100, nil
	}

	if samplingPercentage > 100 {
		return 0, eris.Wrapf(ErrInvalidInput,
			"standard error: sampling percentage %v exceeds 100", samplingPercentage)
	}
	return math.Sqrt(((100-samplingPercentage)/(n*samplingPercentage))*(50*50)) / 100, nil
}
