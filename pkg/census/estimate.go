// Package census approximates derived statistics from published U.S. Census
// Bureau survey estimates and propagates each estimate's margin of error
// through the derivation using the Bureau's error-propagation formulas.
//
// The package is pure computation: it receives already-parsed numeric
// records, performs no I/O, and holds no state between calls. All margins
// of error are half-widths of 90% confidence intervals, matching Bureau
// publications.
package census

import (
	"math"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Estimate is a published survey figure paired with its margin of error.
// MOE is the radius of the 90% confidence interval and is never negative.
type Estimate struct {
	Value float64 `json:"value" yaml:"value"`
	MOE   float64 `json:"moe" yaml:"moe"`
}

// Sum totals the given estimates and approximates the combined margin of
// error as the root sum of squares of the input margins. Useful for
// aggregating census categories and geographies.
func Sum(estimates ...Estimate) (Estimate, error) {
	if len(estimates) == 0 {
		return Estimate{}, eris.Wrap(ErrInvalidInput, "sum: no estimates")
	}
	if err := validateEstimates(estimates...); err != nil {
		return Estimate{}, eris.Wrap(err, "sum")
	}

	var total, sumSq float64
	for _, e := range estimates {
		total += e.Value
		sumSq += e.MOE * e.MOE
	}

	return Estimate{Value: total, MOE: math.Sqrt(sumSq)}, nil
}

// Product multiplies two estimates and approximates the margin of error of
// the product, treating the inputs as approximately independent.
func Product(a, b Estimate) (Estimate, error) {
	if err := validateEstimates(a, b); err != nil {
		return Estimate{}, eris.Wrap(err, "product")
	}

	moe := math.Sqrt(a.Value*a.Value*b.MOE*b.MOE + b.Value*b.Value*a.MOE*a.MOE)
	return Estimate{Value: a.Value * b.Value, MOE: moe}, nil
}

// Ratio divides one estimate by another and approximates the margin of
// error of the quotient. Use when the numerator is not a subset of the
// denominator; Proportion covers the subset case.
func Ratio(numerator, denominator Estimate) (Estimate, error) {
	if err := validateEstimates(numerator, denominator); err != nil {
		return Estimate{}, eris.Wrap(err, "ratio")
	}
	if denominator.Value == 0 {
		return Estimate{}, eris.Wrap(ErrDivisionByZero, "ratio: zero denominator")
	}

	value := numerator.Value / denominator.Value
	radicand := numerator.MOE*numerator.MOE + value*value*denominator.MOE*denominator.MOE
	moe := math.Sqrt(radicand) / denominator.Value

	return Estimate{Value: value, MOE: moe}, nil
}

// Proportion divides one estimate by another when the numerator is a subset
// of the denominator, using the Bureau's subset-specific margin formula.
// When that formula's radicand goes negative the Bureau advises switching
// to the general ratio formula; the fallback is applied transparently.
func Proportion(numerator, denominator Estimate) (Estimate, error) {
	if err := validateEstimates(numerator, denominator); err != nil {
		return Estimate{}, eris.Wrap(err, "proportion")
	}
	if denominator.Value == 0 {
		return Estimate{}, eris.Wrap(ErrDivisionByZero, "proportion: zero denominator")
	}

	value := numerator.Value / denominator.Value
	radicand := numerator.MOE*numerator.MOE - value*value*denominator.MOE*denominator.MOE
	if radicand < 0 {
		zap.L().Debug("proportion: negative radicand, using ratio formula",
			zap.Float64("radicand", radicand),
		)
		return Ratio(numerator, denominator)
	}
	moe := math.Sqrt(radicand) / denominator.Value

	return Estimate{Value: value, MOE: moe}, nil
}

// PercentChange computes the percent change from before to after, in
// percentage points, and approximates its margin of error via the ratio
// formula scaled to percentage units.
func PercentChange(before, after Estimate) (Estimate, error) {
	if err := validateEstimates(before, after); err != nil {
		return Estimate{}, eris.Wrap(err, "percent change")
	}
	if before.Value == 0 {
		return Estimate{}, eris.Wrap(ErrDivisionByZero, "percent change: zero before value")
	}

	value := ((after.Value - before.Value) / before.Value) * 100

	asRatio, err := Ratio(after, before)
	if err != nil {
		return Estimate{}, eris.Wrap(err, "percent change")
	}

	return Estimate{Value: value, MOE: asRatio.MOE * 100}, nil
}

// validateEstimates rejects non-finite values and negative margins.
func validateEstimates(estimates ...Estimate) error {
	for i, e := range estimates {
		if math.IsNaN(e.Value) || math.IsInf(e.Value, 0) {
			return eris.Wrapf(ErrInvalidInput, "estimate %d: value is not finite", i)
		}
		if math.IsNaN(e.MOE) || math.IsInf(e.MOE, 0) {
			return eris.Wrapf(ErrInvalidInput, "estimate %d: margin of error is not finite", i)
		}
		if e.MOE < 0 {
			return eris.Wrapf(ErrInvalidInput, "estimate %d: negative margin of error %v", i, e.MOE)
		}
	}
	return nil
}
