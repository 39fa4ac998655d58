package census

import (
	"math"

	"github.com/rotisserie/eris"
)

// Bin is one contiguous interval of a continuous variable with the count of
// units observed inside it. NaN marks an open bound (legal only on the
// first bin's Min and the last bin's Max) and an absent count MOE.
type Bin struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
	N   float64 `json:"n" yaml:"n"`
	MOE float64 `json:"moe" yaml:"moe"`
}

// HasMOE reports whether the bin's count carries a margin of error.
func (b Bin) HasMOE() bool {
	return !math.IsNaN(b.MOE)
}

// JamValues are substitute boundary values for open-ended bins, sourced
// from survey technical documentation. They apply only to the deterministic
// median path; the simulation paths never consult them.
type JamValues struct {
	Low  float64
	High float64
}

// validateBins checks the shape invariants of a binned dataset and returns
// the total count. The caller-supplied order is canonical: bins are never
// re-sorted, only checked for overlap.
func validateBins(bins []Bin) (float64, error) {
	if len(bins) == 0 {
		return 0, eris.Wrap(ErrInvalidInput, "no bins")
	}

	var total float64
	for i, b := range bins {
		if math.IsNaN(b.Min) && i != 0 {
			return 0, eris.Wrapf(ErrInvalidInput, "bin %d: open lower bound on interior bin", i)
		}
		if math.IsNaN(b.Max) && i != len(bins)-1 {
			return 0, eris.Wrapf(ErrInvalidInput, "bin %d: open upper bound on interior bin", i)
		}
		if !math.IsNaN(b.Min) && !math.IsNaN(b.Max) && b.Min > b.Max {
			return 0, eris.Wrapf(ErrInvalidInput, "bin %d: min %v exceeds max %v", i, b.Min, b.Max)
		}
		if math.IsNaN(b.N) || b.N < 0 {
			return 0, eris.Wrapf(ErrInvalidInput, "bin %d: invalid count %v", i, b.N)
		}
		if b.HasMOE() && b.MOE < 0 {
			return 0, eris.Wrapf(ErrInvalidInput, "bin %d: negative margin of error %v", i, b.MOE)
		}
		if i > 0 {
			prev := bins[i-1]
			if !math.IsNaN(prev.Max) && !math.IsNaN(b.Min) && b.Min < prev.Max {
				return 0, eris.Wrapf(ErrInvalidInput,
					"bin %d: min %v overlaps previous bin ending at %v", i, b.Min, prev.Max)
			}
		}
		total += b.N
	}

	if total <= 0 {
		return 0, eris.Wrap(ErrInvalidInput, "total count across bins must be positive")
	}
	return total, nil
}

// cumulate returns the running lower cumulative count for each bin under
// the given per-bin counts, plus the grand total.
func cumulate(counts []float64) ([]float64, float64) {
	below := make([]float64, len(counts))
	var running float64
	for i, n := range counts {
		below[i] = running
		running += n
	}
	return below, running
}

// locateMidpoint returns the index of the first bin whose cumulative range
// contains total/2. Counts may be perturbed copies of the bins' published
// counts. Returns -1 when the total is non-positive.
func locateMidpoint(counts []float64) int {
	below, total := cumulate(counts)
	if total <= 0 {
		return -1
	}
	midpoint := total / 2
	for i := range counts {
		if midpoint >= below[i] && midpoint <= below[i]+counts[i] {
			return i
		}
	}
	return -1
}

// interpolate estimates the median inside bin idx by linear interpolation:
// L + ((total/2 - below) / count) * width. Returns NaN when the landing
// bin's bounds are open or its count is zero.
func interpolate(bins []Bin, counts []float64, idx int) float64 {
	below, total := cumulate(counts)
	bin := bins[idx]
	if math.IsNaN(bin.Min) || math.IsNaN(bin.Max) || counts[idx] == 0 {
		return math.NaN()
	}
	gap := total/2 - below[idx]
	return bin.Min + (bin.Max-bin.Min)*(gap/counts[idx])
}
