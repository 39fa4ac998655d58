package census

import "errors"

// Sentinel errors returned by the approximation engine. Call sites wrap
// these with eris to attach context; match with errors.Is.
var (
	// ErrInvalidInput marks empty or malformed estimate and bin sequences:
	// negative counts or margins, overlapping bins, interior open bounds.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConfiguration marks mutually exclusive or missing knobs, such as
	// supplying both a design factor and a sampling percentage.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrDivisionByZero marks a zero denominator in the ratio, proportion
	// and percent-change paths.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrUndefinedMedian marks a median that lands in an open-ended bin
	// with no jam value, or a simulation with no valid realizations.
	ErrUndefinedMedian = errors.New("undefined median")
)
