package feature

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-hyst/curve"
)

// GradientAtFraction returns the numerical derivative of the value column
// with respect to the field column at a fractional position along the
// branch: fraction 0 addresses the first sample, 1 the last, and the
// addressed index is round(fraction*(len-1)) with ties rounding away from
// zero.
//
// A branch whose defined values are all identical returns exactly 0.0 for
// every fraction, before any difference is formed. Otherwise the interior
// uses the three-point stencil for non-uniform spacing and the two ends
// use one-sided differences, so duplicate field values at the addressed
// index yield an infinite or NaN result rather than an error.
func GradientAtFraction(branch *curve.Curve, fraction float64, fieldCol, valueCol string) (float64, error) {
	if !(fraction >= 0 && fraction <= 1) {
		return 0, fmt.Errorf("%w: %v", ErrFraction, fraction)
	}
	if branch.Len() == 0 {
		return 0, curve.ErrEmpty
	}
	y, err := branch.Column(valueCol)
	if err != nil {
		return 0, err
	}
	x, err := branch.Column(fieldCol)
	if err != nil {
		return 0, err
	}

	if flat(y) {
		return 0, nil
	}
	if len(y) < 2 {
		return 0, ErrTooShort
	}
	if allNaN(y) {
		return 0, fmt.Errorf("%w: %q", curve.ErrAllNaN, valueCol)
	}

	i := fractionIndex(fraction, len(y))
	switch i {
	case 0:
		return (y[1] - y[0]) / (x[1] - x[0]), nil
	case len(y) - 1:
		n := len(y)
		return (y[n-1] - y[n-2]) / (x[n-1] - x[n-2]), nil
	}

	hs := x[i] - x[i-1]
	hd := x[i+1] - x[i]
	return (hs*hs*y[i+1] + (hd*hd-hs*hs)*y[i] - hd*hd*y[i-1]) / (hs * hd * (hs + hd)), nil
}

// flat reports whether the slice holds at least one defined value and all
// defined values are identical.
func flat(v []float64) bool {
	first := math.NaN()
	for _, x := range v {
		if math.IsNaN(x) {
			continue
		}
		if math.IsNaN(first) {
			first = x
			continue
		}
		if x != first {
			return false
		}
	}
	return !math.IsNaN(first)
}

func allNaN(v []float64) bool {
	for _, x := range v {
		if !math.IsNaN(x) {
			return false
		}
	}
	return true
}
