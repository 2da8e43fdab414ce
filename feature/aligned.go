package feature

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-hyst/align"
	"github.com/cwbudde/algo-hyst/curve"
)

// DenominatorFloor is the smallest denominator magnitude YRatio divides
// by. A smaller denominator is replaced by the floor itself, which is
// positive regardless of the denominator's true sign: the substitution
// keeps the ratio finite at the cost of a possible sign flip when the true
// denominator is tiny and negative.
const DenominatorFloor = 1e-10

// YDeviation aligns both branches onto their common field grid and returns
// the absolute difference of their values at the fractional index.
func YDeviation(a, b *curve.Curve, fieldCol, valueCol string, fraction float64) (float64, error) {
	va, vb, err := alignedValues(a, b, fieldCol, valueCol, fraction)
	if err != nil {
		return 0, err
	}

	i := fractionIndex(fraction, len(va))
	return math.Abs(va[i] - vb[i]), nil
}

// YRatio aligns both branches, shifts both so the combined minimum sits at
// zero, and returns the ratio a/b of the shifted values at the fractional
// index. The denominator is floored to DenominatorFloor, so the result is
// never infinite.
func YRatio(a, b *curve.Curve, fieldCol, valueCol string, fraction float64) (float64, error) {
	va, vb, err := alignedValues(a, b, fieldCol, valueCol, fraction)
	if err != nil {
		return 0, err
	}

	base, err := combinedMin(va, vb, valueCol)
	if err != nil {
		return 0, err
	}

	i := fractionIndex(fraction, len(va))
	num := va[i] - base
	den := vb[i] - base
	if math.Abs(den) < DenominatorFloor {
		den = DenominatorFloor
	}
	return num / den, nil
}

func alignedValues(a, b *curve.Curve, fieldCol, valueCol string, fraction float64) ([]float64, []float64, error) {
	if !(fraction >= 0 && fraction <= 1) {
		return nil, nil, fmt.Errorf("%w: %v", ErrFraction, fraction)
	}

	p, err := align.Branches(a, b, fieldCol, valueCol)
	if err != nil {
		return nil, nil, err
	}
	va, err := p.A.Column(valueCol)
	if err != nil {
		return nil, nil, err
	}
	vb, err := p.B.Column(valueCol)
	if err != nil {
		return nil, nil, err
	}
	return va, vb, nil
}
