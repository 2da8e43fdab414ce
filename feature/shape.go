package feature

import (
	"math"

	"github.com/cwbudde/algo-hyst/curve"
	"github.com/cwbudde/algo-hyst/sweep"
)

// ZeroCrossings counts adjacent sign changes of the value column in each
// branch and returns the sum over both. The sign of a value is -1, 0 or
// +1, so a transition touching exactly zero counts as a change relative to
// a nonzero neighbor. Undefined values never equal their neighbors, so any
// step touching one is counted.
func ZeroCrossings(a, b *curve.Curve, valueCol string) (int, error) {
	na, err := crossings(a, valueCol)
	if err != nil {
		return 0, err
	}
	nb, err := crossings(b, valueCol)
	if err != nil {
		return 0, err
	}
	return na + nb, nil
}

func crossings(c *curve.Curve, col string) (int, error) {
	v, err := c.Column(col)
	if err != nil {
		return 0, err
	}

	count := 0
	for i := 1; i < len(v); i++ {
		// NaN signs make the difference NaN, which compares unequal
		// to zero and therefore counts.
		if signOf(v[i])-signOf(v[i-1]) != 0 {
			count++
		}
	}
	return count, nil
}

func signOf(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	case v == 0:
		return 0
	}
	return math.NaN()
}

// ValueRange merges both branches and returns max-min of the value column
// over the whole sweep. Undefined values are skipped; the field column
// only orders the merged rows and does not influence the spread.
func ValueRange(a, b *curve.Curve, fieldCol, valueCol string) (float64, error) {
	m, err := sweep.Merge(a, b, fieldCol)
	if err != nil {
		return 0, err
	}

	lo, err := m.Min(valueCol)
	if err != nil {
		return 0, err
	}
	hi, err := m.Max(valueCol)
	if err != nil {
		return 0, err
	}
	return hi - lo, nil
}
