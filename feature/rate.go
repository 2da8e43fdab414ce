package feature

import (
	"math"

	"github.com/cwbudde/algo-hyst/curve"
)

// ChangeRateStats returns the mean and sample variance of the
// sample-to-sample fractional change (x[i]-x[i-1])/x[i-1] of the named
// column. The undefined rate of the first sample is excluded, NaN rates
// are skipped, and the variance uses the n-1 denominator.
//
// A previous value of exactly zero makes that step's rate infinite (or NaN
// for a 0/0 step); infinite rates stay in and poison the statistics into
// Inf or NaN. Fewer than one usable rate yields a NaN mean, fewer than two
// a NaN variance. All of these are legitimate outcomes for degenerate
// data, not errors.
func ChangeRateStats(c *curve.Curve, col string) (mean, variance float64, err error) {
	v, err := c.Column(col)
	if err != nil {
		return 0, 0, err
	}

	rates := make([]float64, 0, len(v))
	n := 0
	sum := 0.0
	for i := 1; i < len(v); i++ {
		r := (v[i] - v[i-1]) / v[i-1]
		rates = append(rates, r)
		if math.IsNaN(r) {
			continue
		}
		n++
		sum += r
	}

	mean = math.NaN()
	variance = math.NaN()
	if n >= 1 {
		mean = sum / float64(n)
	}
	if n >= 2 {
		ss := 0.0
		for _, r := range rates {
			if math.IsNaN(r) {
				continue
			}
			d := r - mean
			ss += d * d
		}
		variance = ss / float64(n-1)
	}
	return mean, variance, nil
}
