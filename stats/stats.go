// Package stats summarizes sweep columns for measurement quality checks.
//
// A Summary describes one column of a sweep: how many rows parsed, the
// moments of the defined values and where in the field range the extrema
// sit. It complements the feature set — features feed classification,
// summaries flag files worth a second look (clipped ranges, heavy NaN
// loss, off-center extrema).
package stats

import (
	"math"

	"github.com/cwbudde/algo-hyst/curve"
)

// Summary holds descriptive statistics of one sweep column. Moments are
// computed over the defined (non-NaN) values only; with no defined value
// every float field is NaN.
type Summary struct {
	Rows    int // rows in the curve
	Defined int // rows with a defined value
	Missing int // rows lost to NaN

	Mean     float64
	Variance float64 // population variance
	Skewness float64
	Kurtosis float64 // excess kurtosis

	Min      float64
	MinField float64 // field position of the minimum
	Max      float64
	MaxField float64 // field position of the maximum
	Range    float64 // max - min

	ZeroCrossings int // sign flips between consecutive defined values
}

// Describe computes a Summary of valueCol against fieldCol in one pass,
// using Welford's online algorithm for the higher moments.
func Describe(c *curve.Curve, fieldCol, valueCol string) (*Summary, error) {
	field, err := c.Column(fieldCol)
	if err != nil {
		return nil, err
	}
	value, err := c.Column(valueCol)
	if err != nil {
		return nil, err
	}

	var acc Accumulator
	acc.add(field, value)
	s := acc.Result()
	return &s, nil
}

// Accumulator builds a Summary incrementally across several sweeps, so a
// whole measurement run can be described in one pass. The zero value is
// ready to use. Results are bit-for-bit identical to a single Describe
// over the concatenated columns.
type Accumulator struct {
	rows    int
	n       int
	mean    float64
	m2      float64
	m3      float64
	m4      float64
	min     float64
	minAt   float64
	max     float64
	maxAt   float64
	zc      int
	hasData bool
	last    float64
}

// Add folds valueCol of c, positioned by fieldCol, into the accumulator.
func (a *Accumulator) Add(c *curve.Curve, fieldCol, valueCol string) error {
	field, err := c.Column(fieldCol)
	if err != nil {
		return err
	}
	value, err := c.Column(valueCol)
	if err != nil {
		return err
	}
	a.add(field, value)
	return nil
}

func (a *Accumulator) add(field, value []float64) {
	a.rows += len(value)
	for i, x := range value {
		if math.IsNaN(x) {
			continue
		}
		a.n++
		ni := float64(a.n)

		// Welford update. M4 must be updated before M3, and M3 before M2.
		delta := x - a.mean
		deltaN := delta / ni
		deltaN2 := deltaN * deltaN
		term1 := delta * deltaN * float64(a.n-1)

		a.m4 += term1*deltaN2*(ni*ni-3*ni+3) + 6*deltaN2*a.m2 - 4*deltaN*a.m3
		a.m3 += term1*deltaN*(float64(a.n-1)-1) - 3*deltaN*a.m2
		a.m2 += term1
		a.mean += deltaN

		if !a.hasData {
			a.min, a.max = x, x
			a.minAt, a.maxAt = field[i], field[i]
			a.hasData = true
		} else {
			if x > a.max {
				a.max = x
				a.maxAt = field[i]
			}
			if x < a.min {
				a.min = x
				a.minAt = field[i]
			}
		}

		if a.n > 1 && a.last*x < 0 {
			a.zc++
		}
		a.last = x
	}
}

// Result computes the final Summary from the accumulated data.
func (a *Accumulator) Result() Summary {
	if a.n == 0 {
		nan := math.NaN()
		return Summary{
			Rows:     a.rows,
			Missing:  a.rows,
			Mean:     nan,
			Variance: nan,
			Skewness: nan,
			Kurtosis: nan,
			Min:      nan,
			MinField: nan,
			Max:      nan,
			MaxField: nan,
			Range:    nan,
		}
	}

	nf := float64(a.n)
	variance := a.m2 / nf

	var skewness, kurtosis float64
	if variance > 0 {
		skewness = (a.m3 / nf) / (variance * math.Sqrt(variance))
		kurtosis = (a.m4/nf)/(variance*variance) - 3
	}

	return Summary{
		Rows:          a.rows,
		Defined:       a.n,
		Missing:       a.rows - a.n,
		Mean:          a.mean,
		Variance:      variance,
		Skewness:      skewness,
		Kurtosis:      kurtosis,
		Min:           a.min,
		MinField:      a.minAt,
		Max:           a.max,
		MaxField:      a.maxAt,
		Range:         a.max - a.min,
		ZeroCrossings: a.zc,
	}
}

// Reset clears the accumulator for reuse.
func (a *Accumulator) Reset() {
	*a = Accumulator{}
}
