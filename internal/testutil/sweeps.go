package testutil

import "math"

// DownUpField generates a bipolar field sweep: +span down to -span and
// back up, n samples per leg, with the turning point included once. The
// result has 2n-1 samples.
func DownUpField(n int, span float64) []float64 {
	if n < 1 {
		return nil
	}
	if n == 1 {
		return []float64{span}
	}

	out := make([]float64, 0, 2*n-1)
	step := 2 * span / float64(n-1)
	for i := 0; i < n; i++ {
		out = append(out, span-float64(i)*step)
	}
	for i := 1; i < n; i++ {
		out = append(out, -span+float64(i)*step)
	}
	return out
}

// SoftStep maps fields through a smooth low-to-high transition centered
// at center, with a tanh profile of the given width.
func SoftStep(fields []float64, center, width, low, high float64) []float64 {
	out := make([]float64, len(fields))
	for i, h := range fields {
		t := math.Tanh((h - center) / width)
		out[i] = low + (high-low)*(t+1)/2
	}
	return out
}

// Constant generates a flat value column.
func Constant(value float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = value
	}
	return out
}

// WithNaN returns a copy of vals with NaN punched in at the given
// indexes. Out-of-range indexes are ignored.
func WithNaN(vals []float64, at ...int) []float64 {
	out := append([]float64(nil), vals...)
	for _, i := range at {
		if i >= 0 && i < len(out) {
			out[i] = math.NaN()
		}
	}
	return out
}
