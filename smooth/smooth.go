// Package smooth adds rolling-average columns to measurement curves.
//
// Windows are centered on the output row: a window of length w covers the
// (w-1)/2 rows before and w/2 rows after it. Rows whose window does not
// fit inside the curve stay undefined, and a window containing an
// undefined value produces an undefined average, so noise suppression
// never invents data at the edges or across gaps.
//
// Short windows are evaluated as sliding dot products; once a window
// reaches fftThreshold samples and the data carries no gaps, the package
// computes all windows at once with a single FFT convolution.
package smooth

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-hyst/curve"
)

var (
	ErrWindow = errors.New("smooth: window must be positive")
	ErrKernel = errors.New("smooth: kernel must be finite with a nonzero sum")
)

// Column name suffixes appended by the smoothing functions.
const (
	MASuffix  = "_MA"
	WMASuffix = "_WMA"
)

// DefaultWindow is the window length the measurement rigs conventionally
// smooth with.
const DefaultWindow = 10

// fftThreshold is the window length above which the sliding dot products
// move to a single FFT convolution.
const fftThreshold = 64

// MovingAverage returns a copy of the curve with an added column named
// col+MASuffix holding the centered moving average of col. A window
// longer than the curve leaves the whole column undefined.
func MovingAverage(c *curve.Curve, col string, window int) (*curve.Curve, error) {
	if window < 1 {
		return nil, ErrWindow
	}

	kernel := make([]float64, window)
	for i := range kernel {
		kernel[i] = 1
	}
	out, err := rollingWeighted(c, col, kernel)
	if err != nil {
		return nil, err
	}
	return c.WithColumn(col+MASuffix, out)
}

// WeightedMovingAverage returns a copy of the curve with an added column
// named col+WMASuffix holding the centered weighted average of col. The
// kernel is normalized by its sum, which must be nonzero; kernel values
// must be finite.
func WeightedMovingAverage(c *curve.Curve, col string, kernel []float64) (*curve.Curve, error) {
	if len(kernel) == 0 {
		return nil, ErrKernel
	}
	sum := 0.0
	for _, k := range kernel {
		if math.IsNaN(k) || math.IsInf(k, 0) {
			return nil, ErrKernel
		}
		sum += k
	}
	if sum == 0 {
		return nil, ErrKernel
	}

	out, err := rollingWeighted(c, col, kernel)
	if err != nil {
		return nil, err
	}
	return c.WithColumn(col+WMASuffix, out)
}

// rollingWeighted evaluates the centered, normalized sliding dot product
// of the named column with the kernel. Rows without a full window and
// windows touching an undefined value come back as NaN.
func rollingWeighted(c *curve.Curve, col string, kernel []float64) ([]float64, error) {
	x, err := c.Column(col)
	if err != nil {
		return nil, err
	}

	w := len(kernel)
	lo := (w - 1) / 2
	hi := w / 2
	out := make([]float64, len(x))
	for i := range out {
		out[i] = math.NaN()
	}
	if len(x) < w {
		return out, nil
	}

	norm := 0.0
	for _, k := range kernel {
		norm += k
	}

	if w >= fftThreshold && !hasNaN(x) {
		full, err := fftConvolve(x, reversed(kernel))
		if err != nil {
			return nil, err
		}
		for i := lo; i+hi < len(x); i++ {
			out[i] = full[i+hi] / norm
		}
		return out, nil
	}

	buf := make([]float64, w)
	for i := lo; i+hi < len(x); i++ {
		vecmath.MulBlock(buf, x[i-lo:i-lo+w], kernel)
		sum := 0.0
		poisoned := false
		for _, v := range buf {
			if math.IsNaN(v) {
				poisoned = true
				break
			}
			sum += v
		}
		if poisoned {
			continue
		}
		out[i] = sum / norm
	}
	return out, nil
}

// fftConvolve returns the full linear convolution of a and b computed via
// zero-padded FFTs.
func fftConvolve(a, b []float64) ([]float64, error) {
	n := len(a) + len(b) - 1
	fftSize := nextPowerOf2(n)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("smooth: failed to create FFT plan: %w", err)
	}

	aPad := make([]complex128, fftSize)
	bPad := make([]complex128, fftSize)
	for i, v := range a {
		aPad[i] = complex(v, 0)
	}
	for i, v := range b {
		bPad[i] = complex(v, 0)
	}

	aFreq := make([]complex128, fftSize)
	bFreq := make([]complex128, fftSize)
	if err := plan.Forward(aFreq, aPad); err != nil {
		return nil, fmt.Errorf("smooth: forward FFT failed: %w", err)
	}
	if err := plan.Forward(bFreq, bPad); err != nil {
		return nil, fmt.Errorf("smooth: forward FFT failed: %w", err)
	}

	for i := range aFreq {
		aFreq[i] *= bFreq[i]
	}

	timeDomain := make([]complex128, fftSize)
	if err := plan.Inverse(timeDomain, aFreq); err != nil {
		return nil, fmt.Errorf("smooth: inverse FFT failed: %w", err)
	}

	out := make([]float64, n)
	for i := range out {
		out[i] = real(timeDomain[i])
	}
	return out, nil
}

func reversed(v []float64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[len(v)-1-i] = x
	}
	return out
}

func hasNaN(v []float64) bool {
	for _, x := range v {
		if math.IsNaN(x) {
			return true
		}
	}
	return false
}

// nextPowerOf2 returns the next power of 2 >= n.
func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p *= 2
	}
	return p
}
