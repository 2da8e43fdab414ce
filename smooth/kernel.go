package smooth

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Shape identifies a smoothing kernel profile for WeightedMovingAverage.
type Shape int

const (
	ShapeUniform Shape = iota
	ShapeTriangle
	ShapeHann
	ShapeWelch
	ShapeGaussian
)

var (
	ErrShape = errors.New("smooth: unknown kernel shape")
	ErrSigma = errors.New("smooth: sigma must be positive")
)

var shapeNames = map[Shape]string{
	ShapeUniform:  "uniform",
	ShapeTriangle: "triangle",
	ShapeHann:     "hann",
	ShapeWelch:    "welch",
	ShapeGaussian: "gauss",
}

func (s Shape) String() string {
	if name, ok := shapeNames[s]; ok {
		return name
	}
	return fmt.Sprintf("shape(%d)", int(s))
}

// ParseShape maps a shape name such as "hann" to its Shape.
func ParseShape(name string) (Shape, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	for s, n := range shapeNames {
		if n == want {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrShape, name)
}

// Kernel returns width taps of the given shape, peaking at one.
// WeightedMovingAverage divides by the tap sum, so the taps are not
// normalized here. Tapered shapes put zero weight on the outermost taps
// once the width allows it, like their window-function namesakes; widths
// too short to carry any weight are rejected. Gaussian taps use
// sigma = width/6, spanning three standard deviations per side.
func Kernel(s Shape, width int) ([]float64, error) {
	switch s {
	case ShapeUniform:
		return UniformKernel(width)
	case ShapeTriangle:
		return TriangleKernel(width)
	case ShapeHann:
		return HannKernel(width)
	case ShapeWelch:
		return WelchKernel(width)
	case ShapeGaussian:
		return GaussianKernel(width, float64(width)/6)
	default:
		return nil, fmt.Errorf("%w: %d", ErrShape, int(s))
	}
}

// UniformKernel returns the flat kernel MovingAverage uses.
func UniformKernel(width int) ([]float64, error) {
	return taps(ShapeUniform, width, 0)
}

// TriangleKernel returns a linear taper to zero at both ends.
func TriangleKernel(width int) ([]float64, error) {
	return taps(ShapeTriangle, width, 0)
}

// HannKernel returns a raised-cosine taper to zero at both ends.
func HannKernel(width int) ([]float64, error) {
	return taps(ShapeHann, width, 0)
}

// WelchKernel returns a parabolic taper to zero at both ends.
func WelchKernel(width int) ([]float64, error) {
	return taps(ShapeWelch, width, 0)
}

// GaussianKernel returns a Gaussian bell with the given standard
// deviation, measured in rows.
func GaussianKernel(width int, sigma float64) ([]float64, error) {
	if sigma <= 0 || math.IsNaN(sigma) || math.IsInf(sigma, 0) {
		return nil, fmt.Errorf("%w: %v", ErrSigma, sigma)
	}
	return taps(ShapeGaussian, width, sigma)
}

func taps(s Shape, width int, sigma float64) ([]float64, error) {
	if width < 1 {
		return nil, ErrWindow
	}
	if width == 1 {
		return []float64{1}, nil
	}

	out := make([]float64, width)
	if s == ShapeGaussian {
		center := float64(width-1) / 2
		for i := range out {
			d := (float64(i) - center) / sigma
			out[i] = math.Exp(-0.5 * d * d)
		}
		return out, nil
	}

	sum := 0.0
	for i := range out {
		x := float64(i) / float64(width-1)
		out[i] = shapeAt(s, x)
		sum += out[i]
	}
	if sum == 0 {
		return nil, fmt.Errorf("%w: %s kernel of width %d has no weight", ErrKernel, s, width)
	}
	return out, nil
}

// shapeAt evaluates the kernel profile at x in [0, 1].
func shapeAt(s Shape, x float64) float64 {
	switch s {
	case ShapeTriangle:
		return 1 - math.Abs(2*x-1)
	case ShapeHann:
		return 0.5 - 0.5*math.Cos(2*math.Pi*x)
	case ShapeWelch:
		d := x - 0.5
		return 1 - 4*d*d
	default:
		return 1
	}
}
