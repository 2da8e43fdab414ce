package feature

import (
	"math"
	"math/rand"

	"github.com/cwbudde/algo-hyst/curve"
)

// SampleSeed seeds the down-sampling draw of PseudoArea. The source is
// created locally per call, so the result never depends on random numbers
// drawn elsewhere in the process.
const SampleSeed = 42

// PseudoArea approximates the area enclosed between two branches. Both
// value columns are shifted so the combined minimum sits at zero, the
// larger branch is down-sampled without replacement to the smaller one's
// size, and the absolute difference of the two branch sums is returned.
//
// The down-sampling makes this a proxy rather than an integral: it is
// reproducible (the draw is seeded with SampleSeed) and symmetric under
// swapping the branches, but only comparable between sweeps of similar
// sampling density. Undefined values contribute nothing to the sums.
func PseudoArea(a, b *curve.Curve, valueCol string) (float64, error) {
	va, err := branchValues(a, valueCol)
	if err != nil {
		return 0, err
	}
	vb, err := branchValues(b, valueCol)
	if err != nil {
		return 0, err
	}

	base, err := combinedMin(va, vb, valueCol)
	if err != nil {
		return 0, err
	}
	shiftBy(va, base)
	shiftBy(vb, base)

	rng := rand.New(rand.NewSource(SampleSeed))
	switch {
	case len(va) > len(vb):
		va = sampleWithout(rng, va, len(vb))
	case len(vb) > len(va):
		vb = sampleWithout(rng, vb, len(va))
	}

	return math.Abs(nanSum(va) - nanSum(vb)), nil
}

// branchValues returns a copy of the named column, rejecting empty curves.
func branchValues(c *curve.Curve, col string) ([]float64, error) {
	if c.Len() == 0 {
		return nil, curve.ErrEmpty
	}
	return c.Column(col)
}

func shiftBy(v []float64, base float64) {
	for i := range v {
		v[i] -= base
	}
}

// sampleWithout draws n values without replacement.
func sampleWithout(rng *rand.Rand, v []float64, n int) []float64 {
	out := make([]float64, n)
	for i, j := range rng.Perm(len(v))[:n] {
		out[i] = v[j]
	}
	return out
}

func nanSum(v []float64) float64 {
	var sum float64
	for _, x := range v {
		if !math.IsNaN(x) {
			sum += x
		}
	}
	return sum
}
