// Package align projects two sweep branches onto a common field grid so
// their values can be compared point by point.
//
// The grid is the sorted union of both branches' distinct field values.
// Grid points a branch did not measure take the value of the branch's
// nearest measured point: between two measured points the closer one wins
// and ties go to the lower field, beyond the measured span the span
// endpoint repeats. The aligned branches therefore always have the same
// length as the grid and carry no undefined values.
//
// The fill policy is part of the numeric contract: values computed from a
// Pair change if the fill changes. Resample provides interpolation as a
// separate, explicit step.
package align

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/cwbudde/algo-hyst/curve"
)

var (
	ErrDuplicateField = errors.New("align: duplicate field value in branch")
	ErrFieldNaN       = errors.New("align: field column contains undefined values")
)

// Pair holds two branches aligned onto a common field grid. Both curves
// have exactly the columns [fieldCol, valueCol] passed to Branches and one
// row per grid point.
type Pair struct {
	Grid []float64
	A, B *curve.Curve
}

// Branches aligns two branches onto the union grid of their field values.
// Both branches must be non-empty, free of undefined field entries and free
// of duplicate field values; the value column must hold at least one
// defined value per branch.
func Branches(a, b *curve.Curve, fieldCol, valueCol string) (*Pair, error) {
	sa, err := newSeries(a, fieldCol, valueCol)
	if err != nil {
		return nil, fmt.Errorf("align: first branch: %w", err)
	}
	sb, err := newSeries(b, fieldCol, valueCol)
	if err != nil {
		return nil, fmt.Errorf("align: second branch: %w", err)
	}

	grid := unionGrid(sa.fields, sb.fields)

	ca, err := curve.New(
		curve.Column{Name: fieldCol, Values: grid},
		curve.Column{Name: valueCol, Values: sa.fill(grid)},
	)
	if err != nil {
		return nil, fmt.Errorf("align: %w", err)
	}
	cb, err := curve.New(
		curve.Column{Name: fieldCol, Values: grid},
		curve.Column{Name: valueCol, Values: sb.fill(grid)},
	)
	if err != nil {
		return nil, fmt.Errorf("align: %w", err)
	}

	return &Pair{Grid: grid, A: ca, B: cb}, nil
}

// branchSeries is one branch reduced to its field/value pairs, sorted by
// field. defFields/defValues keep only the pairs whose value is defined;
// they drive the nearest-point fill.
type branchSeries struct {
	fields    []float64
	defFields []float64
	defValues []float64
}

func newSeries(c *curve.Curve, fieldCol, valueCol string) (*branchSeries, error) {
	if c.Len() == 0 {
		return nil, curve.ErrEmpty
	}
	f, err := c.Column(fieldCol)
	if err != nil {
		return nil, err
	}
	v, err := c.Column(valueCol)
	if err != nil {
		return nil, err
	}
	for _, x := range f {
		if math.IsNaN(x) {
			return nil, ErrFieldNaN
		}
	}

	rows := make([]int, len(f))
	for i := range rows {
		rows[i] = i
	}
	sort.Slice(rows, func(i, j int) bool { return f[rows[i]] < f[rows[j]] })

	s := &branchSeries{fields: make([]float64, 0, len(f))}
	for _, r := range rows {
		x := f[r]
		if n := len(s.fields); n > 0 && x == s.fields[n-1] {
			return nil, fmt.Errorf("%w: %v", ErrDuplicateField, x)
		}
		s.fields = append(s.fields, x)
		if !math.IsNaN(v[r]) {
			s.defFields = append(s.defFields, x)
			s.defValues = append(s.defValues, v[r])
		}
	}
	if len(s.defFields) == 0 {
		return nil, fmt.Errorf("%w: %q", curve.ErrAllNaN, valueCol)
	}
	return s, nil
}

// fill maps every grid point to the value of the nearest defined point.
// Ties between the two surrounding points pick the lower field; points
// outside the defined span take the span endpoint.
func (s *branchSeries) fill(grid []float64) []float64 {
	out := make([]float64, len(grid))
	for i, g := range grid {
		j := sort.SearchFloat64s(s.defFields, g)
		switch {
		case j == 0:
			out[i] = s.defValues[0]
		case j == len(s.defFields):
			out[i] = s.defValues[len(s.defValues)-1]
		default:
			if g-s.defFields[j-1] <= s.defFields[j]-g {
				out[i] = s.defValues[j-1]
			} else {
				out[i] = s.defValues[j]
			}
		}
	}
	return out
}

// unionGrid merges two ascending slices of unique values into one
// ascending slice without duplicates.
func unionGrid(a, b []float64) []float64 {
	out := make([]float64, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		case b[j] < a[i]:
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}
