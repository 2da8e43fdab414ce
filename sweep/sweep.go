package sweep

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-hyst/curve"
)

// TurningIndex returns the row at which the sweep reverses direction,
// defined as the first occurrence of the minimum value in the field column.
// Undefined field entries are ignored; a field column without any defined
// value yields curve.ErrAllNaN.
func TurningIndex(c *curve.Curve, fieldCol string) (int, error) {
	if c.Len() == 0 {
		return 0, curve.ErrEmpty
	}
	field, err := c.Column(fieldCol)
	if err != nil {
		return 0, err
	}

	best := -1
	for i, v := range field {
		if math.IsNaN(v) {
			continue
		}
		if best < 0 || v < field[best] {
			best = i
		}
	}
	if best < 0 {
		return 0, fmt.Errorf("%w: %q", curve.ErrAllNaN, fieldCol)
	}
	return best, nil
}

// Split cuts the sweep into its two monotonic branches at the turning
// point. The first branch covers the rows up to and including the turning
// point, the second branch the remainder; both are re-sorted to ascending
// field order with a fresh index, so every input row lands in exactly one
// branch. The second branch is empty when the turning point is the last
// row.
func Split(c *curve.Curve, fieldCol string) (before, after *curve.Curve, err error) {
	t, err := TurningIndex(c, fieldCol)
	if err != nil {
		return nil, nil, err
	}

	rows := make([]int, c.Len())
	for i := range rows {
		rows[i] = i
	}
	head, err := c.Select(rows[:t+1])
	if err != nil {
		return nil, nil, err
	}
	tail, err := c.Select(rows[t+1:])
	if err != nil {
		return nil, nil, err
	}

	before, err = head.SortBy(fieldCol)
	if err != nil {
		return nil, nil, err
	}
	after, err = tail.SortBy(fieldCol)
	if err != nil {
		return nil, nil, err
	}
	return before, after, nil
}

// Merge concatenates two branches and sorts the result in ascending order
// of the field column. Rows are kept verbatim: duplicate field values
// survive, the result length is the sum of the input lengths, and the
// stable sort keeps a's rows ahead of b's rows on equal fields.
func Merge(a, b *curve.Curve, fieldCol string) (*curve.Curve, error) {
	return curve.Concat(a, b).SortBy(fieldCol)
}
