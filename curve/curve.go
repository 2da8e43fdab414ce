package curve

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// Default column names of the magnetoresistance measurement files this
// module processes. They are conventions, not requirements: every operation
// takes its column names as parameters.
const (
	// DefaultFieldColumn is the applied magnetic field in kilo-oersted.
	DefaultFieldColumn = "H_kOe"
	// DefaultValueColumn is the Hall resistance in ohm.
	DefaultValueColumn = "Rh(Ω)"
	// DefaultDerivativeColumn is the field derivative of the Hall
	// resistance in milliohm per oersted.
	DefaultDerivativeColumn = "dRh/dH(mΩ/Oe)"
)

var (
	ErrNoColumns       = errors.New("curve: no columns")
	ErrColumnName      = errors.New("curve: column name is empty")
	ErrDuplicateColumn = errors.New("curve: duplicate column name")
	ErrLengthMismatch  = errors.New("curve: column lengths differ")
	ErrColumnMissing   = errors.New("curve: column not found")
	ErrEmpty           = errors.New("curve: curve has no rows")
	ErrAllNaN          = errors.New("curve: column has no defined values")
	ErrRowRange        = errors.New("curve: row index out of range")
)

// Column is one named value series used to construct a Curve.
type Column struct {
	Name   string
	Values []float64
}

// Curve is an immutable table of rows with named float64 columns. Column
// order is the construction order. The zero value has no rows and no
// columns; build curves with New.
type Curve struct {
	names  []string
	values [][]float64
	n      int
}

// New builds a curve from the given columns. All columns must carry the
// same number of values, names must be non-empty and unique, and at least
// one column is required. The values are copied. A curve with zero rows is
// valid; most operations on it fail with ErrEmpty.
func New(cols ...Column) (*Curve, error) {
	if len(cols) == 0 {
		return nil, ErrNoColumns
	}
	c := &Curve{
		names:  make([]string, 0, len(cols)),
		values: make([][]float64, 0, len(cols)),
		n:      len(cols[0].Values),
	}
	for _, col := range cols {
		if col.Name == "" {
			return nil, ErrColumnName
		}
		if c.index(col.Name) >= 0 {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, col.Name)
		}
		if len(col.Values) != c.n {
			return nil, fmt.Errorf("%w: %q has %d values, want %d", ErrLengthMismatch, col.Name, len(col.Values), c.n)
		}
		vals := make([]float64, c.n)
		copy(vals, col.Values)
		c.names = append(c.names, col.Name)
		c.values = append(c.values, vals)
	}
	return c, nil
}

func (c *Curve) index(name string) int {
	for i, n := range c.names {
		if n == name {
			return i
		}
	}
	return -1
}

// Len returns the number of rows.
func (c *Curve) Len() int { return c.n }

// Columns returns the column names in order.
func (c *Curve) Columns() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Has reports whether the named column exists.
func (c *Curve) Has(name string) bool { return c.index(name) >= 0 }

// Column returns a copy of the named column's values.
func (c *Curve) Column(name string) ([]float64, error) {
	i := c.index(name)
	if i < 0 {
		return nil, fmt.Errorf("%w: %q", ErrColumnMissing, name)
	}
	out := make([]float64, c.n)
	copy(out, c.values[i])
	return out, nil
}

// WithColumn returns a copy of the curve with the named column set to vals.
// An existing column of that name is replaced in place, a new column is
// appended after the existing ones. The receiver is left untouched.
func (c *Curve) WithColumn(name string, vals []float64) (*Curve, error) {
	if name == "" {
		return nil, ErrColumnName
	}
	if len(vals) != c.n {
		return nil, fmt.Errorf("%w: %q has %d values, want %d", ErrLengthMismatch, name, len(vals), c.n)
	}
	out := c.clone()
	v := make([]float64, c.n)
	copy(v, vals)
	if i := out.index(name); i >= 0 {
		out.values[i] = v
		return out, nil
	}
	out.names = append(out.names, name)
	out.values = append(out.values, v)
	return out, nil
}

func (c *Curve) clone() *Curve {
	out := &Curve{
		names:  make([]string, len(c.names)),
		values: make([][]float64, len(c.values)),
		n:      c.n,
	}
	copy(out.names, c.names)
	for i, v := range c.values {
		vals := make([]float64, len(v))
		copy(vals, v)
		out.values[i] = vals
	}
	return out
}

// Select returns a new curve holding the given rows in the given order.
// Row indices may repeat; the result is re-indexed from zero.
func (c *Curve) Select(rows []int) (*Curve, error) {
	for _, r := range rows {
		if r < 0 || r >= c.n {
			return nil, fmt.Errorf("%w: %d", ErrRowRange, r)
		}
	}
	out := &Curve{
		names:  make([]string, len(c.names)),
		values: make([][]float64, len(c.values)),
		n:      len(rows),
	}
	copy(out.names, c.names)
	for i, v := range c.values {
		vals := make([]float64, len(rows))
		for j, r := range rows {
			vals[j] = v[r]
		}
		out.values[i] = vals
	}
	return out, nil
}

// SortBy returns a copy of the curve with rows sorted in ascending order of
// the named column. The sort is stable, so rows with equal keys keep their
// relative order. Undefined (NaN) keys sort after all defined values.
func (c *Curve) SortBy(name string) (*Curve, error) {
	i := c.index(name)
	if i < 0 {
		return nil, fmt.Errorf("%w: %q", ErrColumnMissing, name)
	}
	key := c.values[i]
	rows := make([]int, c.n)
	for r := range rows {
		rows[r] = r
	}
	sort.SliceStable(rows, func(a, b int) bool {
		x, y := key[rows[a]], key[rows[b]]
		if math.IsNaN(x) {
			return false
		}
		if math.IsNaN(y) {
			return true
		}
		return x < y
	})
	return c.Select(rows)
}

// Min returns the smallest defined value of the named column. Undefined
// entries are skipped; a column without any defined value yields ErrAllNaN.
func (c *Curve) Min(name string) (float64, error) {
	i := c.index(name)
	if i < 0 {
		return 0, fmt.Errorf("%w: %q", ErrColumnMissing, name)
	}
	best := math.NaN()
	for _, v := range c.values[i] {
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(best) || v < best {
			best = v
		}
	}
	if math.IsNaN(best) {
		return 0, fmt.Errorf("%w: %q", ErrAllNaN, name)
	}
	return best, nil
}

// Max returns the largest defined value of the named column. Undefined
// entries are skipped; a column without any defined value yields ErrAllNaN.
func (c *Curve) Max(name string) (float64, error) {
	i := c.index(name)
	if i < 0 {
		return 0, fmt.Errorf("%w: %q", ErrColumnMissing, name)
	}
	best := math.NaN()
	for _, v := range c.values[i] {
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(best) || v > best {
			best = v
		}
	}
	if math.IsNaN(best) {
		return 0, fmt.Errorf("%w: %q", ErrAllNaN, name)
	}
	return best, nil
}

// Concat appends the rows of b after the rows of a. The result's column set
// is the union of both curves' columns ordered by first appearance;
// positions one curve does not cover are filled with NaN.
func Concat(a, b *Curve) *Curve {
	names := a.Columns()
	for _, n := range b.names {
		if a.index(n) < 0 {
			names = append(names, n)
		}
	}
	out := &Curve{
		names:  names,
		values: make([][]float64, len(names)),
		n:      a.n + b.n,
	}
	for i, name := range names {
		vals := make([]float64, out.n)
		ai, bi := a.index(name), b.index(name)
		for r := 0; r < a.n; r++ {
			if ai >= 0 {
				vals[r] = a.values[ai][r]
			} else {
				vals[r] = math.NaN()
			}
		}
		for r := 0; r < b.n; r++ {
			if bi >= 0 {
				vals[a.n+r] = b.values[bi][r]
			} else {
				vals[a.n+r] = math.NaN()
			}
		}
		out.values[i] = vals
	}
	return out
}
