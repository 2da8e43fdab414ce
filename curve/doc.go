// Package curve defines the tabular sample model shared by the sweep,
// align and feature packages.
//
// A Curve holds one measurement sweep as an ordered set of rows with named
// float64 columns, typically a magnetic field column and one or more
// resistance columns. All constructors and accessors copy their data, so a
// Curve can be shared freely between goroutines for reading and no caller
// can mutate another caller's view.
//
// Undefined entries are represented as NaN. Reductions such as Min and Max
// skip undefined entries and report ErrAllNaN when no defined value remains.
//
// # Usage
//
//	c, err := curve.New(
//		curve.Column{Name: "H_kOe", Values: []float64{2, 1, 0, 1, 2}},
//		curve.Column{Name: "Rh(Ω)", Values: []float64{5, 3, 1, 3, 5}},
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	sorted, err := c.SortBy("H_kOe")
//
// The package also fixes the column names used by the measurement rigs this
// module was written for; they are defaults only, every operation takes the
// column names it works on as parameters.
package curve
