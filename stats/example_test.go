package stats_test

import (
	"fmt"

	"github.com/cwbudde/algo-hyst/curve"
	"github.com/cwbudde/algo-hyst/stats"
)

func ExampleDescribe() {
	c, err := curve.New(
		curve.Column{Name: "H_kOe", Values: []float64{-2, -1, 0, 1, 2}},
		curve.Column{Name: "Rh(Ω)", Values: []float64{5, 3, 1, 3, 5}},
	)
	if err != nil {
		panic(err)
	}

	s, err := stats.Describe(c, "H_kOe", "Rh(Ω)")
	if err != nil {
		panic(err)
	}
	fmt.Printf("defined=%d range=%.1f min at H=%.1f\n", s.Defined, s.Range, s.MinField)

	// Output:
	// defined=5 range=4.0 min at H=0.0
}

func ExampleAccumulator() {
	first, err := curve.New(
		curve.Column{Name: "H", Values: []float64{0, 1}},
		curve.Column{Name: "R", Values: []float64{1, 2}},
	)
	if err != nil {
		panic(err)
	}
	second, err := curve.New(
		curve.Column{Name: "H", Values: []float64{2, 3}},
		curve.Column{Name: "R", Values: []float64{3, 6}},
	)
	if err != nil {
		panic(err)
	}

	var acc stats.Accumulator
	for _, c := range []*curve.Curve{first, second} {
		if err := acc.Add(c, "H", "R"); err != nil {
			panic(err)
		}
	}

	s := acc.Result()
	fmt.Printf("rows=%d mean=%.1f\n", s.Rows, s.Mean)

	// Output:
	// rows=4 mean=3.0
}
