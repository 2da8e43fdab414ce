package sweep_test

import (
	"fmt"

	"github.com/cwbudde/algo-hyst/curve"
	"github.com/cwbudde/algo-hyst/sweep"
)

func ExampleSplit() {
	c, err := curve.New(
		curve.Column{Name: "H_kOe", Values: []float64{2, 1, 0, 1, 2}},
		curve.Column{Name: "Rh(Ω)", Values: []float64{5, 3, 1, 3, 5}},
	)
	if err != nil {
		panic(err)
	}

	before, after, err := sweep.Split(c, "H_kOe")
	if err != nil {
		panic(err)
	}

	bh, _ := before.Column("H_kOe")
	br, _ := before.Column("Rh(Ω)")
	ah, _ := after.Column("H_kOe")
	ar, _ := after.Column("Rh(Ω)")
	fmt.Println(bh, br)
	fmt.Println(ah, ar)

	// Output:
	// [0 1 2] [1 3 5]
	// [1 2] [3 5]
}

func ExampleMerge() {
	a, err := curve.New(curve.Column{Name: "H_kOe", Values: []float64{0, 1, 2}})
	if err != nil {
		panic(err)
	}
	b, err := curve.New(curve.Column{Name: "H_kOe", Values: []float64{1, 2}})
	if err != nil {
		panic(err)
	}

	m, err := sweep.Merge(a, b, "H_kOe")
	if err != nil {
		panic(err)
	}

	h, _ := m.Column("H_kOe")
	fmt.Println(h)

	// Output:
	// [0 1 1 2 2]
}
