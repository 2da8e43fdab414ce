package smooth_test

import (
	"fmt"

	"github.com/cwbudde/algo-hyst/curve"
	"github.com/cwbudde/algo-hyst/smooth"
)

func ExampleMovingAverage() {
	c, err := curve.New(
		curve.Column{Name: "Rh(Ω)", Values: []float64{0, 1, 2, 3, 4}},
	)
	if err != nil {
		panic(err)
	}

	out, err := smooth.MovingAverage(c, "Rh(Ω)", 3)
	if err != nil {
		panic(err)
	}

	ma, err := out.Column("Rh(Ω)" + smooth.MASuffix)
	if err != nil {
		panic(err)
	}
	fmt.Println(ma)
	// Output:
	// [NaN 1 2 3 NaN]
}
