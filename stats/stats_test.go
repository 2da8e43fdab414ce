package stats

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-hyst/curve"
)

const tolerance = 1e-12

func mustCurve(t *testing.T, field, value []float64) *curve.Curve {
	t.Helper()
	c, err := curve.New(
		curve.Column{Name: "H", Values: field},
		curve.Column{Name: "R", Values: value},
	)
	if err != nil {
		t.Fatalf("curve.New() error = %v", err)
	}
	return c
}

func TestDescribe(t *testing.T) {
	c := mustCurve(t, []float64{0, 1, 2, 3}, []float64{1, -1, 2, -2})

	s, err := Describe(c, "H", "R")
	if err != nil {
		t.Fatalf("Describe() error = %v", err)
	}

	if s.Rows != 4 || s.Defined != 4 || s.Missing != 0 {
		t.Errorf("counts = %d/%d/%d, want 4/4/0", s.Rows, s.Defined, s.Missing)
	}
	if math.Abs(s.Mean) > tolerance {
		t.Errorf("Mean = %v, want 0", s.Mean)
	}
	if math.Abs(s.Variance-2.5) > tolerance {
		t.Errorf("Variance = %v, want 2.5", s.Variance)
	}
	if math.Abs(s.Skewness) > tolerance {
		t.Errorf("Skewness = %v, want 0", s.Skewness)
	}
	if math.Abs(s.Kurtosis-(-1.64)) > tolerance {
		t.Errorf("Kurtosis = %v, want -1.64", s.Kurtosis)
	}
	if s.Min != -2 || s.MinField != 3 {
		t.Errorf("Min = %v at %v, want -2 at 3", s.Min, s.MinField)
	}
	if s.Max != 2 || s.MaxField != 2 {
		t.Errorf("Max = %v at %v, want 2 at 2", s.Max, s.MaxField)
	}
	if s.Range != 4 {
		t.Errorf("Range = %v, want 4", s.Range)
	}
	if s.ZeroCrossings != 3 {
		t.Errorf("ZeroCrossings = %d, want 3", s.ZeroCrossings)
	}
}

func TestDescribeSkipsNaN(t *testing.T) {
	c := mustCurve(t, []float64{10, 20, 30}, []float64{1, math.NaN(), 3})

	s, err := Describe(c, "H", "R")
	if err != nil {
		t.Fatalf("Describe() error = %v", err)
	}

	if s.Rows != 3 || s.Defined != 2 || s.Missing != 1 {
		t.Errorf("counts = %d/%d/%d, want 3/2/1", s.Rows, s.Defined, s.Missing)
	}
	if s.Mean != 2 {
		t.Errorf("Mean = %v, want 2", s.Mean)
	}
	if s.Min != 1 || s.MinField != 10 || s.Max != 3 || s.MaxField != 30 {
		t.Errorf("extrema = %v at %v, %v at %v, want 1 at 10, 3 at 30",
			s.Min, s.MinField, s.Max, s.MaxField)
	}
	// The gap does not fake a sign flip.
	if s.ZeroCrossings != 0 {
		t.Errorf("ZeroCrossings = %d, want 0", s.ZeroCrossings)
	}
}

func TestDescribeAllNaN(t *testing.T) {
	nan := math.NaN()
	c := mustCurve(t, []float64{1, 2, 3}, []float64{nan, nan, nan})

	s, err := Describe(c, "H", "R")
	if err != nil {
		t.Fatalf("Describe() error = %v", err)
	}

	if s.Rows != 3 || s.Defined != 0 || s.Missing != 3 {
		t.Errorf("counts = %d/%d/%d, want 3/0/3", s.Rows, s.Defined, s.Missing)
	}
	for name, v := range map[string]float64{
		"Mean": s.Mean, "Variance": s.Variance, "Min": s.Min, "Max": s.Max,
		"MinField": s.MinField, "MaxField": s.MaxField, "Range": s.Range,
	} {
		if !math.IsNaN(v) {
			t.Errorf("%s = %v, want NaN", name, v)
		}
	}
}

func TestDescribeEmpty(t *testing.T) {
	c := mustCurve(t, nil, nil)

	s, err := Describe(c, "H", "R")
	if err != nil {
		t.Fatalf("Describe() error = %v", err)
	}
	if s.Rows != 0 || s.Defined != 0 || s.Missing != 0 {
		t.Errorf("counts = %d/%d/%d, want 0/0/0", s.Rows, s.Defined, s.Missing)
	}
	if !math.IsNaN(s.Mean) {
		t.Errorf("Mean = %v, want NaN", s.Mean)
	}
}

func TestDescribeMissingColumn(t *testing.T) {
	c := mustCurve(t, []float64{1}, []float64{2})

	if _, err := Describe(c, "H", "X"); err == nil {
		t.Error("Describe() with a missing column succeeded")
	}
}

func TestAccumulatorMatchesDescribe(t *testing.T) {
	c1 := mustCurve(t, []float64{0, 1, 2}, []float64{1, -1, 2})
	c2 := mustCurve(t, []float64{3, 4}, []float64{-2, 5})
	all := mustCurve(t, []float64{0, 1, 2, 3, 4}, []float64{1, -1, 2, -2, 5})

	var acc Accumulator
	if err := acc.Add(c1, "H", "R"); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := acc.Add(c2, "H", "R"); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	want, err := Describe(all, "H", "R")
	if err != nil {
		t.Fatalf("Describe() error = %v", err)
	}

	// Sample order is identical, so every field matches bit for bit.
	if got := acc.Result(); got != *want {
		t.Errorf("accumulated = %+v\nwant %+v", got, *want)
	}
}

func TestAccumulatorCountsBoundaryCrossing(t *testing.T) {
	c1 := mustCurve(t, []float64{0}, []float64{2})
	c2 := mustCurve(t, []float64{1}, []float64{-2})

	var acc Accumulator
	if err := acc.Add(c1, "H", "R"); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := acc.Add(c2, "H", "R"); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	if got := acc.Result().ZeroCrossings; got != 1 {
		t.Errorf("ZeroCrossings = %d, want 1 across the sweep boundary", got)
	}
}

func TestAccumulatorReset(t *testing.T) {
	c := mustCurve(t, []float64{0, 1}, []float64{5, 7})

	var acc Accumulator
	if err := acc.Add(c, "H", "R"); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	acc.Reset()

	s := acc.Result()
	if s.Rows != 0 || s.Defined != 0 {
		t.Errorf("after Reset: counts = %d/%d, want 0/0", s.Rows, s.Defined)
	}
}
