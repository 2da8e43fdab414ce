package feature

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-hyst/curve"
	"github.com/cwbudde/algo-hyst/sweep"
)

const tolerance = 1e-9

func almostEqual(a, b float64) bool {
	if math.IsNaN(a) && math.IsNaN(b) {
		return true
	}
	if math.IsInf(a, 0) || math.IsInf(b, 0) {
		return a == b
	}
	return math.Abs(a-b) <= tolerance
}

func mustBranch(t *testing.T, field, value []float64) *curve.Curve {
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

func TestApplyOptions(t *testing.T) {
	cfg := ApplyOptions()
	if cfg.FieldColumn != curve.DefaultFieldColumn {
		t.Errorf("FieldColumn = %q, want %q", cfg.FieldColumn, curve.DefaultFieldColumn)
	}
	if cfg.ValueColumn != curve.DefaultValueColumn {
		t.Errorf("ValueColumn = %q, want %q", cfg.ValueColumn, curve.DefaultValueColumn)
	}
	if cfg.Fraction != DefaultFraction {
		t.Errorf("Fraction = %v, want %v", cfg.Fraction, DefaultFraction)
	}

	cfg = ApplyOptions(WithColumns("H", ""), WithFraction(0))
	if cfg.FieldColumn != "H" {
		t.Errorf("FieldColumn = %q, want H", cfg.FieldColumn)
	}
	if cfg.ValueColumn != curve.DefaultValueColumn {
		t.Errorf("empty value name overrode the default: %q", cfg.ValueColumn)
	}
	if cfg.Fraction != 0 {
		t.Errorf("Fraction = %v, want 0", cfg.Fraction)
	}
}

func TestExtract(t *testing.T) {
	c, err := curve.New(
		curve.Column{Name: curve.DefaultFieldColumn, Values: []float64{2, 1, 0, 1, 2}},
		curve.Column{Name: curve.DefaultValueColumn, Values: []float64{5, 3, 1, 3, 5}},
	)
	if err != nil {
		t.Fatalf("curve.New() error = %v", err)
	}
	before, after, err := sweep.Split(c, curve.DefaultFieldColumn)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}

	set, err := Extract(before, after)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if set.PseudoArea < 0 || set.PseudoArea > 6 {
		t.Errorf("PseudoArea = %v, want within [0, 6]", set.PseudoArea)
	}
	// Merged values are [1 3 3 5 5]; rates are [2 0 2/3 0].
	if !almostEqual(set.ChangeRateMean, 2.0/3) {
		t.Errorf("ChangeRateMean = %v, want %v", set.ChangeRateMean, 2.0/3)
	}
	if !almostEqual(set.ChangeRateVar, 8.0/9) {
		t.Errorf("ChangeRateVar = %v, want %v", set.ChangeRateVar, 8.0/9)
	}
	if set.ZeroCrossings != 0 {
		t.Errorf("ZeroCrossings = %d, want 0", set.ZeroCrossings)
	}
	if !almostEqual(set.ValueRange, 4) {
		t.Errorf("ValueRange = %v, want 4", set.ValueRange)
	}
	if !almostEqual(set.GradientBefore, 2) {
		t.Errorf("GradientBefore = %v, want 2", set.GradientBefore)
	}
	if !almostEqual(set.GradientAfter, 2) {
		t.Errorf("GradientAfter = %v, want 2", set.GradientAfter)
	}
	if !almostEqual(set.YDeviation, 0) {
		t.Errorf("YDeviation = %v, want 0", set.YDeviation)
	}
	if !almostEqual(set.YRatio, 1) {
		t.Errorf("YRatio = %v, want 1", set.YRatio)
	}
}

func TestExtractCustomColumns(t *testing.T) {
	c, err := curve.New(
		curve.Column{Name: "field", Values: []float64{1, 0, 1}},
		curve.Column{Name: "val", Values: []float64{4, 2, 4}},
	)
	if err != nil {
		t.Fatalf("curve.New() error = %v", err)
	}
	before, after, err := sweep.Split(c, "field")
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}

	set, err := Extract(before, after, WithColumns("field", "val"))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if !almostEqual(set.ValueRange, 2) {
		t.Errorf("ValueRange = %v, want 2", set.ValueRange)
	}
}

func TestExtractEmptyBranch(t *testing.T) {
	// A sweep whose turning point is the last sample leaves the after
	// branch empty; the battery has no meaningful pseudo-area then.
	c, err := curve.New(
		curve.Column{Name: curve.DefaultFieldColumn, Values: []float64{2, 1, 0}},
		curve.Column{Name: curve.DefaultValueColumn, Values: []float64{5, 3, 1}},
	)
	if err != nil {
		t.Fatalf("curve.New() error = %v", err)
	}
	before, after, err := sweep.Split(c, curve.DefaultFieldColumn)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}

	if _, err := Extract(before, after); !errors.Is(err, curve.ErrEmpty) {
		t.Errorf("Extract() error = %v, want %v", err, curve.ErrEmpty)
	}
}
