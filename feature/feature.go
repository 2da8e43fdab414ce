package feature

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-hyst/curve"
	"github.com/cwbudde/algo-hyst/sweep"
)

var (
	// ErrFraction reports a fractional position outside [0, 1].
	ErrFraction = errors.New("feature: fraction outside [0, 1]")
	// ErrTooShort reports a branch with too few samples for a derivative.
	ErrTooShort = errors.New("feature: too few samples for a derivative")
)

// DefaultFraction is the fractional position Extract uses when no
// WithFraction option is given: the middle of each branch.
const DefaultFraction = 0.5

// Config defines the column names and fractional position used by Extract.
type Config struct {
	FieldColumn string
	ValueColumn string
	Fraction    float64
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the measurement-file defaults.
func DefaultConfig() Config {
	return Config{
		FieldColumn: curve.DefaultFieldColumn,
		ValueColumn: curve.DefaultValueColumn,
		Fraction:    DefaultFraction,
	}
}

// WithColumns sets the field and value column names. An empty name keeps
// its default.
func WithColumns(fieldCol, valueCol string) Option {
	return func(cfg *Config) {
		if fieldCol != "" {
			cfg.FieldColumn = fieldCol
		}
		if valueCol != "" {
			cfg.ValueColumn = valueCol
		}
	}
}

// WithFraction sets the fractional position used by the pointwise metrics.
// The value is validated by the metrics themselves.
func WithFraction(fraction float64) Option {
	return func(cfg *Config) {
		cfg.Fraction = fraction
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Set bundles the full feature battery of one split sweep.
type Set struct {
	PseudoArea     float64
	ChangeRateMean float64
	ChangeRateVar  float64
	ZeroCrossings  int
	ValueRange     float64
	GradientBefore float64
	GradientAfter  float64
	YDeviation     float64
	YRatio         float64
}

// Extract computes the full battery over a split sweep. The change-rate
// statistics run over the re-merged sweep; the gradients are evaluated per
// branch at the configured fraction. Both branches must be non-empty.
func Extract(before, after *curve.Curve, opts ...Option) (*Set, error) {
	cfg := ApplyOptions(opts...)

	s := &Set{}
	var err error
	if s.PseudoArea, err = PseudoArea(before, after, cfg.ValueColumn); err != nil {
		return nil, err
	}

	merged, err := sweep.Merge(before, after, cfg.FieldColumn)
	if err != nil {
		return nil, err
	}
	if s.ChangeRateMean, s.ChangeRateVar, err = ChangeRateStats(merged, cfg.ValueColumn); err != nil {
		return nil, err
	}

	if s.ZeroCrossings, err = ZeroCrossings(before, after, cfg.ValueColumn); err != nil {
		return nil, err
	}
	if s.ValueRange, err = ValueRange(before, after, cfg.FieldColumn, cfg.ValueColumn); err != nil {
		return nil, err
	}
	if s.GradientBefore, err = GradientAtFraction(before, cfg.Fraction, cfg.FieldColumn, cfg.ValueColumn); err != nil {
		return nil, err
	}
	if s.GradientAfter, err = GradientAtFraction(after, cfg.Fraction, cfg.FieldColumn, cfg.ValueColumn); err != nil {
		return nil, err
	}
	if s.YDeviation, err = YDeviation(before, after, cfg.FieldColumn, cfg.ValueColumn, cfg.Fraction); err != nil {
		return nil, err
	}
	if s.YRatio, err = YRatio(before, after, cfg.FieldColumn, cfg.ValueColumn, cfg.Fraction); err != nil {
		return nil, err
	}
	return s, nil
}

// combinedMin returns the smallest defined value across both slices.
func combinedMin(a, b []float64, col string) (float64, error) {
	base := math.NaN()
	for _, s := range [][]float64{a, b} {
		for _, v := range s {
			if math.IsNaN(v) {
				continue
			}
			if math.IsNaN(base) || v < base {
				base = v
			}
		}
	}
	if math.IsNaN(base) {
		return 0, fmt.Errorf("%w: %q", curve.ErrAllNaN, col)
	}
	return base, nil
}

// fractionIndex maps a fraction in [0, 1] to a sample index in [0, n-1],
// rounding half away from zero.
func fractionIndex(fraction float64, n int) int {
	return int(math.Round(fraction * float64(n-1)))
}
