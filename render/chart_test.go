package render

import (
	"bytes"
	"errors"
	"image/png"
	"math"
	"testing"

	"github.com/cwbudde/algo-hyst/curve"
)

func testCurve(t *testing.T) *curve.Curve {
	t.Helper()
	c, err := curve.New(
		curve.Column{Name: curve.DefaultFieldColumn, Values: []float64{-2, -1, 0, 1, 2}},
		curve.Column{Name: curve.DefaultValueColumn, Values: []float64{5.5, 3.3, 1.1, 3.3, 5.5}},
		curve.Column{Name: curve.DefaultDerivativeColumn, Values: []float64{0.1, 0.2, math.NaN(), 0.4, 0.5}},
	)
	if err != nil {
		t.Fatalf("curve.New() error = %v", err)
	}
	return c
}

func decodeSize(t *testing.T, buf *bytes.Buffer) (int, int) {
	t.Helper()
	cfg, err := png.DecodeConfig(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("png.DecodeConfig() error = %v", err)
	}
	return cfg.Width, cfg.Height
}

func TestChart(t *testing.T) {
	var buf bytes.Buffer
	if err := Chart(&buf, testCurve(t), WithTitle("X=1, Y=2, CAD=3")); err != nil {
		t.Fatalf("Chart() error = %v", err)
	}

	w, h := decodeSize(t, &buf)
	if w != 800 || h != 800 {
		t.Errorf("size = %dx%d, want 800x800", w, h)
	}
}

func TestChartCustomSize(t *testing.T) {
	var buf bytes.Buffer
	if err := Chart(&buf, testCurve(t), WithSize(320, 240)); err != nil {
		t.Fatalf("Chart() error = %v", err)
	}

	w, h := decodeSize(t, &buf)
	if w != 320 || h != 240 {
		t.Errorf("size = %dx%d, want 320x240", w, h)
	}
}

func TestChartWithoutDerivative(t *testing.T) {
	c, err := curve.New(
		curve.Column{Name: "H", Values: []float64{0, 1, 2}},
		curve.Column{Name: "R", Values: []float64{1, 2, 3}},
	)
	if err != nil {
		t.Fatalf("curve.New() error = %v", err)
	}

	var buf bytes.Buffer
	err = Chart(&buf, c, WithColumns("H", "R"), WithoutDerivative())
	if err != nil {
		t.Fatalf("Chart() error = %v", err)
	}
	if buf.Len() == 0 {
		t.Error("Chart() wrote nothing")
	}
}

func TestChartSinglePoint(t *testing.T) {
	c, err := curve.New(
		curve.Column{Name: "H", Values: []float64{1}},
		curve.Column{Name: "R", Values: []float64{2}},
	)
	if err != nil {
		t.Fatalf("curve.New() error = %v", err)
	}

	var buf bytes.Buffer
	if err := Chart(&buf, c, WithColumns("H", "R"), WithoutDerivative()); err != nil {
		t.Fatalf("Chart() error = %v", err)
	}
}

func TestChartErrors(t *testing.T) {
	c, err := curve.New(
		curve.Column{Name: "H", Values: []float64{0, 1}},
		curve.Column{Name: "R", Values: []float64{math.NaN(), math.Inf(1)}},
	)
	if err != nil {
		t.Fatalf("curve.New() error = %v", err)
	}

	var buf bytes.Buffer
	if err := Chart(&buf, c, WithColumns("H", "R"), WithoutDerivative()); !errors.Is(err, ErrNoPoints) {
		t.Errorf("no finite values: error = %v, want %v", err, ErrNoPoints)
	}
	if err := Chart(&buf, c, WithColumns("H", "missing"), WithoutDerivative()); !errors.Is(err, curve.ErrColumnMissing) {
		t.Errorf("missing column: error = %v, want %v", err, curve.ErrColumnMissing)
	}

	finite, err := curve.New(
		curve.Column{Name: "H", Values: []float64{0, 1}},
		curve.Column{Name: "R", Values: []float64{2, 3}},
	)
	if err != nil {
		t.Fatalf("curve.New() error = %v", err)
	}
	if err := Chart(&buf, finite, WithColumns("H", "R")); !errors.Is(err, curve.ErrColumnMissing) {
		t.Errorf("missing derivative: error = %v, want %v", err, curve.ErrColumnMissing)
	}
}

func TestPlaceholder(t *testing.T) {
	var buf bytes.Buffer
	if err := Placeholder(&buf, WithSize(64, 48)); err != nil {
		t.Fatalf("Placeholder() error = %v", err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 48 {
		t.Fatalf("size = %dx%d, want 64x48", b.Dx(), b.Dy())
	}

	if r, g, b, _ := img.At(32, 24).RGBA(); r>>8 != 0xFF || g>>8 != 0xFF || b>>8 != 0xFF {
		t.Errorf("center = %v, want white", img.At(32, 24))
	}
	if r, _, _, _ := img.At(0, 0).RGBA(); r>>8 != 0xD0 {
		t.Errorf("corner = %v, want frame gray", img.At(0, 0))
	}
}
