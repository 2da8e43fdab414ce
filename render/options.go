package render

import "github.com/cwbudde/algo-hyst/curve"

// Config holds the chart settings.
type Config struct {
	// FieldColumn is plotted on the x axis.
	FieldColumn string
	// ValueColumn is plotted on the left y axis.
	ValueColumn string
	// DerivativeColumn is plotted on the right y axis. Empty disables the
	// secondary axis.
	DerivativeColumn string
	// Width and Height are the output size in pixels.
	Width, Height int
	// Title is drawn above the plot area.
	Title string
}

// DefaultConfig returns the settings used when no options are given.
func DefaultConfig() Config {
	return Config{
		FieldColumn:      curve.DefaultFieldColumn,
		ValueColumn:      curve.DefaultValueColumn,
		DerivativeColumn: curve.DefaultDerivativeColumn,
		Width:            800,
		Height:           800,
	}
}

// Option adjusts the chart settings.
type Option func(*Config)

// WithColumns selects the plotted columns. Empty names keep the defaults;
// derivative may be cleared via WithoutDerivative.
func WithColumns(field, value string) Option {
	return func(cfg *Config) {
		if field != "" {
			cfg.FieldColumn = field
		}
		if value != "" {
			cfg.ValueColumn = value
		}
	}
}

// WithDerivative selects the column for the secondary axis.
func WithDerivative(name string) Option {
	return func(cfg *Config) {
		if name != "" {
			cfg.DerivativeColumn = name
		}
	}
}

// WithoutDerivative drops the secondary axis.
func WithoutDerivative() Option {
	return func(cfg *Config) {
		cfg.DerivativeColumn = ""
	}
}

// WithSize sets the output size in pixels. Non-positive values keep the
// defaults.
func WithSize(width, height int) Option {
	return func(cfg *Config) {
		if width > 0 {
			cfg.Width = width
		}
		if height > 0 {
			cfg.Height = height
		}
	}
}

// WithTitle sets the chart title.
func WithTitle(title string) Option {
	return func(cfg *Config) {
		cfg.Title = title
	}
}

// ApplyOptions resolves opts against DefaultConfig.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
