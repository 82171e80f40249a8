package layout

import (
	"os"

	"github.com/BurntSushi/toml"

	errs "github.com/matzehuels/classlayout/pkg/errors"
	"github.com/matzehuels/classlayout/pkg/hierarchy"
)

// Default layout constants. All distances are in canvas units (pixels).
const (
	DefaultCharWidth       = 8.0
	DefaultHeaderHeight    = 40.0
	DefaultRowHeight       = 20.0
	DefaultPadding         = 10.0
	DefaultMinWidth        = 150.0
	DefaultMargin          = 50.0
	DefaultTitleHeight     = 40.0
	DefaultGridColumns     = 3
	DefaultLabelCharWidth  = 7.0
	DefaultLabelHeight     = 16.0
	DefaultLabelOffset     = 10.0
	DefaultLabelStep       = 20.0
	DefaultLabelIterations = 10
	DefaultMaxLabels       = 2000
)

// Config holds every tunable of the layout engine. The zero value is not
// usable; start from [DefaultConfig].
type Config struct {
	// Entity sizing.
	CharWidth    float64 `toml:"char_width" json:"charWidth"`
	HeaderHeight float64 `toml:"header_height" json:"headerHeight"`
	RowHeight    float64 `toml:"row_height" json:"rowHeight"`
	Padding      float64 `toml:"padding" json:"padding"`
	MinWidth     float64 `toml:"min_width" json:"minWidth"`

	// Spacing between boxes and around the canvas.
	Margin      float64 `toml:"margin" json:"margin"`
	TitleHeight float64 `toml:"title_height" json:"titleHeight"`
	GridColumns int     `toml:"grid_columns" json:"gridColumns"`

	// CrossingPasses is the number of barycenter sweeps.
	CrossingPasses int `toml:"crossing_passes" json:"crossingPasses"`

	// Curvature bends relationship curves away from the straight segment by
	// this fraction of the segment length. Zero draws straight lines.
	Curvature float64 `toml:"curvature" json:"curvature"`

	// Label placement.
	LabelCharWidth  float64 `toml:"label_char_width" json:"labelCharWidth"`
	LabelHeight     float64 `toml:"label_height" json:"labelHeight"`
	LabelOffset     float64 `toml:"label_offset" json:"labelOffset"`
	LabelStep       float64 `toml:"label_step" json:"labelStep"`
	LabelIterations int     `toml:"label_iterations" json:"labelIterations"`

	// MaxLabels bounds the quadratic overlap resolution. Above it labels keep
	// their initial positions. Zero disables the limit.
	MaxLabels int `toml:"max_labels" json:"maxLabels"`
}

// DefaultConfig returns the standard layout configuration.
func DefaultConfig() Config {
	return Config{
		CharWidth:       DefaultCharWidth,
		HeaderHeight:    DefaultHeaderHeight,
		RowHeight:       DefaultRowHeight,
		Padding:         DefaultPadding,
		MinWidth:        DefaultMinWidth,
		Margin:          DefaultMargin,
		TitleHeight:     DefaultTitleHeight,
		GridColumns:     DefaultGridColumns,
		CrossingPasses:  hierarchy.DefaultPasses,
		LabelCharWidth:  DefaultLabelCharWidth,
		LabelHeight:     DefaultLabelHeight,
		LabelOffset:     DefaultLabelOffset,
		LabelStep:       DefaultLabelStep,
		LabelIterations: DefaultLabelIterations,
		MaxLabels:       DefaultMaxLabels,
	}
}

// Validate checks that the configuration can produce a layout.
func (c Config) Validate() error {
	positive := []struct {
		name  string
		value float64
	}{
		{"char_width", c.CharWidth},
		{"header_height", c.HeaderHeight},
		{"row_height", c.RowHeight},
		{"min_width", c.MinWidth},
		{"margin", c.Margin},
		{"label_char_width", c.LabelCharWidth},
		{"label_height", c.LabelHeight},
		{"label_step", c.LabelStep},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return errs.New(errs.ErrCodeInvalidConfig, "%s must be positive, got %v", p.name, p.value)
		}
	}

	nonNegative := []struct {
		name  string
		value float64
	}{
		{"padding", c.Padding},
		{"title_height", c.TitleHeight},
		{"label_offset", c.LabelOffset},
		{"crossing_passes", float64(c.CrossingPasses)},
		{"label_iterations", float64(c.LabelIterations)},
		{"max_labels", float64(c.MaxLabels)},
	}
	for _, p := range nonNegative {
		if p.value < 0 {
			return errs.New(errs.ErrCodeInvalidConfig, "%s must not be negative, got %v", p.name, p.value)
		}
	}

	if c.GridColumns < 1 {
		return errs.New(errs.ErrCodeInvalidConfig, "grid_columns must be at least 1, got %d", c.GridColumns)
	}
	return nil
}

// LoadConfig reads a TOML file on top of [DefaultConfig]. Keys missing from
// the file keep their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errs.Wrap(errs.ErrCodeFileNotFound, err, "config %s", path)
		}
		return Config{}, errs.Wrap(errs.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errs.Wrap(errs.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Option adjusts the configuration used by [Layout].
type Option func(*Config)

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) Option {
	return func(c *Config) { *c = cfg }
}

// WithGridColumns sets the number of columns of the disconnected grid.
func WithGridColumns(n int) Option {
	return func(c *Config) { c.GridColumns = n }
}

// WithCrossingPasses sets the number of barycenter sweeps.
func WithCrossingPasses(n int) Option {
	return func(c *Config) { c.CrossingPasses = n }
}

// WithLabelIterations sets the maximum number of label resolution passes.
func WithLabelIterations(n int) Option {
	return func(c *Config) { c.LabelIterations = n }
}

// WithCurvature sets the curve bend factor.
func WithCurvature(f float64) Option {
	return func(c *Config) { c.Curvature = f }
}
