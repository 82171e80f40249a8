// Package pipeline provides the layout → render pipeline shared by the CLI
// and the HTTP API.
//
// By centralizing caching, logging and format dispatch here, both entry
// points produce identical artifacts for identical input.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Layout: compute entity boxes, relationship routes and label positions
//  2. Render: encode the layout in one or more formats (JSON, SVG, DOT, ...)
//
// Each stage can be run independently or as part of the complete pipeline.
// Both stages are cached by content: the layout key is derived from the
// diagram bytes and the layout configuration, the artifact key from the
// layout bytes, the format and the style.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, d, pipeline.Options{
//	    Formats: []string{"json", "svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	result, err := runner.Layout(ctx, d, opts)
//	artifacts, err := runner.Render(ctx, result, opts)
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/classlayout/pkg/cache"
	errs "github.com/matzehuels/classlayout/pkg/errors"
	"github.com/matzehuels/classlayout/pkg/layout"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

// Format constants for output formats.
const (
	FormatJSON     = "json"
	FormatSVG      = "svg"
	FormatDOT      = "dot"
	FormatNodelink = "nodelink"
	FormatPDF      = "pdf"
	FormatPNG      = "png"
)

// Style constants for entity rendering.
const (
	StyleDetailed = "detailed"
	StyleCompact  = "compact"
)

const (
	// DefaultStyle draws every member row.
	DefaultStyle = StyleDetailed

	// DefaultPNGScale is the resolution multiplier for PNG output.
	DefaultPNGScale = 2.0
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON:     true,
	FormatSVG:      true,
	FormatDOT:      true,
	FormatNodelink: true,
	FormatPDF:      true,
	FormatPNG:      true,
}

// ValidStyles is the set of supported entity styles.
var ValidStyles = map[string]bool{
	StyleDetailed: true,
	StyleCompact:  true,
}

// Extensions maps each format to the file extension used by the CLI.
var Extensions = map[string]string{
	FormatJSON:     ".layout.json",
	FormatSVG:      ".svg",
	FormatDOT:      ".dot",
	FormatNodelink: ".nodelink.svg",
	FormatPDF:      ".pdf",
	FormatPNG:      ".png",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options. A zero Config is replaced by layout.DefaultConfig.
	Config  layout.Config `json:"config"`
	Refresh bool          `json:"refresh,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Style   string   `json:"style,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// DiagramHash is the content hash of the input diagram.
	DiagramHash string

	// LayoutHash is the content hash of the computed layout. Artifact cache
	// keys derive from it.
	LayoutHash string

	// Config is the configuration the layout was computed with.
	Config layout.Config

	// Layout is the computed geometry.
	Layout layout.DiagramLayout

	// Labels are the resolved relationship label positions.
	Labels []layout.LabelPosition

	// LayoutStats and LabelStats describe the computed layout.
	LayoutStats layout.Stats
	LabelStats  layout.LabelStats

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errs.New(errs.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: json, svg, dot, nodelink, pdf, png)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if !ValidStyles[style] {
		return errs.New(errs.ErrCodeInvalidInput,
			"invalid style: %q (must be one of: detailed, compact)", style)
	}
	return nil
}

// ParseFormats splits a comma-separated format list, trimming blanks and
// dropping duplicates while keeping the first occurrence order.
func ParseFormats(s string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks all fields and applies defaults for the full
// pipeline. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Config == (layout.Config{}) {
		o.Config = layout.DefaultConfig()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout sets defaults and validates the layout configuration.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	return o.Config.Validate()
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	return ValidateStyle(o.Style)
}

// IsCompact reports whether entities are drawn without member rows.
func (o *Options) IsCompact() bool {
	return o.Style == StyleCompact
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{Config: o.Config}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format: format,
		Style:  o.Style,
	}
}
