package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/classlayout/pkg/diagram"
	"github.com/matzehuels/classlayout/pkg/pipeline"
	"github.com/matzehuels/classlayout/pkg/render/sink"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string   // output file (single format) or base path (multiple)
	formats []string // output formats: json, svg, dot, nodelink, pdf, png
	style   string   // entity style: detailed or compact
	refresh bool     // recompute even if cached
}

// renderCommand creates the render command for generating artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		flags      layoutFlags
	)
	opts := renderOpts{style: pipeline.DefaultStyle}

	cmd := &cobra.Command{
		Use:   "render [diagram.json|diagram.yaml|diagram.layout.json]",
		Short: "Render a class diagram or a layout document",
		Long: `Render a class diagram or a layout document.

The input is either a diagram, which is laid out first, or a layout document
written by 'layout' (*.layout.json), which is rendered as is.

Formats:
  svg       standalone SVG drawn from the computed positions
  dot       Graphviz DOT source with levels as ranks
  nodelink  SVG produced by Graphviz from the DOT source
  json      layout document
  pdf, png  converted from the SVG (requires rsvg-convert)`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = pipeline.ParseFormats(formatsStr)
			if len(opts.formats) == 0 {
				opts.formats = []string{pipeline.FormatSVG}
			}
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			if err := pipeline.ValidateStyle(opts.style); err != nil {
				return err
			}
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], pipeline.Options{
				Config:  flags.apply(cmd, cfg),
				Refresh: opts.refresh,
				Formats: opts.formats,
				Style:   opts.style,
			}, opts.output)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, nodelink, json, pdf, png (comma-separated)")
	cmd.Flags().StringVar(&opts.style, "style", opts.style, "entity style: detailed (default), compact")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even if cached")
	flags.register(cmd)

	return cmd
}

// isLayoutDocument reports whether input names a layout document rather
// than a diagram.
func isLayoutDocument(input string) bool {
	return strings.HasSuffix(strings.ToLower(input), pipeline.Extensions[pipeline.FormatJSON])
}

// runRender lays out or loads input and writes one file per format.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, output string) error {
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(ctx)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	res, err := c.loadResult(ctx, runner, input, opts)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	spinner := newSpinner(ctx, fmt.Sprintf("Rendering %s...", strings.Join(opts.Formats, ", ")))
	spinner.Start()
	artifacts, cached, err := runner.RenderWithCacheInfo(ctx, res, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()
	prog.done("rendered", "formats", opts.Formats, "cached", cached)

	base := basePath(output, input)
	var written []string
	for _, format := range opts.Formats {
		path := outputPath(base, format)
		if output != "" && len(opts.Formats) == 1 {
			path = output
		}
		if err := writeArtifact(path, artifacts[format]); err != nil {
			return err
		}
		written = append(written, path)
	}

	printSuccess("Rendered %d %s", len(written), plural(len(written), "file", "files"))
	for _, path := range slices.Sorted(slices.Values(written)) {
		printFile(path)
	}
	printSummary(res, res.CacheInfo.LayoutHit && cached)
	return nil
}

// loadResult returns the layout of input: decoded from a layout document,
// or computed through the runner from a diagram.
func (c *CLI) loadResult(ctx context.Context, runner *pipeline.Runner, input string, opts pipeline.Options) (*pipeline.Result, error) {
	if isLayoutDocument(input) {
		doc, err := sink.ReadLayoutFile(input)
		if err != nil {
			return nil, fmt.Errorf("load layout %s: %w", input, err)
		}
		if err := opts.ValidateForLayout(); err != nil {
			return nil, err
		}
		printInfo("Rendering layout document %s", StyleValue.Render(input))
		res, err := pipeline.ResultFromDocument(doc, opts.Config)
		if err != nil {
			return nil, err
		}
		res.CacheInfo.LayoutHit = true
		return res, nil
	}

	d, err := diagram.ReadFile(input)
	if err != nil {
		return nil, fmt.Errorf("load diagram %s: %w", input, err)
	}
	return runner.Layout(ctx, d, opts)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
