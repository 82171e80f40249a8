package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/classlayout/pkg/diagram"
	errs "github.com/matzehuels/classlayout/pkg/errors"
	"github.com/matzehuels/classlayout/pkg/layout"
	"github.com/matzehuels/classlayout/pkg/pipeline"
)

// layoutFlags holds command-line overrides of the layout configuration.
// Only flags the user set are applied on top of the config file.
type layoutFlags struct {
	gridColumns     int
	crossingPasses  int
	labelIterations int
	curvature       float64
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	def := layout.DefaultConfig()
	cmd.Flags().IntVar(&f.gridColumns, "grid-columns", def.GridColumns, "columns of the grid for entities outside the hierarchy")
	cmd.Flags().IntVar(&f.crossingPasses, "crossing-passes", def.CrossingPasses, "barycenter sweeps for crossing reduction")
	cmd.Flags().IntVar(&f.labelIterations, "label-iterations", def.LabelIterations, "maximum label de-overlap passes")
	cmd.Flags().Float64Var(&f.curvature, "curvature", def.Curvature, "curve bend as a fraction of the segment length")
}

// apply returns cfg with every flag the user set applied.
func (f *layoutFlags) apply(cmd *cobra.Command, cfg layout.Config) layout.Config {
	var opts []layout.Option
	if cmd.Flags().Changed("grid-columns") {
		opts = append(opts, layout.WithGridColumns(f.gridColumns))
	}
	if cmd.Flags().Changed("crossing-passes") {
		opts = append(opts, layout.WithCrossingPasses(f.crossingPasses))
	}
	if cmd.Flags().Changed("label-iterations") {
		opts = append(opts, layout.WithLabelIterations(f.labelIterations))
	}
	if cmd.Flags().Changed("curvature") {
		opts = append(opts, layout.WithCurvature(f.curvature))
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// layoutCommand creates the layout command for computing diagram layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output    string
		refresh   bool
		showStats bool
		flags     layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [diagram.json|diagram.yaml]",
		Short: "Compute the layout of a class diagram",
		Long: `Compute the layout of a class diagram.

The layout command reads a diagram (JSON or YAML) and writes a layout document
(<diagram>.layout.json) with entity positions, relationship routes, label
positions and statistics. The document can be rendered with 'render'.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts := pipeline.Options{
				Config:  flags.apply(cmd, cfg),
				Refresh: refresh,
				Formats: []string{pipeline.FormatJSON},
			}
			return c.runLayout(cmd.Context(), args[0], output, opts, showStats)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even if cached")
	cmd.Flags().BoolVar(&showStats, "stats", false, "print layout statistics")
	flags.register(cmd)

	return cmd
}

// runLayout loads the diagram, computes the layout, and writes the document.
func (c *CLI) runLayout(ctx context.Context, input, output string, opts pipeline.Options, showStats bool) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	d, err := diagram.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load diagram %s: %w", input, err)
	}
	prog.done("loaded diagram", "entities", len(d.Entities), "relationships", len(d.Relationships))

	runner, err := c.newRunner(ctx)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinner(ctx, "Computing layout...")
	spinner.Start()
	res, err := runner.Execute(ctx, d, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()

	outPath := output
	if outPath == "" {
		outPath = outputPath(basePath("", input), pipeline.FormatJSON)
	}
	if err := writeArtifact(outPath, res.Artifacts[pipeline.FormatJSON]); err != nil {
		return err
	}

	printSuccess("Layout complete")
	printFile(outPath)
	printSummary(res, res.CacheInfo.LayoutHit)
	if res.LayoutStats.DroppedRelationships > 0 {
		printWarning("%d relationships reference unknown entities and were dropped", res.LayoutStats.DroppedRelationships)
	}
	if showStats {
		fmt.Println(statsTable(res))
	}
	printNewline()
	printNextStep("Render", appName+" render "+outPath+" -f svg")

	return nil
}

// writeArtifact writes data to path after checking the path is safe.
func writeArtifact(path string, data []byte) error {
	if err := errs.ValidateOutputPath(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	return nil
}
