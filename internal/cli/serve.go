package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/classlayout/internal/server"
	"github.com/matzehuels/classlayout/pkg/render"
)

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	cfg := server.DefaultConfig()
	var timeout int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout API over HTTP",
		Long: `Serve the layout API over HTTP.

Routes:
  GET  /healthz
  GET  /version
  POST /v1/layout
  POST /v1/render?format=svg&style=detailed
  POST /v1/layout/batch

Use --redis or --mongo to share the cache between instances.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			layoutCfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			cfg.Layout = layoutCfg
			cfg.Timeout = time.Duration(timeout) * time.Second
			return c.runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	cmd.Flags().Int64Var(&cfg.MaxBodyBytes, "max-body", cfg.MaxBodyBytes, "maximum request body size in bytes")
	cmd.Flags().IntVar(&cfg.Limits.MaxEntities, "max-entities", cfg.Limits.MaxEntities, "maximum entities per diagram (0 = unlimited)")
	cmd.Flags().IntVar(&cfg.Limits.MaxRelationships, "max-relationships", cfg.Limits.MaxRelationships, "maximum relationships per diagram (0 = unlimited)")
	cmd.Flags().IntVar(&cfg.BatchJobs, "batch-jobs", cfg.BatchJobs, "concurrent layouts per batch request")
	cmd.Flags().IntVar(&cfg.MaxBatch, "max-batch", cfg.MaxBatch, "maximum diagrams per batch request")
	cmd.Flags().IntVar(&timeout, "timeout", int(server.DefaultTimeout/time.Second), "request timeout in seconds")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, cfg server.Config) error {
	runner, err := c.newRunner(ctx)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	if !render.HasConverter() {
		c.Logger.Warn("rsvg-convert not found, pdf and png formats are unavailable")
	}

	printInfo("Serving on %s", StyleValue.Render(cfg.Addr))
	return server.New(runner, cfg, c.Logger).ListenAndServe(ctx)
}
