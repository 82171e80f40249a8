package pipeline

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/classlayout/pkg/diagram"
)

// LayoutBatch lays out independent diagrams concurrently with at most jobs
// layouts in flight. A non-positive jobs uses GOMAXPROCS. Results are
// returned in input order. The first failure cancels the remaining work and
// is returned with the index of the failing diagram.
func (r *Runner) LayoutBatch(ctx context.Context, diagrams []diagram.Diagram, opts Options, jobs int) ([]*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return nil, err
	}
	if len(diagrams) == 0 {
		return nil, nil
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Each goroutine writes only its own index.
	results := make([]*Result, len(diagrams))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(diagrams)))

	for i, d := range diagrams {
		g.Go(func() error {
			res, err := r.Layout(gctx, d, opts)
			if err != nil {
				return fmt.Errorf("diagram %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
