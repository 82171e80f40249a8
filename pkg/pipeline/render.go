package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/classlayout/pkg/render"
	"github.com/matzehuels/classlayout/pkg/render/nodelink"
	"github.com/matzehuels/classlayout/pkg/render/sink"
)

// Render generates output artifacts in the requested formats. Formats that
// build on each other (pdf and png on svg, nodelink on dot) share the
// intermediate output.
func Render(ctx context.Context, res *Result, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	rc := renderContext{res: res, opts: opts}
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := rc.render(ctx, format)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

type renderContext struct {
	res  *Result
	opts Options
	svg  []byte
	dot  string
}

func (rc *renderContext) render(ctx context.Context, format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		return sink.RenderJSON(rc.res.Layout,
			sink.WithJSONLabels(rc.res.Labels),
			sink.WithJSONStats(rc.res.LayoutStats, rc.res.LabelStats))
	case FormatSVG:
		return rc.svgBytes(), nil
	case FormatDOT:
		return []byte(rc.dotString()), nil
	case FormatNodelink:
		return nodelink.RenderSVG(ctx, rc.dotString())
	case FormatPDF:
		return render.ToPDF(ctx, rc.svgBytes())
	case FormatPNG:
		return render.ToPNG(ctx, rc.svgBytes(), DefaultPNGScale)
	default:
		return nil, ValidateFormat(format)
	}
}

func (rc *renderContext) svgBytes() []byte {
	if rc.svg == nil {
		svgOpts := []sink.SVGOption{
			sink.WithConfig(rc.res.Config),
			sink.WithLabels(rc.res.Labels),
		}
		if rc.opts.IsCompact() {
			svgOpts = append(svgOpts, sink.WithCompact())
		}
		rc.svg = sink.RenderSVG(rc.res.Layout, svgOpts...)
	}
	return rc.svg
}

func (rc *renderContext) dotString() string {
	if rc.dot == "" {
		rc.dot = nodelink.ToDOT(rc.res.Layout, nodelink.Options{Detailed: !rc.opts.IsCompact()})
	}
	return rc.dot
}
