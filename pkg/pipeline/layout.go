package pipeline

import (
	"github.com/vmihailenco/msgpack/v5"

	"github.com/matzehuels/classlayout/pkg/cache"
	"github.com/matzehuels/classlayout/pkg/diagram"
	errs "github.com/matzehuels/classlayout/pkg/errors"
	"github.com/matzehuels/classlayout/pkg/layout"
	"github.com/matzehuels/classlayout/pkg/render/sink"
)

// =============================================================================
// Layout Generation
// =============================================================================

// layoutPayload is the cached form of a computed layout.
type layoutPayload struct {
	Config     layout.Config          `msgpack:"config"`
	Layout     layout.DiagramLayout   `msgpack:"layout"`
	Labels     []layout.LabelPosition `msgpack:"labels"`
	Stats      layout.Stats           `msgpack:"stats"`
	LabelStats layout.LabelStats      `msgpack:"label_stats"`
}

// ComputeLayout lays out d and places its labels without touching any cache.
// The returned result has no artifacts.
func ComputeLayout(d diagram.Diagram, cfg layout.Config) (*Result, error) {
	l, stats := layout.Compute(d, cfg)
	labels, labelStats := layout.PlaceLabels(l.Relationships, cfg)
	return newResult(layoutPayload{
		Config:     cfg,
		Layout:     l,
		Labels:     labels,
		Stats:      stats,
		LabelStats: labelStats,
	})
}

// ResultFromDocument rebuilds a result from a layout document written by the
// json format, so it can be rendered again without the source diagram.
// Labels missing from the document are recomputed with cfg.
func ResultFromDocument(doc sink.Document, cfg layout.Config) (*Result, error) {
	p := layoutPayload{Config: cfg, Layout: doc.Layout, Labels: doc.Labels}
	if doc.Stats != nil {
		p.Stats = *doc.Stats
	}
	if doc.LabelStats != nil {
		p.LabelStats = *doc.LabelStats
	}
	if p.Labels == nil {
		p.Labels, p.LabelStats = layout.PlaceLabels(doc.Layout.Relationships, cfg)
	}
	return newResult(p)
}

// DiagramHash returns the content hash of d used in layout cache keys.
func DiagramHash(d diagram.Diagram) (string, error) {
	data, err := diagram.Marshal(d)
	if err != nil {
		return "", errs.Wrap(errs.ErrCodeInvalidDiagram, err, "serialize diagram")
	}
	return cache.Hash(data), nil
}

func newResult(p layoutPayload) (*Result, error) {
	data, err := msgpack.Marshal(&p)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "encode layout")
	}
	return resultFromPayload(p, data), nil
}

func decodeResult(data []byte) (*Result, error) {
	var p layoutPayload
	if err := msgpack.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return resultFromPayload(p, data), nil
}

func resultFromPayload(p layoutPayload, data []byte) *Result {
	return &Result{
		LayoutHash:  cache.Hash(data),
		Config:      p.Config,
		Layout:      p.Layout,
		Labels:      p.Labels,
		LayoutStats: p.Stats,
		LabelStats:  p.LabelStats,
		Artifacts:   make(map[string][]byte),
	}
}

// payload returns the cacheable form of r.
func (r *Result) payload() ([]byte, error) {
	return msgpack.Marshal(&layoutPayload{
		Config:     r.Config,
		Layout:     r.Layout,
		Labels:     r.Labels,
		Stats:      r.LayoutStats,
		LabelStats: r.LabelStats,
	})
}
