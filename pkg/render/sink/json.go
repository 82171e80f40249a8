package sink

import (
	"encoding/json"
	"io"
	"os"

	errs "github.com/matzehuels/classlayout/pkg/errors"
	"github.com/matzehuels/classlayout/pkg/layout"
)

// DocumentVersion is the version of the layout document format written by
// [RenderJSON].
const DocumentVersion = 1

// Document is the serialized form of a computed layout: the geometry plus
// the label positions and statistics that go with it. Renderers can be run
// from a Document without recomputing the layout.
type Document struct {
	Version    int                    `json:"version"`
	Layout     layout.DiagramLayout   `json:"layout"`
	Labels     []layout.LabelPosition `json:"labels,omitempty"`
	Stats      *layout.Stats          `json:"stats,omitempty"`
	LabelStats *layout.LabelStats     `json:"labelStats,omitempty"`
}

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*Document)

// WithJSONLabels includes resolved label positions.
func WithJSONLabels(labels []layout.LabelPosition) JSONOption {
	return func(d *Document) { d.Labels = labels }
}

// WithJSONStats includes layout and label statistics.
func WithJSONStats(stats layout.Stats, labels layout.LabelStats) JSONOption {
	return func(d *Document) { d.Stats = &stats; d.LabelStats = &labels }
}

// RenderJSON encodes a layout as an indented JSON [Document]. The output is
// byte-identical for identical input.
func RenderJSON(l layout.DiagramLayout, opts ...JSONOption) ([]byte, error) {
	doc := Document{Version: DocumentVersion, Layout: l}
	for _, opt := range opts {
		opt(&doc)
	}
	return json.MarshalIndent(doc, "", "  ")
}

// ReadLayout decodes a [Document] produced by [RenderJSON].
func ReadLayout(r io.Reader) (Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Document{}, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode layout")
	}
	if doc.Version != DocumentVersion {
		return Document{}, errs.New(errs.ErrCodeUnsupported, "layout document version %d", doc.Version)
	}
	return doc, nil
}

// ReadLayoutFile reads a [Document] from disk.
func ReadLayoutFile(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Document{}, errs.Wrap(errs.ErrCodeFileNotFound, err, "open %s", path)
		}
		return Document{}, err
	}
	defer f.Close()
	return ReadLayout(f)
}
