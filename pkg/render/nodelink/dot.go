package nodelink

import (
	"bytes"
	"cmp"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/classlayout/pkg/diagram"
	"github.com/matzehuels/classlayout/pkg/layout"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes member rows in node labels.
	// When false, only the entity header is shown.
	Detailed bool
}

// ToDOT converts a layout to Graphviz DOT. Entities sharing a row in the
// layout share a rank, hierarchical relationships are drawn from parent to
// child so Graphviz keeps parents on top, and every other relationship is
// added without ranking constraints.
func ToDOT(l layout.DiagramLayout, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"filled\", fillcolor=\"#fdfdf6\", fontname=\"monospace\", fontsize=12, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontname=\"monospace\", fontsize=10];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.4;\n")
	if l.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n", l.Title)
	}
	buf.WriteString("\n")

	for _, e := range l.Entities {
		fmt.Fprintf(&buf, "  %q [label=%q];\n", e.Entity.ID, fmtLabel(e.Entity, opts.Detailed))
	}

	buf.WriteString("\n")
	for _, row := range rows(l.Entities) {
		if len(row) < 2 {
			continue
		}
		buf.WriteString("  { rank=same;")
		for _, id := range row {
			fmt.Fprintf(&buf, " %q;", id)
		}
		buf.WriteString(" }\n")
	}

	buf.WriteString("\n")
	for _, r := range l.Relationships {
		rel := r.Relationship
		attrs := fmtEdgeAttrs(rel)
		if rel.Kind.IsHierarchical() {
			fmt.Fprintf(&buf, "  %q -> %q [%s];\n", rel.TargetID, rel.SourceID, strings.Join(attrs, ", "))
		} else {
			fmt.Fprintf(&buf, "  %q -> %q [%s];\n", rel.SourceID, rel.TargetID, strings.Join(attrs, ", "))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// rows groups entity ids by their y position, top to bottom, each row left
// to right.
func rows(entities []layout.EntityLayout) [][]string {
	sorted := slices.Clone(entities)
	slices.SortStableFunc(sorted, func(a, b layout.EntityLayout) int {
		if c := cmp.Compare(a.Position.Y, b.Position.Y); c != 0 {
			return c
		}
		return cmp.Compare(a.Position.X, b.Position.X)
	})

	var out [][]string
	for i, e := range sorted {
		if i == 0 || e.Position.Y != sorted[i-1].Position.Y {
			out = append(out, nil)
		}
		out[len(out)-1] = append(out[len(out)-1], e.Entity.ID)
	}
	return out
}

func fmtLabel(e diagram.Entity, detailed bool) string {
	if !detailed || e.RowCount() == 0 {
		return e.Header()
	}
	return e.Header() + "\n\n" + strings.Join(e.Rows(), "\n")
}

func fmtEdgeAttrs(r diagram.Relationship) []string {
	var attrs []string
	switch r.Kind {
	case diagram.Inheritance:
		attrs = append(attrs, "dir=back", "arrowtail=empty")
	case diagram.Implementation:
		attrs = append(attrs, "dir=back", "arrowtail=empty", "style=dashed")
	case diagram.Composition:
		attrs = append(attrs, "arrowhead=diamond", "constraint=false")
	case diagram.Aggregation:
		attrs = append(attrs, "arrowhead=odiamond", "constraint=false")
	case diagram.Dependency:
		attrs = append(attrs, "arrowhead=vee", "style=dashed", "constraint=false")
	default:
		attrs = append(attrs, "arrowhead=vee", "constraint=false")
	}
	if text, ok := r.LabelText(); ok {
		attrs = append(attrs, fmt.Sprintf("label=%q", text))
	}
	if c := r.SourceCardinality; c != nil && *c != "" {
		attrs = append(attrs, fmt.Sprintf("taillabel=%q", *c))
	}
	if c := r.TargetCardinality; c != nil && *c != "" {
		attrs = append(attrs, fmt.Sprintf("headlabel=%q", *c))
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using the embedded Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-based svg header with a plain
// viewBox so the output scales like the other SVG sinks.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}
