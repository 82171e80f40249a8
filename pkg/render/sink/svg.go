package sink

import (
	"bytes"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/classlayout/pkg/diagram"
	"github.com/matzehuels/classlayout/pkg/layout"
)

const (
	strokeColor = "#333333"
	fontFamily  = "font-family:ui-monospace,Menlo,monospace"
)

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	cfg     layout.Config
	labels  []layout.LabelPosition
	compact bool
}

// WithConfig sets the sizing constants the layout was computed with, so
// member rows line up with the boxes. Defaults to [layout.DefaultConfig].
func WithConfig(cfg layout.Config) SVGOption { return func(r *svgRenderer) { r.cfg = cfg } }

// WithLabels draws relationship labels at the given positions.
func WithLabels(labels []layout.LabelPosition) SVGOption {
	return func(r *svgRenderer) { r.labels = labels }
}

// WithCompact draws entity headers only.
func WithCompact() SVGOption { return func(r *svgRenderer) { r.compact = true } }

// RenderSVG draws a layout as a standalone SVG document: relationship curves
// first, then entity boxes, then labels and the title on top.
func RenderSVG(l layout.DiagramLayout, opts ...SVGOption) []byte {
	r := svgRenderer{cfg: layout.DefaultConfig()}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(px(l.Bounds.Width), px(l.Bounds.Height))
	canvas.Rect(0, 0, px(l.Bounds.Width), px(l.Bounds.Height), "fill:white")
	renderMarkers(canvas)

	for _, rel := range l.Relationships {
		renderRelationship(canvas, rel)
	}
	for _, e := range l.Entities {
		r.renderEntity(canvas, e)
	}
	for _, lbl := range r.labels {
		renderLabel(canvas, lbl)
	}
	if l.Title != "" {
		canvas.Text(px(l.TitlePosition.X), px(l.TitlePosition.Y)+6, l.Title,
			"text-anchor:middle;font-size:18px;font-weight:bold;"+fontFamily)
	}

	canvas.End()
	return buf.Bytes()
}

func px(v float64) int { return int(math.Round(v)) }

// markerFor returns the marker id and dash style of a relationship kind.
func markerFor(kind diagram.RelationshipKind) (string, bool) {
	switch kind {
	case diagram.Inheritance:
		return "triangle", false
	case diagram.Implementation:
		return "triangle", true
	case diagram.Composition:
		return "diamond", false
	case diagram.Aggregation:
		return "hollow-diamond", false
	case diagram.Dependency:
		return "arrow", true
	default:
		return "arrow", false
	}
}

func renderMarkers(canvas *svg.SVG) {
	canvas.Def()
	canvas.Marker("triangle", 12, 6, 12, 12, `orient="auto"`)
	canvas.Path("M0,0 L12,6 L0,12 z", "fill:white;stroke:"+strokeColor)
	canvas.MarkerEnd()
	canvas.Marker("diamond", 16, 5, 16, 10, `orient="auto"`)
	canvas.Path("M0,5 L8,0 L16,5 L8,10 z", "fill:"+strokeColor)
	canvas.MarkerEnd()
	canvas.Marker("hollow-diamond", 16, 5, 16, 10, `orient="auto"`)
	canvas.Path("M0,5 L8,0 L16,5 L8,10 z", "fill:white;stroke:"+strokeColor)
	canvas.MarkerEnd()
	canvas.Marker("arrow", 10, 5, 10, 10, `orient="auto"`)
	canvas.Path("M0,0 L10,5 L0,10", "fill:none;stroke:"+strokeColor)
	canvas.MarkerEnd()
	canvas.DefEnd()
}

func renderRelationship(canvas *svg.SVG, rel layout.RelationshipLayout) {
	marker, dashed := markerFor(rel.Relationship.Kind)
	style := "fill:none;stroke-width:1.5;stroke:" + strokeColor
	if dashed {
		style += ";stroke-dasharray:6,4"
	}
	canvas.Qbez(px(rel.Source.X), px(rel.Source.Y), px(rel.Control.X), px(rel.Control.Y),
		px(rel.Target.X), px(rel.Target.Y), style, `marker-end="url(#`+marker+`)"`)

	small := "font-size:11px;" + fontFamily
	if c := rel.Relationship.SourceCardinality; c != nil && *c != "" {
		canvas.Text(px(rel.Source.X)+4, px(rel.Source.Y)-4, *c, small)
	}
	if c := rel.Relationship.TargetCardinality; c != nil && *c != "" {
		canvas.Text(px(rel.Target.X)+4, px(rel.Target.Y)-4, *c, small)
	}
}

func stereotype(kind diagram.EntityKind) string {
	switch kind {
	case diagram.KindInterface:
		return "«interface»"
	case diagram.KindAbstractClass:
		return "«abstract»"
	case diagram.KindEnum:
		return "«enumeration»"
	case diagram.KindModule:
		return "«module»"
	case diagram.KindTypeAlias:
		return "«type»"
	}
	return ""
}

func (r *svgRenderer) renderEntity(canvas *svg.SVG, e layout.EntityLayout) {
	x, y := px(e.Position.X), px(e.Position.Y)
	w, h := px(e.Size.Width), px(e.Size.Height)
	cx := px(e.Center().X)
	header := px(r.cfg.HeaderHeight)

	canvas.Gid("entity-" + e.Entity.ID)
	canvas.Rect(x, y, w, h, "fill:#fdfdf6;stroke-width:1.5;stroke:"+strokeColor)

	nameStyle := "text-anchor:middle;font-size:13px;font-weight:bold;" + fontFamily
	if e.Entity.Kind == diagram.KindAbstractClass || e.Entity.Kind == diagram.KindInterface {
		nameStyle += ";font-style:italic"
	}
	if st := stereotype(e.Entity.Kind); st != "" {
		canvas.Text(cx, y+header/2-4, st, "text-anchor:middle;font-size:10px;"+fontFamily)
		canvas.Text(cx, y+header/2+11, e.Entity.Header(), nameStyle)
	} else {
		canvas.Text(cx, y+header/2+5, e.Entity.Header(), nameStyle)
	}

	if !r.compact && e.Entity.RowCount() > 0 {
		canvas.Line(x, y+header, x+w, y+header, "stroke:"+strokeColor)
		row := r.cfg.RowHeight
		for i, text := range e.Entity.Rows() {
			ty := float64(y+header) + row*float64(i) + row*0.7
			canvas.Text(x+px(r.cfg.Padding), px(ty), text, "font-size:12px;"+fontFamily)
		}
	}
	canvas.Gend()
}

func renderLabel(canvas *svg.SVG, lbl layout.LabelPosition) {
	rect := lbl.Rect()
	canvas.Rect(px(rect.X), px(rect.Y), px(rect.Width), px(rect.Height), "fill:white;fill-opacity:0.85")
	canvas.Text(px(lbl.X), px(lbl.Y)+4, lbl.Text, "text-anchor:middle;font-size:11px;"+fontFamily)
}
