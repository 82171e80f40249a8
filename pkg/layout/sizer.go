package layout

import "github.com/matzehuels/classlayout/pkg/diagram"

// SizeEntity estimates the box size of an entity from its text content.
//
// The height stacks a header, one row per member and a bottom padding. The
// width fits the widest of the header and every member row at CharWidth per
// display column, plus padding on both sides, and never drops below
// MinWidth. Text is not measured with a font: it is a monospace estimate.
func SizeEntity(e diagram.Entity, cfg Config) Size {
	widest := diagram.TextWidth(e.Header())
	for _, row := range e.Rows() {
		widest = max(widest, diagram.TextWidth(row))
	}

	return Size{
		Width:  max(cfg.MinWidth, 2*cfg.Padding+float64(widest)*cfg.CharWidth),
		Height: cfg.HeaderHeight + cfg.RowHeight*float64(e.RowCount()) + cfg.Padding,
	}
}
