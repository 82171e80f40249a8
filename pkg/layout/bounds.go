package layout

// calculateBounds returns the canvas size and the title anchor.
//
// The extent covers every entity box and every curve control point, starting
// from the top-left margin and the title band so that an empty diagram still
// has a canvas. The width is never smaller than the widest hierarchy level
// plus a margin on each side.
func calculateBounds(entities []EntityLayout, rels []RelationshipLayout, maxLevelWidth float64, cfg Config) (Size, Point) {
	maxRight := cfg.Margin
	maxBottom := cfg.Margin + cfg.TitleHeight
	for _, e := range entities {
		maxRight = max(maxRight, e.Right())
		maxBottom = max(maxBottom, e.Bottom())
	}
	for _, r := range rels {
		maxRight = max(maxRight, r.Control.X)
		maxBottom = max(maxBottom, r.Control.Y)
	}

	bounds := Size{
		Width:  max(maxRight+cfg.Margin, maxLevelWidth+2*cfg.Margin),
		Height: maxBottom + cfg.Margin,
	}
	title := Point{X: bounds.Width / 2, Y: cfg.Margin + cfg.TitleHeight/2}
	return bounds, title
}
