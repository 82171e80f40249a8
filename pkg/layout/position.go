package layout

// placement is the output of the positioner: the top-left corner of every
// entity by index, and the width of the widest hierarchy level.
type placement struct {
	positions     []Point
	maxLevelWidth float64
}

// levelWidth is the horizontal extent of one level: box widths plus one
// margin between neighbours.
func levelWidth(group []int, sizes []Size, margin float64) float64 {
	if len(group) == 0 {
		return 0
	}
	w := margin * float64(len(group)-1)
	for _, n := range group {
		w += sizes[n].Width
	}
	return w
}

// place stacks the ordered hierarchy groups top to bottom, each centered
// under the widest one, then lays disconnected entities out in a grid below
// them. Every index appears either in groups or in disconnected.
func place(sizes []Size, groups [][]int, disconnected []int, cfg Config) placement {
	p := placement{positions: make([]Point, len(sizes))}
	for _, grp := range groups {
		p.maxLevelWidth = max(p.maxLevelWidth, levelWidth(grp, sizes, cfg.Margin))
	}

	y := cfg.Margin + cfg.TitleHeight
	for _, grp := range groups {
		x := cfg.Margin + (p.maxLevelWidth-levelWidth(grp, sizes, cfg.Margin))/2
		tallest := 0.0
		for _, n := range grp {
			p.positions[n] = Point{X: x, Y: y}
			x += sizes[n].Width + cfg.Margin
			tallest = max(tallest, sizes[n].Height)
		}
		y += tallest + cfg.Margin
	}

	cols := max(cfg.GridColumns, 1)
	x, col, tallest := cfg.Margin, 0, 0.0
	for _, n := range disconnected {
		if col == cols {
			y += tallest + cfg.Margin
			x, col, tallest = cfg.Margin, 0, 0
		}
		p.positions[n] = Point{X: x, Y: y}
		x += sizes[n].Width + cfg.Margin
		tallest = max(tallest, sizes[n].Height)
		col++
	}
	return p
}
