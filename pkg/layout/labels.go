package layout

import (
	"math"

	"github.com/matzehuels/classlayout/pkg/diagram"
)

// ComputeLabelPositions places the labels of the given relationships. Only
// relationships with a non-empty label produce an entry, in input order.
// See [PlaceLabels] for the algorithm.
func ComputeLabelPositions(rels []RelationshipLayout, cfg Config) []LabelPosition {
	labels, _ := PlaceLabels(rels, cfg)
	return labels
}

// PlaceLabels places relationship labels and reports how the overlap
// resolution went.
//
// Each label starts centered on its relationship's midpoint, LabelOffset
// above the line, in a box of LabelCharWidth per display column by
// LabelHeight. Then up to LabelIterations passes visit every pair i < j in
// input order; when two boxes overlap the later label moves LabelStep along
// the unit normal of its own relationship (straight up for a zero-length
// relationship). A pass without overlaps ends the loop early.
//
// The resolver is greedy and order dependent: it runs in O(n² × iterations)
// and may leave overlaps on pathological input. With more than MaxLabels
// labels it does not run at all.
func PlaceLabels(rels []RelationshipLayout, cfg Config) ([]LabelPosition, LabelStats) {
	var (
		labels  []LabelPosition
		normals []Point
	)
	for _, r := range rels {
		text, ok := r.Relationship.LabelText()
		if !ok {
			continue
		}
		mid := r.Midpoint()
		labels = append(labels, LabelPosition{
			RelationshipID: r.Relationship.ID,
			Text:           text,
			X:              mid.X,
			Y:              mid.Y - cfg.LabelOffset,
			Width:          float64(diagram.TextWidth(text)) * cfg.LabelCharWidth,
			Height:         cfg.LabelHeight,
		})
		normals = append(normals, unitNormal(r))
	}

	stats := LabelStats{Labels: len(labels)}
	if cfg.MaxLabels > 0 && len(labels) > cfg.MaxLabels {
		stats.Skipped = true
		return labels, stats
	}

	for pass := 0; pass < cfg.LabelIterations; pass++ {
		stats.Passes++
		moved := false
		for i := range labels {
			for j := i + 1; j < len(labels); j++ {
				if !labels[i].Rect().Overlaps(labels[j].Rect()) {
					continue
				}
				labels[j].X += normals[j].X * cfg.LabelStep
				labels[j].Y += normals[j].Y * cfg.LabelStep
				moved = true
			}
		}
		if !moved {
			break
		}
	}
	stats.Overlaps = countOverlaps(labels)
	return labels, stats
}

// unitNormal returns the unit vector perpendicular to the relationship
// segment, or (0, -1) when the segment has no length.
func unitNormal(r RelationshipLayout) Point {
	dx, dy := r.Target.X-r.Source.X, r.Target.Y-r.Source.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return Point{X: 0, Y: -1}
	}
	return Point{X: -dy / length, Y: dx / length}
}

func countOverlaps(labels []LabelPosition) int {
	n := 0
	for i := range labels {
		for j := i + 1; j < len(labels); j++ {
			if labels[i].Rect().Overlaps(labels[j].Rect()) {
				n++
			}
		}
	}
	return n
}
