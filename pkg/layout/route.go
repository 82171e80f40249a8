package layout

import (
	"math"

	"github.com/matzehuels/classlayout/pkg/diagram"
)

// Route picks the pair of facing box edges a relationship between source and
// target attaches to, and returns the anchor at the middle of each edge.
//
// When the centers are further apart horizontally than vertically the
// anchors sit on the left and right edges, otherwise on the top and bottom
// edges. The two sides are always opposite.
func Route(source, target EntityLayout) (ConnectionPoint, ConnectionPoint) {
	sc, tc := source.Center(), target.Center()
	dx, dy := tc.X-sc.X, tc.Y-sc.Y

	var side Side
	switch {
	case math.Abs(dx) > math.Abs(dy) && dx > 0:
		side = SideRight
	case math.Abs(dx) > math.Abs(dy):
		side = SideLeft
	case dy > 0:
		side = SideBottom
	default:
		side = SideTop
	}
	return anchor(source, side), anchor(target, side.Opposite())
}

func anchor(e EntityLayout, side Side) ConnectionPoint {
	c := e.Center()
	switch side {
	case SideTop:
		return ConnectionPoint{X: c.X, Y: e.Position.Y, Side: side}
	case SideBottom:
		return ConnectionPoint{X: c.X, Y: e.Bottom(), Side: side}
	case SideLeft:
		return ConnectionPoint{X: e.Position.X, Y: c.Y, Side: side}
	default:
		return ConnectionPoint{X: e.Right(), Y: c.Y, Side: side}
	}
}

// ControlPoint returns the quadratic curve control point between two
// anchors: the segment midpoint pushed sideways by curvature times the
// segment length.
func ControlPoint(source, target ConnectionPoint, curvature float64) Point {
	mid := Point{X: (source.X + target.X) / 2, Y: (source.Y + target.Y) / 2}
	if curvature == 0 {
		return mid
	}
	// (-dy, dx) is the perpendicular scaled by the length, so multiplying by
	// curvature alone gives the displacement.
	dx, dy := target.X-source.X, target.Y-source.Y
	return Point{X: mid.X - dy*curvature, Y: mid.Y + dx*curvature}
}

// routeAll routes every relationship whose endpoints resolve through index.
// The rest are dropped and counted.
func routeAll(rels []diagram.Relationship, entities []EntityLayout, index func(string) (int, bool), curvature float64) ([]RelationshipLayout, int) {
	out := make([]RelationshipLayout, 0, len(rels))
	dropped := 0
	for _, r := range rels {
		si, okS := index(r.SourceID)
		ti, okT := index(r.TargetID)
		if !okS || !okT {
			dropped++
			continue
		}
		src, tgt := Route(entities[si], entities[ti])
		out = append(out, RelationshipLayout{
			Relationship: r,
			Source:       src,
			Target:       tgt,
			Control:      ControlPoint(src, tgt, curvature),
		})
	}
	return out, dropped
}
