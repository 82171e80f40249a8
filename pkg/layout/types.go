package layout

import "github.com/matzehuels/classlayout/pkg/diagram"

// Point is a position on the canvas. The y axis grows downward.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is the extent of a box.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Side names the edge of an entity box a connection attaches to.
type Side string

const (
	SideTop    Side = "top"
	SideBottom Side = "bottom"
	SideLeft   Side = "left"
	SideRight  Side = "right"
)

// Opposite returns the side facing s.
func (s Side) Opposite() Side {
	switch s {
	case SideTop:
		return SideBottom
	case SideBottom:
		return SideTop
	case SideLeft:
		return SideRight
	default:
		return SideLeft
	}
}

// EntityLayout places one entity. Position is the top-left corner.
type EntityLayout struct {
	Entity   diagram.Entity `json:"entity"`
	Position Point          `json:"position"`
	Size     Size           `json:"size"`
}

// Center returns the center of the entity box.
func (e EntityLayout) Center() Point {
	return Point{X: e.Position.X + e.Size.Width/2, Y: e.Position.Y + e.Size.Height/2}
}

// Right returns the x coordinate of the right edge.
func (e EntityLayout) Right() float64 { return e.Position.X + e.Size.Width }

// Bottom returns the y coordinate of the bottom edge.
func (e EntityLayout) Bottom() float64 { return e.Position.Y + e.Size.Height }

// ConnectionPoint is where a relationship attaches to an entity box.
type ConnectionPoint struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Side Side    `json:"side"`
}

// Point drops the side.
func (c ConnectionPoint) Point() Point { return Point{X: c.X, Y: c.Y} }

// RelationshipLayout is the routed geometry of one relationship: a quadratic
// curve from Source to Target bent toward Control. With zero curvature the
// control point is the segment midpoint and the curve is a straight line.
type RelationshipLayout struct {
	Relationship diagram.Relationship `json:"relationship"`
	Source       ConnectionPoint      `json:"source"`
	Target       ConnectionPoint      `json:"target"`
	Control      Point                `json:"control"`
}

// Midpoint returns the middle of the straight segment between both anchors.
func (r RelationshipLayout) Midpoint() Point {
	return Point{X: (r.Source.X + r.Target.X) / 2, Y: (r.Source.Y + r.Target.Y) / 2}
}

// DiagramLayout is the geometry of a whole diagram and the only thing a
// renderer needs. Entities keep input order; Relationships keep input order
// minus any relationship with an unresolved endpoint.
type DiagramLayout struct {
	Title         string               `json:"title,omitempty"`
	Entities      []EntityLayout       `json:"entities"`
	Relationships []RelationshipLayout `json:"relationships"`
	Bounds        Size                 `json:"bounds"`
	TitlePosition Point                `json:"titlePosition"`
}

// EntityByID returns the layout of the first entity with the given id.
func (l DiagramLayout) EntityByID(id string) (EntityLayout, bool) {
	for _, e := range l.Entities {
		if e.Entity.ID == id {
			return e, true
		}
	}
	return EntityLayout{}, false
}

// LabelPosition is the resolved center and box of a relationship label.
type LabelPosition struct {
	RelationshipID string  `json:"relationshipId"`
	Text           string  `json:"text"`
	X              float64 `json:"x"`
	Y              float64 `json:"y"`
	Width          float64 `json:"width"`
	Height         float64 `json:"height"`
}

// Rect returns the label box.
func (p LabelPosition) Rect() Rect {
	return Rect{X: p.X - p.Width/2, Y: p.Y - p.Height/2, Width: p.Width, Height: p.Height}
}

// Rect is an axis-aligned rectangle with its top-left corner at (X, Y).
type Rect struct {
	X, Y, Width, Height float64
}

// Overlaps reports whether r and o share interior area. Touching edges do
// not count.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.Width && o.X < r.X+r.Width &&
		r.Y < o.Y+o.Height && o.Y < r.Y+r.Height
}

// Stats describes a single layout computation.
type Stats struct {
	Entities             int `json:"entities"`
	Hierarchical         int `json:"hierarchical"`
	Disconnected         int `json:"disconnected"`
	Levels               int `json:"levels"`
	Relationships        int `json:"relationships"`
	DroppedRelationships int `json:"droppedRelationships"`
	CrossingsBefore      int `json:"crossingsBefore"`
	CrossingsAfter       int `json:"crossingsAfter"`
}

// LabelStats describes a label placement run.
type LabelStats struct {
	Labels   int `json:"labels"`
	Passes   int `json:"passes"`
	Overlaps int `json:"overlaps"`

	// Skipped is set when there were more labels than Config.MaxLabels and
	// overlap resolution did not run.
	Skipped bool `json:"skipped,omitempty"`
}
