// Package layout turns a class diagram into 2D geometry.
//
// # Overview
//
// [Compute] takes a [diagram.Diagram] and a [Config] and returns a
// [DiagramLayout]: one positioned box per entity, routed anchors for every
// relationship whose endpoints exist, the canvas bounds and the title
// anchor. [PlaceLabels] and [ComputeLabelPositions] place relationship
// labels on top of that.
//
// The engine is pure and synchronous. It performs no I/O, never logs and
// never returns an error: malformed input (cycles, dangling references,
// duplicate ids) degrades to a valid layout instead. Identical input always
// produces identical output.
//
// # Pipeline
//
//	entities ──► SizeEntity ──► sizes
//	         └─► hierarchy.Build ─► AssignLevels ─► ReduceCrossings ─► groups
//	sizes + groups ──► positioner ──► EntityLayouts
//	EntityLayouts ──► Route / ControlPoint ──► RelationshipLayouts
//	both ──► bounds ──► DiagramLayout
//
// Entities taking part in inheritance or implementation are stacked in
// levels, parents above children, each level centered under the widest one.
// Everything else is laid out in a grid of GridColumns columns below the
// hierarchy.
//
// # Configuration
//
// [DefaultConfig] returns the standard constants. [LoadConfig] reads
// overrides from a TOML file:
//
//	margin = 60
//	grid_columns = 4
//	curvature = 0.15
//
// [Layout] accepts functional options for one-off tweaks:
//
//	l := layout.Layout(d, layout.WithGridColumns(4), layout.WithCurvature(0.1))
package layout
