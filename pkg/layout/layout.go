package layout

import (
	"github.com/matzehuels/classlayout/pkg/diagram"
	"github.com/matzehuels/classlayout/pkg/hierarchy"
)

// Layout computes the layout of d with the default configuration adjusted by
// opts.
func Layout(d diagram.Diagram, opts ...Option) DiagramLayout {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	l, _ := Compute(d, cfg)
	return l
}

// Compute runs the full layout pipeline on d:
//
//  1. size every entity,
//  2. build the inheritance/implementation hierarchy and assign levels,
//  3. reorder each level to reduce crossings,
//  4. position levels and the disconnected grid,
//  5. route every resolvable relationship,
//  6. compute the canvas bounds and title anchor.
//
// Compute never fails. Dangling relationships are dropped, cycles are broken
// and duplicate ids resolve to their first entity. The output is a pure
// function of d and cfg.
func Compute(d diagram.Diagram, cfg Config) (DiagramLayout, Stats) {
	sizes := make([]Size, len(d.Entities))
	for i, e := range d.Entities {
		sizes[i] = SizeEntity(e, cfg)
	}

	g := hierarchy.Build(d)
	groups := hierarchy.GroupByLevel(hierarchy.AssignLevels(g))
	before := hierarchy.CountCrossings(g, groups)
	groups = hierarchy.ReduceCrossings(g, groups, cfg.CrossingPasses)
	disconnected := g.Disconnected()

	p := place(sizes, groups, disconnected, cfg)

	entities := make([]EntityLayout, len(d.Entities))
	for i, e := range d.Entities {
		entities[i] = EntityLayout{Entity: e, Position: p.positions[i], Size: sizes[i]}
	}

	rels, dropped := routeAll(d.Relationships, entities, g.Index, cfg.Curvature)
	bounds, title := calculateBounds(entities, rels, p.maxLevelWidth, cfg)

	stats := Stats{
		Entities:             len(entities),
		Hierarchical:         len(entities) - len(disconnected),
		Disconnected:         len(disconnected),
		Levels:               len(groups),
		Relationships:        len(rels),
		DroppedRelationships: dropped,
		CrossingsBefore:      before,
		CrossingsAfter:       hierarchy.CountCrossings(g, groups),
	}
	return DiagramLayout{
		Title:         d.Title,
		Entities:      entities,
		Relationships: rels,
		Bounds:        bounds,
		TitlePosition: title,
	}, stats
}
