// Package hierarchy extracts the inheritance and implementation structure of
// a diagram and orders it into levels.
//
// # Overview
//
// The layout engine stacks hierarchical entities in horizontal levels with
// parents above their children. This package performs the graph side of that
// work and knows nothing about geometry:
//
//  1. [Build] turns a diagram into a [Graph], a dense index arena where every
//     entity is a node and every resolvable hierarchical relationship is an
//     edge from child to parent.
//  2. [AssignLevels] computes longest-path levels. Cycles are tolerated.
//  3. [GroupByLevel] buckets nodes into ordered groups.
//  4. [ReduceCrossings] reorders each group with barycenter sweeps.
//
// [CountCrossings] measures the number of edge crossings of an ordering and
// is used for diagnostics.
//
// # Indices
//
// Nodes are plain ints equal to the position of the entity in
// [diagram.Diagram.Entities]. Callers map them back to entities by index,
// which keeps duplicated ids apart and avoids string lookups in hot loops.
//
// # Example
//
//	g := hierarchy.Build(d)
//	groups := hierarchy.GroupByLevel(hierarchy.AssignLevels(g))
//	groups = hierarchy.ReduceCrossings(g, groups, hierarchy.DefaultPasses)
package hierarchy
