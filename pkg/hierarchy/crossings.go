package hierarchy

import "slices"

// CountCrossings returns the total number of hierarchical edge crossings for
// the given groups, summed over every pair of consecutive groups. groups must
// be ordered top to bottom.
//
// Only edges between adjacent groups are counted. Edges that skip a level,
// or that point upward because of a cycle, are ignored.
func CountCrossings(g *Graph, groups [][]int) int {
	crossings := 0
	for i := 0; i+1 < len(groups); i++ {
		crossings += CountLayerCrossings(g, groups[i], groups[i+1])
	}
	return crossings
}

// CountLayerCrossings counts crossings between a group of parents and the
// group directly below it using a Fenwick tree, in O(E log V) time where E is
// the number of edges between the groups and V the size of the lower group.
//
// Two edges (u1,v1) and (u2,v2) cross if and only if:
//
//	pos(u1) < pos(u2) AND pos(v1) > pos(v2)
//
// which is the number of inversions in the sequence of lower positions once
// edges are sorted by upper position.
func CountLayerCrossings(g *Graph, upper, lower []int) int {
	if len(upper) == 0 || len(lower) == 0 {
		return 0
	}

	lowerPos := PosMap(lower)

	type edge struct{ upper, lower int }
	edges := make([]edge, 0, len(upper)*2)
	for i, node := range upper {
		for _, child := range g.Children(node) {
			if pos, ok := lowerPos[child]; ok {
				edges = append(edges, edge{i, pos})
			}
		}
	}
	if len(edges) < 2 {
		return 0
	}

	slices.SortFunc(edges, func(a, b edge) int {
		if a.upper != b.upper {
			return a.upper - b.upper
		}
		return a.lower - b.lower
	})

	fenwick := make([]int, len(lower)+1)
	crossings, total := 0, 0
	for _, e := range edges {
		lessOrEqual := 0
		for q := e.lower + 1; q > 0; q -= q & (-q) {
			lessOrEqual += fenwick[q]
		}
		crossings += total - lessOrEqual

		total++
		for idx := e.lower + 1; idx < len(fenwick); idx += idx & (-idx) {
			fenwick[idx]++
		}
	}
	return crossings
}
