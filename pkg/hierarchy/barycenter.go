package hierarchy

import (
	"cmp"
	"slices"
)

// DefaultPasses is the number of sweeps performed by ReduceCrossings in the
// default configuration: top-down, bottom-up, top-down, bottom-up.
const DefaultPasses = 4

// ReduceCrossings reorders the nodes inside each group with the barycenter
// heuristic to reduce crossings between hierarchical edges. groups must be
// ordered top to bottom, as returned by [GroupByLevel]; the input is not
// modified.
//
// Even passes sweep top-down and order each group by the mean position of
// its parents in the group above. Odd passes sweep bottom-up and use children
// in the group below. A node with no neighbor in the adjacent group keeps its
// current index as barycenter. Ties keep their current relative order, so
// the result is deterministic.
//
// Each pass builds a fresh set of groups. The first group of a sweep is
// carried over unchanged and every later group is ordered against its
// neighbor as already placed in the same pass.
//
// The heuristic is not optimal; it only tends to reduce crossings. Use
// [CountCrossings] to measure the effect.
func ReduceCrossings(g *Graph, groups [][]int, passes int) [][]int {
	current := cloneGroups(groups)
	if len(current) < 2 {
		return current
	}

	last := len(current) - 1
	for pass := 0; pass < passes; pass++ {
		next := make([][]int, len(current))
		if pass%2 == 0 {
			next[0] = slices.Clone(current[0])
			for k := 1; k <= last; k++ {
				next[k] = orderByBarycenter(current[k], g.Parents, next[k-1])
			}
		} else {
			next[last] = slices.Clone(current[last])
			for k := last - 1; k >= 0; k-- {
				next[k] = orderByBarycenter(current[k], g.Children, next[k+1])
			}
		}
		current = next
	}
	return current
}

func orderByBarycenter(group []int, neighbors func(int) []int, adjacent []int) []int {
	pos := PosMap(adjacent)

	type ranked struct {
		node int
		bary float64
	}
	items := make([]ranked, len(group))
	for i, n := range group {
		sum, count := 0.0, 0
		for _, nb := range neighbors(n) {
			if p, ok := pos[nb]; ok {
				sum += float64(p)
				count++
			}
		}
		bary := float64(i)
		if count > 0 {
			bary = sum / float64(count)
		}
		items[i] = ranked{node: n, bary: bary}
	}

	slices.SortStableFunc(items, func(a, b ranked) int { return cmp.Compare(a.bary, b.bary) })

	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.node
	}
	return out
}

func cloneGroups(groups [][]int) [][]int {
	out := make([][]int, len(groups))
	for i, grp := range groups {
		out[i] = slices.Clone(grp)
	}
	return out
}
