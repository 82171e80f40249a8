package hierarchy

import (
	"maps"
	"slices"
)

// AssignLevels computes the level of every hierarchy node: the length of the
// longest parent chain above it. Roots are at level 0 and every parent sits
// strictly above its children unless a cycle makes that impossible.
//
// Nodes outside the hierarchy get level -1.
//
// # Cycles
//
// The traversal is a memoized depth-first search over parent edges with an
// explicit stack and three states per node. When it reaches a parent that is
// still in progress, the edge closes a cycle: that parent contributes level 0
// and is not descended into again. Every node is completed exactly once, so
// the traversal terminates on arbitrary cyclic input in O(V + E).
//
// Starting nodes are taken in input order, so the result is deterministic
// for a given graph.
func AssignLevels(g *Graph) []int {
	const (
		unvisited = iota
		inProgress
		done
	)

	n := g.Len()
	levels := make([]int, n)
	for i := range levels {
		levels[i] = -1
	}
	state := make([]uint8, n)

	type frame struct {
		node int
		next int // next parent to visit
		max  int // highest parent level seen so far
	}
	var stack []frame

	for start := 0; start < n; start++ {
		if !g.linked[start] || state[start] != unvisited {
			continue
		}
		state[start] = inProgress
		stack = append(stack, frame{node: start, max: -1})

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			parents := g.parents[top.node]
			if top.next < len(parents) {
				p := parents[top.next]
				top.next++
				switch state[p] {
				case done:
					top.max = max(top.max, levels[p])
				case inProgress:
					top.max = max(top.max, 0)
				default:
					state[p] = inProgress
					stack = append(stack, frame{node: p, max: -1})
				}
				continue
			}

			node := top.node
			levels[node] = top.max + 1
			state[node] = done
			stack = stack[:len(stack)-1]
			if len(stack) > 0 {
				caller := &stack[len(stack)-1]
				caller.max = max(caller.max, levels[node])
			}
		}
	}
	return levels
}

// GroupByLevel groups hierarchy nodes by level. Groups are returned in
// ascending level order and list nodes in input order. Nodes with a
// negative level are skipped.
func GroupByLevel(levels []int) [][]int {
	byLevel := make(map[int][]int)
	for i, l := range levels {
		if l < 0 {
			continue
		}
		byLevel[l] = append(byLevel[l], i)
	}
	keys := slices.Sorted(maps.Keys(byLevel))
	groups := make([][]int, len(keys))
	for i, k := range keys {
		groups[i] = byLevel[k]
	}
	return groups
}
