package hierarchy

import "github.com/matzehuels/classlayout/pkg/diagram"

// Graph is the hierarchical subgraph of a diagram stored as a dense index
// arena. Every input entity gets exactly one index, in input order, so
// duplicated ids still map to distinct nodes; the id lookup table resolves
// an id to its first occurrence.
//
// Edges point from child to parent: for an inheritance or implementation
// relationship the source is the child and the target is the parent.
// Cycles are allowed. Graph is not safe for concurrent mutation, but a
// fully built Graph can be read from many goroutines.
type Graph struct {
	ids      []string
	index    map[string]int
	parents  [][]int
	children [][]int
	linked   []bool
	edges    int
}

// New creates a graph with one node per id and no edges.
func New(ids []string) *Graph {
	g := &Graph{
		ids:      ids,
		index:    make(map[string]int, len(ids)),
		parents:  make([][]int, len(ids)),
		children: make([][]int, len(ids)),
		linked:   make([]bool, len(ids)),
	}
	for i, id := range ids {
		if _, dup := g.index[id]; !dup {
			g.index[id] = i
		}
	}
	return g
}

// Build creates the hierarchical graph of d. Relationships that are not
// hierarchical, or whose endpoints do not resolve to an entity, are ignored.
func Build(d diagram.Diagram) *Graph {
	ids := make([]string, len(d.Entities))
	for i, e := range d.Entities {
		ids[i] = e.ID
	}
	g := New(ids)
	for _, r := range d.Hierarchical() {
		child, okC := g.index[r.SourceID]
		parent, okP := g.index[r.TargetID]
		if !okC || !okP {
			continue
		}
		g.AddEdge(child, parent)
	}
	return g
}

// AddEdge records that child sits below parent. Both must be valid indices.
// Self-loops and duplicate edges are kept as given.
func (g *Graph) AddEdge(child, parent int) {
	g.parents[child] = append(g.parents[child], parent)
	g.children[parent] = append(g.children[parent], child)
	g.linked[child] = true
	g.linked[parent] = true
	g.edges++
}

// Len returns the number of nodes, which equals the number of entities.
func (g *Graph) Len() int { return len(g.ids) }

// EdgeCount returns the number of hierarchical edges.
func (g *Graph) EdgeCount() int { return g.edges }

// ID returns the entity id of node i.
func (g *Graph) ID(i int) string { return g.ids[i] }

// Index returns the node of the first entity with the given id.
func (g *Graph) Index(id string) (int, bool) {
	i, ok := g.index[id]
	return i, ok
}

// Parents returns the nodes i inherits from or implements.
// The returned slice must not be modified.
func (g *Graph) Parents(i int) []int { return g.parents[i] }

// Children returns the nodes that inherit from or implement i.
// The returned slice must not be modified.
func (g *Graph) Children(i int) []int { return g.children[i] }

// InHierarchy reports whether node i is an endpoint of at least one
// hierarchical edge.
func (g *Graph) InHierarchy(i int) bool { return g.linked[i] }

// Disconnected returns the nodes that take no part in the hierarchy, in
// input order.
func (g *Graph) Disconnected() []int {
	var out []int
	for i, l := range g.linked {
		if !l {
			out = append(out, i)
		}
	}
	return out
}

// Roots returns hierarchy nodes without parents, in input order.
// A graph made only of cycles has no roots.
func (g *Graph) Roots() []int {
	var out []int
	for i := range g.ids {
		if g.linked[i] && len(g.parents[i]) == 0 {
			out = append(out, i)
		}
	}
	return out
}

// PosMap maps each node in order to its index in the slice.
func PosMap(order []int) map[int]int {
	m := make(map[int]int, len(order))
	for i, n := range order {
		m[n] = i
	}
	return m
}
