// Package nodelink renders a class diagram layout as a Graphviz node-link
// diagram.
//
// [ToDOT] turns a [layout.DiagramLayout] into DOT source and [RenderSVG]
// renders it in-process with [github.com/goccy/go-graphviz]:
//
//	dot := nodelink.ToDOT(l, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// The ranking follows the computed layout: entities that share a row share
// a Graphviz rank and inheritance edges keep parents above children. Exact
// coordinates are left to Graphviz.
package nodelink
