// Package sink writes computed layouts to output formats.
//
// Sinks only consume [layout.DiagramLayout] and label positions; they never
// recompute geometry.
//
//   - [RenderJSON]: the layout document, readable again with [ReadLayout]
//   - [RenderSVG]: a self-contained SVG preview drawn with svgo
//
// Graphviz based node-link output lives in package nodelink.
package sink
