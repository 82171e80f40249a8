// Package render turns computed class diagram layouts into output files.
//
// # Subpackages
//
//   - [sink]: layout JSON documents and the svgo based SVG preview
//   - [nodelink]: Graphviz DOT and SVG node-link diagrams
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG produced by the subpackages using the
// external rsvg-convert tool (from librsvg):
//
//	svg := sink.RenderSVG(l, sink.WithLabels(labels))
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)
//
// Both return an UNSUPPORTED error when rsvg-convert is not installed.
package render
