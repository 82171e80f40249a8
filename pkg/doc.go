// Package pkg provides the core libraries for classlayout.
//
// # Overview
//
// classlayout computes positions for the entities of a class diagram: parents
// above children, siblings side by side, unrelated entities in a grid below,
// relationships routed between facing box edges and labels pushed apart
// until they no longer overlap. The pkg directory is organized as:
//
//  1. [diagram] - Input model (entities, relationships) and JSON/YAML IO
//  2. [hierarchy] - Level assignment and barycenter crossing reduction
//  3. [layout] - Sizing, positioning, routing, labels and bounds
//  4. [render] - Layout documents, SVG, DOT and Graphviz output
//  5. [cache] - File, Redis and MongoDB caches for layouts and artifacts
//  6. [pipeline] - Orchestration (layout → render) with caching
//
// # Architecture
//
//	diagram.json / diagram.yaml
//	         ↓
//	    [diagram] package (parse)
//	         ↓
//	    [hierarchy] package (levels + ordering)
//	         ↓
//	    [layout] package (geometry)
//	         ↓
//	    [render] package (JSON/SVG/DOT/PDF/PNG)
//
// # Quick Start
//
//	d, _ := diagram.ReadFile("zoo.json")
//	l := layout.Layout(d)
//	labels := layout.ComputeLabelPositions(l.Relationships, layout.DefaultConfig())
//	svg := sink.RenderSVG(l, sink.WithLabels(labels))
//
// With caching and several output formats:
//
//	runner := pipeline.NewRunner(fileCache, nil, logger)
//	res, err := runner.Execute(ctx, d, pipeline.Options{
//	    Formats: []string{pipeline.FormatJSON, pipeline.FormatSVG},
//	})
//
// The layout engine itself never fails and never logs; errors and logging
// live in the pipeline, the HTTP server and the CLI.
package pkg
