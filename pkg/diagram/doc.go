// Package diagram defines the input model of the layout engine: typed
// entities (classes, interfaces, modules, type aliases, abstract classes and
// enums) and typed directed relationships between them.
//
// # Model
//
// A [Diagram] is assumed to be validated upstream. Entity ids are expected to
// be unique and every [Relationship] is expected to reference existing
// entities, but nothing in this package or in the layout engine relies on it.
//
// Only [Inheritance] and [Implementation] relationships are hierarchical.
// Their target is the conceptual parent and their source the child:
//
//	{kind: inheritance, sourceId: "Dog", targetId: "Animal"}  // Animal above Dog
//
// # Optional Fields
//
// Generics, labels and cardinalities are pointers. A nil pointer means the
// value is absent; use [Ptr] to fill them in literals:
//
//	diagram.Relationship{ID: "r1", Kind: diagram.Association,
//	    SourceID: "a", TargetID: "b", Label: diagram.Ptr("owns")}
//
// # Serialization
//
// [Read], [ReadYAML] and [ReadFile] decode diagrams from JSON or YAML.
// [Marshal] produces indented JSON whose bytes are stable for identical input.
package diagram
