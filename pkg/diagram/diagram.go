package diagram

import "github.com/samber/lo"

// EntityKind classifies an entity box.
type EntityKind string

const (
	KindClass         EntityKind = "class"
	KindInterface     EntityKind = "interface"
	KindModule        EntityKind = "module"
	KindTypeAlias     EntityKind = "type-alias"
	KindAbstractClass EntityKind = "abstract-class"
	KindEnum          EntityKind = "enum"
)

// RelationshipKind classifies a directed relationship between two entities.
type RelationshipKind string

const (
	Inheritance    RelationshipKind = "inheritance"
	Implementation RelationshipKind = "implementation"
	Composition    RelationshipKind = "composition"
	Aggregation    RelationshipKind = "aggregation"
	Dependency     RelationshipKind = "dependency"
	Association    RelationshipKind = "association"
)

// IsHierarchical reports whether relationships of this kind take part in
// level assignment. The target of a hierarchical relationship is the parent.
func (k RelationshipKind) IsHierarchical() bool {
	return k == Inheritance || k == Implementation
}

// Visibility is the access marker rendered in front of a member.
type Visibility string

const (
	Public    Visibility = "+"
	Private   Visibility = "-"
	Protected Visibility = "#"
	Package   Visibility = "~"
)

// Attribute is a field row of an entity.
type Attribute struct {
	Name       string     `json:"name" yaml:"name"`
	Type       string     `json:"type,omitempty" yaml:"type,omitempty"`
	Visibility Visibility `json:"visibility,omitempty" yaml:"visibility,omitempty"`
	Static     bool       `json:"static,omitempty" yaml:"static,omitempty"`
}

// Parameter is a single method or function parameter.
type Parameter struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type,omitempty" yaml:"type,omitempty"`
}

// Method is an operation row of a class-like entity.
type Method struct {
	Name       string      `json:"name" yaml:"name"`
	Parameters []Parameter `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	ReturnType string      `json:"returnType,omitempty" yaml:"returnType,omitempty"`
	Visibility Visibility  `json:"visibility,omitempty" yaml:"visibility,omitempty"`
	Static     bool        `json:"static,omitempty" yaml:"static,omitempty"`
	Abstract   bool        `json:"abstract,omitempty" yaml:"abstract,omitempty"`
}

// Function is a free function row, typically of a module entity.
type Function struct {
	Name       string      `json:"name" yaml:"name"`
	Parameters []Parameter `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	ReturnType string      `json:"returnType,omitempty" yaml:"returnType,omitempty"`
}

// TypeDef is a named type definition row.
type TypeDef struct {
	Name       string `json:"name" yaml:"name"`
	Definition string `json:"definition,omitempty" yaml:"definition,omitempty"`
}

// EnumValue is a single enumerator row of an enum entity.
type EnumValue struct {
	Name  string  `json:"name" yaml:"name"`
	Value *string `json:"value,omitempty" yaml:"value,omitempty"`
}

// Entity is a box in the diagram. Member collections are only used to
// estimate the box size.
//
// Generics is optional: nil means the entity is not generic and its header
// shows the bare name.
type Entity struct {
	ID         string      `json:"id" yaml:"id"`
	Name       string      `json:"name" yaml:"name"`
	Kind       EntityKind  `json:"kind" yaml:"kind"`
	Generics   *string     `json:"generics,omitempty" yaml:"generics,omitempty"`
	Attributes []Attribute `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Methods    []Method    `json:"methods,omitempty" yaml:"methods,omitempty"`
	Functions  []Function  `json:"functions,omitempty" yaml:"functions,omitempty"`
	Types      []TypeDef   `json:"types,omitempty" yaml:"types,omitempty"`
	Values     []EnumValue `json:"values,omitempty" yaml:"values,omitempty"`
}

// RowCount returns the number of member rows rendered below the header.
func (e Entity) RowCount() int {
	return len(e.Attributes) + len(e.Methods) + len(e.Functions) + len(e.Types) + len(e.Values)
}

// Relationship is a directed connection from SourceID to TargetID.
//
// Label, SourceCardinality and TargetCardinality are optional. An absent or
// empty Label excludes the relationship from label placement; an absent
// cardinality renders nothing at that end.
type Relationship struct {
	ID                string           `json:"id" yaml:"id"`
	Kind              RelationshipKind `json:"kind" yaml:"kind"`
	SourceID          string           `json:"sourceId" yaml:"sourceId"`
	TargetID          string           `json:"targetId" yaml:"targetId"`
	Label             *string          `json:"label,omitempty" yaml:"label,omitempty"`
	SourceCardinality *string          `json:"sourceCardinality,omitempty" yaml:"sourceCardinality,omitempty"`
	TargetCardinality *string          `json:"targetCardinality,omitempty" yaml:"targetCardinality,omitempty"`
}

// LabelText returns the label and whether the relationship carries one.
func (r Relationship) LabelText() (string, bool) {
	if r.Label == nil || *r.Label == "" {
		return "", false
	}
	return *r.Label, true
}

// Diagram is a pre-validated set of entities and relationships.
type Diagram struct {
	Title         string         `json:"title,omitempty" yaml:"title,omitempty"`
	Entities      []Entity       `json:"entities" yaml:"entities"`
	Relationships []Relationship `json:"relationships,omitempty" yaml:"relationships,omitempty"`
}

// Hierarchical returns the inheritance and implementation relationships in
// input order.
func (d Diagram) Hierarchical() []Relationship {
	return lo.Filter(d.Relationships, func(r Relationship, _ int) bool {
		return r.Kind.IsHierarchical()
	})
}

// Labeled returns the relationships that carry a non-empty label.
func (d Diagram) Labeled() []Relationship {
	return lo.Filter(d.Relationships, func(r Relationship, _ int) bool {
		_, ok := r.LabelText()
		return ok
	})
}

// Ptr returns a pointer to s. It is a convenience for filling optional fields.
func Ptr(s string) *string { return &s }
