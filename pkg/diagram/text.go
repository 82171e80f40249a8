package diagram

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Header returns the text shown in the entity header: the name followed by
// its generic parameters when present.
func (e Entity) Header() string {
	if e.Generics == nil || *e.Generics == "" {
		return e.Name
	}
	return e.Name + "<" + *e.Generics + ">"
}

// Rows returns the rendered member rows in display order: attributes,
// methods, functions, type definitions, then enum values.
func (e Entity) Rows() []string {
	rows := make([]string, 0, e.RowCount())
	for _, a := range e.Attributes {
		rows = append(rows, a.String())
	}
	for _, m := range e.Methods {
		rows = append(rows, m.String())
	}
	for _, f := range e.Functions {
		rows = append(rows, f.String())
	}
	for _, t := range e.Types {
		rows = append(rows, t.String())
	}
	for _, v := range e.Values {
		rows = append(rows, v.String())
	}
	return rows
}

// String renders the attribute as "vis name: type".
func (a Attribute) String() string {
	var b strings.Builder
	writeVisibility(&b, a.Visibility)
	b.WriteString(a.Name)
	if a.Type != "" {
		b.WriteString(": ")
		b.WriteString(a.Type)
	}
	return b.String()
}

// String renders the method as "vis name(params): ret".
func (m Method) String() string {
	var b strings.Builder
	writeVisibility(&b, m.Visibility)
	writeSignature(&b, m.Name, m.Parameters, m.ReturnType)
	return b.String()
}

// String renders the function as "name(params): ret".
func (f Function) String() string {
	var b strings.Builder
	writeSignature(&b, f.Name, f.Parameters, f.ReturnType)
	return b.String()
}

// String renders the type definition as "type Name = Definition".
func (t TypeDef) String() string {
	if t.Definition == "" {
		return "type " + t.Name
	}
	return "type " + t.Name + " = " + t.Definition
}

// String renders the enum value as "NAME" or "NAME = value".
func (v EnumValue) String() string {
	if v.Value == nil {
		return v.Name
	}
	return v.Name + " = " + *v.Value
}

// TextWidth returns the number of display columns s occupies. Wide runes
// such as CJK ideographs count as two columns.
func TextWidth(s string) int {
	return runewidth.StringWidth(s)
}

func writeVisibility(b *strings.Builder, v Visibility) {
	if v == "" {
		return
	}
	b.WriteString(string(v))
	b.WriteByte(' ')
}

func writeSignature(b *strings.Builder, name string, params []Parameter, ret string) {
	b.WriteString(name)
	b.WriteByte('(')
	for i, p := range params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Name)
		if p.Type != "" {
			b.WriteString(": ")
			b.WriteString(p.Type)
		}
	}
	b.WriteByte(')')
	if ret != "" {
		b.WriteString(": ")
		b.WriteString(ret)
	}
}
