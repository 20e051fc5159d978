package schema

import (
	"slices"
	"strings"
)

// TypeTag is the type name the model builder metadata reports for a parameter,
// e.g. "int", "enum", "string[]" or "Key<Frame>".
type TypeTag string

// Category groups type tags by how their values are rendered.
type Category int

const (
	// CategoryUnknown marks a tag with no rendering rule.
	CategoryUnknown Category = iota
	// CategoryNumeric covers byte, short, int, long, float and double.
	CategoryNumeric
	// CategoryBoolean covers boolean.
	CategoryBoolean
	// CategoryString covers string.
	CategoryString
	// CategoryEnum covers enum and enum[].
	CategoryEnum
	// CategoryList covers the list tag.
	CategoryList
	// CategoryArray covers any supported tag with a "[]" suffix.
	CategoryArray
	// CategoryObject covers keys and the structured value types.
	CategoryObject
)

var categoryNames = map[Category]string{
	CategoryUnknown: "unknown",
	CategoryNumeric: "numeric",
	CategoryBoolean: "boolean",
	CategoryString:  "string",
	CategoryEnum:    "enum",
	CategoryList:    "list",
	CategoryArray:   "array",
	CategoryObject:  "object",
}

// String returns the category name.
func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "unknown"
}

var numericTags = []TypeTag{"byte", "short", "int", "long", "float", "double"}

var objectTags = []TypeTag{"VecSpecifier", "KeyValue", "StringPair", "Frame", "Model"}

// Category classifies the tag. Enum arrays are enums, not arrays.
func (t TypeTag) Category() Category {
	switch {
	case t == "boolean":
		return CategoryBoolean
	case t == "string":
		return CategoryString
	case t == "list":
		return CategoryList
	case t.IsEnum():
		return CategoryEnum
	case slices.Contains(numericTags, t):
		return CategoryNumeric
	case t.IsArray():
		if t.Elem().Category() == CategoryUnknown {
			return CategoryUnknown
		}
		return CategoryArray
	case strings.HasPrefix(string(t), "Key<") && strings.HasSuffix(string(t), ">"):
		return CategoryObject
	case slices.Contains(objectTags, t):
		return CategoryObject
	default:
		return CategoryUnknown
	}
}

// IsEnum reports whether the tag is enum or enum[].
func (t TypeTag) IsEnum() bool {
	return t == "enum" || t == "enum[]"
}

// IsNumeric reports whether the tag is a scalar numeric type.
func (t TypeTag) IsNumeric() bool {
	return t.Category() == CategoryNumeric
}

// IsFloating reports whether the tag is float or double.
func (t TypeTag) IsFloating() bool {
	return t == "float" || t == "double"
}

// IsArray reports whether the tag carries the "[]" suffix.
func (t TypeTag) IsArray() bool {
	return strings.HasSuffix(string(t), "[]")
}

// Elem returns the element tag of an array tag, or t itself otherwise.
func (t TypeTag) Elem() TypeTag {
	return TypeTag(strings.TrimSuffix(string(t), "[]"))
}

// Supported reports whether values of this tag can be rendered.
func (t TypeTag) Supported() bool {
	return t.Category() != CategoryUnknown
}

// Parameter is one parameter declared by a model builder.
// Parameters are treated as immutable once parsed; use Clone before changing one.
type Parameter struct {
	Name         string   `yaml:"name" json:"name"`
	Type         TypeTag  `yaml:"type" json:"type"`
	Values       []string `yaml:"values,omitempty" json:"values,omitempty"`
	DefaultValue any      `yaml:"default_value,omitempty" json:"default_value,omitempty"`
	Help         string   `yaml:"help,omitempty" json:"help,omitempty"`
}

// Clone returns a copy of p that shares no slices with it.
func (p Parameter) Clone() Parameter {
	c := p
	c.Values = slices.Clone(p.Values)
	if list, ok := p.DefaultValue.([]any); ok {
		c.DefaultValue = slices.Clone(list)
	}
	return c
}

// ModelBuilder describes one algorithm: its key and ordered parameters.
type ModelBuilder struct {
	Algo       string      `yaml:"algo" json:"algo"`
	Parameters []Parameter `yaml:"parameters" json:"parameters"`
}

// Parameter returns the parameter named name.
func (mb *ModelBuilder) Parameter(name string) (Parameter, bool) {
	for _, p := range mb.Parameters {
		if p.Name == name {
			return p, true
		}
	}
	return Parameter{}, false
}

// ParameterNames returns the parameter names in declared order.
func (mb *ModelBuilder) ParameterNames() []string {
	names := make([]string, len(mb.Parameters))
	for i, p := range mb.Parameters {
		names[i] = p.Name
	}
	return names
}
