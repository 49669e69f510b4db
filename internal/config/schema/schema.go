// Package schema validates decoded settings maps before they are bound to
// typed configuration.
//
// A Schema describes one value. Object schemas list their properties;
// properties not listed are reported as unknown rather than rejected, so
// settings files written for newer releases still load.
package schema

// Type names, as used in settings files.
const (
	TypeString  = "string"
	TypeBoolean = "boolean"
	TypeInteger = "integer"
	TypeArray   = "array"
	TypeObject  = "object"
)

// Schema describes the allowed shape of a value.
type Schema struct {
	Type        string
	Description string

	// Enum restricts non-empty strings to the listed values, compared
	// case-insensitively. Empty allows any value.
	Enum []string

	// Minimum and Maximum bound integers when non-nil.
	Minimum *int64
	Maximum *int64

	// Items describes array elements.
	Items *Schema

	// Properties describes object members.
	Properties map[string]*Schema

	// Deprecated, when set, names the replacement of this property.
	Deprecated string
}

// String returns a string schema.
func String(desc string) *Schema {
	return &Schema{Type: TypeString, Description: desc}
}

// Boolean returns a boolean schema.
func Boolean(desc string) *Schema {
	return &Schema{Type: TypeBoolean, Description: desc}
}

// Integer returns an integer schema bounded to [min, max].
func Integer(desc string, min, max int64) *Schema {
	return &Schema{Type: TypeInteger, Description: desc, Minimum: &min, Maximum: &max}
}

// Array returns an array schema with elements described by items.
func Array(desc string, items *Schema) *Schema {
	return &Schema{Type: TypeArray, Description: desc, Items: items}
}

// Object returns an object schema with the given properties.
func Object(props map[string]*Schema) *Schema {
	return &Schema{Type: TypeObject, Properties: props}
}

// OneOf restricts a string schema to the allowed values.
func (s *Schema) OneOf(values ...string) *Schema {
	s.Enum = values
	return s
}

// DeprecatedBy marks the schema as replaced by another property.
func (s *Schema) DeprecatedBy(name string) *Schema {
	s.Deprecated = name
	return s
}
