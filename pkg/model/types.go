package model

// FieldType is the enum of declared field kinds the renderer understands.
type FieldType string

const (
	FieldTypeString    FieldType = "string"
	FieldTypeInteger   FieldType = "integer"
	FieldTypeFloat     FieldType = "float"
	FieldTypeBoolean   FieldType = "boolean"
	FieldTypeDate      FieldType = "date"
	FieldTypeTimestamp FieldType = "timestamp"
	FieldTypeEnum      FieldType = "enum"
	FieldTypeChoice    FieldType = "choice"
	FieldTypeList      FieldType = "list"
	FieldTypeMap       FieldType = "map"
	FieldTypeRecord    FieldType = "record"
	FieldTypeAny       FieldType = "any"
)

// Constraints carries declarative validation metadata attached to a field's
// type declaration. The renderer only reads these and reflects them as HTML
// attributes; it never enforces them.
type Constraints struct {
	Minimum          *float64 `json:"minimum,omitempty" yaml:"minimum"`
	Maximum          *float64 `json:"maximum,omitempty" yaml:"maximum"`
	ExclusiveMinimum bool     `json:"exclusiveMinimum,omitempty" yaml:"exclusiveMinimum"`
	ExclusiveMaximum bool     `json:"exclusiveMaximum,omitempty" yaml:"exclusiveMaximum"`
	MinLength        *int     `json:"minLength,omitempty" yaml:"minLength"`
	MaxLength        *int     `json:"maxLength,omitempty" yaml:"maxLength"`
	Pattern          string   `json:"pattern,omitempty" yaml:"pattern"`
	Required         bool     `json:"required,omitempty" yaml:"required"`
	Choices          []any    `json:"choices,omitempty" yaml:"choices"`
}

// EnumMember pairs an enumeration's symbolic name with its underlying value.
// Display output and option values always use the underlying value.
type EnumMember struct {
	Name  string `json:"name" yaml:"name"`
	Value any    `json:"value" yaml:"value"`
}

// Field models a single named slot inside a record: declared type, current
// value, and optional constraint metadata.
type Field struct {
	Name        string       `json:"name"`
	Type        FieldType    `json:"type"`
	Optional    bool         `json:"optional,omitempty"`
	Value       Value        `json:"value"`
	Default     any          `json:"default,omitempty"`
	Constraints *Constraints `json:"constraints,omitempty"`
	Enum        []EnumMember `json:"enum,omitempty"`
	Description string       `json:"description,omitempty"`
}

// Record is the unit being rendered: a type name plus fields in declaration
// order. Field order is stable and reproducible across renders.
type Record struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Fields      []Field `json:"fields"`
}

// Source is the adapter contract data-model layers implement so the renderer
// stays decoupled from any particular modeling framework. Implementations
// must report fields in declaration order.
type Source interface {
	RecordName() string
	RecordFields() []Field
}

// FromSource materialises a Record from an adapter implementation.
func FromSource(src Source) Record {
	if src == nil {
		return Record{}
	}
	return Record{
		Name:   src.RecordName(),
		Fields: src.RecordFields(),
	}
}

// Field looks up a field by name, preserving the nil-miss idiom used by
// renderers that tolerate absent fields.
func (r Record) Field(name string) (Field, bool) {
	for _, field := range r.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}
