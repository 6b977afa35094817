package model

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ParseYAML decodes a record definition document. The format mirrors the
// Record structure:
//
//	name: User
//	fields:
//	  - name: username
//	    type: string
//	    value: jdoe
//	    constraints: {minLength: 3, required: true}
//	  - name: role
//	    type: enum
//	    enum: [{name: ADMIN, value: admin}, {name: GUEST, value: guest}]
//	    value: admin
//	  - name: address
//	    type: record
//	    record:
//	      name: Address
//	      fields: [...]
//
// Mapping values keep their document order so rendering stays deterministic.
func ParseYAML(data []byte) (Record, error) {
	var doc recordDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Record{}, fmt.Errorf("model: parse record yaml: %w", err)
	}
	return doc.toRecord()
}

type recordDoc struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Fields      []fieldDoc `yaml:"fields"`
}

type fieldDoc struct {
	Name        string       `yaml:"name"`
	Type        string       `yaml:"type"`
	Optional    bool         `yaml:"optional"`
	Value       yaml.Node    `yaml:"value"`
	Default     any          `yaml:"default"`
	Constraints *Constraints `yaml:"constraints"`
	Enum        []EnumMember `yaml:"enum"`
	Description string       `yaml:"description"`
	Record      *recordDoc   `yaml:"record"`
	Records     []recordDoc  `yaml:"records"`
}

func (d recordDoc) toRecord() (Record, error) {
	record := Record{Name: d.Name, Description: d.Description}
	if strings.TrimSpace(record.Name) == "" {
		return Record{}, fmt.Errorf("model: record name is required")
	}
	for _, fd := range d.Fields {
		field, err := fd.toField()
		if err != nil {
			return Record{}, err
		}
		record.Fields = append(record.Fields, field)
	}
	return record, nil
}

func (d fieldDoc) toField() (Field, error) {
	if strings.TrimSpace(d.Name) == "" {
		return Field{}, fmt.Errorf("model: field name is required")
	}

	fieldType := FieldType(strings.TrimSpace(d.Type))
	if fieldType == "" {
		fieldType = FieldTypeString
	}

	field := Field{
		Name:        d.Name,
		Type:        fieldType,
		Optional:    d.Optional,
		Default:     d.Default,
		Constraints: d.Constraints,
		Enum:        d.Enum,
		Description: d.Description,
	}

	value, err := d.decodeValue(fieldType)
	if err != nil {
		return Field{}, fmt.Errorf("model: field %q: %w", d.Name, err)
	}
	field.Value = value
	return field, nil
}

func (d fieldDoc) decodeValue(fieldType FieldType) (Value, error) {
	switch fieldType {
	case FieldTypeRecord:
		if d.Record == nil {
			return Null(), nil
		}
		nested, err := d.Record.toRecord()
		if err != nil {
			return Value{}, err
		}
		return RecordOf(nested), nil
	case FieldTypeList:
		if len(d.Records) > 0 {
			items := make([]Value, 0, len(d.Records))
			for _, sub := range d.Records {
				nested, err := sub.toRecord()
				if err != nil {
					return Value{}, err
				}
				items = append(items, RecordOf(nested))
			}
			return ListOf(items...), nil
		}
		return decodeListNode(d.Value)
	case FieldTypeMap:
		return decodeMapNode(d.Value)
	case FieldTypeEnum:
		return d.decodeEnumValue()
	case FieldTypeDate:
		return decodeTimeNode(d.Value, "2006-01-02", DateOf)
	case FieldTypeTimestamp:
		return decodeTimestampNode(d.Value)
	default:
		return decodeScalarNode(d.Value), nil
	}
}

func (d fieldDoc) decodeEnumValue() (Value, error) {
	raw := decodeScalarNode(d.Value)
	if raw.IsNull() {
		return Null(), nil
	}
	text := scalarText(raw.Scalar)
	for _, member := range d.Enum {
		if scalarText(member.Value) == text {
			return EnumOf(member), nil
		}
	}
	return EnumOf(EnumMember{Value: raw.Scalar}), nil
}

func decodeScalarNode(node yaml.Node) Value {
	if emptyNode(node) || node.Tag == "!!null" {
		return Null()
	}
	var raw any
	if err := node.Decode(&raw); err != nil || raw == nil {
		return Null()
	}
	return ScalarOf(raw)
}

func decodeListNode(node yaml.Node) (Value, error) {
	if emptyNode(node) {
		return ListOf(), nil
	}
	if node.Kind != yaml.SequenceNode {
		return Value{}, fmt.Errorf("list value must be a sequence")
	}
	items := make([]Value, 0, len(node.Content))
	for _, item := range node.Content {
		items = append(items, decodeScalarNode(*item))
	}
	return ListOf(items...), nil
}

func decodeMapNode(node yaml.Node) (Value, error) {
	if emptyNode(node) {
		return MapOf(), nil
	}
	if node.Kind != yaml.MappingNode {
		return Value{}, fmt.Errorf("map value must be a mapping")
	}
	entries := make([]MapEntry, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		entries = append(entries, MapEntry{
			Key:   node.Content[i].Value,
			Value: decodeScalarNode(*node.Content[i+1]),
		})
	}
	return MapOf(entries...), nil
}

func decodeTimeNode(node yaml.Node, layout string, wrap func(time.Time) Value) (Value, error) {
	if emptyNode(node) {
		return Null(), nil
	}
	var raw string
	if err := node.Decode(&raw); err != nil {
		return Value{}, fmt.Errorf("date value must be a string: %w", err)
	}
	t, err := time.Parse(layout, strings.TrimSpace(raw))
	if err != nil {
		return Value{}, fmt.Errorf("parse date %q: %w", raw, err)
	}
	return wrap(t), nil
}

func decodeTimestampNode(node yaml.Node) (Value, error) {
	if emptyNode(node) {
		return Null(), nil
	}
	var raw string
	if err := node.Decode(&raw); err != nil {
		return Value{}, fmt.Errorf("timestamp value must be a string: %w", err)
	}
	raw = strings.TrimSpace(raw)
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return TimestampOf(t), nil
		}
	}
	return Value{}, fmt.Errorf("parse timestamp %q: unrecognized layout", raw)
}

func emptyNode(node yaml.Node) bool {
	return node.Kind == 0
}
