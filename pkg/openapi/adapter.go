// Package openapi derives record declarations from OpenAPI component
// schemas: field set, declared types, and constraint metadata come from the
// schema, current values are bound from a plain map. It lets services reuse
// their API contracts as render definitions instead of hand-building records.
package openapi

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-modelview/pkg/model"
)

// RecordFromData loads an OpenAPI document, resolves the named component
// schema, and binds the supplied values into a renderable record.
func RecordFromData(ctx context.Context, data []byte, schemaName string, values map[string]any) (model.Record, error) {
	if len(data) == 0 {
		return model.Record{}, fmt.Errorf("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return model.Record{}, fmt.Errorf("openapi: load document: %w", err)
	}
	if doc.Components == nil {
		return model.Record{}, fmt.Errorf("openapi: document has no component schemas")
	}
	ref, ok := doc.Components.Schemas[schemaName]
	if !ok {
		return model.Record{}, fmt.Errorf("openapi: schema %q not found", schemaName)
	}
	return RecordFromSchema(schemaName, ref.Value, values)
}

// RecordFromSchema converts an object schema into a record. Properties are
// emitted in lexical name order: OpenAPI objects carry no declaration order,
// so lexical order is the stable, reproducible choice.
func RecordFromSchema(name string, schema *openapi3.Schema, values map[string]any) (model.Record, error) {
	if schema == nil {
		return model.Record{}, fmt.Errorf("openapi: schema %q is nil", name)
	}
	if !typeIs(schema, "object") && len(schema.Properties) == 0 {
		return model.Record{}, fmt.Errorf("openapi: schema %q is not an object", name)
	}

	record := model.Record{Name: name, Description: schema.Description}

	required := make(map[string]bool, len(schema.Required))
	for _, field := range schema.Required {
		required[field] = true
	}

	names := make([]string, 0, len(schema.Properties))
	for propName := range schema.Properties {
		names = append(names, propName)
	}
	sort.Strings(names)

	for _, propName := range names {
		ref := schema.Properties[propName]
		if ref == nil || ref.Value == nil {
			continue
		}
		field, err := fieldFromSchema(propName, ref.Value, required[propName], valueFor(values, propName))
		if err != nil {
			return model.Record{}, err
		}
		record.Fields = append(record.Fields, field)
	}
	return record, nil
}

func valueFor(values map[string]any, name string) any {
	if values == nil {
		return nil
	}
	return values[name]
}

func fieldFromSchema(name string, schema *openapi3.Schema, required bool, value any) (model.Field, error) {
	field := model.Field{
		Name:        name,
		Optional:    schema.Nullable,
		Default:     schema.Default,
		Description: schema.Description,
	}
	field.Constraints = constraintsFromSchema(schema, required)

	switch {
	case len(schema.Enum) > 0:
		field.Type = model.FieldTypeChoice
		field.Value = scalarValue(value)
	case typeIs(schema, "string") && schema.Format == "date":
		field.Type = model.FieldTypeDate
		parsed, err := timeValue(value, "2006-01-02")
		if err != nil {
			return model.Field{}, fmt.Errorf("openapi: field %q: %w", name, err)
		}
		field.Value = parsed
	case typeIs(schema, "string") && schema.Format == "date-time":
		field.Type = model.FieldTypeTimestamp
		parsed, err := timeValue(value, time.RFC3339)
		if err != nil {
			return model.Field{}, fmt.Errorf("openapi: field %q: %w", name, err)
		}
		field.Value = parsed
	case typeIs(schema, "string"):
		field.Type = model.FieldTypeString
		field.Value = scalarValue(value)
	case typeIs(schema, "integer"):
		field.Type = model.FieldTypeInteger
		field.Value = scalarValue(value)
	case typeIs(schema, "number"):
		field.Type = model.FieldTypeFloat
		field.Value = scalarValue(value)
	case typeIs(schema, "boolean"):
		field.Type = model.FieldTypeBoolean
		field.Value = scalarValue(value)
	case typeIs(schema, "array"):
		field.Type = model.FieldTypeList
		list, err := listValue(name, schema, value)
		if err != nil {
			return model.Field{}, err
		}
		field.Value = list
	case typeIs(schema, "object") || len(schema.Properties) > 0:
		field.Type = model.FieldTypeRecord
		nestedValues, _ := value.(map[string]any)
		nested, err := RecordFromSchema(name, schema, nestedValues)
		if err != nil {
			return model.Field{}, err
		}
		field.Value = model.RecordOf(nested)
	default:
		field.Type = model.FieldTypeAny
		field.Value = scalarValue(value)
	}

	return field, nil
}

func listValue(name string, schema *openapi3.Schema, value any) (model.Value, error) {
	raw, ok := value.([]any)
	if !ok || len(raw) == 0 {
		return model.ListOf(), nil
	}

	var itemSchema *openapi3.Schema
	if schema.Items != nil {
		itemSchema = schema.Items.Value
	}

	items := make([]model.Value, 0, len(raw))
	for _, item := range raw {
		if itemSchema != nil && (typeIs(itemSchema, "object") || len(itemSchema.Properties) > 0) {
			nestedValues, _ := item.(map[string]any)
			nested, err := RecordFromSchema(itemSchemaName(name, itemSchema), itemSchema, nestedValues)
			if err != nil {
				return model.Value{}, err
			}
			items = append(items, model.RecordOf(nested))
			continue
		}
		items = append(items, scalarValue(item))
	}
	return model.ListOf(items...), nil
}

func itemSchemaName(fieldName string, schema *openapi3.Schema) string {
	if schema.Title != "" {
		return schema.Title
	}
	return fieldName
}

func constraintsFromSchema(schema *openapi3.Schema, required bool) *model.Constraints {
	c := model.Constraints{Required: required}
	has := required

	if schema.Min != nil {
		v := *schema.Min
		c.Minimum = &v
		c.ExclusiveMinimum = schema.ExclusiveMin
		has = true
	}
	if schema.Max != nil {
		v := *schema.Max
		c.Maximum = &v
		c.ExclusiveMaximum = schema.ExclusiveMax
		has = true
	}
	if schema.MinLength != 0 {
		v := int(schema.MinLength)
		c.MinLength = &v
		has = true
	}
	if schema.MaxLength != nil {
		v := int(*schema.MaxLength)
		c.MaxLength = &v
		has = true
	}
	if schema.Pattern != "" {
		c.Pattern = schema.Pattern
		has = true
	}
	if len(schema.Enum) > 0 {
		c.Choices = append([]any(nil), schema.Enum...)
		has = true
	}

	if !has {
		return nil
	}
	return &c
}

func scalarValue(value any) model.Value {
	if value == nil {
		return model.Null()
	}
	return model.ScalarOf(value)
}

func timeValue(value any, layout string) (model.Value, error) {
	switch v := value.(type) {
	case nil:
		return model.Null(), nil
	case time.Time:
		if layout == "2006-01-02" {
			return model.DateOf(v), nil
		}
		return model.TimestampOf(v), nil
	case string:
		t, err := time.Parse(layout, v)
		if err != nil {
			return model.Value{}, fmt.Errorf("parse %q: %w", v, err)
		}
		if layout == "2006-01-02" {
			return model.DateOf(t), nil
		}
		return model.TimestampOf(t), nil
	default:
		return model.Value{}, fmt.Errorf("unsupported time value %T", value)
	}
}

func typeIs(schema *openapi3.Schema, want string) bool {
	if schema.Type == nil {
		return false
	}
	return schema.Type.Is(want)
}
