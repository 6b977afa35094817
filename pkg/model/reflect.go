package model

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Enum is implemented by Go enumeration types that want their symbolic names
// and underlying values surfaced by the reflection adapter.
type Enum interface {
	EnumMember() EnumMember
	EnumMembers() []EnumMember
}

const structTagName = "view"

// FromStruct builds a Record from a plain Go struct (or pointer to struct)
// using reflection, the analogue of introspecting a model class's declared
// fields. Field order follows struct declaration order. Supported tag options
// (comma separated, first segment optionally renames the field):
//
//	view:"display_name,min=0,exclusiveMin,max=120,required"
//	view:"-"                skip the field
//	view:",date"            treat a time.Time as date-only
//	view:",choices=a|b|c"   fixed-choice select
//	view:",minlen=2,maxlen=40,pattern=^[a-z]+$"
//
// Map-typed fields are emitted with entries sorted by key so rendering stays
// byte-identical across calls.
func FromStruct(v any) (Record, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return Record{}, fmt.Errorf("model: nil value")
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return Record{}, fmt.Errorf("model: expected struct, got %s", rv.Kind())
	}
	return recordFromStruct(rv), nil
}

type structAdapter struct {
	record Record
}

func (a structAdapter) RecordName() string    { return a.record.Name }
func (a structAdapter) RecordFields() []Field { return a.record.Fields }

// StructSource wraps a struct value in a Source adapter. Errors surface as an
// empty record; callers needing diagnostics use FromStruct directly.
func StructSource(v any) Source {
	record, err := FromStruct(v)
	if err != nil {
		return structAdapter{}
	}
	return structAdapter{record: record}
}

func recordFromStruct(rv reflect.Value) Record {
	rt := rv.Type()
	record := Record{Name: rt.Name()}
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		tag := parseTag(sf.Tag.Get(structTagName))
		if tag.skip {
			continue
		}

		name := tag.name
		if name == "" {
			if jsonTag := strings.Split(sf.Tag.Get("json"), ",")[0]; jsonTag != "" && jsonTag != "-" {
				name = jsonTag
			} else {
				name = snakeCase(sf.Name)
			}
		}

		field := fieldFromValue(name, rv.Field(i), tag)
		record.Fields = append(record.Fields, field)
	}
	return record
}

func fieldFromValue(name string, rv reflect.Value, tag fieldTag) Field {
	field := Field{Name: name}

	optional := false
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		optional = true
		if rv.IsNil() {
			field.Optional = true
			field.Type, field.Enum = declaredType(rv.Type(), tag)
			field.Value = Null()
			field.Constraints = tag.constraints()
			return field
		}
		rv = rv.Elem()
	}
	field.Optional = optional

	if enum, ok := rv.Interface().(Enum); ok {
		field.Type = FieldTypeEnum
		field.Enum = enum.EnumMembers()
		field.Value = EnumOf(enum.EnumMember())
		field.Constraints = tag.constraints()
		return field
	}

	switch rv.Kind() {
	case reflect.String:
		field.Type = FieldTypeString
		field.Value = ScalarOf(rv.String())
		if len(tag.choices) > 0 {
			field.Type = FieldTypeChoice
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		field.Type = FieldTypeInteger
		field.Value = ScalarOf(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		field.Type = FieldTypeInteger
		field.Value = ScalarOf(int64(rv.Uint()))
	case reflect.Float32, reflect.Float64:
		field.Type = FieldTypeFloat
		field.Value = ScalarOf(rv.Float())
	case reflect.Bool:
		field.Type = FieldTypeBoolean
		field.Value = ScalarOf(rv.Bool())
	case reflect.Struct:
		if t, ok := rv.Interface().(time.Time); ok {
			if tag.dateOnly {
				field.Type = FieldTypeDate
				field.Value = DateOf(t)
			} else {
				field.Type = FieldTypeTimestamp
				field.Value = TimestampOf(t)
			}
			break
		}
		field.Type = FieldTypeRecord
		field.Value = RecordOf(recordFromStruct(rv))
	case reflect.Slice, reflect.Array:
		field.Type = FieldTypeList
		items := make([]Value, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			items = append(items, valueOf(rv.Index(i), tag))
		}
		field.Value = ListOf(items...)
	case reflect.Map:
		field.Type = FieldTypeMap
		field.Value = MapOf(mapEntries(rv)...)
	default:
		field.Type = FieldTypeAny
		field.Value = ScalarOf(fmt.Sprintf("%v", rv.Interface()))
	}

	field.Constraints = tag.constraints()
	return field
}

func valueOf(rv reflect.Value, tag fieldTag) Value {
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return Null()
		}
		rv = rv.Elem()
	}
	if enum, ok := rv.Interface().(Enum); ok {
		return EnumOf(enum.EnumMember())
	}
	switch rv.Kind() {
	case reflect.Struct:
		if t, ok := rv.Interface().(time.Time); ok {
			if tag.dateOnly {
				return DateOf(t)
			}
			return TimestampOf(t)
		}
		return RecordOf(recordFromStruct(rv))
	case reflect.Slice, reflect.Array:
		items := make([]Value, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			items = append(items, valueOf(rv.Index(i), tag))
		}
		return ListOf(items...)
	case reflect.Map:
		return MapOf(mapEntries(rv)...)
	default:
		return ScalarOf(rv.Interface())
	}
}

func mapEntries(rv reflect.Value) []MapEntry {
	keys := rv.MapKeys()
	entries := make([]MapEntry, 0, len(keys))
	for _, key := range keys {
		entries = append(entries, MapEntry{
			Key:   scalarText(key.Interface()),
			Value: valueOf(rv.MapIndex(key), fieldTag{}),
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries
}

func declaredType(rt reflect.Type, tag fieldTag) (FieldType, []EnumMember) {
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	if rt.Implements(reflect.TypeOf((*Enum)(nil)).Elem()) {
		if enum, ok := reflect.New(rt).Elem().Interface().(Enum); ok {
			return FieldTypeEnum, enum.EnumMembers()
		}
		return FieldTypeEnum, nil
	}
	switch rt.Kind() {
	case reflect.String:
		if len(tag.choices) > 0 {
			return FieldTypeChoice, nil
		}
		return FieldTypeString, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return FieldTypeInteger, nil
	case reflect.Float32, reflect.Float64:
		return FieldTypeFloat, nil
	case reflect.Bool:
		return FieldTypeBoolean, nil
	case reflect.Struct:
		if rt == reflect.TypeOf(time.Time{}) {
			if tag.dateOnly {
				return FieldTypeDate, nil
			}
			return FieldTypeTimestamp, nil
		}
		return FieldTypeRecord, nil
	case reflect.Slice, reflect.Array:
		return FieldTypeList, nil
	case reflect.Map:
		return FieldTypeMap, nil
	default:
		return FieldTypeAny, nil
	}
}

type fieldTag struct {
	name     string
	skip     bool
	dateOnly bool
	required bool
	min      *float64
	max      *float64
	exclMin  bool
	exclMax  bool
	minLen   *int
	maxLen   *int
	pattern  string
	choices  []any
}

func (t fieldTag) constraints() *Constraints {
	if t.min == nil && t.max == nil && t.minLen == nil && t.maxLen == nil &&
		t.pattern == "" && !t.required && len(t.choices) == 0 {
		return nil
	}
	return &Constraints{
		Minimum:          t.min,
		Maximum:          t.max,
		ExclusiveMinimum: t.exclMin,
		ExclusiveMaximum: t.exclMax,
		MinLength:        t.minLen,
		MaxLength:        t.maxLen,
		Pattern:          t.pattern,
		Required:         t.required,
		Choices:          t.choices,
	}
}

func parseTag(raw string) fieldTag {
	var tag fieldTag
	if raw == "" {
		return tag
	}
	if raw == "-" {
		tag.skip = true
		return tag
	}

	parts := strings.Split(raw, ",")
	tag.name = strings.TrimSpace(parts[0])

	for _, part := range parts[1:] {
		part = strings.TrimSpace(part)
		key, value, hasValue := strings.Cut(part, "=")
		switch key {
		case "date":
			tag.dateOnly = true
		case "required":
			tag.required = true
		case "exclusiveMin":
			tag.exclMin = true
		case "exclusiveMax":
			tag.exclMax = true
		case "min":
			if f, err := strconv.ParseFloat(value, 64); hasValue && err == nil {
				tag.min = &f
			}
		case "max":
			if f, err := strconv.ParseFloat(value, 64); hasValue && err == nil {
				tag.max = &f
			}
		case "minlen":
			if n, err := strconv.Atoi(value); hasValue && err == nil {
				tag.minLen = &n
			}
		case "maxlen":
			if n, err := strconv.Atoi(value); hasValue && err == nil {
				tag.maxLen = &n
			}
		case "pattern":
			if hasValue {
				tag.pattern = value
			}
		case "choices":
			if hasValue {
				for _, choice := range strings.Split(value, "|") {
					tag.choices = append(tag.choices, choice)
				}
			}
		}
	}
	return tag
}

func snakeCase(name string) string {
	var builder strings.Builder
	builder.Grow(len(name) + 4)
	runes := []rune(name)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (!unicode.IsUpper(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
				builder.WriteByte('_')
			}
			builder.WriteRune(unicode.ToLower(r))
			continue
		}
		builder.WriteRune(r)
	}
	return builder.String()
}
