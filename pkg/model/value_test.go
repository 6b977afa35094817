package model_test

import (
	"testing"
	"time"

	"github.com/goliatone/go-modelview/pkg/model"
)

func TestValue_Text(t *testing.T) {
	cases := []struct {
		name  string
		value model.Value
		want  string
	}{
		{"null", model.Null(), "None"},
		{"zero value", model.Value{}, "None"},
		{"string", model.ScalarOf("hello"), "hello"},
		{"true", model.ScalarOf(true), "True"},
		{"false", model.ScalarOf(false), "False"},
		{"int", model.ScalarOf(42), "42"},
		{"float", model.ScalarOf(3.14), "3.14"},
		{"float integral", model.ScalarOf(2.0), "2"},
		{"enum underlying", model.EnumOf(model.EnumMember{Name: "ADMIN", Value: "admin"}), "admin"},
		{"enum numeric", model.EnumOf(model.EnumMember{Name: "ONE", Value: 1}), "1"},
		{"date", model.DateOf(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)), "2024-03-01"},
		{"timestamp", model.TimestampOf(time.Date(2024, 3, 1, 14, 30, 5, 0, time.UTC)), "2024-03-01 14:30:05"},
		{"nil scalar", model.ScalarOf(nil), "None"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.value.Text(); got != tc.want {
				t.Fatalf("Text() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestValue_Truthy(t *testing.T) {
	cases := []struct {
		name  string
		value model.Value
		want  bool
	}{
		{"true", model.ScalarOf(true), true},
		{"false", model.ScalarOf(false), false},
		{"zero int", model.ScalarOf(0), false},
		{"nonzero int", model.ScalarOf(7), true},
		{"empty string", model.ScalarOf(""), false},
		{"string", model.ScalarOf("x"), true},
		{"null", model.Null(), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.value.Truthy(); got != tc.want {
				t.Fatalf("Truthy() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestValue_IsNull(t *testing.T) {
	if !(model.Null()).IsNull() {
		t.Fatal("Null() should be null")
	}
	if !(model.Value{}).IsNull() {
		t.Fatal("zero Value should be null")
	}
	if (model.ScalarOf("x")).IsNull() {
		t.Fatal("scalar should not be null")
	}
	if !model.ScalarOf(nil).IsNull() {
		t.Fatal("ScalarOf(nil) should degrade to null")
	}
}

func TestRecord_Field(t *testing.T) {
	record := model.Record{
		Name: "User",
		Fields: []model.Field{
			{Name: "name", Type: model.FieldTypeString, Value: model.ScalarOf("jdoe")},
		},
	}

	field, ok := record.Field("name")
	if !ok || field.Value.Text() != "jdoe" {
		t.Fatalf("lookup failed: %v %v", field, ok)
	}
	if _, ok := record.Field("missing"); ok {
		t.Fatal("missing field reported as present")
	}
}

type staticSource struct {
	name   string
	fields []model.Field
}

func (s staticSource) RecordName() string { return s.name }
func (s staticSource) RecordFields() []model.Field { return s.fields }

func TestFromSource(t *testing.T) {
	src := staticSource{
		name: "Widget",
		fields: []model.Field{
			{Name: "id", Type: model.FieldTypeInteger, Value: model.ScalarOf(1)},
		},
	}

	record := model.FromSource(src)
	if record.Name != "Widget" || len(record.Fields) != 1 {
		t.Fatalf("unexpected record: %+v", record)
	}

	if got := model.FromSource(nil); got.Name != "" || got.Fields != nil {
		t.Fatalf("nil source should produce an empty record: %+v", got)
	}
}
