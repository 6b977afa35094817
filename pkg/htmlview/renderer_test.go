package htmlview_test

import (
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-modelview/pkg/htmlview"
	"github.com/goliatone/go-modelview/pkg/model"
)

func simpleRecord() model.Record {
	return model.Record{
		Name: "SimpleModel",
		Fields: []model.Field{
			{Name: "name", Type: model.FieldTypeString, Value: model.ScalarOf("John Doe")},
			{Name: "age", Type: model.FieldTypeInteger, Value: model.ScalarOf(30)},
			{Name: "active", Type: model.FieldTypeBoolean, Value: model.ScalarOf(true)},
		},
	}
}

func mustRender(t *testing.T, record model.Record, opts htmlview.Options, options ...htmlview.Option) string {
	t.Helper()
	renderer, err := htmlview.New(options...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := renderer.Render(record, opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return out
}

func TestRender_DisplayView(t *testing.T) {
	opts := htmlview.NewOptions()
	opts.IncludeCSS = false

	out := mustRender(t, simpleRecord(), opts)

	for _, want := range []string{
		`<div class="model-view">`,
		`<h2 class="model-title">SimpleModel</h2>`,
		`<th class="field-name">name</th>`,
		`<td class="field-value">John Doe</td>`,
		`<td class="field-value">30</td>`,
		`<td class="field-value">True</td>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if got := strings.Count(out, "model-title"); got != 1 {
		t.Errorf("expected exactly one title, got %d", got)
	}
	if strings.Contains(out, "<form") {
		t.Errorf("display view must not contain a form:\n%s", out)
	}
}

func TestRender_Idempotent(t *testing.T) {
	record := simpleRecord()
	opts := htmlview.NewOptions()

	first := mustRender(t, record, opts)
	second := mustRender(t, record, opts)
	if first != second {
		t.Fatal("identical inputs produced different output")
	}
}

func TestRender_EscapesScriptContent(t *testing.T) {
	record := model.Record{
		Name: "Payload",
		Fields: []model.Field{
			{
				Name:  "body",
				Type:  model.FieldTypeString,
				Value: model.ScalarOf(`<script>alert("x")</script>`),
			},
		},
	}
	opts := htmlview.NewOptions()
	opts.IncludeCSS = false

	out := mustRender(t, record, opts)
	if strings.Contains(out, "<script>") {
		t.Fatalf("script tag leaked into output:\n%s", out)
	}
	if !strings.Contains(out, "&lt;script&gt;") {
		t.Fatalf("expected escaped script tag:\n%s", out)
	}
}

func TestRender_NullAndEnumValues(t *testing.T) {
	record := model.Record{
		Name: "Account",
		Fields: []model.Field{
			{Name: "nickname", Type: model.FieldTypeString, Optional: true, Value: model.Null()},
			{
				Name:  "role",
				Type:  model.FieldTypeEnum,
				Enum:  []model.EnumMember{{Name: "ADMIN", Value: "admin"}},
				Value: model.EnumOf(model.EnumMember{Name: "ADMIN", Value: "admin"}),
			},
			{Name: "joined", Type: model.FieldTypeDate, Value: model.DateOf(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))},
		},
	}
	opts := htmlview.NewOptions()
	opts.IncludeCSS = false

	out := mustRender(t, record, opts)
	if !strings.Contains(out, `<td class="field-value">None</td>`) {
		t.Errorf("null value should render as None:\n%s", out)
	}
	if !strings.Contains(out, `<td class="field-value">admin</td>`) {
		t.Errorf("enum should render its underlying value, not ADMIN:\n%s", out)
	}
	if !strings.Contains(out, `<td class="field-value">2024-03-01</td>`) {
		t.Errorf("date should render ISO form:\n%s", out)
	}
}

func TestRender_NestedRecord(t *testing.T) {
	record := model.Record{
		Name: "User",
		Fields: []model.Field{
			{
				Name: "address",
				Type: model.FieldTypeRecord,
				Value: model.RecordOf(model.Record{
					Name: "Address",
					Fields: []model.Field{
						{Name: "city", Type: model.FieldTypeString, Value: model.ScalarOf("Springfield")},
					},
				}),
			},
		},
	}
	opts := htmlview.NewOptions()
	opts.IncludeCSS = false

	out := mustRender(t, record, opts)
	if !strings.Contains(out, `field-nested`) {
		t.Errorf("nested record should use the nested cell class:\n%s", out)
	}
	if !strings.Contains(out, `<td class="field-value">Springfield</td>`) {
		t.Errorf("nested field should render inline:\n%s", out)
	}
}

func TestRender_MaxDepth(t *testing.T) {
	inner := model.Record{
		Name: "Inner",
		Fields: []model.Field{
			{Name: "leaf", Type: model.FieldTypeString, Value: model.ScalarOf("deep")},
		},
	}
	outer := model.Record{
		Name: "Outer",
		Fields: []model.Field{
			{Name: "inner", Type: model.FieldTypeRecord, Value: model.RecordOf(inner)},
		},
	}

	opts := htmlview.NewOptions().WithMaxDepth(0)
	opts.IncludeCSS = false

	out := mustRender(t, outer, opts)
	if !strings.Contains(out, "[Nested Inner]") {
		t.Errorf("depth 0 should replace the nested record with its type name:\n%s", out)
	}
	if strings.Contains(out, "deep") {
		t.Errorf("depth 0 must not render nested fields:\n%s", out)
	}

	opts = htmlview.NewOptions().WithMaxDepth(1)
	opts.IncludeCSS = false
	out = mustRender(t, outer, opts)
	if !strings.Contains(out, "deep") {
		t.Errorf("depth 1 should render one nested level:\n%s", out)
	}
}

func TestRender_EmptyListRendersContainer(t *testing.T) {
	record := model.Record{
		Name: "Bag",
		Fields: []model.Field{
			{Name: "tags", Type: model.FieldTypeList, Value: model.ListOf()},
		},
	}
	opts := htmlview.NewOptions()
	opts.IncludeCSS = false

	out := mustRender(t, record, opts)
	if !strings.Contains(out, `<div class="field-list"></div>`) {
		t.Errorf("empty list should render an empty container:\n%s", out)
	}
}

func TestRender_ScalarListItems(t *testing.T) {
	record := model.Record{
		Name: "Bag",
		Fields: []model.Field{
			{Name: "tags", Type: model.FieldTypeList, Value: model.ListOf(
				model.ScalarOf("alpha"),
				model.ScalarOf("beta"),
			)},
		},
	}
	opts := htmlview.NewOptions()
	opts.IncludeCSS = false

	out := mustRender(t, record, opts)
	if got := strings.Count(out, `<div class="list-item">`); got != 2 {
		t.Errorf("expected 2 list items, got %d:\n%s", got, out)
	}
}

func TestRender_RecordList(t *testing.T) {
	item := func(sku string) model.Value {
		return model.RecordOf(model.Record{
			Name: "Item",
			Fields: []model.Field{
				{Name: "sku", Type: model.FieldTypeString, Value: model.ScalarOf(sku)},
			},
		})
	}
	order := model.Record{
		Name: "Order",
		Fields: []model.Field{
			{Name: "items", Type: model.FieldTypeList, Value: model.ListOf(item("A-1"), item("B-2"))},
		},
	}

	opts := htmlview.NewOptions()
	opts.IncludeCSS = false

	out := mustRender(t, order, opts)
	if got := strings.Count(out, `<div class="list-item">`); got != 2 {
		t.Errorf("expected 2 list items, got %d:\n%s", got, out)
	}
	for _, want := range []string{
		`<th class="field-name">sku</th>`,
		`<td class="field-value">A-1</td>`,
		`<td class="field-value">B-2</td>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("record items should render their field rows, missing %q:\n%s", want, out)
		}
	}
}

func TestRender_RecordListDepth(t *testing.T) {
	item := model.RecordOf(model.Record{
		Name: "Item",
		Fields: []model.Field{
			{Name: "sku", Type: model.FieldTypeString, Value: model.ScalarOf("A-1")},
		},
	})
	order := model.Record{
		Name: "Order",
		Fields: []model.Field{
			{Name: "items", Type: model.FieldTypeList, Value: model.ListOf(item)},
		},
	}

	// A list of records counts one nesting level per item, same as a direct
	// nested-record field.
	opts := htmlview.NewOptions().WithMaxDepth(0)
	opts.IncludeCSS = false

	out := mustRender(t, order, opts)
	if !strings.Contains(out, "[Nested Item]") {
		t.Errorf("depth 0 should replace list items with the type name:\n%s", out)
	}
	if strings.Contains(out, "sku") || strings.Contains(out, "A-1") {
		t.Errorf("depth 0 must not render item fields:\n%s", out)
	}
	if got := strings.Count(out, `<div class="list-item">`); got != 1 {
		t.Errorf("placeholder should keep the item wrapper, got %d:\n%s", got, out)
	}

	opts = htmlview.NewOptions().WithMaxDepth(1)
	opts.IncludeCSS = false
	out = mustRender(t, order, opts)
	if !strings.Contains(out, `<td class="field-value">A-1</td>`) {
		t.Errorf("depth 1 should render item fields:\n%s", out)
	}
	if strings.Contains(out, "[Nested Item]") {
		t.Errorf("depth 1 must not emit the placeholder:\n%s", out)
	}
}

func TestRender_MapEntriesInOrder(t *testing.T) {
	record := model.Record{
		Name: "Config",
		Fields: []model.Field{
			{Name: "settings", Type: model.FieldTypeMap, Value: model.MapOf(
				model.MapEntry{Key: "host", Value: model.ScalarOf("localhost")},
				model.MapEntry{Key: "port", Value: model.ScalarOf(8080)},
			)},
		},
	}
	opts := htmlview.NewOptions()
	opts.IncludeCSS = false

	out := mustRender(t, record, opts)
	host := strings.Index(out, "host")
	port := strings.Index(out, "port")
	if host < 0 || port < 0 || host > port {
		t.Fatalf("map entries out of order:\n%s", out)
	}
}

func TestRender_CSSHandling(t *testing.T) {
	record := simpleRecord()

	opts := htmlview.NewOptions()
	out := mustRender(t, record, opts)
	if got := strings.Count(out, "<style>"); got != 1 {
		t.Errorf("IncludeCSS true: expected one style block, got %d", got)
	}

	opts.IncludeCSS = false
	out = mustRender(t, record, opts)
	if strings.Contains(out, "<style>") {
		t.Errorf("IncludeCSS false: expected no style block:\n%s", out)
	}

	opts.CustomCSS = ".model-view { color: red; }"
	out = mustRender(t, record, opts)
	if !strings.Contains(out, "<style>.model-view { color: red; }</style>") {
		t.Errorf("custom CSS should be emitted verbatim:\n%s", out)
	}
	if strings.Contains(out, ":root") {
		t.Errorf("custom CSS must replace the theme block:\n%s", out)
	}
}

func TestRender_LiveUpdateAttributes(t *testing.T) {
	record := simpleRecord()

	opts := htmlview.NewOptions()
	opts.IncludeCSS = false
	opts.LiveUpdate = true

	out := mustRender(t, record, opts)
	if !strings.Contains(out, `<div class="model-view" hx-get="/refresh" hx-trigger="every 10s">`) {
		t.Errorf("full mode display should poll the refresh endpoint:\n%s", out)
	}

	opts.Editable = true
	out = mustRender(t, record, opts)
	if !strings.Contains(out, `<form class="model-form" hx-post="/submit" hx-trigger="change delay:500ms">`) {
		t.Errorf("full mode form should post on change:\n%s", out)
	}

	opts.LiveUpdateMode = htmlview.LiveUpdateNone
	out = mustRender(t, record, opts)
	if strings.Contains(out, "hx-") {
		t.Errorf("none mode must emit no hx attributes:\n%s", out)
	}
}

func TestRender_LiveUpdateZeroModeDefaultsToFull(t *testing.T) {
	record := simpleRecord()

	// Struct-literal construction leaves LiveUpdateMode empty; it must behave
	// as full rather than suppressing the attributes.
	out := mustRender(t, record, htmlview.Options{LiveUpdate: true})
	if !strings.Contains(out, `hx-get="/refresh"`) {
		t.Errorf("zero mode should default to full:\n%s", out)
	}

	out = mustRender(t, record, htmlview.Options{LiveUpdate: true, Editable: true})
	if !strings.Contains(out, `hx-post="/submit"`) {
		t.Errorf("zero mode should default to full on the form path:\n%s", out)
	}
}

func TestRender_CustomEndpoints(t *testing.T) {
	record := simpleRecord()
	opts := htmlview.NewOptions()
	opts.IncludeCSS = false
	opts.LiveUpdate = true

	out := mustRender(t, record, opts, htmlview.WithRefreshEndpoint("/api/view"))
	if !strings.Contains(out, `hx-get="/api/view"`) {
		t.Errorf("custom refresh endpoint not applied:\n%s", out)
	}
}

func TestRender_DescriptionSanitized(t *testing.T) {
	record := model.Record{
		Name:        "Doc",
		Description: `A <strong>safe</strong> note <script>alert(1)</script>`,
		Fields: []model.Field{
			{Name: "title", Type: model.FieldTypeString, Value: model.ScalarOf("x")},
		},
	}
	opts := htmlview.NewOptions()
	opts.IncludeCSS = false

	out := mustRender(t, record, opts)
	if !strings.Contains(out, `<p class="model-description">`) {
		t.Errorf("description paragraph missing:\n%s", out)
	}
	if !strings.Contains(out, "<strong>safe</strong>") {
		t.Errorf("allowed formatting stripped:\n%s", out)
	}
	if strings.Contains(out, "alert(1)") {
		t.Errorf("script content leaked through sanitizer:\n%s", out)
	}
}
