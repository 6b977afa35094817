package htmlview

import (
	"html"
	"strings"

	"github.com/goliatone/go-modelview/pkg/model"
)

// renderFields walks a record's declared fields in order and emits the
// display-mode rows. Depth counting starts at 0 for the root record and
// increments once per nested-record boundary, including nesting through a
// list of records. The depth rule is the single source of truth:
// depth > maxDepth emits the depth-limit placeholder and stops recursing.
func (r *Renderer) renderFields(b *strings.Builder, record model.Record, depth int, maxDepth *int) {
	if maxDepth != nil && depth > *maxDepth {
		b.WriteString(`<div class="model-summary">[Nested model, depth limit reached]</div>`)
		return
	}

	b.WriteString(`<table class="model-fields">`)
	for _, field := range record.Fields {
		b.WriteString(`<tr>`)
		b.WriteString(`<th class="field-name">`)
		b.WriteString(html.EscapeString(field.Name))
		b.WriteString(`</th>`)
		r.renderFieldValue(b, field.Value, depth, maxDepth)
		b.WriteString(`</tr>`)
	}
	b.WriteString(`</table>`)
}

// renderFieldValue dispatches exhaustively over the value variant and writes
// the field's <td> cell.
func (r *Renderer) renderFieldValue(b *strings.Builder, value model.Value, depth int, maxDepth *int) {
	switch value.Kind {
	case model.KindRecord:
		r.renderNestedRecord(b, value.Record, depth, maxDepth)
	case model.KindMap:
		r.renderMap(b, value.Entries)
	case model.KindList:
		r.renderList(b, value.List, depth, maxDepth)
	default:
		// Enum, date, timestamp, null, and scalar all reduce to escaped text.
		b.WriteString(`<td class="field-value">`)
		b.WriteString(html.EscapeString(value.Text()))
		b.WriteString(`</td>`)
	}
}

func (r *Renderer) renderNestedRecord(b *strings.Builder, nested *model.Record, depth int, maxDepth *int) {
	if nested == nil {
		b.WriteString(`<td class="field-value">None</td>`)
		return
	}
	if maxDepth != nil && depth >= *maxDepth {
		// The next level would exceed the cap; show only the type name.
		b.WriteString(`<td class="field-value">[Nested `)
		b.WriteString(html.EscapeString(nested.Name))
		b.WriteString(`]</td>`)
		return
	}
	b.WriteString(`<td class="field-value field-nested">`)
	r.renderFields(b, *nested, depth+1, maxDepth)
	b.WriteString(`</td>`)
}

// renderMap emits a nested two-column table of escaped key/value pairs. An
// empty mapping still renders its (empty) table.
func (r *Renderer) renderMap(b *strings.Builder, entries []model.MapEntry) {
	b.WriteString(`<td class="field-value field-nested">`)
	b.WriteString(`<table class="model-fields">`)
	for _, entry := range entries {
		b.WriteString(`<tr><th class="field-name">`)
		b.WriteString(html.EscapeString(entry.Key))
		b.WriteString(`</th><td class="field-value">`)
		b.WriteString(html.EscapeString(entry.Value.Text()))
		b.WriteString(`</td></tr>`)
	}
	b.WriteString(`</table>`)
	b.WriteString(`</td>`)
}

// renderList renders record elements through the recursive path and scalar
// elements as escaped list items. An empty list renders an empty container
// rather than being omitted.
func (r *Renderer) renderList(b *strings.Builder, items []model.Value, depth int, maxDepth *int) {
	b.WriteString(`<td class="field-value field-list">`)
	if len(items) > 0 && items[0].Kind == model.KindRecord {
		for _, item := range items {
			b.WriteString(`<div class="list-item">`)
			if item.Kind == model.KindRecord && item.Record != nil {
				if maxDepth != nil && depth >= *maxDepth {
					b.WriteString(`[Nested `)
					b.WriteString(html.EscapeString(item.Record.Name))
					b.WriteString(`]`)
				} else {
					r.renderFields(b, *item.Record, depth+1, maxDepth)
				}
			} else {
				b.WriteString(html.EscapeString(item.Text()))
			}
			b.WriteString(`</div>`)
		}
	} else {
		b.WriteString(`<div class="field-list">`)
		for _, item := range items {
			b.WriteString(`<div class="list-item">`)
			b.WriteString(html.EscapeString(item.Text()))
			b.WriteString(`</div>`)
		}
		b.WriteString(`</div>`)
	}
	b.WriteString(`</td>`)
}
