// Package modelview renders structured data records into HTML display views
// or editable forms, with optional theming and declarative htmx live-update
// attributes. It is a pure presentation layer: rendering never mutates the
// record, performs no I/O, and always returns a usable fragment.
package modelview

import (
	"github.com/goliatone/go-modelview/pkg/htmlview"
	"github.com/goliatone/go-modelview/pkg/model"
)

// Record is the unit being rendered; re-exported for convenience.
type Record = model.Record

// Field is a single named, typed slot inside a record.
type Field = model.Field

// Constraints carries declarative validation metadata reflected as HTML
// attributes.
type Constraints = model.Constraints

// Options describes one render request.
type Options = htmlview.Options

// Option customises renderer construction (themes, control registry,
// live-update endpoints).
type Option = htmlview.Option

// NewOptions returns the default render configuration: display mode, default
// theme, CSS included, no live updates, unbounded depth.
func NewOptions() Options {
	return htmlview.NewOptions()
}

// NewRenderer exposes the renderer constructor from the top-level module.
func NewRenderer(options ...Option) (*htmlview.Renderer, error) {
	return htmlview.New(options...)
}

// Render converts a record into an HTML fragment using a freshly constructed
// renderer. It is the simplest entry point for callers that just want HTML
// output.
func Render(record Record, opts Options, options ...Option) (string, error) {
	renderer, err := htmlview.New(options...)
	if err != nil {
		return "", err
	}
	return renderer.Render(record, opts)
}

// RenderWithConfig renders using a loosely-typed configuration map with the
// keys editable, theme, liveUpdate, liveUpdateMode, maxDepth, includeCss,
// customCss. Unrecognized keys are ignored; mistyped recognized keys error.
func RenderWithConfig(record Record, config map[string]any, options ...Option) (string, error) {
	opts, err := htmlview.ParseOptions(config)
	if err != nil {
		return "", err
	}
	return Render(record, opts, options...)
}

// RenderStruct reflects a plain Go struct into a record and renders it, the
// shortest path from an application value to markup.
func RenderStruct(v any, opts Options, options ...Option) (string, error) {
	record, err := model.FromStruct(v)
	if err != nil {
		return "", err
	}
	return Render(record, opts, options...)
}
