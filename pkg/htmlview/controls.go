package htmlview

import (
	"fmt"
	"strings"
	"sync"

	"github.com/goliatone/go-modelview/pkg/model"
)

// ControlContext carries per-control data assembled by the form renderer.
type ControlContext struct {
	// Attrs is the pre-built attribute string (id, name, constraint
	// attributes, live-update attributes), starting with a space when
	// non-empty.
	Attrs string
}

// ControlRenderer writes one HTML form control for a field.
type ControlRenderer func(b *strings.Builder, field model.Field, ctx ControlContext) error

// ControlRegistry maps declared field types to control renderers. Callers can
// override defaults or register renderers for custom field types.
type ControlRegistry struct {
	mu       sync.RWMutex
	controls map[model.FieldType]ControlRenderer
}

// NewControlRegistry creates an empty registry.
func NewControlRegistry() *ControlRegistry {
	return &ControlRegistry{controls: make(map[model.FieldType]ControlRenderer)}
}

// Register associates a renderer with a field type. Existing entries are
// replaced.
func (r *ControlRegistry) Register(fieldType model.FieldType, control ControlRenderer) error {
	if strings.TrimSpace(string(fieldType)) == "" {
		return fmt.Errorf("htmlview: control field type is required")
	}
	if control == nil {
		return fmt.Errorf("htmlview: control renderer for %q is nil", fieldType)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.controls[fieldType] = control
	return nil
}

// MustRegister mirrors Register but panics on error, simplifying default
// registry construction.
func (r *ControlRegistry) MustRegister(fieldType model.FieldType, control ControlRenderer) {
	if err := r.Register(fieldType, control); err != nil {
		panic(err)
	}
}

// Control resolves the renderer for a field type.
func (r *ControlRegistry) Control(fieldType model.FieldType) (ControlRenderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	control, ok := r.controls[fieldType]
	if !ok {
		return nil, fmt.Errorf("htmlview: no control registered for field type %q", fieldType)
	}
	return control, nil
}

// NewDefaultControlRegistry constructs a registry pre-populated with the
// built-in controls covering every declared field type. Map, record, and any
// typed fields fall back to a text input over the value's string form.
func NewDefaultControlRegistry() *ControlRegistry {
	registry := NewControlRegistry()

	registry.MustRegister(model.FieldTypeString, textControl)
	registry.MustRegister(model.FieldTypeInteger, numberControl("1"))
	registry.MustRegister(model.FieldTypeFloat, numberControl("0.01"))
	registry.MustRegister(model.FieldTypeBoolean, checkboxControl)
	registry.MustRegister(model.FieldTypeTimestamp, datetimeControl)
	registry.MustRegister(model.FieldTypeDate, dateControl)
	registry.MustRegister(model.FieldTypeEnum, enumSelectControl)
	registry.MustRegister(model.FieldTypeChoice, choiceSelectControl)
	registry.MustRegister(model.FieldTypeList, listTextareaControl)
	registry.MustRegister(model.FieldTypeMap, textControl)
	registry.MustRegister(model.FieldTypeRecord, textControl)
	registry.MustRegister(model.FieldTypeAny, textControl)

	return registry
}
