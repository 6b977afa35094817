package htmlview

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/goliatone/go-modelview/pkg/model"
)

// buildForm renders the editable view: title, one labelled control per field,
// and a submit button. Field-level failures degrade to a display fallback for
// that field; only structural problems (e.g. a nil control registry) error
// out to the caller, which then falls back to the display path.
func (r *Renderer) buildForm(record model.Record, opts Options) (string, error) {
	if r.controls == nil {
		return "", fmt.Errorf("htmlview: control registry is nil")
	}

	var b strings.Builder
	b.WriteString(`<h2 class="model-title">`)
	b.WriteString(html.EscapeString(record.Name))
	b.WriteString(`</h2>`)
	b.WriteString(`<div class="model-content">`)
	r.writeDescription(&b, record.Description, "model-description")
	b.WriteString(`<fieldset class="model-fields">`)

	for _, field := range record.Fields {
		control, err := r.renderFormField(field, opts)
		if err != nil {
			b.WriteString("<!-- form field \"")
			b.WriteString(commentText(field.Name))
			b.WriteString("\" failed: ")
			b.WriteString(commentText(err.Error()))
			b.WriteString(" -->")
			b.WriteString(r.displayFallbackField(field))
			continue
		}
		b.WriteString(control)
	}

	b.WriteString(`</fieldset>`)
	b.WriteString(`<div class="form-actions">`)
	b.WriteString(`<button type="submit" class="submit-button">Submit</button>`)
	b.WriteString(`</div>`)
	b.WriteString(`</div>`)
	return b.String(), nil
}

func (r *Renderer) renderFormField(field model.Field, opts Options) (string, error) {
	control, err := r.controls.Control(field.Type)
	if err != nil {
		return "", err
	}

	ctx := ControlContext{Attrs: r.controlAttrs(field, opts)}

	var b strings.Builder
	b.WriteString(`<div class="form-field">`)
	b.WriteString(`<label for="`)
	b.WriteString(html.EscapeString(field.Name))
	b.WriteString(`">`)
	b.WriteString(html.EscapeString(field.Name))
	b.WriteString(`</label>`)
	if err := control(&b, field, ctx); err != nil {
		return "", err
	}
	r.writeDescription(&b, field.Description, "form-help")
	b.WriteString(`</div>`)
	return b.String(), nil
}

// displayFallbackField emits a read-only stand-in for a field whose form
// control could not be built, keeping the rest of the form usable.
func (r *Renderer) displayFallbackField(field model.Field) string {
	var b strings.Builder
	b.WriteString(`<div class="form-field">`)
	b.WriteString(`<label>`)
	b.WriteString(html.EscapeString(field.Name))
	b.WriteString(`</label>`)
	b.WriteString(`<div class="field-value">`)
	b.WriteString(html.EscapeString(field.Value.Text()))
	b.WriteString(`</div>`)
	b.WriteString(`</div>`)
	return b.String()
}

// controlAttrs assembles the attribute string every control receives: stable
// id and name, best-effort constraint attributes, the required flag, and the
// per-input live-update pair when inline mode is active. Constraint
// extraction failures drop the constraint attributes, never the control.
func (r *Renderer) controlAttrs(field model.Field, opts Options) string {
	var b strings.Builder
	name := html.EscapeString(field.Name)
	b.WriteString(` id="`)
	b.WriteString(name)
	b.WriteString(`" name="`)
	b.WriteString(name)
	b.WriteString(`"`)

	if field.Constraints != nil {
		if attrs, err := constraintAttrs(field.Type, *field.Constraints); err == nil {
			b.WriteString(attrs)
		}
		if field.Constraints.Required {
			b.WriteString(` required`)
		}
	}

	if opts.LiveUpdate && opts.liveMode() == LiveUpdateInline {
		b.WriteString(` hx-trigger="change" hx-post="`)
		b.WriteString(html.EscapeString(r.fieldEndpoint))
		b.WriteString(`"`)
	}
	return b.String()
}

// constraintAttrs maps constraint metadata to HTML validation attributes.
// Exclusive bounds shift by the control's step so the rendered min/max stay
// inclusive: an exclusive lower bound of 0 on an integer yields min="1".
func constraintAttrs(fieldType model.FieldType, c model.Constraints) (string, error) {
	if c.Minimum != nil && c.Maximum != nil && *c.Minimum > *c.Maximum {
		return "", fmt.Errorf("htmlview: minimum %v exceeds maximum %v", *c.Minimum, *c.Maximum)
	}
	if c.MinLength != nil && *c.MinLength < 0 {
		return "", fmt.Errorf("htmlview: negative minLength %d", *c.MinLength)
	}
	if c.MaxLength != nil && *c.MaxLength < 0 {
		return "", fmt.Errorf("htmlview: negative maxLength %d", *c.MaxLength)
	}

	step := boundStep(fieldType)

	var b strings.Builder
	if c.Minimum != nil {
		bound := *c.Minimum
		if c.ExclusiveMinimum {
			bound += step
		}
		b.WriteString(` min="`)
		b.WriteString(formatBound(bound))
		b.WriteString(`"`)
	}
	if c.Maximum != nil {
		bound := *c.Maximum
		if c.ExclusiveMaximum {
			bound -= step
		}
		b.WriteString(` max="`)
		b.WriteString(formatBound(bound))
		b.WriteString(`"`)
	}
	if c.MinLength != nil {
		b.WriteString(` minlength="`)
		b.WriteString(strconv.Itoa(*c.MinLength))
		b.WriteString(`"`)
	}
	if c.MaxLength != nil {
		b.WriteString(` maxlength="`)
		b.WriteString(strconv.Itoa(*c.MaxLength))
		b.WriteString(`"`)
	}
	if c.Pattern != "" {
		// The pattern is a regular expression, not markup; it is inserted
		// verbatim.
		b.WriteString(` pattern="`)
		b.WriteString(c.Pattern)
		b.WriteString(`"`)
	}
	return b.String(), nil
}

func boundStep(fieldType model.FieldType) float64 {
	if fieldType == model.FieldTypeFloat {
		return 0.01
	}
	return 1
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// formValue is the value-attribute form of a field's current value: empty for
// null, control-appropriate layouts for dates and timestamps, underlying
// values for enum members.
func formValue(field model.Field) string {
	v := field.Value
	if v.IsNull() {
		return ""
	}
	switch v.Kind {
	case model.KindDate:
		return v.Time.Format("2006-01-02")
	case model.KindTimestamp:
		return v.Time.Format("2006-01-02T15:04")
	default:
		return v.Text()
	}
}

func textControl(b *strings.Builder, field model.Field, ctx ControlContext) error {
	b.WriteString(`<input type="text"`)
	b.WriteString(ctx.Attrs)
	b.WriteString(` value="`)
	b.WriteString(html.EscapeString(formValue(field)))
	b.WriteString(`">`)
	return nil
}

func numberControl(step string) ControlRenderer {
	return func(b *strings.Builder, field model.Field, ctx ControlContext) error {
		b.WriteString(`<input type="number" step="`)
		b.WriteString(step)
		b.WriteString(`"`)
		b.WriteString(ctx.Attrs)
		b.WriteString(` value="`)
		b.WriteString(html.EscapeString(formValue(field)))
		b.WriteString(`">`)
		return nil
	}
}

func checkboxControl(b *strings.Builder, field model.Field, ctx ControlContext) error {
	b.WriteString(`<input type="checkbox"`)
	b.WriteString(ctx.Attrs)
	if field.Value.Truthy() {
		b.WriteString(` checked`)
	}
	b.WriteString(`>`)
	return nil
}

func datetimeControl(b *strings.Builder, field model.Field, ctx ControlContext) error {
	b.WriteString(`<input type="datetime-local"`)
	b.WriteString(ctx.Attrs)
	b.WriteString(` value="`)
	b.WriteString(html.EscapeString(formValue(field)))
	b.WriteString(`">`)
	return nil
}

func dateControl(b *strings.Builder, field model.Field, ctx ControlContext) error {
	b.WriteString(`<input type="date"`)
	b.WriteString(ctx.Attrs)
	b.WriteString(` value="`)
	b.WriteString(html.EscapeString(formValue(field)))
	b.WriteString(`">`)
	return nil
}

func enumSelectControl(b *strings.Builder, field model.Field, ctx ControlContext) error {
	members := field.Enum
	if len(members) == 0 {
		if field.Value.Kind == model.KindEnum && field.Value.Enum != nil {
			members = []model.EnumMember{*field.Value.Enum}
		} else {
			return fmt.Errorf("htmlview: enum field %q has no declared members", field.Name)
		}
	}

	current := ""
	hasCurrent := false
	if field.Value.Kind == model.KindEnum && field.Value.Enum != nil {
		current = field.Value.Text()
		hasCurrent = true
	}

	b.WriteString(`<select`)
	b.WriteString(ctx.Attrs)
	b.WriteString(`>`)
	for _, member := range members {
		value := model.ScalarOf(member.Value).Text()
		writeOption(b, value, hasCurrent && value == current)
	}
	b.WriteString(`</select>`)
	return nil
}

func choiceSelectControl(b *strings.Builder, field model.Field, ctx ControlContext) error {
	if field.Constraints == nil || len(field.Constraints.Choices) == 0 {
		return fmt.Errorf("htmlview: choice field %q has no declared choices", field.Name)
	}

	current := ""
	hasCurrent := false
	if !field.Value.IsNull() {
		current = formValue(field)
		hasCurrent = true
	}

	b.WriteString(`<select`)
	b.WriteString(ctx.Attrs)
	b.WriteString(`>`)
	for _, choice := range field.Constraints.Choices {
		value := model.ScalarOf(choice).Text()
		writeOption(b, value, hasCurrent && value == current)
	}
	b.WriteString(`</select>`)
	return nil
}

func writeOption(b *strings.Builder, value string, selected bool) {
	escaped := html.EscapeString(value)
	b.WriteString(`<option value="`)
	b.WriteString(escaped)
	b.WriteString(`"`)
	if selected {
		b.WriteString(` selected`)
	}
	b.WriteString(`>`)
	b.WriteString(escaped)
	b.WriteString(`</option>`)
}

// listTextareaControl joins list elements with newlines into a textarea; no
// per-element typing is attempted.
func listTextareaControl(b *strings.Builder, field model.Field, ctx ControlContext) error {
	items := field.Value.List
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, item.Text())
	}

	b.WriteString(`<textarea`)
	b.WriteString(ctx.Attrs)
	b.WriteString(`>`)
	b.WriteString(html.EscapeString(strings.Join(lines, "\n")))
	b.WriteString(`</textarea>`)
	return nil
}

// commentText makes arbitrary text safe inside an HTML comment: escaped and
// with double hyphens broken up so the comment cannot terminate early.
func commentText(s string) string {
	return strings.ReplaceAll(html.EscapeString(s), "--", "- -")
}
