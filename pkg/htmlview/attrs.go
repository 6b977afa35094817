package htmlview

import (
	"html"
	"strings"
)

// rootAttributes returns the live-update attribute pair for the root
// container, starting with a space when non-empty. Full mode polls the
// refresh endpoint on the display view and posts changes on the form view;
// inline mode moves the attributes onto individual inputs; none adds nothing.
func (r *Renderer) rootAttributes(opts Options) string {
	if !opts.LiveUpdate || opts.liveMode() != LiveUpdateFull {
		return ""
	}

	var b strings.Builder
	if opts.Editable {
		b.WriteString(` hx-post="`)
		b.WriteString(html.EscapeString(r.submitEndpoint))
		b.WriteString(`" hx-trigger="change delay:500ms"`)
		return b.String()
	}
	b.WriteString(` hx-get="`)
	b.WriteString(html.EscapeString(r.refreshEndpoint))
	b.WriteString(`" hx-trigger="every 10s"`)
	return b.String()
}
