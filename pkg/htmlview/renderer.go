package htmlview

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-modelview/pkg/model"
	"github.com/goliatone/go-modelview/pkg/styles"
)

// Option customises renderer construction.
type Option func(*config)

type config struct {
	styles          *styles.Provider
	controls        *ControlRegistry
	refreshEndpoint string
	submitEndpoint  string
	fieldEndpoint   string
	sanitizer       *bluemonday.Policy
}

// WithStyles injects a theme provider. Defaults to the built-in themes.
func WithStyles(provider *styles.Provider) Option {
	return func(cfg *config) {
		if provider != nil {
			cfg.styles = provider
		}
	}
}

// WithControlRegistry injects a custom form-control registry.
func WithControlRegistry(registry *ControlRegistry) Option {
	return func(cfg *config) {
		if registry != nil {
			cfg.controls = registry
		}
	}
}

// WithRefreshEndpoint overrides the URL the display view polls in full
// live-update mode. Defaults to /refresh.
func WithRefreshEndpoint(endpoint string) Option {
	return func(cfg *config) {
		if strings.TrimSpace(endpoint) != "" {
			cfg.refreshEndpoint = endpoint
		}
	}
}

// WithSubmitEndpoint overrides the URL the form posts to in full live-update
// mode. Defaults to /submit.
func WithSubmitEndpoint(endpoint string) Option {
	return func(cfg *config) {
		if strings.TrimSpace(endpoint) != "" {
			cfg.submitEndpoint = endpoint
		}
	}
}

// WithFieldEndpoint overrides the per-input update URL used in inline
// live-update mode. Defaults to /update-field.
func WithFieldEndpoint(endpoint string) Option {
	return func(cfg *config) {
		if strings.TrimSpace(endpoint) != "" {
			cfg.fieldEndpoint = endpoint
		}
	}
}

// WithSanitizer overrides the policy applied to record and field
// descriptions before they are emitted as help text.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		if policy != nil {
			cfg.sanitizer = policy
		}
	}
}

// Renderer converts records into HTML fragments. It is immutable after
// construction and safe for concurrent use; rendering never mutates the
// record and identical inputs produce byte-identical output.
type Renderer struct {
	styles          *styles.Provider
	controls        *ControlRegistry
	refreshEndpoint string
	submitEndpoint  string
	fieldEndpoint   string
	sanitizer       *bluemonday.Policy
}

// New constructs a Renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		refreshEndpoint: "/refresh",
		submitEndpoint:  "/submit",
		fieldEndpoint:   "/update-field",
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.styles == nil {
		cfg.styles = styles.NewProvider()
	}
	if cfg.controls == nil {
		cfg.controls = NewDefaultControlRegistry()
	}
	if cfg.sanitizer == nil {
		cfg.sanitizer = descriptionPolicy()
	}

	return &Renderer{
		styles:          cfg.styles,
		controls:        cfg.controls,
		refreshEndpoint: cfg.refreshEndpoint,
		submitEndpoint:  cfg.submitEndpoint,
		fieldEndpoint:   cfg.fieldEndpoint,
		sanitizer:       cfg.sanitizer,
	}, nil
}

// Render produces the HTML fragment for a record. The only errors returned
// are configuration contract violations surfaced before rendering begins;
// rendering itself always yields a usable fragment, degrading the form path
// to the display path on internal failure.
func (r *Renderer) Render(record model.Record, opts Options) (string, error) {
	var b strings.Builder

	if css := r.resolveCSS(opts); css != "" {
		b.WriteString("<style>")
		b.WriteString(css)
		b.WriteString("</style>")
	}

	if opts.Editable {
		form, err := r.buildForm(record, opts)
		if err != nil {
			b.WriteString("<!-- form rendering failed: ")
			b.WriteString(commentText(err.Error()))
			b.WriteString(" -->")
			r.renderDisplay(&b, record, opts)
			return b.String(), nil
		}
		b.WriteString(`<form class="model-form"`)
		b.WriteString(r.rootAttributes(opts))
		b.WriteString(`>`)
		b.WriteString(form)
		b.WriteString(`</form>`)
		return b.String(), nil
	}

	r.renderDisplay(&b, record, opts)
	return b.String(), nil
}

func (r *Renderer) renderDisplay(b *strings.Builder, record model.Record, opts Options) {
	b.WriteString(`<div class="model-view"`)
	b.WriteString(r.rootAttributes(opts))
	b.WriteString(`>`)
	b.WriteString(`<h2 class="model-title">`)
	b.WriteString(html.EscapeString(record.Name))
	b.WriteString(`</h2>`)
	b.WriteString(`<div class="model-content">`)
	r.writeDescription(b, record.Description, "model-description")
	r.renderFields(b, record, 0, opts.MaxDepth)
	b.WriteString(`</div>`)
	b.WriteString(`</div>`)
}

// resolveCSS picks the stylesheet for this render. Custom CSS replaces the
// theme block entirely; with IncludeCSS disabled and no custom CSS, no style
// element is emitted at all.
func (r *Renderer) resolveCSS(opts Options) string {
	if opts.CustomCSS != "" {
		return opts.CustomCSS
	}
	if !opts.IncludeCSS {
		return ""
	}
	return r.styles.CSSFor(opts.Theme)
}

func (r *Renderer) writeDescription(b *strings.Builder, description, class string) {
	trimmed := strings.TrimSpace(description)
	if trimmed == "" {
		return
	}
	cleaned := strings.TrimSpace(r.sanitizer.Sanitize(trimmed))
	if cleaned == "" {
		return
	}
	if class == "form-help" {
		b.WriteString(`<small class="form-help">`)
		b.WriteString(cleaned)
		b.WriteString(`</small>`)
		return
	}
	b.WriteString(`<p class="`)
	b.WriteString(class)
	b.WriteString(`">`)
	b.WriteString(cleaned)
	b.WriteString(`</p>`)
}

// descriptionPolicy permits a small inline-formatting subset in description
// help text; everything else, scripts included, is stripped.
func descriptionPolicy() *bluemonday.Policy {
	policy := bluemonday.StrictPolicy()
	policy.AllowElements("b", "i", "em", "strong", "code", "small", "br")
	policy.AllowAttrs("href").OnElements("a")
	policy.AllowStandardURLs()
	return policy
}
