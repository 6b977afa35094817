// Package pageshell wraps rendered fragments into complete HTML documents
// for example drivers and the CLI. The core renderer emits fragments only;
// everything here is optional glue.
package pageshell

import (
	"fmt"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	gotemplatepkg "github.com/goliatone/go-template"
)

const defaultPageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{ title }}</title>
{% if htmx %}<script src="https://unpkg.com/htmx.org@1.9.10"></script>{% endif %}
</head>
<body>
{{ fragment|safe }}
</body>
</html>
`

// Option configures the engine before construction.
type Option func(*config)

type config struct {
	pageTemplate string
}

// WithPageTemplate overrides the default document template. The template
// receives title, fragment, and htmx context values.
func WithPageTemplate(tmpl string) Option {
	return func(cfg *config) {
		if strings.TrimSpace(tmpl) != "" {
			cfg.pageTemplate = tmpl
		}
	}
}

// WithGoTemplateOptions exists for backward compatibility with callers that
// configured the engine through go-template options; it is currently a no-op.
func WithGoTemplateOptions(_ ...gotemplatepkg.Option) Option {
	return func(*config) {}
}

// Engine renders document shells from a pongo2 template.
type Engine struct {
	mu       sync.Mutex
	set      *pongo2.TemplateSet
	raw      string
	compiled *pongo2.Template
}

// New constructs an Engine using the provided options.
func New(options ...Option) (*Engine, error) {
	cfg := &config{pageTemplate: defaultPageTemplate}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	return &Engine{
		set: pongo2.NewSet("pageshell", pongo2.MustNewLocalFileSystemLoader("")),
		raw: cfg.pageTemplate,
	}, nil
}

// RenderPage wraps a pre-rendered HTML fragment into a full document. The
// fragment is inserted as-is; it must already be escaped by the renderer
// that produced it.
func (e *Engine) RenderPage(title, fragment string, htmx bool) (string, error) {
	if e == nil || e.set == nil {
		return "", fmt.Errorf("pageshell: engine is nil")
	}

	tmpl, err := e.template()
	if err != nil {
		return "", err
	}

	out, err := tmpl.Execute(pongo2.Context{
		"title":    title,
		"fragment": fragment,
		"htmx":     htmx,
	})
	if err != nil {
		return "", fmt.Errorf("pageshell: execute template: %w", err)
	}
	return out, nil
}

func (e *Engine) template() (*pongo2.Template, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.compiled != nil {
		return e.compiled, nil
	}
	tmpl, err := e.set.FromString(e.raw)
	if err != nil {
		return nil, fmt.Errorf("pageshell: parse template: %w", err)
	}
	e.compiled = tmpl
	return tmpl, nil
}
