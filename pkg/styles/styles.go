// Package styles resolves theme names into CSS blocks. Built-in themes are
// declared as go-theme manifests whose tokens surface as CSS custom
// properties; the stylesheet bodies ship embedded with the module.
package styles

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"
)

// DefaultTheme is the fallback used for unknown or empty theme names.
const DefaultTheme = "default"

type entry struct {
	manifest   *theme.Manifest
	stylesheet string
}

// Provider maps theme names to manifests and stylesheet text. The zero value
// is not usable; construct with NewProvider.
type Provider struct {
	mu     sync.RWMutex
	themes map[string]entry
}

// NewProvider constructs a Provider pre-populated with the built-in themes
// (default, light, dark).
func NewProvider() *Provider {
	p := &Provider{themes: make(map[string]entry)}
	for _, name := range []string{"default", "light", "dark"} {
		manifest := &theme.Manifest{
			Name:    name,
			Version: "1.0.0",
			Tokens: map[string]string{
				"accent":       "#4a90e2",
				"accent-hover": "#3b7fd1",
			},
		}
		p.themes[name] = entry{manifest: manifest, stylesheet: embeddedStylesheet(name)}
	}
	return p
}

// Register adds or replaces a theme. The manifest supplies the name and the
// tokens emitted as CSS variables; stylesheet is the raw CSS body.
func (p *Provider) Register(manifest *theme.Manifest, stylesheet string) error {
	if manifest == nil {
		return fmt.Errorf("styles: manifest is required")
	}
	name := strings.TrimSpace(manifest.Name)
	if name == "" {
		return fmt.Errorf("styles: theme name is required")
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.themes[name] = entry{manifest: manifest, stylesheet: stylesheet}
	return nil
}

// CSSFor resolves a theme name to its CSS block: a :root ruleset with the
// manifest tokens as custom properties, followed by the stylesheet body.
// Unknown or empty names fall back to the default theme.
func (p *Provider) CSSFor(name string) string {
	p.mu.RLock()
	e, ok := p.themes[strings.TrimSpace(name)]
	if !ok {
		e = p.themes[DefaultTheme]
	}
	p.mu.RUnlock()

	var builder strings.Builder
	if e.manifest != nil {
		if vars := cssVarsBlock(e.manifest.Tokens); vars != "" {
			builder.WriteString(vars)
			builder.WriteByte('\n')
		}
	}
	builder.WriteString(e.stylesheet)
	return builder.String()
}

// Has reports whether a theme is registered under the given name.
func (p *Provider) Has(name string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.themes[strings.TrimSpace(name)]
	return ok
}

// Themes returns the sorted list of registered theme names.
func (p *Provider) Themes() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	names := make([]string, 0, len(p.themes))
	for name := range p.themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func cssVarsBlock(tokens map[string]string) string {
	if len(tokens) == 0 {
		return ""
	}
	keys := make([]string, 0, len(tokens))
	for key := range tokens {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var builder strings.Builder
	builder.WriteString(":root {\n")
	for _, key := range keys {
		name := key
		if !strings.HasPrefix(name, "--") {
			name = "--" + name
		}
		builder.WriteString("    ")
		builder.WriteString(name)
		builder.WriteString(": ")
		builder.WriteString(tokens[key])
		builder.WriteString(";\n")
	}
	builder.WriteString("}")
	return builder.String()
}
