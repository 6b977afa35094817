package htmlview

import (
	"fmt"
	"math"
	"strings"
)

// LiveUpdateMode selects where live-update attributes land: the root
// container, individual inputs, or nowhere.
type LiveUpdateMode string

const (
	LiveUpdateFull   LiveUpdateMode = "full"
	LiveUpdateInline LiveUpdateMode = "inline"
	LiveUpdateNone   LiveUpdateMode = "none"
)

// Options describe one render request. The zero value is not the default
// configuration; use NewOptions (IncludeCSS defaults to true, LiveUpdateMode
// to full).
type Options struct {
	// Editable switches from the read-only display view to the form view.
	Editable bool
	// Theme names a registered stylesheet. Unknown or empty names fall back
	// to the default theme.
	Theme string
	// LiveUpdate enables declarative update-trigger attributes for a
	// hypermedia runtime. The markup is inert without one.
	LiveUpdate     bool
	LiveUpdateMode LiveUpdateMode
	// MaxDepth caps nested-record recursion. nil means unbounded; 0 renders
	// only the root record's immediate scalar fields.
	MaxDepth *int
	// IncludeCSS controls whether the theme stylesheet is prepended.
	IncludeCSS bool
	// CustomCSS, when set, replaces the theme block entirely.
	CustomCSS string
}

// NewOptions returns the default render configuration.
func NewOptions() Options {
	return Options{
		LiveUpdateMode: LiveUpdateFull,
		IncludeCSS:     true,
	}
}

// liveMode resolves the effective live-update mode: a zero-valued
// LiveUpdateMode (struct-literal construction bypassing NewOptions) counts
// as full.
func (o Options) liveMode() LiveUpdateMode {
	if o.LiveUpdateMode == "" {
		return LiveUpdateFull
	}
	return o.LiveUpdateMode
}

// WithMaxDepth returns a copy of the options with the depth cap set.
func (o Options) WithMaxDepth(depth int) Options {
	o.MaxDepth = &depth
	return o
}

// ParseOptions builds Options from a loosely-typed configuration map.
// Recognized keys: editable, theme, liveUpdate, liveUpdateMode, maxDepth,
// includeCss, customCss. Unrecognized keys are ignored. A recognized key
// holding a value of the wrong type is a contract violation and errors out;
// explicit nulls are treated as absent.
func ParseOptions(raw map[string]any) (Options, error) {
	opts := NewOptions()
	for key, value := range raw {
		if value == nil {
			continue
		}
		switch key {
		case "editable":
			b, ok := value.(bool)
			if !ok {
				return Options{}, typeError(key, "bool", value)
			}
			opts.Editable = b
		case "theme":
			s, ok := value.(string)
			if !ok {
				return Options{}, typeError(key, "string", value)
			}
			opts.Theme = s
		case "liveUpdate":
			b, ok := value.(bool)
			if !ok {
				return Options{}, typeError(key, "bool", value)
			}
			opts.LiveUpdate = b
		case "liveUpdateMode":
			s, ok := value.(string)
			if !ok {
				return Options{}, typeError(key, "string", value)
			}
			mode := LiveUpdateMode(strings.TrimSpace(s))
			switch mode {
			case LiveUpdateFull, LiveUpdateInline, LiveUpdateNone:
				opts.LiveUpdateMode = mode
			default:
				return Options{}, fmt.Errorf("htmlview: option %q: unknown mode %q", key, s)
			}
		case "maxDepth":
			depth, err := intOption(key, value)
			if err != nil {
				return Options{}, err
			}
			opts.MaxDepth = &depth
		case "includeCss":
			b, ok := value.(bool)
			if !ok {
				return Options{}, typeError(key, "bool", value)
			}
			opts.IncludeCSS = b
		case "customCss":
			s, ok := value.(string)
			if !ok {
				return Options{}, typeError(key, "string", value)
			}
			opts.CustomCSS = s
		}
	}
	return opts, nil
}

func intOption(key string, value any) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("htmlview: option %q: expected integer, got %v", key, v)
		}
		return int(v), nil
	default:
		return 0, typeError(key, "integer", value)
	}
}

func typeError(key, want string, got any) error {
	return fmt.Errorf("htmlview: option %q: expected %s, got %T", key, want, got)
}
