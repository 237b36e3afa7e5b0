package style

import (
	"strings"
)

// Shadow presets accepted by the "shadow" property.
var shadowPresets = map[string]string{
	"small":  "0 2px 4px rgba(0,0,0,0.1)",
	"medium": "0 4px 8px rgba(0,0,0,0.1)",
	"large":  "0 8px 16px rgba(0,0,0,0.1)",
}

const defaultGridColumns = "repeat(auto-fit, minmax(250px, 1fr))"

// Declaration is a single "property: value" pair.
type Declaration struct {
	Property string
	Value    string
}

func (d Declaration) String() string {
	return d.Property + ": " + d.Value + ";"
}

func decl(property, value string) Declaration {
	return Declaration{Property: property, Value: value}
}

// valueConverters expand semantic properties with literal values.
var valueConverters = map[string]func(string) []Declaration{
	"layout": func(v string) []Declaration {
		kind, rest, _ := strings.Cut(strings.TrimSpace(v), " ")
		rest = strings.TrimSpace(rest)
		switch kind {
		case "flex":
			if rest == "" {
				rest = "row"
			}
			return []Declaration{decl("display", "flex"), decl("flex-direction", rest)}
		case "grid":
			if rest == "" {
				rest = defaultGridColumns
			}
			return []Declaration{decl("display", "grid"), decl("grid-template-columns", rest)}
		}
		return []Declaration{decl("display", v)}
	},
	"spacing": func(v string) []Declaration {
		return []Declaration{decl("gap", v)}
	},
	"align": func(v string) []Declaration {
		if v == "center" {
			return []Declaration{
				decl("display", "flex"),
				decl("justify-content", "center"),
				decl("align-items", "center"),
			}
		}
		return []Declaration{decl("text-align", v)}
	},
	"justify": func(v string) []Declaration {
		return []Declaration{decl("justify-content", v)}
	},
	"shadow": func(v string) []Declaration {
		if literal, ok := shadowPresets[v]; ok {
			v = literal
		}
		return []Declaration{decl("box-shadow", v)}
	},
	"animation": func(v string) []Declaration {
		return []Declaration{decl("animation", v)}
	},
	"colors": func(v string) []Declaration {
		return []Declaration{decl("color", v)}
	},
	"radius": func(v string) []Declaration {
		return []Declaration{decl("border-radius", v)}
	},
	"scale": func(v string) []Declaration {
		return []Declaration{decl("transform", "scale("+v+")")}
	},
	"brightness": func(v string) []Declaration {
		return []Declaration{decl("filter", "brightness("+v+")")}
	},
}

// blockConverters expand semantic properties written as nested blocks.
var blockConverters = map[string]func(*Tree) []Declaration{
	"animation": func(t *Tree) []Declaration {
		var out []Declaration
		if name, ok := t.Get("type"); ok {
			out = append(out, decl("animation-name", name))
		}
		out = append(out,
			decl("animation-duration", getOr(t, "duration", "0.3s")),
			decl("animation-timing-function", getOr(t, "timing", "ease")),
		)
		if v, ok := t.Get("delay"); ok {
			out = append(out, decl("animation-delay", v))
		}
		if v, ok := t.Get("iteration"); ok {
			out = append(out, decl("animation-iteration-count", v))
		}
		return out
	},
	"colors": func(t *Tree) []Declaration {
		var out []Declaration
		for _, e := range t.Entries() {
			if e.IsTree() {
				continue
			}
			switch e.Key {
			case "background":
				out = append(out, decl("background-color", e.Value))
			case "text":
				out = append(out, decl("color", e.Value))
			default:
				out = append(out, decl(e.Key+"-color", e.Value))
			}
		}
		return out
	},
}

// ConvertProperty expands one semantic key/value pair into CSS declarations.
// Keys outside the conversion table pass through unchanged.
func ConvertProperty(key, value string) []Declaration {
	if fn, ok := valueConverters[key]; ok {
		return fn(value)
	}
	return []Declaration{decl(key, value)}
}

func getOr(t *Tree, key, fallback string) string {
	if v, ok := t.Get(key); ok {
		return v
	}
	return fallback
}
