package style

import (
	"strings"
)

// Breakpoint media queries used by "responsive" blocks.
var breakpoints = map[string]string{
	"mobile":  "(max-width: 768px)",
	"tablet":  "(min-width: 769px) and (max-width: 1024px)",
	"desktop": "(min-width: 1025px)",
}

// block is one emitted CSS block: either a rule with declarations or an
// at-rule/keyframe group wrapping nested blocks.
type block struct {
	selector string
	decls    []Declaration
	children []block
	group    bool
}

// Generator converts property trees into CSS. It is safe for concurrent use.
type Generator struct {
	presets Presets
}

// NewGenerator creates a generator. A nil catalog disables preset animation
// lookups.
func NewGenerator(presets Presets) *Generator {
	if presets == nil {
		presets = noPresets{}
	}
	return &Generator{presets: presets}
}

// Generate renders one rule's tree as CSS text.
func (g *Generator) Generate(kind Kind, name string, tree *Tree) string {
	e := g.newEmitter()
	return render(e.rule(kind, name, tree))
}

// emitter carries per-compilation state: the preset animations referenced
// by generated declarations, in first-reference order.
type emitter struct {
	presets    Presets
	animations []string
	seen       map[string]bool
}

func (g *Generator) newEmitter() *emitter {
	return &emitter{presets: g.presets, seen: make(map[string]bool)}
}

func (e *emitter) rule(kind Kind, name string, tree *Tree) []block {
	switch kind {
	case KindTheme:
		return []block{e.theme(tree)}
	case KindAnimation:
		return []block{keyframes(name, tree)}
	default:
		return e.walk(ruleSelector(name), tree)
	}
}

// ruleSelector turns a rule name into a selector: bare names become classes,
// names that already look like selectors are kept.
func ruleSelector(name string) string {
	if name == "" {
		return name
	}
	switch name[0] {
	case '.', '#', ':', '[', '*', '&':
		return name
	}
	return "." + name
}

// walk emits the selector's own declarations first, then its nested blocks,
// both in tree order.
func (e *emitter) walk(sel string, t *Tree) []block {
	own := block{selector: sel}
	var nested []block

	for _, entry := range t.Entries() {
		if !entry.IsTree() {
			if entry.Key == "preset" {
				continue
			}
			own.decls = append(own.decls, e.convert(entry.Key, entry.Value)...)
			continue
		}

		switch entry.Key {
		case "animation", "colors":
			own.decls = append(own.decls, e.convertBlock(entry.Key, entry.Tree)...)

		case "base":
			inner := e.walk(sel, entry.Tree)
			if len(inner) > 0 && !inner[0].group && inner[0].selector == sel {
				own.decls = append(own.decls, inner[0].decls...)
				inner = inner[1:]
			}
			nested = append(nested, inner...)

		case "states":
			for _, st := range entry.Tree.Entries() {
				if st.IsTree() {
					nested = append(nested, e.walk(nestSelector(sel, "&:"+st.Key), st.Tree)...)
				}
			}

		case "sizes":
			for _, sz := range entry.Tree.Entries() {
				if sz.IsTree() {
					nested = append(nested, e.walk(nestSelector(sel, "&--"+sz.Key), sz.Tree)...)
				}
			}

		case "responsive":
			for _, bp := range entry.Tree.Entries() {
				query, ok := mediaQuery(bp.Key)
				if !ok || !bp.IsTree() {
					continue
				}
				if inner := e.walk(sel, bp.Tree); len(inner) > 0 {
					nested = append(nested, block{selector: "@media " + query, children: inner, group: true})
				}
			}

		default:
			nested = append(nested, e.walk(nestSelector(sel, entry.Key), entry.Tree)...)
		}
	}

	var out []block
	if len(own.decls) > 0 {
		out = append(out, own)
	}
	return append(out, nested...)
}

func (e *emitter) convert(key, value string) []Declaration {
	if key == "animation" {
		for _, field := range strings.Fields(value) {
			e.reference(field)
		}
	}
	return ConvertProperty(key, value)
}

func (e *emitter) convertBlock(key string, t *Tree) []Declaration {
	if key == "animation" {
		if name, ok := t.Get("type"); ok {
			e.reference(name)
		}
	}
	return blockConverters[key](t)
}

// reference records a preset animation used by a declaration.
func (e *emitter) reference(name string) {
	if e.seen[name] {
		return
	}
	if _, ok := e.presets.Animation(name); !ok {
		return
	}
	e.seen[name] = true
	e.animations = append(e.animations, name)
}

func (e *emitter) theme(t *Tree) block {
	b := block{selector: ":root"}
	for _, c := range t.Child("colors").Entries() {
		if !c.IsTree() {
			b.decls = append(b.decls, decl("--color-"+c.Key, c.Value))
		}
	}
	for _, s := range t.Child("shadows").Entries() {
		if !s.IsTree() {
			b.decls = append(b.decls, decl("--shadow-"+s.Key, s.Value))
		}
	}
	return b
}

// keyframes emits frames verbatim: frame selectors and declarations are not
// run through the conversion table.
func keyframes(name string, t *Tree) block {
	b := block{selector: "@keyframes " + name, group: true}
	for _, f := range t.Entries() {
		if !f.IsTree() {
			continue
		}
		frame := block{selector: f.Key}
		for _, d := range f.Tree.Entries() {
			if !d.IsTree() {
				frame.decls = append(frame.decls, decl(d.Key, d.Value))
			}
		}
		b.children = append(b.children, frame)
	}
	return b
}

func mediaQuery(key string) (string, bool) {
	if q, ok := breakpoints[key]; ok {
		return q, true
	}
	if strings.HasPrefix(key, "(") {
		return key, true
	}
	return "", false
}

// nestSelector combines a parent selector with a nested key. "&" in the key
// stands for the parent, keys starting with ':' attach to it, anything else
// becomes a descendant. Comma-separated lists combine pairwise.
func nestSelector(parent, key string) string {
	if strings.HasPrefix(key, ":") {
		key = "&" + key
	}
	var out []string
	for _, p := range splitList(parent) {
		for _, k := range splitList(key) {
			switch {
			case strings.Contains(k, "&"):
				out = append(out, strings.ReplaceAll(k, "&", p))
			case p == "":
				out = append(out, k)
			default:
				out = append(out, p+" "+k)
			}
		}
	}
	return strings.Join(out, ", ")
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func render(blocks []block) string {
	var b strings.Builder
	for i, blk := range blocks {
		if i > 0 {
			b.WriteByte('\n')
		}
		writeBlock(&b, blk, "")
	}
	return b.String()
}

func writeBlock(b *strings.Builder, blk block, indent string) {
	b.WriteString(indent)
	b.WriteString(blk.selector)
	b.WriteString(" {\n")
	for _, d := range blk.decls {
		b.WriteString(indent)
		b.WriteString("  ")
		b.WriteString(d.String())
		b.WriteByte('\n')
	}
	for _, child := range blk.children {
		writeBlock(b, child, indent+"  ")
	}
	b.WriteString(indent)
	b.WriteString("}\n")
}
