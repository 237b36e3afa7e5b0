package style

import "strings"

// Presets is the read-only lookup surface the parser and generator need from
// a preset catalog. Lookups return private copies.
type Presets interface {
	Style(name string) (*Tree, bool)
	Animation(name string) (*Tree, bool)
	Theme(name string) (*Tree, bool)
}

// noPresets is used when a Parser or Generator is built without a catalog.
type noPresets struct{}

func (noPresets) Style(string) (*Tree, bool)     { return nil, false }
func (noPresets) Animation(string) (*Tree, bool) { return nil, false }
func (noPresets) Theme(string) (*Tree, bool)     { return nil, false }

// ParseTree parses a rule body into a property tree.
//
// Lines ending in '{' open a nested block keyed by the text before the brace
// (a trailing ':' on the key is dropped, so "colors: {" and "colors {" are
// the same). A '}' line closes the innermost block; closing past the root is
// ignored. Every other line is split on its first ':' into key and value,
// with one trailing ';' removed from the value. Lines with an empty key or
// value are skipped.
func ParseTree(body string) *Tree {
	root := NewTree()
	stack := []*Tree{root}

	for _, line := range logicalLines(body) {
		cur := stack[len(stack)-1]

		switch {
		case line == "}":
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}

		case strings.HasSuffix(line, "{"):
			child := NewTree()
			if key := blockKey(line); key != "" {
				cur.SetTree(key, child)
			}
			// Unnamed blocks are still pushed so their '}' stays balanced.
			stack = append(stack, child)

		case strings.HasPrefix(line, "//"):

		default:
			if key, value, ok := splitDeclaration(line); ok {
				cur.Set(key, value)
			}
		}
	}

	return root
}

func blockKey(line string) string {
	key := strings.TrimSpace(strings.TrimSuffix(line, "{"))
	return strings.TrimSpace(strings.TrimSuffix(key, ":"))
}

func splitDeclaration(line string) (string, string, bool) {
	key, value, ok := strings.Cut(line, ":")
	if !ok {
		return "", "", false
	}
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(value), ";"))
	if key == "" || value == "" {
		return "", "", false
	}
	return key, value, true
}

// Parser turns extracted rules into property trees and expands preset
// references against an injected catalog.
type Parser struct {
	presets Presets
}

// NewParser creates a parser. A nil catalog disables preset expansion.
func NewParser(presets Presets) *Parser {
	if presets == nil {
		presets = noPresets{}
	}
	return &Parser{presets: presets}
}

// Parse builds the property tree for a rule. Style and component rules with a
// "preset" key get the referenced catalog entry merged in; theme rules may
// reference a catalog theme the same way. Explicit keys always win.
func (p *Parser) Parse(rule Rule) *Tree {
	tree := ParseTree(rule.Body)

	name, ok := tree.Get("preset")
	if !ok {
		return tree
	}
	name = PresetName(name)

	switch rule.Kind {
	case KindStyle, KindComponent:
		if preset, ok := p.presets.Style(name); ok {
			mergePreset(tree, preset)
		}
	case KindTheme:
		if theme, ok := p.presets.Theme(name); ok {
			tree.MergeMissing(theme)
		}
	}

	return tree
}

// PresetName normalizes a preset reference: "@cards-modern" and
// "cards-modern" name the same entry.
func PresetName(ref string) string {
	ref = strings.TrimSpace(ref)
	ref = strings.Trim(ref, `"'`)
	return strings.TrimPrefix(ref, "@")
}

// mergePreset folds a catalog entry into a user tree. The preset's "base"
// block lands where the user writes bare declarations: inside the user's own
// "base" block when there is one, at the top level otherwise. Everything else
// merges deeply. The merge never overwrites user keys.
func mergePreset(tree, preset *Tree) {
	if base := preset.Child("base"); base != nil {
		if userBase := tree.Child("base"); userBase != nil {
			userBase.MergeMissing(base)
		} else {
			tree.MergeMissing(base)
		}
	}

	rest := NewTree()
	for _, e := range preset.Entries() {
		if e.Key == "base" && e.Tree != nil {
			continue
		}
		rest.put(e)
	}
	tree.MergeMissing(rest)
}
