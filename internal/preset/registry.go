// Package preset holds the built-in catalog of reusable style fragments,
// keyframe animations and color themes.
//
// The catalog is written in the style language itself (presets.maxt) and
// parsed once when a Registry is constructed. A Registry is immutable: every
// lookup hands out a deep copy, so callers may merge or edit the result
// without affecting other compilations.
package preset

import (
	_ "embed"

	"github.com/yacobolo/animax/internal/style"
)

//go:embed presets.maxt
var catalog string

// Registry is a read-only catalog keyed by name. Style presets use
// "<category>-<name>" keys such as "cards-modern".
type Registry struct {
	styles     namedTrees
	animations namedTrees
	themes     namedTrees
}

type namedTrees struct {
	byName map[string]*style.Tree
	order  []string
}

func (n *namedTrees) add(name string, tree *style.Tree) {
	if n.byName == nil {
		n.byName = make(map[string]*style.Tree)
	}
	if _, exists := n.byName[name]; !exists {
		n.order = append(n.order, name)
	}
	n.byName[name] = tree
}

func (n namedTrees) get(name string) (*style.Tree, bool) {
	t, ok := n.byName[name]
	if !ok {
		return nil, false
	}
	return t.Clone(), true
}

func (n namedTrees) names() []string {
	return append([]string(nil), n.order...)
}

// New builds the registry from the embedded catalog.
func New() *Registry {
	return Parse(catalog)
}

// Parse builds a registry from catalog source: "@style" and "@component"
// rules become style presets, "@animations" entries become animations and
// "@theme" rules become themes. A later definition replaces an earlier one.
func Parse(src string) *Registry {
	r := &Registry{}
	for _, rule := range style.ExtractRules(src, style.ExtractOptions{}) {
		tree := style.ParseTree(rule.Body)
		switch rule.Kind {
		case style.KindStyle, style.KindComponent:
			r.styles.add(rule.Name, tree)
		case style.KindAnimation:
			r.animations.add(rule.Name, tree)
		case style.KindTheme:
			r.themes.add(rule.Name, tree)
		}
	}
	return r
}

// Style returns a copy of the style preset stored under key. A leading '@'
// is accepted.
func (r *Registry) Style(key string) (*style.Tree, bool) {
	return r.styles.get(style.PresetName(key))
}

// Animation returns a copy of the keyframes of the named animation.
func (r *Registry) Animation(name string) (*style.Tree, bool) {
	return r.animations.get(name)
}

// Theme returns a copy of the named theme.
func (r *Registry) Theme(name string) (*style.Tree, bool) {
	return r.themes.get(name)
}

// Names lists style preset keys in catalog order.
func (r *Registry) Names() []string {
	return r.styles.names()
}

// AnimationNames lists animations in catalog order.
func (r *Registry) AnimationNames() []string {
	return r.animations.names()
}

// ThemeNames lists themes in catalog order.
func (r *Registry) ThemeNames() []string {
	return r.themes.names()
}

var _ style.Presets = (*Registry)(nil)
