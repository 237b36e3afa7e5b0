package style

// Compiler turns style-language source into CSS text. It holds no mutable
// state and may be shared between goroutines.
type Compiler struct {
	presets   Presets
	parser    *Parser
	generator *Generator
	extract   ExtractOptions
}

// NewCompiler wires a parser and generator around one preset catalog.
func NewCompiler(presets Presets, opts ExtractOptions) *Compiler {
	if presets == nil {
		presets = noPresets{}
	}
	return &Compiler{
		presets:   presets,
		parser:    NewParser(presets),
		generator: NewGenerator(presets),
		extract:   opts,
	}
}

// Rules extracts and parses every rule of src.
func (c *Compiler) Rules(src string) []ParsedRule {
	rules := ExtractRules(src, c.extract)
	out := make([]ParsedRule, 0, len(rules))
	for _, r := range rules {
		out = append(out, ParsedRule{Rule: r, Tree: c.parser.Parse(r)})
	}
	return out
}

// ParsedRule pairs a rule with its expanded property tree.
type ParsedRule struct {
	Rule
	Tree *Tree
}

// Compile renders the given sources as one stylesheet. Each source emits its
// styles, components, themes and animations in that order; sources follow
// each other in argument order. Catalog animations referenced by the output
// but not defined by any source are appended at the end.
func (c *Compiler) Compile(sources ...string) string {
	e := c.generator.newEmitter()
	defined := make(map[string]bool)

	var blocks []block
	for _, src := range sources {
		var groups [KindAnimation + 1][]block
		for _, pr := range c.Rules(src) {
			groups[pr.Kind] = append(groups[pr.Kind], e.rule(pr.Kind, pr.Name, pr.Tree)...)
			if pr.Kind == KindAnimation {
				defined[pr.Name] = true
			}
		}
		for _, g := range groups {
			blocks = append(blocks, g...)
		}
	}

	return render(append(blocks, c.referencedKeyframes(e, defined)...))
}

// CompilePresets renders catalog style presets as classes named after their
// keys, plus the keyframes they reference.
func (c *Compiler) CompilePresets(names []string) string {
	e := c.generator.newEmitter()

	var blocks []block
	for _, name := range names {
		tree, ok := c.presets.Style(name)
		if !ok {
			continue
		}
		blocks = append(blocks, e.rule(KindComponent, name, tree)...)
	}

	return render(append(blocks, c.referencedKeyframes(e, nil)...))
}

func (c *Compiler) referencedKeyframes(e *emitter, defined map[string]bool) []block {
	var out []block
	for _, name := range e.animations {
		if defined[name] {
			continue
		}
		if frames, ok := c.presets.Animation(name); ok {
			out = append(out, keyframes(name, frames))
		}
	}
	return out
}
