package page

import (
	"regexp"
	"sort"
	"strings"
)

// Tag maps a structural marker such as "@card" to the attribute text that
// replaces it.
type Tag struct {
	Marker      string
	Replacement string
}

// TagTable is applied in order; each entry is a global literal replacement.
type TagTable []Tag

var builtinMarkers = []string{
	"container", "flex", "grid", "center",
	"title", "text", "button", "input", "card",
}

// DefaultTags returns the fixed layout and component markers.
func DefaultTags() TagTable {
	tags := make(TagTable, 0, len(builtinMarkers))
	for _, name := range builtinMarkers {
		tags = append(tags, classTag(name))
	}
	return tags
}

// NewTagTable returns a table with one "@<key>" marker per preset key
// followed by the default markers. Preset markers come first, longest
// first, so "@cards-modern" is rewritten before "@card" can match its
// prefix.
func NewTagTable(presetKeys []string) TagTable {
	keys := append([]string(nil), presetKeys...)
	sort.SliceStable(keys, func(i, j int) bool { return len(keys[i]) > len(keys[j]) })

	tags := make(TagTable, 0, len(keys)+len(builtinMarkers))
	for _, key := range keys {
		tags = append(tags, classTag(key))
	}
	return append(tags, DefaultTags()...)
}

func classTag(name string) Tag {
	return Tag{Marker: "@" + name, Replacement: `class="` + name + `"`}
}

// Rewrite applies every tag to text.
func (t TagTable) Rewrite(text string) string {
	for _, tag := range t {
		text = strings.ReplaceAll(text, tag.Marker, tag.Replacement)
	}
	return text
}

// Template is a compiled template: literal text interleaved with
// interpolation expressions that are evaluated at render time.
type Template struct {
	segments []segment
}

type segment struct {
	text string
	expr string
	raw  string // "{...}" as written, for expressions
}

func (s segment) isExpr() bool { return s.expr != "" }

var interpolation = regexp.MustCompile(`\{([^}]+)\}`)

// Compile rewrites the structural markers of a template region and splits
// it at every "{expression}" span. Expression text is kept verbatim apart
// from surrounding whitespace; it is not validated here.
func Compile(text string, tags TagTable) *Template {
	text = tags.Rewrite(text)

	tmpl := &Template{}
	last := 0
	for _, loc := range interpolation.FindAllStringSubmatchIndex(text, -1) {
		expr := strings.TrimSpace(text[loc[2]:loc[3]])
		if expr == "" {
			continue
		}
		tmpl.literal(text[last:loc[0]])
		tmpl.segments = append(tmpl.segments, segment{expr: expr, raw: text[loc[0]:loc[1]]})
		last = loc[1]
	}
	tmpl.literal(text[last:])
	return tmpl
}

func (t *Template) literal(s string) {
	if s == "" {
		return
	}
	t.segments = append(t.segments, segment{text: s})
}

// Expressions lists the interpolation expressions in template order.
func (t *Template) Expressions() []string {
	var out []string
	for _, seg := range t.segments {
		if seg.isExpr() {
			out = append(out, seg.expr)
		}
	}
	return out
}

// Source renders the compiled template back to text with every expression
// written as "${expression}".
func (t *Template) Source() string {
	var b strings.Builder
	for _, seg := range t.segments {
		if seg.isExpr() {
			b.WriteString("${" + seg.expr + "}")
			continue
		}
		b.WriteString(seg.text)
	}
	return b.String()
}

// Static returns the literal text of the template with expressions
// removed. Line breaks inside removed expressions are kept so line numbers
// still match the template.
func (t *Template) Static() string {
	var b strings.Builder
	for _, seg := range t.segments {
		if seg.isExpr() {
			b.WriteString(strings.Repeat("\n", strings.Count(seg.raw, "\n")))
			continue
		}
		b.WriteString(seg.text)
	}
	return b.String()
}
