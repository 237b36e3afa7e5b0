// Package page compiles page sources: a "@page { }" config block, a
// "@backend { }" logic block and a "<template>" region with structural
// markers and "{expression}" interpolations.
package page

import (
	"regexp"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

// Sections holds the three raw regions of a page source. A region whose
// markers are missing is empty.
type Sections struct {
	Config   string
	Logic    string
	Template string
}

// Options controls section extraction.
type Options struct {
	// Truncate ends every region at its first closing delimiter instead of
	// the balanced one. Older pages written against that behaviour may rely
	// on it.
	Truncate bool
}

// Rule names are unique across states; the stateful lexer rejects a name
// reused with a different pattern.
var pageRules = lexer.Rules{
	"Root": {
		{Name: "PageOpen", Pattern: `@page\s*\{`, Action: lexer.Push("Block")},
		{Name: "BackendOpen", Pattern: `@backend\s*\{`, Action: lexer.Push("Block")},
		{Name: "TemplateOpen", Pattern: `<template>`, Action: lexer.Push("Template")},
		{Name: "Text", Pattern: `[^@<]+`},
		{Name: "Char", Pattern: `[\s\S]`},
	},
	"Block": {
		{Name: "Comment", Pattern: `//[^\n]*|/\*[\s\S]*?\*/`},
		{Name: "String", Pattern: `"(?:[^"\\\n]|\\.)*"|'(?:[^'\\\n]|\\.)*'|` + "`[^`]*`"},
		{Name: "Open", Pattern: `\{`, Action: lexer.Push("Block")},
		{Name: "Close", Pattern: `\}`, Action: lexer.Pop()},
		{Name: "BlockText", Pattern: `[^{}"'/` + "`" + `]+`},
		{Name: "BlockChar", Pattern: `[\s\S]`},
	},
	"Template": {
		{Name: "NestedTemplate", Pattern: `<template\b[^>]*>`, Action: lexer.Push("Template")},
		{Name: "TemplateClose", Pattern: `</template\s*>`, Action: lexer.Pop()},
		{Name: "TemplateText", Pattern: `[^<]+`},
		{Name: "TemplateChar", Pattern: `[\s\S]`},
	},
}

var pageLexer = lexer.MustStateful(pageRules)

var (
	symbols = pageLexer.Symbols()

	tokPageOpen       = symbols["PageOpen"]
	tokBackendOpen    = symbols["BackendOpen"]
	tokTemplateOpen   = symbols["TemplateOpen"]
	tokOpen           = symbols["Open"]
	tokClose          = symbols["Close"]
	tokNestedTemplate = symbols["NestedTemplate"]
	tokTemplateClose  = symbols["TemplateClose"]
)

// ExtractSections splits page source into its config, logic and template
// regions. The first occurrence of each region wins. Braces inside strings
// and comments of the config and logic blocks, and <template> tags nested in
// the template, are balanced. A region that is never closed is dropped and
// scanning resumes right after its opening marker, so later regions are
// still found.
func ExtractSections(src string, opts Options) Sections {
	if opts.Truncate {
		return truncatedSections(src)
	}
	s, err := balancedSections(src)
	if err != nil {
		return truncatedSections(src)
	}
	return s
}

type region int

const (
	outside region = iota
	inConfig
	inLogic
	inTemplate
)

func balancedSections(src string) (Sections, error) {
	lex, err := pageLexer.LexString("", src)
	if err != nil {
		return Sections{}, err
	}

	var (
		out     Sections
		seen    = map[region]bool{}
		current = outside
		depth   int
		openEnd int
		buf     strings.Builder
	)
	for {
		tok, err := lex.Next()
		if err != nil {
			return Sections{}, err
		}
		if tok.EOF() {
			break
		}

		if current == outside {
			switch tok.Type {
			case tokPageOpen:
				current = inConfig
			case tokBackendOpen:
				current = inLogic
			case tokTemplateOpen:
				current = inTemplate
			default:
				continue
			}
			depth = 1
			openEnd = tok.Pos.Offset + len(tok.Value)
			buf.Reset()
			continue
		}

		switch tok.Type {
		case tokOpen, tokNestedTemplate:
			depth++
		case tokClose, tokTemplateClose:
			depth--
			if depth == 0 {
				if !seen[current] {
					seen[current] = true
					out.set(current, buf.String())
				}
				current = outside
				continue
			}
		}
		buf.WriteString(tok.Value)
	}

	if current != outside {
		rest, err := balancedSections(src[openEnd:])
		if err != nil {
			return Sections{}, err
		}
		for _, r := range []region{inConfig, inLogic, inTemplate} {
			if !seen[r] {
				out.set(r, rest.get(r))
			}
		}
	}
	return out, nil
}

func (s Sections) get(r region) string {
	switch r {
	case inConfig:
		return s.Config
	case inLogic:
		return s.Logic
	case inTemplate:
		return s.Template
	}
	return ""
}

func (s *Sections) set(r region, text string) {
	switch r {
	case inConfig:
		s.Config = text
	case inLogic:
		s.Logic = text
	case inTemplate:
		s.Template = text
	}
}

var (
	truncatedConfig   = regexp.MustCompile(`@page\s*\{([^}]*)\}`)
	truncatedLogic    = regexp.MustCompile(`@backend\s*\{([^}]*)\}`)
	truncatedTemplate = regexp.MustCompile(`(?s)<template>(.*?)</template>`)
)

func truncatedSections(src string) Sections {
	return Sections{
		Config:   firstGroup(truncatedConfig, src),
		Logic:    firstGroup(truncatedLogic, src),
		Template: firstGroup(truncatedTemplate, src),
	}
}

func firstGroup(re *regexp.Regexp, src string) string {
	m := re.FindStringSubmatch(src)
	if m == nil {
		return ""
	}
	return m[1]
}
