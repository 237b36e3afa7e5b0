package style

import (
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Kind is the kind of a named rule block.
type Kind int

// Rule kinds, in the order a stylesheet emits them.
const (
	KindStyle Kind = iota
	KindComponent
	KindTheme
	KindAnimation
)

func (k Kind) String() string {
	switch k {
	case KindStyle:
		return "style"
	case KindComponent:
		return "component"
	case KindTheme:
		return "theme"
	case KindAnimation:
		return "animation"
	}
	return "unknown"
}

// Rule is one named block found in style source.
type Rule struct {
	Kind Kind
	Name string
	Body string
}

// ExtractOptions tunes rule extraction.
type ExtractOptions struct {
	// Truncate ends every block body at its first '}' instead of the
	// matching one, reproducing the single-level matching older content
	// may depend on. Nested blocks are cut short in this mode.
	Truncate bool
}

var ruleKinds = map[string]Kind{
	"@style":     KindStyle,
	"@component": KindComponent,
	"@theme":     KindTheme,
}

// ExtractRules finds every "@style name { ... }", "@component name { ... }",
// "@theme name { ... }" block and every "name: { ... }" entry of an
// "@animations { ... }" super-block, in source order. Only top-level blocks
// are considered. Unterminated blocks are dropped.
func ExtractRules(src string, opts ExtractOptions) []Rule {
	s := &ruleScanner{
		lexer:    css.NewLexer(parse.NewInputString(src)),
		truncate: opts.Truncate,
	}
	return s.scan()
}

type ruleScanner struct {
	lexer    *css.Lexer
	truncate bool
	depth    int
	rules    []Rule
}

func (s *ruleScanner) next() (css.TokenType, []byte) {
	for {
		tt, text := s.lexer.Next()
		if tt != css.CommentToken {
			return tt, text
		}
	}
}

func (s *ruleScanner) scan() []Rule {
	for {
		tt, text := s.next()
		switch tt {
		case css.ErrorToken:
			return s.rules
		case css.LeftBraceToken:
			s.depth++
		case css.RightBraceToken:
			if s.depth > 0 {
				s.depth--
			}
		case css.AtKeywordToken:
			if s.depth > 0 {
				continue
			}
			keyword := string(text)
			if kind, ok := ruleKinds[keyword]; ok {
				s.namedRule(kind)
			} else if keyword == "@animations" {
				s.animations()
			}
		}
	}
}

// namedRule handles "@kind name { body }" after the at-keyword.
func (s *ruleScanner) namedRule(kind Kind) {
	tt, text := s.skipSpace()

	var name strings.Builder
	for tt != css.ErrorToken && tt != css.WhitespaceToken && tt != css.LeftBraceToken {
		if tt == css.RightBraceToken {
			s.closeBrace()
			return
		}
		name.Write(text)
		tt, text = s.next()
	}
	if name.Len() == 0 {
		s.resume(tt)
		return
	}
	if tt == css.WhitespaceToken {
		tt, _ = s.skipSpace()
	}
	if tt != css.LeftBraceToken {
		s.resume(tt)
		return
	}

	body, ok := s.body()
	if !ok {
		return
	}
	s.rules = append(s.rules, Rule{Kind: kind, Name: name.String(), Body: body})
}

// animations handles "@animations { name: { frames } ... }".
func (s *ruleScanner) animations() {
	tt, _ := s.skipSpace()
	if tt != css.LeftBraceToken {
		s.resume(tt)
		return
	}
	body, ok := s.body()
	if !ok {
		return
	}

	inner := &ruleScanner{
		lexer:    css.NewLexer(parse.NewInputString(body)),
		truncate: s.truncate,
	}
	s.rules = append(s.rules, inner.keyframeBlocks()...)
}

// keyframeBlocks splits an animations body into "name: { body }" pairs.
func (s *ruleScanner) keyframeBlocks() []Rule {
	var (
		rules []Rule
		name  strings.Builder
	)
	for {
		tt, text := s.next()
		switch tt {
		case css.ErrorToken:
			return rules
		case css.LeftBraceToken:
			key := strings.TrimSpace(name.String())
			key = strings.TrimSpace(strings.TrimSuffix(key, ":"))
			name.Reset()
			body, ok := s.body()
			if !ok {
				return rules
			}
			if key != "" {
				rules = append(rules, Rule{Kind: KindAnimation, Name: key, Body: body})
			}
		case css.RightBraceToken, css.SemicolonToken:
			name.Reset()
		default:
			name.Write(text)
		}
	}
}

// body collects tokens up to the brace that closes the block just opened.
// It reports false when the input ends first.
func (s *ruleScanner) body() (string, bool) {
	var b strings.Builder
	depth := 1
	for {
		tt, text := s.lexer.Next()
		switch tt {
		case css.ErrorToken:
			return "", false
		case css.LeftBraceToken:
			if !s.truncate {
				depth++
			}
		case css.RightBraceToken:
			depth--
			if depth == 0 || s.truncate {
				return b.String(), true
			}
		}
		b.Write(text)
	}
}

func (s *ruleScanner) skipSpace() (css.TokenType, []byte) {
	for {
		tt, text := s.next()
		if tt != css.WhitespaceToken {
			return tt, text
		}
	}
}

// resume accounts for a structural token consumed while probing a rule head.
func (s *ruleScanner) resume(tt css.TokenType) {
	switch tt {
	case css.LeftBraceToken:
		s.depth++
	case css.RightBraceToken:
		s.closeBrace()
	}
}

func (s *ruleScanner) closeBrace() {
	if s.depth > 0 {
		s.depth--
	}
}
