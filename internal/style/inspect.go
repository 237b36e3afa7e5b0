package style

import (
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// Stats summarises a generated stylesheet.
type Stats struct {
	Rules        int // qualified rules, at any nesting depth
	Keyframes    int
	Declarations int
	Classes      map[string]bool
	ByCategory   map[Category]int // declarations per property category
	TokenUses    int              // var(...) references in values
}

type blockKind int

const (
	blockRule blockKind = iota
	blockAt
	blockKeyframes
	blockFrame
)

// Inspect walks CSS text with the css lexer and counts its rules,
// keyframes and declarations, collecting every class used in a selector.
func Inspect(cssText string) Stats {
	stats := Stats{
		Classes:    make(map[string]bool),
		ByCategory: make(map[Category]int),
	}
	lexer := css.NewLexer(parse.NewInputString(cssText))

	var (
		stack     []blockKind
		prelude   []css.TokenType
		texts     []string
		atRule    string
		inPrelude bool
		inDecl    bool
	)

	reset := func() {
		prelude = prelude[:0]
		texts = texts[:0]
		atRule = ""
		inPrelude = false
		inDecl = false
	}
	top := func() (blockKind, bool) {
		if len(stack) == 0 {
			return 0, false
		}
		return stack[len(stack)-1], true
	}

	for {
		tt, text := lexer.Next()
		switch tt {
		case css.ErrorToken:
			return stats
		case css.CommentToken:
			continue
		case css.LeftBraceToken:
			parent, _ := top()
			switch {
			case atRule == "@keyframes":
				stats.Keyframes++
				stack = append(stack, blockKeyframes)
			case atRule != "":
				stack = append(stack, blockAt)
			case parent == blockKeyframes:
				stack = append(stack, blockFrame)
			default:
				stats.Rules++
				collectClasses(prelude, texts, stats.Classes)
				stack = append(stack, blockRule)
			}
			reset()
		case css.RightBraceToken:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			reset()
		case css.SemicolonToken:
			reset()
		case css.ColonToken:
			if kind, ok := top(); ok && (kind == blockRule || kind == blockFrame) && !inDecl {
				stats.Declarations++
				stats.ByCategory[CategorizeProperty(strings.TrimSpace(strings.Join(texts, "")))]++
				inDecl = true
				continue
			}
			inPrelude = true
			prelude = append(prelude, tt)
			texts = append(texts, ":")
		case css.FunctionToken:
			if inDecl && strings.EqualFold(string(text), "var(") {
				stats.TokenUses++
			}
			inPrelude = true
			prelude = append(prelude, tt)
			texts = append(texts, string(text))
		case css.AtKeywordToken:
			if !inPrelude {
				atRule = string(text)
			}
			inPrelude = true
		case css.WhitespaceToken:
			prelude = append(prelude, tt)
			texts = append(texts, " ")
		default:
			inPrelude = true
			prelude = append(prelude, tt)
			texts = append(texts, string(text))
		}
	}
}

// ClassNames returns every class used in a selector of the given CSS text.
// Declarations and at-rule preludes are ignored.
func ClassNames(cssText string) map[string]bool {
	return Inspect(cssText).Classes
}

// collectClasses finds '.' delimiters directly followed by an identifier.
func collectClasses(tokens []css.TokenType, texts []string, into map[string]bool) {
	for i := 0; i+1 < len(tokens); i++ {
		if tokens[i] == css.DelimToken && texts[i] == "." && tokens[i+1] == css.IdentToken {
			into[texts[i+1]] = true
		}
	}
}
