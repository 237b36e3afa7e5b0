package style

import (
	"bytes"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// logicalLines tokenizes a rule body and regroups the tokens into trimmed
// logical lines. A line ends at a newline or a ';' outside parentheses, and
// right after a '{'. A '}' always forms a line of its own, so single-line
// bodies parse the same way as multi-line ones. Comments are dropped.
func logicalLines(body string) []string {
	lexer := css.NewLexer(parse.NewInputString(body))

	var (
		lines  []string
		cur    strings.Builder
		parens int
	)

	flush := func() {
		if s := strings.TrimSpace(cur.String()); s != "" {
			lines = append(lines, s)
		}
		cur.Reset()
	}

	for {
		tt, text := lexer.Next()
		switch tt {
		case css.ErrorToken:
			// EOF (or an unrecoverable input error): keep what we have.
			flush()
			return lines
		case css.CommentToken:
			continue
		case css.WhitespaceToken:
			if bytes.ContainsAny(text, "\r\n") {
				if parens == 0 {
					flush()
				} else {
					cur.WriteByte(' ')
				}
				continue
			}
			cur.Write(text)
		case css.FunctionToken, css.LeftParenthesisToken:
			parens++
			cur.Write(text)
		case css.RightParenthesisToken:
			if parens > 0 {
				parens--
			}
			cur.Write(text)
		case css.SemicolonToken:
			cur.Write(text)
			if parens == 0 {
				flush()
			}
		case css.LeftBraceToken:
			cur.Write(text)
			flush()
			parens = 0
		case css.RightBraceToken:
			flush()
			lines = append(lines, "}")
			parens = 0
		default:
			cur.Write(text)
		}
	}
}
