package sandbox

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
)

var scriptLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `//[^\n]*|/\*[\s\S]*?\*/`},
	{Name: "String", Pattern: `"(?:[^"\\\n]|\\.)*"|'(?:[^'\\\n]|\\.)*'|` + "`[^`]*`"},
	{Name: "Number", Pattern: `[0-9]+(?:\.[0-9]+)?`},
	{Name: "Ident", Pattern: `[A-Za-z_$][A-Za-z0-9_$]*`},
	{Name: "Op", Pattern: `===|!==|==|!=|<=|>=|&&|\|\||\?\?|\?\.|=>`},
	{Name: "Open", Pattern: `[\[({]`},
	{Name: "Close", Pattern: `[\])}]`},
	{Name: "Semi", Pattern: `;`},
	{Name: "Newline", Pattern: `\n`},
	{Name: "Space", Pattern: `[ \t\r]+`},
	{Name: "Char", Pattern: `[\s\S]`},
})

var (
	scriptSymbols = scriptLexer.Symbols()

	tokComment = scriptSymbols["Comment"]
	tokIdent   = scriptSymbols["Ident"]
	tokOp      = scriptSymbols["Op"]
	tokOpen    = scriptSymbols["Open"]
	tokClose   = scriptSymbols["Close"]
	tokSemi    = scriptSymbols["Semi"]
	tokNewline = scriptSymbols["Newline"]
	tokSpace   = scriptSymbols["Space"]
)

var rewrites = map[string]string{
	"===":       "==",
	"!==":       "!=",
	"null":      "nil",
	"undefined": "nil",
}

type stmtKind int

const (
	stmtExpr stmtKind = iota
	stmtDeclare
	stmtAssign
	stmtExport
)

// statement is one top-level statement of a logic block.
type statement struct {
	kind   stmtKind
	target string
	expr   string
	line   int
}

// splitStatements breaks a logic block into statements. A statement ends at
// ';' or at a line end outside brackets, unless the next line continues a
// member chain with '.'.
func splitStatements(src string) ([]statement, error) {
	lex, err := scriptLexer.LexString("", src)
	if err != nil {
		return nil, err
	}

	var (
		out     []statement
		current []lexer.Token
		depth   int
		pending bool
	)
	flush := func() error {
		pending = false
		if len(current) == 0 {
			return nil
		}
		stmt, err := classify(current)
		current = nil
		if err != nil {
			return err
		}
		out = append(out, stmt)
		return nil
	}

	for {
		tok, err := lex.Next()
		if err != nil {
			return nil, err
		}
		if tok.EOF() {
			break
		}

		switch tok.Type {
		case tokComment:
			continue
		case tokSpace:
			if len(current) > 0 {
				current = append(current, tok)
			}
			continue
		case tokNewline:
			if depth > 0 {
				tok.Value = " "
				current = append(current, tok)
			} else if len(current) > 0 {
				pending = true
			}
			continue
		case tokSemi:
			if depth == 0 {
				if err := flush(); err != nil {
					return nil, err
				}
				continue
			}
		case tokOpen:
			depth++
		case tokClose:
			if depth > 0 {
				depth--
			}
		}

		if pending {
			if tok.Value == "." || tok.Value == "?." {
				pending = false
			} else if err := flush(); err != nil {
				return nil, err
			}
		}
		if tok.Type == tokIdent && tok.Value == "await" {
			continue
		}
		if (tok.Type == tokIdent || tok.Type == tokOp) && rewrites[tok.Value] != "" {
			tok.Value = rewrites[tok.Value]
		}
		current = append(current, tok)
	}
	if depth > 0 {
		return nil, fmt.Errorf("unbalanced brackets at end of logic")
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return out, nil
}

func classify(toks []lexer.Token) (statement, error) {
	sig := significant(toks)
	stmt := statement{kind: stmtExpr, line: toks[0].Pos.Line}

	switch {
	case len(sig) >= 2 && isDeclKeyword(sig[0]):
		if sig[1].Type != tokIdent {
			return stmt, fmt.Errorf("line %d: unsupported declaration %q", stmt.line, joinTokens(toks))
		}
		stmt.kind, stmt.target = stmtDeclare, sig[1].Value
		if len(sig) == 2 {
			return stmt, nil
		}
		if sig[2].Value != "=" || len(sig) == 3 {
			return stmt, fmt.Errorf("line %d: unsupported declaration %q", stmt.line, joinTokens(toks))
		}
		stmt.expr = joinAfter(toks, sig[2])
	case len(sig) >= 5 && sig[0].Value == "exports" && sig[1].Value == "." &&
		sig[2].Type == tokIdent && sig[3].Value == "=":
		stmt.kind, stmt.target = stmtExport, sig[2].Value
		stmt.expr = joinAfter(toks, sig[3])
	case len(sig) >= 3 && sig[0].Type == tokIdent && sig[1].Value == "=":
		stmt.kind, stmt.target = stmtAssign, sig[0].Value
		stmt.expr = joinAfter(toks, sig[1])
	default:
		stmt.expr = joinTokens(toks)
	}
	return stmt, nil
}

func isDeclKeyword(t lexer.Token) bool {
	if t.Type != tokIdent {
		return false
	}
	switch t.Value {
	case "const", "let", "var":
		return true
	}
	return false
}

func significant(toks []lexer.Token) []lexer.Token {
	out := make([]lexer.Token, 0, len(toks))
	for _, t := range toks {
		if t.Type != tokSpace && t.Type != tokNewline {
			out = append(out, t)
		}
	}
	return out
}

// joinAfter joins the tokens following mark.
func joinAfter(toks []lexer.Token, mark lexer.Token) string {
	for i, t := range toks {
		if t.Pos.Offset == mark.Pos.Offset {
			return joinTokens(toks[i+1:])
		}
	}
	return ""
}

func joinTokens(toks []lexer.Token) string {
	var b strings.Builder
	for _, t := range toks {
		b.WriteString(t.Value)
	}
	return strings.TrimSpace(b.String())
}
