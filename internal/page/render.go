package page

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"reflect"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"
)

// ErrorMarker prefixes the markup returned when a render fails.
const ErrorMarker = "Render error: "

// RenderError reports the expression that failed to evaluate.
type RenderError struct {
	Expr string
	Err  error
}

func (e *RenderError) Error() string { return e.Err.Error() }

func (e *RenderError) Unwrap() error { return e.Err }

// Merge overlays data on bindings. Keys present in data win.
func Merge(bindings, data map[string]any) map[string]any {
	merged := make(map[string]any, len(bindings)+len(data))
	for k, v := range bindings {
		merged[k] = v
	}
	for k, v := range data {
		merged[k] = v
	}
	return merged
}

// Execute evaluates every expression of tmpl against env and concatenates
// the result. The first failing expression aborts the whole render.
func Execute(tmpl *Template, env map[string]any) (string, error) {
	if env == nil {
		env = map[string]any{}
	}

	var b strings.Builder
	for _, seg := range tmpl.segments {
		if !seg.isExpr() {
			b.WriteString(seg.text)
			continue
		}
		v, err := evaluate(seg.expr, env)
		if err != nil {
			return "", &RenderError{Expr: seg.expr, Err: err}
		}
		s, err := formatValue(v)
		if err != nil {
			return "", &RenderError{Expr: seg.expr, Err: err}
		}
		b.WriteString(s)
	}
	return b.String(), nil
}

// evaluate accepts identifiers, member access and literals only.
func evaluate(src string, env map[string]any) (any, error) {
	tree, err := parser.Parse(src)
	if err != nil {
		return nil, err
	}
	check := &restricted{}
	ast.Walk(&tree.Node, check)
	if check.err != nil {
		return nil, check.err
	}

	program, err := expr.Compile(src, expr.Env(env))
	if err != nil {
		return nil, err
	}
	return expr.Run(program, env)
}

type restricted struct {
	err error
}

func (r *restricted) Visit(node *ast.Node) {
	if r.err != nil {
		return
	}
	switch (*node).(type) {
	case *ast.IdentifierNode, *ast.MemberNode, *ast.ChainNode,
		*ast.StringNode, *ast.IntegerNode, *ast.FloatNode,
		*ast.BoolNode, *ast.NilNode:
	default:
		r.err = fmt.Errorf("unsupported expression %q", (*node).String())
	}
}

func formatValue(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "", nil
	case template.HTML:
		return string(x), nil
	case string:
		return template.HTMLEscapeString(x), nil
	case fmt.Stringer:
		return template.HTMLEscapeString(x.String()), nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		parts := make([]string, rv.Len())
		for i := range parts {
			s, err := formatValue(rv.Index(i).Interface())
			if err != nil {
				return "", err
			}
			parts[i] = s
		}
		return strings.Join(parts, ","), nil
	case reflect.Map, reflect.Struct:
		raw, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return template.HTMLEscapeString(string(raw)), nil
	default:
		return template.HTMLEscapeString(fmt.Sprint(v)), nil
	}
}

// Renderer evaluates compiled templates and turns failures into the inline
// error marker.
type Renderer struct {
	logger *slog.Logger
}

// NewRenderer returns a renderer logging to logger, or to slog.Default when
// logger is nil.
func NewRenderer(logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{logger: logger}
}

// Render merges bindings with data and evaluates tmpl. It never fails: an
// evaluation error is logged and the markup becomes ErrorMarker followed by
// the error message.
func (r *Renderer) Render(ctx context.Context, tmpl *Template, bindings, data map[string]any) string {
	out, err := Execute(tmpl, Merge(bindings, data))
	if err != nil {
		var failed *RenderError
		if errors.As(err, &failed) {
			r.logger.ErrorContext(ctx, "template render failed", "expr", failed.Expr, "error", failed.Err)
		} else {
			r.logger.ErrorContext(ctx, "template render failed", "error", err)
		}
		return ErrorMarker + err.Error()
	}
	return out
}
