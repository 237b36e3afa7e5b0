package sandbox

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/ast"
)

// DefaultTimeout bounds a logic run when no timeout is configured.
const DefaultTimeout = 2 * time.Second

// ErrTimeout is returned when a logic block exceeds its time budget.
var ErrTimeout = errors.New("logic execution timed out")

// Bindings are the values a logic block declared or exported.
type Bindings map[string]any

// Sandbox runs logic blocks. It is safe for concurrent use.
type Sandbox struct {
	caps    Capabilities
	timeout time.Duration
	logger  *slog.Logger
}

// Option configures a Sandbox.
type Option func(*Sandbox)

// WithTimeout sets the wall-clock budget of one run.
func WithTimeout(d time.Duration) Option {
	return func(s *Sandbox) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithLogger sets the logger used by Evaluate.
func WithLogger(l *slog.Logger) Option {
	return func(s *Sandbox) {
		if l != nil {
			s.logger = l
		}
	}
}

// New returns a sandbox exposing caps to scripts.
func New(caps Capabilities, opts ...Option) *Sandbox {
	s := &Sandbox{
		caps:    caps.withDefaults(),
		timeout: DefaultTimeout,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes logic and returns its bindings. Statements run in order;
// the first failing statement aborts the run.
func (s *Sandbox) Run(ctx context.Context, logic string) (Bindings, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	type result struct {
		bindings Bindings
		err      error
	}
	done := make(chan result, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result{err: fmt.Errorf("logic panicked: %v", r)}
			}
		}()
		b, err := s.exec(ctx, logic)
		done <- result{bindings: b, err: err}
	}()

	select {
	case r := <-done:
		return r.bindings, r.err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w after %s", ErrTimeout, s.timeout)
		}
		return nil, ctx.Err()
	}
}

// Evaluate is Run for the render path: a failure is logged and yields
// empty bindings.
func (s *Sandbox) Evaluate(ctx context.Context, logic string) Bindings {
	if logic == "" {
		return Bindings{}
	}
	start := time.Now()
	b, err := s.Run(ctx, logic)
	if err != nil {
		s.logger.WarnContext(ctx, "page logic failed", "error", err)
		return Bindings{}
	}
	s.logger.DebugContext(ctx, "page logic done", "bindings", len(b), "duration", time.Since(start))
	return b
}

func (s *Sandbox) exec(ctx context.Context, logic string) (Bindings, error) {
	stmts, err := splitStatements(logic)
	if err != nil {
		return nil, fmt.Errorf("parse logic: %w", err)
	}

	env := s.globals(ctx)
	bindings := Bindings{}
	exports := Bindings{}
	for _, stmt := range stmts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var value any
		if stmt.expr != "" {
			value, err = eval(stmt.expr, env)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", stmt.line, err)
			}
		}

		switch stmt.kind {
		case stmtDeclare, stmtAssign:
			env[stmt.target] = value
			bindings[stmt.target] = value
		case stmtExport:
			exports[stmt.target] = value
		}
	}

	for k, v := range exports {
		bindings[k] = v
	}
	return bindings, nil
}

func eval(src string, env map[string]any) (any, error) {
	program, err := expr.Compile(src, expr.Env(env), expr.Patch(lengthPatcher{}))
	if err != nil {
		return nil, err
	}
	return expr.Run(program, env)
}

// lengthPatcher rewrites x.length to len(x).
type lengthPatcher struct{}

func (lengthPatcher) Visit(node *ast.Node) {
	member, ok := (*node).(*ast.MemberNode)
	if !ok {
		return
	}
	prop, ok := member.Property.(*ast.StringNode)
	if !ok || prop.Value != "length" {
		return
	}
	ast.Patch(node, &ast.BuiltinNode{
		Name:      "len",
		Arguments: []ast.Node{member.Node},
	})
}

// fn is the shape of every capability method seen by scripts.
type fn = func(args ...any) (any, error)

func (s *Sandbox) globals(ctx context.Context) map[string]any {
	caps := s.caps
	return map[string]any{
		"db": map[string]any{
			"collection": fn(func(args ...any) (any, error) {
				return collectionAPI(ctx, caps.Data.Collection(argString(args, 0))), nil
			}),
		},
		"api": map[string]any{
			"get": fn(func(args ...any) (any, error) {
				return caps.Outbound.Get(ctx, argString(args, 0))
			}),
			"post": fn(func(args ...any) (any, error) {
				return caps.Outbound.Post(ctx, argString(args, 0), arg(args, 1))
			}),
			"put": fn(func(args ...any) (any, error) {
				return caps.Outbound.Put(ctx, argString(args, 0), arg(args, 1))
			}),
			"delete": fn(func(args ...any) (any, error) {
				return caps.Outbound.Delete(ctx, argString(args, 0))
			}),
		},
		"socket": map[string]any{
			"on": fn(func(args ...any) (any, error) {
				return nil, caps.PubSub.On(argString(args, 0), arg(args, 1))
			}),
			"emit": fn(func(args ...any) (any, error) {
				return nil, caps.PubSub.Emit(argString(args, 0), arg(args, 1))
			}),
			"broadcast": map[string]any{
				"emit": fn(func(args ...any) (any, error) {
					return nil, caps.PubSub.Broadcast(argString(args, 0), arg(args, 1))
				}),
			},
		},
		"auth": map[string]any{
			"user": caps.Auth.User(ctx),
			"login": fn(func(args ...any) (any, error) {
				return caps.Auth.Login(ctx, arg(args, 0))
			}),
			"logout": fn(func(args ...any) (any, error) {
				return nil, caps.Auth.Logout(ctx)
			}),
			"register": fn(func(args ...any) (any, error) {
				return caps.Auth.Register(ctx, arg(args, 0))
			}),
		},
	}
}

func collectionAPI(ctx context.Context, c Collection) map[string]any {
	return map[string]any{
		"find": fn(func(args ...any) (any, error) {
			return c.Find(ctx, arg(args, 0))
		}),
		"findOne": fn(func(args ...any) (any, error) {
			return c.FindOne(ctx, arg(args, 0))
		}),
		"insert": fn(func(args ...any) (any, error) {
			return c.Insert(ctx, arg(args, 0))
		}),
		"update": fn(func(args ...any) (any, error) {
			return c.Update(ctx, arg(args, 0), arg(args, 1))
		}),
		"delete": fn(func(args ...any) (any, error) {
			return c.Delete(ctx, arg(args, 0))
		}),
	}
}

func arg(args []any, i int) any {
	if i < len(args) {
		return args[i]
	}
	return nil
}

func argString(args []any, i int) string {
	switch v := arg(args, i).(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
