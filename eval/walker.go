// Package eval implements the recursive tree-walking evaluator. A Walker
// realises the operational semantics of every syntactic form over an
// already parsed ast.Node tree, dispatching host-specific work (variable
// lookup, member/method/indexer invocation, parameter sinks, output
// buffering, cancellation, and comparer resolution) through a
// host.Evaluator.
package eval

import (
	"context"
	"log/slog"

	"github.com/cwbudde/exprscript/ast"
	"github.com/cwbudde/exprscript/comparer"
	"github.com/cwbudde/exprscript/host"
	"github.com/cwbudde/exprscript/langerr"
	"github.com/cwbudde/exprscript/scope"
	"github.com/cwbudde/exprscript/value"
)

// DefaultMaxRecursionDepth bounds lambda invocation nesting.
const DefaultMaxRecursionDepth = 1024

// Walker is a stateful visitor producing values from a syntax tree node.
// It is not safe for concurrent use: independent evaluations require
// independent walkers.
type Walker struct {
	host   host.Evaluator
	scope  *scope.Scope
	reg    *comparer.Registry
	logger *slog.Logger

	maxDepth int
	depth    int

	// Loop-control flags, private to the walker. A return also carries its
	// value in returnValue.
	breakFlag    bool
	continueFlag bool
	returnFlag   bool
	returnValue  value.Value
}

// Option configures a Walker at construction.
type Option func(*Walker)

// WithLogger overrides the walker's structured logger. A Walker from New
// logs nothing (slog.New with a discarding handler): quiet unless
// configured.
func WithLogger(l *slog.Logger) Option {
	return func(w *Walker) { w.logger = l }
}

// WithMaxRecursionDepth overrides DefaultMaxRecursionDepth.
func WithMaxRecursionDepth(n int) Option {
	return func(w *Walker) { w.maxDepth = n }
}

// New creates a top-level Walker over h, with a fresh scope falling
// through to the host's variable provider.
func New(h host.Evaluator, opts ...Option) *Walker {
	w := &Walker{
		host:     h,
		reg:      h.Comparers(),
		maxDepth: DefaultMaxRecursionDepth,
		logger:   slog.New(discardHandler{}),
	}
	w.scope = scope.New(h.GetVariable)
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// discardHandler is a slog.Handler that does nothing, used as the silent
// default so a Walker never requires a logger to be configured.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }

// child creates a nested walker for a lambda invocation, sharing the same
// host, comparer registry, logger, and recursion budget, but with its own
// scope and its own loop-control flags (a return inside a lambda body
// never crosses back into the caller's loop/statement-list state).
func (w *Walker) child(sc *scope.Scope) *Walker {
	return &Walker{
		host:     w.host,
		scope:    sc,
		reg:      w.reg,
		logger:   w.logger,
		maxDepth: w.maxDepth,
		depth:    w.depth + 1,
	}
}

// Run executes the top-level begin-expression: registers each parameter
// declaration with the host's parameter sink, then evaluates the
// statement list, flushing host output once more at the end. A nil
// result slice means the overall expression evaluated to Null.
func (w *Walker) Run(prog *ast.Program) ([]value.Value, error) {
	if err := w.checkCancel(prog.Pos()); err != nil {
		return nil, err
	}
	for _, p := range prog.Params {
		v, err := w.evalParamValue(p)
		if err != nil {
			return nil, err
		}
		w.host.SaveParameter(p.Name, v)
	}

	results, err := w.evalStatementListAccum(prog.Body)
	if err != nil {
		return nil, err
	}

	if text := w.host.FlushOutput(); text != "" {
		results = append(results, value.NewText(text))
	}
	return results, nil
}

func (w *Walker) evalParamValue(p *ast.ParamDecl) (value.Value, error) {
	if p.Value == nil {
		return value.Null{}, nil
	}
	return w.Eval(p.Value)
}

// checkCancel reports a CancelledError if the host's cancellation context
// has been signalled.
func (w *Walker) checkCancel(at ast.Pos) error {
	ctx := w.host.Context()
	if ctx == nil {
		return nil
	}
	select {
	case <-ctx.Done():
		return langerr.NewCancelledError(toPos(at))
	default:
		return nil
	}
}

func toPos(p ast.Pos) langerr.Pos {
	return langerr.Pos{Line: p.Line, Column: p.Column}
}
