package eval

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cwbudde/exprscript/arith"
	"github.com/cwbudde/exprscript/ast"
	"github.com/cwbudde/exprscript/langerr"
	"github.com/cwbudde/exprscript/value"
)

// Eval computes the Value of any expression node: literals, identifiers,
// parenthesised and primary chains, binary/unary operators, the ternary
// and null-coalescing operators, and lambda capture.
func (w *Walker) Eval(node ast.Node) (value.Value, error) {
	switch n := node.(type) {
	case *ast.Literal:
		return w.evalLiteral(n)
	case *ast.Identifier:
		return w.resolveIdentifier(n.Name), nil
	case *ast.ParenExpr:
		return w.Eval(n.Inner)
	case *ast.Primary:
		return w.evalPrimary(n)
	case *ast.BinaryExpr:
		return w.evalBinaryExpr(n)
	case *ast.UnaryExpr:
		return w.evalUnaryExpr(n)
	case *ast.Ternary:
		return w.evalTernary(n)
	case *ast.Coalesce:
		return w.evalCoalesce(n)
	case *ast.LambdaExpr:
		return w.evalLambdaExpr(n)
	default:
		return nil, langerr.NewTypeError(toPos(node.Pos()), "unsupported expression node: %T", node)
	}
}

// resolveIdentifier reads a bare name through the scope chain. A name
// bound nowhere (neither locally nor by the host) evaluates to Null
// rather than failing, which is what lets `unset ?? fallback` work.
func (w *Walker) resolveIdentifier(name string) value.Value {
	if v, ok := w.scope.Get(name); ok {
		return v
	}
	return value.Null{}
}

// evalLiteral maps literal syntax to a Value: integer and real literals,
// percent literals (real divided by 100), character and string literals
// (both rendered as Text; verbatim strings already have their leading '@'
// stripped by the lexer), date and guid literals, and boolean literals.
func (w *Walker) evalLiteral(l *ast.Literal) (value.Value, error) {
	at := toPos(l.Position)
	switch l.Kind {
	case ast.LitInteger:
		n, err := strconv.ParseInt(l.Raw, 10, 32)
		if err != nil {
			return nil, langerr.NewTypeError(at, "invalid integer literal %q: %v", l.Raw, err)
		}
		return value.NewInteger(int32(n)), nil
	case ast.LitReal:
		d, err := decimal.NewFromString(l.Raw)
		if err != nil {
			return nil, langerr.NewTypeError(at, "invalid real literal %q: %v", l.Raw, err)
		}
		return value.NewDecimal(d), nil
	case ast.LitPercent:
		d, err := decimal.NewFromString(l.Raw)
		if err != nil {
			return nil, langerr.NewTypeError(at, "invalid percent literal %q: %v", l.Raw, err)
		}
		return value.NewDecimal(d.Div(decimal.NewFromInt(100))), nil
	case ast.LitChar, ast.LitString:
		return value.NewText(l.Raw), nil
	case ast.LitDate:
		t, err := parseDateLiteral(l.Raw)
		if err != nil {
			return nil, langerr.NewTypeError(at, "invalid date literal %q: %v", l.Raw, err)
		}
		return value.NewDateTime(t), nil
	case ast.LitGuid:
		id, err := uuid.Parse(l.Raw)
		if err != nil {
			return nil, langerr.NewTypeError(at, "invalid guid literal %q: %v", l.Raw, err)
		}
		return value.NewGuid(id), nil
	case ast.LitBool:
		return value.NewBoolean(strings.EqualFold(l.Raw, "true")), nil
	case ast.LitNull:
		return value.Null{}, nil
	default:
		return nil, langerr.NewTypeError(at, "unknown literal kind: %s", l.Kind)
	}
}

// dateLiteralLayouts lists the accepted date literal formats, tried in
// order; most specific (carries a time component) first.
var dateLiteralLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseDateLiteral(raw string) (time.Time, error) {
	var firstErr error
	for _, layout := range dateLiteralLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		} else if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

func (w *Walker) evalBinaryExpr(b *ast.BinaryExpr) (value.Value, error) {
	left, err := w.Eval(b.Left)
	if err != nil {
		return nil, err
	}
	right, err := w.Eval(b.Right)
	if err != nil {
		return nil, err
	}
	return arith.Binary(b.Op, left, right, w.reg, toPos(b.Position))
}

func (w *Walker) evalUnaryExpr(u *ast.UnaryExpr) (value.Value, error) {
	v, err := w.Eval(u.Operand)
	if err != nil {
		return nil, err
	}
	return arith.Unary(u.Op, v, toPos(u.Position))
}

// evalTernary implements the conditional operator. A ternary with no
// then/else branch is a pass-through guard that returns the condition
// value unchanged.
func (w *Walker) evalTernary(t *ast.Ternary) (value.Value, error) {
	cond, err := w.Eval(t.Condition)
	if err != nil {
		return nil, err
	}
	if t.Then == nil && t.Else == nil {
		return cond, nil
	}
	b, err := requireBoolean(cond, toPos(t.Condition.Pos()))
	if err != nil {
		return nil, err
	}
	if b {
		return w.Eval(t.Then)
	}
	return w.Eval(t.Else)
}

// evalCoalesce implements `left ?? right`: left is evaluated first and
// returned unless it is Null; right is evaluated only in that case.
func (w *Walker) evalCoalesce(c *ast.Coalesce) (value.Value, error) {
	left, err := w.Eval(c.Left)
	if err != nil {
		return nil, err
	}
	if !isNull(left) {
		return left, nil
	}
	return w.Eval(c.Right)
}

// evalArgList evaluates a call/indexer argument list left-to-right.
func (w *Walker) evalArgList(al *ast.ArgList) ([]value.Value, error) {
	if al == nil {
		return nil, nil
	}
	args := make([]value.Value, len(al.Args))
	for i, a := range al.Args {
		v, err := w.Eval(a.Value)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return args, nil
}
