package arith

import (
	"github.com/cwbudde/exprscript/ast"
	"github.com/cwbudde/exprscript/comparer"
	"github.com/cwbudde/exprscript/langerr"
	"github.com/cwbudde/exprscript/value"
)

// compareOp resolves a comparer and thresholds its result for the
// requested operator.
func compareOp(op ast.BinaryOp, left, right value.Value, reg *comparer.Registry, at langerr.Pos) (value.Value, error) {
	n, comparable := resolve(left, right, reg)
	if !comparable {
		if op == ast.OpEq {
			return value.NewBoolean(false), nil
		}
		if op == ast.OpNe {
			return value.NewBoolean(true), nil
		}
		return nil, langerr.NewTypeError(at, "incomparable types: %s and %s", left.Tag(), right.Tag())
	}
	switch op {
	case ast.OpEq:
		return value.NewBoolean(n == 0), nil
	case ast.OpNe:
		return value.NewBoolean(n != 0), nil
	case ast.OpLt:
		return value.NewBoolean(n < 0), nil
	case ast.OpLe:
		return value.NewBoolean(n <= 0), nil
	case ast.OpGt:
		return value.NewBoolean(n > 0), nil
	case ast.OpGe:
		return value.NewBoolean(n >= 0), nil
	}
	panic("unreachable")
}

// resolve implements the comparer-selection algorithm: Null on either side
// routes to the null-aware comparer; a numeric pair (even a mixed
// Integer/Decimal one) routes to the numeric comparer; Text and Character
// compare against each other directly; same-tag pairs consult the registry
// under that tag; anything else is reported incomparable so callers can
// apply the "not equal" fallback for == and != (the ordering operators
// still fail).
func resolve(left, right value.Value, reg *comparer.Registry) (int, bool) {
	if left.Tag() == value.TagNull || right.Tag() == value.TagNull {
		if left.Tag() == value.TagNull && right.Tag() == value.TagNull {
			return 0, true
		}
		return 1, true
	}
	if value.IsNumeric(left.Tag()) && value.IsNumeric(right.Tag()) {
		return reg.Compare(left, right), true
	}
	if left.Tag() != right.Tag() {
		if isTextLike(left) && isTextLike(right) {
			return compareText(left, right), true
		}
		return 0, false
	}
	return reg.Compare(left, right), true
}

func isTextLike(v value.Value) bool {
	return v.Tag() == value.TagText || v.Tag() == value.TagCharacter
}

func compareText(left, right value.Value) int {
	l, r := value.ToText(left), value.ToText(right)
	switch {
	case l < r:
		return -1
	case l > r:
		return 1
	default:
		return 0
	}
}
