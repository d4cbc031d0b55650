// Package arith implements the arithmetic, logic, and comparison kernel:
// binary and unary operators over value.Value, type-dispatched per operand
// pair rather than through a single host-language numeric tower.
package arith

import (
	"github.com/cwbudde/exprscript/ast"
	"github.com/cwbudde/exprscript/comparer"
	"github.com/cwbudde/exprscript/langerr"
	"github.com/cwbudde/exprscript/value"
)

// Binary evaluates `left op right` across the full operator set.
// Logical operators (and/or/xor) are included here too: this package does
// not itself short-circuit. Both operands are always evaluated by the
// caller before Binary is invoked, regardless of operator.
func Binary(op ast.BinaryOp, left, right value.Value, reg *comparer.Registry, at langerr.Pos) (value.Value, error) {
	switch op {
	case ast.OpAdd:
		return add(left, right, at)
	case ast.OpSub:
		return sub(left, right, at)
	case ast.OpMul:
		return mulDiv(left, right, at, "*")
	case ast.OpDiv:
		return mulDiv(left, right, at, "/")
	case ast.OpMod:
		return mulDiv(left, right, at, "%")
	case ast.OpShl:
		return shift(left, right, at, true)
	case ast.OpShr:
		return shift(left, right, at, false)
	case ast.OpAnd:
		return logical(left, right, at, func(a, b bool) bool { return a && b }, func(a, b int32) int32 { return a & b })
	case ast.OpOr:
		return logical(left, right, at, func(a, b bool) bool { return a || b }, func(a, b int32) int32 { return a | b })
	case ast.OpXor:
		return logical(left, right, at, func(a, b bool) bool { return a != b }, func(a, b int32) int32 { return a ^ b })
	case ast.OpEq, ast.OpNe, ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe:
		return compareOp(op, left, right, reg, at)
	default:
		return nil, langerr.NewTypeError(at, "unknown operator: %s", op)
	}
}

// add implements `+`: Integer+Integer stays Integer; any other numeric mix
// widens to Decimal; DateTime+Duration advances the instant; string
// concatenation applies whenever at least one operand is Text (both sides
// rendered via their canonical textual form).
func add(left, right value.Value, at langerr.Pos) (value.Value, error) {
	if l, ok := left.(value.Integer); ok {
		if r, ok := right.(value.Integer); ok {
			return value.NewInteger(l.V + r.V), nil
		}
	}
	if value.IsNumeric(left.Tag()) && value.IsNumeric(right.Tag()) {
		l, _ := value.ToDecimal(left)
		r, _ := value.ToDecimal(right)
		return value.NewDecimal(l.Add(r)), nil
	}
	if dt, ok := left.(value.DateTime); ok {
		if du, ok := right.(value.Duration); ok {
			return value.NewDateTime(dt.V.Add(du.V)), nil
		}
	}
	if du, ok := left.(value.Duration); ok {
		if dt, ok := right.(value.DateTime); ok {
			return value.NewDateTime(dt.V.Add(du.V)), nil
		}
	}
	if left.Tag() == value.TagText || right.Tag() == value.TagText ||
		left.Tag() == value.TagCharacter || right.Tag() == value.TagCharacter {
		return value.NewText(value.ToText(left) + value.ToText(right)), nil
	}
	return nil, langerr.NewTypeError(at, "type mismatch: %s + %s", left.Tag(), right.Tag())
}

// sub implements `-`: Integer-Integer stays Integer; numeric mix widens to
// Decimal; DateTime-Duration yields DateTime; DateTime-DateTime yields a
// Duration; Duration-Duration stays Duration.
func sub(left, right value.Value, at langerr.Pos) (value.Value, error) {
	if l, ok := left.(value.Integer); ok {
		if r, ok := right.(value.Integer); ok {
			return value.NewInteger(l.V - r.V), nil
		}
	}
	if value.IsNumeric(left.Tag()) && value.IsNumeric(right.Tag()) {
		l, _ := value.ToDecimal(left)
		r, _ := value.ToDecimal(right)
		return value.NewDecimal(l.Sub(r)), nil
	}
	if dt, ok := left.(value.DateTime); ok {
		if du, ok := right.(value.Duration); ok {
			return value.NewDateTime(dt.V.Add(-du.V)), nil
		}
		if dt2, ok := right.(value.DateTime); ok {
			return value.NewDuration(dt.V.Sub(dt2.V)), nil
		}
	}
	if l, ok := left.(value.Duration); ok {
		if r, ok := right.(value.Duration); ok {
			return value.NewDuration(l.V - r.V), nil
		}
	}
	return nil, langerr.NewTypeError(at, "type mismatch: %s - %s", left.Tag(), right.Tag())
}

// mulDiv implements `*`, `/`, and `%`: all three are numeric-only,
// coercing both operands to Decimal. Division and modulo by zero raise
// ArithmeticError.
func mulDiv(left, right value.Value, at langerr.Pos, op string) (value.Value, error) {
	if !value.IsNumeric(left.Tag()) || !value.IsNumeric(right.Tag()) {
		return nil, langerr.NewTypeError(at, "type mismatch: %s %s %s", left.Tag(), op, right.Tag())
	}
	l, err := value.ToDecimal(left)
	if err != nil {
		return nil, langerr.NewArithmeticError(at, "numeric conversion failed: %v", err)
	}
	r, err := value.ToDecimal(right)
	if err != nil {
		return nil, langerr.NewArithmeticError(at, "numeric conversion failed: %v", err)
	}
	switch op {
	case "*":
		return value.NewDecimal(l.Mul(r)), nil
	case "/":
		if r.IsZero() {
			return nil, langerr.NewArithmeticError(at, "division by zero")
		}
		return value.NewDecimal(l.Div(r)), nil
	case "%":
		if r.IsZero() {
			return nil, langerr.NewArithmeticError(at, "modulo by zero")
		}
		return value.NewDecimal(l.Mod(r)), nil
	}
	panic("unreachable")
}

// shift implements `<<` and `>>`: both operands coerce to Integer.
func shift(left, right value.Value, at langerr.Pos, toLeft bool) (value.Value, error) {
	l, err := value.ToInteger(left)
	if err != nil {
		return nil, langerr.NewTypeError(at, "cannot shift: %v", err)
	}
	r, err := value.ToInteger(right)
	if err != nil {
		return nil, langerr.NewTypeError(at, "cannot shift: %v", err)
	}
	if toLeft {
		return value.NewInteger(l << uint32(r)), nil
	}
	return value.NewInteger(l >> uint32(r)), nil
}

// logical implements `and`/`or`/`xor`: Boolean operands apply the boolean
// function, Integer operands apply the bitwise function. Both sides are
// always evaluated before this is called; no short-circuiting happens
// here or in the caller.
func logical(left, right value.Value, at langerr.Pos, boolFn func(a, b bool) bool, intFn func(a, b int32) int32) (value.Value, error) {
	if l, ok := left.(value.Boolean); ok {
		if r, ok := right.(value.Boolean); ok {
			return value.NewBoolean(boolFn(l.V, r.V)), nil
		}
	}
	if l, ok := left.(value.Integer); ok {
		if r, ok := right.(value.Integer); ok {
			return value.NewInteger(intFn(l.V, r.V)), nil
		}
	}
	return nil, langerr.NewTypeError(at, "type mismatch: %s and/or/xor %s", left.Tag(), right.Tag())
}
