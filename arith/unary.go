package arith

import (
	"github.com/cwbudde/exprscript/ast"
	"github.com/cwbudde/exprscript/langerr"
	"github.com/cwbudde/exprscript/value"
)

// Unary evaluates a unary operator: `-v` negates (coercing to Decimal),
// `!v` logically negates (coercing to Boolean), and `+v` coerces to
// Decimal.
func Unary(op ast.UnaryOp, operand value.Value, at langerr.Pos) (value.Value, error) {
	switch op {
	case ast.OpNeg:
		d, err := value.ToDecimal(operand)
		if err != nil {
			return nil, langerr.NewTypeError(at, "cannot negate %s: %v", operand.Tag(), err)
		}
		return value.NewDecimal(d.Neg()), nil
	case ast.OpNot:
		b, err := value.ToBoolean(operand)
		if err != nil {
			return nil, langerr.NewTypeError(at, "cannot negate %s: %v", operand.Tag(), err)
		}
		return value.NewBoolean(!b), nil
	case ast.OpPos:
		d, err := value.ToDecimal(operand)
		if err != nil {
			return nil, langerr.NewTypeError(at, "cannot coerce %s to a number: %v", operand.Tag(), err)
		}
		return value.NewDecimal(d), nil
	default:
		return nil, langerr.NewTypeError(at, "unknown unary operator: %s", op)
	}
}
