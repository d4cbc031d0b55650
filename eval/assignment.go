package eval

import (
	"github.com/cwbudde/exprscript/arith"
	"github.com/cwbudde/exprscript/ast"
	"github.com/cwbudde/exprscript/langerr"
	"github.com/cwbudde/exprscript/value"
)

// compoundOps maps a compound assignment operator to the binary operator
// used to compute its new value.
var compoundOps = map[ast.AssignOp]ast.BinaryOp{
	ast.AssignAdd: ast.OpAdd,
	ast.AssignSub: ast.OpSub,
	ast.AssignMul: ast.OpMul,
	ast.AssignDiv: ast.OpDiv,
	ast.AssignMod: ast.OpMod,
	ast.AssignAnd: ast.OpAnd,
	ast.AssignOr:  ast.OpOr,
	ast.AssignXor: ast.OpXor,
	ast.AssignShl: ast.OpShl,
	ast.AssignShr: ast.OpShr,
}

// evalAssignment handles every assignment form (simple, compound,
// increment/decrement). Every form contributes Null to the enclosing
// statement list.
func (w *Walker) evalAssignment(n *ast.Assignment) (value.Value, error) {
	at := toPos(n.Position)

	switch n.Op {
	case ast.AssignSet:
		v, err := w.Eval(n.Value)
		if err != nil {
			return nil, err
		}
		w.scope.Set(n.Target, v)
		return value.Null{}, nil

	case ast.AssignPreIncr, ast.AssignPostIncr, ast.AssignPreDecr, ast.AssignPostDecr:
		cur, ok := w.scope.Get(n.Target)
		if !ok || isNull(cur) {
			return nil, langerr.NewUnboundError(at, n.Target)
		}
		i, err := value.ToInteger(cur)
		if err != nil {
			return nil, langerr.NewTypeError(at, "cannot increment/decrement %s: %v", cur.Tag(), err)
		}
		if n.Op == ast.AssignPreIncr || n.Op == ast.AssignPostIncr {
			i++
		} else {
			i--
		}
		w.scope.Set(n.Target, value.NewInteger(i))
		return value.Null{}, nil

	default:
		binOp, ok := compoundOps[n.Op]
		if !ok {
			return nil, langerr.NewTypeError(at, "unknown assignment operator: %s", n.Op)
		}
		cur, ok := w.scope.Get(n.Target)
		if !ok || isNull(cur) {
			return nil, langerr.NewUnboundError(at, n.Target)
		}
		rhs, err := w.Eval(n.Value)
		if err != nil {
			return nil, err
		}
		result, err := arith.Binary(binOp, cur, rhs, w.reg, at)
		if err != nil {
			return nil, err
		}
		w.scope.Set(n.Target, result)
		return value.Null{}, nil
	}
}
