package eval

import (
	"github.com/cwbudde/exprscript/ast"
	"github.com/cwbudde/exprscript/langerr"
	"github.com/cwbudde/exprscript/scope"
	"github.com/cwbudde/exprscript/value"
)

// evalLambdaExpr implements lambda capture: a lambda value wraps its
// signature, a reference to its (unevaluated) body subtree, and a
// snapshot of the current scope's local bindings.
func (w *Walker) evalLambdaExpr(n *ast.LambdaExpr) (value.Value, error) {
	return value.NewLambda(n.Signature.Params, n.Body, w.scope.Snapshot()), nil
}

// invokeLambda implements lambda invocation: arity and name-collision
// checks, a fresh child scope seeded from the closure snapshot plus
// parameter bindings, body evaluation, and write-back of any binding
// whose name already existed in the caller's local scope.
func (w *Walker) invokeLambda(lam value.Lambda, args []value.Value, at langerr.Pos) (value.Value, error) {
	if len(args) != len(lam.Params) {
		return nil, langerr.NewArityError(at, len(lam.Params), len(args))
	}
	for _, p := range lam.Params {
		if _, exists := w.scope.GetLocal(p); exists {
			return nil, langerr.NewConflictError(at, p)
		}
	}
	if w.depth+1 > w.maxDepth {
		return nil, langerr.NewRecursionError(at, w.maxDepth)
	}

	childScope := scope.NewFromSnapshot(lam.Closure, w.host.GetVariable)
	for i, p := range lam.Params {
		childScope.Set(p, args[i])
	}

	child := w.child(childScope)
	result, err := child.evalLambdaBody(lam.Body)
	if err != nil {
		return nil, err
	}
	if child.returnFlag {
		result = child.returnValue
	}

	for name, v := range childScope.Bindings() {
		if _, existed := w.scope.GetLocal(name); existed {
			w.scope.Set(name, v)
		}
	}

	return result, nil
}

// evalLambdaBody evaluates a lambda body, which may be a statement list,
// a single expression, or a block.
func (w *Walker) evalLambdaBody(body ast.Node) (value.Value, error) {
	switch b := body.(type) {
	case *ast.Block:
		return w.evalBlock(b)
	case *ast.StatementList:
		items, err := w.evalStatementListAccum(b)
		if err != nil {
			return nil, err
		}
		return collapse(items), nil
	default:
		return w.Eval(body)
	}
}
