package eval

import (
	"github.com/cwbudde/exprscript/ast"
	"github.com/cwbudde/exprscript/langerr"
	"github.com/cwbudde/exprscript/value"
)

// evalStatementListAccum evaluates a statement list: non-null statement
// results accumulate into an ordered list, interleaved with any host
// output flushed after each one. It halts early once a loop-control flag
// is set, leaving the flag for the enclosing construct to observe.
func (w *Walker) evalStatementListAccum(list *ast.StatementList) ([]value.Value, error) {
	if list == nil {
		return nil, nil
	}
	var results []value.Value
	for _, stmt := range list.Statements {
		res, err := w.evalStatement(stmt)
		if err != nil {
			return nil, err
		}
		appendWithFlush(&results, res, w.host.FlushOutput())
		if w.breakFlag || w.continueFlag || w.returnFlag {
			break
		}
	}
	return results, nil
}

// appendWithFlush applies the output-buffer rule for one statement's
// result: a non-empty flush is appended as its own value after a
// Collection result, or concatenated onto the front of a scalar result's
// textual form.
func appendWithFlush(results *[]value.Value, res value.Value, flush string) {
	if isNull(res) {
		if flush != "" {
			*results = append(*results, value.NewText(flush))
		}
		return
	}
	if coll, ok := res.(value.Collection); ok {
		*results = append(*results, coll)
		if flush != "" {
			*results = append(*results, value.NewText(flush))
		}
		return
	}
	if flush != "" {
		*results = append(*results, value.NewText(flush+value.ToText(res)))
		return
	}
	*results = append(*results, res)
}

func isNull(v value.Value) bool {
	if v == nil {
		return true
	}
	_, ok := v.(value.Null)
	return ok
}

// collapse folds a flattened result list down to the single Value a
// nested construct (a block, a loop) must present to its own enclosing
// statement list: empty becomes Null, a single element passes through
// unchanged, and more than one element becomes a Collection.
func collapse(items []value.Value) value.Value {
	switch len(items) {
	case 0:
		return value.Null{}
	case 1:
		return items[0]
	default:
		return value.Collection{Items: items}
	}
}

// evalBlock evaluates a block's statement list and collapses it to a
// single Value for its enclosing construct.
func (w *Walker) evalBlock(b *ast.Block) (value.Value, error) {
	if b == nil {
		return value.Null{}, nil
	}
	items, err := w.evalStatementListAccum(b.Body)
	if err != nil {
		return nil, err
	}
	return collapse(items), nil
}

// evalStatement evaluates a single statement node, leaving any
// break/continue/return flag it set for the caller to observe.
func (w *Walker) evalStatement(node ast.Node) (value.Value, error) {
	switch n := node.(type) {
	case *ast.ExprStatement:
		return w.Eval(n.Expression)
	case *ast.Assignment:
		return w.evalAssignment(n)
	case *ast.Jump:
		return w.evalJump(n)
	case *ast.If:
		return w.evalIf(n)
	case *ast.For:
		return w.evalFor(n)
	case *ast.While:
		return w.evalWhile(n)
	case *ast.Foreach:
		return w.evalForeach(n)
	case *ast.Block:
		return w.evalBlock(n)
	default:
		return w.Eval(node)
	}
}

func (w *Walker) evalJump(j *ast.Jump) (value.Value, error) {
	switch j.Kind {
	case ast.JumpBreak:
		w.breakFlag = true
	case ast.JumpContinue:
		w.continueFlag = true
	case ast.JumpReturn:
		w.returnFlag = true
		if j.Value != nil {
			v, err := w.Eval(j.Value)
			if err != nil {
				return nil, err
			}
			w.returnValue = v
		} else {
			w.returnValue = value.Null{}
		}
	default:
		return nil, langerr.NewTypeError(toPos(j.Pos()), "unknown jump kind: %s", j.Kind)
	}
	return value.Null{}, nil
}
