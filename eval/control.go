package eval

import (
	"github.com/cwbudde/exprscript/ast"
	"github.com/cwbudde/exprscript/langerr"
	"github.com/cwbudde/exprscript/value"
)

// requireBoolean enforces the "must be Boolean" rule for if/for/while
// conditions: no implicit coercion, only an actual Boolean value.
func requireBoolean(v value.Value, at langerr.Pos) (bool, error) {
	b, ok := v.(value.Boolean)
	if !ok {
		return false, langerr.NewTypeError(at, "condition must be Boolean, got %s", v.Tag())
	}
	return b.V, nil
}

// evalIf implements if/else.
func (w *Walker) evalIf(n *ast.If) (value.Value, error) {
	cond, err := w.Eval(n.Condition)
	if err != nil {
		return nil, err
	}
	b, err := requireBoolean(cond, toPos(n.Condition.Pos()))
	if err != nil {
		return nil, err
	}
	if b {
		return w.evalBlock(n.Consequence)
	}
	if n.Alternative != nil {
		return w.evalBlock(n.Alternative)
	}
	return value.Null{}, nil
}

// handleLoopFlags observes the walker's loop-control flags after one
// block execution: return halts the loop without clearing (it propagates
// to the enclosing lambda/top-level); break halts the loop and clears
// itself; continue clears itself and lets the caller proceed to the
// iterator step. It reports whether the loop should stop.
func (w *Walker) handleLoopFlags() (stop bool) {
	if w.returnFlag {
		return true
	}
	if w.breakFlag {
		w.breakFlag = false
		return true
	}
	if w.continueFlag {
		w.continueFlag = false
	}
	return false
}

// appendFlattened implements the loop flattening rule: a block result
// that is itself a Collection contributes each of its elements,
// otherwise the (non-null) result contributes as one element.
func appendFlattened(collected *[]value.Value, v value.Value) {
	if isNull(v) {
		return
	}
	if c, ok := v.(value.Collection); ok {
		*collected = append(*collected, c.Items...)
		return
	}
	*collected = append(*collected, v)
}

// evalFor implements the C-style for loop.
func (w *Walker) evalFor(f *ast.For) (value.Value, error) {
	if f.Init != nil {
		if _, err := w.evalStatement(f.Init); err != nil {
			return nil, err
		}
	}
	var collected []value.Value
	for {
		if err := w.checkCancel(f.Pos()); err != nil {
			return nil, err
		}
		if f.Cond != nil {
			cv, err := w.Eval(f.Cond)
			if err != nil {
				return nil, err
			}
			ok, err := requireBoolean(cv, toPos(f.Cond.Pos()))
			if err != nil {
				return nil, err
			}
			if !ok {
				break
			}
		}
		blockVal, err := w.evalBlock(f.Body)
		if err != nil {
			return nil, err
		}
		appendFlattened(&collected, blockVal)
		if w.handleLoopFlags() {
			break
		}
		if f.Post != nil {
			if _, err := w.evalStatement(f.Post); err != nil {
				return nil, err
			}
		}
	}
	return collapse(collected), nil
}

// evalWhile implements the pre-test loop.
func (w *Walker) evalWhile(s *ast.While) (value.Value, error) {
	var collected []value.Value
	for {
		if err := w.checkCancel(s.Pos()); err != nil {
			return nil, err
		}
		cv, err := w.Eval(s.Condition)
		if err != nil {
			return nil, err
		}
		ok, err := requireBoolean(cv, toPos(s.Condition.Pos()))
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		blockVal, err := w.evalBlock(s.Body)
		if err != nil {
			return nil, err
		}
		appendFlattened(&collected, blockVal)
		if w.handleLoopFlags() {
			break
		}
	}
	return collapse(collected), nil
}

// evalForeach implements foreach: iterating a Text yields one Character
// per code point; iterating a Collection yields each element. The
// iteration variable is bound in the current scope for the loop's
// duration and removed once it completes.
func (w *Walker) evalForeach(f *ast.Foreach) (value.Value, error) {
	src, err := w.Eval(f.Source)
	if err != nil {
		return nil, err
	}

	var items []value.Value
	switch s := src.(type) {
	case value.Text:
		for _, r := range s.V {
			items = append(items, value.NewCharacter(string(r)))
		}
	case value.Character:
		items = append(items, s)
	case value.Collection:
		items = s.Items
	default:
		return nil, langerr.NewTypeError(toPos(f.Source.Pos()), "cannot iterate over %s", src.Tag())
	}

	var collected []value.Value
	for _, item := range items {
		if err := w.checkCancel(f.Pos()); err != nil {
			w.scope.Delete(f.Var)
			return nil, err
		}
		w.scope.Set(f.Var, item)
		blockVal, err := w.evalBlock(f.Body)
		if err != nil {
			w.scope.Delete(f.Var)
			return nil, err
		}
		appendFlattened(&collected, blockVal)
		if w.handleLoopFlags() {
			break
		}
	}
	w.scope.Delete(f.Var)
	return collapse(collected), nil
}
