package eval

import (
	"github.com/cwbudde/exprscript/ast"
	"github.com/cwbudde/exprscript/langerr"
	"github.com/cwbudde/exprscript/value"
)

// evalPrimary evaluates a primary expression: a start term (parenthesised
// expression, literal, or raw identifier) followed by zero or more
// chained indexer/member/call links.
func (w *Walker) evalPrimary(p *ast.Primary) (value.Value, error) {
	if len(p.Chain) == 0 {
		if id, ok := p.Start.(*ast.Identifier); ok {
			return w.resolveIdentifier(id.Name), nil
		}
		return w.Eval(p.Start)
	}

	startIdent, startIsIdent := p.Start.(*ast.Identifier)

	var receiver value.Value
	chain := p.Chain

	if startIsIdent {
		if call, ok := chain[0].(*ast.CallExpr); ok {
			v, err := w.invokeNamedCall(startIdent.Name, call)
			if err != nil {
				return nil, err
			}
			receiver = v
			chain = chain[1:]
		} else {
			receiver = w.resolveIdentifier(startIdent.Name)
		}
	} else {
		v, err := w.Eval(p.Start)
		if err != nil {
			return nil, err
		}
		receiver = v
	}

	for _, link := range chain {
		v, err := w.applyChainLink(receiver, link)
		if err != nil {
			return nil, err
		}
		receiver = v
	}
	return receiver, nil
}

// invokeNamedCall implements the "method call" chain link: a call
// directly following the start identifier. If the name resolves to a
// Lambda in scope, it is invoked as one; otherwise the call is dispatched
// to the host as a free method invocation.
func (w *Walker) invokeNamedCall(name string, call *ast.CallExpr) (value.Value, error) {
	args, err := w.evalArgList(call.Args)
	if err != nil {
		return nil, err
	}
	at := toPos(call.Position)
	if v, ok := w.scope.Get(name); ok {
		if lam, ok := v.(value.Lambda); ok {
			return w.invokeLambda(lam, args, at)
		}
	}
	v, err := w.host.InvokeMethod(w.host.Context(), name, args)
	if err != nil {
		return nil, langerr.NewHostError(at, err)
	}
	return v, nil
}

// applyChainLink applies one indexer/member/call link to the current
// chain receiver.
func (w *Walker) applyChainLink(receiver value.Value, link ast.ChainMember) (value.Value, error) {
	switch n := link.(type) {
	case *ast.IndexExpr:
		return w.applyIndexExpr(receiver, n)
	case *ast.MemberExpr:
		return w.applyMemberExpr(receiver, n)
	case *ast.CallExpr:
		return w.applyCallExpr(receiver, n)
	default:
		return nil, langerr.NewTypeError(toPos(link.Pos()), "unsupported chain link: %T", link)
	}
}

// applyIndexExpr implements the indexer chain link: the first bracketed
// key is passed to the host's indexer; each subsequent key in the same
// `[k1][k2]...` group performs a member-by-name access on the prior
// result.
func (w *Walker) applyIndexExpr(receiver value.Value, n *ast.IndexExpr) (value.Value, error) {
	at := toPos(n.Position)
	if len(n.Keys) == 0 {
		return receiver, nil
	}
	keyVal, err := w.Eval(n.Keys[0])
	if err != nil {
		return nil, err
	}
	result, err := w.host.InvokeIndexer(w.host.Context(), receiver, keyVal)
	if err != nil {
		return nil, langerr.NewHostError(at, err)
	}
	for _, keyNode := range n.Keys[1:] {
		name, err := w.chainKeyAsMemberName(keyNode)
		if err != nil {
			return nil, err
		}
		result, err = w.host.InvokeMember(w.host.Context(), result, name, nil)
		if err != nil {
			return nil, langerr.NewHostError(at, err)
		}
	}
	return result, nil
}

// chainKeyAsMemberName resolves a subsequent `[k]` key of an indexer
// chain as a member name: a bare identifier contributes its own name
// literally (it is not a variable reference here), anything else
// evaluates normally and is rendered to text.
func (w *Walker) chainKeyAsMemberName(keyNode ast.Node) (string, error) {
	if id, ok := keyNode.(*ast.Identifier); ok {
		return id.Name, nil
	}
	v, err := w.Eval(keyNode)
	if err != nil {
		return "", err
	}
	return value.ToText(v), nil
}

// applyMemberExpr implements the member-access chain link: `.name` reads
// a property, or `.name(args)` invokes a method, on receiver.
func (w *Walker) applyMemberExpr(receiver value.Value, n *ast.MemberExpr) (value.Value, error) {
	at := toPos(n.Position)
	var args []value.Value
	if n.Call != nil {
		a, err := w.evalArgList(n.Call.Args)
		if err != nil {
			return nil, err
		}
		args = a
	}
	var (
		v   value.Value
		err error
	)
	if n.Call != nil {
		v, err = w.host.InvokeMember(w.host.Context(), receiver, n.Name, args)
	} else {
		v, err = w.host.InvokeMember(w.host.Context(), receiver, n.Name, nil)
	}
	if err != nil {
		return nil, langerr.NewHostError(at, err)
	}
	return v, nil
}

// applyCallExpr handles a call link that is not the first element of the
// chain (so there is no candidate name to check against local scope): the
// receiver itself must be a Lambda.
func (w *Walker) applyCallExpr(receiver value.Value, n *ast.CallExpr) (value.Value, error) {
	at := toPos(n.Position)
	lam, ok := receiver.(value.Lambda)
	if !ok {
		return nil, langerr.NewTypeError(at, "value of type %s is not callable", receiver.Tag())
	}
	args, err := w.evalArgList(n.Args)
	if err != nil {
		return nil, err
	}
	return w.invokeLambda(lam, args, at)
}
