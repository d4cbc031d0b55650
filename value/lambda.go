package value

import "github.com/cwbudde/exprscript/ast"

// Lambda is a captured lambda: its parameter signature, a reference to its
// body subtree, and a snapshot of the enclosing lexical scope taken at
// capture time. The snapshot is copied by value, so re-binding a name in
// the defining scope after capture never changes what the lambda sees.
type Lambda struct {
	Params  []string
	Body    ast.Node
	Closure map[string]Value
}

func (Lambda) Tag() Tag        { return TagLambda }
func (l Lambda) String() string { return "<lambda>" }

// NewLambda snapshots scope by value into the returned Lambda's closure.
func NewLambda(params []string, body ast.Node, scope map[string]Value) Lambda {
	snapshot := make(map[string]Value, len(scope))
	for k, v := range scope {
		snapshot[k] = v
	}
	return Lambda{Params: params, Body: body, Closure: snapshot}
}
