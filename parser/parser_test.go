package parser

import (
	"testing"

	"github.com/cwbudde/exprscript/ast"
)

func parseExprStmt(t *testing.T, src string) ast.Node {
	t.Helper()
	prog, err := Parse(src + ";")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(prog.Body.Statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Body.Statements))
	}
	stmt, ok := prog.Body.Statements[0].(*ast.ExprStatement)
	if !ok {
		t.Fatalf("expected *ast.ExprStatement, got %T", prog.Body.Statements[0])
	}
	return stmt.Expression
}

func TestOperatorPrecedence(t *testing.T) {
	expr := parseExprStmt(t, "1 + 2 * 3")
	bin, ok := expr.(*ast.BinaryExpr)
	if !ok || bin.Op != ast.OpAdd {
		t.Fatalf("expected top-level +, got %#v", expr)
	}
	right, ok := bin.Right.(*ast.BinaryExpr)
	if !ok || right.Op != ast.OpMul {
		t.Fatalf("expected nested *, got %#v", bin.Right)
	}
}

func TestTernaryAndCoalescePrecedence(t *testing.T) {
	expr := parseExprStmt(t, "a ?? b ? c : d")
	ternary, ok := expr.(*ast.Ternary)
	if !ok {
		t.Fatalf("expected *ast.Ternary at top level, got %T", expr)
	}
	if _, ok := ternary.Condition.(*ast.Coalesce); !ok {
		t.Fatalf("expected coalesce as ternary condition, got %T", ternary.Condition)
	}
}

func TestLambdaSingleParam(t *testing.T) {
	expr := parseExprStmt(t, "n => n + 1")
	lam, ok := expr.(*ast.LambdaExpr)
	if !ok {
		t.Fatalf("expected *ast.LambdaExpr, got %T", expr)
	}
	if len(lam.Signature.Params) != 1 || lam.Signature.Params[0] != "n" {
		t.Fatalf("expected single param 'n', got %v", lam.Signature.Params)
	}
}

func TestLambdaMultiParamVsGroupedExpr(t *testing.T) {
	lam := parseExprStmt(t, "(a, b) => a + b")
	if _, ok := lam.(*ast.LambdaExpr); !ok {
		t.Fatalf("expected *ast.LambdaExpr, got %T", lam)
	}

	grouped := parseExprStmt(t, "(1 + 2) * 3")
	bin, ok := grouped.(*ast.BinaryExpr)
	if !ok || bin.Op != ast.OpMul {
		t.Fatalf("expected grouped expr parsed as *, got %#v", grouped)
	}
	if _, ok := bin.Left.(*ast.ParenExpr); !ok {
		t.Fatalf("expected left side to be a ParenExpr, got %T", bin.Left)
	}
}

func TestPrimaryChain(t *testing.T) {
	expr := parseExprStmt(t, `a.b(1, 2)[0].c`)
	prim, ok := expr.(*ast.Primary)
	if !ok {
		t.Fatalf("expected *ast.Primary, got %T", expr)
	}
	if _, ok := prim.Start.(*ast.Identifier); !ok {
		t.Fatalf("expected Identifier start, got %T", prim.Start)
	}
	if len(prim.Chain) != 3 {
		t.Fatalf("expected 3 chain links, got %d", len(prim.Chain))
	}
	if _, ok := prim.Chain[0].(*ast.MemberExpr); !ok {
		t.Fatalf("chain[0]: expected *ast.MemberExpr, got %T", prim.Chain[0])
	}
	if _, ok := prim.Chain[1].(*ast.IndexExpr); !ok {
		t.Fatalf("chain[1]: expected *ast.IndexExpr, got %T", prim.Chain[1])
	}
	if _, ok := prim.Chain[2].(*ast.MemberExpr); !ok {
		t.Fatalf("chain[2]: expected *ast.MemberExpr, got %T", prim.Chain[2])
	}
}

func TestMultiKeyIndexExpr(t *testing.T) {
	expr := parseExprStmt(t, `a[1][2]`)
	prim, ok := expr.(*ast.Primary)
	if !ok {
		t.Fatalf("expected *ast.Primary, got %T", expr)
	}
	if len(prim.Chain) != 1 {
		t.Fatalf("expected a single combined IndexExpr link, got %d links", len(prim.Chain))
	}
	idx, ok := prim.Chain[0].(*ast.IndexExpr)
	if !ok {
		t.Fatalf("expected *ast.IndexExpr, got %T", prim.Chain[0])
	}
	if len(idx.Keys) != 2 {
		t.Fatalf("expected 2 keys, got %d", len(idx.Keys))
	}
}

func TestIfElseIfChain(t *testing.T) {
	prog, err := Parse(`if (a) { 1; } else if (b) { 2; } else { 3; }`)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	ifs, ok := prog.Body.Statements[0].(*ast.If)
	if !ok {
		t.Fatalf("expected *ast.If, got %T", prog.Body.Statements[0])
	}
	if ifs.Alternative == nil || len(ifs.Alternative.Body.Statements) != 1 {
		t.Fatalf("expected else-if wrapped in a single-statement block")
	}
	nested, ok := ifs.Alternative.Body.Statements[0].(*ast.If)
	if !ok {
		t.Fatalf("expected nested *ast.If, got %T", ifs.Alternative.Body.Statements[0])
	}
	if nested.Alternative == nil {
		t.Fatalf("expected nested else block")
	}
}

func TestForLoopClauses(t *testing.T) {
	prog, err := Parse(`for (i = 0; i < 10; i++) { x += i; }`)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	f, ok := prog.Body.Statements[0].(*ast.For)
	if !ok {
		t.Fatalf("expected *ast.For, got %T", prog.Body.Statements[0])
	}
	if f.Init == nil || f.Cond == nil || f.Post == nil {
		t.Fatalf("expected all three for-clauses to be present")
	}
	assign, ok := f.Post.(*ast.Assignment)
	if !ok || assign.Op != ast.AssignPostIncr {
		t.Fatalf("expected post-increment in post clause, got %#v", f.Post)
	}
}

func TestForeachStatement(t *testing.T) {
	prog, err := Parse(`foreach (item in collection) { total += item; }`)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	fe, ok := prog.Body.Statements[0].(*ast.Foreach)
	if !ok {
		t.Fatalf("expected *ast.Foreach, got %T", prog.Body.Statements[0])
	}
	if fe.Var != "item" {
		t.Fatalf("expected loop var 'item', got %q", fe.Var)
	}
}

func TestCompoundAssignmentAndIncrement(t *testing.T) {
	prog, err := Parse(`x += 1; ++y; z--;`)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(prog.Body.Statements) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(prog.Body.Statements))
	}
	a1 := prog.Body.Statements[0].(*ast.Assignment)
	if a1.Op != ast.AssignAdd {
		t.Fatalf("expected +=, got %s", a1.Op)
	}
	a2 := prog.Body.Statements[1].(*ast.Assignment)
	if a2.Op != ast.AssignPreIncr {
		t.Fatalf("expected pre-increment, got %s", a2.Op)
	}
	a3 := prog.Body.Statements[2].(*ast.Assignment)
	if a3.Op != ast.AssignPostDecr {
		t.Fatalf("expected post-decrement, got %s", a3.Op)
	}
}

func TestParamDeclClause(t *testing.T) {
	prog, err := Parse(`param threshold = 10, label; threshold + 1;`)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(prog.Params) != 2 {
		t.Fatalf("expected 2 param decls, got %d", len(prog.Params))
	}
	if prog.Params[0].Name != "threshold" || prog.Params[0].Value == nil {
		t.Fatalf("expected threshold with default value")
	}
	if prog.Params[1].Name != "label" || prog.Params[1].Value != nil {
		t.Fatalf("expected label with no default value")
	}
}

func TestNullLiteralAndCoalesce(t *testing.T) {
	expr := parseExprStmt(t, `null ?? "fallback"`)
	c, ok := expr.(*ast.Coalesce)
	if !ok {
		t.Fatalf("expected *ast.Coalesce, got %T", expr)
	}
	lit, ok := c.Left.(*ast.Literal)
	if !ok || lit.Kind != ast.LitNull {
		t.Fatalf("expected null literal on the left, got %#v", c.Left)
	}
}
