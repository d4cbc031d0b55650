package eval_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/cwbudde/exprscript/eval"
	"github.com/cwbudde/exprscript/host"
	"github.com/cwbudde/exprscript/parser"
	"github.com/cwbudde/exprscript/value"
)

func run(t *testing.T, src string) []value.Value {
	t.Helper()
	prog, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	h := host.NewMap(context.Background())
	w := eval.New(h)
	results, err := w.Run(prog)
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}
	return results
}

func runExpectErr(t *testing.T, src string) error {
	t.Helper()
	prog, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	h := host.NewMap(context.Background())
	w := eval.New(h)
	_, err = w.Run(prog)
	if err == nil {
		t.Fatalf("expected an evaluation error, got none")
	}
	return err
}

func lastResult(t *testing.T, src string) value.Value {
	t.Helper()
	results := run(t, src)
	if len(results) == 0 {
		t.Fatalf("expected at least one result")
	}
	return results[len(results)-1]
}

func TestArithmeticAndComparison(t *testing.T) {
	// `*` always coerces to Decimal, so the sum widens to Decimal too.
	v := lastResult(t, "1 + 2 * 3;")
	d, ok := v.(value.Decimal)
	if !ok || !d.V.Equal(decimal.NewFromInt(7)) {
		t.Fatalf("expected Decimal(7), got %#v", v)
	}

	v = lastResult(t, "5 > 3 and 2 < 4;")
	b, ok := v.(value.Boolean)
	if !ok || !b.V {
		t.Fatalf("expected Boolean(true), got %#v", v)
	}
}

func TestIfElse(t *testing.T) {
	v := lastResult(t, `x = 10; if (x > 5) { "big"; } else { "small"; }`)
	s, ok := v.(value.Text)
	if !ok || s.V != "big" {
		t.Fatalf("expected Text(big), got %#v", v)
	}
}

func TestForLoopAccumulation(t *testing.T) {
	v := lastResult(t, `total = 0; for (i = 0; i < 5; i++) { total += i; } total;`)
	n, ok := v.(value.Integer)
	if !ok || n.V != 10 {
		t.Fatalf("expected Integer(10), got %#v", v)
	}
}

func TestWhileLoopWithBreak(t *testing.T) {
	v := lastResult(t, `i = 0; while (true) { if (i == 3) { break; } i++; } i;`)
	n, ok := v.(value.Integer)
	if !ok || n.V != 3 {
		t.Fatalf("expected Integer(3), got %#v", v)
	}
}

func TestForeachOverText(t *testing.T) {
	// foreach over a Text iterates once per rune and needs no host support
	// (script source cannot build a Collection without a host-provided
	// constructor method).
	v := lastResult(t, `count = 0; foreach (ch in "abc") { count++; } count;`)
	n, ok := v.(value.Integer)
	if !ok || n.V != 3 {
		t.Fatalf("expected Integer(3), got %#v", v)
	}
}

func TestTernaryAndCoalesce(t *testing.T) {
	v := lastResult(t, `5 > 3 ? "yes" : "no";`)
	if s, ok := v.(value.Text); !ok || s.V != "yes" {
		t.Fatalf("expected Text(yes), got %#v", v)
	}

	v = lastResult(t, `unset ?? "fallback";`)
	if s, ok := v.(value.Text); !ok || s.V != "fallback" {
		t.Fatalf("expected Text(fallback), got %#v", v)
	}
}

func TestLambdaInvocation(t *testing.T) {
	v := lastResult(t, `add = (a, b) => a + b; add(3, 4);`)
	if n, ok := v.(value.Integer); !ok || n.V != 7 {
		t.Fatalf("expected Integer(7), got %#v", v)
	}
}

func TestLambdaClosureCapturesOuterScope(t *testing.T) {
	v := lastResult(t, `base = 10; addBase = n => n + base; addBase(5);`)
	if n, ok := v.(value.Integer); !ok || n.V != 15 {
		t.Fatalf("expected Integer(15), got %#v", v)
	}
}

func TestLambdaWriteBackOnlyPreexistingNames(t *testing.T) {
	// mutating a pre-existing outer variable inside a lambda body writes
	// back to the caller's scope; a name introduced only inside the
	// lambda body does not leak out.
	v := lastResult(t, `
		counter = 0;
		bump = () => { counter += 1; inner = 99; };
		bump();
		counter;
	`)
	if n, ok := v.(value.Integer); !ok || n.V != 1 {
		t.Fatalf("expected Integer(1), got %#v", v)
	}

	v = lastResult(t, `
		bump = () => { inner = 99; };
		bump();
		inner ?? "unset";
	`)
	if s, ok := v.(value.Text); !ok || s.V != "unset" {
		t.Fatalf("expected Text(unset) since 'inner' must not leak out, got %#v", v)
	}
}

func TestLambdaArityMismatchErrors(t *testing.T) {
	runExpectErr(t, `f = (a, b) => a + b; f(1);`)
}

func TestCompoundAssignmentRequiresPriorValue(t *testing.T) {
	runExpectErr(t, `missing += 1;`)
}

func TestIncrementDecrement(t *testing.T) {
	v := lastResult(t, `x = 5; x++; x;`)
	if n, ok := v.(value.Integer); !ok || n.V != 6 {
		t.Fatalf("expected Integer(6), got %#v", v)
	}

	v = lastResult(t, `x = 5; --x; x;`)
	if n, ok := v.(value.Integer); !ok || n.V != 4 {
		t.Fatalf("expected Integer(4), got %#v", v)
	}
}

func TestNullLiteral(t *testing.T) {
	v := lastResult(t, `null ?? 42;`)
	if n, ok := v.(value.Integer); !ok || n.V != 42 {
		t.Fatalf("expected Integer(42), got %#v", v)
	}
}
