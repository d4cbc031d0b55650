package arith_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/cwbudde/exprscript/arith"
	"github.com/cwbudde/exprscript/ast"
	"github.com/cwbudde/exprscript/comparer"
	"github.com/cwbudde/exprscript/langerr"
	"github.com/cwbudde/exprscript/value"
)

var zeroPos = langerr.Pos{}

func reg() *comparer.Registry { return comparer.New() }

func TestIntegerAdditionStaysInteger(t *testing.T) {
	v, err := arith.Binary(ast.OpAdd, value.NewInteger(2), value.NewInteger(3), reg(), zeroPos)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	i, ok := v.(value.Integer)
	if !ok || i.V != 5 {
		t.Fatalf("expected Integer(5), got %#v", v)
	}
}

func TestMixedNumericAdditionWidensToDecimal(t *testing.T) {
	v, err := arith.Binary(ast.OpAdd, value.NewInteger(2), value.NewDecimal(decimal.NewFromFloat(0.5)), reg(), zeroPos)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d, ok := v.(value.Decimal)
	if !ok {
		t.Fatalf("expected Decimal, got %#v", v)
	}
	if !d.V.Equal(decimal.NewFromFloat(2.5)) {
		t.Fatalf("expected 2.5, got %s", d.V)
	}
}

func TestStringConcatenation(t *testing.T) {
	v, err := arith.Binary(ast.OpAdd, value.NewText("foo"), value.NewInteger(1), reg(), zeroPos)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s, ok := v.(value.Text)
	if !ok || s.V != "foo1" {
		t.Fatalf("expected Text(foo1), got %#v", v)
	}
}

func TestDivisionByZeroIsArithmeticError(t *testing.T) {
	_, err := arith.Binary(ast.OpDiv, value.NewInteger(1), value.NewInteger(0), reg(), zeroPos)
	if err == nil {
		t.Fatalf("expected an error dividing by zero")
	}
	if _, ok := err.(*langerr.ArithmeticError); !ok {
		t.Fatalf("expected *langerr.ArithmeticError, got %T", err)
	}
}

func TestTypeMismatchIsTypeError(t *testing.T) {
	_, err := arith.Binary(ast.OpMul, value.NewText("a"), value.NewBoolean(true), reg(), zeroPos)
	if _, ok := err.(*langerr.TypeError); !ok {
		t.Fatalf("expected *langerr.TypeError, got %T (%v)", err, err)
	}
}

func TestComparisonOperators(t *testing.T) {
	v, err := arith.Binary(ast.OpLt, value.NewInteger(2), value.NewInteger(3), reg(), zeroPos)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b, ok := v.(value.Boolean); !ok || !b.V {
		t.Fatalf("expected Boolean(true), got %#v", v)
	}
}

func TestEqualityOnIncomparableTypesIsFalseNotError(t *testing.T) {
	v, err := arith.Binary(ast.OpEq, value.NewBoolean(true), value.NewHostObject(1), reg(), zeroPos)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b, ok := v.(value.Boolean); !ok || b.V {
		t.Fatalf("expected Boolean(false) for incomparable ==, got %#v", v)
	}
}

func TestOrderingOnIncomparableTypesErrors(t *testing.T) {
	_, err := arith.Binary(ast.OpLt, value.NewBoolean(true), value.NewHostObject(1), reg(), zeroPos)
	if err == nil {
		t.Fatalf("expected an error ordering incomparable types")
	}
}

func TestLogicalOperatorsNoShortCircuit(t *testing.T) {
	v, err := arith.Binary(ast.OpAnd, value.NewBoolean(false), value.NewBoolean(true), reg(), zeroPos)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b, ok := v.(value.Boolean); !ok || b.V {
		t.Fatalf("expected Boolean(false), got %#v", v)
	}

	v, err = arith.Binary(ast.OpAnd, value.NewInteger(6), value.NewInteger(3), reg(), zeroPos)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if i, ok := v.(value.Integer); !ok || i.V != 2 {
		t.Fatalf("expected Integer(2) from bitwise and, got %#v", v)
	}
}

func TestUnaryNegationCoercesToDecimal(t *testing.T) {
	v, err := arith.Unary(ast.OpNeg, value.NewInteger(5), zeroPos)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d, ok := v.(value.Decimal)
	if !ok || !d.V.Equal(decimal.NewFromInt(-5)) {
		t.Fatalf("expected Decimal(-5), got %#v", v)
	}
}

func TestUnaryNot(t *testing.T) {
	v, err := arith.Unary(ast.OpNot, value.NewBoolean(false), zeroPos)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b, ok := v.(value.Boolean); !ok || !b.V {
		t.Fatalf("expected Boolean(true), got %#v", v)
	}
}
