package comparer_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/cwbudde/exprscript/comparer"
	"github.com/cwbudde/exprscript/value"
)

func TestNullComparerPrecedence(t *testing.T) {
	r := comparer.New()
	if got := r.Compare(value.Null{}, value.Null{}); got != 0 {
		t.Fatalf("Null vs Null = %d, want 0", got)
	}
	if got := r.Compare(value.Null{}, value.NewInteger(0)); got == 0 {
		t.Fatalf("Null vs Integer(0) should not be equal")
	}
}

func TestNumericComparerWidensAcrossVariants(t *testing.T) {
	r := comparer.New()
	left := value.NewInteger(3)
	right := value.NewDecimal(decimal.NewFromFloat(3.0))
	if got := r.Compare(left, right); got != 0 {
		t.Fatalf("Integer(3) vs Decimal(3.0) = %d, want 0", got)
	}

	right2 := value.NewDecimal(decimal.NewFromFloat(2.5))
	if got := r.Compare(left, right2); got <= 0 {
		t.Fatalf("Integer(3) vs Decimal(2.5) = %d, want > 0", got)
	}
}

func TestDefaultComparerText(t *testing.T) {
	r := comparer.New()
	if got := r.Compare(value.NewText("a"), value.NewText("b")); got >= 0 {
		t.Fatalf("\"a\" vs \"b\" = %d, want < 0", got)
	}
}

func TestRegisteredComparerTakesPrecedence(t *testing.T) {
	r := comparer.New()
	r.RegisterTag(value.TagHostObject, func(left, right value.Value) (int, bool) {
		return 0, true // a host that treats every HostObject pair as equal
	})
	a := value.NewHostObject(1)
	b := value.NewHostObject(2)
	if got := r.Compare(a, b); got != 0 {
		t.Fatalf("expected registered comparer to report equal, got %d", got)
	}
}

func TestDifferingTagsAreNotEqual(t *testing.T) {
	r := comparer.New()
	if got := r.Compare(value.NewText("1"), value.NewBoolean(true)); got == 0 {
		t.Fatalf("differing, unmatched tags should not compare equal")
	}
}
