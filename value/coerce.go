package value

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// CoerceError is returned by the coercion helpers when a value cannot be
// converted to the requested type. Callers in the evaluator wrap it into a
// langerr.TypeError with source position information.
type CoerceError struct {
	From Tag
	To   string
}

func (e *CoerceError) Error() string {
	return fmt.Sprintf("cannot convert %s to %s", e.From, e.To)
}

// ToInteger coerces a value to int32: accepts Integer, Decimal
// (truncating toward zero), Boolean (false→0, true→1), and Text parseable
// as an integer.
func ToInteger(v Value) (int32, error) {
	switch t := v.(type) {
	case Integer:
		return t.V, nil
	case Decimal:
		return int32(t.V.Truncate(0).IntPart()), nil
	case Boolean:
		if t.V {
			return 1, nil
		}
		return 0, nil
	case Text:
		n, err := strconv.ParseInt(strings.TrimSpace(t.V), 10, 32)
		if err != nil {
			return 0, &CoerceError{From: v.Tag(), To: "Integer"}
		}
		return int32(n), nil
	case Character:
		n, err := strconv.ParseInt(strings.TrimSpace(t.V), 10, 32)
		if err != nil {
			return 0, &CoerceError{From: v.Tag(), To: "Integer"}
		}
		return int32(n), nil
	default:
		return 0, &CoerceError{From: v.Tag(), To: "Integer"}
	}
}

// ToDecimal coerces a value to decimal.Decimal: accepts all numeric variants,
// Boolean, and Text parseable as a decimal (accepting both '.' and ','
// grouping, invariant-locale style).
func ToDecimal(v Value) (decimal.Decimal, error) {
	switch t := v.(type) {
	case Integer:
		return decimal.NewFromInt32(t.V), nil
	case Decimal:
		return t.V, nil
	case Boolean:
		if t.V {
			return decimal.NewFromInt(1), nil
		}
		return decimal.NewFromInt(0), nil
	case Text:
		return parseDecimalText(t.V)
	case Character:
		return parseDecimalText(t.V)
	default:
		return decimal.Decimal{}, &CoerceError{From: v.Tag(), To: "Decimal"}
	}
}

func parseDecimalText(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, &CoerceError{From: TagText, To: "Decimal"}
	}
	return d, nil
}

// ToBoolean coerces a value to bool: accepts Boolean, and Text in
// {"true","false"} case-insensitive.
func ToBoolean(v Value) (bool, error) {
	switch t := v.(type) {
	case Boolean:
		return t.V, nil
	case Text:
		switch strings.ToLower(t.V) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		return false, &CoerceError{From: v.Tag(), To: "Boolean"}
	default:
		return false, &CoerceError{From: v.Tag(), To: "Boolean"}
	}
}

// ToText renders any value to its canonical text form, using each value's
// own String() method. A nil value (unset) renders as empty text.
func ToText(v Value) string {
	if v == nil {
		return ""
	}
	return v.String()
}
