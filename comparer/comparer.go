// Package comparer implements a pluggable comparison dispatch table: an
// ordered mapping from a type-tag predicate to an ordering function, with
// three built-ins always present and room for the host to register more.
package comparer

import (
	"github.com/cwbudde/exprscript/value"
)

// Func orders two values, returning -1, 0, or 1. It may fail if the pair
// is not comparable under this entry (e.g. a numeric comparer asked to
// compare two host objects it doesn't understand).
type Func func(left, right value.Value) (int, bool)

// entry pairs a predicate over a value's tag with the ordering function to
// use when it matches.
type entry struct {
	name    string
	matches func(left, right value.Value) bool
	compare Func
}

// Registry is an ordered comparer dispatch table. The zero value is not
// usable; use New to get one seeded with the three built-ins.
type Registry struct {
	entries []entry
	def     Func
}

// New returns a Registry seeded with NullComparer and NumericComparer, in
// that precedence order, plus DefaultComparer as the final fallback.
func New() *Registry {
	r := &Registry{def: defaultCompare}
	r.entries = []entry{
		{name: "null", matches: nullMatches, compare: nullCompare},
		{name: "numeric", matches: numericMatches, compare: numericCompare},
	}
	return r
}

// Register adds a host-supplied comparer under the given match predicate.
// Entries registered later are consulted before the built-ins, so a host
// can refine how any tag compares without needing to touch New's
// defaults.
func (r *Registry) Register(name string, matches func(left, right value.Value) bool, fn Func) {
	r.entries = append([]entry{{name: name, matches: matches, compare: fn}}, r.entries...)
}

// RegisterTag is a convenience wrapper for the common case of matching a
// single value tag on both sides.
func (r *Registry) RegisterTag(tag value.Tag, fn Func) {
	r.Register(string(tag), func(l, rr value.Value) bool {
		return l.Tag() == tag && rr.Tag() == tag
	}, fn)
}

// Compare resolves and applies a comparer for (left, right): any
// host-registered entry whose predicate matches is tried first (most
// recently registered wins), then the null-aware built-in, then the
// numeric built-in, then the default fallback.
func (r *Registry) Compare(left, right value.Value) int {
	for _, e := range r.entries {
		if e.matches(left, right) {
			if n, ok := e.compare(left, right); ok {
				return n
			}
		}
	}
	if n, ok := r.def(left, right); ok {
		return n
	}
	return 1 // incomparable: treat as "not equal, arbitrary order"
}

func nullMatches(left, right value.Value) bool {
	return left.Tag() == value.TagNull || right.Tag() == value.TagNull
}

// nullCompare returns 0 when both sides are Null, 1 otherwise. Null never
// equals anything but another Null.
func nullCompare(left, right value.Value) (int, bool) {
	if left.Tag() == value.TagNull && right.Tag() == value.TagNull {
		return 0, true
	}
	return 1, true
}

func numericMatches(left, right value.Value) bool {
	return value.IsNumeric(left.Tag()) && value.IsNumeric(right.Tag())
}

// numericCompare widens both sides to Decimal and compares.
func numericCompare(left, right value.Value) (int, bool) {
	l, err := value.ToDecimal(left)
	if err != nil {
		return 0, false
	}
	r, err := value.ToDecimal(right)
	if err != nil {
		return 0, false
	}
	return l.Cmp(r), true
}

// defaultCompare relies on natural ordering of scalar values: text and
// characters compare lexically, booleans false<true, DateTime and Duration
// chronologically, Guids equal-or-not by value, and everything else falls
// back to equal-or-not by rendered text.
func defaultCompare(left, right value.Value) (int, bool) {
	if left.Tag() != right.Tag() {
		// Differing, otherwise-unmatched variant tags are incomparable:
		// report "not equal" (a nonzero result) rather than failing.
		return 1, true
	}
	switch l := left.(type) {
	case value.Text:
		r := right.(value.Text)
		switch {
		case l.V < r.V:
			return -1, true
		case l.V > r.V:
			return 1, true
		default:
			return 0, true
		}
	case value.Character:
		r := right.(value.Character)
		switch {
		case l.V < r.V:
			return -1, true
		case l.V > r.V:
			return 1, true
		default:
			return 0, true
		}
	case value.Boolean:
		r := right.(value.Boolean)
		if l.V == r.V {
			return 0, true
		}
		if !l.V && r.V {
			return -1, true
		}
		return 1, true
	case value.DateTime:
		r := right.(value.DateTime)
		switch {
		case l.V.Before(r.V):
			return -1, true
		case l.V.After(r.V):
			return 1, true
		default:
			return 0, true
		}
	case value.Duration:
		r := right.(value.Duration)
		switch {
		case l.V < r.V:
			return -1, true
		case l.V > r.V:
			return 1, true
		default:
			return 0, true
		}
	case value.Guid:
		r := right.(value.Guid)
		if l.V == r.V {
			return 0, true
		}
		return 1, true
	default:
		if left.String() == right.String() {
			return 0, true
		}
		return 1, true
	}
}
