// Package value defines the tagged value universe the evaluator computes
// over: the dynamically-typed variants an expression can produce, plus the
// coercion helpers used to convert between them.
//
// Every concrete type implements Value with a Tag() and a String() method,
// rather than routing rendering through a single central type switch.
package value

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Tag identifies a Value's runtime variant.
type Tag string

const (
	TagInteger    Tag = "Integer"
	TagDecimal    Tag = "Decimal"
	TagBoolean    Tag = "Boolean"
	TagText       Tag = "Text"
	TagCharacter  Tag = "Character"
	TagDateTime   Tag = "DateTime"
	TagDuration   Tag = "Duration"
	TagGuid       Tag = "Guid"
	TagNull       Tag = "Null"
	TagCollection Tag = "Collection"
	TagHostObject Tag = "HostObject"
	TagLambda     Tag = "Lambda"
)

// Value is the common interface every runtime value implements.
type Value interface {
	Tag() Tag
	String() string
}

// IsNumeric reports whether a tag is one of the numeric variants.
func IsNumeric(t Tag) bool {
	return t == TagInteger || t == TagDecimal
}

// Integer is a signed 32-bit integer value.
type Integer struct{ V int32 }

func (Integer) Tag() Tag            { return TagInteger }
func (i Integer) String() string    { return fmt.Sprintf("%d", i.V) }
func NewInteger(v int32) Integer    { return Integer{V: v} }

// Decimal is an arbitrary fixed-point base-10 fraction, backed by
// shopspring/decimal.
type Decimal struct{ V decimal.Decimal }

func (Decimal) Tag() Tag { return TagDecimal }

// String renders the canonical textual form: trailing zeros are trimmed,
// but a zero value always renders as "0" rather than an empty string.
func (d Decimal) String() string {
	s := d.V.String()
	if d.V.Sign() == 0 {
		return "0"
	}
	return s
}

func NewDecimal(v decimal.Decimal) Decimal { return Decimal{V: v} }

// Boolean is a truth value.
type Boolean struct{ V bool }

func (Boolean) Tag() Tag { return TagBoolean }
func (b Boolean) String() string {
	if b.V {
		return "true"
	}
	return "false"
}
func NewBoolean(v bool) Boolean { return Boolean{V: v} }

// Text is a string value.
type Text struct{ V string }

func (Text) Tag() Tag         { return TagText }
func (t Text) String() string { return t.V }
func NewText(v string) Text   { return Text{V: v} }

// Character is a single-codepoint text value. It carries a distinct tag
// from Text but is represented the same way (a one-rune string).
type Character struct{ V string }

func (Character) Tag() Tag         { return TagCharacter }
func (c Character) String() string { return c.V }
func NewCharacter(v string) Character { return Character{V: v} }

// DateTime is an instant in time.
type DateTime struct{ V time.Time }

func (DateTime) Tag() Tag { return TagDateTime }
func (d DateTime) String() string {
	return d.V.Format(time.RFC3339)
}
func NewDateTime(v time.Time) DateTime { return DateTime{V: v} }

// Duration is a signed time span.
type Duration struct{ V time.Duration }

func (Duration) Tag() Tag            { return TagDuration }
func (d Duration) String() string    { return d.V.String() }
func NewDuration(v time.Duration) Duration { return Duration{V: v} }

// Guid is a 128-bit identifier, backed by google/uuid.
type Guid struct{ V uuid.UUID }

func (Guid) Tag() Tag         { return TagGuid }
func (g Guid) String() string { return g.V.String() }
func NewGuid(v uuid.UUID) Guid { return Guid{V: v} }

// Null represents the absence of a value.
type Null struct{}

func (Null) Tag() Tag      { return TagNull }
func (Null) String() string { return "" }

// Collection is an ordered sequence of values, indexable by integer
// position or, when present, a string key.
type Collection struct {
	Items []Value
	// Keys maps a string key to a position in Items, for values also
	// reachable by name (e.g. an associative literal). Entries reachable
	// only by position leave no corresponding Keys entry.
	Keys map[string]int
}

func (Collection) Tag() Tag { return TagCollection }
func (c Collection) String() string {
	s := "["
	for idx, it := range c.Items {
		if idx > 0 {
			s += ", "
		}
		s += it.String()
	}
	return s + "]"
}

func NewCollection(items ...Value) Collection {
	return Collection{Items: items}
}

// Get looks up an element by integer position or string key.
func (c Collection) Get(key any) (Value, bool) {
	switch k := key.(type) {
	case int:
		if k < 0 || k >= len(c.Items) {
			return nil, false
		}
		return c.Items[k], true
	case string:
		idx, ok := c.Keys[k]
		if !ok {
			return nil, false
		}
		return c.Items[idx], true
	default:
		return nil, false
	}
}

// HostObject is an opaque handle carried through host calls. The evaluator
// never inspects its payload; it only threads it through Host capability
// invocations.
type HostObject struct{ V any }

func (HostObject) Tag() Tag         { return TagHostObject }
func (h HostObject) String() string { return fmt.Sprintf("%v", h.V) }
func NewHostObject(v any) HostObject { return HostObject{V: v} }
