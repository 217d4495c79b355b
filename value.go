package domainconv

import "github.com/shopspring/decimal"

// Value is a node in a parsed domain tree. The variant set is closed:
// string, number, boolean and none literals, dynamic references, tuples
// (conditions) and nested domains (sequences).
type Value interface {
	valueNode()
}

// StringLiteral is a quoted string from the domain source. A top-level
// string whose text is "&", "|" or "!" acts as a logical-operator marker.
type StringLiteral struct {
	Val string
}

func (v *StringLiteral) valueNode() {}

// NumberLiteral is a numeric literal. IsInt records whether the source
// spelled an integer (no decimal point), so 1 and 1.0 compare equal but
// render differently.
type NumberLiteral struct {
	Val   decimal.Decimal
	IsInt bool
}

func (v *NumberLiteral) valueNode() {}

// BoolLiteral is a True/False literal.
type BoolLiteral struct {
	Val bool
}

func (v *BoolLiteral) valueNode() {}

// NoneLiteral is the None literal.
type NoneLiteral struct{}

func (v *NoneLiteral) valueNode() {}

// DynamicRef is a bare identifier path (e.g. "user.partner_id.id") that the
// host ORM resolves at evaluation time. It is a distinct variant so that a
// reference can never compare equal to a quoted string with the same text.
type DynamicRef struct {
	Path string
}

func (v *DynamicRef) valueNode() {}

// String returns the raw reference path.
func (v *DynamicRef) String() string { return v.Path }

// Condition is a parenthesized tuple. Odoo conditions are (field, operator,
// value) triples, but arity is only enforced when rendering, not at parse
// time, matching how Odoo itself treats hand-written domains.
type Condition []Value

func (v Condition) valueNode() {}

// Domain is a bracketed ordered sequence of conditions, logical-operator
// markers and nested sub-domains, in prefix (Polish) notation. A Domain may
// also appear in value position, where it is a plain list value.
type Domain []Value

func (v Domain) valueNode() {}

// Int returns a NumberLiteral holding an integer value.
func Int(n int64) *NumberLiteral {
	return &NumberLiteral{Val: decimal.NewFromInt(n), IsInt: true}
}

// Str returns a StringLiteral.
func Str(s string) *StringLiteral { return &StringLiteral{Val: s} }

// Ref returns a DynamicRef for the given dotted path.
func Ref(path string) *DynamicRef { return &DynamicRef{Path: path} }
