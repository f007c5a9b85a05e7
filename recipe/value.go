package recipe

import "strconv"

type valueKind int

const (
	kindUnset valueKind = iota
	kindString
	kindBool
)

// Value is a variant choice value: a string token, a boolean or unset.
// The zero Value is unset.
type Value struct {
	kind valueKind
	str  string
	b    bool
}

// Unset is the explicit absence of a value.
var Unset = Value{}

// String returns string Value.
func String(s string) Value {
	return Value{kind: kindString, str: s}
}

// Bool returns boolean Value.
func Bool(b bool) Value {
	return Value{kind: kindBool, b: b}
}

// IsSet returns false for unset values.
func (v Value) IsSet() bool {
	return v.kind != kindUnset
}

// Token returns the lookup key of the value in a variant table. Booleans
// normalize to "true" and "false". Unset values have no token.
func (v Value) Token() (string, bool) {
	switch v.kind {
	case kindString:
		return v.str, true
	case kindBool:
		return strconv.FormatBool(v.b), true
	default:
		return "", false
	}
}

// String implements fmt.Stringer.
func (v Value) String() string {
	if tok, ok := v.Token(); ok {
		return tok
	}
	return "<unset>"
}
