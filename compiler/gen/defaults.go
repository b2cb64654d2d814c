package gen

import (
	"strconv"

	"github.com/syssam/modelgen/compiler/load"
)

// Null is the rendering of a field without a default value.
const Null = "null"

// Builtin scalar names.
const (
	ScalarID      = "ID"
	ScalarString  = "String"
	ScalarInt     = "Int"
	ScalarFloat   = "Float"
	ScalarBoolean = "Boolean"
)

// Literal is a resolved default value. The zero Literal is the null sentinel.
type Literal struct {
	value string
	raw   string
}

// IsNull reports whether the literal is the null sentinel.
func (l Literal) IsNull() bool { return l.value == "" }

// String returns the literal in its initializer form: true/false for
// booleans, a double-quoted string for strings, the literal text otherwise.
func (l Literal) String() string {
	if l.IsNull() {
		return Null
	}
	return l.value
}

// Raw returns the unquoted literal text, for renderers that apply their
// own quoting rules.
func (l Literal) Raw() string {
	return l.raw
}

// DefaultValue converts a @default literal into the initializer of a field
// with the given scalar type. A missing or null literal yields the null
// sentinel. Unknown scalar types get the literal text as written.
func DefaultValue(scalar string, v *load.Value) Literal {
	if v == nil || v.Kind == load.ValueNull {
		return Literal{}
	}
	switch scalar {
	case ScalarBoolean:
		if truthy(v) {
			return Literal{value: "true", raw: "true"}
		}
		return Literal{value: "false", raw: "false"}
	case ScalarString:
		return Literal{value: strconv.Quote(v.Raw), raw: v.Raw}
	default:
		return Literal{value: v.Raw, raw: v.Raw}
	}
}

// truthy follows the usual scripting rules: false, zero and the empty
// string are false, everything else is true.
func truthy(v *load.Value) bool {
	switch v.Kind {
	case load.ValueBoolean:
		return v.Raw == "true"
	case load.ValueInt, load.ValueFloat:
		f, err := strconv.ParseFloat(v.Raw, 64)
		return err != nil || f != 0
	default:
		return v.Raw != ""
	}
}
