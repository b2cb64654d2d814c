package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/syssam/modelgen/compiler/load"
)

func TestDefaultValue(t *testing.T) {
	var (
		boolean = func(raw string) *load.Value { return &load.Value{Kind: load.ValueBoolean, Raw: raw} }
		integer = func(raw string) *load.Value { return &load.Value{Kind: load.ValueInt, Raw: raw} }
		float   = func(raw string) *load.Value { return &load.Value{Kind: load.ValueFloat, Raw: raw} }
		null    = &load.Value{Kind: load.ValueNull, Raw: "null"}
	)
	tests := []struct {
		name   string
		scalar string
		value  *load.Value
		want   string
		raw    string
		isNull bool
	}{
		{"boolean true", ScalarBoolean, boolean("true"), "true", "true", false},
		{"boolean false", ScalarBoolean, boolean("false"), "false", "false", false},
		{"boolean from zero", ScalarBoolean, integer("0"), "false", "false", false},
		{"boolean from number", ScalarBoolean, integer("3"), "true", "true", false},
		{"boolean from float zero", ScalarBoolean, float("0.0"), "false", "false", false},
		{"boolean from empty string", ScalarBoolean, str(""), "false", "false", false},
		{"boolean from string", ScalarBoolean, str("no"), "true", "true", false},
		{"string", ScalarString, str("yoo"), `"yoo"`, "yoo", false},
		{"string escaped", ScalarString, str(`say "hi"`), `"say \"hi\""`, `say "hi"`, false},
		{"string empty", ScalarString, str(""), `""`, "", false},
		{"string from number", ScalarString, integer("5"), `"5"`, "5", false},
		{"float", ScalarFloat, float("0.5"), "0.5", "0.5", false},
		{"int", ScalarInt, integer("100"), "100", "100", false},
		{"int zero", ScalarInt, integer("0"), "0", "0", false},
		{"id", ScalarID, str("abc"), "abc", "abc", false},
		{"custom scalar", "JSON", &load.Value{Kind: load.ValueObject, Raw: "{a:1}"}, "{a:1}", "{a:1}", false},
		{"enum", "Status", &load.Value{Kind: load.ValueEnum, Raw: "ACTIVE"}, "ACTIVE", "ACTIVE", false},
		{"no annotation", ScalarString, nil, "null", "", true},
		{"null literal", ScalarBoolean, null, "null", "", true},
		{"null literal int", ScalarInt, null, "null", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DefaultValue(tt.scalar, tt.value)
			assert.Equal(t, tt.want, got.String())
			assert.Equal(t, tt.raw, got.Raw())
			assert.Equal(t, tt.isNull, got.IsNull())
		})
	}
}

func TestLiteral_Zero(t *testing.T) {
	var l Literal
	assert.True(t, l.IsNull())
	assert.Equal(t, Null, l.String())
}
