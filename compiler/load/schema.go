package load

import (
	"fmt"
	"strings"

	"github.com/vektah/gqlparser/v2/ast"
)

// Schema represents an object type that was loaded from a GraphQL SDL source.
type Schema struct {
	Name   string   `json:"name,omitempty"`
	Pos    string   `json:"-"`
	Fields []*Field `json:"fields,omitempty"`
}

// Field represents a field of a loaded object type.
type Field struct {
	Name        string        `json:"name,omitempty"`
	Type        TypeRef       `json:"type"`
	Annotations []*Annotation `json:"annotations,omitempty"`
	Pos         string        `json:"-"`
}

// TypeRef is the declared type of a field. List wrappers are kept
// as a flag, the named type is always the innermost one.
type TypeRef struct {
	Name    string `json:"name,omitempty"`
	NonNull bool   `json:"non_null,omitempty"`
	List    bool   `json:"list,omitempty"`
}

// String returns the GraphQL notation of the named type with its
// outer nullability, for example "String!" or "Int".
func (t TypeRef) String() string {
	if t.NonNull {
		return t.Name + "!"
	}
	return t.Name
}

// Annotation is a directive attached to a field, like @default(value: 1).
type Annotation struct {
	Name string      `json:"name,omitempty"`
	Args []*Argument `json:"args,omitempty"`
}

// Argument is a single named directive argument.
type Argument struct {
	Name  string `json:"name,omitempty"`
	Value *Value `json:"value,omitempty"`
}

// Value returns the literal carried by the annotation. The argument named
// "value" is preferred, otherwise the first argument is used. It reports
// false if the annotation has no arguments.
func (a *Annotation) Value() (*Value, bool) {
	for _, arg := range a.Args {
		if arg.Name == "value" && arg.Value != nil {
			return arg.Value, true
		}
	}
	if len(a.Args) > 0 && a.Args[0].Value != nil {
		return a.Args[0].Value, true
	}
	return nil, false
}

// ValueKind identifies the literal kind of a Value.
type ValueKind uint8

// Literal kinds.
const (
	ValueNull ValueKind = iota
	ValueInt
	ValueFloat
	ValueString
	ValueBoolean
	ValueEnum
	ValueList
	ValueObject
)

var kindNames = [...]string{
	ValueNull:    "null",
	ValueInt:     "int",
	ValueFloat:   "float",
	ValueString:  "string",
	ValueBoolean: "boolean",
	ValueEnum:    "enum",
	ValueList:    "list",
	ValueObject:  "object",
}

// String returns the name of the kind.
func (k ValueKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("ValueKind(%d)", k)
}

// Value is a literal annotation argument. For strings, Raw holds the
// unquoted text. For lists and objects, Raw holds the GraphQL notation.
type Value struct {
	Kind ValueKind `json:"kind"`
	Raw  string    `json:"raw"`
}

// Annotation returns the first annotation with the given name, or nil.
func (f *Field) Annotation(name string) *Annotation {
	for _, a := range f.Annotations {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// Field returns the field with the given name, or nil.
func (s *Schema) Field(name string) *Field {
	for _, f := range s.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// NewSchema creates a loaded schema from an object definition.
func NewSchema(def *ast.Definition) *Schema {
	s := &Schema{
		Name:   def.Name,
		Pos:    position(def.Position),
		Fields: make([]*Field, 0, len(def.Fields)),
	}
	s.addFields(def.Fields)
	return s
}

func (s *Schema) addFields(fields ast.FieldList) {
	for _, fd := range fields {
		s.Fields = append(s.Fields, NewField(fd))
	}
}

// NewField creates a loaded field from a field definition.
func NewField(fd *ast.FieldDefinition) *Field {
	f := &Field{
		Name: fd.Name,
		Type: newTypeRef(fd.Type),
		Pos:  position(fd.Position),
	}
	for _, d := range fd.Directives {
		an := &Annotation{Name: d.Name}
		for _, arg := range d.Arguments {
			an.Args = append(an.Args, &Argument{Name: arg.Name, Value: newValue(arg.Value)})
		}
		f.Annotations = append(f.Annotations, an)
	}
	return f
}

func newTypeRef(t *ast.Type) TypeRef {
	if t == nil {
		return TypeRef{}
	}
	return TypeRef{
		Name:    t.Name(),
		NonNull: t.NonNull,
		List:    t.Elem != nil,
	}
}

func newValue(v *ast.Value) *Value {
	if v == nil {
		return &Value{Kind: ValueNull}
	}
	switch v.Kind {
	case ast.IntValue:
		return &Value{Kind: ValueInt, Raw: v.Raw}
	case ast.FloatValue:
		return &Value{Kind: ValueFloat, Raw: v.Raw}
	case ast.StringValue, ast.BlockValue:
		return &Value{Kind: ValueString, Raw: v.Raw}
	case ast.BooleanValue:
		return &Value{Kind: ValueBoolean, Raw: v.Raw}
	case ast.EnumValue:
		return &Value{Kind: ValueEnum, Raw: v.Raw}
	case ast.ListValue:
		return &Value{Kind: ValueList, Raw: v.String()}
	case ast.ObjectValue:
		return &Value{Kind: ValueObject, Raw: v.String()}
	default:
		return &Value{Kind: ValueNull, Raw: "null"}
	}
}

func position(pos *ast.Position) string {
	if pos == nil {
		return ""
	}
	var b strings.Builder
	if pos.Src != nil && pos.Src.Name != "" {
		b.WriteString(pos.Src.Name)
		b.WriteByte(':')
	}
	fmt.Fprintf(&b, "%d:%d", pos.Line, pos.Column)
	return b.String()
}
