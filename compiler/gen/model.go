package gen

import (
	"github.com/syssam/modelgen/compiler/load"
)

type (
	// Model is the resolved relational shape of one type. Models are
	// created by NewGraph and never modified afterwards.
	Model struct {
		// Name is the type name as declared, for example "Customers".
		Name string
		// TableName is the snake_case plural of Name.
		TableName string
		// ClassName is the singular of Name.
		ClassName string
		// JointTablePrefix is the snake_case of ClassName.
		JointTablePrefix string
		// Fields holds the scalar fields in declaration order.
		Fields []*Field
		// BelongsTo holds the foreign keys declared on the type, in
		// declaration order. Columns are unique.
		BelongsTo []*ForeignKey
		// HasMany holds the foreign keys of other types referencing this one.
		HasMany []*HasMany
		// BelongsToMany holds the singular names of many-to-many targets.
		BelongsToMany []string
		// Reserved lists the reserved fields the type declares.
		Reserved []string
		// Pos is the source position of the type.
		Pos string

		// relations of BelongsToMany, parallel to it.
		m2m []*ManyToMany
	}

	// Field is a scalar field.
	Field struct {
		Name    string
		Type    load.TypeRef
		Default Literal
		Pos     string
	}

	// ForeignKey is a single-owner relationship held by a model.
	ForeignKey struct {
		// Column is the foreign-key column name.
		Column string
		// Owner is the singular name of the declaring type.
		Owner string
		// Target is the singular name of the referenced type.
		Target string
		// Field is the name of the declaring field.
		Field string
		// Ref is the registry name of the referenced type.
		Ref string
	}

	// HasMany is the reciprocal view of a ForeignKey, held by the
	// referenced model.
	HasMany struct {
		// Column is the foreign-key column on the owner's table.
		Column string
		// Owner is the singular name of the type holding the foreign key.
		Owner string
		// OwnerType is the registry name of that type.
		OwnerType string
	}

	// ManyToMany is a one-directional association declared on a model.
	ManyToMany struct {
		// Target is the singular name of the other side.
		Target string
		// Field is the name of the declaring field.
		Field string
		// Ref is the registry name of the other side.
		Ref string
	}

	// Default pairs a field name with its resolved default.
	Default struct {
		Name  string
		Value Literal
	}
)

// TypeString returns the declared type name, suffixed with "!" if the
// field is non-null.
func (f *Field) TypeString() string {
	return f.Type.String()
}

// Scalar returns the named type of the field.
func (f *Field) Scalar() string {
	return f.Type.Name
}

// Nullable reports whether the field accepts null.
func (f *Field) Nullable() bool {
	return !f.Type.NonNull
}

// Builtin reports whether the field has one of the builtin scalar types.
func (f *Field) Builtin() bool {
	switch f.Type.Name {
	case ScalarID, ScalarString, ScalarInt, ScalarFloat, ScalarBoolean:
		return true
	}
	return false
}

// Field returns the scalar field with the given name.
func (m *Model) Field(name string) (*Field, bool) {
	for _, f := range m.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// ForeignKey returns the foreign key held in the given column.
func (m *Model) ForeignKey(column string) (*ForeignKey, bool) {
	for _, fk := range m.BelongsTo {
		if fk.Column == column {
			return fk, true
		}
	}
	return nil, false
}

// Defaults returns the default of every scalar field, in declaration order.
func (m *Model) Defaults() []Default {
	ds := make([]Default, len(m.Fields))
	for i, f := range m.Fields {
		ds[i] = Default{Name: f.Name, Value: f.Default}
	}
	return ds
}

// ManyToMany returns the associations behind BelongsToMany, in the same order.
func (m *Model) ManyToMany() []*ManyToMany {
	return m.m2m
}

// HasReserved reports whether the type declares the given reserved field.
func (m *Model) HasReserved(name string) bool {
	for _, r := range m.Reserved {
		if r == name {
			return true
		}
	}
	return false
}
