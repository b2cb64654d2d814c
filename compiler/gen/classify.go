package gen

import (
	"fmt"
	"slices"
	"strings"

	"github.com/syssam/modelgen/compiler/load"
)

// Role is the part a field plays in the generated model.
type Role uint8

// Field roles, decided by the field name alone.
const (
	// RoleScalar is a stored field with a default value.
	RoleScalar Role = iota
	// RoleReserved is a field managed by the storage layer (id, created_at, updated_at).
	RoleReserved
	// RoleSingleOwner declares that the type holds a foreign key to another type.
	RoleSingleOwner
	// RoleManyToMany declares an association without an owning foreign key.
	RoleManyToMany
)

var roleNames = [...]string{
	RoleScalar:      "scalar",
	RoleReserved:    "reserved",
	RoleSingleOwner: "single-owner",
	RoleManyToMany:  "many-to-many",
}

// String returns the name of the role.
func (r Role) String() string {
	if int(r) < len(roleNames) {
		return roleNames[r]
	}
	return fmt.Sprintf("Role(%d)", r)
}

// Annotation names.
const (
	AnnotationDefault    = "default"
	AnnotationForeignKey = "foreignKey"
)

var (
	reservedNames     = []string{"id", "created_at", "updated_at"}
	singleOwnerPrefix = []string{"belongsTo", "associateTo"}
	manyToManyPrefix  = "hasAndBelongsToMany"
)

// Classified is the result of classifying one field.
type Classified struct {
	Role  Role
	Field *load.Field
	// Target is the referenced type name as declared, for relationship roles.
	Target string
	// ForeignKey is the column override from @foreignKey, if any.
	ForeignKey string
	// Default is the @default literal of a scalar field, nil if absent.
	Default *load.Value
}

// Classify determines the role of a field of the given type. Reserved
// names are checked first, then the single-owner prefixes, then the
// many-to-many prefix; anything else is a scalar. Annotations that are
// present without an argument are reported as AnnotationError.
func Classify(typeName string, f *load.Field) (*Classified, error) {
	c := &Classified{Field: f}
	switch {
	case slices.Contains(reservedNames, f.Name):
		c.Role = RoleReserved
	case hasAnyPrefix(f.Name, singleOwnerPrefix):
		c.Role = RoleSingleOwner
		c.Target = f.Type.Name
		if an := f.Annotation(AnnotationForeignKey); an != nil {
			v, ok := an.Value()
			if !ok || v.Kind == load.ValueNull || v.Raw == "" {
				return nil, NewAnnotationError(typeName, f.Name, AnnotationForeignKey)
			}
			c.ForeignKey = v.Raw
		}
	case strings.HasPrefix(f.Name, manyToManyPrefix):
		c.Role = RoleManyToMany
		c.Target = f.Type.Name
	default:
		c.Role = RoleScalar
		if an := f.Annotation(AnnotationDefault); an != nil {
			v, ok := an.Value()
			if !ok {
				return nil, NewAnnotationError(typeName, f.Name, AnnotationDefault)
			}
			c.Default = v
		}
	}
	return c, nil
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
