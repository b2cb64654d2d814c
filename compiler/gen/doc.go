// Package gen resolves loaded GraphQL object types into relational models
// and drives their rendering.
//
// # Pipeline
//
//	load.Registry (types in declaration order)
//	        ↓
//	   Classify (per field: reserved, single-owner, many-to-many, scalar)
//	        ↓
//	   pass 1: per type, concurrent (foreign keys, scalar fields, defaults)
//	        ↓
//	   pass 2: fold of all foreign keys into hasMany, registry order
//	        ↓
//	   Graph of immutable Models
//	        ↓
//	   Generators (go, js, sql) → Writer
//
// # Naming
//
// Field names select the role of a field:
//
//   - id, created_at, updated_at are reserved and skipped.
//   - belongsTo* and associateTo* hold a foreign key to the field's type.
//     The column defaults to the singular snake_case of that type plus
//     "_id" and can be overridden with @foreignKey(value: "...").
//   - hasAndBelongsToMany* records a many-to-many association on the
//     declaring type only.
//   - anything else is a scalar field; @default(value: ...) sets its
//     initial value.
//
// A model's table name is the snake_case plural of the type name, its
// class name is the singular of the type name.
package gen
