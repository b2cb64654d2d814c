package sql

import (
	"ariga.io/atlas/sql/migrate"
	"ariga.io/atlas/sql/mysql"
	"ariga.io/atlas/sql/postgres"
	"ariga.io/atlas/sql/schema"
	"ariga.io/atlas/sql/sqlite"

	"github.com/syssam/modelgen/compiler/gen"
)

// dialect holds the column types and the planner of a database.
type dialect struct {
	name    string
	planner migrate.PlanApplier
	// key is the type of primary and foreign keys.
	key     string
	integer string
	float   string
	boolean string
	text    string
	// varchar is used for String and ID columns when set.
	varchar string
	time    string
	// increment marks the primary key as auto-incremented.
	increment func() schema.Attr
}

var dialects = map[string]*dialect{
	gen.DialectSQLite: {
		name:      gen.DialectSQLite,
		planner:   sqlite.DefaultPlan,
		key:       "integer",
		integer:   "integer",
		float:     "real",
		boolean:   "bool",
		text:      "text",
		time:      "datetime",
		increment: func() schema.Attr { return &sqlite.AutoIncrement{} },
	},
	gen.DialectPostgres: {
		name:      gen.DialectPostgres,
		planner:   postgres.DefaultPlan,
		key:       "bigint",
		integer:   "bigint",
		float:     "double precision",
		boolean:   "boolean",
		text:      "text",
		time:      "timestamp",
		increment: func() schema.Attr { return &postgres.Identity{} },
	},
	gen.DialectMySQL: {
		name:      gen.DialectMySQL,
		planner:   mysql.DefaultPlan,
		key:       "bigint",
		integer:   "bigint",
		float:     "double",
		boolean:   "bool",
		text:      "text",
		varchar:   "varchar",
		time:      "timestamp",
		increment: func() schema.Attr { return &mysql.AutoIncrement{} },
	},
}

// lookupDialect returns the dialect with the given name. The empty
// name selects sqlite.
func lookupDialect(name string) (*dialect, error) {
	if name == "" {
		name = gen.DialectSQLite
	}
	d, ok := dialects[name]
	if !ok {
		return nil, gen.NewConfigError("Dialect", name, "unsupported dialect; use sqlite, postgres, or mysql")
	}
	return d, nil
}

// primaryKey returns the id column of a table.
func (d *dialect) primaryKey() *schema.Column {
	c := schema.NewIntColumn("id", d.key)
	c.AddAttrs(d.increment())
	return c
}

// foreignKey returns a nullable column referencing another table.
func (d *dialect) foreignKey(name string) *schema.Column {
	return schema.NewNullIntColumn(name, d.key)
}

// timestamp returns a reserved timestamp column.
func (d *dialect) timestamp(name string) *schema.Column {
	return schema.NewNullTimeColumn(name, d.time)
}

// column returns the column of a scalar field. Lists and custom scalars
// are stored as text.
func (d *dialect) column(f *gen.Field) *schema.Column {
	var c *schema.Column
	switch scalar := f.Scalar(); {
	case f.Type.List || !f.Builtin():
		c = schema.NewStringColumn(f.Name, d.text)
	case scalar == gen.ScalarInt:
		c = schema.NewIntColumn(f.Name, d.integer)
	case scalar == gen.ScalarFloat:
		c = schema.NewFloatColumn(f.Name, d.float)
	case scalar == gen.ScalarBoolean:
		c = schema.NewBoolColumn(f.Name, d.boolean)
	case d.varchar != "":
		c = schema.NewStringColumn(f.Name, d.varchar, schema.StringSize(255))
	default:
		c = schema.NewStringColumn(f.Name, d.text)
	}
	return c.SetNull(f.Nullable())
}
